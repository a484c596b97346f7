package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/billmate/billmate/internal/model"
)

func testUser() *model.User {
	return &model.User{
		ID:    "user-1",
		Email: "user@example.com",
	}
}

func TestJWTManager_RoundTrip(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("test-secret-0123456789abcdef", time.Hour)

	token, err := m.Generate(testUser(), "token-abc")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Errorf("UserID = %s, want user-1", claims.UserID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("Email = %s, want user@example.com", claims.Email)
	}
	if claims.ID != "token-abc" {
		t.Errorf("jti = %s, want token-abc", claims.ID)
	}
}

func TestJWTManager_WrongSecret(t *testing.T) {
	t.Parallel()

	m1 := NewJWTManager("secret-one-0123456789abcdef", time.Hour)
	m2 := NewJWTManager("secret-two-0123456789abcdef", time.Hour)

	token, err := m1.Generate(testUser(), "token-abc")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := m2.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate with wrong secret = %v, want ErrInvalidToken", err)
	}
}

func TestJWTManager_Expired(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("test-secret-0123456789abcdef", -time.Minute)

	token, err := m.Generate(testUser(), "token-abc")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate of expired token = %v, want ErrInvalidToken", err)
	}
}

func TestJWTManager_Tampered(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("test-secret-0123456789abcdef", time.Hour)

	token, err := m.Generate(testUser(), "token-abc")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Flip a character in the payload segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token should have 3 segments, got %d", len(parts))
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := m.Validate(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate of tampered token = %v, want ErrInvalidToken", err)
	}
}

func TestJWTManager_Garbage(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("test-secret-0123456789abcdef", time.Hour)

	if _, err := m.Validate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate of garbage = %v, want ErrInvalidToken", err)
	}
}
