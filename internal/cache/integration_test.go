//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/billmate/billmate/internal/model"
	"github.com/billmate/billmate/internal/testutil"
)

func newCacheTestEnv(t *testing.T) (context.Context, *Cache) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	redisURL := testutil.RequireEnv(t, "REDIS_URL")

	c, err := New(ctx, redisURL)
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	t.Cleanup(func() {
		_ = c.Close()
	})

	if err := testutil.FlushRedis(ctx, c.Client()); err != nil {
		t.Fatalf("flush redis: %v", err)
	}

	return ctx, c
}

func testSession(tokenID string) *model.Session {
	return &model.Session{
		TokenID:     tokenID,
		UserID:      "user-1",
		Email:       "alice@example.com",
		DisplayName: "Alice",
	}
}

func TestIntegrationSessionMirror_RoundTrip(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	session := testSession("tok-roundtrip")
	if err := c.SetSession(ctx, session, time.Minute); err != nil {
		t.Fatalf("SetSession failed: %v", err)
	}

	got, err := c.GetSession(ctx, "tok-roundtrip")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got == nil {
		t.Fatal("session mirror should exist")
	}
	if got.UserID != "user-1" || got.Email != "alice@example.com" {
		t.Errorf("restored session = %+v, want user-1/alice@example.com", got)
	}
}

func TestIntegrationSessionMirror_MissReturnsNil(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	got, err := c.GetSession(ctx, "tok-missing")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got != nil {
		t.Errorf("miss should return nil session, got %+v", got)
	}
}

func TestIntegrationSessionMirror_DeleteIdempotent(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	session := testSession("tok-delete")
	if err := c.SetSession(ctx, session, time.Minute); err != nil {
		t.Fatalf("SetSession failed: %v", err)
	}

	if err := c.DeleteSession(ctx, "tok-delete"); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	// Second delete of an absent mirror is still fine.
	if err := c.DeleteSession(ctx, "tok-delete"); err != nil {
		t.Errorf("repeat DeleteSession failed: %v", err)
	}

	got, err := c.GetSession(ctx, "tok-delete")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got != nil {
		t.Error("deleted session should not be restorable")
	}
}

func TestIntegrationSessionRevocation(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	revoked, err := c.SessionRevoked(ctx, "tok-revoke")
	if err != nil {
		t.Fatalf("SessionRevoked failed: %v", err)
	}
	if revoked {
		t.Error("token should not start revoked")
	}

	if err := c.RevokeSession(ctx, "tok-revoke", time.Minute); err != nil {
		t.Fatalf("RevokeSession failed: %v", err)
	}

	revoked, err = c.SessionRevoked(ctx, "tok-revoke")
	if err != nil {
		t.Fatalf("SessionRevoked failed: %v", err)
	}
	if !revoked {
		t.Error("tombstone should mark the token revoked")
	}
}

func TestIntegrationTheme_DefaultAndRoundTrip(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	theme, err := c.GetTheme(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetTheme failed: %v", err)
	}
	if theme != ThemeLight {
		t.Errorf("default theme = %q, want light", theme)
	}

	if err := c.SetTheme(ctx, "user-1", ThemeDark); err != nil {
		t.Fatalf("SetTheme failed: %v", err)
	}

	theme, err = c.GetTheme(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetTheme failed: %v", err)
	}
	if theme != ThemeDark {
		t.Errorf("theme = %q, want dark", theme)
	}
}

func TestIntegrationTheme_RejectsUnknownValue(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	if err := c.SetTheme(ctx, "user-1", "sepia"); err != ErrInvalidTheme {
		t.Errorf("SetTheme(sepia) = %v, want ErrInvalidTheme", err)
	}
}
