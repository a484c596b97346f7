package model

import "time"

// Provider identifies how an account authenticates.
type Provider string

const (
	ProviderPassword Provider = "password"
	ProviderGoogle   Provider = "google"
)

// User represents an account known to the identity layer.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	PhotoURL     string    `json:"photo_url,omitempty"`
	Provider     Provider  `json:"provider"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Session is the client-held representation of a signed-in identity.
// It is derived from a verified token plus the mirrored snapshot.
type Session struct {
	TokenID     string `json:"token_id"`
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url,omitempty"`
}

// CachedSession is the session snapshot stored in Redis.
// Uses string types for Redis hash compatibility.
type CachedSession struct {
	UserID      string `redis:"user_id"`
	Email       string `redis:"email"`
	DisplayName string `redis:"display_name"`
	PhotoURL    string `redis:"photo_url"`
}

// ToSession converts the cached snapshot to a Session for the given token.
func (c *CachedSession) ToSession(tokenID string) *Session {
	return &Session{
		TokenID:     tokenID,
		UserID:      c.UserID,
		Email:       c.Email,
		DisplayName: c.DisplayName,
		PhotoURL:    c.PhotoURL,
	}
}

// ToCachedSession converts a Session to its Redis snapshot form.
func (s *Session) ToCachedSession() *CachedSession {
	return &CachedSession{
		UserID:      s.UserID,
		Email:       s.Email,
		DisplayName: s.DisplayName,
		PhotoURL:    s.PhotoURL,
	}
}
