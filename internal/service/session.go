package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/billmate/billmate/internal/auth"
	"github.com/billmate/billmate/internal/metrics"
	"github.com/billmate/billmate/internal/model"
	"github.com/billmate/billmate/internal/repository"
)

// Session service errors.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already registered")
	ErrWeakPassword       = auth.ErrWeakPassword
	ErrProviderDenied     = auth.ErrProviderDenied
	ErrFederatedDisabled  = errors.New("federated sign-in not configured")
	ErrInvalidEmail       = errors.New("invalid email address")
)

// StartedSession is the result of a successful sign-in: the issued token
// and the session it represents.
type StartedSession struct {
	Token   string
	Session *model.Session
	User    *model.User
}

// SessionService owns the identity lifecycle: registration, sign-in
// (password and federated), sign-out and profile mutation. Every state
// transition is reflected in the Redis session mirror so the route guard
// observes it on the next request.
type SessionService struct {
	users    UserStore
	sessions SessionStore
	tokens   *auth.JWTManager
	google   *auth.GoogleProvider
	metrics  metrics.Recorder
}

// NewSessionService creates a new SessionService. google may be nil when
// federated sign-in is not configured.
func NewSessionService(users UserStore, sessions SessionStore, tokens *auth.JWTManager, google *auth.GoogleProvider, recorder metrics.Recorder) *SessionService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &SessionService{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		google:   google,
		metrics:  recorder,
	}
}

// Register creates a password account and starts a session for it.
func (s *SessionService) Register(ctx context.Context, email, password, displayName string) (*StartedSession, error) {
	email = normalizeEmail(email)
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	if err := auth.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           generateULID(),
		Email:        email,
		DisplayName:  displayName,
		Provider:     model.ProviderPassword,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.startSession(ctx, user)
}

// Login authenticates a password account and starts a session.
// Unknown email and bad password collapse into one error to prevent
// account enumeration.
func (s *SessionService) Login(ctx context.Context, email, password string) (*StartedSession, error) {
	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncLoginFailed()
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	match, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil || !match {
		s.metrics.IncLoginFailed()
		return nil, ErrInvalidCredentials
	}

	return s.startSession(ctx, user)
}

// GoogleAuthURL returns the provider-hosted consent URL for federated
// sign-in, plus the state nonce to round-trip.
func (s *SessionService) GoogleAuthURL() (authURL, state string, err error) {
	if s.google == nil {
		return "", "", ErrFederatedDisabled
	}
	authURL, state = s.google.AuthURL()
	return authURL, state, nil
}

// FederatedLogin completes the federated flow: exchanges the provider code,
// upserts the account, and starts a session. A cancelled or rejected flow
// surfaces as ErrProviderDenied.
func (s *SessionService) FederatedLogin(ctx context.Context, code string) (*StartedSession, error) {
	if s.google == nil {
		return nil, ErrFederatedDisabled
	}

	profile, err := s.google.Exchange(ctx, code)
	if err != nil {
		s.metrics.IncLoginFailed()
		return nil, err
	}

	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(profile.Email))
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}

		now := time.Now().UTC()
		user = &model.User{
			ID:          generateULID(),
			Email:       normalizeEmail(profile.Email),
			DisplayName: profile.Name,
			PhotoURL:    profile.Picture,
			Provider:    model.ProviderGoogle,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.users.CreateUser(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create federated user: %w", err)
		}
	}

	return s.startSession(ctx, user)
}

// Logout revokes the session: the mirror is deleted and a tombstone keeps
// the token dead until it would have expired anyway. Idempotent - revoking
// an absent session leaves state unchanged and succeeds.
func (s *SessionService) Logout(ctx context.Context, tokenID string) error {
	if tokenID == "" {
		return nil
	}

	if err := s.sessions.DeleteSession(ctx, tokenID); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	if err := s.sessions.RevokeSession(ctx, tokenID, s.tokens.TokenDuration()); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	s.metrics.IncSessionRevoked()
	return nil
}

// CurrentUser resolves the account behind a session.
func (s *SessionService) CurrentUser(ctx context.Context, session *model.Session) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return user, nil
}

// TokenDuration exposes the session token lifetime.
func (s *SessionService) TokenDuration() time.Duration {
	return s.tokens.TokenDuration()
}

// UpdateProfile mutates display name and photo on the signed-in account.
// A patch with neither field set is a no-op. The session mirror is
// refreshed so subsequent requests observe the new profile immediately.
func (s *SessionService) UpdateProfile(ctx context.Context, session *model.Session, displayName, photoURL string) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if displayName == "" && photoURL == "" {
		return user, nil
	}

	if displayName != "" {
		user.DisplayName = displayName
	}
	if photoURL != "" {
		user.PhotoURL = photoURL
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.UpdateUserProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	refreshed := &model.Session{
		TokenID:     session.TokenID,
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		PhotoURL:    user.PhotoURL,
	}
	if err := s.sessions.SetSession(ctx, refreshed, s.tokens.TokenDuration()); err != nil {
		return nil, fmt.Errorf("failed to refresh session mirror: %w", err)
	}

	return user, nil
}

// startSession issues a token and mirrors the session snapshot.
func (s *SessionService) startSession(ctx context.Context, user *model.User) (*StartedSession, error) {
	tokenID := generateULID()

	token, err := s.tokens.Generate(user, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	session := &model.Session{
		TokenID:     tokenID,
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		PhotoURL:    user.PhotoURL,
	}

	if err := s.sessions.SetSession(ctx, session, s.tokens.TokenDuration()); err != nil {
		return nil, fmt.Errorf("failed to mirror session: %w", err)
	}

	s.metrics.IncSessionStarted()

	return &StartedSession{
		Token:   token,
		Session: session,
		User:    user,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
