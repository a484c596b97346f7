package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/billmate/billmate/internal/auth"
	"github.com/billmate/billmate/internal/model"
)

// SessionStore is the mirrored-session side of the cache.
type SessionStore interface {
	GetSession(ctx context.Context, tokenID string) (*model.Session, error)
	SetSession(ctx context.Context, session *model.Session, ttl time.Duration) error
	SessionRevoked(ctx context.Context, tokenID string) (bool, error)
}

// UserSource resolves accounts when the mirror has expired.
type UserSource interface {
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// SessionConfig holds configuration for the session middleware.
type SessionConfig struct {
	Logger   *slog.Logger
	Tokens   *auth.JWTManager
	Sessions SessionStore
	Users    UserSource
}

// RequireSession returns the route guard middleware for protected views.
// A request with no valid session is answered with 401 and the login
// redirect computed by Decide, preserving the originally requested path.
//
// Session restore is optimistic: the Redis mirror is consulted first, and
// only on a miss is the account reconciled from the database and
// re-mirrored. A token whose mirror was explicitly revoked stays dead even
// though the JWT itself still verifies.
func RequireSession(cfg SessionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractBearerToken(r)
			if tokenString == "" {
				denySession(w, r, cfg.Logger, "missing_token")
				return
			}

			claims, err := cfg.Tokens.Validate(tokenString)
			if err != nil {
				denySession(w, r, cfg.Logger, "invalid_token")
				return
			}

			revoked, err := cfg.Sessions.SessionRevoked(r.Context(), claims.ID)
			if err != nil {
				cfg.Logger.Error("revocation check failed",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				denySession(w, r, cfg.Logger, "revocation_check_failed")
				return
			}
			if revoked {
				denySession(w, r, cfg.Logger, "revoked")
				return
			}

			// Optimistic restore from the mirror.
			session, err := cfg.Sessions.GetSession(r.Context(), claims.ID)
			if err != nil {
				cfg.Logger.Warn("session mirror unavailable",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
			}

			if session == nil {
				// Mirror miss: reconcile from the account record.
				user, err := cfg.Users.GetUserByID(r.Context(), claims.UserID)
				if err != nil {
					denySession(w, r, cfg.Logger, "unknown_user")
					return
				}

				session = &model.Session{
					TokenID:     claims.ID,
					UserID:      user.ID,
					Email:       user.Email,
					DisplayName: user.DisplayName,
					PhotoURL:    user.PhotoURL,
				}

				if ttl := time.Until(claims.ExpiresAt.Time); ttl > 0 {
					_ = cfg.Sessions.SetSession(r.Context(), session, ttl)
				}
			}

			ctx := auth.ContextWithSession(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken extracts the session token from the request.
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// denySession writes a 401 response carrying the login redirect from the
// route guard policy. The reason is logged, never exposed, so failures are
// indistinguishable to callers.
func denySession(w http.ResponseWriter, r *http.Request, logger *slog.Logger, reason string) {
	logger.Warn("session required",
		slog.String("reason", reason),
		slog.String("endpoint", r.Method+" "+r.URL.Path),
		slog.String("request_id", GetRequestID(r.Context())),
	)

	decision := Decide(false, r.URL.Path)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"authentication required","code":"UNAUTHORIZED","login":"` + decision.RedirectTo + `"}`))
}
