package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/billmate/billmate/internal/auth"
	"github.com/billmate/billmate/internal/handler/dto"
	"github.com/billmate/billmate/internal/service"
)

// AuthHandler handles HTTP requests for the session lifecycle.
type AuthHandler struct {
	svc    *service.SessionService
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.SessionService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		svc:    svc,
		logger: logger,
	}
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		if !writeValidationError(w, err) {
			h.handleServiceError(w, err)
		}
		return
	}

	started, err := h.svc.Register(r.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_registered", "user_id", started.User.ID)

	h.writeSession(w, r, http.StatusCreated, started)
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		if !writeValidationError(w, err) {
			h.handleServiceError(w, err)
		}
		return
	}

	started, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_logged_in", "user_id", started.User.ID)

	h.writeSession(w, r, http.StatusOK, started)
}

// GoogleStart handles GET /api/v1/auth/google. It returns the provider
// consent URL instead of redirecting so API clients stay in control.
func (h *AuthHandler) GoogleStart(w http.ResponseWriter, r *http.Request) {
	authURL, state, err := h.svc.GoogleAuthURL()
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AuthURLResponse{
		AuthURL: authURL,
		State:   state,
	})
}

// GoogleCallback handles GET /api/v1/auth/google/callback.
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")

	started, err := h.svc.FederatedLogin(r.Context(), code)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_logged_in_federated", "user_id", started.User.ID)

	h.writeSession(w, r, http.StatusOK, started)
}

// Logout handles POST /api/v1/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())
	if session == nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	if err := h.svc.Logout(r.Context(), session.TokenID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_logged_out", "user_id", session.UserID)

	w.WriteHeader(http.StatusNoContent)
}

// Profile handles GET /api/v1/profile.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	user, err := h.svc.CurrentUser(r.Context(), session)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// UpdateProfile handles PATCH /api/v1/profile.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		if !writeValidationError(w, err) {
			h.handleServiceError(w, err)
		}
		return
	}

	user, err := h.svc.UpdateProfile(r.Context(), session, req.DisplayName, req.PhotoURL)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("profile_updated", "user_id", user.ID)

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// writeSession writes a started session, echoing a safe return_to path so
// the client can resume where the guard interrupted.
func (h *AuthHandler) writeSession(w http.ResponseWriter, r *http.Request, status int, started *service.StartedSession) {
	resp := dto.ToSessionResponse(started.Token, h.svc.TokenDuration(), started.User)
	resp.ReturnTo = safeReturnTo(r.URL.Query().Get("return_to"))
	writeJSON(w, status, resp)
}

// safeReturnTo accepts only same-site relative paths. Anything else is
// dropped to keep the redirect target unspoofable.
func safeReturnTo(path string) string {
	if path == "" || !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") {
		return ""
	}
	return path
}

// handleServiceError maps session service errors to HTTP responses.
func (h *AuthHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	case errors.Is(err, service.ErrEmailExists):
		writeError(w, http.StatusConflict, "EMAIL_TAKEN", "Email already registered")
	case errors.Is(err, service.ErrWeakPassword):
		writeError(w, http.StatusBadRequest, "WEAK_PASSWORD", "Password must be at least 8 characters")
	case errors.Is(err, service.ErrInvalidEmail):
		writeError(w, http.StatusBadRequest, "INVALID_EMAIL", "Invalid email address")
	case errors.Is(err, service.ErrProviderDenied):
		writeError(w, http.StatusBadRequest, "PROVIDER_DENIED", "Federated sign-in was cancelled or rejected")
	case errors.Is(err, service.ErrFederatedDisabled):
		writeError(w, http.StatusServiceUnavailable, "FEDERATED_DISABLED", "Federated sign-in is not configured")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
