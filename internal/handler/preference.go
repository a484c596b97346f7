package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/billmate/billmate/internal/auth"
	"github.com/billmate/billmate/internal/cache"
	"github.com/billmate/billmate/internal/handler/dto"
)

// ThemeStore persists per-user UI preferences.
type ThemeStore interface {
	SetTheme(ctx context.Context, userID, theme string) error
	GetTheme(ctx context.Context, userID string) (string, error)
}

// PreferenceHandler handles HTTP requests for per-user preferences.
type PreferenceHandler struct {
	themes ThemeStore
	logger *slog.Logger
}

// NewPreferenceHandler creates a new PreferenceHandler.
func NewPreferenceHandler(themes ThemeStore, logger *slog.Logger) *PreferenceHandler {
	return &PreferenceHandler{
		themes: themes,
		logger: logger,
	}
}

// GetTheme handles GET /api/v1/preferences/theme. Absent preferences
// resolve to the light default.
func (h *PreferenceHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	theme, err := h.themes.GetTheme(r.Context(), session.UserID)
	if err != nil {
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	writeJSON(w, http.StatusOK, dto.ThemeResponse{Theme: theme})
}

// SetTheme handles PUT /api/v1/preferences/theme.
func (h *PreferenceHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	var req dto.ThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		if !writeValidationError(w, err) {
			h.logger.Error("internal_error", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		}
		return
	}

	if err := h.themes.SetTheme(r.Context(), session.UserID, req.Theme); err != nil {
		if errors.Is(err, cache.ErrInvalidTheme) {
			writeError(w, http.StatusBadRequest, "INVALID_THEME", "Theme must be light or dark")
			return
		}
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	writeJSON(w, http.StatusOK, dto.ThemeResponse{Theme: req.Theme})
}
