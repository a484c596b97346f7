package handler

import (
	"net/http"

	"github.com/billmate/billmate/internal/promo"
)

// PromoHandler handles HTTP requests for the promotional carousel.
type PromoHandler struct {
	rotator *promo.Rotator
}

// NewPromoHandler creates a new PromoHandler.
func NewPromoHandler(rotator *promo.Rotator) *PromoHandler {
	return &PromoHandler{rotator: rotator}
}

// PromoResponse represents the carousel state.
type PromoResponse struct {
	Slide  *promo.Slide `json:"slide,omitempty"`
	Paused bool         `json:"paused"`
}

// Current handles GET /api/v1/promos/current.
func (h *PromoHandler) Current(w http.ResponseWriter, r *http.Request) {
	slide, ok := h.rotator.Current()
	if !ok {
		writeJSON(w, http.StatusOK, PromoResponse{Paused: h.rotator.Paused()})
		return
	}

	writeJSON(w, http.StatusOK, PromoResponse{
		Slide:  &slide,
		Paused: h.rotator.Paused(),
	})
}

// List handles GET /api/v1/promos.
func (h *PromoHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"data":   h.rotator.Slides(),
		"paused": h.rotator.Paused(),
	})
}

// Pause handles POST /api/v1/promos/pause. The hover-to-freeze contract:
// the active slide stays put until Resume.
func (h *PromoHandler) Pause(w http.ResponseWriter, r *http.Request) {
	h.rotator.Pause()
	h.Current(w, r)
}

// Resume handles POST /api/v1/promos/resume.
func (h *PromoHandler) Resume(w http.ResponseWriter, r *http.Request) {
	h.rotator.Resume()
	h.Current(w, r)
}
