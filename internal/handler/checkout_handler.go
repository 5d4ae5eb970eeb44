package handler

import (
	"net/http"

	"book-bazaar/internal/middleware"
	"book-bazaar/internal/model"
	"book-bazaar/internal/service"

	"github.com/rs/zerolog"
)

// CheckoutHandler handles checkout initiation requests.
type CheckoutHandler struct {
	service service.CheckoutService
	logger  zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(service service.CheckoutService, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  logger.With().Str("handler", "checkout").Logger(),
	}
}

// Initiate handles POST /api/checkout requests.
func (h *CheckoutHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.CheckoutRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	resp, err := h.service.Initiate(r.Context(), middleware.SessionIDFrom(r.Context()), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
