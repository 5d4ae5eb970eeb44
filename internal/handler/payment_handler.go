package handler

import (
	"net/http"

	"book-bazaar/internal/middleware"
	"book-bazaar/internal/service"

	"github.com/rs/zerolog"
)

// PaymentHandler receives the gateway's form-encoded callbacks.
type PaymentHandler struct {
	service service.PaymentService
	logger  zerolog.Logger
}

// NewPaymentHandler creates a new payment callback handler.
func NewPaymentHandler(service service.PaymentService, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		logger:  logger.With().Str("handler", "payment").Logger(),
	}
}

// Success handles POST /payment/success callbacks.
func (h *PaymentHandler) Success(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form body", h.logger)
		return
	}

	result, err := h.service.HandleSuccess(r.Context(), middleware.SessionIDFrom(r.Context()), r.PostForm)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Failure handles POST /payment/failure callbacks.
func (h *PaymentHandler) Failure(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form body", h.logger)
		return
	}

	result, err := h.service.HandleFailure(r.Context(), middleware.SessionIDFrom(r.Context()), r.PostForm)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
