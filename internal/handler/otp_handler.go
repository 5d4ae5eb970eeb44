package handler

import (
	"fmt"
	"net/http"

	"book-bazaar/internal/middleware"
	"book-bazaar/internal/model"
	"book-bazaar/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OTPHandler handles phone verification requests.
type OTPHandler struct {
	service service.VerificationService
	logger  zerolog.Logger
}

// NewOTPHandler creates a new OTP handler.
func NewOTPHandler(service service.VerificationService, logger zerolog.Logger) *OTPHandler {
	return &OTPHandler{
		service: service,
		logger:  logger.With().Str("handler", "otp").Logger(),
	}
}

// Send handles POST /api/otp/send requests.
func (h *OTPHandler) Send(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req struct {
		Phone  string `json:"phone"`
		Method string `json:"delivery_method"`
	}
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	method, err := model.ParseDeliveryMethod(req.Method)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	v, err := h.service.RequestOTP(r.Context(), req.Phone, method)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"message":         fmt.Sprintf("OTP sent via %s", method),
		"verification_id": v.ID.String(),
	})
}

// Verify handles POST /api/otp/verify requests.
func (h *OTPHandler) Verify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req struct {
		VerificationID string `json:"verification_id"`
		OTP            string `json:"otp"`
	}
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	id, err := uuid.Parse(req.VerificationID)
	if err != nil {
		writeServiceError(w, model.ErrVerificationNotFound, h.logger)
		return
	}

	if err := h.service.VerifyOTP(r.Context(), middleware.SessionIDFrom(r.Context()), id, req.OTP); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Phone verified",
	})
}

// Resend handles POST /api/otp/resend requests.
func (h *OTPHandler) Resend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req struct {
		VerificationID string `json:"verification_id"`
	}
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	id, err := uuid.Parse(req.VerificationID)
	if err != nil {
		writeServiceError(w, model.ErrVerificationNotFound, h.logger)
		return
	}

	if err := h.service.ResendOTP(r.Context(), id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "OTP resent",
	})
}
