package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"book-bazaar/internal/middleware"
	"book-bazaar/internal/model"
	"book-bazaar/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles session cart requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// cartItemRef identifies an existing cart line.
type cartItemRef struct {
	ID       int64  `json:"id"`
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, dest interface{}, logger zerolog.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var domainErr *model.DomainError
		if errors.As(err, &domainErr) {
			writeServiceError(w, domainErr, logger)
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request body", logger)
		return false
	}
	return true
}

// List handles GET /api/cart requests.
func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	view, err := h.service.List(r.Context(), middleware.SessionIDFrom(r.Context()))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Add handles POST /api/cart/add requests.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.AddToCartRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	summary, err := h.service.Add(r.Context(), middleware.SessionIDFrom(r.Context()), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// Update handles POST /api/cart/update requests.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req cartItemRef
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	itemType, err := model.ParseItemType(req.Type)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown item type", h.logger)
		return
	}

	summary, err := h.service.UpdateQuantity(r.Context(), middleware.SessionIDFrom(r.Context()), itemType, req.ID, req.Quantity)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// Remove handles POST /api/cart/remove requests.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req cartItemRef
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	itemType, err := model.ParseItemType(req.Type)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown item type", h.logger)
		return
	}

	summary, err := h.service.Remove(r.Context(), middleware.SessionIDFrom(r.Context()), itemType, req.ID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// Clear handles POST /api/cart/clear requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	summary, err := h.service.Clear(r.Context(), middleware.SessionIDFrom(r.Context()))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// BuyNow handles POST /api/buy-now requests.
func (h *CartHandler) BuyNow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req struct {
		BookID int64 `json:"book_id"`
	}
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	summary, err := h.service.BuyNow(r.Context(), middleware.SessionIDFrom(r.Context()), req.BookID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// Addons handles GET and POST /api/cart/addons requests.
func (h *CartHandler) Addons(w http.ResponseWriter, r *http.Request) {
	sid := middleware.SessionIDFrom(r.Context())

	switch r.Method {
	case http.MethodGet:
		sel, total, err := h.service.Addons(r.Context(), sid)
		if err != nil {
			writeServiceError(w, err, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"addons":      sel,
			"addon_total": total,
		})

	case http.MethodPost:
		var sel model.AddonSelection
		if !decodeBody(w, r, &sel, h.logger) {
			return
		}

		view, err := h.service.UpdateAddons(r.Context(), sid, sel)
		if err != nil {
			writeServiceError(w, err, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, view)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}
