package handler

import (
	"net/http"
	"strings"

	"book-bazaar/internal/service"

	"github.com/rs/zerolog"
)

// CatalogHandler handles catalogue browsing and search requests.
type CatalogHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new catalogue handler.
func NewCatalogHandler(service service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// Search handles GET /api/search requests.
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	results, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

// Suggestions handles GET /api/search/suggestions requests.
func (h *CatalogHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	results, err := h.service.Suggestions(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"suggestions": results})
}

// Books handles GET /api/books requests, listing a category shelf.
func (h *CatalogHandler) Books(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	query := r.URL.Query()
	onSale := query.Get("on_sale") == "true" || query.Get("on_sale") == "1"

	books, err := h.service.BooksByCategory(r.Context(), query.Get("category"), onSale)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"books": books})
}

// BookBySlug handles GET /api/books/{slug} requests.
func (h *CatalogHandler) BookBySlug(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	slug := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/books/"), "/")
	if slug == "" {
		writeError(w, http.StatusBadRequest, "book slug is required", h.logger)
		return
	}

	book, err := h.service.BookBySlug(r.Context(), slug)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, book)
}
