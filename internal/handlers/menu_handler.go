package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakuratei/order-system/internal/service"
)

// MenuHandler handles menu catalog HTTP requests
type MenuHandler struct {
	menu *service.MenuService
	log  *slog.Logger
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(menu *service.MenuService, log *slog.Logger) *MenuHandler {
	return &MenuHandler{menu: menu, log: log}
}

// ListAvailable handles GET /api/menu
func (h *MenuHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	items, err := h.menu.ListAvailable(r.Context())
	if err != nil {
		WriteDomainError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, items, h.log)
}

// GetItem handles GET /api/menu/{itemID}
func (h *MenuHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")

	item, err := h.menu.GetItem(r.Context(), itemID)
	if err != nil {
		WriteDomainError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, item, h.log)
}

// ByCategory handles GET /api/menu/category/{category}
func (h *MenuHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	items, err := h.menu.ByCategory(r.Context(), category)
	if err != nil {
		WriteDomainError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, items, h.log)
}

// Search handles GET /api/menu/search?q=
func (h *MenuHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	items, err := h.menu.Search(r.Context(), query)
	if err != nil {
		WriteDomainError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, items, h.log)
}
