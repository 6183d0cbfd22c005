package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakuratei/order-system/internal/receipt"
	"github.com/sakuratei/order-system/internal/service"
)

// ReceiptHandler renders order receipts
type ReceiptHandler struct {
	orders *service.OrderService
	log    *slog.Logger
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(orders *service.OrderService, log *slog.Logger) *ReceiptHandler {
	return &ReceiptHandler{orders: orders, log: log}
}

// Text handles GET /api/receipts/{orderID}/text
func (h *ReceiptHandler) Text(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	order, err := h.orders.GetOrder(r.Context(), orderID)
	if err != nil {
		WriteDomainError(w, err, h.log)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(receipt.Render(order))); err != nil {
		h.log.Error("failed to write receipt", "error", err)
	}
}
