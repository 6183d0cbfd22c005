package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakuratei/order-system/internal/apperr"
	"github.com/sakuratei/order-system/internal/models"
	"github.com/sakuratei/order-system/internal/service"
)

// transitionTargets maps the named transition endpoints to the status each
// one requests. One endpoint per state-machine edge.
var transitionTargets = map[string]models.OrderStatus{
	"confirm":           models.OrderConfirmed,
	"start-preparation": models.OrderPreparing,
	"ready":             models.OrderReady,
	"served":            models.OrderServed,
	"complete":          models.OrderCompleted,
	"cancel":            models.OrderCancelled,
}

// OrderHandler handles order HTTP requests
type OrderHandler struct {
	orders *service.OrderService
	log    *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders *service.OrderService, log *slog.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, log: log}
}

// Submit handles POST /api/orders
func (h *OrderHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode order submission", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	order, err := h.orders.Submit(r.Context(), req)
	if err != nil {
		WriteDomainError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusCreated, order, h.log)
}

// AttachItem handles POST /api/orders/{orderID}/items
func (h *OrderHandler) AttachItem(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	var req models.AttachItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	order, err := h.orders.AttachItem(r.Context(), orderID, req)
	if err != nil {
		WriteDomainError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, order, h.log)
}

// Transition handles PATCH /api/orders/{orderID}/{transition} where the
// transition segment is one of confirm, start-preparation, ready, served,
// complete, cancel. The body names the status the caller last observed.
func (h *OrderHandler) Transition(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	transition := chi.URLParam(r, "transition")

	target, ok := transitionTargets[transition]
	if !ok {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("unknown transition: %s", transition), h.log)
		return
	}

	var req models.TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	expected, err := models.ParseOrderStatus(req.ExpectedStatus)
	if err != nil {
		WriteDomainError(w, fmt.Errorf("%w: %v", apperr.ErrValidation, err), h.log)
		return
	}

	order, err := h.orders.Transition(r.Context(), orderID, expected, target, staffName(r))
	if err != nil {
		WriteDomainError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, order, h.log)
}

// TransitionItem handles PATCH /api/orders/{orderID}/items/{itemID}/status
func (h *OrderHandler) TransitionItem(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	itemID := chi.URLParam(r, "itemID")

	var req models.ItemStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	target, err := models.ParseItemStatus(req.Status)
	if err != nil {
		WriteDomainError(w, fmt.Errorf("%w: %v", apperr.ErrValidation, err), h.log)
		return
	}
	expected, err := models.ParseItemStatus(req.ExpectedStatus)
	if err != nil {
		WriteDomainError(w, fmt.Errorf("%w: %v", apperr.ErrValidation, err), h.log)
		return
	}

	order, err := h.orders.TransitionItem(r.Context(), orderID, itemID, expected, target, staffName(r))
	if err != nil {
		WriteDomainError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, order, h.log)
}

// GetOrder handles GET /api/orders/{orderID}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	order, err := h.orders.GetOrder(r.Context(), orderID)
	if err != nil {
		WriteDomainError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, order, h.log)
}

// ListOrders handles GET /api/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, r, h.orders.ListOrders)
}

// ListActive handles GET /api/orders/active
func (h *OrderHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, r, h.orders.ActiveOrders)
}

// ListKitchen handles GET /api/orders/kitchen
func (h *OrderHandler) ListKitchen(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, r, h.orders.KitchenOrders)
}

// ListToday handles GET /api/orders/today
func (h *OrderHandler) ListToday(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, r, h.orders.TodaysOrders)
}

// ListByTable handles GET /api/orders/table/{tableNumber}
func (h *OrderHandler) ListByTable(w http.ResponseWriter, r *http.Request) {
	tableNumber := chi.URLParam(r, "tableNumber")

	orders, err := h.orders.OrdersByTable(r.Context(), tableNumber)
	if err != nil {
		WriteDomainError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, orders, h.log)
}

// History handles GET /api/orders/{orderID}/history
func (h *OrderHandler) History(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	entries, err := h.orders.History(r.Context(), orderID)
	if err != nil {
		WriteDomainError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, entries, h.log)
}

func (h *OrderHandler) writeList(w http.ResponseWriter, r *http.Request,
	list func(ctx context.Context) ([]models.Order, error)) {
	orders, err := list(r.Context())
	if err != nil {
		WriteDomainError(w, err, h.log)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	WriteJSON(w, http.StatusOK, orders, h.log)
}

// staffName identifies who requested a transition, for the status log
func staffName(r *http.Request) string {
	if name := r.Header.Get("X-Staff-Name"); name != "" {
		return name
	}
	return "staff"
}
