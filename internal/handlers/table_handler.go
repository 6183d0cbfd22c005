package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/sakuratei/order-system/internal/apperr"
	"github.com/sakuratei/order-system/internal/models"
	"github.com/sakuratei/order-system/internal/service"
)

// TableHandler handles table resolution HTTP requests
type TableHandler struct {
	tables *service.TableService
	log    *slog.Logger
}

// NewTableHandler creates a new table handler
func NewTableHandler(tables *service.TableService, log *slog.Logger) *TableHandler {
	return &TableHandler{tables: tables, log: log}
}

// ListTables handles GET /api/tables
func (h *TableHandler) ListTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.tables.ListTables(r.Context())
	if err != nil {
		WriteDomainError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, tables, h.log)
}

// ListAvailable handles GET /api/tables/available
func (h *TableHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	tables, err := h.tables.AvailableTables(r.Context())
	if err != nil {
		WriteDomainError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, tables, h.log)
}

// ResolveByNumber handles GET /api/tables/number/{tableNumber}
func (h *TableHandler) ResolveByNumber(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "tableNumber")

	tc, err := h.tables.Resolve(r.Context(), number)
	if err != nil {
		WriteDomainError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, tc, h.log)
}

// ResolveByQR handles GET /api/tables/qr/{payload}. The payload is the full
// percent-encoded URL a scanner decoded from the table's QR code.
func (h *TableHandler) ResolveByQR(w http.ResponseWriter, r *http.Request) {
	payload := chi.URLParam(r, "payload")
	// chi hands the param back still escaped when the segment carries
	// encoded slashes.
	if decoded, err := url.PathUnescape(payload); err == nil {
		payload = decoded
	}
	if payload == "" {
		WriteDomainError(w, fmt.Errorf("%w: empty payload", apperr.ErrDecodeFailed), h.log)
		return
	}

	tc, err := h.tables.ResolveQRPayload(r.Context(), payload)
	if err != nil {
		WriteDomainError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, tc, h.log)
}

// UpdateStatus handles PATCH /api/tables/{tableNumber}/status
func (h *TableHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "tableNumber")

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	status := models.TableStatus(req.Status)
	switch status {
	case models.TableAvailable, models.TableOccupied, models.TableReserved, models.TableCleaning:
	default:
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("unknown table status: %s", req.Status), h.log)
		return
	}

	if err := h.tables.SetTableStatus(r.Context(), number, status); err != nil {
		WriteDomainError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"tableNumber": number, "status": req.Status}, h.log)
}
