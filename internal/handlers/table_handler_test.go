package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/sakuratei/order-system/internal/models"
)

func TestListTables(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/api/tables", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var tables []models.Table
	if err := json.NewDecoder(w.Body).Decode(&tables); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(tables) != 10 {
		t.Errorf("expected 10 tables, got %d", len(tables))
	}
}

func TestResolveTableByNumber(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		name       string
		identifier string
		wantStatus int
	}{
		{name: "valid table", identifier: "T03", wantStatus: http.StatusOK},
		{name: "unknown table", identifier: "T42", wantStatus: http.StatusNotFound},
		{name: "malformed identifier", identifier: "banquet", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodGet, "/api/tables/number/"+tt.identifier, nil)
			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}

			if tt.wantStatus != http.StatusOK {
				return
			}
			var tc models.TableContext
			if err := json.NewDecoder(w.Body).Decode(&tc); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if tc.Table == nil || tc.Table.Number != tt.identifier {
				t.Errorf("expected resolved table %s, got %+v", tt.identifier, tc.Table)
			}
		})
	}
}

func TestResolveTableByQR(t *testing.T) {
	r := newTestRouter()

	payload := url.PathEscape("http://localhost:3000/menu?table=T05")
	w := doJSON(t, r, http.MethodGet, "/api/tables/qr/"+payload, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var tc models.TableContext
	if err := json.NewDecoder(w.Body).Decode(&tc); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if tc.Table == nil || tc.Table.Number != "T05" {
		t.Errorf("expected table T05, got %+v", tc.Table)
	}
}

func TestResolveTableByQR_BadPayload(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/api/tables/qr/"+url.PathEscape("not a url"), nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestUpdateTableStatus(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPatch, "/api/tables/T02/status",
		map[string]string{"status": "CLEANING"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/tables/number/T02", nil)
	var tc models.TableContext
	if err := json.NewDecoder(w.Body).Decode(&tc); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if tc.Table.Status != models.TableCleaning {
		t.Errorf("expected status CLEANING, got %s", tc.Table.Status)
	}
}

func TestUpdateTableStatus_UnknownStatus(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodPatch, "/api/tables/T02/status",
		map[string]string{"status": "FLOODED"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}
