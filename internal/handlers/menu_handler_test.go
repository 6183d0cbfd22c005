package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/sakuratei/order-system/internal/models"
)

func TestListMenu(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/api/menu", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var items []models.MenuItem
	if err := json.NewDecoder(w.Body).Decode(&items); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("expected menu items to be returned")
	}
	for _, item := range items {
		if !item.Available {
			t.Errorf("menu listing contains unavailable item %s", item.Name)
		}
	}
}

func TestGetMenuItem_Success(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/api/menu/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var item models.MenuItem
	if err := json.NewDecoder(w.Body).Decode(&item); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if item.ID != "1" {
		t.Errorf("expected item ID 1, got %s", item.ID)
	}
	if item.Name != "Edamame" {
		t.Errorf("expected Edamame, got %s", item.Name)
	}
}

func TestGetMenuItem_NotFound(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/api/menu/99999", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestMenuByCategory(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/api/menu/category/sashimi", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var items []models.MenuItem
	if err := json.NewDecoder(w.Body).Decode(&items); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("expected sashimi items")
	}
	for _, item := range items {
		if item.Category != models.CategorySashimi {
			t.Errorf("expected category SASHIMI, got %s", item.Category)
		}
	}
}

func TestMenuByCategory_Unknown(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/api/menu/category/fusion", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestMenuSearch(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/api/menu/search?q=karaage", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var items []models.MenuItem
	if err := json.NewDecoder(w.Body).Decode(&items); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 match, got %d", len(items))
	}
	if items[0].Name != "Karaage" {
		t.Errorf("expected Karaage, got %s", items[0].Name)
	}
}
