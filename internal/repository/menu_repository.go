package repository

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/sakuratei/order-system/internal/models"
)

// MenuRepository defines the read-only contract the ordering side has on
// the menu catalog.
type MenuRepository interface {
	GetAll(ctx context.Context) ([]models.MenuItem, error)
	GetAvailable(ctx context.Context) ([]models.MenuItem, error)
	GetByID(ctx context.Context, id string) (*models.MenuItem, error)
	GetByCategory(ctx context.Context, category models.Category) ([]models.MenuItem, error)
}

// InMemoryMenuRepository implements MenuRepository with in-memory storage
type InMemoryMenuRepository struct {
	mu    sync.RWMutex
	items map[string]models.MenuItem
}

// NewInMemoryMenuRepository creates a menu repository seeded with the house menu
func NewInMemoryMenuRepository() *InMemoryMenuRepository {
	repo := &InMemoryMenuRepository{items: make(map[string]models.MenuItem)}
	for i, item := range seedMenu() {
		item.ID = strconv.Itoa(i + 1)
		repo.items[item.ID] = item
	}
	return repo
}

// GetAll returns every menu item, available or not
func (r *InMemoryMenuRepository) GetAll(ctx context.Context) ([]models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.MenuItem, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item)
	}
	sortByID(items)
	return items, nil
}

// GetAvailable returns only the items currently orderable
func (r *InMemoryMenuRepository) GetAvailable(ctx context.Context) ([]models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.MenuItem, 0, len(r.items))
	for _, item := range r.items {
		if item.Available {
			items = append(items, item)
		}
	}
	sortByID(items)
	return items, nil
}

// GetByID returns a menu item by its ID
func (r *InMemoryMenuRepository) GetByID(ctx context.Context, id string) (*models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[id]
	if !exists {
		return nil, ErrMenuItemNotFound
	}
	return &item, nil
}

// GetByCategory returns the available items of one category
func (r *InMemoryMenuRepository) GetByCategory(ctx context.Context, category models.Category) ([]models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []models.MenuItem
	for _, item := range r.items {
		if item.Category == category && item.Available {
			items = append(items, item)
		}
	}
	sortByID(items)
	return items, nil
}

// SetAvailability flips the availability flag of one item. Used by the
// admin surface; the ordering side never writes the catalog.
func (r *InMemoryMenuRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[id]
	if !exists {
		return ErrMenuItemNotFound
	}
	item.Available = available
	r.items[id] = item
	return nil
}

func sortByID(items []models.MenuItem) {
	sort.Slice(items, func(i, j int) bool {
		a, _ := strconv.Atoi(items[i].ID)
		b, _ := strconv.Atoi(items[j].ID)
		return a < b
	})
}

// seedMenu returns the izakaya house menu. Prices are integer yen.
func seedMenu() []models.MenuItem {
	mk := func(name, desc string, price int64, cat models.Category, prep int) models.MenuItem {
		return models.MenuItem{
			Name: name, Description: desc, Price: price,
			Category: cat, PrepTimeMinutes: prep, Available: true,
		}
	}

	items := []models.MenuItem{
		mk("Edamame", "Boiled young soybeans finished with sea salt.", 380, models.CategoryAppetizer, 5),
		mk("Hiyayakko", "Chilled silken tofu with condiments and dashi soy.", 480, models.CategoryAppetizer, 5),
		mk("Morokyu", "Fresh cucumber with moromi miso.", 450, models.CategoryAppetizer, 5),
		mk("Changa", "Spicy salted cod innards. Goes well with sake.", 650, models.CategoryAppetizer, 5),
		mk("Assorted Sashimi", "Five kinds of today's recommended catch.", 1680, models.CategorySashimi, 10),
		mk("Lean Tuna", "Fresh lean cut of tuna.", 980, models.CategorySashimi, 10),
		mk("Salmon", "Fatty salmon slices.", 880, models.CategorySashimi, 10),
		mk("Yakitori Platter", "Five skewers: thigh, tsukune, negima and more.", 1280, models.CategoryGrilled, 15),
		mk("Grilled Mackerel", "Salt-grilled mackerel with grated daikon.", 780, models.CategoryGrilled, 15),
		mk("Beef Kalbi", "Tender grilled beef short rib.", 1480, models.CategoryGrilled, 15),
		mk("Karaage", "Juicy fried chicken.", 780, models.CategoryFried, 12),
		mk("Fried Horse Mackerel", "Crispy aji fry with tartar sauce.", 880, models.CategoryFried, 12),
		mk("Tempura Platter", "Prawn and vegetable tempura, five kinds.", 1380, models.CategoryFried, 15),
		mk("Motsunabe", "Offal hot pot in a soy-garlic broth.", 1580, models.CategoryHotPot, 20),
		mk("Oyakodon", "Chicken and fluffy egg over rice.", 880, models.CategoryRice, 12),
		mk("Kaisendon", "Rice bowl loaded with fresh sashimi.", 1480, models.CategoryRice, 10),
		mk("Fried Rice", "Chahan packed with vegetables and pork.", 980, models.CategoryRice, 10),
		mk("Ramen", "Classic soy-based ramen.", 780, models.CategoryNoodles, 12),
		mk("Yakisoba", "Sauce-fried noodles.", 680, models.CategoryNoodles, 10),
		mk("Draft Beer (Medium)", "Kirin Ichiban Shibori on tap.", 580, models.CategoryBeer, 2),
		mk("Draft Beer (Small)", "Kirin Ichiban Shibori on tap.", 380, models.CategoryBeer, 2),
		mk("Bottled Beer (Large)", "Kirin Lager, large bottle.", 650, models.CategoryBeer, 2),
		mk("Cold Sake (180ml)", "Today's recommended cold sake.", 680, models.CategorySake, 3),
		mk("Hot Sake (180ml)", "Warmed sake.", 580, models.CategorySake, 5),
		mk("Imo Shochu", "Sweet potato shochu from Kagoshima.", 480, models.CategoryShochu, 2),
		mk("Mugi Shochu", "Barley shochu from Oita.", 480, models.CategoryShochu, 2),
		mk("House Wine (Glass)", "Red or white.", 580, models.CategoryWine, 2),
		mk("Lemon Sour", "Shochu highball with fresh lemon.", 480, models.CategoryCocktail, 3),
		mk("Oolong Tea", "Refreshing oolong tea.", 280, models.CategorySoftDrink, 1),
		mk("Orange Juice", "100% orange juice.", 350, models.CategorySoftDrink, 1),
		mk("Cola", "Cola over ice.", 280, models.CategorySoftDrink, 1),
		mk("Umeshu", "Plum wine, straight or on the rocks.", 520, models.CategoryAlcoholic, 2),
		mk("Ice Cream", "Vanilla ice cream.", 380, models.CategoryDessert, 3),
		mk("Seasonal Sorbet", "Ask the staff for today's flavor.", 420, models.CategoryDessert, 3),
	}
	return items
}
