package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sakuratei/order-system/internal/apperr"
	"github.com/sakuratei/order-system/internal/models"
	"github.com/sakuratei/order-system/internal/repository"
)

// MenuService is the read-only menu catalog the cart and handlers consult
type MenuService struct {
	repo repository.MenuRepository
}

// NewMenuService creates a new menu service
func NewMenuService(repo repository.MenuRepository) *MenuService {
	return &MenuService{repo: repo}
}

// ListAvailable returns every item that can currently be ordered
func (s *MenuService) ListAvailable(ctx context.Context) ([]models.MenuItem, error) {
	items, err := s.repo.GetAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: menu catalog: %v", apperr.ErrUnavailable, err)
	}
	return items, nil
}

// GetItem returns one menu item by ID
func (s *MenuService) GetItem(ctx context.Context, id string) (*models.MenuItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrMenuItemNotFound {
			return nil, fmt.Errorf("%w: menu item %s", apperr.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: menu catalog: %v", apperr.ErrUnavailable, err)
	}
	return item, nil
}

// ByCategory returns the available items of one category. The category
// string is normalized before matching.
func (s *MenuService) ByCategory(ctx context.Context, category string) ([]models.MenuItem, error) {
	c, err := models.ParseCategory(category)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}

	items, err := s.repo.GetByCategory(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("%w: menu catalog: %v", apperr.ErrUnavailable, err)
	}
	return items, nil
}

// Search matches the query case-insensitively against item names and
// descriptions. An empty query returns every available item.
func (s *MenuService) Search(ctx context.Context, query string) ([]models.MenuItem, error) {
	items, err := s.repo.GetAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: menu catalog: %v", apperr.ErrUnavailable, err)
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items, nil
	}

	matched := items[:0]
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), query) ||
			strings.Contains(strings.ToLower(item.Description), query) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}
