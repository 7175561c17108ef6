package services

import (
	"fmt"

	"resto_staff_backend/internal/repositories"
)

// MenuProduct is a single orderable position in the menu response.
type MenuProduct struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// MenuCategory groups the active products of one restaurant-visible category.
type MenuCategory struct {
	ID       int64         `json:"id"`
	Name     string        `json:"name"`
	Products []MenuProduct `json:"products"`
}

// MenuService serves the menu used by dine-in order creation.
type MenuService interface {
	FullMenu() ([]MenuCategory, error)
}

type menuService struct {
	menuRepo repositories.MenuRepository
}

// NewMenuService creates a new instance of MenuService.
func NewMenuService(menuRepo repositories.MenuRepository) MenuService {
	return &menuService{menuRepo: menuRepo}
}

func (s *menuService) FullMenu() ([]MenuCategory, error) {
	categories, err := s.menuRepo.ListRestaurantCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to list menu categories: %w", err)
	}

	menu := make([]MenuCategory, 0, len(categories))
	for _, c := range categories {
		products, err := s.menuRepo.ListActiveProducts(c.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list products for category ID %d: %w", c.ID, err)
		}
		entry := MenuCategory{ID: c.ID, Name: c.Name, Products: make([]MenuProduct, 0, len(products))}
		for _, p := range products {
			entry.Products = append(entry.Products, MenuProduct{ID: p.ID, Name: p.Name, Price: p.Price})
		}
		menu = append(menu, entry)
	}
	return menu, nil
}
