package repositories

import (
	"database/sql"
	"fmt"

	"resto_staff_backend/internal/models"

	"github.com/lib/pq"
)

// MenuRepository defines the interface for read-only menu data.
type MenuRepository interface {
	ListRestaurantCategories() ([]models.Category, error)
	ListActiveProducts(categoryID int64) ([]models.Product, error)
	// GetProductsByIDs resolves a set of product ids to products in one
	// query. Unknown ids are simply absent from the result map.
	GetProductsByIDs(productIDs []int64) (map[int64]models.Product, error)
}

type menuRepository struct {
	db *sql.DB
}

// NewMenuRepository creates a new instance of MenuRepository.
func NewMenuRepository(db *sql.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) ListRestaurantCategories() ([]models.Category, error) {
	query := `SELECT id, name, sort_order, show_in_restaurant
	          FROM categories
	          WHERE show_in_restaurant = TRUE
	          ORDER BY sort_order`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying restaurant categories: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.SortOrder, &c.ShowInRestaurant); err != nil {
			return nil, fmt.Errorf("%w: scanning category: %v", ErrDatabaseError, err)
		}
		categories = append(categories, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating category rows: %v", ErrDatabaseError, err)
	}
	return categories, nil
}

func (r *menuRepository) ListActiveProducts(categoryID int64) ([]models.Product, error) {
	query := `SELECT id, category_id, name, price, is_active, preparation_area
	          FROM products
	          WHERE category_id = $1 AND is_active = TRUE
	          ORDER BY id`
	rows, err := r.db.Query(query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying products for category ID %d: %v", ErrDatabaseError, categoryID, err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Price, &p.IsActive, &p.PreparationArea); err != nil {
			return nil, fmt.Errorf("%w: scanning product: %v", ErrDatabaseError, err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating product rows: %v", ErrDatabaseError, err)
	}
	return products, nil
}

func (r *menuRepository) GetProductsByIDs(productIDs []int64) (map[int64]models.Product, error) {
	products := make(map[int64]models.Product, len(productIDs))
	if len(productIDs) == 0 {
		return products, nil
	}

	query := `SELECT id, category_id, name, price, is_active, preparation_area
	          FROM products
	          WHERE id = ANY($1)`
	rows, err := r.db.Query(query, pq.Array(productIDs))
	if err != nil {
		return nil, fmt.Errorf("%w: querying products by ids: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Price, &p.IsActive, &p.PreparationArea); err != nil {
			return nil, fmt.Errorf("%w: scanning product: %v", ErrDatabaseError, err)
		}
		products[p.ID] = p
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating product rows: %v", ErrDatabaseError, err)
	}
	return products, nil
}
