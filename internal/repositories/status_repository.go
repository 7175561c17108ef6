package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"resto_staff_backend/internal/models"
)

// StatusRepository defines the interface for order status configuration rows.
type StatusRepository interface {
	GetByID(statusID int64) (*models.OrderStatus, error)
	GetByName(name string) (*models.OrderStatus, error)
	ListVisible(facet models.StatusFacet) ([]models.OrderStatus, error)
	// GetTerminal returns the canonical completed status used by pay_order.
	GetTerminal() (*models.OrderStatus, error)
}

type statusRepository struct {
	db *sql.DB
}

// NewStatusRepository creates a new instance of StatusRepository.
func NewStatusRepository(db *sql.DB) StatusRepository {
	return &statusRepository{db: db}
}

const statusColumns = `id, name, is_completed, is_cancelled,
	visible_to_chef, visible_to_bartender, visible_to_waiter, visible_to_courier`

func scanStatus(s scanner) (*models.OrderStatus, error) {
	st := &models.OrderStatus{}
	err := s.Scan(
		&st.ID, &st.Name, &st.IsCompleted, &st.IsCancelled,
		&st.VisibleToChef, &st.VisibleToBartender, &st.VisibleToWaiter, &st.VisibleToCourier,
	)
	if err != nil {
		return nil, err
	}
	return st, nil
}

func (r *statusRepository) GetByID(statusID int64) (*models.OrderStatus, error) {
	query := `SELECT ` + statusColumns + ` FROM order_statuses WHERE id = $1`
	st, err := scanStatus(r.db.QueryRow(query, statusID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting order status by ID %d: %v", ErrDatabaseError, statusID, err)
	}
	return st, nil
}

func (r *statusRepository) GetByName(name string) (*models.OrderStatus, error) {
	query := `SELECT ` + statusColumns + ` FROM order_statuses WHERE name = $1 ORDER BY id LIMIT 1`
	st, err := scanStatus(r.db.QueryRow(query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting order status by name %q: %v", ErrDatabaseError, name, err)
	}
	return st, nil
}

func (r *statusRepository) ListVisible(facet models.StatusFacet) ([]models.OrderStatus, error) {
	var column string
	switch facet {
	case models.FacetChef:
		column = "visible_to_chef"
	case models.FacetBartender:
		column = "visible_to_bartender"
	case models.FacetWaiter:
		column = "visible_to_waiter"
	case models.FacetCourier:
		column = "visible_to_courier"
	default:
		return nil, fmt.Errorf("%w: unknown status facet %q", ErrDatabaseError, facet)
	}

	query := `SELECT ` + statusColumns + ` FROM order_statuses WHERE ` + column + ` = TRUE ORDER BY id`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying %s-visible statuses: %v", ErrDatabaseError, facet, err)
	}
	defer rows.Close()

	statuses := []models.OrderStatus{}
	for rows.Next() {
		st, err := scanStatus(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning order status: %v", ErrDatabaseError, err)
		}
		statuses = append(statuses, *st)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating status rows: %v", ErrDatabaseError, err)
	}
	return statuses, nil
}

func (r *statusRepository) GetTerminal() (*models.OrderStatus, error) {
	query := `SELECT ` + statusColumns + ` FROM order_statuses WHERE is_completed = TRUE ORDER BY id LIMIT 1`
	st, err := scanStatus(r.db.QueryRow(query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting terminal order status: %v", ErrDatabaseError, err)
	}
	return st, nil
}
