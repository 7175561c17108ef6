package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"resto_staff_backend/internal/models"
)

// TableRepository defines the interface for table-related database operations.
type TableRepository interface {
	GetByID(tableID int64) (*models.Table, error)
	// ListByWaiter returns the tables assigned to an employee through the
	// table_waiters many-to-many relation, ordered by name.
	ListByWaiter(employeeID int64) ([]models.Table, error)
}

type tableRepository struct {
	db *sql.DB
}

// NewTableRepository creates a new instance of TableRepository.
func NewTableRepository(db *sql.DB) TableRepository {
	return &tableRepository{db: db}
}

func (r *tableRepository) GetByID(tableID int64) (*models.Table, error) {
	table := &models.Table{}
	query := `SELECT id, name FROM tables WHERE id = $1`
	err := r.db.QueryRow(query, tableID).Scan(&table.ID, &table.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting table by ID %d: %v", ErrDatabaseError, tableID, err)
	}
	return table, nil
}

func (r *tableRepository) ListByWaiter(employeeID int64) ([]models.Table, error) {
	query := `
		SELECT t.id, t.name
		FROM tables t
		JOIN table_waiters tw ON tw.table_id = t.id
		WHERE tw.employee_id = $1
		ORDER BY t.name`
	rows, err := r.db.Query(query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying tables for employee ID %d: %v", ErrDatabaseError, employeeID, err)
	}
	defer rows.Close()

	tables := []models.Table{}
	for rows.Next() {
		var t models.Table
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("%w: scanning table: %v", ErrDatabaseError, err)
		}
		tables = append(tables, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating table rows: %v", ErrDatabaseError, err)
	}
	return tables, nil
}
