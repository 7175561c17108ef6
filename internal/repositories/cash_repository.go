package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq" // For pq.Error
)

// CashRepository covers the cash-shift bookkeeping side effects of terminal
// transitions: linking a completed order to the acting employee's shift and
// registering the cash amount as the employee's debt to the register.
// Both writes are idempotent per (order, employee) so callers may safely
// re-invoke them; they run inside the caller's transaction.
type CashRepository interface {
	LinkOrderToShift(executor SQLExecutor, orderID, employeeID int64) error
	RegisterEmployeeDebt(executor SQLExecutor, orderID, employeeID int64, amount float64) error
}

type cashRepository struct {
	db *sql.DB
}

// NewCashRepository creates a new instance of CashRepository.
func NewCashRepository(db *sql.DB) CashRepository {
	return &cashRepository{db: db}
}

func (r *cashRepository) LinkOrderToShift(executor SQLExecutor, orderID, employeeID int64) error {
	query := `INSERT INTO shift_orders (order_id, employee_id, linked_at)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (order_id, employee_id) DO NOTHING`
	_, err := executor.Exec(query, orderID, employeeID, time.Now())
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil
		}
		return fmt.Errorf("%w: linking order ID %d to shift of employee ID %d: %v", ErrDatabaseError, orderID, employeeID, err)
	}
	return nil
}

func (r *cashRepository) RegisterEmployeeDebt(executor SQLExecutor, orderID, employeeID int64, amount float64) error {
	query := `INSERT INTO employee_debts (order_id, employee_id, amount, created_at)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (order_id, employee_id) DO NOTHING`
	_, err := executor.Exec(query, orderID, employeeID, amount, time.Now())
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil
		}
		return fmt.Errorf("%w: registering debt for order ID %d, employee ID %d: %v", ErrDatabaseError, orderID, employeeID, err)
	}
	return nil
}
