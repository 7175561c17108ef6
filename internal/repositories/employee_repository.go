package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"resto_staff_backend/internal/models"
)

// EmployeeRepository defines the interface for employee-related database operations.
type EmployeeRepository interface {
	FindByPhoneDigits(digits string) (*models.Employee, error)
	FindByID(employeeID int64) (*models.Employee, error)
	SetOnShift(executor SQLExecutor, employeeID int64, onShift bool) error
	SetPasswordHash(executor SQLExecutor, employeeID int64, hash string) error
}

type employeeRepository struct {
	db *sql.DB
}

// NewEmployeeRepository creates a new instance of EmployeeRepository.
func NewEmployeeRepository(db *sql.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeSelect = `
	SELECT e.id, e.full_name, e.phone_number, e.password_hash, e.role_id, e.is_on_shift,
	       r.id, r.name, r.can_serve_tables, r.can_receive_kitchen_orders,
	       r.can_receive_bar_orders, r.can_be_assigned
	FROM employees e
	JOIN roles r ON e.role_id = r.id`

func scanEmployee(row *sql.Row) (*models.Employee, error) {
	emp := &models.Employee{}
	role := &models.Role{}
	err := row.Scan(
		&emp.ID, &emp.FullName, &emp.PhoneNumber, &emp.PasswordHash, &emp.RoleID, &emp.IsOnShift,
		&role.ID, &role.Name, &role.CanServeTables, &role.CanReceiveKitchenOrders,
		&role.CanReceiveBarOrders, &role.CanBeAssigned,
	)
	if err != nil {
		return nil, err
	}
	emp.Role = role
	return emp, nil
}

// FindByPhoneDigits matches an employee by the digits of their phone number,
// ignoring formatting characters stored in the column.
func (r *employeeRepository) FindByPhoneDigits(digits string) (*models.Employee, error) {
	query := employeeSelect + `
	WHERE regexp_replace(e.phone_number, '\D', '', 'g') LIKE '%' || $1 || '%'
	ORDER BY e.id
	LIMIT 1`

	emp, err := scanEmployee(r.db.QueryRow(query, digits))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding employee by phone: %v", ErrDatabaseError, err)
	}
	return emp, nil
}

func (r *employeeRepository) FindByID(employeeID int64) (*models.Employee, error) {
	query := employeeSelect + ` WHERE e.id = $1`

	emp, err := scanEmployee(r.db.QueryRow(query, employeeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding employee by ID %d: %v", ErrDatabaseError, employeeID, err)
	}
	return emp, nil
}

func (r *employeeRepository) SetOnShift(executor SQLExecutor, employeeID int64, onShift bool) error {
	query := `UPDATE employees SET is_on_shift = $1 WHERE id = $2`
	result, err := executor.Exec(query, onShift, employeeID)
	if err != nil {
		return fmt.Errorf("%w: updating shift flag for employee ID %d: %v", ErrDatabaseError, employeeID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for shift flag update ID %d: %v", ErrDatabaseError, employeeID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *employeeRepository) SetPasswordHash(executor SQLExecutor, employeeID int64, hash string) error {
	query := `UPDATE employees SET password_hash = $1 WHERE id = $2`
	result, err := executor.Exec(query, hash, employeeID)
	if err != nil {
		return fmt.Errorf("%w: setting password for employee ID %d: %v", ErrDatabaseError, employeeID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for password update ID %d: %v", ErrDatabaseError, employeeID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
