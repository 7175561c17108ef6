package services

import (
	"errors"
	"fmt"

	"resto_staff_backend/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// StaffService covers employee self-service operations.
type StaffService interface {
	// ToggleShift flips the employee's on-shift flag and returns the new state.
	ToggleShift(employeeID int64) (bool, error)
	// SetPassword bcrypt-hashes and stores a new password for an employee.
	SetPassword(employeeID int64, password string) error
}

type staffService struct {
	employeeRepo repositories.EmployeeRepository
	txm          repositories.TxManager
}

// NewStaffService creates a new instance of StaffService.
func NewStaffService(employeeRepo repositories.EmployeeRepository, txm repositories.TxManager) StaffService {
	return &staffService{employeeRepo: employeeRepo, txm: txm}
}

func (s *staffService) ToggleShift(employeeID int64) (bool, error) {
	employee, err := s.employeeRepo.FindByID(employeeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, ErrEmployeeNotFound
		}
		return false, fmt.Errorf("failed to fetch employee for shift toggle: %w", err)
	}

	newState := !employee.IsOnShift
	err = s.txm.WithinTx(func(tx repositories.SQLExecutor) error {
		return s.employeeRepo.SetOnShift(tx, employeeID, newState)
	})
	if err != nil {
		return false, fmt.Errorf("failed to toggle shift for employee ID %d: %w", employeeID, err)
	}
	return newState, nil
}

func (s *staffService) SetPassword(employeeID int64, password string) error {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = s.txm.WithinTx(func(tx repositories.SQLExecutor) error {
		return s.employeeRepo.SetPasswordHash(tx, employeeID, string(hashedPasswordBytes))
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to set password for employee ID %d: %w", employeeID, err)
	}
	return nil
}
