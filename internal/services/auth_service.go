package services

import (
	"errors"
	"fmt"

	"resto_staff_backend/internal/models"
	"resto_staff_backend/internal/repositories"
	"resto_staff_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors ---
var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrPasswordNotSet     = errors.New("password has not been set yet")
	ErrInvalidCredentials = errors.New("invalid phone or password")
	ErrTokenGeneration    = errors.New("failed to generate token")
)

// LoginRequest carries the staff login form fields.
type LoginRequest struct {
	Phone    string `form:"phone" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// AuthService handles staff login and session identity.
type AuthService interface {
	// Login matches the employee by phone digits and verifies the password.
	// On success it returns a signed session token and the employee.
	Login(phone, password string) (string, *models.Employee, error)
	GetProfile(employeeID int64) (*models.Employee, error)
}

type authService struct {
	employeeRepo repositories.EmployeeRepository
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(employeeRepo repositories.EmployeeRepository) AuthService {
	return &authService{employeeRepo: employeeRepo}
}

func (s *authService) Login(phone, password string) (string, *models.Employee, error) {
	digits := utils.DigitsOnly(phone)
	if digits == "" {
		return "", nil, ErrEmployeeNotFound
	}

	employee, err := s.employeeRepo.FindByPhoneDigits(digits)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", nil, ErrEmployeeNotFound
		}
		return "", nil, fmt.Errorf("login attempt failed: %w", err)
	}

	if employee.PasswordHash == nil || *employee.PasswordHash == "" {
		return "", nil, ErrPasswordNotSet
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*employee.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	roleName := ""
	if employee.Role != nil {
		roleName = employee.Role.Name
	}
	token, err := utils.GenerateSessionToken(employee.ID, employee.FullName, roleName)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	employee.PasswordHash = nil // Never expose the hash past this layer
	return token, employee, nil
}

func (s *authService) GetProfile(employeeID int64) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByID(employeeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to retrieve employee profile: %w", err)
	}
	employee.PasswordHash = nil
	return employee, nil
}
