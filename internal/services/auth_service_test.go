package services

import (
	"errors"
	"testing"

	"resto_staff_backend/internal/models"
	"resto_staff_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

func hashedEmployee(t *testing.T, id int64, digits, password string) (*fakeEmployeeRepo, *models.Employee) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt.GenerateFromPassword() error = %v", err)
	}
	hashStr := string(hash)
	employee := &models.Employee{
		ID: id, FullName: "Aidana", PhoneNumber: "+7 (700) 123-45-67", PasswordHash: &hashStr,
		RoleID: 1, Role: &models.Role{ID: 1, Name: "Waiter", CanServeTables: true},
	}
	repo := newFakeEmployeeRepo(employee)
	repo.byDigits[digits] = employee
	return repo, employee
}

func TestLoginNormalizesPhoneToDigits(t *testing.T) {
	repo, _ := hashedEmployee(t, 1, "77001234567", "secret")
	svc := NewAuthService(repo)

	token, employee, err := svc.Login("+7 (700) 123-45-67", "secret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if token == "" {
		t.Error("Login() returned empty token")
	}
	if employee.PasswordHash != nil {
		t.Error("Login() leaked the password hash")
	}

	claims, err := utils.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.EmployeeID != 1 || claims.Role != "Waiter" {
		t.Errorf("claims = %+v, want employee 1 with role Waiter", claims)
	}
}

func TestLoginFailures(t *testing.T) {
	repo, employee := hashedEmployee(t, 1, "77001234567", "secret")
	unset := &models.Employee{ID: 2, FullName: "Marat", PhoneNumber: "+77005550000", RoleID: 2, Role: employee.Role}
	repo.employees[2] = unset
	repo.byDigits["77005550000"] = unset

	tests := []struct {
		name     string
		phone    string
		password string
		wantErr  error
	}{
		{name: "unknownPhone", phone: "+77009999999", password: "secret", wantErr: ErrEmployeeNotFound},
		{name: "noDigitsAtAll", phone: "not-a-phone", password: "secret", wantErr: ErrEmployeeNotFound},
		{name: "passwordNeverSet", phone: "+77005550000", password: "anything", wantErr: ErrPasswordNotSet},
		{name: "wrongPassword", phone: "77001234567", password: "wrong", wantErr: ErrInvalidCredentials},
	}

	svc := NewAuthService(repo)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Login(tt.phone, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Login() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetProfileStripsHash(t *testing.T) {
	repo, _ := hashedEmployee(t, 1, "77001234567", "secret")
	svc := NewAuthService(repo)

	employee, err := svc.GetProfile(1)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if employee.PasswordHash != nil {
		t.Error("GetProfile() leaked the password hash")
	}

	if _, err := svc.GetProfile(42); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("GetProfile(42) error = %v, want ErrEmployeeNotFound", err)
	}
}

func TestToggleShiftFlipsState(t *testing.T) {
	employee := waiterEmployee(1)
	repo := newFakeEmployeeRepo(employee)
	svc := NewStaffService(repo, &fakeTxManager{})

	state, err := svc.ToggleShift(1)
	if err != nil {
		t.Fatalf("ToggleShift() error = %v", err)
	}
	if !state || !repo.employees[1].IsOnShift {
		t.Errorf("first toggle state = %v, want on shift", state)
	}

	state, err = svc.ToggleShift(1)
	if err != nil {
		t.Fatalf("ToggleShift() error = %v", err)
	}
	if state || repo.employees[1].IsOnShift {
		t.Errorf("second toggle state = %v, want off shift", state)
	}

	if _, err := svc.ToggleShift(42); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("ToggleShift(42) error = %v, want ErrEmployeeNotFound", err)
	}
}

func TestSetPasswordStoresBcryptHash(t *testing.T) {
	employee := waiterEmployee(1)
	repo := newFakeEmployeeRepo(employee)
	svc := NewStaffService(repo, &fakeTxManager{})

	if err := svc.SetPassword(1, "new-secret"); err != nil {
		t.Fatalf("SetPassword() error = %v", err)
	}
	stored, ok := repo.passwords[1]
	if !ok {
		t.Fatal("SetPassword() stored no hash")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte("new-secret")); err != nil {
		t.Errorf("stored hash does not verify the password: %v", err)
	}

	if err := svc.SetPassword(42, "x"); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("SetPassword(42) error = %v, want ErrEmployeeNotFound", err)
	}
}
