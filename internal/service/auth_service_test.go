package service

import (
	"testing"
	"time"

	"go-dental-erp/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type mockEmployeeRepo struct {
	FindByEmailFunc        func(email string) (*model.Employee, error)
	FindByIDFunc           func(id uuid.UUID) (*model.Employee, error)
	FindAllFunc            func(clinicID *uuid.UUID) ([]model.Employee, error)
	CreateFunc             func(employee *model.Employee) error
	UpdateFunc             func(employee *model.Employee) error
	DeleteFunc             func(id uuid.UUID, deletedBy string) error
	UpdatePasswordFunc     func(employeeID uuid.UUID, hashedPassword string) error
	UpdateTokenVersionFunc func(employeeID uuid.UUID, version string) error
	UpdateLastSeenFunc     func(employeeID uuid.UUID) error
}

func (m *mockEmployeeRepo) FindByEmail(email string) (*model.Employee, error) {
	if m.FindByEmailFunc == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.FindByEmailFunc(email)
}

func (m *mockEmployeeRepo) FindByID(id uuid.UUID) (*model.Employee, error) {
	if m.FindByIDFunc == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.FindByIDFunc(id)
}

func (m *mockEmployeeRepo) FindAll(clinicID *uuid.UUID) ([]model.Employee, error) {
	if m.FindAllFunc == nil {
		return nil, nil
	}
	return m.FindAllFunc(clinicID)
}

func (m *mockEmployeeRepo) Create(employee *model.Employee) error {
	if m.CreateFunc == nil {
		return nil
	}
	return m.CreateFunc(employee)
}

func (m *mockEmployeeRepo) Update(employee *model.Employee) error {
	if m.UpdateFunc == nil {
		return nil
	}
	return m.UpdateFunc(employee)
}

func (m *mockEmployeeRepo) Delete(id uuid.UUID, deletedBy string) error {
	if m.DeleteFunc == nil {
		return nil
	}
	return m.DeleteFunc(id, deletedBy)
}

func (m *mockEmployeeRepo) UpdatePassword(employeeID uuid.UUID, hashedPassword string) error {
	if m.UpdatePasswordFunc == nil {
		return nil
	}
	return m.UpdatePasswordFunc(employeeID, hashedPassword)
}

func (m *mockEmployeeRepo) UpdateTokenVersion(employeeID uuid.UUID, version string) error {
	if m.UpdateTokenVersionFunc == nil {
		return nil
	}
	return m.UpdateTokenVersionFunc(employeeID, version)
}

func (m *mockEmployeeRepo) UpdateLastSeen(employeeID uuid.UUID) error {
	if m.UpdateLastSeenFunc == nil {
		return nil
	}
	return m.UpdateLastSeenFunc(employeeID)
}

func storedEmployee(t *testing.T, password string) *model.Employee {
	t.Helper()
	e := &model.Employee{
		Email:        "bs.lan@clinic.vn",
		FullName:     "BS Lan",
		Role:         model.RoleEmployee,
		JobTitle:     model.JobDoctor,
		ClinicID:     uuid.New(),
		IsActive:     true,
		TokenVersion: "old-version",
	}
	e.ID = uuid.New()
	if err := e.SetPassword(password); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	return e
}

func TestLoginRotatesTokenVersion(t *testing.T) {
	employee := storedEmployee(t, "secret123")

	var saved *model.Employee
	repo := &mockEmployeeRepo{
		FindByEmailFunc: func(email string) (*model.Employee, error) { return employee, nil },
		UpdateFunc:      func(e *model.Employee) error { saved = e; return nil },
	}
	svc := NewAuthService(repo)

	resp, err := svc.Login(employee.Email, "secret123")

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, model.RoleEmployee, resp.Role)
	// Single-session: each login invalidates the previous token
	if assert.NotNil(t, saved) {
		assert.NotEqual(t, "old-version", saved.TokenVersion)
		assert.NotNil(t, saved.LastSeenAt)
		assert.WithinDuration(t, time.Now(), *saved.LastSeenAt, time.Minute)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	employee := storedEmployee(t, "secret123")

	repo := &mockEmployeeRepo{
		FindByEmailFunc: func(email string) (*model.Employee, error) { return employee, nil },
	}
	svc := NewAuthService(repo)

	_, err := svc.Login(employee.Email, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	employee := storedEmployee(t, "secret123")
	employee.IsActive = false

	repo := &mockEmployeeRepo{
		FindByEmailFunc: func(email string) (*model.Employee, error) { return employee, nil },
	}
	svc := NewAuthService(repo)

	_, err := svc.Login(employee.Email, "secret123")
	assert.ErrorIs(t, err, ErrEmployeeInactive)
}

func TestResetPasswordInvalidatesSessions(t *testing.T) {
	employee := storedEmployee(t, "secret123")

	versionRotated := false
	repo := &mockEmployeeRepo{
		FindByEmailFunc: func(email string) (*model.Employee, error) { return employee, nil },
		UpdateTokenVersionFunc: func(employeeID uuid.UUID, version string) error {
			assert.Equal(t, employee.ID, employeeID)
			assert.NotEqual(t, "old-version", version)
			versionRotated = true
			return nil
		},
	}
	svc := NewAuthService(repo)

	err := svc.ResetPassword(employee.Email, "secret123", "newsecret456")
	assert.NoError(t, err)
	assert.True(t, versionRotated)
	assert.True(t, employee.CheckPassword("newsecret456"))
}

func TestResetPasswordWrongCurrent(t *testing.T) {
	employee := storedEmployee(t, "secret123")

	repo := &mockEmployeeRepo{
		FindByEmailFunc: func(email string) (*model.Employee, error) { return employee, nil },
	}
	svc := NewAuthService(repo)

	err := svc.ResetPassword(employee.Email, "wrong", "newsecret456")
	assert.ErrorIs(t, err, ErrWrongPassword)
}
