package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"go-dental-erp/internal/model"
	"go-dental-erp/internal/repository"
	"go-dental-erp/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeInactive   = errors.New("employee account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
	ResetPassword(email, oldPassword, newPassword string) error
	ValidateToken(tokenString string) (*TokenValidationResponse, error)
	Heartbeat(employeeID uuid.UUID) error
}

type LoginResponse struct {
	Token    string                 `json:"token"`
	Employee model.EmployeeResponse `json:"employee"`
	Role     model.Role             `json:"role"`
}

type TokenValidationResponse struct {
	Employee model.EmployeeResponse `json:"employee"`
	Role     model.Role             `json:"role"`
}

type authService struct {
	employeeRepo repository.EmployeeRepository
}

func NewAuthService(employeeRepo repository.EmployeeRepository) AuthService {
	return &authService{employeeRepo: employeeRepo}
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	// 1. Find employee by email
	employee, err := s.employeeRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// 2. Check if employee is active
	if !employee.IsActive {
		return nil, ErrEmployeeInactive
	}

	// 3. Verify password
	if !employee.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// 4. Single session: rotate token version
	newTokenVersion := uuid.New().String()
	now := time.Now()
	employee.TokenVersion = newTokenVersion
	employee.LastSeenAt = &now

	if err := s.employeeRepo.Update(employee); err != nil {
		return nil, errors.New("failed to update session")
	}

	// 5. Generate JWT token carrying the resolved role and clinic
	token, err := jwt.GenerateToken(employee.ID, employee.Email, employee.FullName, employee.Role, employee.ClinicID, newTokenVersion)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token:    token,
		Employee: employee.ToResponse(),
		Role:     employee.Role,
	}, nil
}

func (s *authService) ResetPassword(email, oldPassword, newPassword string) error {
	employee, err := s.employeeRepo.FindByEmail(email)
	if err != nil {
		return ErrEmployeeNotFound
	}

	if !employee.CheckPassword(oldPassword) {
		return ErrWrongPassword
	}

	if err := employee.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash password")
	}

	// Invalidate existing sessions along with the password change
	if err := s.employeeRepo.UpdatePassword(employee.ID, employee.Password); err != nil {
		return err
	}
	return s.employeeRepo.UpdateTokenVersion(employee.ID, uuid.New().String())
}

func (s *authService) ValidateToken(tokenString string) (*TokenValidationResponse, error) {
	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	employee, err := s.employeeRepo.FindByID(claims.EmployeeID)
	if err != nil {
		return nil, ErrEmployeeNotFound
	}

	if employee.TokenVersion != claims.TokenVersion {
		return nil, jwt.ErrInvalidToken
	}

	return &TokenValidationResponse{
		Employee: employee.ToResponse(),
		Role:     employee.Role,
	}, nil
}

func (s *authService) Heartbeat(employeeID uuid.UUID) error {
	return s.employeeRepo.UpdateLastSeen(employeeID)
}
