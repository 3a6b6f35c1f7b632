package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role is the closed set of account roles. It is resolved once from the JWT at the
// auth boundary and passed around as a typed value, never re-compared as a raw string.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// JobTitle marks what an employee does day to day. It drives ownership checks
// (treating doctor, consulting sale, cashier), not privileges.
type JobTitle string

const (
	JobDoctor  JobTitle = "doctor"
	JobSale    JobTitle = "sale"
	JobCashier JobTitle = "cashier"
	JobOther   JobTitle = "other"
)

// Employee represents a staff login account
type Employee struct {
	BaseModel
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password     string     `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	FullName     string     `gorm:"type:varchar(255)" json:"full_name" validate:"required"`
	PhoneNumber  string     `gorm:"type:varchar(20)" json:"phone_number"`
	Role         Role       `gorm:"type:varchar(20);not null;default:'employee'" json:"role"`
	JobTitle     JobTitle   `gorm:"type:varchar(20);not null;default:'other'" json:"job_title"`
	ClinicID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"clinic_id" validate:"uuid_required"`
	Clinic       *Clinic    `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	TokenVersion string     `gorm:"type:varchar(255);default:''" json:"-"` // For single session enforcement
	LastSeenAt   *time.Time `json:"last_seen_at,omitempty"`
}

func (Employee) TableName() string {
	return "employees"
}

// SetPassword hashes and sets the employee's password
func (e *Employee) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	e.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (e *Employee) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(e.Password), []byte(password))
	return err == nil
}

// EmployeeResponse is used for API responses (without sensitive data)
type EmployeeResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	PhoneNumber string     `json:"phone_number"`
	Role        Role       `json:"role"`
	JobTitle    JobTitle   `json:"job_title"`
	ClinicID    uuid.UUID  `json:"clinic_id"`
	Clinic      *Clinic    `json:"clinic,omitempty"`
	IsActive    bool       `json:"is_active"`
	LastSeenAt  *time.Time `json:"last_seen_at,omitempty"`
}

// ToResponse converts Employee to EmployeeResponse
func (e *Employee) ToResponse() EmployeeResponse {
	return EmployeeResponse{
		ID:          e.ID,
		Email:       e.Email,
		FullName:    e.FullName,
		PhoneNumber: e.PhoneNumber,
		Role:        e.Role,
		JobTitle:    e.JobTitle,
		ClinicID:    e.ClinicID,
		Clinic:      e.Clinic,
		IsActive:    e.IsActive,
		LastSeenAt:  e.LastSeenAt,
	}
}
