package repository

import (
	"go-dental-erp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmployeeRepository interface {
	FindByEmail(email string) (*model.Employee, error)
	FindByID(id uuid.UUID) (*model.Employee, error)
	FindAll(clinicID *uuid.UUID) ([]model.Employee, error)
	Create(employee *model.Employee) error
	Update(employee *model.Employee) error
	Delete(id uuid.UUID, deletedBy string) error
	UpdatePassword(employeeID uuid.UUID, hashedPassword string) error
	UpdateTokenVersion(employeeID uuid.UUID, version string) error
	UpdateLastSeen(employeeID uuid.UUID) error
}

type employeeRepo struct {
	db *gorm.DB
}

func NewEmployeeRepo(db *gorm.DB) EmployeeRepository {
	return &employeeRepo{db}
}

func (r *employeeRepo) FindByEmail(email string) (*model.Employee, error) {
	var employee model.Employee
	if err := r.db.Preload("Clinic").Where("email = ?", email).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepo) FindByID(id uuid.UUID) (*model.Employee, error) {
	var employee model.Employee
	if err := r.db.Preload("Clinic").First(&employee, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepo) FindAll(clinicID *uuid.UUID) ([]model.Employee, error) {
	var employees []model.Employee
	q := r.db.Preload("Clinic")
	if clinicID != nil {
		q = q.Where("clinic_id = ?", *clinicID)
	}
	err := q.Order("full_name ASC").Find(&employees).Error
	return employees, err
}

func (r *employeeRepo) Create(employee *model.Employee) error {
	return r.db.Create(employee).Error
}

func (r *employeeRepo) Update(employee *model.Employee) error {
	return r.db.Save(employee).Error
}

func (r *employeeRepo) Delete(id uuid.UUID, deletedBy string) error {
	if err := r.db.Model(&model.Employee{}).Where("id = ?", id).Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.Delete(&model.Employee{}, "id = ?", id).Error
}

func (r *employeeRepo) UpdatePassword(employeeID uuid.UUID, hashedPassword string) error {
	return r.db.Model(&model.Employee{}).Where("id = ?", employeeID).Update("password", hashedPassword).Error
}

func (r *employeeRepo) UpdateTokenVersion(employeeID uuid.UUID, version string) error {
	return r.db.Model(&model.Employee{}).Where("id = ?", employeeID).Update("token_version", version).Error
}

func (r *employeeRepo) UpdateLastSeen(employeeID uuid.UUID) error {
	return r.db.Model(&model.Employee{}).Where("id = ?", employeeID).Update("last_seen_at", gorm.Expr("NOW()")).Error
}
