package repository

import (
	"fmt"

	"go-dental-erp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(customer *model.Customer) error
	FindByID(id uuid.UUID) (*model.Customer, error)
	FindAll(clinicID *uuid.UUID) ([]model.Customer, error)
	Update(customer *model.Customer) error
	// NextCode reserves the next sequential customer code (KH-NNNNNN)
	NextCode() (string, error)
	// ChangeStage runs the guarded stage update and appends the audit row atomically
	ChangeStage(id uuid.UUID, from, to model.PipelineStage, updatedBy string, audit *model.StatusAudit) error
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) Create(customer *model.Customer) error {
	return r.db.Create(customer).Error
}

func (r *customerRepo) FindByID(id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.Preload("Clinic").Preload("Sale").First(&customer, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) FindAll(clinicID *uuid.UUID) ([]model.Customer, error) {
	var customers []model.Customer
	q := r.db.Preload("Clinic").Preload("Sale")
	if clinicID != nil {
		q = q.Where("clinic_id = ?", *clinicID)
	}
	err := q.Order("created_at DESC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) Update(customer *model.Customer) error {
	return r.db.Save(customer).Error
}

func (r *customerRepo) NextCode() (string, error) {
	var next int64
	err := r.db.Raw("SELECT nextval('customer_code_seq')").Scan(&next).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("KH-%06d", next), nil
}

func (r *customerRepo) ChangeStage(id uuid.UUID, from, to model.PipelineStage, updatedBy string, audit *model.StatusAudit) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := guardedUpdate(tx, &model.Customer{}, id, "stage", from, map[string]interface{}{
			"stage":      to,
			"updated_by": updatedBy,
		}); err != nil {
			return err
		}
		return tx.Create(audit).Error
	})
}
