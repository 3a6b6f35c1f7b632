package repository

import (
	"go-dental-erp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TreatmentLogRepository interface {
	Create(log *model.TreatmentLog) error
	FindByID(id uuid.UUID) (*model.TreatmentLog, error)
	FindByCustomer(customerID uuid.UUID) ([]model.TreatmentLog, error)
	Update(log *model.TreatmentLog) error
}

type treatmentLogRepo struct {
	db *gorm.DB
}

func NewTreatmentLogRepo(db *gorm.DB) TreatmentLogRepository {
	return &treatmentLogRepo{db}
}

func (r *treatmentLogRepo) Create(log *model.TreatmentLog) error {
	return r.db.Create(log).Error
}

func (r *treatmentLogRepo) FindByID(id uuid.UUID) (*model.TreatmentLog, error) {
	var log model.TreatmentLog
	err := r.db.Preload("Doctor").First(&log, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *treatmentLogRepo) FindByCustomer(customerID uuid.UUID) ([]model.TreatmentLog, error) {
	var logs []model.TreatmentLog
	err := r.db.Preload("Doctor").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

func (r *treatmentLogRepo) Update(log *model.TreatmentLog) error {
	return r.db.Save(log).Error
}
