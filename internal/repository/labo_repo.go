package repository

import (
	"go-dental-erp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LaboOrderRepository interface {
	Create(order *model.LaboOrder) error
	FindByID(id uuid.UUID) (*model.LaboOrder, error)
	FindByClinic(clinicID *uuid.UUID) ([]model.LaboOrder, error)
	// ChangeStatus runs the guarded status update plus any timestamp columns for
	// the new state, with the audit row in the same transaction.
	ChangeStatus(id uuid.UUID, from, to model.LaboStatus, extra map[string]interface{}, updatedBy string, audit *model.StatusAudit) error
}

type laboOrderRepo struct {
	db *gorm.DB
}

func NewLaboOrderRepo(db *gorm.DB) LaboOrderRepository {
	return &laboOrderRepo{db}
}

func (r *laboOrderRepo) Create(order *model.LaboOrder) error {
	return r.db.Create(order).Error
}

func (r *laboOrderRepo) FindByID(id uuid.UUID) (*model.LaboOrder, error) {
	var order model.LaboOrder
	err := r.db.Preload("ConsultedService").Preload("ConsultedService.Customer").First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *laboOrderRepo) FindByClinic(clinicID *uuid.UUID) ([]model.LaboOrder, error) {
	var orders []model.LaboOrder
	q := r.db.Preload("ConsultedService").Preload("ConsultedService.Customer")
	if clinicID != nil {
		q = q.Where("clinic_id = ?", *clinicID)
	}
	err := q.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *laboOrderRepo) ChangeStatus(id uuid.UUID, from, to model.LaboStatus, extra map[string]interface{}, updatedBy string, audit *model.StatusAudit) error {
	updates := map[string]interface{}{
		"status":     to,
		"updated_by": updatedBy,
	}
	for k, v := range extra {
		updates[k] = v
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := guardedUpdate(tx, &model.LaboOrder{}, id, "status", from, updates); err != nil {
			return err
		}
		return tx.Create(audit).Error
	})
}
