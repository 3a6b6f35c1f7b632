package repository

import (
	"time"

	"go-dental-erp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConsultedServiceRepository interface {
	Create(cs *model.ConsultedService) error
	FindByID(id uuid.UUID) (*model.ConsultedService, error)
	FindByCustomer(customerID uuid.UUID) ([]model.ConsultedService, error)
	Update(cs *model.ConsultedService) error
	CountByAppointment(appointmentID uuid.UUID) (int64, error)
	// Confirm applies the guarded Chưa chốt -> Đã chốt update and appends the
	// audit row in one transaction. Debt is recomputed from the row's own
	// columns inside the update, not from the caller's earlier read.
	Confirm(id uuid.UUID, confirmedAt time.Time, updatedBy string, audit *model.StatusAudit) error
	// Migrate repoints children of one master service onto another. With
	// overwrite set, the frozen name/unit/price snapshots are rewritten to the
	// target's current values; otherwise only the foreign key moves.
	Migrate(fromServiceID uuid.UUID, target *model.DentalService, overwrite bool, updatedBy string) (int64, error)
}

type consultedServiceRepo struct {
	db *gorm.DB
}

func NewConsultedServiceRepo(db *gorm.DB) ConsultedServiceRepository {
	return &consultedServiceRepo{db}
}

func (r *consultedServiceRepo) Create(cs *model.ConsultedService) error {
	return r.db.Create(cs).Error
}

func (r *consultedServiceRepo) FindByID(id uuid.UUID) (*model.ConsultedService, error) {
	var cs model.ConsultedService
	err := r.db.Preload("Customer").Preload("Sale").Preload("Doctor").First(&cs, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &cs, nil
}

func (r *consultedServiceRepo) FindByCustomer(customerID uuid.UUID) ([]model.ConsultedService, error) {
	var services []model.ConsultedService
	err := r.db.Preload("Sale").Preload("Doctor").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&services).Error
	return services, err
}

func (r *consultedServiceRepo) Update(cs *model.ConsultedService) error {
	return r.db.Save(cs).Error
}

func (r *consultedServiceRepo) CountByAppointment(appointmentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.ConsultedService{}).
		Where("appointment_id = ?", appointmentID).
		Count(&count).Error
	return count, err
}

func (r *consultedServiceRepo) Confirm(id uuid.UUID, confirmedAt time.Time, updatedBy string, audit *model.StatusAudit) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := guardedUpdate(tx, &model.ConsultedService{}, id, "status", model.ServiceUnconfirmed, map[string]interface{}{
			"status":       model.ServiceConfirmed,
			"confirmed_at": confirmedAt,
			// A financial edit may have landed since the caller's read
			"debt":       gorm.Expr("final_price * quantity - amount_paid"),
			"updated_by": updatedBy,
		}); err != nil {
			return err
		}
		return tx.Create(audit).Error
	})
}

func (r *consultedServiceRepo) Migrate(fromServiceID uuid.UUID, target *model.DentalService, overwrite bool, updatedBy string) (int64, error) {
	updates := map[string]interface{}{
		"dental_service_id": target.ID,
		"updated_by":        updatedBy,
	}
	if overwrite {
		updates["service_name"] = target.Name
		updates["service_unit"] = target.Unit
		updates["list_price"] = target.Price
	}

	var affected int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.ConsultedService{}).
			Where("dental_service_id = ?", fromServiceID).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	return affected, err
}
