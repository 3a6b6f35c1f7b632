package repository

import (
	"time"

	"go-dental-erp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(appointment *model.Appointment) error
	FindByID(id uuid.UUID) (*model.Appointment, error)
	FindByClinicAndRange(clinicID *uuid.UUID, from, to time.Time) ([]model.Appointment, error)
	Update(appointment *model.Appointment) error
	// CheckIn/CheckOut/Cancel/MarkNoShow are guarded timestamp updates plus the
	// audit row, committed together.
	CheckIn(id uuid.UUID, at time.Time, updatedBy string, audit *model.StatusAudit) error
	CheckOut(id uuid.UUID, at time.Time, updatedBy string, audit *model.StatusAudit) error
	Cancel(id uuid.UUID, at time.Time, reason, updatedBy string, audit *model.StatusAudit) error
	MarkNoShow(id uuid.UUID, updatedBy string, audit *model.StatusAudit) error
	// HardDelete removes a draft appointment outright (pre-transaction record rule)
	HardDelete(id uuid.UUID) error
}

type appointmentRepo struct {
	db *gorm.DB
}

func NewAppointmentRepo(db *gorm.DB) AppointmentRepository {
	return &appointmentRepo{db}
}

func (r *appointmentRepo) Create(appointment *model.Appointment) error {
	return r.db.Create(appointment).Error
}

func (r *appointmentRepo) FindByID(id uuid.UUID) (*model.Appointment, error) {
	var appointment model.Appointment
	err := r.db.Preload("Customer").Preload("Doctor").Preload("Clinic").First(&appointment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepo) FindByClinicAndRange(clinicID *uuid.UUID, from, to time.Time) ([]model.Appointment, error) {
	var appointments []model.Appointment
	q := r.db.Preload("Customer").Preload("Doctor").
		Where("scheduled_at BETWEEN ? AND ?", from, to)
	if clinicID != nil {
		q = q.Where("clinic_id = ?", *clinicID)
	}
	err := q.Order("scheduled_at ASC").Find(&appointments).Error
	return appointments, err
}

func (r *appointmentRepo) Update(appointment *model.Appointment) error {
	return r.db.Save(appointment).Error
}

// openGuard matches appointments still waiting for the customer: no walk-in
// timestamps, not cancelled, not no-show.
const openGuard = "id = ? AND check_in_time IS NULL AND cancelled_at IS NULL AND is_no_show = false"

func (r *appointmentRepo) applyGuarded(id uuid.UUID, guard string, args []interface{}, updates map[string]interface{}, audit *model.StatusAudit) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Appointment{}).Where(guard, args...).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&model.Appointment{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return gorm.ErrRecordNotFound
			}
			return ErrStateChanged
		}
		return tx.Create(audit).Error
	})
}

func (r *appointmentRepo) CheckIn(id uuid.UUID, at time.Time, updatedBy string, audit *model.StatusAudit) error {
	return r.applyGuarded(id, openGuard, []interface{}{id}, map[string]interface{}{
		"check_in_time": at,
		"updated_by":    updatedBy,
	}, audit)
}

func (r *appointmentRepo) CheckOut(id uuid.UUID, at time.Time, updatedBy string, audit *model.StatusAudit) error {
	guard := "id = ? AND check_in_time IS NOT NULL AND check_out_time IS NULL"
	return r.applyGuarded(id, guard, []interface{}{id}, map[string]interface{}{
		"check_out_time": at,
		"updated_by":     updatedBy,
	}, audit)
}

func (r *appointmentRepo) Cancel(id uuid.UUID, at time.Time, reason, updatedBy string, audit *model.StatusAudit) error {
	return r.applyGuarded(id, openGuard, []interface{}{id}, map[string]interface{}{
		"cancelled_at":  at,
		"cancel_reason": reason,
		"updated_by":    updatedBy,
	}, audit)
}

func (r *appointmentRepo) MarkNoShow(id uuid.UUID, updatedBy string, audit *model.StatusAudit) error {
	return r.applyGuarded(id, openGuard, []interface{}{id}, map[string]interface{}{
		"is_no_show": true,
		"updated_by": updatedBy,
	}, audit)
}

func (r *appointmentRepo) HardDelete(id uuid.UUID) error {
	return r.db.Unscoped().Delete(&model.Appointment{}, "id = ?", id).Error
}
