package model

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus is the visible lifecycle label of an appointment.
// It is DERIVED from the timestamps/flags below, never stored as its own column,
// so a write path can never leave label and timestamps disagreeing.
type AppointmentStatus string

const (
	ApptScheduled   AppointmentStatus = "Chưa đến"  // Booked, nobody walked in yet
	ApptInTreatment AppointmentStatus = "Đang khám" // Checked in, not checked out
	ApptCompleted   AppointmentStatus = "Hoàn tất"  // Checked in and out
	ApptNoShow      AppointmentStatus = "Không đến"
	ApptCancelled   AppointmentStatus = "Đã hủy"
)

// Appointment represents a booked visit
type Appointment struct {
	BaseModel
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id" validate:"uuid_required"`
	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	ClinicID uuid.UUID `gorm:"type:uuid;not null;index" json:"clinic_id" validate:"uuid_required"`
	Clinic   *Clinic   `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`

	DoctorID *uuid.UUID `gorm:"type:uuid;index" json:"doctor_id,omitempty"`
	Doctor   *Employee  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`

	ScheduledAt time.Time `gorm:"not null;index" json:"scheduled_at" validate:"required"`
	Note        string    `gorm:"type:text" json:"note,omitempty"`

	CheckInTime  *time.Time `json:"check_in_time,omitempty"`
	CheckOutTime *time.Time `json:"check_out_time,omitempty"`
	IsNoShow     bool       `gorm:"default:false" json:"is_no_show"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
	CancelReason string     `gorm:"type:varchar(255)" json:"cancel_reason,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// DerivedStatus maps the timestamp/flag combination to exactly one label.
// Cancellation and no-show are only reachable before check-in, so they win
// over the walk-in timestamps.
func (a *Appointment) DerivedStatus() AppointmentStatus {
	switch {
	case a.CancelledAt != nil:
		return ApptCancelled
	case a.IsNoShow:
		return ApptNoShow
	case a.CheckInTime != nil && a.CheckOutTime != nil:
		return ApptCompleted
	case a.CheckInTime != nil:
		return ApptInTreatment
	default:
		return ApptScheduled
	}
}

// Locked reports whether the appointment reached a state where normal edits are
// closed and only quick actions remain.
func (a *Appointment) Locked() bool {
	s := a.DerivedStatus()
	return s != ApptScheduled
}

// AppointmentResponse for API responses, with the derived status materialized
type AppointmentResponse struct {
	Appointment
	Status AppointmentStatus `json:"status"`
}

// ToResponse converts Appointment to AppointmentResponse
func (a *Appointment) ToResponse() AppointmentResponse {
	return AppointmentResponse{
		Appointment: *a,
		Status:      a.DerivedStatus(),
	}
}
