package model

import (
	"github.com/google/uuid"
)

// TreatmentLog is a per-visit clinical note written by the treating doctor.
// The author may edit it only within a fixed window after creation; after that
// the note is frozen for the medical record.
type TreatmentLog struct {
	BaseModel
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id" validate:"uuid_required"`
	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	ClinicID uuid.UUID `gorm:"type:uuid;not null;index" json:"clinic_id" validate:"uuid_required"`
	Clinic   *Clinic   `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`

	DoctorID uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id" validate:"uuid_required"`
	Doctor   *Employee `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`

	ConsultedServiceID *uuid.UUID        `gorm:"type:uuid;index" json:"consulted_service_id,omitempty"`
	ConsultedService   *ConsultedService `gorm:"foreignKey:ConsultedServiceID" json:"consulted_service,omitempty"`

	Content  string `gorm:"type:text;not null" json:"content" validate:"required"`
	NextStep string `gorm:"type:text" json:"next_step,omitempty"`
}

func (TreatmentLog) TableName() string {
	return "treatment_logs"
}
