package model

import (
	"time"

	"github.com/google/uuid"
)

// LaboStatus is the state of an external dental-lab order.
type LaboStatus string

const (
	LaboOrdered   LaboStatus = "ordered"
	LaboSent      LaboStatus = "sent"
	LaboReceived  LaboStatus = "received"
	LaboDelivered LaboStatus = "delivered"
	LaboCancelled LaboStatus = "cancelled"
)

// LaboOrder tracks a prosthetic piece (crown, denture...) ordered from an
// external lab for one consulted service.
type LaboOrder struct {
	BaseModel
	ConsultedServiceID uuid.UUID         `gorm:"type:uuid;not null;index" json:"consulted_service_id" validate:"uuid_required"`
	ConsultedService   *ConsultedService `gorm:"foreignKey:ConsultedServiceID" json:"consulted_service,omitempty"`

	ClinicID uuid.UUID `gorm:"type:uuid;not null;index" json:"clinic_id" validate:"uuid_required"`
	Clinic   *Clinic   `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`

	LabName     string     `gorm:"type:varchar(255);not null" json:"lab_name" validate:"required"`
	Item        string     `gorm:"type:varchar(255);not null" json:"item" validate:"required"`
	Cost        int64      `gorm:"not null;default:0" json:"cost" validate:"gte=0"`
	Status      LaboStatus `gorm:"type:varchar(20);not null;default:'ordered'" json:"status"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
	ReceivedAt  *time.Time `json:"received_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
}

func (LaboOrder) TableName() string {
	return "labo_orders"
}
