package model

import (
	"time"

	"github.com/google/uuid"
)

// ServiceStatus is the confirmation state of a consulted service.
type ServiceStatus string

const (
	ServiceUnconfirmed ServiceStatus = "Chưa chốt"
	ServiceConfirmed   ServiceStatus = "Đã chốt"
)

// ConsultedService is a service quoted to a customer during consultation.
// ServiceName/ServiceUnit/ListPrice are frozen copies of the DentalService master
// taken at creation time.
type ConsultedService struct {
	BaseModel
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id" validate:"uuid_required"`
	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	ClinicID uuid.UUID `gorm:"type:uuid;not null;index" json:"clinic_id" validate:"uuid_required"`
	Clinic   *Clinic   `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`

	DentalServiceID uuid.UUID      `gorm:"type:uuid;not null;index" json:"dental_service_id" validate:"uuid_required"`
	DentalService   *DentalService `gorm:"foreignKey:DentalServiceID" json:"dental_service,omitempty"`

	// Denormalized snapshot, copied from DentalService at create and frozen
	ServiceName string `gorm:"type:varchar(255);not null" json:"service_name"`
	ServiceUnit string `gorm:"type:varchar(50)" json:"service_unit"`
	ListPrice   int64  `gorm:"not null;default:0" json:"list_price"`

	Quantity   int   `gorm:"not null;default:1" json:"quantity" validate:"gt=0"`
	FinalPrice int64 `gorm:"not null;default:0" json:"final_price" validate:"gte=0"` // Negotiated unit price
	AmountPaid int64 `gorm:"not null;default:0" json:"amount_paid"`
	Debt       int64 `gorm:"not null;default:0" json:"debt"` // Always ComputeDebt output, never set by callers

	Status      ServiceStatus `gorm:"type:varchar(20);not null;default:'Chưa chốt'" json:"status"`
	ConfirmedAt *time.Time    `json:"confirmed_at,omitempty"`

	// Owner refs
	SaleID   *uuid.UUID `gorm:"type:uuid;index" json:"sale_id,omitempty"`
	Sale     *Employee  `gorm:"foreignKey:SaleID" json:"sale,omitempty"`
	DoctorID *uuid.UUID `gorm:"type:uuid;index" json:"doctor_id,omitempty"`
	Doctor   *Employee  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`

	// Optional link back to the appointment the consultation happened in
	AppointmentID *uuid.UUID `gorm:"type:uuid;index" json:"appointment_id,omitempty"`
}

func (ConsultedService) TableName() string {
	return "consulted_services"
}

// ComputeDebt returns the outstanding amount for a service line.
// Debt is a pure function of the financial fields; it is recomputed on every
// financial mutation and never edited directly.
func ComputeDebt(finalPrice int64, quantity int, amountPaid int64) int64 {
	return finalPrice*int64(quantity) - amountPaid
}

// TotalPrice is the negotiated total for the line.
func (cs *ConsultedService) TotalPrice() int64 {
	return cs.FinalPrice * int64(cs.Quantity)
}

// OwnerIDs returns the employee ids with an ownership relation to this record.
func (cs *ConsultedService) OwnerIDs() []uuid.UUID {
	var ids []uuid.UUID
	if cs.SaleID != nil {
		ids = append(ids, *cs.SaleID)
	}
	if cs.DoctorID != nil {
		ids = append(ids, *cs.DoctorID)
	}
	return ids
}
