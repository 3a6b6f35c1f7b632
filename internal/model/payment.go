package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is how a voucher was paid at the desk.
type PaymentMethod string

const (
	PayCash     PaymentMethod = "CASH"
	PayTransfer PaymentMethod = "TRANSFER"
	PayCard     PaymentMethod = "CARD"
)

// PaymentVoucher records a customer payment captured by a cashier.
// Vouchers are financial records: never hard-deleted, soft-archive at most.
type PaymentVoucher struct {
	BaseModel
	VoucherCode string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"voucher_code"`
	CustomerID  uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id" validate:"uuid_required"`
	Customer    *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	ClinicID uuid.UUID `gorm:"type:uuid;not null;index" json:"clinic_id" validate:"uuid_required"`
	Clinic   *Clinic   `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`

	CashierID uuid.UUID `gorm:"type:uuid;not null;index" json:"cashier_id" validate:"uuid_required"`
	Cashier   *Employee `gorm:"foreignKey:CashierID" json:"cashier,omitempty"`

	Method      PaymentMethod `gorm:"type:varchar(20);not null" json:"method" validate:"required,oneof=CASH TRANSFER CARD"`
	TotalAmount int64         `gorm:"not null" json:"total_amount"` // Sum of detail amounts
	PaymentDate time.Time     `gorm:"not null;index" json:"payment_date"`
	Note        string        `gorm:"type:text" json:"note,omitempty"`

	Details []PaymentVoucherDetail `json:"details,omitempty"`
}

func (PaymentVoucher) TableName() string {
	return "payment_vouchers"
}

// PaymentVoucherDetail allocates part of a voucher onto one confirmed service.
// Method and amount are snapshotted here the same way consulted services snapshot
// master data, so the ledger stays readable without re-joining vouchers.
type PaymentVoucherDetail struct {
	BaseModel
	VoucherID uuid.UUID       `gorm:"type:uuid;not null;index" json:"voucher_id"`
	Voucher   *PaymentVoucher `gorm:"foreignKey:VoucherID" json:"voucher,omitempty"`

	ConsultedServiceID uuid.UUID         `gorm:"type:uuid;not null;index" json:"consulted_service_id" validate:"uuid_required"`
	ConsultedService   *ConsultedService `gorm:"foreignKey:ConsultedServiceID" json:"consulted_service,omitempty"`

	Amount int64         `gorm:"not null" json:"amount" validate:"gt=0"`
	Method PaymentMethod `gorm:"type:varchar(20);not null" json:"method"` // Snapshot of the voucher method
}

func (PaymentVoucherDetail) TableName() string {
	return "payment_voucher_details"
}
