package model

import (
	"time"

	"github.com/google/uuid"
)

// PipelineStage is the sales funnel position of a customer/lead.
// Forward moves are free; backward moves require a reason and are audited.
type PipelineStage string

const (
	StageNew         PipelineStage = "NEW"
	StageContacted   PipelineStage = "CONTACTED"
	StageQuoted      PipelineStage = "QUOTED"
	StageNegotiating PipelineStage = "NEGOTIATING"
	StageWon         PipelineStage = "WON"
	StageLost        PipelineStage = "LOST"
)

// Customer represents a patient or sales lead
type Customer struct {
	BaseModel
	// Human-facing sequential code (KH-000001), assigned from a DB sequence at create
	CustomerCode string        `gorm:"type:varchar(20);uniqueIndex;not null" json:"customer_code"`
	FullName     string        `gorm:"type:varchar(255);not null" json:"full_name" validate:"required"`
	PhoneNumber  string        `gorm:"type:varchar(20);index" json:"phone_number"`
	Email        string        `gorm:"type:varchar(255)" json:"email"`
	BirthDate    *time.Time    `gorm:"type:date" json:"birth_date,omitempty"`
	Address      string        `gorm:"type:varchar(255)" json:"address"`
	Source       string        `gorm:"type:varchar(100)" json:"source"` // Facebook, referral, walk-in...
	Stage        PipelineStage `gorm:"type:varchar(20);not null;default:'NEW'" json:"stage"`

	ClinicID uuid.UUID `gorm:"type:uuid;not null;index" json:"clinic_id" validate:"uuid_required"`
	Clinic   *Clinic   `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`

	// Consulting sale who owns this lead
	SaleID *uuid.UUID `gorm:"type:uuid;index" json:"sale_id,omitempty"`
	Sale   *Employee  `gorm:"foreignKey:SaleID" json:"sale,omitempty"`
}

func (Customer) TableName() string {
	return "customers"
}
