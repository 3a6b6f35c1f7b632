package model

import "github.com/google/uuid"

// Supplier is master data for a materials vendor
type Supplier struct {
	BaseModel
	Name    string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Phone   string `gorm:"type:varchar(20)" json:"phone"`
	Address string `gorm:"type:varchar(255)" json:"address"`
}

func (Supplier) TableName() string {
	return "suppliers"
}

// Material is a consumable tracked per clinic (composite, anesthetic, gloves...)
type Material struct {
	BaseModel
	SKU   string `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Name  string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Unit  string `gorm:"type:varchar(20)" json:"unit"`
	Stock int    `gorm:"default:0" json:"stock"`
	Price int64  `gorm:"default:0" json:"price"`

	ClinicID uuid.UUID `gorm:"type:uuid;not null;index" json:"clinic_id" validate:"uuid_required"`
	Clinic   *Clinic   `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`

	SupplierID *uuid.UUID `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	Supplier   *Supplier  `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
}

func (Material) TableName() string {
	return "materials"
}

// MaterialMoveType marks the direction of a stock adjustment.
type MaterialMoveType string

const (
	MaterialIn  MaterialMoveType = "IN"
	MaterialOut MaterialMoveType = "OUT"
)

// MaterialMove is one stock adjustment for a material
type MaterialMove struct {
	BaseModel
	MaterialID uuid.UUID        `gorm:"type:uuid;not null;index" json:"material_id" validate:"uuid_required"`
	Material   *Material        `gorm:"foreignKey:MaterialID" json:"material,omitempty"`
	Type       MaterialMoveType `gorm:"type:varchar(10);not null" json:"type" validate:"required,oneof=IN OUT"`
	Quantity   int              `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Note       string           `gorm:"type:text" json:"note,omitempty"`
}

func (MaterialMove) TableName() string {
	return "material_moves"
}
