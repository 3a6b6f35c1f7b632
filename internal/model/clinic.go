package model

// Clinic represents a branch of the dental chain.
// ClinicID on business records is the primary scope boundary for non-admin actors.
type Clinic struct {
	BaseModel
	Code     string `gorm:"type:varchar(20);uniqueIndex;not null" json:"code" validate:"required"`
	Name     string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Address  string `gorm:"type:varchar(255)" json:"address"`
	Phone    string `gorm:"type:varchar(20)" json:"phone"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

func (Clinic) TableName() string {
	return "clinics"
}
