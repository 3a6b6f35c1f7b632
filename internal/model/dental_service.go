package model

// DentalService is master data for a billable service (filling, crown, implant...).
// Business records never reference its price live: they snapshot name/unit/price at
// creation so later master edits do not rewrite history.
type DentalService struct {
	BaseModel
	Name     string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Unit     string `gorm:"type:varchar(50)" json:"unit"` // răng, hàm, lần...
	Price    int64  `gorm:"not null;default:0" json:"price" validate:"gte=0"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

func (DentalService) TableName() string {
	return "dental_services"
}
