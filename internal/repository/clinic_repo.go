package repository

import (
	"go-dental-erp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClinicRepository interface {
	Create(clinic *model.Clinic) error
	FindAll() ([]model.Clinic, error)
	FindByID(id uuid.UUID) (*model.Clinic, error)
	FindByCode(code string) (*model.Clinic, error)
	Update(clinic *model.Clinic) error
}

type clinicRepo struct {
	db *gorm.DB
}

func NewClinicRepo(db *gorm.DB) ClinicRepository {
	return &clinicRepo{db}
}

func (r *clinicRepo) Create(clinic *model.Clinic) error {
	return r.db.Create(clinic).Error
}

func (r *clinicRepo) FindAll() ([]model.Clinic, error) {
	var clinics []model.Clinic
	err := r.db.Order("code ASC").Find(&clinics).Error
	return clinics, err
}

func (r *clinicRepo) FindByID(id uuid.UUID) (*model.Clinic, error) {
	var clinic model.Clinic
	err := r.db.First(&clinic, "id = ?", id).Error
	return &clinic, err
}

func (r *clinicRepo) FindByCode(code string) (*model.Clinic, error) {
	var clinic model.Clinic
	err := r.db.First(&clinic, "code = ?", code).Error
	return &clinic, err
}

func (r *clinicRepo) Update(clinic *model.Clinic) error {
	return r.db.Save(clinic).Error
}
