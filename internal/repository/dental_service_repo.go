package repository

import (
	"go-dental-erp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DentalServiceRepository interface {
	Create(service *model.DentalService) error
	FindAll(activeOnly bool) ([]model.DentalService, error)
	FindByID(id uuid.UUID) (*model.DentalService, error)
	Update(service *model.DentalService) error
	Deactivate(id uuid.UUID, updatedBy string) error
}

type dentalServiceRepo struct {
	db *gorm.DB
}

func NewDentalServiceRepo(db *gorm.DB) DentalServiceRepository {
	return &dentalServiceRepo{db}
}

func (r *dentalServiceRepo) Create(service *model.DentalService) error {
	return r.db.Create(service).Error
}

func (r *dentalServiceRepo) FindAll(activeOnly bool) ([]model.DentalService, error) {
	var services []model.DentalService
	q := r.db.Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&services).Error
	return services, err
}

func (r *dentalServiceRepo) FindByID(id uuid.UUID) (*model.DentalService, error) {
	var service model.DentalService
	err := r.db.First(&service, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *dentalServiceRepo) Update(service *model.DentalService) error {
	return r.db.Save(service).Error
}

func (r *dentalServiceRepo) Deactivate(id uuid.UUID, updatedBy string) error {
	return r.db.Model(&model.DentalService{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": false, "updated_by": updatedBy}).Error
}
