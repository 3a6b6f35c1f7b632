package repository

import (
	"go-dental-erp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MaterialRepository interface {
	Create(material *model.Material) error
	FindAll(clinicID *uuid.UUID) ([]model.Material, error)
	FindByID(id uuid.UUID) (*model.Material, error)
	FindBySKU(sku string) (*model.Material, error)
	Update(material *model.Material) error
	// AdjustStock locks the material row, applies the move and writes the
	// MaterialMove log in one transaction.
	AdjustStock(move *model.MaterialMove) error

	CreateSupplier(supplier *model.Supplier) error
	FindAllSuppliers() ([]model.Supplier, error)
}

type materialRepo struct {
	db *gorm.DB
}

func NewMaterialRepo(db *gorm.DB) MaterialRepository {
	return &materialRepo{db}
}

func (r *materialRepo) Create(material *model.Material) error {
	return r.db.Create(material).Error
}

func (r *materialRepo) FindAll(clinicID *uuid.UUID) ([]model.Material, error) {
	var materials []model.Material
	q := r.db.Preload("Supplier")
	if clinicID != nil {
		q = q.Where("clinic_id = ?", *clinicID)
	}
	err := q.Order("name ASC").Find(&materials).Error
	return materials, err
}

func (r *materialRepo) FindByID(id uuid.UUID) (*model.Material, error) {
	var material model.Material
	err := r.db.Preload("Supplier").First(&material, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *materialRepo) FindBySKU(sku string) (*model.Material, error) {
	var material model.Material
	err := r.db.First(&material, "sku = ?", sku).Error
	if err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *materialRepo) Update(material *model.Material) error {
	return r.db.Save(material).Error
}

func (r *materialRepo) AdjustStock(move *model.MaterialMove) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var material model.Material
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&material, "id = ?", move.MaterialID).Error; err != nil {
			return err
		}

		newStock := material.Stock
		if move.Type == model.MaterialIn {
			newStock += move.Quantity
		} else {
			if material.Stock < move.Quantity {
				return ErrInsufficientStock
			}
			newStock -= move.Quantity
		}

		if err := tx.Model(&model.Material{}).Where("id = ?", material.ID).
			Updates(map[string]interface{}{
				"stock":      newStock,
				"updated_by": move.CreatedBy,
			}).Error; err != nil {
			return err
		}

		return tx.Create(move).Error
	})
}

func (r *materialRepo) CreateSupplier(supplier *model.Supplier) error {
	return r.db.Create(supplier).Error
}

func (r *materialRepo) FindAllSuppliers() ([]model.Supplier, error) {
	var suppliers []model.Supplier
	err := r.db.Order("name ASC").Find(&suppliers).Error
	return suppliers, err
}
