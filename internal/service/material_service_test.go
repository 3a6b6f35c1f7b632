package service

import (
	"testing"

	"go-dental-erp/internal/model"
	"go-dental-erp/internal/repository"
	"go-dental-erp/internal/serviceerr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type mockMaterialRepo struct {
	CreateFunc           func(material *model.Material) error
	FindAllFunc          func(clinicID *uuid.UUID) ([]model.Material, error)
	FindByIDFunc         func(id uuid.UUID) (*model.Material, error)
	FindBySKUFunc        func(sku string) (*model.Material, error)
	UpdateFunc           func(material *model.Material) error
	AdjustStockFunc      func(move *model.MaterialMove) error
	CreateSupplierFunc   func(supplier *model.Supplier) error
	FindAllSuppliersFunc func() ([]model.Supplier, error)
}

func (m *mockMaterialRepo) Create(material *model.Material) error {
	if m.CreateFunc == nil {
		return nil
	}
	return m.CreateFunc(material)
}

func (m *mockMaterialRepo) FindAll(clinicID *uuid.UUID) ([]model.Material, error) {
	if m.FindAllFunc == nil {
		return nil, nil
	}
	return m.FindAllFunc(clinicID)
}

func (m *mockMaterialRepo) FindByID(id uuid.UUID) (*model.Material, error) {
	if m.FindByIDFunc == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.FindByIDFunc(id)
}

func (m *mockMaterialRepo) FindBySKU(sku string) (*model.Material, error) {
	if m.FindBySKUFunc == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.FindBySKUFunc(sku)
}

func (m *mockMaterialRepo) Update(material *model.Material) error {
	if m.UpdateFunc == nil {
		return nil
	}
	return m.UpdateFunc(material)
}

func (m *mockMaterialRepo) AdjustStock(move *model.MaterialMove) error {
	if m.AdjustStockFunc == nil {
		return nil
	}
	return m.AdjustStockFunc(move)
}

func (m *mockMaterialRepo) CreateSupplier(supplier *model.Supplier) error {
	if m.CreateSupplierFunc == nil {
		return nil
	}
	return m.CreateSupplierFunc(supplier)
}

func (m *mockMaterialRepo) FindAllSuppliers() ([]model.Supplier, error) {
	if m.FindAllSuppliersFunc == nil {
		return nil, nil
	}
	return m.FindAllSuppliersFunc()
}

func storedMaterial(clinicID uuid.UUID, stock int) *model.Material {
	mat := &model.Material{
		SKU:      "COMP-A2",
		Name:     "Composite A2",
		Unit:     "tuýp",
		Stock:    stock,
		ClinicID: clinicID,
	}
	mat.ID = uuid.New()
	return mat
}

func TestRecordMoveOutInsufficientStock(t *testing.T) {
	clinicID := uuid.New()
	actor := testEmployee(clinicID)
	material := storedMaterial(clinicID, 2)

	repo := &mockMaterialRepo{
		FindByIDFunc: func(id uuid.UUID) (*model.Material, error) { return material, nil },
		AdjustStockFunc: func(move *model.MaterialMove) error {
			return repository.ErrInsufficientStock
		},
	}
	svc := NewMaterialService(repo)

	err := svc.RecordMove(&RecordMoveRequest{
		MaterialID: material.ID.String(),
		Type:       "OUT",
		Quantity:   5,
	}, actor)

	assertCode(t, err, serviceerr.CodeValidation)
}

func TestRecordMoveIn(t *testing.T) {
	clinicID := uuid.New()
	actor := testEmployee(clinicID)
	material := storedMaterial(clinicID, 2)

	var gotMove *model.MaterialMove
	repo := &mockMaterialRepo{
		FindByIDFunc:    func(id uuid.UUID) (*model.Material, error) { return material, nil },
		AdjustStockFunc: func(move *model.MaterialMove) error { gotMove = move; return nil },
	}
	svc := NewMaterialService(repo)

	err := svc.RecordMove(&RecordMoveRequest{
		MaterialID: material.ID.String(),
		Type:       "IN",
		Quantity:   10,
		Note:       "Nhập hàng tháng 8",
	}, actor)

	assert.NoError(t, err)
	if assert.NotNil(t, gotMove) {
		assert.Equal(t, model.MaterialIn, gotMove.Type)
		assert.Equal(t, 10, gotMove.Quantity)
		assert.Equal(t, material.ID, gotMove.MaterialID)
	}
}

func TestCreateMaterialRejectsDuplicateSKU(t *testing.T) {
	clinicID := uuid.New()
	actor := testEmployee(clinicID)
	existing := storedMaterial(clinicID, 0)

	repo := &mockMaterialRepo{
		FindBySKUFunc: func(sku string) (*model.Material, error) { return existing, nil },
	}
	svc := NewMaterialService(repo)

	dup := storedMaterial(clinicID, 0)
	err := svc.CreateMaterial(dup, actor)
	assertCode(t, err, serviceerr.CodeValidation)
}

func TestCreateSupplierAdminOnly(t *testing.T) {
	svc := NewMaterialService(&mockMaterialRepo{})

	err := svc.CreateSupplier(&model.Supplier{Name: "Nha khoa Vật tư Sài Gòn"}, testEmployee(uuid.New()))
	assertCode(t, err, serviceerr.CodePermissionDenied)

	err = svc.CreateSupplier(&model.Supplier{Name: "Nha khoa Vật tư Sài Gòn"}, testAdmin())
	assert.NoError(t, err)
}
