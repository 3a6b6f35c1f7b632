package service

import (
	"time"

	"go-dental-erp/internal/authz"
	"go-dental-erp/internal/model"
	"go-dental-erp/internal/repository"
	"go-dental-erp/internal/serviceerr"

	"github.com/google/uuid"
)

type MaterialService interface {
	CreateMaterial(req *model.Material, actor authz.Actor) error
	GetMaterials(actor authz.Actor) ([]model.Material, error)
	RecordMove(req *RecordMoveRequest, actor authz.Actor) error
	CreateSupplier(req *model.Supplier, actor authz.Actor) error
	GetSuppliers() ([]model.Supplier, error)
}

type RecordMoveRequest struct {
	MaterialID string `json:"material_id" validate:"required"`
	Type       string `json:"type" validate:"required,oneof=IN OUT"`
	Quantity   int    `json:"quantity" validate:"required,gt=0"`
	Note       string `json:"note"`
}

type materialService struct {
	materialRepo repository.MaterialRepository
}

func NewMaterialService(materialRepo repository.MaterialRepository) MaterialService {
	return &materialService{materialRepo: materialRepo}
}

func (s *materialService) CreateMaterial(req *model.Material, actor authz.Actor) error {
	if err := validateStruct(req); err != nil {
		return err
	}

	dec := authz.CanPerform(actor, authz.ActionCreate, authz.Record{ClinicID: req.ClinicID, Date: time.Now()}, time.Now())
	if !dec.Allowed {
		return serviceerr.PermissionDenied(dec.Reason)
	}

	existing, _ := s.materialRepo.FindBySKU(req.SKU)
	if existing != nil {
		return serviceerr.Validation("SKU đã tồn tại")
	}

	req.CreatedBy = actor.ID.String()
	req.UpdatedBy = actor.ID.String()
	if err := s.materialRepo.Create(req); err != nil {
		return mapRepoError(err, "", "")
	}
	return nil
}

func (s *materialService) GetMaterials(actor authz.Actor) ([]model.Material, error) {
	var clinicID *uuid.UUID
	if !actor.IsAdmin() {
		clinicID = &actor.ClinicID
	}
	materials, err := s.materialRepo.FindAll(clinicID)
	if err != nil {
		return nil, mapRepoError(err, "", "")
	}
	return materials, nil
}

func (s *materialService) RecordMove(req *RecordMoveRequest, actor authz.Actor) error {
	if err := validateStruct(req); err != nil {
		return err
	}

	materialID, err := uuid.Parse(req.MaterialID)
	if err != nil {
		return serviceerr.Validation("Mã vật tư không hợp lệ")
	}
	material, err := s.materialRepo.FindByID(materialID)
	if err != nil {
		return mapRepoError(err, "Không tìm thấy vật tư", "")
	}

	dec := authz.CanPerform(actor, authz.ActionUpdate, authz.Record{ClinicID: material.ClinicID, Date: time.Now()}, time.Now())
	if !dec.Allowed {
		return serviceerr.PermissionDenied(dec.Reason)
	}

	move := &model.MaterialMove{
		MaterialID: materialID,
		Type:       model.MaterialMoveType(req.Type),
		Quantity:   req.Quantity,
		Note:       req.Note,
	}
	move.CreatedBy = actor.ID.String()
	move.UpdatedBy = actor.ID.String()

	if err := s.materialRepo.AdjustStock(move); err != nil {
		if err == repository.ErrInsufficientStock {
			return serviceerr.Validation("Tồn kho không đủ để xuất")
		}
		return mapRepoError(err, "Không tìm thấy vật tư", "")
	}
	return nil
}

func (s *materialService) CreateSupplier(req *model.Supplier, actor authz.Actor) error {
	if !actor.IsAdmin() {
		return serviceerr.PermissionDenied("Chỉ quản trị viên mới được quản lý nhà cung cấp")
	}
	if err := validateStruct(req); err != nil {
		return err
	}
	req.CreatedBy = actor.ID.String()
	req.UpdatedBy = actor.ID.String()
	if err := s.materialRepo.CreateSupplier(req); err != nil {
		return mapRepoError(err, "", "")
	}
	return nil
}

func (s *materialService) GetSuppliers() ([]model.Supplier, error) {
	suppliers, err := s.materialRepo.FindAllSuppliers()
	if err != nil {
		return nil, mapRepoError(err, "", "")
	}
	return suppliers, nil
}
