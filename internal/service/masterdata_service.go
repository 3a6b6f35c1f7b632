package service

import (
	"go-dental-erp/internal/authz"
	"go-dental-erp/internal/model"
	"go-dental-erp/internal/repository"
	"go-dental-erp/internal/serviceerr"

	"github.com/google/uuid"
)

// MigrateMode selects what happens to the frozen snapshots on child records
// when a master service is merged into another. The mode is always an explicit
// caller choice, never inferred.
type MigrateMode string

const (
	// MigrateRepointOnly moves the foreign key and preserves historical
	// name/unit/price snapshots.
	MigrateRepointOnly MigrateMode = "repoint_only"
	// MigrateRepointOverwrite moves the foreign key and rewrites snapshots to
	// the target's current values.
	MigrateRepointOverwrite MigrateMode = "repoint_overwrite"
)

type MasterDataService interface {
	CreateService(req *CreateDentalServiceRequest, actor authz.Actor) (*model.DentalService, error)
	UpdateService(id uuid.UUID, req *UpdateDentalServiceRequest, actor authz.Actor) (*model.DentalService, error)
	GetServices(activeOnly bool) ([]model.DentalService, error)
	// MigrateService merges one master service into another, repointing all
	// consulted services per the chosen mode, then deactivates the source.
	MigrateService(fromID, toID uuid.UUID, mode MigrateMode, actor authz.Actor) (int64, error)
}

type CreateDentalServiceRequest struct {
	Name  string `json:"name" validate:"required"`
	Unit  string `json:"unit"`
	Price int64  `json:"price" validate:"gte=0"`
}

type UpdateDentalServiceRequest struct {
	Name     string `json:"name" validate:"required"`
	Unit     string `json:"unit"`
	Price    int64  `json:"price" validate:"gte=0"`
	IsActive *bool  `json:"is_active"`
}

type masterDataService struct {
	dsRepo repository.DentalServiceRepository
	csRepo repository.ConsultedServiceRepository
}

func NewMasterDataService(dsRepo repository.DentalServiceRepository, csRepo repository.ConsultedServiceRepository) MasterDataService {
	return &masterDataService{
		dsRepo: dsRepo,
		csRepo: csRepo,
	}
}

func (s *masterDataService) CreateService(req *CreateDentalServiceRequest, actor authz.Actor) (*model.DentalService, error) {
	if !actor.IsAdmin() {
		return nil, serviceerr.PermissionDenied("Chỉ quản trị viên mới được quản lý danh mục dịch vụ")
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	service := &model.DentalService{
		Name:     req.Name,
		Unit:     req.Unit,
		Price:    req.Price,
		IsActive: true,
	}
	service.CreatedBy = actor.ID.String()
	service.UpdatedBy = actor.ID.String()

	if err := s.dsRepo.Create(service); err != nil {
		return nil, mapRepoError(err, "", "")
	}
	return service, nil
}

// UpdateService edits the master record only. Historical consulted-service
// snapshots taken from it are frozen and stay untouched.
func (s *masterDataService) UpdateService(id uuid.UUID, req *UpdateDentalServiceRequest, actor authz.Actor) (*model.DentalService, error) {
	if !actor.IsAdmin() {
		return nil, serviceerr.PermissionDenied("Chỉ quản trị viên mới được quản lý danh mục dịch vụ")
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	service, err := s.dsRepo.FindByID(id)
	if err != nil {
		return nil, mapRepoError(err, "Không tìm thấy dịch vụ", "")
	}

	service.Name = req.Name
	service.Unit = req.Unit
	service.Price = req.Price
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}
	service.UpdatedBy = actor.ID.String()

	if err := s.dsRepo.Update(service); err != nil {
		return nil, mapRepoError(err, "", "")
	}
	return service, nil
}

func (s *masterDataService) GetServices(activeOnly bool) ([]model.DentalService, error) {
	services, err := s.dsRepo.FindAll(activeOnly)
	if err != nil {
		return nil, mapRepoError(err, "", "")
	}
	return services, nil
}

func (s *masterDataService) MigrateService(fromID, toID uuid.UUID, mode MigrateMode, actor authz.Actor) (int64, error) {
	if !actor.IsAdmin() {
		return 0, serviceerr.PermissionDenied("Chỉ quản trị viên mới được gộp dịch vụ")
	}
	if mode != MigrateRepointOnly && mode != MigrateRepointOverwrite {
		return 0, serviceerr.Validation("Chế độ gộp không hợp lệ: chọn repoint_only hoặc repoint_overwrite")
	}
	if fromID == toID {
		return 0, serviceerr.Validation("Dịch vụ nguồn và đích phải khác nhau")
	}

	if _, err := s.dsRepo.FindByID(fromID); err != nil {
		return 0, mapRepoError(err, "Không tìm thấy dịch vụ nguồn", "")
	}
	target, err := s.dsRepo.FindByID(toID)
	if err != nil {
		return 0, mapRepoError(err, "Không tìm thấy dịch vụ đích", "")
	}

	affected, err := s.csRepo.Migrate(fromID, target, mode == MigrateRepointOverwrite, actor.ID.String())
	if err != nil {
		return 0, mapRepoError(err, "", "")
	}

	if err := s.dsRepo.Deactivate(fromID, actor.ID.String()); err != nil {
		return affected, mapRepoError(err, "", "")
	}
	return affected, nil
}
