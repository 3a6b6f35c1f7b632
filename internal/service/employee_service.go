package service

import (
	"go-dental-erp/internal/authz"
	"go-dental-erp/internal/model"
	"go-dental-erp/internal/repository"
	"go-dental-erp/internal/serviceerr"

	"github.com/google/uuid"
)

type EmployeeService interface {
	CreateEmployee(req *CreateEmployeeRequest, actor authz.Actor) (*model.Employee, error)
	UpdateEmployee(employeeID uuid.UUID, req *UpdateEmployeeRequest, actor authz.Actor) (*model.Employee, error)
	DeleteEmployee(employeeID uuid.UUID, actor authz.Actor) error
	GetAllEmployees(actor authz.Actor) ([]model.EmployeeResponse, error)
	GetEmployeeByID(id uuid.UUID) (*model.EmployeeResponse, error)
}

type CreateEmployeeRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	FullName    string `json:"full_name" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,vn_phone"`
	Role        string `json:"role" validate:"required,oneof=admin employee"`
	JobTitle    string `json:"job_title" validate:"required,oneof=doctor sale cashier other"`
	ClinicID    string `json:"clinic_id" validate:"required"`
}

type UpdateEmployeeRequest struct {
	FullName    string  `json:"full_name" validate:"required"`
	PhoneNumber string  `json:"phone_number" validate:"omitempty,vn_phone"`
	Password    *string `json:"password,omitempty" validate:"omitempty,min=6"`
	JobTitle    string  `json:"job_title" validate:"required,oneof=doctor sale cashier other"`
	IsActive    *bool   `json:"is_active"`
}

type employeeService struct {
	employeeRepo repository.EmployeeRepository
	clinicRepo   repository.ClinicRepository
}

func NewEmployeeService(employeeRepo repository.EmployeeRepository, clinicRepo repository.ClinicRepository) EmployeeService {
	return &employeeService{
		employeeRepo: employeeRepo,
		clinicRepo:   clinicRepo,
	}
}

func (s *employeeService) CreateEmployee(req *CreateEmployeeRequest, actor authz.Actor) (*model.Employee, error) {
	// Account management is admin-only
	if !actor.IsAdmin() {
		return nil, serviceerr.PermissionDenied("Chỉ quản trị viên mới được quản lý tài khoản")
	}

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	existing, _ := s.employeeRepo.FindByEmail(req.Email)
	if existing != nil {
		return nil, serviceerr.Validation("Email đã tồn tại")
	}

	clinicID, err := uuid.Parse(req.ClinicID)
	if err != nil {
		return nil, serviceerr.Validation("Mã chi nhánh không hợp lệ")
	}
	if _, err := s.clinicRepo.FindByID(clinicID); err != nil {
		return nil, serviceerr.NotFound("Không tìm thấy chi nhánh")
	}

	employee := &model.Employee{
		Email:       req.Email,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Role:        model.Role(req.Role),
		JobTitle:    model.JobTitle(req.JobTitle),
		ClinicID:    clinicID,
		IsActive:    true,
	}
	employee.CreatedBy = actor.ID.String()
	employee.UpdatedBy = actor.ID.String()

	if err := employee.SetPassword(req.Password); err != nil {
		return nil, serviceerr.Internal(err)
	}

	if err := s.employeeRepo.Create(employee); err != nil {
		return nil, mapRepoError(err, "", "")
	}
	return employee, nil
}

func (s *employeeService) UpdateEmployee(employeeID uuid.UUID, req *UpdateEmployeeRequest, actor authz.Actor) (*model.Employee, error) {
	if !actor.IsAdmin() {
		return nil, serviceerr.PermissionDenied("Chỉ quản trị viên mới được quản lý tài khoản")
	}

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	employee, err := s.employeeRepo.FindByID(employeeID)
	if err != nil {
		return nil, mapRepoError(err, "Không tìm thấy nhân viên", "")
	}

	employee.FullName = req.FullName
	employee.PhoneNumber = req.PhoneNumber
	employee.JobTitle = model.JobTitle(req.JobTitle)
	if req.IsActive != nil {
		employee.IsActive = *req.IsActive
	}
	if req.Password != nil && *req.Password != "" {
		if err := employee.SetPassword(*req.Password); err != nil {
			return nil, serviceerr.Internal(err)
		}
	}
	employee.UpdatedBy = actor.ID.String()

	if err := s.employeeRepo.Update(employee); err != nil {
		return nil, mapRepoError(err, "", "")
	}
	return employee, nil
}

func (s *employeeService) DeleteEmployee(employeeID uuid.UUID, actor authz.Actor) error {
	if !actor.IsAdmin() {
		return serviceerr.PermissionDenied("Chỉ quản trị viên mới được quản lý tài khoản")
	}
	if employeeID == actor.ID {
		return serviceerr.Validation("Không thể tự xóa tài khoản của mình")
	}
	if err := s.employeeRepo.Delete(employeeID, actor.ID.String()); err != nil {
		return mapRepoError(err, "Không tìm thấy nhân viên", "")
	}
	return nil
}

func (s *employeeService) GetAllEmployees(actor authz.Actor) ([]model.EmployeeResponse, error) {
	// Non-admins see only their own clinic's staff
	var clinicID *uuid.UUID
	if !actor.IsAdmin() {
		clinicID = &actor.ClinicID
	}

	employees, err := s.employeeRepo.FindAll(clinicID)
	if err != nil {
		return nil, mapRepoError(err, "", "")
	}

	responses := make([]model.EmployeeResponse, len(employees))
	for i := range employees {
		responses[i] = employees[i].ToResponse()
	}
	return responses, nil
}

func (s *employeeService) GetEmployeeByID(id uuid.UUID) (*model.EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		return nil, mapRepoError(err, "Không tìm thấy nhân viên", "")
	}
	resp := employee.ToResponse()
	return &resp, nil
}
