package service

import (
	"time"

	"go-dental-erp/internal/authz"
	"go-dental-erp/internal/model"
	"go-dental-erp/internal/repository"
	"go-dental-erp/internal/serviceerr"
	"go-dental-erp/internal/workflow"

	"github.com/google/uuid"
)

type CustomerService interface {
	CreateCustomer(req *CreateCustomerRequest, actor authz.Actor) (*model.Customer, error)
	UpdateCustomer(customerID uuid.UUID, req *UpdateCustomerRequest, actor authz.Actor) (*model.Customer, error)
	ChangeStage(customerID uuid.UUID, toStage model.PipelineStage, reason string, actor authz.Actor) (*model.Customer, error)
	GetCustomerByID(id uuid.UUID, actor authz.Actor) (*model.Customer, error)
	GetAllCustomers(actor authz.Actor) ([]model.Customer, error)
	GetStageHistory(customerID uuid.UUID, actor authz.Actor) ([]model.StatusAudit, error)
}

type CreateCustomerRequest struct {
	FullName    string  `json:"full_name" validate:"required"`
	PhoneNumber string  `json:"phone_number" validate:"omitempty,vn_phone"`
	Email       string  `json:"email" validate:"omitempty,email"`
	BirthDate   *string `json:"birth_date"` // YYYY-MM-DD
	Address     string  `json:"address"`
	Source      string  `json:"source"`
	ClinicID    string  `json:"clinic_id" validate:"required"`
	SaleID      *string `json:"sale_id"`
}

type UpdateCustomerRequest struct {
	FullName    string  `json:"full_name" validate:"required"`
	PhoneNumber string  `json:"phone_number" validate:"omitempty,vn_phone"`
	Email       string  `json:"email" validate:"omitempty,email"`
	BirthDate   *string `json:"birth_date"`
	Address     string  `json:"address"`
	Source      string  `json:"source"`
	SaleID      *string `json:"sale_id"`
}

type customerService struct {
	customerRepo repository.CustomerRepository
	auditRepo    repository.StatusAuditRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository, auditRepo repository.StatusAuditRepository) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		auditRepo:    auditRepo,
	}
}

func parseDateField(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, serviceerr.Validation("Ngày sinh không hợp lệ, dùng định dạng YYYY-MM-DD")
	}
	return &parsed, nil
}

func parseUUIDField(value *string) (*uuid.UUID, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	parsed, err := uuid.Parse(*value)
	if err != nil {
		return nil, serviceerr.Validation("Mã định danh không hợp lệ")
	}
	return &parsed, nil
}

func (s *customerService) CreateCustomer(req *CreateCustomerRequest, actor authz.Actor) (*model.Customer, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	clinicID, err := uuid.Parse(req.ClinicID)
	if err != nil {
		return nil, serviceerr.Validation("Mã chi nhánh không hợp lệ")
	}

	// Non-admins may only create customers in their own clinic
	dec := authz.CanPerform(actor, authz.ActionCreate, authz.Record{ClinicID: clinicID, Date: time.Now()}, time.Now())
	if !dec.Allowed {
		return nil, serviceerr.PermissionDenied(dec.Reason)
	}

	birthDate, err := parseDateField(req.BirthDate)
	if err != nil {
		return nil, err
	}
	saleID, err := parseUUIDField(req.SaleID)
	if err != nil {
		return nil, err
	}

	code, err := s.customerRepo.NextCode()
	if err != nil {
		return nil, mapRepoError(err, "", "")
	}

	customer := &model.Customer{
		CustomerCode: code,
		FullName:     req.FullName,
		PhoneNumber:  req.PhoneNumber,
		Email:        req.Email,
		BirthDate:    birthDate,
		Address:      req.Address,
		Source:       req.Source,
		Stage:        model.StageNew,
		ClinicID:     clinicID,
		SaleID:       saleID,
	}
	customer.CreatedBy = actor.ID.String()
	customer.UpdatedBy = actor.ID.String()

	if err := s.customerRepo.Create(customer); err != nil {
		return nil, mapRepoError(err, "", "")
	}
	return customer, nil
}

func (s *customerService) UpdateCustomer(customerID uuid.UUID, req *UpdateCustomerRequest, actor authz.Actor) (*model.Customer, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindByID(customerID)
	if err != nil {
		return nil, mapRepoError(err, "Không tìm thấy khách hàng", "")
	}

	dec := authz.CanPerform(actor, authz.ActionUpdate, authz.Record{
		ClinicID: customer.ClinicID,
		Date:     time.Now(), // Contact-info edits are not time-bucketed
	}, time.Now())
	if !dec.Allowed {
		return nil, serviceerr.PermissionDenied(dec.Reason)
	}

	birthDate, err := parseDateField(req.BirthDate)
	if err != nil {
		return nil, err
	}
	saleID, err := parseUUIDField(req.SaleID)
	if err != nil {
		return nil, err
	}

	customer.FullName = req.FullName
	customer.PhoneNumber = req.PhoneNumber
	customer.Email = req.Email
	customer.BirthDate = birthDate
	customer.Address = req.Address
	customer.Source = req.Source
	customer.SaleID = saleID
	customer.UpdatedBy = actor.ID.String()

	if err := s.customerRepo.Update(customer); err != nil {
		return nil, mapRepoError(err, "", "")
	}
	return customer, nil
}

// ChangeStage moves a customer along the sales funnel. Forward edges are free;
// backward edges require a reason. The guarded update and the audit row commit
// together, so a racing move loses with CONFLICT instead of double-writing.
func (s *customerService) ChangeStage(customerID uuid.UUID, toStage model.PipelineStage, reason string, actor authz.Actor) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(customerID)
	if err != nil {
		return nil, mapRepoError(err, "Không tìm thấy khách hàng", "")
	}

	dec := authz.CanPerform(actor, authz.ActionTransition, authz.Record{
		ClinicID: customer.ClinicID,
		Date:     time.Now(), // Pipeline moves are not date-gated
	}, time.Now())
	if !dec.Allowed {
		return nil, serviceerr.PermissionDenied(dec.Reason)
	}

	if err := workflow.SalesPipeline.Validate(string(customer.Stage), string(toStage), reason); err != nil {
		return nil, err
	}

	from := string(customer.Stage)
	var reasonPtr *string
	if reason != "" {
		reasonPtr = &reason
	}
	audit := model.NewStatusAudit(model.RecordCustomerStage, customer.ID, &from, string(toStage), reasonPtr, actor.ID, time.Now())

	if err := s.customerRepo.ChangeStage(customer.ID, customer.Stage, toStage, actor.ID.String(), audit); err != nil {
		return nil, mapRepoError(err, "Không tìm thấy khách hàng", "Khách hàng vừa được cập nhật bởi người khác, vui lòng tải lại")
	}

	customer.Stage = toStage
	return customer, nil
}

func (s *customerService) GetCustomerByID(id uuid.UUID, actor authz.Actor) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(id)
	if err != nil {
		return nil, mapRepoError(err, "Không tìm thấy khách hàng", "")
	}

	dec := authz.CanPerform(actor, authz.ActionView, authz.Record{ClinicID: customer.ClinicID, Date: time.Now()}, time.Now())
	if !dec.Allowed {
		return nil, serviceerr.PermissionDenied(dec.Reason)
	}
	return customer, nil
}

func (s *customerService) GetAllCustomers(actor authz.Actor) ([]model.Customer, error) {
	var clinicID *uuid.UUID
	if !actor.IsAdmin() {
		clinicID = &actor.ClinicID
	}
	customers, err := s.customerRepo.FindAll(clinicID)
	if err != nil {
		return nil, mapRepoError(err, "", "")
	}
	return customers, nil
}

func (s *customerService) GetStageHistory(customerID uuid.UUID, actor authz.Actor) ([]model.StatusAudit, error) {
	customer, err := s.customerRepo.FindByID(customerID)
	if err != nil {
		return nil, mapRepoError(err, "Không tìm thấy khách hàng", "")
	}

	dec := authz.CanPerform(actor, authz.ActionView, authz.Record{ClinicID: customer.ClinicID, Date: time.Now()}, time.Now())
	if !dec.Allowed {
		return nil, serviceerr.PermissionDenied(dec.Reason)
	}

	rows, err := s.auditRepo.ListByRecord(model.RecordCustomerStage, customerID)
	if err != nil {
		return nil, mapRepoError(err, "", "")
	}
	return rows, nil
}
