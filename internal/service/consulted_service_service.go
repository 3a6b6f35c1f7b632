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

type ConsultedServiceService interface {
	CreateConsultedService(req *CreateConsultedServiceRequest, actor authz.Actor) (*model.ConsultedService, error)
	UpdateFinancials(id uuid.UUID, req *UpdateFinancialsRequest, actor authz.Actor) (*model.ConsultedService, error)
	Confirm(id uuid.UUID, actor authz.Actor) (*model.ConsultedService, error)
	GetByCustomer(customerID uuid.UUID, actor authz.Actor) ([]model.ConsultedService, error)
	GetHistory(id uuid.UUID, actor authz.Actor) ([]model.StatusAudit, error)
}

type CreateConsultedServiceRequest struct {
	CustomerID      string  `json:"customer_id" validate:"required"`
	DentalServiceID string  `json:"dental_service_id" validate:"required"`
	Quantity        int     `json:"quantity" validate:"required,gt=0"`
	FinalPrice      *int64  `json:"final_price" validate:"omitempty,gte=0"` // Defaults to the list price
	DoctorID        *string `json:"doctor_id"`
	AppointmentID   *string `json:"appointment_id"`
}

type UpdateFinancialsRequest struct {
	Quantity   int   `json:"quantity" validate:"required,gt=0"`
	FinalPrice int64 `json:"final_price" validate:"gte=0"`
}

type consultedServiceService struct {
	csRepo       repository.ConsultedServiceRepository
	customerRepo repository.CustomerRepository
	dsRepo       repository.DentalServiceRepository
	auditRepo    repository.StatusAuditRepository
}

func NewConsultedServiceService(
	csRepo repository.ConsultedServiceRepository,
	customerRepo repository.CustomerRepository,
	dsRepo repository.DentalServiceRepository,
	auditRepo repository.StatusAuditRepository,
) ConsultedServiceService {
	return &consultedServiceService{
		csRepo:       csRepo,
		customerRepo: customerRepo,
		dsRepo:       dsRepo,
		auditRepo:    auditRepo,
	}
}

// CreateConsultedService snapshots the master service's name/unit/price onto
// the new record. Later edits to the master never rewrite these copies.
func (s *consultedServiceService) CreateConsultedService(req *CreateConsultedServiceRequest, actor authz.Actor) (*model.ConsultedService, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, serviceerr.Validation("Mã khách hàng không hợp lệ")
	}
	customer, err := s.customerRepo.FindByID(customerID)
	if err != nil {
		return nil, mapRepoError(err, "Không tìm thấy khách hàng", "")
	}

	dec := authz.CanPerform(actor, authz.ActionCreate, authz.Record{ClinicID: customer.ClinicID, Date: time.Now()}, time.Now())
	if !dec.Allowed {
		return nil, serviceerr.PermissionDenied(dec.Reason)
	}

	serviceID, err := uuid.Parse(req.DentalServiceID)
	if err != nil {
		return nil, serviceerr.Validation("Mã dịch vụ không hợp lệ")
	}
	master, err := s.dsRepo.FindByID(serviceID)
	if err != nil {
		return nil, mapRepoError(err, "Không tìm thấy dịch vụ", "")
	}
	if !master.IsActive {
		return nil, serviceerr.Validation("Dịch vụ đã ngừng áp dụng")
	}

	doctorID, err := parseUUIDField(req.DoctorID)
	if err != nil {
		return nil, err
	}
	appointmentID, err := parseUUIDField(req.AppointmentID)
	if err != nil {
		return nil, err
	}

	finalPrice := master.Price
	if req.FinalPrice != nil {
		finalPrice = *req.FinalPrice
	}

	var saleID *uuid.UUID
	if actor.ID != uuid.Nil {
		id := actor.ID
		saleID = &id
	}

	cs := &model.ConsultedService{
		CustomerID:      customer.ID,
		ClinicID:        customer.ClinicID,
		DentalServiceID: master.ID,
		ServiceName:     master.Name,
		ServiceUnit:     master.Unit,
		ListPrice:       master.Price,
		Quantity:        req.Quantity,
		FinalPrice:      finalPrice,
		AmountPaid:      0,
		Debt:            model.ComputeDebt(finalPrice, req.Quantity, 0),
		Status:          model.ServiceUnconfirmed,
		SaleID:          saleID,
		DoctorID:        doctorID,
		AppointmentID:   appointmentID,
	}
	cs.CreatedBy = actor.ID.String()
	cs.UpdatedBy = actor.ID.String()

	if err := s.csRepo.Create(cs); err != nil {
		return nil, mapRepoError(err, "", "")
	}
	return cs, nil
}

func (s *consultedServiceService) UpdateFinancials(id uuid.UUID, req *UpdateFinancialsRequest, actor authz.Actor) (*model.ConsultedService, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	cs, err := s.csRepo.FindByID(id)
	if err != nil {
		return nil, mapRepoError(err, "Không tìm thấy dịch vụ tư vấn", "")
	}

	dec := authz.CanPerform(actor, authz.ActionUpdate, authz.Record{
		ClinicID: cs.ClinicID,
		OwnerIDs: cs.OwnerIDs(),
		Date:     cs.CreatedAt,
		Locked:   cs.Status == model.ServiceConfirmed,
	}, time.Now())
	if !dec.Allowed {
		return nil, serviceerr.PermissionDenied(dec.Reason)
	}

	cs.Quantity = req.Quantity
	cs.FinalPrice = req.FinalPrice
	cs.Debt = model.ComputeDebt(cs.FinalPrice, cs.Quantity, cs.AmountPaid)
	cs.UpdatedBy = actor.ID.String()

	if err := s.csRepo.Update(cs); err != nil {
		return nil, mapRepoError(err, "", "")
	}
	return cs, nil
}

// Confirm moves a service Chưa chốt -> Đã chốt: sets the confirm timestamp,
// recomputes debt and appends the audit row, all in one unit of work. The repo
// re-checks the status inside that unit, so two racing confirms produce one
// success and one CONFLICT with exactly one audit row.
func (s *consultedServiceService) Confirm(id uuid.UUID, actor authz.Actor) (*model.ConsultedService, error) {
	cs, err := s.csRepo.FindByID(id)
	if err != nil {
		return nil, mapRepoError(err, "Không tìm thấy dịch vụ tư vấn", "")
	}

	dec := authz.CanPerform(actor, authz.ActionTransition, authz.Record{
		ClinicID: cs.ClinicID,
		OwnerIDs: cs.OwnerIDs(),
		Date:     cs.CreatedAt,
	}, time.Now())
	if !dec.Allowed {
		return nil, serviceerr.PermissionDenied(dec.Reason)
	}

	if err := workflow.ServiceConfirmation.Validate(string(cs.Status), string(model.ServiceConfirmed), ""); err != nil {
		return nil, err
	}

	now := time.Now()
	from := string(cs.Status)
	audit := model.NewStatusAudit(model.RecordConsultedService, cs.ID, &from, string(model.ServiceConfirmed), nil, actor.ID, now)

	// Debt is recomputed inside the guarded update from the row's committed
	// columns, so a financial edit racing this confirm cannot leave a stale
	// debt on the confirmed line.
	if err := s.csRepo.Confirm(cs.ID, now, actor.ID.String(), audit); err != nil {
		return nil, mapRepoError(err, "Không tìm thấy dịch vụ tư vấn", "Dịch vụ đã được chốt bởi người khác")
	}

	updated, err := s.csRepo.FindByID(cs.ID)
	if err != nil {
		return nil, mapRepoError(err, "Không tìm thấy dịch vụ tư vấn", "")
	}
	return updated, nil
}

func (s *consultedServiceService) GetByCustomer(customerID uuid.UUID, actor authz.Actor) ([]model.ConsultedService, error) {
	customer, err := s.customerRepo.FindByID(customerID)
	if err != nil {
		return nil, mapRepoError(err, "Không tìm thấy khách hàng", "")
	}

	dec := authz.CanPerform(actor, authz.ActionView, authz.Record{ClinicID: customer.ClinicID, Date: time.Now()}, time.Now())
	if !dec.Allowed {
		return nil, serviceerr.PermissionDenied(dec.Reason)
	}

	services, err := s.csRepo.FindByCustomer(customerID)
	if err != nil {
		return nil, mapRepoError(err, "", "")
	}
	return services, nil
}

// GetHistory lists the service's transitions. History is scoped the same way
// the record itself is: reading it requires view permission on the record.
func (s *consultedServiceService) GetHistory(id uuid.UUID, actor authz.Actor) ([]model.StatusAudit, error) {
	cs, err := s.csRepo.FindByID(id)
	if err != nil {
		return nil, mapRepoError(err, "Không tìm thấy dịch vụ tư vấn", "")
	}

	dec := authz.CanPerform(actor, authz.ActionView, authz.Record{ClinicID: cs.ClinicID, Date: time.Now()}, time.Now())
	if !dec.Allowed {
		return nil, serviceerr.PermissionDenied(dec.Reason)
	}

	rows, err := s.auditRepo.ListByRecord(model.RecordConsultedService, id)
	if err != nil {
		return nil, mapRepoError(err, "", "")
	}
	return rows, nil
}
