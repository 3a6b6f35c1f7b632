package service

import (
	"time"

	"go-dental-erp/internal/authz"
	"go-dental-erp/internal/model"
	"go-dental-erp/internal/repository"
	"go-dental-erp/internal/serviceerr"

	"github.com/google/uuid"
)

type TreatmentLogService interface {
	CreateLog(req *CreateTreatmentLogRequest, actor authz.Actor) (*model.TreatmentLog, error)
	UpdateLog(id uuid.UUID, req *UpdateTreatmentLogRequest, actor authz.Actor) (*model.TreatmentLog, error)
	GetByCustomer(customerID uuid.UUID, actor authz.Actor) ([]model.TreatmentLog, error)
}

type CreateTreatmentLogRequest struct {
	CustomerID         string  `json:"customer_id" validate:"required"`
	ConsultedServiceID *string `json:"consulted_service_id"`
	Content            string  `json:"content" validate:"required"`
	NextStep           string  `json:"next_step"`
}

type UpdateTreatmentLogRequest struct {
	Content  string `json:"content" validate:"required"`
	NextStep string `json:"next_step"`
}

type treatmentLogService struct {
	logRepo      repository.TreatmentLogRepository
	customerRepo repository.CustomerRepository
}

func NewTreatmentLogService(logRepo repository.TreatmentLogRepository, customerRepo repository.CustomerRepository) TreatmentLogService {
	return &treatmentLogService{
		logRepo:      logRepo,
		customerRepo: customerRepo,
	}
}

func (s *treatmentLogService) CreateLog(req *CreateTreatmentLogRequest, actor authz.Actor) (*model.TreatmentLog, error) {
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

	csID, err := parseUUIDField(req.ConsultedServiceID)
	if err != nil {
		return nil, err
	}

	log := &model.TreatmentLog{
		CustomerID:         customer.ID,
		ClinicID:           customer.ClinicID,
		DoctorID:           actor.ID,
		ConsultedServiceID: csID,
		Content:            req.Content,
		NextStep:           req.NextStep,
	}
	log.CreatedBy = actor.ID.String()
	log.UpdatedBy = actor.ID.String()

	if err := s.logRepo.Create(log); err != nil {
		return nil, mapRepoError(err, "", "")
	}
	return log, nil
}

// UpdateLog is author-window gated: only the doctor who wrote the note, and
// only within authz.EditWindow of its creation. Admins bypass both.
func (s *treatmentLogService) UpdateLog(id uuid.UUID, req *UpdateTreatmentLogRequest, actor authz.Actor) (*model.TreatmentLog, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	log, err := s.logRepo.FindByID(id)
	if err != nil {
		return nil, mapRepoError(err, "Không tìm thấy nhật ký điều trị", "")
	}

	authorID := log.DoctorID
	dec := authz.CanEditAuthored(actor, authz.Record{
		ClinicID:  log.ClinicID,
		AuthorID:  &authorID,
		CreatedAt: log.CreatedAt,
	}, time.Now())
	if !dec.Allowed {
		return nil, serviceerr.PermissionDenied(dec.Reason)
	}

	log.Content = req.Content
	log.NextStep = req.NextStep
	log.UpdatedBy = actor.ID.String()

	if err := s.logRepo.Update(log); err != nil {
		return nil, mapRepoError(err, "", "")
	}
	return log, nil
}

func (s *treatmentLogService) GetByCustomer(customerID uuid.UUID, actor authz.Actor) ([]model.TreatmentLog, error) {
	customer, err := s.customerRepo.FindByID(customerID)
	if err != nil {
		return nil, mapRepoError(err, "Không tìm thấy khách hàng", "")
	}

	dec := authz.CanPerform(actor, authz.ActionView, authz.Record{ClinicID: customer.ClinicID, Date: time.Now()}, time.Now())
	if !dec.Allowed {
		return nil, serviceerr.PermissionDenied(dec.Reason)
	}

	logs, err := s.logRepo.FindByCustomer(customerID)
	if err != nil {
		return nil, mapRepoError(err, "", "")
	}
	return logs, nil
}
