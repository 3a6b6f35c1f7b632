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

type LaboService interface {
	CreateOrder(req *CreateLaboOrderRequest, actor authz.Actor) (*model.LaboOrder, error)
	ChangeStatus(id uuid.UUID, toStatus model.LaboStatus, reason string, actor authz.Actor) (*model.LaboOrder, error)
	GetOrders(actor authz.Actor) ([]model.LaboOrder, error)
	GetHistory(id uuid.UUID, actor authz.Actor) ([]model.StatusAudit, error)
}

type CreateLaboOrderRequest struct {
	ConsultedServiceID string `json:"consulted_service_id" validate:"required"`
	LabName            string `json:"lab_name" validate:"required"`
	Item               string `json:"item" validate:"required"`
	Cost               int64  `json:"cost" validate:"gte=0"`
}

type laboService struct {
	laboRepo  repository.LaboOrderRepository
	csRepo    repository.ConsultedServiceRepository
	auditRepo repository.StatusAuditRepository
}

func NewLaboService(laboRepo repository.LaboOrderRepository, csRepo repository.ConsultedServiceRepository, auditRepo repository.StatusAuditRepository) LaboService {
	return &laboService{
		laboRepo:  laboRepo,
		csRepo:    csRepo,
		auditRepo: auditRepo,
	}
}

func (s *laboService) CreateOrder(req *CreateLaboOrderRequest, actor authz.Actor) (*model.LaboOrder, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	csID, err := uuid.Parse(req.ConsultedServiceID)
	if err != nil {
		return nil, serviceerr.Validation("Mã dịch vụ tư vấn không hợp lệ")
	}
	cs, err := s.csRepo.FindByID(csID)
	if err != nil {
		return nil, mapRepoError(err, "Không tìm thấy dịch vụ tư vấn", "")
	}

	// Lab work starts only after the service is confirmed
	if cs.Status != model.ServiceConfirmed {
		return nil, serviceerr.Validation("Chỉ đặt labo cho dịch vụ đã chốt")
	}

	dec := authz.CanPerform(actor, authz.ActionCreate, authz.Record{ClinicID: cs.ClinicID, Date: time.Now()}, time.Now())
	if !dec.Allowed {
		return nil, serviceerr.PermissionDenied(dec.Reason)
	}

	order := &model.LaboOrder{
		ConsultedServiceID: cs.ID,
		ClinicID:           cs.ClinicID,
		LabName:            req.LabName,
		Item:               req.Item,
		Cost:               req.Cost,
		Status:             model.LaboOrdered,
	}
	order.CreatedBy = actor.ID.String()
	order.UpdatedBy = actor.ID.String()

	if err := s.laboRepo.Create(order); err != nil {
		return nil, mapRepoError(err, "", "")
	}
	return order, nil
}

func (s *laboService) ChangeStatus(id uuid.UUID, toStatus model.LaboStatus, reason string, actor authz.Actor) (*model.LaboOrder, error) {
	order, err := s.laboRepo.FindByID(id)
	if err != nil {
		return nil, mapRepoError(err, "Không tìm thấy đơn labo", "")
	}

	dec := authz.CanPerform(actor, authz.ActionTransition, authz.Record{
		ClinicID: order.ClinicID,
		Date:     time.Now(), // Lab flow follows the lab's pace, not the booking date
	}, time.Now())
	if !dec.Allowed {
		return nil, serviceerr.PermissionDenied(dec.Reason)
	}

	if err := workflow.LaboFlow.Validate(string(order.Status), string(toStatus), reason); err != nil {
		return nil, err
	}

	now := time.Now()
	extra := map[string]interface{}{}
	switch toStatus {
	case model.LaboSent:
		extra["sent_at"] = now
	case model.LaboReceived:
		extra["received_at"] = now
	case model.LaboDelivered:
		extra["delivered_at"] = now
	}

	from := string(order.Status)
	var reasonPtr *string
	if reason != "" {
		reasonPtr = &reason
	}
	audit := model.NewStatusAudit(model.RecordLaboOrder, order.ID, &from, string(toStatus), reasonPtr, actor.ID, now)

	if err := s.laboRepo.ChangeStatus(order.ID, order.Status, toStatus, extra, actor.ID.String(), audit); err != nil {
		return nil, mapRepoError(err, "Không tìm thấy đơn labo", "Đơn labo vừa thay đổi trạng thái, vui lòng tải lại")
	}

	order.Status = toStatus
	return order, nil
}

func (s *laboService) GetOrders(actor authz.Actor) ([]model.LaboOrder, error) {
	var clinicID *uuid.UUID
	if !actor.IsAdmin() {
		clinicID = &actor.ClinicID
	}
	orders, err := s.laboRepo.FindByClinic(clinicID)
	if err != nil {
		return nil, mapRepoError(err, "", "")
	}
	return orders, nil
}

func (s *laboService) GetHistory(id uuid.UUID, actor authz.Actor) ([]model.StatusAudit, error) {
	order, err := s.laboRepo.FindByID(id)
	if err != nil {
		return nil, mapRepoError(err, "Không tìm thấy đơn labo", "")
	}

	dec := authz.CanPerform(actor, authz.ActionView, authz.Record{ClinicID: order.ClinicID, Date: time.Now()}, time.Now())
	if !dec.Allowed {
		return nil, serviceerr.PermissionDenied(dec.Reason)
	}

	rows, err := s.auditRepo.ListByRecord(model.RecordLaboOrder, id)
	if err != nil {
		return nil, mapRepoError(err, "", "")
	}
	return rows, nil
}
