package service

import (
	"fmt"
	"time"

	"go-dental-erp/internal/authz"
	"go-dental-erp/internal/model"
	"go-dental-erp/internal/repository"
	"go-dental-erp/internal/serviceerr"
	"go-dental-erp/internal/ws"

	"github.com/google/uuid"
)

type AppointmentService interface {
	CreateAppointment(req *CreateAppointmentRequest, actor authz.Actor) (*model.Appointment, error)
	CheckIn(id uuid.UUID, actor authz.Actor) (*model.AppointmentResponse, error)
	CheckOut(id uuid.UUID, actor authz.Actor) (*model.AppointmentResponse, error)
	Cancel(id uuid.UUID, reason string, actor authz.Actor) (*model.AppointmentResponse, error)
	MarkNoShow(id uuid.UUID, actor authz.Actor) (*model.AppointmentResponse, error)
	DeleteAppointment(id uuid.UUID, actor authz.Actor) error
	GetSchedule(from, to time.Time, actor authz.Actor) ([]model.AppointmentResponse, error)
	GetHistory(id uuid.UUID, actor authz.Actor) ([]model.StatusAudit, error)
}

type CreateAppointmentRequest struct {
	CustomerID  string  `json:"customer_id" validate:"required"`
	DoctorID    *string `json:"doctor_id"`
	ScheduledAt string  `json:"scheduled_at" validate:"required"` // RFC 3339
	Note        string  `json:"note"`
}

type appointmentService struct {
	apptRepo     repository.AppointmentRepository
	customerRepo repository.CustomerRepository
	csRepo       repository.ConsultedServiceRepository
	auditRepo    repository.StatusAuditRepository
	wsHub        *ws.Hub
}

func NewAppointmentService(
	apptRepo repository.AppointmentRepository,
	customerRepo repository.CustomerRepository,
	csRepo repository.ConsultedServiceRepository,
	auditRepo repository.StatusAuditRepository,
	hub *ws.Hub,
) AppointmentService {
	return &appointmentService{
		apptRepo:     apptRepo,
		customerRepo: customerRepo,
		csRepo:       csRepo,
		auditRepo:    auditRepo,
		wsHub:        hub,
	}
}

func (s *appointmentService) CreateAppointment(req *CreateAppointmentRequest, actor authz.Actor) (*model.Appointment, error) {
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

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return nil, serviceerr.Validation("Thời gian hẹn không hợp lệ, dùng định dạng RFC 3339")
	}

	dec := authz.CanPerform(actor, authz.ActionCreate, authz.Record{
		ClinicID: customer.ClinicID,
		Date:     scheduledAt,
	}, time.Now())
	if !dec.Allowed {
		return nil, serviceerr.PermissionDenied(dec.Reason)
	}

	doctorID, err := parseUUIDField(req.DoctorID)
	if err != nil {
		return nil, err
	}

	appointment := &model.Appointment{
		CustomerID:  customer.ID,
		ClinicID:    customer.ClinicID,
		DoctorID:    doctorID,
		ScheduledAt: scheduledAt,
		Note:        req.Note,
	}
	appointment.CreatedBy = actor.ID.String()
	appointment.UpdatedBy = actor.ID.String()

	if err := s.apptRepo.Create(appointment); err != nil {
		return nil, mapRepoError(err, "", "")
	}
	return appointment, nil
}

// transition loads, permission-checks and applies one guarded lifecycle update.
// The apply callback runs the repo-side guarded write; the audit row travels
// with it in the same transaction.
func (s *appointmentService) transition(id uuid.UUID, actor authz.Actor, toState string, reason *string,
	apply func(a *model.Appointment, audit *model.StatusAudit) error) (*model.AppointmentResponse, error) {

	appointment, err := s.apptRepo.FindByID(id)
	if err != nil {
		return nil, mapRepoError(err, "Không tìm thấy lịch hẹn", "")
	}

	dec := authz.CanPerform(actor, authz.ActionTransition, authz.Record{
		ClinicID: appointment.ClinicID,
		Date:     appointment.ScheduledAt,
	}, time.Now())
	if !dec.Allowed {
		return nil, serviceerr.PermissionDenied(dec.Reason)
	}

	from := string(appointment.DerivedStatus())
	audit := model.NewStatusAudit(model.RecordAppointment, appointment.ID, &from, toState, reason, actor.ID, time.Now())

	if err := apply(appointment, audit); err != nil {
		return nil, mapRepoError(err, "Không tìm thấy lịch hẹn", "Lịch hẹn vừa thay đổi trạng thái, vui lòng tải lại")
	}

	updated, err := s.apptRepo.FindByID(id)
	if err != nil {
		return nil, mapRepoError(err, "Không tìm thấy lịch hẹn", "")
	}
	resp := updated.ToResponse()
	return &resp, nil
}

func (s *appointmentService) CheckIn(id uuid.UUID, actor authz.Actor) (*model.AppointmentResponse, error) {
	now := time.Now()
	resp, err := s.transition(id, actor, string(model.ApptInTreatment), nil,
		func(a *model.Appointment, audit *model.StatusAudit) error {
			if a.DerivedStatus() != model.ApptScheduled {
				return serviceerr.InvalidTransition("Chỉ lịch hẹn chưa đến mới được check-in")
			}
			return s.apptRepo.CheckIn(a.ID, now, actor.ID.String(), audit)
		})
	if err != nil {
		return nil, err
	}

	s.wsHub.Notify("appointment_checked_in",
		fmt.Sprintf("Khách %s đã đến", resp.Customer.FullName), resp)
	return resp, nil
}

func (s *appointmentService) CheckOut(id uuid.UUID, actor authz.Actor) (*model.AppointmentResponse, error) {
	now := time.Now()
	resp, err := s.transition(id, actor, string(model.ApptCompleted), nil,
		func(a *model.Appointment, audit *model.StatusAudit) error {
			// Check-out requires a prior check-in
			if a.CheckInTime == nil {
				return serviceerr.InvalidTransition("Lịch hẹn chưa check-in, không thể check-out")
			}
			if a.CheckOutTime != nil {
				return serviceerr.InvalidTransition("Lịch hẹn đã hoàn tất")
			}
			return s.apptRepo.CheckOut(a.ID, now, actor.ID.String(), audit)
		})
	if err != nil {
		return nil, err
	}

	s.wsHub.Notify("appointment_checked_out",
		fmt.Sprintf("Khách %s đã hoàn tất", resp.Customer.FullName), resp)
	return resp, nil
}

func (s *appointmentService) Cancel(id uuid.UUID, reason string, actor authz.Actor) (*model.AppointmentResponse, error) {
	if reason == "" {
		return nil, serviceerr.Validation("Hủy lịch hẹn bắt buộc phải có lý do")
	}
	now := time.Now()
	return s.transition(id, actor, string(model.ApptCancelled), &reason,
		func(a *model.Appointment, audit *model.StatusAudit) error {
			if a.Locked() {
				return serviceerr.InvalidTransition("Chỉ lịch hẹn chưa đến mới được hủy")
			}
			return s.apptRepo.Cancel(a.ID, now, reason, actor.ID.String(), audit)
		})
}

func (s *appointmentService) MarkNoShow(id uuid.UUID, actor authz.Actor) (*model.AppointmentResponse, error) {
	return s.transition(id, actor, string(model.ApptNoShow), nil,
		func(a *model.Appointment, audit *model.StatusAudit) error {
			if a.Locked() {
				return serviceerr.InvalidTransition("Chỉ lịch hẹn chưa đến mới được đánh dấu không đến")
			}
			return s.apptRepo.MarkNoShow(a.ID, actor.ID.String(), audit)
		})
}

// DeleteAppointment hard-deletes a draft booking. Financial/visit history is
// never deleted: once the customer checked in or services hang off the
// appointment, deletion is refused.
func (s *appointmentService) DeleteAppointment(id uuid.UUID, actor authz.Actor) error {
	appointment, err := s.apptRepo.FindByID(id)
	if err != nil {
		return mapRepoError(err, "Không tìm thấy lịch hẹn", "")
	}

	dec := authz.CanPerform(actor, authz.ActionDelete, authz.Record{
		ClinicID: appointment.ClinicID,
		Date:     appointment.ScheduledAt,
	}, time.Now())
	if !dec.Allowed {
		return serviceerr.PermissionDenied(dec.Reason)
	}

	if appointment.CheckInTime != nil {
		return serviceerr.Validation("Không thể xóa lịch hẹn đã có khách đến")
	}

	dependents, err := s.csRepo.CountByAppointment(appointment.ID)
	if err != nil {
		return mapRepoError(err, "", "")
	}
	if dependents > 0 {
		return serviceerr.Validation("Không thể xóa lịch hẹn đã phát sinh dịch vụ tư vấn")
	}

	if err := s.apptRepo.HardDelete(appointment.ID); err != nil {
		return mapRepoError(err, "Không tìm thấy lịch hẹn", "")
	}
	return nil
}

func (s *appointmentService) GetSchedule(from, to time.Time, actor authz.Actor) ([]model.AppointmentResponse, error) {
	var clinicID *uuid.UUID
	if !actor.IsAdmin() {
		clinicID = &actor.ClinicID
	}

	appointments, err := s.apptRepo.FindByClinicAndRange(clinicID, from, to)
	if err != nil {
		return nil, mapRepoError(err, "", "")
	}

	responses := make([]model.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = appointments[i].ToResponse()
	}
	return responses, nil
}

func (s *appointmentService) GetHistory(id uuid.UUID, actor authz.Actor) ([]model.StatusAudit, error) {
	appointment, err := s.apptRepo.FindByID(id)
	if err != nil {
		return nil, mapRepoError(err, "Không tìm thấy lịch hẹn", "")
	}

	dec := authz.CanPerform(actor, authz.ActionView, authz.Record{ClinicID: appointment.ClinicID, Date: time.Now()}, time.Now())
	if !dec.Allowed {
		return nil, serviceerr.PermissionDenied(dec.Reason)
	}

	rows, err := s.auditRepo.ListByRecord(model.RecordAppointment, id)
	if err != nil {
		return nil, mapRepoError(err, "", "")
	}
	return rows, nil
}
