package service

import (
	"time"

	"go-dental-erp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Hand-written repository mocks. Each method dispatches to a function field so
// tests only stub what they touch; anything unstubbed behaves as "not found".

type mockCustomerRepo struct {
	CreateFunc      func(customer *model.Customer) error
	FindByIDFunc    func(id uuid.UUID) (*model.Customer, error)
	FindAllFunc     func(clinicID *uuid.UUID) ([]model.Customer, error)
	UpdateFunc      func(customer *model.Customer) error
	NextCodeFunc    func() (string, error)
	ChangeStageFunc func(id uuid.UUID, from, to model.PipelineStage, updatedBy string, audit *model.StatusAudit) error
}

func (m *mockCustomerRepo) Create(customer *model.Customer) error {
	if m.CreateFunc == nil {
		return nil
	}
	return m.CreateFunc(customer)
}

func (m *mockCustomerRepo) FindByID(id uuid.UUID) (*model.Customer, error) {
	if m.FindByIDFunc == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.FindByIDFunc(id)
}

func (m *mockCustomerRepo) FindAll(clinicID *uuid.UUID) ([]model.Customer, error) {
	if m.FindAllFunc == nil {
		return nil, nil
	}
	return m.FindAllFunc(clinicID)
}

func (m *mockCustomerRepo) Update(customer *model.Customer) error {
	if m.UpdateFunc == nil {
		return nil
	}
	return m.UpdateFunc(customer)
}

func (m *mockCustomerRepo) NextCode() (string, error) {
	if m.NextCodeFunc == nil {
		return "KH-000001", nil
	}
	return m.NextCodeFunc()
}

func (m *mockCustomerRepo) ChangeStage(id uuid.UUID, from, to model.PipelineStage, updatedBy string, audit *model.StatusAudit) error {
	if m.ChangeStageFunc == nil {
		return nil
	}
	return m.ChangeStageFunc(id, from, to, updatedBy, audit)
}

type mockConsultedServiceRepo struct {
	CreateFunc             func(cs *model.ConsultedService) error
	FindByIDFunc           func(id uuid.UUID) (*model.ConsultedService, error)
	FindByCustomerFunc     func(customerID uuid.UUID) ([]model.ConsultedService, error)
	UpdateFunc             func(cs *model.ConsultedService) error
	CountByAppointmentFunc func(appointmentID uuid.UUID) (int64, error)
	ConfirmFunc            func(id uuid.UUID, confirmedAt time.Time, updatedBy string, audit *model.StatusAudit) error
	MigrateFunc            func(fromServiceID uuid.UUID, target *model.DentalService, overwrite bool, updatedBy string) (int64, error)
}

func (m *mockConsultedServiceRepo) Create(cs *model.ConsultedService) error {
	if m.CreateFunc == nil {
		return nil
	}
	return m.CreateFunc(cs)
}

func (m *mockConsultedServiceRepo) FindByID(id uuid.UUID) (*model.ConsultedService, error) {
	if m.FindByIDFunc == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.FindByIDFunc(id)
}

func (m *mockConsultedServiceRepo) FindByCustomer(customerID uuid.UUID) ([]model.ConsultedService, error) {
	if m.FindByCustomerFunc == nil {
		return nil, nil
	}
	return m.FindByCustomerFunc(customerID)
}

func (m *mockConsultedServiceRepo) Update(cs *model.ConsultedService) error {
	if m.UpdateFunc == nil {
		return nil
	}
	return m.UpdateFunc(cs)
}

func (m *mockConsultedServiceRepo) CountByAppointment(appointmentID uuid.UUID) (int64, error) {
	if m.CountByAppointmentFunc == nil {
		return 0, nil
	}
	return m.CountByAppointmentFunc(appointmentID)
}

func (m *mockConsultedServiceRepo) Confirm(id uuid.UUID, confirmedAt time.Time, updatedBy string, audit *model.StatusAudit) error {
	if m.ConfirmFunc == nil {
		return nil
	}
	return m.ConfirmFunc(id, confirmedAt, updatedBy, audit)
}

func (m *mockConsultedServiceRepo) Migrate(fromServiceID uuid.UUID, target *model.DentalService, overwrite bool, updatedBy string) (int64, error) {
	if m.MigrateFunc == nil {
		return 0, nil
	}
	return m.MigrateFunc(fromServiceID, target, overwrite, updatedBy)
}

type mockDentalServiceRepo struct {
	CreateFunc     func(service *model.DentalService) error
	FindAllFunc    func(activeOnly bool) ([]model.DentalService, error)
	FindByIDFunc   func(id uuid.UUID) (*model.DentalService, error)
	UpdateFunc     func(service *model.DentalService) error
	DeactivateFunc func(id uuid.UUID, updatedBy string) error
}

func (m *mockDentalServiceRepo) Create(service *model.DentalService) error {
	if m.CreateFunc == nil {
		return nil
	}
	return m.CreateFunc(service)
}

func (m *mockDentalServiceRepo) FindAll(activeOnly bool) ([]model.DentalService, error) {
	if m.FindAllFunc == nil {
		return nil, nil
	}
	return m.FindAllFunc(activeOnly)
}

func (m *mockDentalServiceRepo) FindByID(id uuid.UUID) (*model.DentalService, error) {
	if m.FindByIDFunc == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.FindByIDFunc(id)
}

func (m *mockDentalServiceRepo) Update(service *model.DentalService) error {
	if m.UpdateFunc == nil {
		return nil
	}
	return m.UpdateFunc(service)
}

func (m *mockDentalServiceRepo) Deactivate(id uuid.UUID, updatedBy string) error {
	if m.DeactivateFunc == nil {
		return nil
	}
	return m.DeactivateFunc(id, updatedBy)
}

type mockAuditRepo struct {
	AppendFunc       func(row *model.StatusAudit) error
	ListByRecordFunc func(recordType model.RecordType, recordID uuid.UUID) ([]model.StatusAudit, error)
}

func (m *mockAuditRepo) Append(row *model.StatusAudit) error {
	if m.AppendFunc == nil {
		return nil
	}
	return m.AppendFunc(row)
}

func (m *mockAuditRepo) ListByRecord(recordType model.RecordType, recordID uuid.UUID) ([]model.StatusAudit, error) {
	if m.ListByRecordFunc == nil {
		return nil, nil
	}
	return m.ListByRecordFunc(recordType, recordID)
}

type mockAppointmentRepo struct {
	CreateFunc               func(appointment *model.Appointment) error
	FindByIDFunc             func(id uuid.UUID) (*model.Appointment, error)
	FindByClinicAndRangeFunc func(clinicID *uuid.UUID, from, to time.Time) ([]model.Appointment, error)
	UpdateFunc               func(appointment *model.Appointment) error
	CheckInFunc              func(id uuid.UUID, at time.Time, updatedBy string, audit *model.StatusAudit) error
	CheckOutFunc             func(id uuid.UUID, at time.Time, updatedBy string, audit *model.StatusAudit) error
	CancelFunc               func(id uuid.UUID, at time.Time, reason, updatedBy string, audit *model.StatusAudit) error
	MarkNoShowFunc           func(id uuid.UUID, updatedBy string, audit *model.StatusAudit) error
	HardDeleteFunc           func(id uuid.UUID) error
}

func (m *mockAppointmentRepo) Create(appointment *model.Appointment) error {
	if m.CreateFunc == nil {
		return nil
	}
	return m.CreateFunc(appointment)
}

func (m *mockAppointmentRepo) FindByID(id uuid.UUID) (*model.Appointment, error) {
	if m.FindByIDFunc == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.FindByIDFunc(id)
}

func (m *mockAppointmentRepo) FindByClinicAndRange(clinicID *uuid.UUID, from, to time.Time) ([]model.Appointment, error) {
	if m.FindByClinicAndRangeFunc == nil {
		return nil, nil
	}
	return m.FindByClinicAndRangeFunc(clinicID, from, to)
}

func (m *mockAppointmentRepo) Update(appointment *model.Appointment) error {
	if m.UpdateFunc == nil {
		return nil
	}
	return m.UpdateFunc(appointment)
}

func (m *mockAppointmentRepo) CheckIn(id uuid.UUID, at time.Time, updatedBy string, audit *model.StatusAudit) error {
	if m.CheckInFunc == nil {
		return nil
	}
	return m.CheckInFunc(id, at, updatedBy, audit)
}

func (m *mockAppointmentRepo) CheckOut(id uuid.UUID, at time.Time, updatedBy string, audit *model.StatusAudit) error {
	if m.CheckOutFunc == nil {
		return nil
	}
	return m.CheckOutFunc(id, at, updatedBy, audit)
}

func (m *mockAppointmentRepo) Cancel(id uuid.UUID, at time.Time, reason, updatedBy string, audit *model.StatusAudit) error {
	if m.CancelFunc == nil {
		return nil
	}
	return m.CancelFunc(id, at, reason, updatedBy, audit)
}

func (m *mockAppointmentRepo) MarkNoShow(id uuid.UUID, updatedBy string, audit *model.StatusAudit) error {
	if m.MarkNoShowFunc == nil {
		return nil
	}
	return m.MarkNoShowFunc(id, updatedBy, audit)
}

func (m *mockAppointmentRepo) HardDelete(id uuid.UUID) error {
	if m.HardDeleteFunc == nil {
		return nil
	}
	return m.HardDeleteFunc(id)
}

type mockPaymentRepo struct {
	CreateVoucherFunc   func(voucher *model.PaymentVoucher, details []model.PaymentVoucherDetail, validate func(services map[uuid.UUID]*model.ConsultedService) error) error
	FindByIDFunc        func(id uuid.UUID) (*model.PaymentVoucher, error)
	FindByCustomerFunc  func(customerID uuid.UUID) ([]model.PaymentVoucher, error)
	NextVoucherCodeFunc func() (string, error)
}

func (m *mockPaymentRepo) CreateVoucher(voucher *model.PaymentVoucher, details []model.PaymentVoucherDetail,
	validate func(services map[uuid.UUID]*model.ConsultedService) error) error {
	if m.CreateVoucherFunc == nil {
		return nil
	}
	return m.CreateVoucherFunc(voucher, details, validate)
}

func (m *mockPaymentRepo) FindByID(id uuid.UUID) (*model.PaymentVoucher, error) {
	if m.FindByIDFunc == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.FindByIDFunc(id)
}

func (m *mockPaymentRepo) FindByCustomer(customerID uuid.UUID) ([]model.PaymentVoucher, error) {
	if m.FindByCustomerFunc == nil {
		return nil, nil
	}
	return m.FindByCustomerFunc(customerID)
}

func (m *mockPaymentRepo) NextVoucherCode() (string, error) {
	if m.NextVoucherCodeFunc == nil {
		return "PT-000001", nil
	}
	return m.NextVoucherCodeFunc()
}
