package service

import (
	"testing"

	"go-dental-erp/internal/model"
	"go-dental-erp/internal/serviceerr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type mockLaboRepo struct {
	CreateFunc       func(order *model.LaboOrder) error
	FindByIDFunc     func(id uuid.UUID) (*model.LaboOrder, error)
	FindByClinicFunc func(clinicID *uuid.UUID) ([]model.LaboOrder, error)
	ChangeStatusFunc func(id uuid.UUID, from, to model.LaboStatus, extra map[string]interface{}, updatedBy string, audit *model.StatusAudit) error
}

func (m *mockLaboRepo) Create(order *model.LaboOrder) error {
	if m.CreateFunc == nil {
		return nil
	}
	return m.CreateFunc(order)
}

func (m *mockLaboRepo) FindByID(id uuid.UUID) (*model.LaboOrder, error) {
	if m.FindByIDFunc == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.FindByIDFunc(id)
}

func (m *mockLaboRepo) FindByClinic(clinicID *uuid.UUID) ([]model.LaboOrder, error) {
	if m.FindByClinicFunc == nil {
		return nil, nil
	}
	return m.FindByClinicFunc(clinicID)
}

func (m *mockLaboRepo) ChangeStatus(id uuid.UUID, from, to model.LaboStatus, extra map[string]interface{}, updatedBy string, audit *model.StatusAudit) error {
	if m.ChangeStatusFunc == nil {
		return nil
	}
	return m.ChangeStatusFunc(id, from, to, extra, updatedBy, audit)
}

func storedLaboOrder(clinicID uuid.UUID, status model.LaboStatus) *model.LaboOrder {
	o := &model.LaboOrder{
		ConsultedServiceID: uuid.New(),
		ClinicID:           clinicID,
		LabName:            "Labo Việt Tiên",
		Item:               "Mão sứ Zirconia",
		Cost:               900_000,
		Status:             status,
	}
	o.ID = uuid.New()
	return o
}

func TestCreateLaboOrderRequiresConfirmedService(t *testing.T) {
	clinicID := uuid.New()
	actor := testEmployee(clinicID)
	cs := storedConsultedService(clinicID, model.ServiceUnconfirmed)

	csRepo := &mockConsultedServiceRepo{
		FindByIDFunc: func(id uuid.UUID) (*model.ConsultedService, error) { return cs, nil },
	}
	svc := NewLaboService(&mockLaboRepo{}, csRepo, &mockAuditRepo{})

	_, err := svc.CreateOrder(&CreateLaboOrderRequest{
		ConsultedServiceID: cs.ID.String(),
		LabName:            "Labo Việt Tiên",
		Item:               "Mão sứ",
	}, actor)
	assertCode(t, err, serviceerr.CodeValidation)

	cs.Status = model.ServiceConfirmed
	order, err := svc.CreateOrder(&CreateLaboOrderRequest{
		ConsultedServiceID: cs.ID.String(),
		LabName:            "Labo Việt Tiên",
		Item:               "Mão sứ",
	}, actor)
	assert.NoError(t, err)
	assert.Equal(t, model.LaboOrdered, order.Status)
	assert.Equal(t, cs.ClinicID, order.ClinicID)
}

func TestLaboChangeStatusSetsTimestampColumn(t *testing.T) {
	clinicID := uuid.New()
	actor := testEmployee(clinicID)
	order := storedLaboOrder(clinicID, model.LaboSent)

	var gotExtra map[string]interface{}
	var gotAudit *model.StatusAudit
	laboRepo := &mockLaboRepo{
		FindByIDFunc: func(id uuid.UUID) (*model.LaboOrder, error) { return order, nil },
		ChangeStatusFunc: func(id uuid.UUID, from, to model.LaboStatus, extra map[string]interface{}, updatedBy string, audit *model.StatusAudit) error {
			assert.Equal(t, model.LaboSent, from)
			assert.Equal(t, model.LaboReceived, to)
			gotExtra = extra
			gotAudit = audit
			return nil
		},
	}
	svc := NewLaboService(laboRepo, &mockConsultedServiceRepo{}, &mockAuditRepo{})

	updated, err := svc.ChangeStatus(order.ID, model.LaboReceived, "", actor)

	assert.NoError(t, err)
	assert.Equal(t, model.LaboReceived, updated.Status)
	assert.Contains(t, gotExtra, "received_at")
	assert.NotContains(t, gotExtra, "sent_at")
	if assert.NotNil(t, gotAudit) {
		assert.Equal(t, model.RecordLaboOrder, gotAudit.RecordType)
		assert.Equal(t, string(model.LaboSent), *gotAudit.FromState)
	}
}

func TestLaboCancelNeedsReason(t *testing.T) {
	clinicID := uuid.New()
	actor := testEmployee(clinicID)
	order := storedLaboOrder(clinicID, model.LaboOrdered)

	changed := false
	laboRepo := &mockLaboRepo{
		FindByIDFunc: func(id uuid.UUID) (*model.LaboOrder, error) { return order, nil },
		ChangeStatusFunc: func(id uuid.UUID, from, to model.LaboStatus, extra map[string]interface{}, updatedBy string, audit *model.StatusAudit) error {
			changed = true
			if audit.Reason != nil {
				assert.Equal(t, "labo quá tải", *audit.Reason)
			}
			return nil
		},
	}
	svc := NewLaboService(laboRepo, &mockConsultedServiceRepo{}, &mockAuditRepo{})

	_, err := svc.ChangeStatus(order.ID, model.LaboCancelled, "", actor)
	assertCode(t, err, serviceerr.CodeValidation)
	assert.False(t, changed)

	_, err = svc.ChangeStatus(order.ID, model.LaboCancelled, "labo quá tải", actor)
	assert.NoError(t, err)
	assert.True(t, changed)
}

func TestLaboDeliveredIsTerminal(t *testing.T) {
	clinicID := uuid.New()
	actor := testEmployee(clinicID)
	order := storedLaboOrder(clinicID, model.LaboDelivered)

	laboRepo := &mockLaboRepo{
		FindByIDFunc: func(id uuid.UUID) (*model.LaboOrder, error) { return order, nil },
	}
	svc := NewLaboService(laboRepo, &mockConsultedServiceRepo{}, &mockAuditRepo{})

	_, err := svc.ChangeStatus(order.ID, model.LaboCancelled, "lý do", actor)
	assertCode(t, err, serviceerr.CodeInvalidTransition)
}

func TestLaboHistoryScopedToClinic(t *testing.T) {
	actor := testEmployee(uuid.New())
	order := storedLaboOrder(uuid.New(), model.LaboOrdered)

	listed := false
	laboRepo := &mockLaboRepo{
		FindByIDFunc: func(id uuid.UUID) (*model.LaboOrder, error) { return order, nil },
	}
	auditRepo := &mockAuditRepo{
		ListByRecordFunc: func(recordType model.RecordType, recordID uuid.UUID) ([]model.StatusAudit, error) {
			listed = true
			return nil, nil
		},
	}
	svc := NewLaboService(laboRepo, &mockConsultedServiceRepo{}, auditRepo)

	_, err := svc.GetHistory(order.ID, actor)

	assertCode(t, err, serviceerr.CodePermissionDenied)
	assert.False(t, listed)
}
