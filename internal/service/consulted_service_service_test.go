package service

import (
	"testing"
	"time"

	"go-dental-erp/internal/model"
	"go-dental-erp/internal/repository"
	"go-dental-erp/internal/serviceerr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func storedMaster() *model.DentalService {
	ds := &model.DentalService{
		Name:     "Bọc răng sứ",
		Unit:     "răng",
		Price:    3_000_000,
		IsActive: true,
	}
	ds.ID = uuid.New()
	return ds
}

func storedConsultedService(clinicID uuid.UUID, status model.ServiceStatus) *model.ConsultedService {
	cs := &model.ConsultedService{
		CustomerID:  uuid.New(),
		ClinicID:    clinicID,
		ServiceName: "Bọc răng sứ",
		ListPrice:   3_000_000,
		Quantity:    2,
		FinalPrice:  2_500_000,
		AmountPaid:  0,
		Debt:        5_000_000,
		Status:      status,
	}
	cs.ID = uuid.New()
	cs.CreatedAt = time.Now()
	return cs
}

func TestCreateConsultedServiceSnapshotsMaster(t *testing.T) {
	clinicID := uuid.New()
	actor := testEmployee(clinicID)
	customer := storedCustomer(clinicID, model.StageQuoted)
	master := storedMaster()

	var created *model.ConsultedService
	csRepo := &mockConsultedServiceRepo{
		CreateFunc: func(cs *model.ConsultedService) error {
			created = cs
			return nil
		},
	}
	customerRepo := &mockCustomerRepo{
		FindByIDFunc: func(id uuid.UUID) (*model.Customer, error) { return customer, nil },
	}
	dsRepo := &mockDentalServiceRepo{
		FindByIDFunc: func(id uuid.UUID) (*model.DentalService, error) { return master, nil },
	}
	svc := NewConsultedServiceService(csRepo, customerRepo, dsRepo, &mockAuditRepo{})

	cs, err := svc.CreateConsultedService(&CreateConsultedServiceRequest{
		CustomerID:      customer.ID.String(),
		DentalServiceID: master.ID.String(),
		Quantity:        2,
	}, actor)

	assert.NoError(t, err)
	assert.NotNil(t, created)
	// Snapshots frozen from the master
	assert.Equal(t, master.Name, cs.ServiceName)
	assert.Equal(t, master.Unit, cs.ServiceUnit)
	assert.Equal(t, master.Price, cs.ListPrice)
	// Final price defaults to the list price; debt covers the full line
	assert.Equal(t, master.Price, cs.FinalPrice)
	assert.Equal(t, int64(6_000_000), cs.Debt)
	assert.Equal(t, model.ServiceUnconfirmed, cs.Status)
	// The creating actor becomes the consulting sale
	if assert.NotNil(t, cs.SaleID) {
		assert.Equal(t, actor.ID, *cs.SaleID)
	}
}

func TestCreateConsultedServiceRejectsInactiveMaster(t *testing.T) {
	clinicID := uuid.New()
	actor := testEmployee(clinicID)
	customer := storedCustomer(clinicID, model.StageQuoted)
	master := storedMaster()
	master.IsActive = false

	svc := NewConsultedServiceService(
		&mockConsultedServiceRepo{},
		&mockCustomerRepo{FindByIDFunc: func(id uuid.UUID) (*model.Customer, error) { return customer, nil }},
		&mockDentalServiceRepo{FindByIDFunc: func(id uuid.UUID) (*model.DentalService, error) { return master, nil }},
		&mockAuditRepo{},
	)

	_, err := svc.CreateConsultedService(&CreateConsultedServiceRequest{
		CustomerID:      customer.ID.String(),
		DentalServiceID: master.ID.String(),
		Quantity:        1,
	}, actor)

	assertCode(t, err, serviceerr.CodeValidation)
}

func TestConfirmHappyPath(t *testing.T) {
	clinicID := uuid.New()
	actor := testEmployee(clinicID)
	cs := storedConsultedService(clinicID, model.ServiceUnconfirmed)

	var gotAudit *model.StatusAudit
	csRepo := &mockConsultedServiceRepo{
		FindByIDFunc: func(id uuid.UUID) (*model.ConsultedService, error) { return cs, nil },
		ConfirmFunc: func(id uuid.UUID, confirmedAt time.Time, updatedBy string, audit *model.StatusAudit) error {
			gotAudit = audit
			now := confirmedAt
			cs.Status = model.ServiceConfirmed
			cs.ConfirmedAt = &now
			cs.Debt = model.ComputeDebt(cs.FinalPrice, cs.Quantity, cs.AmountPaid)
			cs.UpdatedBy = updatedBy
			return nil
		},
	}
	svc := NewConsultedServiceService(csRepo, &mockCustomerRepo{}, &mockDentalServiceRepo{}, &mockAuditRepo{})

	confirmed, err := svc.Confirm(cs.ID, actor)

	assert.NoError(t, err)
	assert.Equal(t, model.ServiceConfirmed, confirmed.Status)
	assert.NotNil(t, confirmed.ConfirmedAt)
	assert.Equal(t, int64(5_000_000), confirmed.Debt)
	if assert.NotNil(t, gotAudit) {
		assert.Equal(t, model.RecordConsultedService, gotAudit.RecordType)
		assert.Equal(t, string(model.ServiceUnconfirmed), *gotAudit.FromState)
		assert.Equal(t, string(model.ServiceConfirmed), gotAudit.ToState)
		assert.Equal(t, actor.ID, gotAudit.ActorID)
	}
}

// The debt on a confirmed line comes from the row the database committed, not
// from the snapshot read before the transition. A financial edit landing
// between the read and the confirm must show up in the result.
func TestConfirmDebtFromCommittedRow(t *testing.T) {
	clinicID := uuid.New()
	actor := testEmployee(clinicID)
	stale := storedConsultedService(clinicID, model.ServiceUnconfirmed)

	committed := *stale
	committed.Quantity = 3
	committed.Status = model.ServiceConfirmed
	committed.Debt = model.ComputeDebt(committed.FinalPrice, committed.Quantity, committed.AmountPaid)

	reads := 0
	csRepo := &mockConsultedServiceRepo{
		FindByIDFunc: func(id uuid.UUID) (*model.ConsultedService, error) {
			reads++
			if reads == 1 {
				return stale, nil
			}
			return &committed, nil
		},
	}
	svc := NewConsultedServiceService(csRepo, &mockCustomerRepo{}, &mockDentalServiceRepo{}, &mockAuditRepo{})

	confirmed, err := svc.Confirm(stale.ID, actor)

	assert.NoError(t, err)
	assert.Equal(t, int64(7_500_000), confirmed.Debt)
}

func TestConfirmAlreadyConfirmed(t *testing.T) {
	clinicID := uuid.New()
	actor := testEmployee(clinicID)
	cs := storedConsultedService(clinicID, model.ServiceConfirmed)

	confirmCalled := false
	csRepo := &mockConsultedServiceRepo{
		FindByIDFunc: func(id uuid.UUID) (*model.ConsultedService, error) { return cs, nil },
		ConfirmFunc: func(id uuid.UUID, confirmedAt time.Time, updatedBy string, audit *model.StatusAudit) error {
			confirmCalled = true
			return nil
		},
	}
	svc := NewConsultedServiceService(csRepo, &mockCustomerRepo{}, &mockDentalServiceRepo{}, &mockAuditRepo{})

	_, err := svc.Confirm(cs.ID, actor)
	assertCode(t, err, serviceerr.CodeInvalidTransition)
	assert.False(t, confirmCalled)
}

func TestConfirmRace(t *testing.T) {
	clinicID := uuid.New()
	actor := testEmployee(clinicID)
	cs := storedConsultedService(clinicID, model.ServiceUnconfirmed)

	csRepo := &mockConsultedServiceRepo{
		FindByIDFunc: func(id uuid.UUID) (*model.ConsultedService, error) { return cs, nil },
		ConfirmFunc: func(id uuid.UUID, confirmedAt time.Time, updatedBy string, audit *model.StatusAudit) error {
			// A parallel confirm won: the guarded update matched zero rows
			return repository.ErrStateChanged
		},
	}
	svc := NewConsultedServiceService(csRepo, &mockCustomerRepo{}, &mockDentalServiceRepo{}, &mockAuditRepo{})

	_, err := svc.Confirm(cs.ID, actor)
	assertCode(t, err, serviceerr.CodeConflict)
}

func TestUpdateFinancialsRecomputesDebt(t *testing.T) {
	clinicID := uuid.New()
	actor := testEmployee(clinicID)
	cs := storedConsultedService(clinicID, model.ServiceUnconfirmed)
	cs.AmountPaid = 1_000_000

	csRepo := &mockConsultedServiceRepo{
		FindByIDFunc: func(id uuid.UUID) (*model.ConsultedService, error) { return cs, nil },
	}
	svc := NewConsultedServiceService(csRepo, &mockCustomerRepo{}, &mockDentalServiceRepo{}, &mockAuditRepo{})

	updated, err := svc.UpdateFinancials(cs.ID, &UpdateFinancialsRequest{
		Quantity:   3,
		FinalPrice: 2_000_000,
	}, actor)

	assert.NoError(t, err)
	assert.Equal(t, int64(5_000_000), updated.Debt) // 3*2tr - 1tr đã trả
}

func TestServiceHistoryScopedToClinic(t *testing.T) {
	actor := testEmployee(uuid.New())
	cs := storedConsultedService(uuid.New(), model.ServiceConfirmed)

	listed := false
	csRepo := &mockConsultedServiceRepo{
		FindByIDFunc: func(id uuid.UUID) (*model.ConsultedService, error) { return cs, nil },
	}
	auditRepo := &mockAuditRepo{
		ListByRecordFunc: func(recordType model.RecordType, recordID uuid.UUID) ([]model.StatusAudit, error) {
			listed = true
			return nil, nil
		},
	}
	svc := NewConsultedServiceService(csRepo, &mockCustomerRepo{}, &mockDentalServiceRepo{}, auditRepo)

	_, err := svc.GetHistory(cs.ID, actor)

	assertCode(t, err, serviceerr.CodePermissionDenied)
	assert.False(t, listed)
}

func TestUpdateFinancialsLockedAfterConfirm(t *testing.T) {
	clinicID := uuid.New()
	actor := testEmployee(clinicID)
	cs := storedConsultedService(clinicID, model.ServiceConfirmed)

	csRepo := &mockConsultedServiceRepo{
		FindByIDFunc: func(id uuid.UUID) (*model.ConsultedService, error) { return cs, nil },
	}
	svc := NewConsultedServiceService(csRepo, &mockCustomerRepo{}, &mockDentalServiceRepo{}, &mockAuditRepo{})

	_, err := svc.UpdateFinancials(cs.ID, &UpdateFinancialsRequest{
		Quantity:   1,
		FinalPrice: 100_000,
	}, actor)

	assertCode(t, err, serviceerr.CodePermissionDenied)

	// Admins may still correct confirmed lines
	_, err = svc.UpdateFinancials(cs.ID, &UpdateFinancialsRequest{
		Quantity:   1,
		FinalPrice: 100_000,
	}, testAdmin())
	assert.NoError(t, err)
}
