package service

import (
	"testing"

	"go-dental-erp/internal/model"
	"go-dental-erp/internal/serviceerr"
	"go-dental-erp/internal/ws"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCreateVoucherAllocatesAcrossConfirmedServices(t *testing.T) {
	clinicID := uuid.New()
	actor := testEmployee(clinicID)
	customer := storedCustomer(clinicID, model.StageWon)

	confirmed := storedConsultedService(clinicID, model.ServiceConfirmed)
	confirmed.CustomerID = customer.ID
	confirmed.Debt = 2_000_000

	var gotVoucher *model.PaymentVoucher
	var gotDetails []model.PaymentVoucherDetail
	paymentRepo := &mockPaymentRepo{
		NextVoucherCodeFunc: func() (string, error) { return "PT-000031", nil },
		CreateVoucherFunc: func(voucher *model.PaymentVoucher, details []model.PaymentVoucherDetail,
			validate func(map[uuid.UUID]*model.ConsultedService) error) error {
			if err := validate(map[uuid.UUID]*model.ConsultedService{confirmed.ID: confirmed}); err != nil {
				return err
			}
			gotVoucher = voucher
			gotDetails = details
			return nil
		},
	}
	customerRepo := &mockCustomerRepo{
		FindByIDFunc: func(id uuid.UUID) (*model.Customer, error) { return customer, nil },
	}
	svc := NewPaymentService(paymentRepo, customerRepo, ws.NewHub())

	voucher, err := svc.CreateVoucher(&CreateVoucherRequest{
		CustomerID: customer.ID.String(),
		Method:     "CASH",
		Details: []VoucherAllocationInput{
			{ConsultedServiceID: confirmed.ID.String(), Amount: 1_500_000},
		},
	}, actor)

	assert.NoError(t, err)
	assert.Equal(t, "PT-000031", voucher.VoucherCode)
	assert.Equal(t, int64(1_500_000), voucher.TotalAmount)
	assert.Equal(t, model.PaymentMethod("CASH"), voucher.Method)
	assert.Equal(t, actor.ID, voucher.CashierID)
	assert.NotNil(t, gotVoucher)
	if assert.Len(t, gotDetails, 1) {
		assert.Equal(t, confirmed.ID, gotDetails[0].ConsultedServiceID)
	}
}

func TestCreateVoucherRejectsUnconfirmedService(t *testing.T) {
	clinicID := uuid.New()
	actor := testEmployee(clinicID)
	customer := storedCustomer(clinicID, model.StageWon)

	unconfirmed := storedConsultedService(clinicID, model.ServiceUnconfirmed)
	unconfirmed.CustomerID = customer.ID

	paymentRepo := &mockPaymentRepo{
		CreateVoucherFunc: func(voucher *model.PaymentVoucher, details []model.PaymentVoucherDetail,
			validate func(map[uuid.UUID]*model.ConsultedService) error) error {
			return validate(map[uuid.UUID]*model.ConsultedService{unconfirmed.ID: unconfirmed})
		},
	}
	customerRepo := &mockCustomerRepo{
		FindByIDFunc: func(id uuid.UUID) (*model.Customer, error) { return customer, nil },
	}
	svc := NewPaymentService(paymentRepo, customerRepo, ws.NewHub())

	_, err := svc.CreateVoucher(&CreateVoucherRequest{
		CustomerID: customer.ID.String(),
		Method:     "TRANSFER",
		Details: []VoucherAllocationInput{
			{ConsultedServiceID: unconfirmed.ID.String(), Amount: 500_000},
		},
	}, actor)

	assertCode(t, err, serviceerr.CodeValidation)
}

func TestCreateVoucherRejectsOverpayment(t *testing.T) {
	clinicID := uuid.New()
	actor := testEmployee(clinicID)
	customer := storedCustomer(clinicID, model.StageWon)

	confirmed := storedConsultedService(clinicID, model.ServiceConfirmed)
	confirmed.CustomerID = customer.ID
	confirmed.Debt = 300_000

	paymentRepo := &mockPaymentRepo{
		CreateVoucherFunc: func(voucher *model.PaymentVoucher, details []model.PaymentVoucherDetail,
			validate func(map[uuid.UUID]*model.ConsultedService) error) error {
			return validate(map[uuid.UUID]*model.ConsultedService{confirmed.ID: confirmed})
		},
	}
	customerRepo := &mockCustomerRepo{
		FindByIDFunc: func(id uuid.UUID) (*model.Customer, error) { return customer, nil },
	}
	svc := NewPaymentService(paymentRepo, customerRepo, ws.NewHub())

	_, err := svc.CreateVoucher(&CreateVoucherRequest{
		CustomerID: customer.ID.String(),
		Method:     "CASH",
		Details: []VoucherAllocationInput{
			{ConsultedServiceID: confirmed.ID.String(), Amount: 300_001},
		},
	}, actor)

	assertCode(t, err, serviceerr.CodeValidation)
}

// Two allocations naming the same service would each pass the per-line debt
// check against the same snapshot while their sum exceeds it, so the request
// is rejected before the repository is touched.
func TestCreateVoucherRejectsDuplicateAllocations(t *testing.T) {
	clinicID := uuid.New()
	actor := testEmployee(clinicID)
	customer := storedCustomer(clinicID, model.StageWon)

	confirmed := storedConsultedService(clinicID, model.ServiceConfirmed)
	confirmed.CustomerID = customer.ID
	confirmed.Debt = 1_000_000

	createCalled := false
	paymentRepo := &mockPaymentRepo{
		CreateVoucherFunc: func(voucher *model.PaymentVoucher, details []model.PaymentVoucherDetail,
			validate func(map[uuid.UUID]*model.ConsultedService) error) error {
			createCalled = true
			return validate(map[uuid.UUID]*model.ConsultedService{confirmed.ID: confirmed})
		},
	}
	customerRepo := &mockCustomerRepo{
		FindByIDFunc: func(id uuid.UUID) (*model.Customer, error) { return customer, nil },
	}
	svc := NewPaymentService(paymentRepo, customerRepo, ws.NewHub())

	_, err := svc.CreateVoucher(&CreateVoucherRequest{
		CustomerID: customer.ID.String(),
		Method:     "CASH",
		Details: []VoucherAllocationInput{
			{ConsultedServiceID: confirmed.ID.String(), Amount: 600_000},
			{ConsultedServiceID: confirmed.ID.String(), Amount: 600_000},
		},
	}, actor)

	assertCode(t, err, serviceerr.CodeValidation)
	assert.False(t, createCalled)
}

func TestCreateVoucherRejectsForeignService(t *testing.T) {
	clinicID := uuid.New()
	actor := testEmployee(clinicID)
	customer := storedCustomer(clinicID, model.StageWon)

	// Confirmed, plenty of debt, but belongs to a different customer
	other := storedConsultedService(clinicID, model.ServiceConfirmed)

	paymentRepo := &mockPaymentRepo{
		CreateVoucherFunc: func(voucher *model.PaymentVoucher, details []model.PaymentVoucherDetail,
			validate func(map[uuid.UUID]*model.ConsultedService) error) error {
			return validate(map[uuid.UUID]*model.ConsultedService{other.ID: other})
		},
	}
	customerRepo := &mockCustomerRepo{
		FindByIDFunc: func(id uuid.UUID) (*model.Customer, error) { return customer, nil },
	}
	svc := NewPaymentService(paymentRepo, customerRepo, ws.NewHub())

	_, err := svc.CreateVoucher(&CreateVoucherRequest{
		CustomerID: customer.ID.String(),
		Method:     "CASH",
		Details: []VoucherAllocationInput{
			{ConsultedServiceID: other.ID.String(), Amount: 100_000},
		},
	}, actor)

	assertCode(t, err, serviceerr.CodeValidation)
}

func TestCreateVoucherRequiresDetails(t *testing.T) {
	clinicID := uuid.New()
	actor := testEmployee(clinicID)

	svc := NewPaymentService(&mockPaymentRepo{}, &mockCustomerRepo{}, ws.NewHub())

	_, err := svc.CreateVoucher(&CreateVoucherRequest{
		CustomerID: uuid.New().String(),
		Method:     "CASH",
	}, actor)

	assertCode(t, err, serviceerr.CodeValidation)
}
