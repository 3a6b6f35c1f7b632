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

type PaymentService interface {
	CreateVoucher(req *CreateVoucherRequest, actor authz.Actor) (*model.PaymentVoucher, error)
	GetVoucherByID(id uuid.UUID, actor authz.Actor) (*model.PaymentVoucher, error)
	GetVouchersByCustomer(customerID uuid.UUID, actor authz.Actor) ([]model.PaymentVoucher, error)
}

type CreateVoucherRequest struct {
	CustomerID string                   `json:"customer_id" validate:"required"`
	Method     string                   `json:"method" validate:"required,oneof=CASH TRANSFER CARD"`
	Note       string                   `json:"note"`
	Details    []VoucherAllocationInput `json:"details" validate:"required,min=1,dive"`
}

type VoucherAllocationInput struct {
	ConsultedServiceID string `json:"consulted_service_id" validate:"required"`
	Amount             int64  `json:"amount" validate:"required,gt=0"`
}

type paymentService struct {
	paymentRepo  repository.PaymentRepository
	customerRepo repository.CustomerRepository
	wsHub        *ws.Hub
}

func NewPaymentService(paymentRepo repository.PaymentRepository, customerRepo repository.CustomerRepository, hub *ws.Hub) PaymentService {
	return &paymentService{
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		wsHub:        hub,
	}
}

// CreateVoucher records a payment and allocates it across confirmed services.
// Allocation rules are validated against the row-locked state inside the same
// transaction that writes the voucher, so a racing confirm or payment cannot
// oversubscribe a service's debt.
func (s *paymentService) CreateVoucher(req *CreateVoucherRequest, actor authz.Actor) (*model.PaymentVoucher, error) {
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

	details := make([]model.PaymentVoucherDetail, 0, len(req.Details))
	seen := make(map[uuid.UUID]bool, len(req.Details))
	var total int64
	for _, input := range req.Details {
		csID, err := uuid.Parse(input.ConsultedServiceID)
		if err != nil {
			return nil, serviceerr.Validation("Mã dịch vụ tư vấn không hợp lệ")
		}
		// One allocation per service: duplicates would each be validated
		// against the same debt snapshot.
		if seen[csID] {
			return nil, serviceerr.Validation("Mỗi dịch vụ chỉ được xuất hiện một lần trong phiếu thu")
		}
		seen[csID] = true
		detail := model.PaymentVoucherDetail{
			ConsultedServiceID: csID,
			Amount:             input.Amount,
		}
		detail.CreatedBy = actor.ID.String()
		detail.UpdatedBy = actor.ID.String()
		details = append(details, detail)
		total += input.Amount
	}

	code, err := s.paymentRepo.NextVoucherCode()
	if err != nil {
		return nil, mapRepoError(err, "", "")
	}

	voucher := &model.PaymentVoucher{
		VoucherCode: code,
		CustomerID:  customer.ID,
		ClinicID:    customer.ClinicID,
		CashierID:   actor.ID,
		Method:      model.PaymentMethod(req.Method),
		TotalAmount: total,
		PaymentDate: time.Now(),
		Note:        req.Note,
	}
	voucher.CreatedBy = actor.ID.String()
	voucher.UpdatedBy = actor.ID.String()

	err = s.paymentRepo.CreateVoucher(voucher, details, func(services map[uuid.UUID]*model.ConsultedService) error {
		for _, detail := range details {
			cs, ok := services[detail.ConsultedServiceID]
			if !ok {
				return serviceerr.NotFound("Không tìm thấy dịch vụ tư vấn")
			}
			if cs.CustomerID != customer.ID {
				return serviceerr.Validation("Dịch vụ không thuộc khách hàng này")
			}
			if cs.Status != model.ServiceConfirmed {
				return serviceerr.Validation("Chỉ thu tiền được trên dịch vụ đã chốt")
			}
			if detail.Amount > cs.Debt {
				return serviceerr.Validation(
					fmt.Sprintf("Số tiền %d vượt quá công nợ còn lại %d của dịch vụ %s", detail.Amount, cs.Debt, cs.ServiceName))
			}
		}
		return nil
	})
	if err != nil {
		return nil, mapRepoError(err, "Không tìm thấy dịch vụ tư vấn", "Công nợ vừa thay đổi, vui lòng tải lại")
	}

	s.wsHub.Notify("payment_recorded",
		fmt.Sprintf("Đã thu %d cho khách %s", total, customer.FullName),
		map[string]interface{}{
			"voucher_code": voucher.VoucherCode,
			"customer_id":  customer.ID,
			"total_amount": total,
			"method":       voucher.Method,
		})

	return voucher, nil
}

func (s *paymentService) GetVoucherByID(id uuid.UUID, actor authz.Actor) (*model.PaymentVoucher, error) {
	voucher, err := s.paymentRepo.FindByID(id)
	if err != nil {
		return nil, mapRepoError(err, "Không tìm thấy phiếu thu", "")
	}

	dec := authz.CanPerform(actor, authz.ActionView, authz.Record{ClinicID: voucher.ClinicID, Date: time.Now()}, time.Now())
	if !dec.Allowed {
		return nil, serviceerr.PermissionDenied(dec.Reason)
	}
	return voucher, nil
}

func (s *paymentService) GetVouchersByCustomer(customerID uuid.UUID, actor authz.Actor) ([]model.PaymentVoucher, error) {
	customer, err := s.customerRepo.FindByID(customerID)
	if err != nil {
		return nil, mapRepoError(err, "Không tìm thấy khách hàng", "")
	}

	dec := authz.CanPerform(actor, authz.ActionView, authz.Record{ClinicID: customer.ClinicID, Date: time.Now()}, time.Now())
	if !dec.Allowed {
		return nil, serviceerr.PermissionDenied(dec.Reason)
	}

	vouchers, err := s.paymentRepo.FindByCustomer(customerID)
	if err != nil {
		return nil, mapRepoError(err, "", "")
	}
	return vouchers, nil
}
