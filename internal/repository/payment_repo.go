package repository

import (
	"fmt"

	"go-dental-erp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository interface {
	// CreateVoucher persists the voucher, its details and the amount_paid/debt
	// updates on every allocated service as one transaction. Services are read
	// back under a row lock inside the transaction; the allocation is validated
	// against that state, not the caller's earlier read.
	CreateVoucher(voucher *model.PaymentVoucher, details []model.PaymentVoucherDetail,
		validate func(services map[uuid.UUID]*model.ConsultedService) error) error
	FindByID(id uuid.UUID) (*model.PaymentVoucher, error)
	FindByCustomer(customerID uuid.UUID) ([]model.PaymentVoucher, error)
	NextVoucherCode() (string, error)
}

type paymentRepo struct {
	db *gorm.DB
}

func NewPaymentRepo(db *gorm.DB) PaymentRepository {
	return &paymentRepo{db}
}

func (r *paymentRepo) CreateVoucher(voucher *model.PaymentVoucher, details []model.PaymentVoucherDetail,
	validate func(services map[uuid.UUID]*model.ConsultedService) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Lock every allocated service for the duration of the voucher write
		services := make(map[uuid.UUID]*model.ConsultedService, len(details))
		for _, d := range details {
			var cs model.ConsultedService
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&cs, "id = ?", d.ConsultedServiceID).Error; err != nil {
				return err
			}
			services[d.ConsultedServiceID] = &cs
		}

		if validate != nil {
			if err := validate(services); err != nil {
				return err
			}
		}

		if err := tx.Create(voucher).Error; err != nil {
			return err
		}

		for i := range details {
			details[i].VoucherID = voucher.ID
			details[i].Method = voucher.Method
			if err := tx.Create(&details[i]).Error; err != nil {
				return err
			}

			// Accumulate on the locked snapshot so repeated allocations to the
			// same service stack instead of overwriting each other.
			cs := services[details[i].ConsultedServiceID]
			cs.AmountPaid += details[i].Amount
			cs.Debt = model.ComputeDebt(cs.FinalPrice, cs.Quantity, cs.AmountPaid)
			if err := tx.Model(&model.ConsultedService{}).
				Where("id = ?", cs.ID).
				Updates(map[string]interface{}{
					"amount_paid": cs.AmountPaid,
					"debt":        cs.Debt,
					"updated_by":  voucher.CreatedBy,
				}).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *paymentRepo) FindByID(id uuid.UUID) (*model.PaymentVoucher, error) {
	var voucher model.PaymentVoucher
	err := r.db.Preload("Customer").Preload("Cashier").Preload("Details").
		Preload("Details.ConsultedService").
		First(&voucher, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &voucher, nil
}

func (r *paymentRepo) FindByCustomer(customerID uuid.UUID) ([]model.PaymentVoucher, error) {
	var vouchers []model.PaymentVoucher
	err := r.db.Preload("Cashier").Preload("Details").
		Where("customer_id = ?", customerID).
		Order("payment_date DESC").
		Find(&vouchers).Error
	return vouchers, err
}

func (r *paymentRepo) NextVoucherCode() (string, error) {
	var next int64
	if err := r.db.Raw("SELECT nextval('voucher_code_seq')").Scan(&next).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("PT-%06d", next), nil
}
