package handler

import (
	"go-dental-erp/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	service service.PaymentService
}

func NewPaymentHandler(s service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: s}
}

func (h *PaymentHandler) CreateVoucher(c *fiber.Ctx) error {
	var req service.CreateVoucherRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	voucher, err := h.service.CreateVoucher(&req, actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Payment recorded", "data": voucher})
}

func (h *PaymentHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid voucher ID"})
	}

	voucher, err := h.service.GetVoucherByID(id, actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(voucher)
}

func (h *PaymentHandler) GetByCustomer(c *fiber.Ctx) error {
	customerID, err := parseUUID(c.Params("customerId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	vouchers, err := h.service.GetVouchersByCustomer(customerID, actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(vouchers)
}
