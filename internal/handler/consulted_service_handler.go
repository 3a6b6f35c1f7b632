package handler

import (
	"go-dental-erp/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ConsultedServiceHandler struct {
	service service.ConsultedServiceService
}

func NewConsultedServiceHandler(s service.ConsultedServiceService) *ConsultedServiceHandler {
	return &ConsultedServiceHandler{service: s}
}

func (h *ConsultedServiceHandler) Create(c *fiber.Ctx) error {
	var req service.CreateConsultedServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	cs, err := h.service.CreateConsultedService(&req, actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Consulted service created", "data": cs})
}

func (h *ConsultedServiceHandler) UpdateFinancials(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid consulted service ID"})
	}

	var req service.UpdateFinancialsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	cs, err := h.service.UpdateFinancials(id, &req, actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Consulted service updated", "data": cs})
}

// Confirm executes the Chưa chốt -> Đã chốt transition
// POST /api/v1/consulted-services/:id/confirm
func (h *ConsultedServiceHandler) Confirm(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid consulted service ID"})
	}

	cs, err := h.service.Confirm(id, actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Service confirmed", "data": cs})
}

func (h *ConsultedServiceHandler) GetByCustomer(c *fiber.Ctx) error {
	customerID, err := parseUUID(c.Params("customerId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	services, err := h.service.GetByCustomer(customerID, actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(services)
}

func (h *ConsultedServiceHandler) GetHistory(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid consulted service ID"})
	}

	history, err := h.service.GetHistory(id, actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(history)
}
