package handler

import (
	"go-dental-erp/internal/service"

	"github.com/gofiber/fiber/v2"
)

type TreatmentLogHandler struct {
	service service.TreatmentLogService
}

func NewTreatmentLogHandler(s service.TreatmentLogService) *TreatmentLogHandler {
	return &TreatmentLogHandler{service: s}
}

func (h *TreatmentLogHandler) Create(c *fiber.Ctx) error {
	var req service.CreateTreatmentLogRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	log, err := h.service.CreateLog(&req, actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Treatment log created", "data": log})
}

func (h *TreatmentLogHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid treatment log ID"})
	}

	var req service.UpdateTreatmentLogRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	log, err := h.service.UpdateLog(id, &req, actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Treatment log updated", "data": log})
}

func (h *TreatmentLogHandler) GetByCustomer(c *fiber.Ctx) error {
	customerID, err := parseUUID(c.Params("customerId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	logs, err := h.service.GetByCustomer(customerID, actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(logs)
}
