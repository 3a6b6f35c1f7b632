package handler

import (
	"go-dental-erp/internal/model"
	"go-dental-erp/internal/service"

	"github.com/gofiber/fiber/v2"
)

type MaterialHandler struct {
	service service.MaterialService
}

func NewMaterialHandler(s service.MaterialService) *MaterialHandler {
	return &MaterialHandler{service: s}
}

func (h *MaterialHandler) GetAll(c *fiber.Ctx) error {
	materials, err := h.service.GetMaterials(actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(materials)
}

func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var material model.Material
	if err := c.BodyParser(&material); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateMaterial(&material, actor(c)); err != nil {
		return writeError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Material created", "data": material})
}

func (h *MaterialHandler) RecordMove(c *fiber.Ctx) error {
	var req service.RecordMoveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.RecordMove(&req, actor(c)); err != nil {
		return writeError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Stock move recorded"})
}

func (h *MaterialHandler) GetSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.service.GetSuppliers()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(suppliers)
}

func (h *MaterialHandler) CreateSupplier(c *fiber.Ctx) error {
	var supplier model.Supplier
	if err := c.BodyParser(&supplier); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateSupplier(&supplier, actor(c)); err != nil {
		return writeError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Supplier created", "data": supplier})
}
