package handler

import (
	"go-dental-erp/internal/model"
	"go-dental-erp/internal/service"

	"github.com/gofiber/fiber/v2"
)

type LaboHandler struct {
	service service.LaboService
}

func NewLaboHandler(s service.LaboService) *LaboHandler {
	return &LaboHandler{service: s}
}

func (h *LaboHandler) Create(c *fiber.Ctx) error {
	var req service.CreateLaboOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	order, err := h.service.CreateOrder(&req, actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Labo order created", "data": order})
}

func (h *LaboHandler) ChangeStatus(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid labo order ID"})
	}

	var req struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	order, err := h.service.ChangeStatus(id, model.LaboStatus(req.Status), req.Reason, actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Labo order updated", "data": order})
}

func (h *LaboHandler) GetAll(c *fiber.Ctx) error {
	orders, err := h.service.GetOrders(actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(orders)
}

func (h *LaboHandler) GetHistory(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid labo order ID"})
	}

	history, err := h.service.GetHistory(id, actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(history)
}
