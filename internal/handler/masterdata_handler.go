package handler

import (
	"go-dental-erp/internal/service"

	"github.com/gofiber/fiber/v2"
)

type MasterDataHandler struct {
	service service.MasterDataService
}

func NewMasterDataHandler(s service.MasterDataService) *MasterDataHandler {
	return &MasterDataHandler{service: s}
}

// GetServices lists the service catalog.
// Pass ?all=true to include deactivated entries.
func (h *MasterDataHandler) GetServices(c *fiber.Ctx) error {
	activeOnly := c.Query("all") != "true"

	services, err := h.service.GetServices(activeOnly)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(services)
}

func (h *MasterDataHandler) CreateService(c *fiber.Ctx) error {
	var req service.CreateDentalServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	svc, err := h.service.CreateService(&req, actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Service created", "data": svc})
}

func (h *MasterDataHandler) UpdateService(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid service ID"})
	}

	var req service.UpdateDentalServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	svc, err := h.service.UpdateService(id, &req, actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Service updated", "data": svc})
}

func (h *MasterDataHandler) MigrateService(c *fiber.Ctx) error {
	fromID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid service ID"})
	}

	var req struct {
		ToID string `json:"to_id"`
		Mode string `json:"mode"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	toID, err := parseUUID(req.ToID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid target service ID"})
	}

	migrated, err := h.service.MigrateService(fromID, toID, service.MigrateMode(req.Mode), actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Service migrated", "migrated_count": migrated})
}
