package handler

import (
	"time"

	"go-dental-erp/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AppointmentHandler struct {
	service service.AppointmentService
}

func NewAppointmentHandler(s service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: s}
}

// GetSchedule lists appointments in a date range (default: today)
// GET /api/v1/appointments?from=...&to=...
func (h *AppointmentHandler) GetSchedule(c *fiber.Ctx) error {
	now := time.Now()
	from := now.Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, 1)

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid from date, use YYYY-MM-DD"})
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid to date, use YYYY-MM-DD"})
		}
		to = parsed.AddDate(0, 0, 1)
	}

	appointments, err := h.service.GetSchedule(from, to, actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(appointments)
}

func (h *AppointmentHandler) Create(c *fiber.Ctx) error {
	var req service.CreateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	appointment, err := h.service.CreateAppointment(&req, actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Appointment created", "data": appointment.ToResponse()})
}

func (h *AppointmentHandler) CheckIn(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid appointment ID"})
	}

	appointment, err := h.service.CheckIn(id, actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Checked in", "data": appointment})
}

func (h *AppointmentHandler) CheckOut(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid appointment ID"})
	}

	appointment, err := h.service.CheckOut(id, actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Checked out", "data": appointment})
}

func (h *AppointmentHandler) Cancel(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid appointment ID"})
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	appointment, err := h.service.Cancel(id, req.Reason, actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Appointment cancelled", "data": appointment})
}

func (h *AppointmentHandler) MarkNoShow(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid appointment ID"})
	}

	appointment, err := h.service.MarkNoShow(id, actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Marked as no-show", "data": appointment})
}

func (h *AppointmentHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid appointment ID"})
	}

	if err := h.service.DeleteAppointment(id, actor(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Appointment deleted"})
}

func (h *AppointmentHandler) GetHistory(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid appointment ID"})
	}

	history, err := h.service.GetHistory(id, actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(history)
}
