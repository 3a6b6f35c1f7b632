package handler

import (
	"strconv"

	"go-dental-erp/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

func daysParam(c *fiber.Ctx) int {
	days, err := strconv.Atoi(c.Query("days", "7"))
	if err != nil || days < 1 || days > 90 {
		return 7
	}
	return days
}

func (h *ReportHandler) GetOverview(c *fiber.Ctx) error {
	stats, err := h.service.GetOverview(actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stats)
}

func (h *ReportHandler) GetDailyRevenue(c *fiber.Ctx) error {
	data, err := h.service.GetDailyRevenue(daysParam(c), actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(data)
}

func (h *ReportHandler) GetAppointmentCounts(c *fiber.Ctx) error {
	data, err := h.service.GetAppointmentCounts(daysParam(c), actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(data)
}
