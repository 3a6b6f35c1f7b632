package handler

import (
	"go-dental-erp/internal/model"
	"go-dental-erp/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ClinicHandler works against the repository directly; clinics are
// simple reference data without business rules of their own.
type ClinicHandler struct {
	repo repository.ClinicRepository
}

func NewClinicHandler(repo repository.ClinicRepository) *ClinicHandler {
	return &ClinicHandler{repo: repo}
}

func (h *ClinicHandler) GetAll(c *fiber.Ctx) error {
	clinics, err := h.repo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch clinics"})
	}
	return c.JSON(clinics)
}

func (h *ClinicHandler) Create(c *fiber.Ctx) error {
	var clinic model.Clinic
	if err := c.BodyParser(&clinic); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if clinic.Code == "" || clinic.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Code and name are required"})
	}

	if _, err := h.repo.FindByCode(clinic.Code); err == nil {
		return c.Status(409).JSON(fiber.Map{"error": "Clinic code already exists"})
	} else if err != gorm.ErrRecordNotFound {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create clinic"})
	}

	clinic.IsActive = true
	clinic.CreatedBy = actor(c).ID.String()
	if err := h.repo.Create(&clinic); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create clinic"})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Clinic created", "data": clinic})
}

func (h *ClinicHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid clinic ID"})
	}

	clinic, err := h.repo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Clinic not found"})
	}

	var req struct {
		Name     *string `json:"name"`
		Address  *string `json:"address"`
		Phone    *string `json:"phone"`
		IsActive *bool   `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.Name != nil {
		clinic.Name = *req.Name
	}
	if req.Address != nil {
		clinic.Address = *req.Address
	}
	if req.Phone != nil {
		clinic.Phone = *req.Phone
	}
	if req.IsActive != nil {
		clinic.IsActive = *req.IsActive
	}

	clinic.UpdatedBy = actor(c).ID.String()
	if err := h.repo.Update(clinic); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update clinic"})
	}
	return c.JSON(fiber.Map{"message": "Clinic updated", "data": clinic})
}
