package handler

import (
	"go-dental-erp/internal/service"

	"github.com/gofiber/fiber/v2"
)

type EmployeeHandler struct {
	service service.EmployeeService
}

func NewEmployeeHandler(s service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: s}
}

func (h *EmployeeHandler) GetEmployees(c *fiber.Ctx) error {
	employees, err := h.service.GetAllEmployees(actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(employees)
}

func (h *EmployeeHandler) GetEmployee(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid employee ID"})
	}

	employee, err := h.service.GetEmployeeByID(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(employee)
}

func (h *EmployeeHandler) CreateEmployee(c *fiber.Ctx) error {
	var req service.CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	employee, err := h.service.CreateEmployee(&req, actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Employee created", "data": employee.ToResponse()})
}

func (h *EmployeeHandler) UpdateEmployee(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid employee ID"})
	}

	var req service.UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	employee, err := h.service.UpdateEmployee(id, &req, actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Employee updated", "data": employee.ToResponse()})
}

func (h *EmployeeHandler) DeleteEmployee(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid employee ID"})
	}

	if err := h.service.DeleteEmployee(id, actor(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Employee deleted"})
}
