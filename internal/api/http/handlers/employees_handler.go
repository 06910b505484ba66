package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/orgkit/employee-service/internal/api/dto"
	"github.com/orgkit/employee-service/internal/domain"
	"github.com/orgkit/employee-service/internal/service"
	apperrors "github.com/orgkit/employee-service/pkg/util/errorutil"
)

// EmployeesHandler exposes employee CRUD endpoints.
type EmployeesHandler struct {
	service *service.EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employeeService *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{service: employeeService}
}

// ListEmployees GET /employees.
func (h *EmployeesHandler) ListEmployees(c *fiber.Ctx) error {
	list, err := h.service.ListEmployees(c.UserContext())
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return c.SendStatus(fiber.StatusNoContent)
	}
	items := make([]dto.EmployeeResponse, 0, len(list))
	for i := range list {
		items = append(items, employeeResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetEmployee GET /employees/:id.
func (h *EmployeesHandler) GetEmployee(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	emp, err := h.service.GetEmployee(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": employeeResponse(emp)})
}

// CreateEmployee POST /employees.
func (h *EmployeesHandler) CreateEmployee(c *fiber.Ctx) error {
	draft, err := parseEmployeeDraft(c)
	if err != nil {
		return err
	}
	emp, err := h.service.CreateEmployee(c.UserContext(), draft)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": employeeResponse(emp)})
}

// UpdateEmployee PUT /employees/:id. The body replaces the stored state.
func (h *EmployeesHandler) UpdateEmployee(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	draft, err := parseEmployeeDraft(c)
	if err != nil {
		return err
	}
	emp, err := h.service.UpdateEmployee(c.UserContext(), id, draft)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": employeeResponse(emp)})
}

// DeleteEmployee DELETE /employees/:id.
func (h *EmployeesHandler) DeleteEmployee(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteEmployee(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "employee deleted successfully"}})
}

func parseEmployeeDraft(c *fiber.Ctx) (domain.EmployeeDraft, error) {
	var req dto.EmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.EmployeeDraft{}, apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Department == nil || req.Department.ID == nil {
		return domain.EmployeeDraft{}, apperrors.NewValidationError("department.id required", nil)
	}

	draft := domain.EmployeeDraft{
		Name:         req.Name,
		Email:        req.Email,
		DepartmentID: *req.Department.ID,
	}
	if req.JoiningDate != "" {
		joined, err := time.Parse(dto.DateLayout, req.JoiningDate)
		if err != nil {
			return domain.EmployeeDraft{}, apperrors.NewValidationError("joining_date must be YYYY-MM-DD",
				map[string]any{"joining_date": req.JoiningDate})
		}
		draft.JoiningDate = &joined
	}
	return draft, nil
}

func parseID(c *fiber.Ctx) (int64, error) {
	raw := c.Params("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid id", map[string]any{"id": raw})
	}
	return id, nil
}

func employeeResponse(emp *domain.Employee) dto.EmployeeResponse {
	resp := dto.EmployeeResponse{
		ID:         emp.ID,
		Name:       emp.Name,
		Email:      emp.Email,
		Department: departmentResponse(&emp.Department),
	}
	if emp.JoiningDate != nil {
		formatted := emp.JoiningDate.Format(dto.DateLayout)
		resp.JoiningDate = &formatted
	}
	return resp
}
