package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orgkit/employee-service/internal/api/dto"
	"github.com/orgkit/employee-service/internal/domain"
	"github.com/orgkit/employee-service/internal/service"
	apperrors "github.com/orgkit/employee-service/pkg/util/errorutil"
)

// DepartmentsHandler exposes department endpoints.
type DepartmentsHandler struct {
	service *service.DepartmentService
}

// NewDepartmentsHandler constructs handler.
func NewDepartmentsHandler(departmentService *service.DepartmentService) *DepartmentsHandler {
	return &DepartmentsHandler{service: departmentService}
}

// ListDepartments GET /departments.
func (h *DepartmentsHandler) ListDepartments(c *fiber.Ctx) error {
	depts, err := h.service.ListDepartments(c.UserContext())
	if err != nil {
		return err
	}
	if len(depts) == 0 {
		return c.SendStatus(fiber.StatusNoContent)
	}
	resp := make([]dto.DepartmentResponse, 0, len(depts))
	for i := range depts {
		resp = append(resp, departmentResponse(&depts[i]))
	}
	return c.JSON(fiber.Map{"data": resp})
}

// GetDepartment GET /departments/:id.
func (h *DepartmentsHandler) GetDepartment(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	dept, err := h.service.GetDepartment(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": departmentResponse(dept)})
}

// CreateDepartment POST /departments.
func (h *DepartmentsHandler) CreateDepartment(c *fiber.Ctx) error {
	var req dto.DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	dept, err := h.service.CreateDepartment(c.UserContext(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": departmentResponse(dept)})
}

func departmentResponse(dept *domain.Department) dto.DepartmentResponse {
	return dto.DepartmentResponse{
		ID:   dept.ID,
		Name: dept.Name,
	}
}
