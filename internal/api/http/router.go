package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orgkit/employee-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Departments *handlers.DepartmentsHandler
	Employees   *handlers.EmployeesHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	departments := app.Group("/departments")
	departments.Get("/", cfg.Departments.ListDepartments)
	departments.Post("/", cfg.Departments.CreateDepartment)
	departments.Get("/:id", cfg.Departments.GetDepartment)

	employees := app.Group("/employees")
	employees.Get("/", cfg.Employees.ListEmployees)
	employees.Post("/", cfg.Employees.CreateEmployee)
	employees.Get("/:id", cfg.Employees.GetEmployee)
	employees.Put("/:id", cfg.Employees.UpdateEmployee)
	employees.Delete("/:id", cfg.Employees.DeleteEmployee)
}
