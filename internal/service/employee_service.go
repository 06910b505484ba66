package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/orgkit/employee-service/internal/domain"
	"github.com/orgkit/employee-service/internal/events"
	"github.com/orgkit/employee-service/internal/repository"
	apperrors "github.com/orgkit/employee-service/pkg/util/errorutil"
)

// EmployeeService orchestrates employee CRUD and keeps every written employee bound to a
// department that exists at write time.
//
// The existence check and the write are separate store calls; a department removed in
// between is not detected.
type EmployeeService struct {
	employees   repository.EmployeeRepository
	departments repository.DepartmentRepository
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// EmployeeDependencies encapsulates collaborators for employee management. Dispatcher is
// optional.
type EmployeeDependencies struct {
	EmployeeRepo   repository.EmployeeRepository
	DepartmentRepo repository.DepartmentRepository
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// NewEmployeeService constructs the service.
func NewEmployeeService(deps EmployeeDependencies) *EmployeeService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmployeeService{
		employees:   deps.EmployeeRepo,
		departments: deps.DepartmentRepo,
		dispatcher:  deps.Dispatcher,
		logger:      logger,
	}
}

// ListEmployees returns all employees with their departments.
func (s *EmployeeService) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	list, err := s.employees.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if list == nil {
		list = []domain.Employee{}
	}
	return list, nil
}

// GetEmployee fetches an employee.
func (s *EmployeeService) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	emp, err := s.employees.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, employeeNotFound(id)
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return emp, nil
}

// CreateEmployee persists a new employee bound to the stored department named by the
// draft. The caller supplied department is only used for its id.
func (s *EmployeeService) CreateEmployee(ctx context.Context, draft domain.EmployeeDraft) (*domain.Employee, error) {
	dept, err := s.resolveDepartment(ctx, draft.DepartmentID)
	if err != nil {
		return nil, err
	}

	emp := &domain.Employee{
		Name:        draft.Name,
		Email:       draft.Email,
		JoiningDate: draft.JoiningDate,
		Department:  *dept,
	}
	if err := s.employees.Create(ctx, emp); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.NewEvent(events.EventEmployeeCreated, emp.ID, events.EmployeeCreatedPayload{
		DepartmentID:   dept.ID,
		DepartmentName: dept.Name,
	}))
	return emp, nil
}

// UpdateEmployee overwrites name, email and joining date with the draft values, empty or
// not, and rebinds the employee to the draft's department. Nothing is written unless both
// the employee and the department exist.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, id int64, draft domain.EmployeeDraft) (*domain.Employee, error) {
	existing, err := s.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	dept, err := s.resolveDepartment(ctx, draft.DepartmentID)
	if err != nil {
		return nil, err
	}

	previousDepartmentID := existing.Department.ID
	existing.Name = draft.Name
	existing.Email = draft.Email
	existing.JoiningDate = draft.JoiningDate
	existing.Department = *dept

	if err := s.employees.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, employeeNotFound(id)
		}
		return nil, apperrors.MapError(err)
	}

	payload := events.EmployeeUpdatedPayload{
		PreviousDepartmentID: previousDepartmentID,
		DepartmentID:         dept.ID,
		DepartmentName:       dept.Name,
	}
	if payload.DepartmentChanged() {
		s.logger.Debug("employee reassigned",
			zap.Int64("employee_id", id),
			zap.Int64("from_department_id", previousDepartmentID),
			zap.Int64("to_department_id", dept.ID))
	}
	s.publish(ctx, events.NewEvent(events.EventEmployeeUpdated, id, payload))
	return existing, nil
}

// DeleteEmployee removes an existing employee. The referenced department is untouched.
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id int64) error {
	existing, err := s.GetEmployee(ctx, id)
	if err != nil {
		return err
	}
	if err := s.employees.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}

	s.publish(ctx, events.NewEvent(events.EventEmployeeDeleted, id, events.EmployeeDeletedPayload{
		DepartmentID: existing.Department.ID,
	}))
	return nil
}

func (s *EmployeeService) resolveDepartment(ctx context.Context, id int64) (*domain.Department, error) {
	dept, err := s.departments.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewInvalidReference("department", map[string]any{"department_id": id})
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return dept, nil
}

func (s *EmployeeService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed",
			zap.String("event_type", string(event.Type)),
			zap.Int64("employee_id", event.EmployeeID),
			zap.Error(err))
	}
}

func employeeNotFound(id int64) error {
	return apperrors.NewNotFound("employee", map[string]any{"id": id})
}
