package repository

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/orgkit/employee-service/internal/domain"
)

// memoryDepartmentRepository keeps departments in process memory. It backs the service
// when no database is configured.
type memoryDepartmentRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]domain.Department
}

// NewMemoryDepartmentRepository returns an empty in-memory department store.
func NewMemoryDepartmentRepository() DepartmentRepository {
	return &memoryDepartmentRepository{rows: make(map[int64]domain.Department)}
}

func (r *memoryDepartmentRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.rows)), nil
}

func (r *memoryDepartmentRepository) Create(_ context.Context, dept *domain.Department) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	dept.ID = r.nextID
	r.rows[dept.ID] = *dept
	return nil
}

func (r *memoryDepartmentRepository) GetByID(_ context.Context, id int64) (*domain.Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	dept, ok := r.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &dept, nil
}

func (r *memoryDepartmentRepository) List(_ context.Context) ([]domain.Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.Department, 0, len(r.rows))
	for _, dept := range r.rows {
		result = append(result, dept)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *memoryDepartmentRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

// memoryEmployeeRepository keeps only the department id with each employee and resolves
// the department against the department store on read, like the postgres LEFT JOIN. A
// deleted department reads back with its id and an empty name.
type memoryEmployeeRepository struct {
	mu          sync.RWMutex
	nextID      int64
	rows        map[int64]domain.Employee
	departments DepartmentRepository
}

// NewMemoryEmployeeRepository returns an empty in-memory employee store that resolves
// departments from the given store.
func NewMemoryEmployeeRepository(departments DepartmentRepository) EmployeeRepository {
	return &memoryEmployeeRepository{
		rows:        make(map[int64]domain.Employee),
		departments: departments,
	}
}

func (r *memoryEmployeeRepository) Create(_ context.Context, emp *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	emp.ID = r.nextID
	r.rows[emp.ID] = storedEmployee(*emp)
	return nil
}

func (r *memoryEmployeeRepository) Update(_ context.Context, emp *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[emp.ID]; !ok {
		return ErrNotFound
	}
	r.rows[emp.ID] = storedEmployee(*emp)
	return nil
}

func (r *memoryEmployeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	r.mu.RLock()
	emp, ok := r.rows[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	emp = cloneEmployee(emp)
	if err := r.resolveDepartment(ctx, &emp); err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *memoryEmployeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	r.mu.RLock()
	result := make([]domain.Employee, 0, len(r.rows))
	for _, emp := range r.rows {
		result = append(result, cloneEmployee(emp))
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	for i := range result {
		if err := r.resolveDepartment(ctx, &result[i]); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *memoryEmployeeRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

func (r *memoryEmployeeRepository) resolveDepartment(ctx context.Context, emp *domain.Employee) error {
	dept, err := r.departments.GetByID(ctx, emp.Department.ID)
	switch {
	case errors.Is(err, ErrNotFound):
		emp.Department.Name = ""
	case err != nil:
		return err
	default:
		emp.Department = *dept
	}
	return nil
}

func storedEmployee(emp domain.Employee) domain.Employee {
	emp = cloneEmployee(emp)
	emp.Department = domain.Department{ID: emp.Department.ID}
	return emp
}

func cloneEmployee(emp domain.Employee) domain.Employee {
	if emp.JoiningDate != nil {
		date := *emp.JoiningDate
		emp.JoiningDate = &date
	}
	return emp
}
