package service

import (
	"context"

	"github.com/orgkit/employee-service/internal/domain"
	"github.com/orgkit/employee-service/internal/repository"
)

// failingDepartments wraps a department repository and fails the selected calls.
type failingDepartments struct {
	repository.DepartmentRepository
	countErr  error
	createErr error
	getErr    error
	listErr   error
	creates   int
}

func (f *failingDepartments) Count(ctx context.Context) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.DepartmentRepository.Count(ctx)
}

func (f *failingDepartments) Create(ctx context.Context, dept *domain.Department) error {
	f.creates++
	if f.createErr != nil {
		return f.createErr
	}
	return f.DepartmentRepository.Create(ctx, dept)
}

func (f *failingDepartments) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.DepartmentRepository.GetByID(ctx, id)
}

func (f *failingDepartments) List(ctx context.Context) ([]domain.Department, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.DepartmentRepository.List(ctx)
}

// pausingDepartments blocks the first List after it has read from the store, signalling
// listed and waiting for release, so a test can change the store mid-read.
type pausingDepartments struct {
	repository.DepartmentRepository
	listed  chan struct{}
	release chan struct{}
	paused  bool
}

func (p *pausingDepartments) List(ctx context.Context) ([]domain.Department, error) {
	depts, err := p.DepartmentRepository.List(ctx)
	if !p.paused {
		p.paused = true
		close(p.listed)
		<-p.release
	}
	return depts, err
}

// recordingEmployees wraps an employee repository, counts writes and fails selected calls.
type recordingEmployees struct {
	repository.EmployeeRepository
	writes    int
	createErr error
	updateErr error
	listErr   error
	deleteErr error
}

func (r *recordingEmployees) Create(ctx context.Context, emp *domain.Employee) error {
	r.writes++
	if r.createErr != nil {
		return r.createErr
	}
	return r.EmployeeRepository.Create(ctx, emp)
}

func (r *recordingEmployees) Update(ctx context.Context, emp *domain.Employee) error {
	r.writes++
	if r.updateErr != nil {
		return r.updateErr
	}
	return r.EmployeeRepository.Update(ctx, emp)
}

func (r *recordingEmployees) List(ctx context.Context) ([]domain.Employee, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.EmployeeRepository.List(ctx)
}

func (r *recordingEmployees) Delete(ctx context.Context, id int64) error {
	r.writes++
	if r.deleteErr != nil {
		return r.deleteErr
	}
	return r.EmployeeRepository.Delete(ctx, id)
}
