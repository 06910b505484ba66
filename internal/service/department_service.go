package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/orgkit/employee-service/internal/cache"
	"github.com/orgkit/employee-service/internal/domain"
	"github.com/orgkit/employee-service/internal/repository"
	apperrors "github.com/orgkit/employee-service/pkg/util/errorutil"
)

// DepartmentService owns department bootstrap, creation and listing.
type DepartmentService struct {
	departments repository.DepartmentRepository
	cache       cache.DepartmentCache
	logger      *zap.Logger
}

// DepartmentDependencies encapsulates collaborators for department management. Cache is
// optional.
type DepartmentDependencies struct {
	DepartmentRepo repository.DepartmentRepository
	Cache          cache.DepartmentCache
	Logger         *zap.Logger
}

// NewDepartmentService constructs the service.
func NewDepartmentService(deps DepartmentDependencies) *DepartmentService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DepartmentService{
		departments: deps.DepartmentRepo,
		cache:       deps.Cache,
		logger:      logger,
	}
}

// SeedDefaults inserts the default departments when the store is empty and is a no-op
// otherwise. It is meant to run once before serving traffic; concurrent seeders against
// one empty store may both insert.
func (s *DepartmentService) SeedDefaults(ctx context.Context) error {
	count, err := s.departments.Count(ctx)
	if err != nil {
		return apperrors.MapError(err)
	}
	if count > 0 {
		s.logger.Debug("departments present; skipping seed", zap.Int64("count", count))
		return nil
	}

	for _, name := range domain.DefaultDepartmentNames {
		dept := &domain.Department{Name: name}
		if err := s.departments.Create(ctx, dept); err != nil {
			return apperrors.MapError(err)
		}
	}
	s.invalidateCache(ctx)
	s.logger.Info("seeded default departments", zap.Strings("names", domain.DefaultDepartmentNames))
	return nil
}

// ListDepartments returns every department in store order. The result is empty, not an
// error, when none exist.
func (s *DepartmentService) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn("department cache read failed", zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	// The generation is read before the store so a create that lands mid-read makes the
	// write below a no-op instead of caching the older list.
	generation, canCache := s.cacheGeneration(ctx)

	depts, err := s.departments.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if depts == nil {
		depts = []domain.Department{}
	}

	if canCache {
		err := s.cache.Set(ctx, generation, depts)
		switch {
		case errors.Is(err, cache.ErrStale):
			s.logger.Debug("department list changed during read; not caching")
		case err != nil:
			s.logger.Warn("department cache write failed", zap.Error(err))
		}
	}
	return depts, nil
}

func (s *DepartmentService) cacheGeneration(ctx context.Context) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	generation, err := s.cache.Generation(ctx)
	if err != nil {
		s.logger.Warn("department cache generation read failed", zap.Error(err))
		return 0, false
	}
	return generation, true
}

// GetDepartment fetches a department.
func (s *DepartmentService) GetDepartment(ctx context.Context, id int64) (*domain.Department, error) {
	dept, err := s.departments.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewNotFound("department", map[string]any{"id": id})
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return dept, nil
}

// CreateDepartment adds a department with a non-blank name.
func (s *DepartmentService) CreateDepartment(ctx context.Context, name string) (*domain.Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	dept := &domain.Department{Name: name}
	if err := s.departments.Create(ctx, dept); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.invalidateCache(ctx)
	return dept, nil
}

func (s *DepartmentService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("department cache invalidation failed", zap.Error(err))
	}
}
