package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgkit/employee-service/internal/cache"
	"github.com/orgkit/employee-service/internal/domain"
	"github.com/orgkit/employee-service/internal/repository"
	apperrors "github.com/orgkit/employee-service/pkg/util/errorutil"
)

func TestSeedDefaultsOnEmptyStore(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryDepartmentRepository()
	svc := NewDepartmentService(DepartmentDependencies{DepartmentRepo: repo})

	require.NoError(t, svc.SeedDefaults(ctx))

	depts, err := svc.ListDepartments(ctx)
	require.NoError(t, err)
	require.Len(t, depts, 3)
	assert.Equal(t, "HR", depts[0].Name)
	assert.Equal(t, "Finance", depts[1].Name)
	assert.Equal(t, "Engineering", depts[2].Name)
}

func TestSeedDefaultsIsNoOpOnNonEmptyStore(t *testing.T) {
	ctx := context.Background()
	repo := &failingDepartments{DepartmentRepository: repository.NewMemoryDepartmentRepository()}
	require.NoError(t, repo.DepartmentRepository.Create(ctx, &domain.Department{Name: "Legal"}))
	svc := NewDepartmentService(DepartmentDependencies{DepartmentRepo: repo})

	require.NoError(t, svc.SeedDefaults(ctx))
	require.NoError(t, svc.SeedDefaults(ctx))

	assert.Zero(t, repo.creates)
	depts, err := svc.ListDepartments(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Department{{ID: 1, Name: "Legal"}}, depts)
}

func TestSeedDefaultsRepeatedRunsSeedOnce(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryDepartmentRepository()
	svc := NewDepartmentService(DepartmentDependencies{DepartmentRepo: repo})

	require.NoError(t, svc.SeedDefaults(ctx))
	require.NoError(t, svc.SeedDefaults(ctx))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestSeedDefaultsPropagatesStoreFailure(t *testing.T) {
	boom := errors.New("connection refused")

	for name, repo := range map[string]*failingDepartments{
		"count":  {DepartmentRepository: repository.NewMemoryDepartmentRepository(), countErr: boom},
		"create": {DepartmentRepository: repository.NewMemoryDepartmentRepository(), createErr: boom},
	} {
		t.Run(name, func(t *testing.T) {
			svc := NewDepartmentService(DepartmentDependencies{DepartmentRepo: repo})

			err := svc.SeedDefaults(context.Background())
			assert.True(t, apperrors.IsCode(err, apperrors.CodeInternal))
			assert.ErrorIs(t, err, boom)
		})
	}
}

func TestListDepartmentsEmpty(t *testing.T) {
	svc := NewDepartmentService(DepartmentDependencies{DepartmentRepo: repository.NewMemoryDepartmentRepository()})

	depts, err := svc.ListDepartments(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, depts)
	assert.Empty(t, depts)
}

func TestCreateAndGetDepartment(t *testing.T) {
	ctx := context.Background()
	svc := NewDepartmentService(DepartmentDependencies{DepartmentRepo: repository.NewMemoryDepartmentRepository()})

	_, err := svc.CreateDepartment(ctx, "   ")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))

	dept, err := svc.CreateDepartment(ctx, " Engineering ")
	require.NoError(t, err)
	assert.Equal(t, domain.Department{ID: 1, Name: "Engineering"}, *dept)

	got, err := svc.GetDepartment(ctx, dept.ID)
	require.NoError(t, err)
	assert.Equal(t, *dept, *got)

	_, err = svc.GetDepartment(ctx, 999)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestListDepartmentsStoreFailure(t *testing.T) {
	boom := errors.New("timeout")
	repo := &failingDepartments{DepartmentRepository: repository.NewMemoryDepartmentRepository(), listErr: boom}
	svc := NewDepartmentService(DepartmentDependencies{DepartmentRepo: repo})

	_, err := svc.ListDepartments(context.Background())
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInternal))
	assert.ErrorIs(t, err, boom)
}

func newRedisCache(t *testing.T) (cache.DepartmentCache, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewRedisDepartmentCache(client, time.Minute), s
}

func TestListDepartmentsReadsThroughCache(t *testing.T) {
	ctx := context.Background()
	c, _ := newRedisCache(t)
	repo := &failingDepartments{DepartmentRepository: repository.NewMemoryDepartmentRepository()}
	svc := NewDepartmentService(DepartmentDependencies{DepartmentRepo: repo, Cache: c})
	require.NoError(t, svc.SeedDefaults(ctx))

	first, err := svc.ListDepartments(ctx)
	require.NoError(t, err)
	require.Len(t, first, 3)

	repo.listErr = errors.New("store should not be consulted")
	second, err := svc.ListDepartments(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	repo.listErr = nil
	_, err = svc.CreateDepartment(ctx, "Legal")
	require.NoError(t, err)

	third, err := svc.ListDepartments(ctx)
	require.NoError(t, err)
	require.Len(t, third, 4)
	assert.Equal(t, "Legal", third[3].Name)
}

func TestListDepartmentsFallsBackWhenCacheDown(t *testing.T) {
	ctx := context.Background()
	s, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: s.Addr(), MaxRetries: -1})
	defer client.Close()
	s.Close()

	svc := NewDepartmentService(DepartmentDependencies{
		DepartmentRepo: repository.NewMemoryDepartmentRepository(),
		Cache:          cache.NewRedisDepartmentCache(client, time.Minute),
	})
	require.NoError(t, svc.SeedDefaults(ctx))

	depts, err := svc.ListDepartments(ctx)
	require.NoError(t, err)
	assert.Len(t, depts, 3)
}

func TestListDepartmentsDoesNotCacheListReadBeforeCreate(t *testing.T) {
	ctx := context.Background()
	c, s := newRedisCache(t)
	repo := &pausingDepartments{
		DepartmentRepository: repository.NewMemoryDepartmentRepository(),
		listed:               make(chan struct{}),
		release:              make(chan struct{}),
	}
	svc := NewDepartmentService(DepartmentDependencies{DepartmentRepo: repo, Cache: c})

	type result struct {
		depts []domain.Department
		err   error
	}
	done := make(chan result, 1)
	go func() {
		depts, err := svc.ListDepartments(ctx)
		done <- result{depts: depts, err: err}
	}()

	<-repo.listed
	_, err := svc.CreateDepartment(ctx, "Legal")
	require.NoError(t, err)
	close(repo.release)

	stale := <-done
	require.NoError(t, stale.err)
	assert.Empty(t, stale.depts)
	assert.False(t, s.Exists("employee-service:departments:all"))

	fresh, err := svc.ListDepartments(ctx)
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.Equal(t, "Legal", fresh[0].Name)

	cached, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, fresh, cached)
}
