package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgkit/employee-service/internal/domain"
)

func newTestCache(t *testing.T, ttl time.Duration) (DepartmentCache, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisDepartmentCache(client, ttl), s
}

func TestDepartmentCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	depts := []domain.Department{{ID: 1, Name: "HR"}, {ID: 2, Name: "Finance"}}
	require.NoError(t, c.Set(ctx, 0, depts))

	got, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, depts, got)

	require.NoError(t, c.Invalidate(ctx))
	_, ok, err = c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDepartmentCacheEmptyListIsAHit(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 0, nil))
	got, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestDepartmentCacheExpires(t *testing.T) {
	c, s := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 0, []domain.Department{{ID: 1, Name: "HR"}}))
	s.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDepartmentCacheRejectsStaleGeneration(t *testing.T) {
	c, s := newTestCache(t, time.Minute)
	ctx := context.Background()

	before, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Zero(t, before)

	require.NoError(t, c.Invalidate(ctx))
	after, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, before+1, after)

	err = c.Set(ctx, before, []domain.Department{{ID: 1, Name: "HR"}})
	assert.ErrorIs(t, err, ErrStale)
	assert.False(t, s.Exists(departmentsKey))

	require.NoError(t, c.Set(ctx, after, []domain.Department{{ID: 1, Name: "HR"}}))
	got, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []domain.Department{{ID: 1, Name: "HR"}}, got)
}

func TestDepartmentCacheInvalidateDropsList(t *testing.T) {
	c, s := newTestCache(t, 0)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 0, []domain.Department{{ID: 1, Name: "HR"}}))
	require.NoError(t, c.Invalidate(ctx))
	require.NoError(t, c.Invalidate(ctx))

	assert.False(t, s.Exists(departmentsKey))
	gen, err := s.Get(generationKey)
	require.NoError(t, err)
	assert.Equal(t, "2", gen)
}

func TestDepartmentCacheCorruptValue(t *testing.T) {
	c, s := newTestCache(t, 0)
	require.NoError(t, s.Set(departmentsKey, "{not json"))

	_, ok, err := c.Get(context.Background())
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestDepartmentCacheServerDown(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: s.Addr(), MaxRetries: -1})
	defer client.Close()
	c := NewRedisDepartmentCache(client, 0)
	s.Close()

	_, _, err = c.Get(context.Background())
	assert.Error(t, err)
}
