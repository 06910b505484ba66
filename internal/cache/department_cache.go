package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/orgkit/employee-service/internal/domain"
)

const (
	departmentsKey = "employee-service:departments:all"
	generationKey  = "employee-service:departments:gen"
)

// ErrStale is returned by Set when the department list was invalidated after the
// generation the caller read.
var ErrStale = errors.New("department cache generation changed")

// DepartmentCache holds the full department list between writes. Readers take the
// Generation before loading from the store and pass it to Set, so a list loaded before an
// Invalidate is never stored after it.
type DepartmentCache interface {
	Get(ctx context.Context) ([]domain.Department, bool, error)
	Generation(ctx context.Context) (int64, error)
	Set(ctx context.Context, generation int64, departments []domain.Department) error
	Invalidate(ctx context.Context) error
}

type redisDepartmentCache struct {
	client *redis.Client
	ttl    time.Duration
}

type cachedDepartment struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NewRedisDepartmentCache stores the department list as JSON under a single key. A zero
// ttl keeps the entry until invalidated.
func NewRedisDepartmentCache(client *redis.Client, ttl time.Duration) DepartmentCache {
	return &redisDepartmentCache{client: client, ttl: ttl}
}

func (c *redisDepartmentCache) Get(ctx context.Context) ([]domain.Department, bool, error) {
	raw, err := c.client.Get(ctx, departmentsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var items []cachedDepartment
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, err
	}
	result := make([]domain.Department, 0, len(items))
	for _, item := range items {
		result = append(result, domain.Department{ID: item.ID, Name: item.Name})
	}
	return result, true, nil
}

func (c *redisDepartmentCache) Generation(ctx context.Context) (int64, error) {
	return readGeneration(ctx, c.client)
}

// Set writes the list only while the generation still equals the one read before the
// store load. The generation key is watched, so an Invalidate racing the write aborts it.
func (c *redisDepartmentCache) Set(ctx context.Context, generation int64, departments []domain.Department) error {
	items := make([]cachedDepartment, 0, len(departments))
	for _, dept := range departments {
		items = append(items, cachedDepartment{ID: dept.ID, Name: dept.Name})
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx)
		if err != nil {
			return err
		}
		if current != generation {
			return ErrStale
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, departmentsKey, raw, c.ttl)
			return nil
		})
		return err
	}, generationKey)
	if errors.Is(err, redis.TxFailedErr) {
		return ErrStale
	}
	return err
}

// Invalidate bumps the generation and drops the cached list in one transaction.
func (c *redisDepartmentCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey)
		pipe.Del(ctx, departmentsKey)
		return nil
	})
	return err
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, cmd getter) (int64, error) {
	generation, err := cmd.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return generation, err
}
