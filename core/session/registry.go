package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

// CreateFunc builds the session of one experience.
type CreateFunc[V any] func(ctx context.Context, experienceID string) (V, error)

// Registry holds one session per experience and builds missing ones on demand.
// Sessions expire when untouched for the configured TTL.
type Registry[V any] struct {
	cache  *expirable.LRU[string, V]
	group  singleflight.Group
	create CreateFunc[V]
}

// New creates a registry. onEvict, if not nil, runs for every expired or evicted session.
func New[V any](cfg Config, create CreateFunc[V], onEvict func(experienceID string, v V)) *Registry[V] {
	ttl := time.Duration(cfg.TTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	var evict expirable.EvictCallback[string, V]
	if onEvict != nil {
		evict = func(key string, value V) { onEvict(key, value) }
	}
	return &Registry[V]{
		cache:  expirable.NewLRU[string, V](max(cfg.Size, 0), evict, ttl),
		create: create,
	}
}

// Get returns the session of experienceID, creating it when missing.
// Concurrent callers for the same experience share one creation. A failed creation is not kept.
// The id is copied before it is kept, so it may point into a reused request buffer.
func (r *Registry[V]) Get(ctx context.Context, experienceID string) (V, error) {
	if experienceID == "" {
		var zero V
		return zero, fmt.Errorf("session: empty experience id")
	}
	if v, ok := r.cache.Get(experienceID); ok {
		return v, nil
	}
	experienceID = strings.Clone(experienceID)

	res, err, _ := r.group.Do(experienceID, func() (any, error) {
		if v, ok := r.cache.Get(experienceID); ok {
			return v, nil
		}
		// The session outlives the request that triggered it.
		v, err := r.create(context.WithoutCancel(ctx), experienceID)
		if err != nil {
			return nil, err
		}
		r.cache.Add(experienceID, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(V), nil
}

// Peek returns the session of experienceID without creating or refreshing it.
func (r *Registry[V]) Peek(experienceID string) (V, bool) {
	return r.cache.Peek(experienceID)
}

// Drop forgets the session of experienceID.
func (r *Registry[V]) Drop(experienceID string) {
	r.cache.Remove(experienceID)
}

// Len returns the number of live sessions.
func (r *Registry[V]) Len() int {
	return r.cache.Len()
}
