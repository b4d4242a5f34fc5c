package reconcile

import (
	"context"
	"fmt"
	"sync/atomic"
)

// FetchFunc fetches every entity of a section from the remote service and maps it to the
// section's domain shape.
type FetchFunc[T Entity[T]] func(ctx context.Context, parentID string) ([]T, error)

// Loader produces last-saved snapshots for one section through a shared QueryCache.
type Loader[T Entity[T]] struct {
	section string
	cache   *QueryCache
	fetch   FetchFunc[T]
	loading atomic.Int32
}

// NewLoader creates a loader for section.
func NewLoader[T Entity[T]](section string, cache *QueryCache, fetch FetchFunc[T]) *Loader[T] {
	if cache == nil {
		cache = NewQueryCache(0)
	}
	return &Loader[T]{section: section, cache: cache, fetch: fetch}
}

// Key returns the cache key for parentID.
func (l *Loader[T]) Key(parentID string) string {
	return l.section + "|" + parentID
}

// IsLoading is true while a fetch is running.
func (l *Loader[T]) IsLoading() bool { return l.loading.Load() > 0 }

// Load returns the last-saved snapshot for parentID. The returned value is shared with the
// cache and must be treated as read-only.
func (l *Loader[T]) Load(ctx context.Context, parentID string) (*SectionData[T], error) {
	if parentID == "" {
		return nil, fmt.Errorf("%s load: %w", l.section, ErrMissingParent)
	}

	l.loading.Add(1)
	defer l.loading.Add(-1)

	v, err := l.cache.GetOrLoad(ctx, l.Key(parentID), func(ctx context.Context) (any, error) {
		items, err := l.fetch(ctx, parentID)
		if err != nil {
			return nil, err
		}
		data := NewSectionData(items...)
		if err := data.Validate(); err != nil {
			return nil, err
		}
		for _, item := range data.Items {
			if item.EntityID().IsLocal() {
				return nil, fmt.Errorf("%w: %s in remote data", ErrLocalID, item.EntityID())
			}
		}
		return &data, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s load: %w", l.section, err)
	}

	data, ok := v.(*SectionData[T])
	if !ok {
		return nil, fmt.Errorf("%s load: unexpected cached value %T", l.section, v)
	}
	return data, nil
}

// Invalidate marks the cached snapshot of parentID as stale.
func (l *Loader[T]) Invalidate(parentID string) {
	l.cache.Invalidate(l.Key(parentID))
}
