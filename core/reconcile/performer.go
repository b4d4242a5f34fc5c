package reconcile

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ParentFunc returns the id of the experience the section belongs to.
type ParentFunc func() string

// FollowUp is a secondary call addressed by the entity's remote id,
// such as setting the pax types of an option.
type FollowUp[T any] func(ctx context.Context, remoteID string, item T) error

// busy counts in-flight batches.
type busy struct {
	n atomic.Int32
}

func (b *busy) enter()       { b.n.Add(1) }
func (b *busy) leave()       { b.n.Add(-1) }
func (b *busy) active() bool { return b.n.Load() > 0 }

// PerformerOption configures a performer.
type PerformerOption func(*performerConfig)

type performerConfig struct {
	limit        int
	missingCheck func(error) bool
}

// WithConcurrency caps the number of entities processed at once. Zero or less means unbounded.
func WithConcurrency(n int) PerformerOption {
	return func(c *performerConfig) { c.limit = n }
}

// WithMissingCheck makes a delete that fails because the entity is already gone count as success.
func WithMissingCheck(fn func(error) bool) PerformerOption {
	return func(c *performerConfig) { c.missingCheck = fn }
}

func newPerformerConfig(opts []PerformerOption) performerConfig {
	var c performerConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

// fanOut runs fn for every item and returns the first error after all of them finished.
// Failures never cancel sibling work.
func fanOut[I any](limit int, items []I, fn func(I) error) error {
	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, item := range items {
		g.Go(func() error { return fn(item) })
	}
	return g.Wait()
}

// CreatePerformer sends new entities upstream.
type CreatePerformer[T Entity[T], P any] struct {
	name   string
	parent ParentFunc
	mapper func(parentID string, item T) (P, error)
	create func(ctx context.Context, parentID string, payload P) (remoteID string, err error)
	follow []FollowUp[T]
	cfg    performerConfig
	flag   busy
}

// NewCreatePerformer builds a create performer. create returns the id the remote service
// assigned; follow-ups run in order once that id is known.
func NewCreatePerformer[T Entity[T], P any](
	name string,
	parent ParentFunc,
	mapper func(parentID string, item T) (P, error),
	create func(ctx context.Context, parentID string, payload P) (string, error),
	follow []FollowUp[T],
	opts ...PerformerOption,
) *CreatePerformer[T, P] {
	return &CreatePerformer[T, P]{
		name:   name,
		parent: parent,
		mapper: mapper,
		create: create,
		follow: follow,
		cfg:    newPerformerConfig(opts),
	}
}

// IsPerforming reports whether a batch is running.
func (p *CreatePerformer[T, P]) IsPerforming() bool { return p.flag.active() }

// PerformBatch creates every item concurrently. Items created before a failure stay created.
func (p *CreatePerformer[T, P]) PerformBatch(ctx context.Context, items []T) error {
	if len(items) == 0 {
		return nil
	}
	parentID := p.parent()
	if parentID == "" {
		return fmt.Errorf("%s create: %w", p.name, ErrMissingParent)
	}

	p.flag.enter()
	defer p.flag.leave()

	return fanOut(p.cfg.limit, items, func(item T) error {
		remoteID, err := p.createOne(ctx, parentID, item)
		record(ctx, OpCreate, item.EntityID(), remoteID, err)
		return err
	})
}

func (p *CreatePerformer[T, P]) createOne(ctx context.Context, parentID string, item T) (string, error) {
	payload, err := p.mapper(parentID, item)
	if err != nil {
		return "", fmt.Errorf("%s create %s: map payload: %w", p.name, item.EntityID(), err)
	}
	remoteID, err := p.create(ctx, parentID, payload)
	if err != nil {
		return "", fmt.Errorf("%s create %s: %w", p.name, item.EntityID(), err)
	}
	for _, follow := range p.follow {
		if err := follow(ctx, remoteID, item); err != nil {
			return remoteID, fmt.Errorf("%s create %s (remote %s): %w", p.name, item.EntityID(), remoteID, err)
		}
	}
	return remoteID, nil
}

// UpdatePerformer sends edited entities upstream.
type UpdatePerformer[T Entity[T], P any] struct {
	name       string
	parent     ParentFunc
	mapper     func(parentID string, item T) (P, error)
	update     func(ctx context.Context, remoteID string, payload P) error
	dependents []FollowUp[T]
	cfg        performerConfig
	flag       busy
}

// NewUpdatePerformer builds an update performer. The primary update and every dependent call
// of one entity run concurrently.
func NewUpdatePerformer[T Entity[T], P any](
	name string,
	parent ParentFunc,
	mapper func(parentID string, item T) (P, error),
	update func(ctx context.Context, remoteID string, payload P) error,
	dependents []FollowUp[T],
	opts ...PerformerOption,
) *UpdatePerformer[T, P] {
	return &UpdatePerformer[T, P]{
		name:       name,
		parent:     parent,
		mapper:     mapper,
		update:     update,
		dependents: dependents,
		cfg:        newPerformerConfig(opts),
	}
}

// IsPerforming reports whether a batch is running.
func (p *UpdatePerformer[T, P]) IsPerforming() bool { return p.flag.active() }

// PerformBatch updates every item concurrently.
func (p *UpdatePerformer[T, P]) PerformBatch(ctx context.Context, items []T) error {
	if len(items) == 0 {
		return nil
	}
	parentID := p.parent()
	if parentID == "" {
		return fmt.Errorf("%s update: %w", p.name, ErrMissingParent)
	}

	p.flag.enter()
	defer p.flag.leave()

	return fanOut(p.cfg.limit, items, func(item T) error {
		err := p.updateOne(ctx, parentID, item)
		record(ctx, OpUpdate, item.EntityID(), "", err)
		return err
	})
}

func (p *UpdatePerformer[T, P]) updateOne(ctx context.Context, parentID string, item T) error {
	id := item.EntityID()
	if id.IsLocal() {
		return fmt.Errorf("%s update %s: %w", p.name, id, ErrLocalID)
	}
	payload, err := p.mapper(parentID, item)
	if err != nil {
		return fmt.Errorf("%s update %s: map payload: %w", p.name, id, err)
	}

	calls := make([]func() error, 0, len(p.dependents)+1)
	calls = append(calls, func() error { return p.update(ctx, id.Value(), payload) })
	for _, dep := range p.dependents {
		calls = append(calls, func() error { return dep(ctx, id.Value(), item) })
	}
	err = fanOut(0, calls, func(call func() error) error { return call() })
	if err != nil {
		return fmt.Errorf("%s update %s: %w", p.name, id, err)
	}
	return nil
}

// DeletePerformer removes entities upstream by id.
type DeletePerformer struct {
	name   string
	remove func(ctx context.Context, remoteID string) error
	cfg    performerConfig
	flag   busy
}

// NewDeletePerformer builds a delete performer.
func NewDeletePerformer(name string, remove func(ctx context.Context, remoteID string) error, opts ...PerformerOption) *DeletePerformer {
	return &DeletePerformer{
		name:   name,
		remove: remove,
		cfg:    newPerformerConfig(opts),
	}
}

// IsPerforming reports whether a batch is running.
func (p *DeletePerformer) IsPerforming() bool { return p.flag.active() }

// PerformBatch deletes every id concurrently.
func (p *DeletePerformer) PerformBatch(ctx context.Context, ids []EntityID) error {
	if len(ids) == 0 {
		return nil
	}

	p.flag.enter()
	defer p.flag.leave()

	return fanOut(p.cfg.limit, ids, func(id EntityID) error {
		err := p.deleteOne(ctx, id)
		record(ctx, OpDelete, id, "", err)
		return err
	})
}

func (p *DeletePerformer) deleteOne(ctx context.Context, id EntityID) error {
	if id.IsLocal() {
		return fmt.Errorf("%s delete %s: %w", p.name, id, ErrLocalID)
	}
	err := p.remove(ctx, id.Value())
	if err != nil && p.cfg.missingCheck != nil && p.cfg.missingCheck(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s delete %s: %w", p.name, id, err)
	}
	return nil
}
