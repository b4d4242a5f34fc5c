package reconcile

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
)

// item is a minimal section entity used throughout the tests.
type item struct {
	ID    EntityID
	Title string
	Tags  []string
}

func (i item) EntityID() EntityID            { return i.ID }
func (i item) WithEntityID(id EntityID) item { i.ID = id; return i }
func (i item) Clone() item {
	i.Tags = slices.Clone(i.Tags)
	return i
}

func persisted(id, title string) item { return item{ID: PersistedID(id), Title: title} }

func local(title string) item { return item{ID: LocalID(), Title: title} }

func data(items ...item) *SectionData[item] {
	d := NewSectionData(items...)
	return &d
}

func ids(items []item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID.Value())
	}
	sort.Strings(out)
	return out
}

func values(list []EntityID) []string {
	out := make([]string, 0, len(list))
	for _, id := range list {
		out = append(out, id.Value())
	}
	sort.Strings(out)
	return out
}

// fakePerformer records the batches it receives.
type fakePerformer[I any] struct {
	mu      sync.Mutex
	batches [][]I
	err     error

	// gate blocks PerformBatch until closed when set.
	gate    chan struct{}
	started chan struct{}
	running bool
}

func (f *fakePerformer[I]) PerformBatch(ctx context.Context, items []I) error {
	f.mu.Lock()
	f.batches = append(f.batches, items)
	f.running = true
	f.mu.Unlock()
	if f.started != nil {
		close(f.started)
	}
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	f.running = false
	f.mu.Unlock()
	return f.err
}

func (f *fakePerformer[I]) IsPerforming() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running
}

func (f *fakePerformer[I]) calls() [][]I {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.batches
}

// remote is an in-memory stand-in for an upstream service.
type remote struct {
	mu         sync.Mutex
	next       int
	items      map[string]item
	order      []string
	fetches    int
	failCreate error
	failFetch  error
}

func newRemote(items ...item) *remote {
	r := &remote{items: map[string]item{}}
	for _, it := range items {
		r.items[it.ID.Value()] = it.Clone()
		r.order = append(r.order, it.ID.Value())
	}
	return r
}

func (r *remote) fetch(ctx context.Context, parentID string) ([]item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetches++
	if r.failFetch != nil {
		return nil, r.failFetch
	}
	out := make([]item, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id].Clone())
	}
	return out, nil
}

func (r *remote) create(ctx context.Context, parentID string, payload item) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return "", r.failCreate
	}
	r.next++
	id := fmt.Sprintf("srv-%d", r.next)
	payload.ID = PersistedID(id)
	r.items[id] = payload
	r.order = append(r.order, id)
	return id, nil
}

func (r *remote) update(ctx context.Context, id string, payload item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("no item %s", id)
	}
	payload.ID = PersistedID(id)
	r.items[id] = payload
	return nil
}

func (r *remote) remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("no item %s", id)
	}
	delete(r.items, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
	return nil
}

func identity(parentID string, it item) (item, error) { return it.Clone(), nil }

// newTestSection wires a full section against r.
func newTestSection(r *remote, opts ...func(*SectionConfig[item])) *Section[item] {
	parent := &Parent{}
	cache := NewQueryCache(0)
	loader := NewLoader("items", cache, r.fetch)
	saver := NewSaver(SaverConfig[item]{
		Section:    "items",
		Parent:     parent.Get,
		Create:     NewCreatePerformer("items", parent.Get, identity, r.create, nil),
		Update:     NewUpdatePerformer("items", parent.Get, identity, r.update, nil),
		Delete:     NewDeletePerformer("items", r.remove),
		Invalidate: func() { loader.Invalidate(parent.Get()) },
	})
	cfg := SectionConfig[item]{
		Name:   "items",
		Parent: parent,
		Loader: loader,
		Saver:  saver,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewSection(cfg)
}
