package reconcile

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Parent holds the experience id a section is bound to. Performers read it at batch time.
type Parent struct {
	id atomic.Pointer[string]
}

// Get returns the current experience id, or "".
func (p *Parent) Get() string {
	if v := p.id.Load(); v != nil {
		return *v
	}
	return ""
}

// Set changes the experience id. The id is copied, so callers may pass
// strings backed by reused request buffers.
func (p *Parent) Set(id string) {
	id = strings.Clone(id)
	p.id.Store(&id)
}

// Notification is the user-facing outcome of a save.
type Notification struct {
	Section      string
	ExperienceID string
	Success      bool
	Err          error
	Report       *SaveReport
}

// Notifier displays save outcomes to the operator.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// SnapshotArchiver keeps a copy of every snapshot confirmed by a save.
type SnapshotArchiver interface {
	Archive(ctx context.Context, section, experienceID string, snapshot any) error
}

// SectionConfig bundles the collaborators of a Section.
type SectionConfig[T Entity[T]] struct {
	Name   string
	Parent *Parent
	Loader *Loader[T]
	Saver  *Saver[T]

	// NewID generates ids for added and duplicated entities. Nil means LocalID.
	NewID func() EntityID
	// CanSave gates Save. Nil accepts every working copy.
	CanSave func(data SectionData[T]) (bool, error)

	Notifier Notifier
	Archiver SnapshotArchiver
	Logger   *zap.Logger
}

// SectionView is a consistent read of a section's state.
type SectionView[T Entity[T]] struct {
	Name         string          `json:"name"`
	ExperienceID string          `json:"experience_id"`
	State        State           `json:"state"`
	IsLoading    bool            `json:"is_loading"`
	IsSaving     bool            `json:"is_saving"`
	WorkingCopy  SectionData[T]  `json:"working_copy"`
	LastSaved    *SectionData[T] `json:"last_saved"`
}

// Section owns the working copy and last-saved snapshot of one section of an experience.
//
// It moves Idle -> Loading -> Settled. The working copy is resynchronised from the snapshot
// only on the transition into Settled, that is once no fetch is running any more.
// All access to the working copy goes through the section's mutex.
type Section[T Entity[T]] struct {
	cfg SectionConfig[T]

	mu         sync.Mutex
	state      State
	inflight   int
	generation uint64
	started    uint64
	applied    uint64
	lastSaved  *SectionData[T]
	working    SectionData[T]

	saving atomic.Bool
}

// NewSection creates an idle section with an empty working copy.
func NewSection[T Entity[T]](cfg SectionConfig[T]) *Section[T] {
	if cfg.Parent == nil {
		cfg.Parent = &Parent{}
	}
	if cfg.NewID == nil {
		cfg.NewID = LocalID
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Section[T]{
		cfg:     cfg,
		working: SectionData[T]{Items: []T{}},
	}
}

// Name returns the section name.
func (s *Section[T]) Name() string { return s.cfg.Name }

// ExperienceID returns the experience the section is bound to.
func (s *Section[T]) ExperienceID() string { return s.cfg.Parent.Get() }

// State returns the current state.
func (s *Section[T]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsLoading is true while a snapshot fetch is running.
func (s *Section[T]) IsLoading() bool { return s.State() == StateLoading }

// IsSaving is true while any performer of the section runs.
func (s *Section[T]) IsSaving() bool { return s.cfg.Saver.IsSaving() }

// SetExperienceID binds the section to another experience and reloads it.
// Loads started for the previous experience are discarded when they complete.
func (s *Section[T]) SetExperienceID(ctx context.Context, id string) error {
	s.mu.Lock()
	if id == s.cfg.Parent.Get() && s.state != StateIdle {
		s.mu.Unlock()
		return nil
	}
	s.generation++
	s.cfg.Parent.Set(id)
	s.lastSaved = nil
	s.replaceWorking(nil)
	s.state = StateIdle
	s.inflight = 0
	s.mu.Unlock()

	return s.Refresh(ctx)
}

// Refresh fetches the last-saved snapshot and, once no other fetch is running,
// resynchronises the working copy from it. When refreshes overlap, the snapshot of the most
// recently started one wins, whatever order they complete in.
func (s *Section[T]) Refresh(ctx context.Context) error {
	s.mu.Lock()
	parentID := s.cfg.Parent.Get()
	if parentID == "" {
		s.mu.Unlock()
		return fmt.Errorf("%s refresh: %w", s.cfg.Name, ErrMissingParent)
	}
	gen := s.generation
	s.started++
	seq := s.started
	s.inflight++
	s.state = StateLoading
	s.mu.Unlock()

	data, err := s.cfg.Loader.Load(ctx, parentID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		s.cfg.Logger.Debug("Discarding stale section load",
			zap.String("section", s.cfg.Name),
			zap.String("experience_id", parentID),
		)
		return nil
	}
	s.inflight--
	if err != nil {
		s.settle()
		return err
	}
	if seq > s.applied {
		s.lastSaved = data
		s.applied = seq
	} else {
		s.cfg.Logger.Debug("Ignoring snapshot older than the applied one",
			zap.String("section", s.cfg.Name),
			zap.String("experience_id", parentID),
		)
	}
	if s.inflight == 0 {
		s.resync()
	}
	s.settle()
	return nil
}

// Reload drops the cached snapshot and refreshes from the remote service.
func (s *Section[T]) Reload(ctx context.Context) error {
	if parentID := s.cfg.Parent.Get(); parentID != "" {
		s.cfg.Loader.Invalidate(parentID)
	}
	return s.Refresh(ctx)
}

// settle leaves Loading once every fetch finished.
func (s *Section[T]) settle() {
	if s.inflight > 0 {
		return
	}
	if s.lastSaved == nil {
		s.state = StateIdle
		return
	}
	s.state = StateSettled
}

// resync copies the snapshot into the existing working copy slice.
func (s *Section[T]) resync() {
	if s.lastSaved == nil {
		return
	}
	s.replaceWorking(s.lastSaved.Clone().Items)
}

func (s *Section[T]) replaceWorking(items []T) {
	old := len(s.working.Items)
	s.working.Items = append(s.working.Items[:0], items...)
	if n := len(s.working.Items); n < old {
		clear(s.working.Items[n:old])
	}
}

// WorkingCopy returns a deep copy of the working copy.
func (s *Section[T]) WorkingCopy() SectionData[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.working.Clone()
}

// LastSaved returns a deep copy of the last-saved snapshot, or nil before the first load.
func (s *Section[T]) LastSaved() *SectionData[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cloneLastSaved()
}

func (s *Section[T]) cloneLastSaved() *SectionData[T] {
	if s.lastSaved == nil {
		return nil
	}
	data := s.lastSaved.Clone()
	return &data
}

// View returns the whole section state at once.
func (s *Section[T]) View() SectionView[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SectionView[T]{
		Name:         s.cfg.Name,
		ExperienceID: s.cfg.Parent.Get(),
		State:        s.state,
		IsLoading:    s.state == StateLoading,
		IsSaving:     s.cfg.Saver.IsSaving(),
		WorkingCopy:  s.working.Clone(),
		LastSaved:    s.cloneLastSaved(),
	}
}

// Edit applies fn to a copy of the working copy and keeps the result if fn succeeds, ids
// stay unique and every persisted id belongs to the snapshot. Persisted ids only ever come
// from the remote service.
func (s *Section[T]) Edit(fn func(data *SectionData[T]) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.working.Clone()
	if err := fn(&draft); err != nil {
		return err
	}
	if err := draft.Validate(); err != nil {
		return err
	}
	if err := s.checkKnown(s.lastSaved, draft); err != nil {
		return err
	}
	s.replaceWorking(draft.Items)
	return nil
}

func (s *Section[T]) checkKnown(lastSaved *SectionData[T], data SectionData[T]) error {
	if unknown := s.cfg.Saver.Unknown(lastSaved, data); len(unknown) > 0 {
		return fmt.Errorf("%w: %s is not a saved %s entity", ErrInvalidID, unknown[0], s.cfg.Name)
	}
	return nil
}

// Add appends item to the working copy. An item without id gets a fresh one.
func (s *Section[T]) Add(item T) (T, error) {
	if item.EntityID().IsZero() {
		item = item.WithEntityID(s.cfg.NewID())
	}
	err := s.Edit(func(data *SectionData[T]) error {
		data.Items = append(data.Items, item.Clone())
		return nil
	})
	return item, err
}

// Duplicate inserts a copy of the entity id right after it, under a fresh id.
func (s *Section[T]) Duplicate(id EntityID) (T, error) {
	var dup T
	err := s.Edit(func(data *SectionData[T]) error {
		i := data.Index(id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		dup = data.Items[i].Clone().WithEntityID(s.cfg.NewID())
		data.Items = slices.Insert(data.Items, i+1, dup.Clone())
		return nil
	})
	return dup, err
}

// Update replaces the entity carrying item's id.
func (s *Section[T]) Update(item T) error {
	return s.Edit(func(data *SectionData[T]) error {
		i := data.Index(item.EntityID())
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, item.EntityID())
		}
		data.Items[i] = item.Clone()
		return nil
	})
}

// Remove drops the entity id from the working copy.
func (s *Section[T]) Remove(id EntityID) error {
	return s.Edit(func(data *SectionData[T]) error {
		i := data.Index(id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		data.Items = slices.Delete(data.Items, i, i+1)
		return nil
	})
}

// Replace swaps the whole working copy content. Items without id get a fresh one.
func (s *Section[T]) Replace(items []T) error {
	return s.Edit(func(data *SectionData[T]) error {
		data.Items = make([]T, len(items))
		for i, item := range items {
			if item.EntityID().IsZero() {
				item = item.WithEntityID(s.cfg.NewID())
			}
			data.Items[i] = item.Clone()
		}
		return nil
	})
}

// Plan returns what Save would send upstream right now.
func (s *Section[T]) Plan() Plan[T] {
	s.mu.Lock()
	last := s.cloneLastSaved()
	current := s.working.Clone()
	s.mu.Unlock()
	return s.cfg.Saver.Plan(last, current)
}

// Save reconciles the working copy with the remote service and refreshes the snapshot.
// A second call while one is running fails with ErrSaveInProgress.
func (s *Section[T]) Save(ctx context.Context) (*SaveReport, error) {
	if !s.saving.CompareAndSwap(false, true) {
		return nil, fmt.Errorf("%s: %w", s.cfg.Name, ErrSaveInProgress)
	}
	defer s.saving.Store(false)

	s.mu.Lock()
	last := s.cloneLastSaved()
	current := s.working.Clone()
	s.mu.Unlock()

	// The snapshot may have moved since the last edit.
	if err := s.checkKnown(last, current); err != nil {
		return nil, err
	}
	if s.cfg.CanSave != nil {
		ok, err := s.cfg.CanSave(current)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %v", s.cfg.Name, ErrSaveRejected, err)
		}
		if !ok {
			return nil, fmt.Errorf("%s: %w", s.cfg.Name, ErrSaveRejected)
		}
	}

	report, err := s.cfg.Saver.Save(ctx, last, current)
	s.notify(ctx, report, err)
	if err != nil {
		return report, err
	}

	if err := s.Refresh(ctx); err != nil {
		return report, fmt.Errorf("%s refresh after save: %w", s.cfg.Name, err)
	}
	s.archive(ctx)
	return report, nil
}

func (s *Section[T]) notify(ctx context.Context, report *SaveReport, err error) {
	if s.cfg.Notifier == nil {
		return
	}
	s.cfg.Notifier.Notify(ctx, Notification{
		Section:      s.cfg.Name,
		ExperienceID: s.cfg.Parent.Get(),
		Success:      err == nil,
		Err:          err,
		Report:       report,
	})
}

func (s *Section[T]) archive(ctx context.Context) {
	if s.cfg.Archiver == nil {
		return
	}
	snapshot := s.LastSaved()
	if snapshot == nil {
		return
	}
	if err := s.cfg.Archiver.Archive(ctx, s.cfg.Name, s.cfg.Parent.Get(), snapshot); err != nil {
		s.cfg.Logger.Warn("Snapshot archive failed",
			zap.String("section", s.cfg.Name),
			zap.String("experience_id", s.cfg.Parent.Get()),
			zap.Error(err),
		)
	}
}
