package reconcile

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrMissingParent is returned when a create or update batch runs without an experience id.
	ErrMissingParent = errors.New("reconcile: parent id is required")
	// ErrLocalID is returned when an operation that addresses a remote entity receives a local id.
	ErrLocalID = errors.New("reconcile: local id cannot address a remote entity")
	// ErrDuplicateID is returned when a section holds two entities with the same id.
	ErrDuplicateID = errors.New("reconcile: duplicate entity id")
	// ErrNotFound is returned when an entity id is not part of the working copy.
	ErrNotFound = errors.New("reconcile: entity not found")
	// ErrSaveInProgress is returned when Save is called while a previous save is still running.
	ErrSaveInProgress = errors.New("reconcile: save already in progress")
	// ErrSaveRejected is returned when the save gate refuses the working copy.
	ErrSaveRejected = errors.New("reconcile: working copy cannot be saved")
)

// Entity is the constraint every section record satisfies.
// Clone must return a value that shares no mutable memory with the receiver.
type Entity[T any] interface {
	EntityID() EntityID
	WithEntityID(id EntityID) T
	Clone() T
}

// SectionData is the collection of entities owned by one section.
// Item order is display order only; reconciliation ignores it.
type SectionData[T Entity[T]] struct {
	Items []T `json:"items"`
}

// NewSectionData returns section data holding items.
func NewSectionData[T Entity[T]](items ...T) SectionData[T] {
	return SectionData[T]{Items: items}
}

// Clone returns a deep copy.
func (d SectionData[T]) Clone() SectionData[T] {
	if d.Items == nil {
		return SectionData[T]{}
	}
	items := make([]T, len(d.Items))
	for i, item := range d.Items {
		items[i] = item.Clone()
	}
	return SectionData[T]{Items: items}
}

// Len returns the number of items.
func (d SectionData[T]) Len() int { return len(d.Items) }

// IDs returns the set of ids in the collection.
func (d SectionData[T]) IDs() map[EntityID]struct{} {
	ids := make(map[EntityID]struct{}, len(d.Items))
	for _, item := range d.Items {
		ids[item.EntityID()] = struct{}{}
	}
	return ids
}

// Index returns the position of id, or -1.
func (d SectionData[T]) Index(id EntityID) int {
	for i, item := range d.Items {
		if item.EntityID() == id {
			return i
		}
	}
	return -1
}

// Find returns the entity with the given id.
func (d SectionData[T]) Find(id EntityID) (T, bool) {
	if i := d.Index(id); i >= 0 {
		return d.Items[i], true
	}
	var zero T
	return zero, false
}

// Validate checks that every id is set and unique.
func (d SectionData[T]) Validate() error {
	seen := make(map[EntityID]struct{}, len(d.Items))
	for _, item := range d.Items {
		id := item.EntityID()
		if id.IsZero() {
			return fmt.Errorf("%w: empty id", ErrInvalidID)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Plan is the classification of a working copy against the last-saved snapshot.
type Plan[T Entity[T]] struct {
	New        []T        `json:"new"`
	Edited     []T        `json:"edited"`
	RemovedIDs []EntityID `json:"removed_ids"`
	Unchanged  int        `json:"unchanged"`
}

// IsEmpty reports whether applying the plan would send nothing upstream.
func (p Plan[T]) IsEmpty() bool {
	return len(p.New) == 0 && len(p.Edited) == 0 && len(p.RemovedIDs) == 0
}

// Summary returns the plan counts.
func (p Plan[T]) Summary() PlanSummary {
	return PlanSummary{
		New:       len(p.New),
		Edited:    len(p.Edited),
		Removed:   len(p.RemovedIDs),
		Unchanged: p.Unchanged,
	}
}

// PlanSummary provides aggregate counts for a plan.
type PlanSummary struct {
	New       int `json:"new"`
	Edited    int `json:"edited"`
	Removed   int `json:"removed"`
	Unchanged int `json:"unchanged"`
}

// OperationKind names the kind of remote mutation.
type OperationKind string

const (
	OpCreate OperationKind = "create"
	OpUpdate OperationKind = "update"
	OpDelete OperationKind = "delete"
)

// Outcome records the result of a single entity mutation.
type Outcome struct {
	Kind OperationKind `json:"kind"`
	// ID is the id the entity had in the working copy.
	ID EntityID `json:"id"`
	// RemoteID is the id returned by the remote service for creates.
	RemoteID  string `json:"remote_id,omitempty"`
	Succeeded bool   `json:"succeeded"`
	Error     string `json:"error,omitempty"`
}

// SaveReport describes one save attempt. A failed save may still list succeeded outcomes:
// sibling work is never rolled back.
type SaveReport struct {
	Section      string        `json:"section"`
	ExperienceID string        `json:"experience_id"`
	Summary      PlanSummary   `json:"summary"`
	Outcomes     []Outcome     `json:"outcomes"`
	StartedAt    time.Time     `json:"started_at"`
	Duration     time.Duration `json:"duration"`
	Err          error         `json:"-"`
}

// Succeeded reports whether the whole save went through.
func (r *SaveReport) Succeeded() bool { return r.Err == nil }

// Partial reports whether the save failed after some mutations were applied upstream.
func (r *SaveReport) Partial() bool {
	if r.Err == nil {
		return false
	}
	for _, o := range r.Outcomes {
		if o.Succeeded {
			return true
		}
	}
	return false
}

// Count returns how many outcomes of kind succeeded and failed.
func (r *SaveReport) Count(kind OperationKind) (succeeded, failed int) {
	for _, o := range r.Outcomes {
		if o.Kind != kind {
			continue
		}
		if o.Succeeded {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}
