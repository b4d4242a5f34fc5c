package reconcile

import "reflect"

// NewPolicy decides which working copy entities count as new.
type NewPolicy int

const (
	// NewByLocalID treats entities carrying a local id as new.
	NewByLocalID NewPolicy = iota
	// NewByAbsence treats entities whose id is missing from the last-saved snapshot as new.
	// Sections whose remote service accepts client-chosen ids use it.
	NewByAbsence
)

// Differ classifies a working copy against a last-saved snapshot.
// The zero value uses NewByLocalID and whole-value deep equality.
type Differ[T Entity[T]] struct {
	Policy NewPolicy
	// Equal compares two entities with the same id. Nil means reflect.DeepEqual.
	Equal func(a, b T) bool
}

func (d Differ[T]) equal(a, b T) bool {
	if d.Equal != nil {
		return d.Equal(a, b)
	}
	return reflect.DeepEqual(a, b)
}

func isEmpty[T Entity[T]](data *SectionData[T]) bool {
	return data == nil || len(data.Items) == 0
}

func (d Differ[T]) isNew(id EntityID, saved map[EntityID]struct{}) bool {
	if saved == nil {
		return true
	}
	switch d.Policy {
	case NewByAbsence:
		_, ok := saved[id]
		return !ok
	default:
		return id.IsLocal()
	}
}

func savedIDs[T Entity[T]](lastSaved *SectionData[T]) map[EntityID]struct{} {
	if isEmpty(lastSaved) {
		return nil
	}
	return lastSaved.IDs()
}

// New returns the entities of current that have to be created.
// With no last-saved snapshot every entity is new.
func (d Differ[T]) New(lastSaved *SectionData[T], current SectionData[T]) []T {
	saved := savedIDs(lastSaved)
	items := make([]T, 0)
	for _, item := range current.Items {
		if d.isNew(item.EntityID(), saved) {
			items = append(items, item)
		}
	}
	return items
}

// Edited returns the entities of current that are not new, exist in lastSaved and differ from it.
func (d Differ[T]) Edited(lastSaved *SectionData[T], current SectionData[T]) []T {
	items := make([]T, 0)
	if isEmpty(lastSaved) {
		return items
	}
	byID := make(map[EntityID]T, len(lastSaved.Items))
	saved := make(map[EntityID]struct{}, len(lastSaved.Items))
	for _, item := range lastSaved.Items {
		byID[item.EntityID()] = item
		saved[item.EntityID()] = struct{}{}
	}
	for _, item := range current.Items {
		id := item.EntityID()
		if d.isNew(id, saved) {
			continue
		}
		prev, ok := byID[id]
		if !ok {
			continue
		}
		if !d.equal(prev, item) {
			items = append(items, item)
		}
	}
	return items
}

// RemovedIDs returns the ids present in lastSaved but gone from current.
// Local ids never produce a delete.
func (d Differ[T]) RemovedIDs(lastSaved *SectionData[T], current SectionData[T]) []EntityID {
	ids := make([]EntityID, 0)
	if isEmpty(lastSaved) {
		return ids
	}
	present := current.IDs()
	for _, item := range lastSaved.Items {
		id := item.EntityID()
		if id.IsLocal() {
			continue
		}
		if _, ok := present[id]; !ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Unknown returns the persisted ids of current that lastSaved does not hold. Under
// NewByLocalID such entities would be neither created nor updated, so a section refuses them.
// NewByAbsence sections and an empty snapshot have none.
func (d Differ[T]) Unknown(lastSaved *SectionData[T], current SectionData[T]) []EntityID {
	saved := savedIDs(lastSaved)
	if saved == nil || d.Policy == NewByAbsence {
		return nil
	}
	var ids []EntityID
	for _, item := range current.Items {
		id := item.EntityID()
		if !id.IsPersisted() {
			continue
		}
		if _, ok := saved[id]; !ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Plan classifies every entity of current and lastSaved at once.
func (d Differ[T]) Plan(lastSaved *SectionData[T], current SectionData[T]) Plan[T] {
	plan := Plan[T]{
		New:        d.New(lastSaved, current),
		Edited:     d.Edited(lastSaved, current),
		RemovedIDs: d.RemovedIDs(lastSaved, current),
	}
	plan.Unchanged = len(current.Items) - len(plan.New) - len(plan.Edited)
	return plan
}
