// Package reconcile provides the generic save engine shared by every experience section
// (options, allotments, internal pricing, configuration).
//
// A section keeps two copies of its entities: the last-saved snapshot, derived from the
// remote service and treated as read-only, and the working copy edited by the operator.
// Saving computes the smallest set of creates, updates and deletes that turns the snapshot
// into the working copy and runs them against the remote service.
//
// # Architecture
//
// 1. Differ: pure classification of the working copy into new, edited and removed entities.
//    Equality is deep equality over the whole entity value.
//
// 2. Performers: CreatePerformer, UpdatePerformer and DeletePerformer each run one batch of
//    remote calls concurrently and expose a busy flag. Empty batches make no calls.
//
// 3. Saver: runs the three performers concurrently. IsSaving is derived from the performers.
//    A failing batch does not cancel the others, so a failed save may be partially applied;
//    the SaveReport lists every per-entity outcome.
//
// 4. Loader and QueryCache: fetch the last-saved snapshot with stampede protection and
//    invalidate it once a save succeeded.
//
// 5. Section: the state container. Idle -> Loading -> Settled; the working copy is
//    resynchronised from a deep clone of the snapshot on entering Settled.
//
// # Identifiers
//
// EntityID is a tagged value: LocalID for entities that never left the client, PersistedID for
// ids assigned by the remote service. Local ids never produce updates or deletes.
//
// # Usage Example
//
//	parent := &reconcile.Parent{}
//	loader := reconcile.NewLoader("options", cache, fetchOptions)
//	saver := reconcile.NewSaver(reconcile.SaverConfig[Option]{
//	    Section:    "options",
//	    Parent:     parent.Get,
//	    Create:     createPerformer,
//	    Update:     updatePerformer,
//	    Delete:     deletePerformer,
//	    Invalidate: func() { loader.Invalidate(parent.Get()) },
//	})
//	section := reconcile.NewSection(reconcile.SectionConfig[Option]{
//	    Name: "options", Parent: parent, Loader: loader, Saver: saver,
//	})
//
//	_ = section.SetExperienceID(ctx, "exp-1")
//	report, err := section.Save(ctx)
package reconcile
