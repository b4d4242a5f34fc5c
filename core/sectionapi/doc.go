// Package sectionapi exposes experience sections over HTTP.
//
// Handler is generic over the section entity type, so each feature mounts the same set of
// routes for its own section:
//
//	GET    /experiences/:experienceId/<section>                       view
//	PUT    /experiences/:experienceId/<section>                       replace working copy
//	POST   /experiences/:experienceId/<section>/items                 add
//	POST   /experiences/:experienceId/<section>/items/:id/duplicate   duplicate
//	PUT    /experiences/:experienceId/<section>/items/:id             update
//	DELETE /experiences/:experienceId/<section>/items/:id             remove
//	GET    /experiences/:experienceId/<section>/plan                  dry run
//	POST   /experiences/:experienceId/<section>/save                  save
//	POST   /experiences/:experienceId/<section>/refresh               reload last saved
//	GET    /experiences/:experienceId/<section>/history               journaled saves
//
// Item ids in paths use the "kind:value" form, e.g. "local:6f1c..." or "persisted:opt-9".
package sectionapi
