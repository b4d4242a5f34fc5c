// Package journal keeps an audit trail of section saves in the relational database.
//
// Saves are best effort: a failed save can leave some mutations applied upstream. Each
// attempt is stored as a SaveRecord with one OperationRecord per remote call, so operators
// can see exactly which entities went through.
//
// A Journal is a reconcile.SaveObserver and is attached to every section saver when the
// database is enabled.
package journal
