// Package archive keeps a history of confirmed section snapshots in object storage.
//
// After every successful save the section hands its refreshed last-saved snapshot to the
// archive, which writes it as JSON and prunes old copies. Archive failures never fail a save.
package archive
