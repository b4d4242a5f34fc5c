// Package notify delivers save results to operators.
//
// Logger writes them to the application log. Feed buffers user-facing messages per
// experience for the UI to poll. Multi combines notifiers.
package notify
