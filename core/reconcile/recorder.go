package reconcile

import (
	"context"
	"sync"
)

// recorder collects per-entity outcomes while performers run concurrently.
type recorder struct {
	mu       sync.Mutex
	outcomes []Outcome
}

func (r *recorder) add(o Outcome) {
	r.mu.Lock()
	r.outcomes = append(r.outcomes, o)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Outcome, len(r.outcomes))
	copy(out, r.outcomes)
	return out
}

type recorderKey struct{}

func withRecorder(ctx context.Context, r *recorder) context.Context {
	return context.WithValue(ctx, recorderKey{}, r)
}

func record(ctx context.Context, kind OperationKind, id EntityID, remoteID string, err error) {
	r, ok := ctx.Value(recorderKey{}).(*recorder)
	if !ok {
		return
	}
	o := Outcome{Kind: kind, ID: id, RemoteID: remoteID, Succeeded: err == nil}
	if err != nil {
		o.Error = err.Error()
	}
	r.add(o)
}
