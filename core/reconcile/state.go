package reconcile

import "fmt"

// State is the resynchronisation state of a Section.
type State int

const (
	// StateIdle means no snapshot was loaded yet.
	StateIdle State = iota
	// StateLoading means a fetch is running; the working copy is not resynchronised meanwhile.
	StateLoading
	// StateSettled means the working copy was resynchronised from the latest snapshot.
	StateSettled
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name written by MarshalText.
func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = StateIdle
	case "loading":
		*s = StateLoading
	case "settled":
		*s = StateSettled
	default:
		return fmt.Errorf("unknown section state %q", text)
	}
	return nil
}
