package reconcile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// IDKind tells whether an entity id was assigned by the remote service or by the client.
type IDKind uint8

const (
	// KindPersisted marks an id assigned by the remote service.
	KindPersisted IDKind = iota + 1
	// KindLocal marks an id generated on the client for an entity that was never sent upstream.
	KindLocal
)

// String returns the wire name of the kind.
func (k IDKind) String() string {
	switch k {
	case KindPersisted:
		return "persisted"
	case KindLocal:
		return "local"
	default:
		return "unknown"
	}
}

func parseKind(s string) (IDKind, error) {
	switch s {
	case "persisted":
		return KindPersisted, nil
	case "local":
		return KindLocal, nil
	default:
		return 0, fmt.Errorf("unknown id kind %q", s)
	}
}

// ErrInvalidID is returned when an id cannot be decoded.
var ErrInvalidID = errors.New("reconcile: invalid entity id")

// EntityID identifies an entity inside a section. The zero value is not a valid id.
type EntityID struct {
	kind  IDKind
	value string
}

// LocalID returns a fresh client-side id.
func LocalID() EntityID {
	return EntityID{kind: KindLocal, value: uuid.NewString()}
}

// PersistedID wraps an id returned by the remote service.
func PersistedID(value string) EntityID {
	return EntityID{kind: KindPersisted, value: value}
}

// Kind returns the id kind.
func (id EntityID) Kind() IDKind { return id.kind }

// Value returns the raw id without its kind.
func (id EntityID) Value() string { return id.value }

// IsLocal reports whether the entity has never been persisted.
func (id EntityID) IsLocal() bool { return id.kind == KindLocal }

// IsPersisted reports whether the id was assigned by the remote service.
func (id EntityID) IsPersisted() bool { return id.kind == KindPersisted }

// IsZero reports whether id is the zero value.
func (id EntityID) IsZero() bool { return id.kind == 0 && id.value == "" }

// String renders the id as "kind:value". ParseEntityID reverses it.
func (id EntityID) String() string {
	if id.IsZero() {
		return ""
	}
	return id.kind.String() + ":" + id.value
}

// ParseEntityID decodes the "kind:value" form produced by String.
func ParseEntityID(s string) (EntityID, error) {
	kind, value, ok := strings.Cut(s, ":")
	if !ok || value == "" {
		return EntityID{}, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	k, err := parseKind(kind)
	if err != nil {
		return EntityID{}, fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	return EntityID{kind: k, value: value}, nil
}

type wireID struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// MarshalJSON encodes the id as {"kind": ..., "value": ...}.
func (id EntityID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(wireID{Kind: id.kind.String(), Value: id.value})
}

// UnmarshalJSON decodes the object form written by MarshalJSON.
func (id *EntityID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = EntityID{}
		return nil
	}
	var w wireID
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	k, err := parseKind(w.Kind)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	if w.Value == "" {
		return fmt.Errorf("%w: empty value", ErrInvalidID)
	}
	*id = EntityID{kind: k, value: w.Value}
	return nil
}
