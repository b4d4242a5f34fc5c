package sectionapi

import (
	"slices"

	"experience-manager/core/reconcile"
	"experience-manager/core/rules"
	"experience-manager/core/session"

	"github.com/gofiber/fiber/v2"
)

// Feature mounts one section and implements the loader.Feature interface.
type Feature[T reconcile.Entity[T]] struct {
	name     string
	enabled  bool
	handler  *Handler[T]
	sessions *session.Registry[*reconcile.Section[T]]
	headless Headless
}

// NewFeature wires the section described by b into a feature.
// Sections of an experience are created on first use and kept in the session registry.
func NewFeature[T reconcile.Entity[T]](rt *Runtime, b Blueprint[T], completion *rules.Checklist) (*Feature[T], error) {
	create, err := NewFactory(rt, b)
	if err != nil {
		return nil, err
	}
	sessions := session.New(rt.Sessions, create, nil)

	return &Feature[T]{
		name:    b.Name,
		enabled: !slices.Contains(rt.Disabled, b.Name),
		handler: NewHandler(Deps[T]{
			Name:       b.Name,
			Sessions:   sessions,
			Completion: completion,
			History:    rt.History,
			Logger:     rt.Logger,
		}),
		sessions: sessions,
		headless: NewHeadless(b.Name, create),
	}, nil
}

// Name returns the section name.
func (f *Feature[T]) Name() string { return f.name }

// IsEnabled reports whether the section is served.
func (f *Feature[T]) IsEnabled() bool { return f.enabled }

// Load registers the section routes.
func (f *Feature[T]) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Headless returns the command line entry point of the section.
// It builds fresh sections and bypasses the session registry.
func (f *Feature[T]) Headless() Headless { return f.headless }

// Sessions returns the live sections of the feature.
func (f *Feature[T]) Sessions() *session.Registry[*reconcile.Section[T]] { return f.sessions }
