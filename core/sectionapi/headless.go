package sectionapi

import (
	"context"
	"fmt"

	"experience-manager/core/reconcile"
	"experience-manager/core/session"

	"github.com/goccy/go-json"
)

// Headless applies a desired working copy to a section without the HTTP layer.
type Headless interface {
	Name() string
	// Prepare loads the section of experienceID and, when body is not empty, replaces the
	// working copy with the {"items": [...]} document in body.
	Prepare(ctx context.Context, experienceID string, body []byte) (Prepared, error)
}

// Prepared is a loaded section ready to be planned or saved.
type Prepared interface {
	Summary() reconcile.PlanSummary
	Plan() any
	Save(ctx context.Context) (*reconcile.SaveReport, error)
}

type headless[T reconcile.Entity[T]] struct {
	name   string
	create session.CreateFunc[*reconcile.Section[T]]
}

// NewHeadless wraps a section factory for command line use.
func NewHeadless[T reconcile.Entity[T]](name string, create session.CreateFunc[*reconcile.Section[T]]) Headless {
	return &headless[T]{name: name, create: create}
}

func (h *headless[T]) Name() string { return h.name }

func (h *headless[T]) Prepare(ctx context.Context, experienceID string, body []byte) (Prepared, error) {
	s, err := h.create(ctx, experienceID)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", h.name, err)
	}
	if len(body) > 0 {
		var data reconcile.SectionData[T]
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, fmt.Errorf("decode %s: %w", h.name, err)
		}
		if err := s.Replace(data.Items); err != nil {
			return nil, err
		}
	}
	return &prepared[T]{section: s}, nil
}

type prepared[T reconcile.Entity[T]] struct {
	section *reconcile.Section[T]
}

func (p *prepared[T]) Summary() reconcile.PlanSummary { return p.section.Plan().Summary() }

func (p *prepared[T]) Plan() any { return p.section.Plan() }

func (p *prepared[T]) Save(ctx context.Context) (*reconcile.SaveReport, error) {
	return p.section.Save(ctx)
}
