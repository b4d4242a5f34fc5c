package sectionapi

import (
	"context"
	"fmt"

	"experience-manager/core/gateway"
	"experience-manager/core/reconcile"
	"experience-manager/core/rules"
	"experience-manager/core/session"

	"go.uber.org/zap"
)

// Runtime holds the collaborators shared by every section.
type Runtime struct {
	Gateway *gateway.Client
	Cache   *reconcile.QueryCache

	// Observers receive every save report (journal, metrics).
	Observers []reconcile.SaveObserver

	Notifier reconcile.Notifier
	Archiver reconcile.SnapshotArchiver
	History  History

	Rules    rules.Config
	Sessions session.Config

	// Disabled lists sections that are not served.
	Disabled []string

	// Concurrency bounds the remote calls of one performer batch. Zero is unbounded.
	Concurrency int

	Logger *zap.Logger
}

// Performers are the three batch performers of a section.
type Performers[T reconcile.Entity[T]] struct {
	Create reconcile.BatchPerformer[T]
	Update reconcile.BatchPerformer[T]
	Delete reconcile.BatchPerformer[reconcile.EntityID]
}

// Blueprint describes the section-specific parts of a section.
type Blueprint[T reconcile.Entity[T]] struct {
	Name   string
	Differ reconcile.Differ[T]
	// NewID generates ids of added entities. Nil means reconcile.LocalID.
	NewID func() reconcile.EntityID
	Fetch reconcile.FetchFunc[T]
	// Performers builds the performers bound to parent.
	Performers func(parent reconcile.ParentFunc, opts ...reconcile.PerformerOption) Performers[T]
}

// NewFactory returns a function building a loaded section of kind b for an experience.
func NewFactory[T reconcile.Entity[T]](rt *Runtime, b Blueprint[T]) (session.CreateFunc[*reconcile.Section[T]], error) {
	gate, err := rules.NewPredicate(rt.Rules.CanSave(b.Name))
	if err != nil {
		return nil, fmt.Errorf("%s save gate: %w", b.Name, err)
	}
	log := rt.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("section", b.Name))
	cache := rt.Cache
	if cache == nil {
		cache = reconcile.NewQueryCache(0)
	}

	opts := []reconcile.PerformerOption{
		reconcile.WithConcurrency(rt.Concurrency),
		reconcile.WithMissingCheck(gateway.IsNotFound),
	}

	return func(ctx context.Context, experienceID string) (*reconcile.Section[T], error) {
		parent := &reconcile.Parent{}
		loader := reconcile.NewLoader(b.Name, cache, b.Fetch)
		perf := b.Performers(parent.Get, opts...)

		saver := reconcile.NewSaver(reconcile.SaverConfig[T]{
			Section:    b.Name,
			Parent:     parent.Get,
			Differ:     b.Differ,
			Create:     perf.Create,
			Update:     perf.Update,
			Delete:     perf.Delete,
			Invalidate: func() { loader.Invalidate(parent.Get()) },
			Observers:  rt.Observers,
			Logger:     log,
		})

		section := reconcile.NewSection(reconcile.SectionConfig[T]{
			Name:     b.Name,
			Parent:   parent,
			Loader:   loader,
			Saver:    saver,
			NewID:    b.NewID,
			CanSave:  rules.SaveGate[T](gate),
			Notifier: rt.Notifier,
			Archiver: rt.Archiver,
			Logger:   log,
		})
		if err := section.SetExperienceID(ctx, experienceID); err != nil {
			return nil, err
		}
		return section, nil
	}, nil
}
