package reconcile

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BatchPerformer executes one kind of batched remote mutation and reports its busy state.
type BatchPerformer[I any] interface {
	PerformBatch(ctx context.Context, items []I) error
	IsPerforming() bool
}

// SaveObserver receives the report of every save attempt.
type SaveObserver interface {
	ObserveSave(ctx context.Context, report SaveReport)
}

// SaverConfig bundles what a Saver needs.
type SaverConfig[T Entity[T]] struct {
	// Section is the section name used in reports and logs.
	Section string

	// Parent returns the experience id for reports.
	Parent ParentFunc

	// Differ classifies the working copy.
	Differ Differ[T]

	Create BatchPerformer[T]
	Update BatchPerformer[T]
	Delete BatchPerformer[EntityID]

	// Invalidate marks the last-saved query as stale. It runs only after a fully successful save.
	Invalidate func()

	// Observers receive every report, failed ones included.
	Observers []SaveObserver

	Logger *zap.Logger
}

// Saver diffs a working copy against the last-saved snapshot and drives the three performers.
// Saves are best effort and not transactional: when one batch fails the others keep running
// and their mutations stay applied upstream.
type Saver[T Entity[T]] struct {
	cfg SaverConfig[T]
}

// NewSaver creates a Saver.
func NewSaver[T Entity[T]](cfg SaverConfig[T]) *Saver[T] {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Parent == nil {
		cfg.Parent = func() string { return "" }
	}
	return &Saver[T]{cfg: cfg}
}

// IsSaving is true while any performer is running.
func (s *Saver[T]) IsSaving() bool {
	return s.cfg.Create.IsPerforming() || s.cfg.Update.IsPerforming() || s.cfg.Delete.IsPerforming()
}

// Plan returns the classification Save would act on.
func (s *Saver[T]) Plan(lastSaved *SectionData[T], current SectionData[T]) Plan[T] {
	return s.cfg.Differ.Plan(lastSaved, current)
}

// Unknown returns the persisted ids of current that lastSaved does not know about.
func (s *Saver[T]) Unknown(lastSaved *SectionData[T], current SectionData[T]) []EntityID {
	return s.cfg.Differ.Unknown(lastSaved, current)
}

// Save reconciles current with lastSaved. It returns the first batch error, if any, after
// every batch has finished. The report is returned in both cases.
func (s *Saver[T]) Save(ctx context.Context, lastSaved *SectionData[T], current SectionData[T]) (*SaveReport, error) {
	report := &SaveReport{
		Section:      s.cfg.Section,
		ExperienceID: s.cfg.Parent(),
		StartedAt:    time.Now(),
	}
	if err := current.Validate(); err != nil {
		report.Err = err
		return report, err
	}

	plan := s.cfg.Differ.Plan(lastSaved, current)
	report.Summary = plan.Summary()

	rec := &recorder{}
	rctx := withRecorder(ctx, rec)

	var g errgroup.Group
	g.Go(func() error { return s.cfg.Create.PerformBatch(rctx, plan.New) })
	g.Go(func() error { return s.cfg.Update.PerformBatch(rctx, plan.Edited) })
	g.Go(func() error { return s.cfg.Delete.PerformBatch(rctx, plan.RemovedIDs) })
	err := g.Wait()

	report.Outcomes = rec.snapshot()
	report.Duration = time.Since(report.StartedAt)
	report.Err = err

	l := s.cfg.Logger.With(
		zap.String("section", report.Section),
		zap.String("experience_id", report.ExperienceID),
		zap.Int("new", report.Summary.New),
		zap.Int("edited", report.Summary.Edited),
		zap.Int("removed", report.Summary.Removed),
	)
	if err != nil {
		l.Error("Section save failed", zap.Bool("partial", report.Partial()), zap.Error(err))
	} else {
		if s.cfg.Invalidate != nil {
			s.cfg.Invalidate()
		}
		l.Info("Section saved", zap.Duration("duration", report.Duration))
	}

	for _, o := range s.cfg.Observers {
		o.ObserveSave(ctx, *report)
	}

	return report, err
}
