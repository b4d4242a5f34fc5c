package journal

import (
	"context"
	"errors"
	"fmt"

	"experience-manager/core/database"
	"experience-manager/core/reconcile"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNoDatabase is returned by a journal without a connection.
var ErrNoDatabase = errors.New("journal: database connection is nil")

// Journal persists save reports.
type Journal struct {
	db     *gorm.DB
	logger *zap.Logger
}

var _ reconcile.SaveObserver = (*Journal)(nil)

// New creates a journal on db.
func New(db *gorm.DB, logger *zap.Logger) *Journal {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Journal{db: db, logger: logger}
}

// Migrate creates or updates the journal tables.
func (j *Journal) Migrate() error {
	if j.db == nil {
		return ErrNoDatabase
	}
	if err := j.db.AutoMigrate(&SaveRecord{}, &OperationRecord{}); err != nil {
		return fmt.Errorf("journal: migrate: %w", err)
	}
	return nil
}

// CheckSchema returns, per table, the model columns missing from the database.
func (j *Journal) CheckSchema() (map[string][]string, error) {
	if j.db == nil {
		return nil, ErrNoDatabase
	}
	out := map[string][]string{}
	for _, model := range []any{&SaveRecord{}, &OperationRecord{}} {
		stmt := &gorm.Statement{DB: j.db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("journal: parse model: %w", err)
		}
		missing, err := database.MissingColumns(j.db, stmt.Schema.Table, stmt.Schema.DBNames...)
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			out[stmt.Schema.Table] = missing
		}
	}
	return out, nil
}

// Record stores report together with its operation outcomes.
func (j *Journal) Record(ctx context.Context, report reconcile.SaveReport) (*SaveRecord, error) {
	if j.db == nil {
		return nil, ErrNoDatabase
	}
	rec := fromReport(report)
	if err := j.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, fmt.Errorf("journal: record %s save: %w", report.Section, err)
	}
	return rec, nil
}

// ObserveSave records report and logs a failure to do so.
func (j *Journal) ObserveSave(ctx context.Context, report reconcile.SaveReport) {
	if _, err := j.Record(ctx, report); err != nil {
		j.logger.Warn("Failed to journal save",
			zap.String("section", report.Section),
			zap.String("experience_id", report.ExperienceID),
			zap.Error(err),
		)
	}
}

// History returns the latest saves of one section, newest first.
func (j *Journal) History(ctx context.Context, section, experienceID string, limit int) ([]SaveRecord, error) {
	if j.db == nil {
		return nil, ErrNoDatabase
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var records []SaveRecord
	err := j.db.WithContext(ctx).
		Preload("Operations").
		Where("section = ? AND experience_id = ?", section, experienceID).
		Order("id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("journal: history: %w", err)
	}
	return records, nil
}

func fromReport(report reconcile.SaveReport) *SaveRecord {
	rec := &SaveRecord{
		Section:      report.Section,
		ExperienceID: report.ExperienceID,
		Created:      report.Summary.New,
		Edited:       report.Summary.Edited,
		Removed:      report.Summary.Removed,
		Unchanged:    report.Summary.Unchanged,
		Succeeded:    report.Succeeded(),
		Partial:      report.Partial(),
		StartedAt:    report.StartedAt.UTC(),
		DurationMS:   report.Duration.Milliseconds(),
		Operations:   make([]OperationRecord, 0, len(report.Outcomes)),
	}
	if report.Err != nil {
		rec.Error = report.Err.Error()
	}
	for _, o := range report.Outcomes {
		rec.Operations = append(rec.Operations, OperationRecord{
			Kind:      string(o.Kind),
			EntityID:  o.ID.String(),
			RemoteID:  o.RemoteID,
			Succeeded: o.Succeeded,
			Error:     o.Error,
		})
	}
	return rec
}
