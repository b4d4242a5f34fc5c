package cmd

import (
	"context"
	"fmt"
	"strings"

	"experience-manager/core/archive"
	"experience-manager/core/config"
	"experience-manager/core/database"
	"experience-manager/core/gateway"
	"experience-manager/core/journal"
	"experience-manager/core/loader"
	"experience-manager/core/metrics"
	"experience-manager/core/notify"
	"experience-manager/core/reconcile"
	"experience-manager/core/sectionapi"
	"experience-manager/core/storage"

	"experience-manager/feature/allotments"
	"experience-manager/feature/configuration"
	"experience-manager/feature/options"
	"experience-manager/feature/pricing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// sectionFeature is a section served over HTTP and usable from the command line.
type sectionFeature interface {
	loader.Feature
	Headless() sectionapi.Headless
}

// services holds everything built from the configuration.
type services struct {
	runtime  *sectionapi.Runtime
	feed     *notify.Feed
	registry *prometheus.Registry
	features []sectionFeature
	closers  []func() error
}

// buildServices wires the gateway, the save observers and every section.
// The journal and the archive are optional and only built when enabled.
func buildServices(ctx context.Context, cfg *config.Config, logg *zap.Logger) (*services, error) {
	s := &services{
		feed:     notify.NewFeed(cfg.Notify.FeedLimit),
		registry: metrics.NewRegistry(),
	}
	m, err := metrics.New(s.registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	rt := &sectionapi.Runtime{
		Gateway:     gateway.New(cfg.Gateway),
		Cache:       reconcile.NewQueryCache(cfg.Reconcile.CacheTTL()),
		Observers:   []reconcile.SaveObserver{m},
		Notifier:    notify.Multi{notify.NewLogger(logg), s.feed},
		Rules:       cfg.Rules,
		Sessions:    cfg.Session,
		Disabled:    cfg.Reconcile.Disabled,
		Concurrency: cfg.Reconcile.MaxConcurrency,
		Logger:      logg,
	}
	s.runtime = rt

	if cfg.Database.Enabled {
		// The journal is optional: a failed connection only loses history.
		if db, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional journal database connection failed", zap.Error(err))
		} else {
			j := journal.New(db, logg)
			if err := j.Migrate(); err != nil {
				return nil, err
			}
			if missing, err := j.CheckSchema(); err == nil && len(missing) > 0 {
				logg.Warn("Journal schema is missing columns", zap.Any("missing", missing))
			}
			rt.Observers = append(rt.Observers, j)
			rt.History = j
			if sqlDB, err := db.DB(); err == nil {
				s.closers = append(s.closers, sqlDB.Close)
			}
			logg.Info("Connected to journal database", zap.String("driver", cfg.Database.Driver))
		}
	}

	if cfg.Archive.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			return nil, err
		}
		rt.Archiver = archive.New(client, cfg.Storage.Bucket, cfg.Archive, logg)
	}

	opts, err := options.NewFeature(rt)
	if err != nil {
		return nil, err
	}
	allots, err := allotments.NewFeature(rt)
	if err != nil {
		return nil, err
	}
	prices, err := pricing.NewFeature(rt)
	if err != nil {
		return nil, err
	}
	settings, err := configuration.NewFeature(rt)
	if err != nil {
		return nil, err
	}
	s.features = []sectionFeature{opts, allots, prices, settings}

	return s, nil
}

// headless returns the command line entry point of the named section.
func (s *services) headless(name string) (sectionapi.Headless, error) {
	names := make([]string, 0, len(s.features))
	for _, f := range s.features {
		if f.Name() == name {
			if !f.IsEnabled() {
				return nil, fmt.Errorf("section %q is disabled", name)
			}
			return f.Headless(), nil
		}
		names = append(names, f.Name())
	}
	return nil, fmt.Errorf("unknown section %q (known: %s)", name, strings.Join(names, ", "))
}

// Close releases the connections opened by buildServices.
func (s *services) Close() {
	for _, c := range s.closers {
		_ = c()
	}
}
