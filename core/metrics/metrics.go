package metrics

import (
	"context"
	"fmt"

	"experience-manager/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "experience_manager"

// Result label values of saves and operations.
const (
	ResultSuccess = "success"
	ResultPartial = "partial"
	ResultFailure = "failure"
)

// Metrics collects save and operation counters of every section.
type Metrics struct {
	saves      *prometheus.CounterVec
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	pending    *prometheus.GaugeVec
}

var _ reconcile.SaveObserver = (*Metrics)(nil)

// NewRegistry returns a registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// New registers the save collectors on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "saves_total",
			Help:      "Section saves by result.",
		}, []string{"section", "result"}),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Remote mutations issued by saves.",
		}, []string{"section", "kind", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "save_duration_seconds",
			Help:      "Duration of section saves.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"section"}),
		pending: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_save_pending_changes",
			Help:      "Changes planned by the latest save of a section.",
		}, []string{"section"}),
	}

	for _, c := range []prometheus.Collector{m.saves, m.operations, m.duration, m.pending} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("metrics: register: %w", err)
		}
	}
	return m, nil
}

// ObserveSave counts report.
func (m *Metrics) ObserveSave(ctx context.Context, report reconcile.SaveReport) {
	result := ResultSuccess
	switch {
	case report.Partial():
		result = ResultPartial
	case !report.Succeeded():
		result = ResultFailure
	}
	m.saves.WithLabelValues(report.Section, result).Inc()
	m.duration.WithLabelValues(report.Section).Observe(report.Duration.Seconds())

	s := report.Summary
	m.pending.WithLabelValues(report.Section).Set(float64(s.New + s.Edited + s.Removed))

	for _, kind := range []reconcile.OperationKind{reconcile.OpCreate, reconcile.OpUpdate, reconcile.OpDelete} {
		ok, failed := report.Count(kind)
		if ok > 0 {
			m.operations.WithLabelValues(report.Section, string(kind), ResultSuccess).Add(float64(ok))
		}
		if failed > 0 {
			m.operations.WithLabelValues(report.Section, string(kind), ResultFailure).Add(float64(failed))
		}
	}
}

// Handler serves the registry in the Prometheus text format.
func Handler(g prometheus.Gatherer) fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}
