// Package metrics exposes Prometheus collectors for section saves.
//
// Metrics is a reconcile.SaveObserver: every save report increments the save counter by
// result (success, partial, failure), the per-kind operation counters and the duration
// histogram. Handler serves a registry on the fiber app at /metrics.
package metrics
