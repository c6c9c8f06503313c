// Package metrics counts sync events for the node-exporter textfile collector.
package metrics

import (
	"context"
	"fmt"

	"shopify-template-sync/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "templatesync"

// Recorder is a sync event sink backed by its own registry
type Recorder struct {
	registry *prometheus.Registry

	fetches  *prometheus.CounterVec
	pushes   *prometheus.CounterVec
	images   *prometheus.CounterVec
	lastRun  prometheus.Gauge
	failures prometheus.Gauge
}

// NewRecorder creates a recorder with all collectors registered
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "template_fetches_total",
			Help:      "Templates downloaded from a source shop.",
		}, []string{"shop"}),
		pushes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "template_pushes_total",
			Help:      "Template deploys by target shop and result.",
		}, []string{"shop", "result"}),
		images: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "image_uploads_total",
			Help:      "Image files created by target shop and batch result.",
		}, []string{"shop", "result"}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last sync run finished.",
		}),
		failures: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_failed_shops",
			Help:      "Shops with a push or image error in the last run.",
		}),
	}
	r.registry.MustRegister(r.fetches, r.pushes, r.images, r.lastRun, r.failures)
	return r
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Publish implements ports.EventPublisher
func (r *Recorder) Publish(_ context.Context, event *domain.SyncEvent) error {
	switch event.Type {
	case domain.EventTemplateFetched:
		r.fetches.WithLabelValues(event.Shop).Inc()
	case domain.EventTemplatePushed:
		r.pushes.WithLabelValues(event.Shop, "pushed").Inc()
	case domain.EventTemplatePushFailed:
		r.pushes.WithLabelValues(event.Shop, "failed").Inc()
	case domain.EventTemplateSkipped:
		r.pushes.WithLabelValues(event.Shop, "skipped").Inc()
	case domain.EventImagesUploaded:
		r.images.WithLabelValues(event.Shop, "ok").Add(float64(event.Count))
	case domain.EventImagesFailed:
		r.images.WithLabelValues(event.Shop, "failed").Add(float64(event.Count))
	default:
		return fmt.Errorf("unknown event type %q", event.Type)
	}
	return nil
}

// ObserveRun records the end of a run
func (r *Recorder) ObserveRun(run *domain.SyncRun) {
	r.lastRun.Set(float64(run.FinishedAt.Unix()))
	r.failures.Set(float64(run.Failures()))
}

// WriteTextfile writes the registry to path in the text exposition format
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
