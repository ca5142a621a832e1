// Package telemetry exports Prometheus metrics for the broadcast pipeline.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pipeline stage labels.
const (
	StageNews   = "news"
	StageReddit = "reddit"
	StageScript = "script"
	StageTTS    = "tts"
)

// Metrics holds all pipeline Prometheus metrics.
type Metrics struct {
	// Request metrics
	BroadcastsRequested *prometheus.CounterVec
	BroadcastsFailed    *prometheus.CounterVec
	BroadcastDuration   prometheus.Histogram

	// Per-stage metrics
	StageDuration *prometheus.HistogramVec
	StageFailures *prometheus.CounterVec
	TopicFailures *prometheus.CounterVec

	// Cache metrics
	CacheEvents *prometheus.CounterVec

	// Audio metrics
	ClipsGenerated prometheus.Counter
	ClipBytes      prometheus.Histogram
}

// Provider wraps the metrics registry and its HTTP handler.
type Provider struct {
	Metrics  *Metrics
	registry *prometheus.Registry
}

// NewProvider initializes telemetry on a private registry so providers
// can be created freely in tests.
func NewProvider() *Provider {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	m := &Metrics{
		BroadcastsRequested: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "truescan_broadcasts_requested_total",
			Help: "Total broadcast generation requests",
		}, []string{"source_type"}),

		BroadcastsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "truescan_broadcasts_failed_total",
			Help: "Total broadcast generation requests that failed",
		}, []string{"source_type"}),

		BroadcastDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "truescan_broadcast_duration_seconds",
			Help:    "End-to-end time to produce a broadcast",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		}),

		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "truescan_stage_duration_seconds",
			Help:    "Time spent per pipeline stage",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
		}, []string{"stage"}),

		StageFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "truescan_stage_failures_total",
			Help: "Total hard failures per pipeline stage",
		}, []string{"stage"}),

		TopicFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "truescan_topic_failures_total",
			Help: "Topics that produced placeholder summaries instead of analyses",
		}, []string{"stage"}),

		CacheEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "truescan_script_cache_events_total",
			Help: "Script cache lookups by result (hit, miss)",
		}, []string{"result"}),

		ClipsGenerated: factory.NewCounter(prometheus.CounterOpts{
			Name: "truescan_clips_generated_total",
			Help: "Total audio clips synthesized",
		}),

		ClipBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "truescan_clip_bytes",
			Help:    "Size of generated audio clips in bytes",
			Buckets: prometheus.ExponentialBuckets(64*1024, 2, 8),
		}),
	}

	return &Provider{Metrics: m, registry: registry}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// RecordBroadcast records a completed broadcast request.
func (p *Provider) RecordBroadcast(sourceType string, success bool, duration time.Duration) {
	p.Metrics.BroadcastsRequested.WithLabelValues(sourceType).Inc()
	if !success {
		p.Metrics.BroadcastsFailed.WithLabelValues(sourceType).Inc()
	}
	p.Metrics.BroadcastDuration.Observe(duration.Seconds())
}

// RecordStage records one pipeline stage execution.
func (p *Provider) RecordStage(stage string, duration time.Duration, err error) {
	p.Metrics.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
	if err != nil {
		p.Metrics.StageFailures.WithLabelValues(stage).Inc()
	}
}

// RecordTopicFailures counts topics that fell back to placeholder summaries.
func (p *Provider) RecordTopicFailures(stage string, count int) {
	if count > 0 {
		p.Metrics.TopicFailures.WithLabelValues(stage).Add(float64(count))
	}
}

// RecordCacheHit records a script cache hit or miss.
func (p *Provider) RecordCacheHit(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	p.Metrics.CacheEvents.WithLabelValues(result).Inc()
}

// RecordClip records a synthesized audio clip.
func (p *Provider) RecordClip(sizeBytes int) {
	p.Metrics.ClipsGenerated.Inc()
	p.Metrics.ClipBytes.Observe(float64(sizeBytes))
}
