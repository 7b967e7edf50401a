// SPDX-License-Identifier: EPL-2.0

// Package metrics provides Prometheus collectors for rendering, playback and
// hydration.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine's collectors. A nil *Metrics records nothing, so
// components can take one optionally.
type Metrics struct {
	rendersTotal     *prometheus.CounterVec
	renderDuration   prometheus.Histogram
	renderedSeconds  prometheus.Counter
	scheduledSources *prometheus.CounterVec
	skippedClips     *prometheus.CounterVec
	playbackState    *prometheus.GaugeVec
	hydrationsTotal  *prometheus.CounterVec
	hydrationLatency prometheus.Histogram
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{}
	m.initMetrics()
	if err := reg.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) initMetrics() {
	m.rendersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "podmix_renders_total",
			Help: "Total number of offline renders",
		},
		[]string{"status"}, // status: success, empty, unsupported, canceled, error
	)

	m.renderDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name: "podmix_render_duration_seconds",
			Help: "Wall clock time of offline renders",
			// 10ms to ~80s
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
		},
	)

	m.renderedSeconds = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "podmix_rendered_audio_seconds_total",
			Help: "Seconds of audio produced by offline renders",
		},
	)

	m.scheduledSources = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "podmix_scheduled_sources_total",
			Help: "Clip sources scheduled into a graph",
		},
		[]string{"mode"}, // mode: offline, live
	)

	m.skippedClips = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "podmix_skipped_clips_total",
			Help: "Clips left out of a graph because their file had no buffer",
		},
		[]string{"mode"},
	)

	m.playbackState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "podmix_playback_state",
			Help: "1 for the current playback state, 0 for the others",
		},
		[]string{"state"},
	)

	m.hydrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "podmix_hydrations_total",
			Help: "File hydrations by outcome",
		},
		[]string{"status"}, // status: decoded, cached, failed
	)

	m.hydrationLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "podmix_hydration_duration_seconds",
			Help:    "Time to fetch and decode one file",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		},
	)
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.rendersTotal.Describe(ch)
	m.renderDuration.Describe(ch)
	m.renderedSeconds.Describe(ch)
	m.scheduledSources.Describe(ch)
	m.skippedClips.Describe(ch)
	m.playbackState.Describe(ch)
	m.hydrationsTotal.Describe(ch)
	m.hydrationLatency.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.rendersTotal.Collect(ch)
	m.renderDuration.Collect(ch)
	m.renderedSeconds.Collect(ch)
	m.scheduledSources.Collect(ch)
	m.skippedClips.Collect(ch)
	m.playbackState.Collect(ch)
	m.hydrationsTotal.Collect(ch)
	m.hydrationLatency.Collect(ch)
}

// RecordRender counts a finished render. audioSeconds is only added on
// success.
func (m *Metrics) RecordRender(status string, took time.Duration, audioSeconds float64) {
	if m == nil {
		return
	}
	m.rendersTotal.WithLabelValues(status).Inc()
	m.renderDuration.Observe(took.Seconds())
	if status == StatusSuccess {
		m.renderedSeconds.Add(audioSeconds)
	}
}

// RecordGraph counts the sources and skipped clips of a graph build.
func (m *Metrics) RecordGraph(mode string, scheduled, skipped int) {
	if m == nil {
		return
	}
	m.scheduledSources.WithLabelValues(mode).Add(float64(scheduled))
	m.skippedClips.WithLabelValues(mode).Add(float64(skipped))
}

// SetPlaybackState marks state as the current one.
func (m *Metrics) SetPlaybackState(state string, all []string) {
	if m == nil {
		return
	}
	for _, s := range all {
		v := 0.0
		if s == state {
			v = 1
		}
		m.playbackState.WithLabelValues(s).Set(v)
	}
}

// RecordHydration counts one file hydration.
func (m *Metrics) RecordHydration(status string, took time.Duration) {
	if m == nil {
		return
	}
	m.hydrationsTotal.WithLabelValues(status).Inc()
	if status != StatusCached {
		m.hydrationLatency.Observe(took.Seconds())
	}
}
