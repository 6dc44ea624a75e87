/*
 *  Copyright (c) 2023 Juice Technologies, Inc. All Rights Reserved.
 */
package probe

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Juice-Labs/encprobe/pkg/api"
)

const (
	namespace = "encprobe"
	subsystem = "probe"
)

// Metrics records probe outcomes. A nil *Metrics records nothing.
type Metrics struct {
	sync.Mutex

	results    *prometheus.CounterVec
	duration   prometheus.Histogram
	adapters   prometheus.Gauge
	capability *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		results: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "results_total",
				Help:      "Probe attempts by outcome.",
			},
			[]string{"result"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "duration_seconds",
				Help:      "Time from launching the probe process to merging its report.",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
		),
		adapters: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "adapters",
				Help:      "Capability records written by the last successful probe.",
			},
		),
		capability: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "adapter",
				Name:      "capability",
				Help:      "1 when the adapter has the capability, 0 otherwise.",
			},
			[]string{"index", "luid", "capability"},
		),
	}
}

func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.results.Describe(ch)
	m.duration.Describe(ch)
	m.adapters.Describe(ch)
	m.capability.Describe(ch)
}

func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.Lock()
	defer m.Unlock()

	m.results.Collect(ch)
	m.duration.Collect(ch)
	m.adapters.Collect(ch)
	m.capability.Collect(ch)
}

func (m *Metrics) observe(err error, duration time.Duration, adapters int) {
	if m == nil {
		return
	}

	m.Lock()
	defer m.Unlock()

	m.results.WithLabelValues(Result(err)).Inc()
	m.duration.Observe(duration.Seconds())
	if err == nil {
		m.adapters.Set(float64(adapters))
	}
}

// SetAdapters replaces the per-adapter capability gauges.
func (m *Metrics) SetAdapters(adapters []api.Adapter) {
	if m == nil {
		return
	}

	m.Lock()
	defer m.Unlock()

	m.capability.Reset()
	for _, adapter := range adapters {
		index := strconv.Itoa(adapter.Index)
		m.capability.WithLabelValues(index, adapter.Luid, "intel").Set(boolToFloat(adapter.IsIntel))
		m.capability.WithLabelValues(index, adapter.Luid, "dgpu").Set(boolToFloat(adapter.IsDgpu))
		m.capability.WithLabelValues(index, adapter.Luid, "av1").Set(boolToFloat(adapter.SupportsAv1))
		m.capability.WithLabelValues(index, adapter.Luid, "hevc").Set(boolToFloat(adapter.SupportsHevc))
	}
}

func boolToFloat(value bool) float64 {
	if value {
		return 1
	}

	return 0
}
