// Package metrics exposes optional Prometheus instrumentation for a host
// embedding the fountain codec in a long-running service. The codec core
// itself never imports this package — it stays the synchronous,
// global-state-free library spec §5 and §9 require; metrics are wired in
// only by the CLI and by hosts that choose to observe a session.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Collectors groups the counters and gauges one session reports.
type Collectors struct {
	PacketsEmitted  prometheus.Counter
	PacketsIngested prometheus.Counter
	DecodeProgress  prometheus.Gauge
}

// NewCollectors registers a fresh set of collectors on reg, labeled with
// runID so that multiple concurrent sessions scraped from the same
// registry stay distinguishable.
func NewCollectors(reg prometheus.Registerer, runID uint32) *Collectors {
	labels := prometheus.Labels{"run_id": fmt.Sprintf("%08x", runID)}

	c := &Collectors{
		PacketsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "qram",
			Subsystem:   "fountain",
			Name:        "packets_emitted_total",
			Help:        "Packets produced by the LT encoder for this session.",
			ConstLabels: labels,
		}),
		PacketsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "qram",
			Subsystem:   "fountain",
			Name:        "packets_ingested_total",
			Help:        "Packets pushed into the LT decoder for this session.",
			ConstLabels: labels,
		}),
		DecodeProgress: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "qram",
			Subsystem:   "fountain",
			Name:        "decode_progress_ratio",
			Help:        "decoded_count / k for this session's decoder.",
			ConstLabels: labels,
		}),
	}

	reg.MustRegister(c.PacketsEmitted, c.PacketsIngested, c.DecodeProgress)
	return c
}
