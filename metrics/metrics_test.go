package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/qramproto/qram-codec/metrics"
)

func TestNewCollectorsRegistersAndUpdates(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.NewCollectors(reg, 0xDEADBEEF)

	c.PacketsEmitted.Inc()
	c.PacketsEmitted.Inc()
	c.DecodeProgress.Set(0.5)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}

	var sawEmitted, sawProgress bool
	for _, f := range families {
		switch f.GetName() {
		case "qram_fountain_packets_emitted_total":
			sawEmitted = true
			if got := f.Metric[0].GetCounter().GetValue(); got != 2 {
				t.Fatalf("packets_emitted_total = %v, want 2", got)
			}
		case "qram_fountain_decode_progress_ratio":
			sawProgress = true
			if got := f.Metric[0].GetGauge().GetValue(); got != 0.5 {
				t.Fatalf("decode_progress_ratio = %v, want 0.5", got)
			}
		}
	}
	if !sawEmitted || !sawProgress {
		t.Fatalf("expected metrics not found in registry: emitted=%v progress=%v", sawEmitted, sawProgress)
	}
}
