package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveCheck(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveCheck("PPN", true)
	m.ObserveCheck("PPN", true)
	m.ObserveCheck("PPN", false)

	if got := testutil.ToFloat64(m.Checks.WithLabelValues("PPN", "true")); got != 2 {
		t.Errorf("Expected 2 valid PPN checks, got %v", got)
	}
	if got := testutil.ToFloat64(m.Checks.WithLabelValues("PPN", "false")); got != 1 {
		t.Errorf("Expected 1 invalid PPN check, got %v", got)
	}
}

func TestNew_IndependentRegistries(t *testing.T) {
	// Registering twice against separate registries must not panic
	New(nil)
	New(nil)
}
