package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/angelmondragon/shopnex/pkg/enums"
)

func TestCartMetricsExportThroughRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCartMetrics(reg)
	m.IncMutation(enums.CartOperationClear)
	m.IncPersistFailure(enums.PersistFailureUnavailable)
	m.IncRehydration(enums.RehydrationMalformed)
	m.ObservePersist(250 * time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	checks := []struct {
		name, label, value string
	}{
		{"cart_mutations_total", "op", "clear"},
		{"cart_persist_failures_total", "reason", "unavailable"},
		{"cart_rehydrations_total", "outcome", "malformed"},
	}
	for _, c := range checks {
		got, err := fetchCounterValue(mfs, c.name, c.label, c.value)
		if err != nil {
			t.Fatalf("fetch %s: %v", c.name, err)
		}
		if got != 1 {
			t.Fatalf("expected %s{%s=%q}=1, got %f", c.name, c.label, c.value, got)
		}
	}

	mf := findMetricFamily(mfs, "cart_persist_duration_seconds")
	if mf == nil || len(mf.GetMetric()) != 1 {
		t.Fatal("expected persist duration histogram")
	}
	if sum := mf.GetMetric()[0].GetHistogram().GetSampleSum(); sum <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", sum)
	}
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
