package metrics

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestERPMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewERPMetrics(reg)
	ctx := context.Background()

	m.Record(ctx, "erp.session.open", nil)
	m.Record(ctx, "erp.navigate", map[string]any{"view": "sales"})
	m.Record(ctx, "erp.navigate", map[string]any{"view": "hr"})
	m.Record(ctx, "erp.inventory.adjust.failed", map[string]any{"error": "not mounted"})
	m.Record(ctx, "erp.page.render", map[string]any{"view": "dashboard", "duration": 250 * time.Millisecond})

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := fetchCounterValue(mfs, "erpx_events_total", "event", "erp.navigate"); err != nil {
		t.Fatalf("fetch navigate: %v", err)
	} else if got != 2 {
		t.Fatalf("expected navigate=2, got %f", got)
	}
	if got, err := fetchCounterValue(mfs, "erpx_event_failures_total", "event", "erp.inventory.adjust"); err != nil {
		t.Fatalf("fetch failure: %v", err)
	} else if got != 1 {
		t.Fatalf("expected failure=1, got %f", got)
	}
	if got, err := fetchHistogramSum(mfs, "erpx_page_render_seconds", "view", "dashboard"); err != nil {
		t.Fatalf("fetch render: %v", err)
	} else if got != 0.25 {
		t.Fatalf("expected render sum 0.25, got %f", got)
	}
	gauge := findMetricFamily(mfs, "erpx_sessions_open")
	if gauge == nil || gauge.GetMetric()[0].GetGauge().GetValue() != 1 {
		t.Fatalf("expected one open session")
	}
}

func TestERPMetricsNilSafe(t *testing.T) {
	var m *ERPMetrics
	m.Record(context.Background(), "erp.navigate", nil)
	m.ObserveRender("sales", time.Second)
	NewERPMetrics(nil).Record(context.Background(), "erp.navigate", nil)
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

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
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
