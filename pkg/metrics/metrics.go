package metrics

import (
	"context"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ERPMetrics counts session events and times page renders.
type ERPMetrics struct {
	events   *prometheus.CounterVec
	failures *prometheus.CounterVec
	renders  *prometheus.HistogramVec
	sessions prometheus.Gauge
}

// NewERPMetrics registers the ERP metrics on the provided registerer.
func NewERPMetrics(reg prometheus.Registerer) *ERPMetrics {
	if reg == nil {
		return &ERPMetrics{}
	}
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "erpx_events_total",
		Help: "Session events by name.",
	}, []string{"event"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "erpx_event_failures_total",
		Help: "Failed session actions by name.",
	}, []string{"event"})
	renders := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "erpx_page_render_seconds",
		Help:    "Page view model build time in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"view"})
	sessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "erpx_sessions_open",
		Help: "Sessions opened and not yet closed.",
	})
	reg.MustRegister(events, failures, renders, sessions)
	return &ERPMetrics{
		events:   events,
		failures: failures,
		renders:  renders,
		sessions: sessions,
	}
}

// Record implements the ERP telemetry sink.
func (m *ERPMetrics) Record(_ context.Context, event string, payload map[string]any) {
	if m == nil || m.events == nil {
		return
	}
	event = normalizeLabel(event)
	if name, ok := strings.CutSuffix(event, ".failed"); ok {
		m.failures.WithLabelValues(name).Inc()
		return
	}
	m.events.WithLabelValues(event).Inc()
	switch event {
	case "erp.session.open":
		m.sessions.Inc()
	case "erp.session.close":
		m.sessions.Dec()
	case "erp.page.render":
		view, _ := payload["view"].(string)
		if d, ok := payload["duration"].(time.Duration); ok {
			m.ObserveRender(view, d)
		}
	}
}

// ObserveRender records the build time for the named view.
func (m *ERPMetrics) ObserveRender(view string, duration time.Duration) {
	if m == nil || m.renders == nil {
		return
	}
	m.renders.WithLabelValues(normalizeLabel(view)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
