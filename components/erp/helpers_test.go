package erp

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-erpx/pkg/activity"
)

// sequenceRandom replays fixed values, cycling when exhausted.
type sequenceRandom struct {
	ints   []int
	floats []float64
	i, f   int
}

func (r *sequenceRandom) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[r.i%len(r.ints)]
	r.i++
	return v % n
}

func (r *sequenceRandom) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[r.f%len(r.floats)]
	r.f++
	return v
}

type recordingTelemetry struct {
	mu     sync.Mutex
	events []string
}

func (t *recordingTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, event)
}

func (t *recordingTelemetry) count(event string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, e := range t.events {
		if e == event {
			n++
		}
	}
	return n
}

type recordingRefresh struct {
	mu     sync.Mutex
	events []StateEvent
	err    error
}

func (r *recordingRefresh) StateChanged(_ context.Context, event StateEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

type recordingActivity struct {
	events []activity.Event
}

func (r *recordingActivity) Emit(_ context.Context, evt activity.Event) error {
	r.events = append(r.events, evt)
	return nil
}

type stubCharts struct {
	calls int
	err   error
}

func (s *stubCharts) RenderSalesChart(context.Context, []MonthlySales, string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "<div>chart</div>", nil
}

func item(id, name string, qty int, price string) InventoryItem {
	return InventoryItem{ID: id, Name: name, Quantity: qty, UnitPrice: decimal.RequireFromString(price), Location: "A1"}
}

func newTestService(opts Options) *Service {
	if opts.Random == nil {
		opts.Random = &sequenceRandom{ints: []int{17, 42, 199, 0}, floats: []float64{0.5, 0.25, 0.999}}
	}
	if opts.Charts == nil {
		opts.Charts = &stubCharts{}
	}
	return NewService(opts)
}
