package erp

import (
	"encoding/binary"
	"hash/fnv"
	"sync"
	"time"
)

// ChartKey identifies one rendered sales chart: the same figures drawn with a
// different theme or locale are separate entries.
type ChartKey struct {
	Theme  string
	Locale string
	Series uint64
}

// salesChartKey folds every month label and figure into the series digest.
func salesChartKey(theme, locale string, sales []MonthlySales) ChartKey {
	h := fnv.New64a()
	var buf [8]byte
	for _, point := range sales {
		h.Write([]byte(point.Month))
		h.Write([]byte{0})
		binary.LittleEndian.PutUint64(buf[:], uint64(point.Revenue))
		h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], uint64(point.Orders))
		h.Write(buf[:])
	}
	return ChartKey{Theme: theme, Locale: normalizeLocale(locale), Series: h.Sum64()}
}

// RenderCache memoizes rendered chart HTML per key.
type RenderCache interface {
	GetOrRender(key ChartKey, render func() (string, error)) (string, error)
}

// ChartCache holds rendered charts for a fixed TTL. Expired entries are
// dropped whenever a new chart is stored.
type ChartCache struct {
	ttl time.Duration
	now func() time.Time

	mu     sync.Mutex
	charts map[ChartKey]renderedChart
}

type renderedChart struct {
	html     string
	storedAt time.Time
}

// NewChartCache returns a cache keeping charts for ttl; ttl <= 0 turns it off.
func NewChartCache(ttl time.Duration) *ChartCache {
	return &ChartCache{ttl: ttl, now: time.Now, charts: map[ChartKey]renderedChart{}}
}

// GetOrRender serves a fresh chart for key or calls render and keeps its output.
// Render errors are returned and nothing is stored.
func (c *ChartCache) GetOrRender(key ChartKey, render func() (string, error)) (string, error) {
	if c == nil || c.ttl <= 0 {
		return render()
	}
	c.mu.Lock()
	chart, ok := c.charts[key]
	c.mu.Unlock()
	if ok && c.now().Sub(chart.storedAt) < c.ttl {
		return chart.html, nil
	}

	html, err := render()
	if err != nil {
		return "", err
	}
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, stored := range c.charts {
		if now.Sub(stored.storedAt) >= c.ttl {
			delete(c.charts, k)
		}
	}
	c.charts[key] = renderedChart{html: html, storedAt: now}
	return html, nil
}

// Len reports how many charts are held, expired ones included.
func (c *ChartCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.charts)
}
