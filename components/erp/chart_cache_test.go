package erp

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func manualClock(start time.Time) (*time.Time, func() time.Time) {
	now := start
	return &now, func() time.Time { return now }
}

func TestChartCacheReusesRenderedChart(t *testing.T) {
	cache := NewChartCache(time.Minute)
	key := salesChartKey("westeros", "en", DefaultFixtures().Sales)
	calls := 0
	render := func() (string, error) {
		calls++
		return "html", nil
	}

	first, err := cache.GetOrRender(key, render)
	require.NoError(t, err)
	second, err := cache.GetOrRender(key, render)
	require.NoError(t, err)

	assert.Equal(t, "html", first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestChartCacheRendersAgainAfterTTL(t *testing.T) {
	cache := NewChartCache(time.Minute)
	now, clock := manualClock(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	cache.now = clock
	key := salesChartKey("westeros", "en", DefaultFixtures().Sales)
	calls := 0
	render := func() (string, error) {
		calls++
		return "fresh", nil
	}

	_, err := cache.GetOrRender(key, render)
	require.NoError(t, err)
	*now = now.Add(59 * time.Second)
	_, err = cache.GetOrRender(key, render)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	*now = now.Add(time.Second)
	_, err = cache.GetOrRender(key, render)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestChartCacheDropsExpiredChartsOnStore(t *testing.T) {
	cache := NewChartCache(time.Minute)
	now, clock := manualClock(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	cache.now = clock
	sales := DefaultFixtures().Sales
	render := func() (string, error) { return "x", nil }

	_, _ = cache.GetOrRender(salesChartKey("westeros", "en", sales), render)
	_, _ = cache.GetOrRender(salesChartKey("westeros", "es", sales), render)
	require.Equal(t, 2, cache.Len())

	*now = now.Add(2 * time.Minute)
	_, _ = cache.GetOrRender(salesChartKey("westeros", "en", sales[:3]), render)
	assert.Equal(t, 1, cache.Len())
}

func TestChartCacheKeepsNothingOnRenderError(t *testing.T) {
	cache := NewChartCache(time.Minute)
	boom := errors.New("boom")
	key := salesChartKey("westeros", "en", DefaultFixtures().Sales)

	_, err := cache.GetOrRender(key, func() (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, cache.Len())
}

func TestChartCacheDisabledWithZeroTTL(t *testing.T) {
	cache := NewChartCache(0)
	key := salesChartKey("westeros", "en", DefaultFixtures().Sales)
	calls := 0
	for i := 0; i < 3; i++ {
		_, _ = cache.GetOrRender(key, func() (string, error) {
			calls++
			return "x", nil
		})
	}
	assert.Equal(t, 3, calls)
	assert.Zero(t, cache.Len())
}

func TestSalesChartKeyTracksFigures(t *testing.T) {
	sales := DefaultFixtures().Sales
	base := salesChartKey("westeros", "en", sales)
	assert.Equal(t, base, salesChartKey("westeros", " EN ", DefaultFixtures().Sales))
	assert.NotEqual(t, base, salesChartKey("westeros", "en", sales[:3]))
	assert.NotEqual(t, base, salesChartKey("westeros", "es", sales))
	assert.NotEqual(t, base, salesChartKey("macarons", "en", sales))

	bumped := append([]MonthlySales(nil), sales...)
	bumped[len(bumped)-1].Orders++
	assert.NotEqual(t, base, salesChartKey("westeros", "en", bumped))
}
