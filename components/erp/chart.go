package erp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "260px"

// ChartRenderer turns the monthly sales series into embeddable chart HTML.
type ChartRenderer interface {
	RenderSalesChart(ctx context.Context, sales []MonthlySales, locale string) (string, error)
}

// SalesChart renders the revenue and orders line chart with go-echarts.
type SalesChart struct {
	cache      RenderCache
	theme      string
	assetsHost string
	height     string
}

// SalesChartOption customizes chart rendering.
type SalesChartOption func(*SalesChart)

// WithChartCache injects a render cache.
func WithChartCache(cache RenderCache) SalesChartOption {
	return func(c *SalesChart) { c.cache = cache }
}

// WithChartTheme sets the ECharts theme (defaults to Westeros).
func WithChartTheme(theme string) SalesChartOption {
	return func(c *SalesChart) {
		if theme != "" {
			c.theme = theme
		}
	}
}

// WithChartAssetsHost points the ECharts runtime at a CDN or self-hosted path.
func WithChartAssetsHost(host string) SalesChartOption {
	return func(c *SalesChart) { c.assetsHost = ensureTrailingSlash(host) }
}

// NewSalesChart builds a renderer with a five minute cache.
func NewSalesChart(options ...SalesChartOption) *SalesChart {
	c := &SalesChart{
		cache:      NewChartCache(5 * time.Minute),
		theme:      types.ThemeWesteros,
		assetsHost: DefaultEChartsAssetsHost(),
		height:     defaultChartHeight,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// RenderSalesChart renders or reuses the chart for the given series.
func (c *SalesChart) RenderSalesChart(_ context.Context, sales []MonthlySales, locale string) (string, error) {
	if len(sales) == 0 {
		return "", fmt.Errorf("erp: sales series is empty")
	}
	render := func() (string, error) { return c.render(sales, locale) }
	if c.cache == nil {
		return render()
	}
	return c.cache.GetOrRender(salesChartKey(c.theme, locale, sales), render)
}

func (c *SalesChart) render(sales []MonthlySales, locale string) (string, error) {
	months := make([]string, len(sales))
	revenue := make([]opts.LineData, len(sales))
	orders := make([]opts.LineData, len(sales))
	for i, point := range sales {
		months[i] = point.Month
		revenue[i] = opts.LineData{Name: point.Month, Value: point.Revenue}
		orders[i] = opts.LineData{Name: point.Month, Value: point.Orders}
	}

	initOpts := opts.Initialization{
		Theme:  c.theme,
		Width:  "100%",
		Height: c.height,
	}
	if c.assetsHost != "" {
		initOpts.AssetsHost = c.assetsHost
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts),
		charts.WithTitleOpts(opts.Title{Title: ResolveLocalizedValue(chartTitles, locale, chartTitles["default"])}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	line.SetXAxis(months).
		AddSeries("revenue", revenue, charts.WithLineStyleOpts(opts.LineStyle{Width: 3})).
		AddSeries("orders", orders, charts.WithLineStyleOpts(opts.LineStyle{Width: 2}))
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return renderChart(line)
}

var chartTitles = map[string]string{
	"default": "Sales (6 months)",
	"es":      "Ventas (6 meses)",
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
