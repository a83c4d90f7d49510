package erp

import (
	"os"
	"strings"
)

// envEChartsCDN overrides the ECharts assets host (e.g., a CDN or self-hosted bucket).
const envEChartsCDN = "ERPX_ECHARTS_CDN"

// DefaultEChartsAssetsHost returns ERPX_ECHARTS_CDN when set. Empty keeps the
// go-echarts default host.
func DefaultEChartsAssetsHost() string {
	return ensureTrailingSlash(strings.TrimSpace(os.Getenv(envEChartsCDN)))
}

func ensureTrailingSlash(value string) string {
	if value == "" || strings.HasSuffix(value, "/") {
		return value
	}
	return value + "/"
}
