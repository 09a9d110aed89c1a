package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Metric names produced by the analyzer.
const (
	MetricTopByMarketCap     = "Top 5 Cryptocurrencies by Market Cap"
	MetricAveragePrice       = "Average Price"
	MetricHighestChange      = "Highest 24h Price Change"
	MetricLowestChange       = "Lowest 24h Price Change"
	MetricHighestChangeValue = "Highest 24h Price Change Value"
	MetricLowestChangeValue  = "Lowest 24h Price Change Value"
	MetricMedianPrice        = "Median Price"
	MetricTotalCount         = "Total Count"
	MetricTotalMarketCap     = "Total Market Cap"
)

// Metric is a single named statistic.
//
// Value holds a plain scalar: string, []string, int or decimal.Decimal.
type Metric struct {
	Name  string
	Value any
}

// String renders the metric value for human-readable output.
func (m Metric) String() string {
	return FormatValue(m.Value)
}

// FormatValue renders a metric value. Lists are joined with ", ".
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []string:
		return strings.Join(val, ", ")
	case decimal.Decimal:
		return val.String()
	case int:
		return fmt.Sprintf("%d", val)
	default:
		return fmt.Sprint(val)
	}
}

// Summary is the ordered set of statistics derived from one ListingSet.
type Summary struct {
	metrics []Metric
}

// NewSummary creates a Summary from metrics in display order.
func NewSummary(metrics ...Metric) Summary {
	cp := make([]Metric, len(metrics))
	copy(cp, metrics)
	return Summary{metrics: cp}
}

// Metrics returns a copy of the metrics in display order.
func (s Summary) Metrics() []Metric {
	cp := make([]Metric, len(s.metrics))
	copy(cp, s.metrics)
	return cp
}

// Get looks up a metric value by name.
func (s Summary) Get(name string) (any, bool) {
	for _, m := range s.metrics {
		if m.Name == name {
			return m.Value, true
		}
	}
	return nil, false
}

// Len returns the number of metrics.
func (s Summary) Len() int { return len(s.metrics) }

// Empty reports whether the summary has no metrics.
func (s Summary) Empty() bool { return len(s.metrics) == 0 }
