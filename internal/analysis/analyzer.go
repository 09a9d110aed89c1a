package analysis

import (
	"errors"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rickgao/cryptotracker/internal/model"
)

// Metric set variants.
const (
	VariantBasic    = "basic"
	VariantExtended = "extended"
)

// Rounding modes.
const (
	RoundingFixed = "fixed"
	RoundingNone  = "none"
)

// TopN is the number of names in the market cap ranking.
const TopN = 5

var (
	errNoPrice  = errors.New("no valid price")
	errNoChange = errors.New("no valid 24h price change")
)

// Config holds analyzer configuration.
type Config struct {
	Variant   string // basic or extended (default: extended)
	Rounding  string // fixed or none (default: fixed)
	Precision int32  // Decimal places for fixed rounding (default: 2)
}

// DefaultConfig returns the extended metric set rounded to 2 places.
func DefaultConfig() Config {
	return Config{
		Variant:   VariantExtended,
		Rounding:  RoundingFixed,
		Precision: 2,
	}
}

// Analyzer computes a Summary per cycle.
type Analyzer struct {
	cfg    Config
	logger *slog.Logger
}

// New creates an Analyzer.
func New(cfg Config, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Variant == "" {
		cfg.Variant = VariantExtended
	}
	if cfg.Rounding == "" {
		cfg.Rounding = RoundingFixed
	}
	return &Analyzer{cfg: cfg, logger: logger}
}

// Analyze returns the Summary for set. It returns an empty Summary when the
// set is empty or the computation fails.
func (a *Analyzer) Analyze(set model.ListingSet) model.Summary {
	if set.Empty() {
		a.logger.Warn("no data to analyze")
		return model.Summary{}
	}

	summary, err := a.compute(set)
	if err != nil {
		a.logger.Error("analysis error", "err", err, "rows", set.Len())
		return model.Summary{}
	}

	a.logger.Info("analysis complete", "rows", set.Len(), "metrics", summary.Len())
	return summary
}

// compute builds the metric list. Absent values are skipped.
func (a *Analyzer) compute(set model.ListingSet) (model.Summary, error) {
	listings := set.Listings()

	prices := make([]decimal.Decimal, 0, len(listings))
	for _, l := range listings {
		if l.Price.Valid {
			prices = append(prices, l.Price.Decimal)
		}
	}
	if len(prices) == 0 {
		return model.Summary{}, model.AnalysisError("analyze price", errNoPrice)
	}

	hi, lo := -1, -1
	for i, l := range listings {
		if !l.PercentChange24h.Valid {
			continue
		}
		if hi < 0 || l.PercentChange24h.Decimal.GreaterThan(listings[hi].PercentChange24h.Decimal) {
			hi = i
		}
		if lo < 0 || l.PercentChange24h.Decimal.LessThan(listings[lo].PercentChange24h.Decimal) {
			lo = i
		}
	}
	if hi < 0 {
		return model.Summary{}, model.AnalysisError("analyze change", errNoChange)
	}

	metrics := []model.Metric{
		{Name: model.MetricTopByMarketCap, Value: TopByMarketCap(listings, TopN)},
		{Name: model.MetricAveragePrice, Value: a.round(Mean(prices))},
		{Name: model.MetricHighestChange, Value: listings[hi].Name.String},
		{Name: model.MetricLowestChange, Value: listings[lo].Name.String},
		{Name: model.MetricHighestChangeValue, Value: a.round(listings[hi].PercentChange24h.Decimal)},
		{Name: model.MetricLowestChangeValue, Value: a.round(listings[lo].PercentChange24h.Decimal)},
	}

	if a.cfg.Variant == VariantExtended {
		total := decimal.Zero
		for _, l := range listings {
			if l.MarketCap.Valid {
				total = total.Add(l.MarketCap.Decimal)
			}
		}
		metrics = append(metrics,
			model.Metric{Name: model.MetricMedianPrice, Value: a.round(Median(prices))},
			model.Metric{Name: model.MetricTotalCount, Value: len(listings)},
			model.Metric{Name: model.MetricTotalMarketCap, Value: a.round(total)},
		)
	}

	return model.NewSummary(metrics...), nil
}

func (a *Analyzer) round(d decimal.Decimal) decimal.Decimal {
	if a.cfg.Rounding == RoundingNone {
		return d
	}
	return d.Round(a.cfg.Precision)
}

// TopByMarketCap returns up to n names ordered by market cap descending.
// Listings without a market cap are excluded; ties keep input order.
func TopByMarketCap(listings []model.Listing, n int) []string {
	ranked := make([]model.Listing, 0, len(listings))
	for _, l := range listings {
		if l.MarketCap.Valid {
			ranked = append(ranked, l)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MarketCap.Decimal.GreaterThan(ranked[j].MarketCap.Decimal)
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}

	names := make([]string, len(ranked))
	for i, l := range ranked {
		names[i] = l.Name.String
	}
	return names
}

// Mean returns the arithmetic mean. values must be non-empty.
func Mean(values []decimal.Decimal) decimal.Decimal {
	return decimal.Sum(values[0], values[1:]...).Div(decimal.NewFromInt(int64(len(values))))
}

// Median returns the median. values must be non-empty; it is not modified.
func Median(values []decimal.Decimal) decimal.Decimal {
	sorted := make([]decimal.Decimal, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2))
}
