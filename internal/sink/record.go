package sink

import (
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/rickgao/cryptotracker/internal/model"
)

// listingRecord is a Listing flattened for structured targets.
// Nil pointers are absent values; decimals keep their exact text form.
type listingRecord struct {
	Rank             int     `json:"rank"` // 1-based upstream position
	Name             *string `json:"name"`
	Symbol           *string `json:"symbol"`
	Price            *string `json:"price"`
	MarketCap        *string `json:"market_cap"`
	Volume24h        *string `json:"volume_24h"`
	PercentChange24h *string `json:"percent_change_24h"`
}

// metricRecord is a Metric rendered for structured targets.
type metricRecord struct {
	Position int // 1-based display position
	Name     string
	Value    string
}

func toRecords(set model.ListingSet) []listingRecord {
	records := make([]listingRecord, set.Len())
	for i := range records {
		l := set.At(i)
		records[i] = listingRecord{
			Rank:             i + 1,
			Name:             stringPtr(l.Name),
			Symbol:           stringPtr(l.Symbol),
			Price:            decimalPtr(l.Price),
			MarketCap:        decimalPtr(l.MarketCap),
			Volume24h:        decimalPtr(l.Volume24h),
			PercentChange24h: decimalPtr(l.PercentChange24h),
		}
	}
	return records
}

func toMetricRecords(summary model.Summary) []metricRecord {
	metrics := summary.Metrics()
	records := make([]metricRecord, len(metrics))
	for i, m := range metrics {
		records[i] = metricRecord{Position: i + 1, Name: m.Name, Value: m.String()}
	}
	return records
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func decimalPtr(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	v := d.Decimal.String()
	return &v
}
