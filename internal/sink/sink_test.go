package sink

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rickgao/cryptotracker/internal/config"
	"github.com/rickgao/cryptotracker/internal/model"
)

var fetchedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func nd(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func testSet() model.ListingSet {
	return model.NewListingSet("coinmarketcap", fetchedAt, []model.Listing{
		{
			Name:             sql.NullString{String: "Bitcoin", Valid: true},
			Symbol:           sql.NullString{String: "BTC", Valid: true},
			Price:            nd("67012.34"),
			MarketCap:        nd("1320000000000"),
			Volume24h:        nd("28000000000"),
			PercentChange24h: nd("1.25"),
		},
		{
			Name:             sql.NullString{String: "Ethereum, Classic", Valid: true},
			Symbol:           sql.NullString{String: "ETC", Valid: true},
			Price:            nd("25.5"),
			MarketCap:        nd("3700000000"),
			Volume24h:        nd("150000000"),
			PercentChange24h: nd("-3.1"),
		},
		{
			Name:   sql.NullString{String: "Unlisted", Valid: true},
			Symbol: sql.NullString{String: "UNL", Valid: true},
		},
	})
}

func testSummary() model.Summary {
	return model.NewSummary(
		model.Metric{Name: model.MetricTopByMarketCap, Value: []string{"Bitcoin", "Ethereum, Classic"}},
		model.Metric{Name: model.MetricAveragePrice, Value: decimal.RequireFromString("33518.92")},
		model.Metric{Name: model.MetricTotalCount, Value: 3},
	)
}

func TestNew(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		cfg      config.SinkConfig
		wantName string
		wantErr  bool
	}{
		{
			name:     "csv",
			cfg:      config.SinkConfig{Kind: config.SinkCSV, CSV: config.CSVConfig{Path: filepath.Join(dir, "out.csv")}},
			wantName: config.SinkCSV,
		},
		{
			name: "xlsx",
			cfg: config.SinkConfig{Kind: config.SinkXLSX, XLSX: config.XLSXConfig{
				Path:          filepath.Join(dir, "out.xlsx"),
				DataSheet:     "Crypto Data",
				AnalysisSheet: "Analysis",
			}},
			wantName: config.SinkXLSX,
		},
		{
			name:    "unknown",
			cfg:     config.SinkConfig{Kind: "parquet"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(context.Background(), tt.cfg, nil)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			defer s.Close()

			if s.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", s.Name(), tt.wantName)
			}
		})
	}
}
