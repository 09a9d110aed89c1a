package sink

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/rickgao/cryptotracker/internal/config"
	"github.com/rickgao/cryptotracker/internal/model"
)

func testXLSXConfig(t *testing.T) config.XLSXConfig {
	t.Helper()
	return config.XLSXConfig{
		Path:          filepath.Join(t.TempDir(), "crypto_data.xlsx"),
		DataSheet:     "Crypto Data",
		AnalysisSheet: "Analysis",
	}
}

func readSheet(t *testing.T, path, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("GetRows(%q) failed: %v", sheet, err)
	}
	return rows
}

func TestXLSXSink_Write(t *testing.T) {
	cfg := testXLSXConfig(t)
	s, err := NewXLSX(cfg, nil)
	if err != nil {
		t.Fatalf("NewXLSX failed: %v", err)
	}
	defer s.Close()

	if err := s.Write(context.Background(), testSet(), testSummary()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	f, err := excelize.OpenFile(cfg.Path)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	sheets := f.GetSheetList()
	f.Close()
	if !reflect.DeepEqual(sheets, []string{"Crypto Data", "Analysis"}) {
		t.Errorf("sheets = %v, want [Crypto Data Analysis]", sheets)
	}

	data := readSheet(t, cfg.Path, cfg.DataSheet)
	if len(data) != 4 {
		t.Fatalf("data rows = %d, want 4", len(data))
	}
	if !reflect.DeepEqual(data[0], model.Columns) {
		t.Errorf("header = %v, want %v", data[0], model.Columns)
	}
	if data[1][0] != "Bitcoin" || data[1][1] != "BTC" {
		t.Errorf("row 1 = %v, want Bitcoin BTC", data[1])
	}
	if data[3][0] != "Unlisted" {
		t.Errorf("row 3 = %v, want Unlisted", data[3])
	}

	analysis := readSheet(t, cfg.Path, cfg.AnalysisSheet)
	want := [][]string{
		{"Metric", "Value"},
		{model.MetricTopByMarketCap, "Bitcoin, Ethereum, Classic"},
		{model.MetricAveragePrice, "33518.92"},
		{model.MetricTotalCount, "3"},
	}
	if !reflect.DeepEqual(analysis, want) {
		t.Errorf("analysis = %v, want %v", analysis, want)
	}

	// Columns fit the widest cell plus padding.
	widths := []struct {
		sheet string
		col   string
		want  float64
	}{
		{cfg.DataSheet, "A", 19},
		{cfg.AnalysisSheet, "A", colWidth(len(model.MetricTopByMarketCap))},
		{cfg.AnalysisSheet, "B", colWidth(len("Bitcoin, Ethereum, Classic"))},
	}
	f, err = excelize.OpenFile(cfg.Path)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer f.Close()
	for _, w := range widths {
		got, err := f.GetColWidth(w.sheet, w.col)
		if err != nil {
			t.Fatalf("GetColWidth(%q, %s) failed: %v", w.sheet, w.col, err)
		}
		if got != w.want {
			t.Errorf("%s column %s width = %v, want %v", w.sheet, w.col, got, w.want)
		}
	}
}

func TestXLSXSink_RewriteClearsRows(t *testing.T) {
	cfg := testXLSXConfig(t)
	s, err := NewXLSX(cfg, nil)
	if err != nil {
		t.Fatalf("NewXLSX failed: %v", err)
	}
	defer s.Close()

	if err := s.Write(context.Background(), testSet(), testSummary()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := s.Write(context.Background(), model.ListingSet{}, model.Summary{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if rows := readSheet(t, cfg.Path, cfg.DataSheet); len(rows) != 1 {
		t.Errorf("data rows = %d, want header only", len(rows))
	}
	if rows := readSheet(t, cfg.Path, cfg.AnalysisSheet); len(rows) != 1 {
		t.Errorf("analysis rows = %d, want header only", len(rows))
	}
}

func TestXLSXSink_ReopenExisting(t *testing.T) {
	cfg := testXLSXConfig(t)

	s, err := NewXLSX(cfg, nil)
	if err != nil {
		t.Fatalf("NewXLSX failed: %v", err)
	}
	if err := s.Write(context.Background(), testSet(), testSummary()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s, err = NewXLSX(cfg, nil)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()

	if rows := readSheet(t, cfg.Path, cfg.DataSheet); len(rows) != 4 {
		t.Errorf("data rows after reopen = %d, want 4", len(rows))
	}
}

func TestXLSXSink_Close(t *testing.T) {
	cfg := testXLSXConfig(t)
	s, err := NewXLSX(cfg, nil)
	if err != nil {
		t.Fatalf("NewXLSX failed: %v", err)
	}

	// Close without any Write still produces a workbook.
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}
	if rows := readSheet(t, cfg.Path, cfg.DataSheet); len(rows) != 0 {
		t.Errorf("data rows = %d, want 0", len(rows))
	}

	err = s.Write(context.Background(), testSet(), testSummary())
	if !errors.Is(err, model.ErrPersistence) {
		t.Errorf("Write after Close err = %v, want persistence error", err)
	}
}
