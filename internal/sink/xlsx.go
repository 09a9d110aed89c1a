package sink

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"
	"sync"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/rickgao/cryptotracker/internal/config"
	"github.com/rickgao/cryptotracker/internal/model"
)

const (
	defaultSheet = "Sheet1" // Created by excelize.NewFile
	maxColWidth  = 255
)

var errClosed = errors.New("sink closed")

// XLSXSink keeps a workbook open for the life of the process and rewrites
// its data and analysis sheets every cycle.
type XLSXSink struct {
	path          string
	dataSheet     string
	analysisSheet string
	logger        *slog.Logger

	mu        sync.Mutex
	file      *excelize.File
	closeOnce sync.Once
	closeErr  error
}

// NewXLSX opens the workbook at cfg.Path, creating it when absent, and
// ensures both sheets exist.
func NewXLSX(cfg config.XLSXConfig, logger *slog.Logger) (*XLSXSink, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenFile(cfg.Path)
	created := false
	if errors.Is(err, fs.ErrNotExist) {
		f = excelize.NewFile()
		created = true
		err = nil
	}
	if err != nil {
		return nil, model.PersistenceError("open workbook", err)
	}

	s := &XLSXSink{
		path:          cfg.Path,
		dataSheet:     cfg.DataSheet,
		analysisSheet: cfg.AnalysisSheet,
		logger:        logger,
		file:          f,
	}

	if err := s.ensureSheets(created); err != nil {
		f.Close()
		return nil, model.PersistenceError("prepare workbook", err)
	}

	logger.Info("workbook opened", "path", cfg.Path, "created", created)
	return s, nil
}

// Name returns "xlsx".
func (s *XLSXSink) Name() string { return config.SinkXLSX }

func (s *XLSXSink) ensureSheets(created bool) error {
	for _, name := range []string{s.dataSheet, s.analysisSheet} {
		idx, err := s.file.GetSheetIndex(name)
		if err != nil {
			return fmt.Errorf("sheet %q: %w", name, err)
		}
		if idx >= 0 {
			continue
		}
		if _, err := s.file.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %q: %w", name, err)
		}
	}

	if created && defaultSheet != s.dataSheet && defaultSheet != s.analysisSheet {
		if err := s.file.DeleteSheet(defaultSheet); err != nil {
			return fmt.Errorf("delete sheet %q: %w", defaultSheet, err)
		}
	}

	idx, err := s.file.GetSheetIndex(s.dataSheet)
	if err != nil {
		return err
	}
	s.file.SetActiveSheet(idx)
	return nil
}

// Write clears and rewrites both sheets, then saves the workbook.
func (s *XLSXSink) Write(ctx context.Context, set model.ListingSet, summary model.Summary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return model.PersistenceError("write workbook", errClosed)
	}

	if err := s.writeData(set); err != nil {
		return model.PersistenceError("write data sheet", err)
	}
	if err := s.writeAnalysis(summary); err != nil {
		return model.PersistenceError("write analysis sheet", err)
	}
	if err := s.file.SaveAs(s.path); err != nil {
		return model.PersistenceError("save workbook", err)
	}

	s.logger.Info("data successfully updated in workbook",
		"path", s.path,
		"rows", set.Len(),
		"metrics", summary.Len(),
		"cycle_id", model.CycleID(ctx),
	)
	return nil
}

func (s *XLSXSink) writeData(set model.ListingSet) error {
	rows := make([][]any, 0, set.Len()+1)
	rows = append(rows, stringsToAny(model.Columns))
	for i := 0; i < set.Len(); i++ {
		l := set.At(i)
		rows = append(rows, []any{
			nullStringCell(l.Name.String, l.Name.Valid),
			nullStringCell(l.Symbol.String, l.Symbol.Valid),
			decimalCell(l.Price.Decimal, l.Price.Valid),
			decimalCell(l.MarketCap.Decimal, l.MarketCap.Valid),
			decimalCell(l.Volume24h.Decimal, l.Volume24h.Valid),
			decimalCell(l.PercentChange24h.Decimal, l.PercentChange24h.Valid),
		})
	}
	return s.replaceSheet(s.dataSheet, rows)
}

func (s *XLSXSink) writeAnalysis(summary model.Summary) error {
	rows := make([][]any, 0, summary.Len()+1)
	rows = append(rows, []any{"Metric", "Value"})
	for _, m := range summary.Metrics() {
		rows = append(rows, []any{m.Name, metricCell(m.Value)})
	}
	return s.replaceSheet(s.analysisSheet, rows)
}

// replaceSheet clears sheet, writes rows from A1 and sizes columns to fit.
func (s *XLSXSink) replaceSheet(sheet string, rows [][]any) error {
	existing, err := s.file.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	for r := len(existing); r >= 1; r-- {
		if err := s.file.RemoveRow(sheet, r); err != nil {
			return fmt.Errorf("clear sheet %q: %w", sheet, err)
		}
	}

	var widths []int
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := s.file.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
		for c, v := range row {
			if c >= len(widths) {
				widths = append(widths, 0)
			}
			if n := utf8.RuneCountInString(cellText(v)); n > widths[c] {
				widths[c] = n
			}
		}
	}

	for c, w := range widths {
		col, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		if err := s.file.SetColWidth(sheet, col, col, colWidth(w)); err != nil {
			return fmt.Errorf("size column %s: %w", col, err)
		}
	}
	return nil
}

// Close saves and releases the workbook. Only the first call has effect.
func (s *XLSXSink) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		saveErr := s.file.SaveAs(s.path)
		if saveErr != nil {
			saveErr = model.PersistenceError("save workbook", saveErr)
		}
		s.closeErr = errors.Join(saveErr, s.file.Close())
		s.file = nil

		s.logger.Info("workbook closed", "path", s.path, "err", s.closeErr)
	})
	return s.closeErr
}

func colWidth(chars int) float64 {
	w := float64(chars) + 2
	if w > maxColWidth {
		return maxColWidth
	}
	return w
}

func cellText(v any) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return model.FormatValue(v)
}

func stringsToAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// nullStringCell and decimalCell return nil for absent values, which
// excelize writes as an empty cell.
func nullStringCell(s string, valid bool) any {
	if !valid {
		return nil
	}
	return s
}

func decimalCell(d decimal.Decimal, valid bool) any {
	if !valid {
		return nil
	}
	return d.InexactFloat64()
}

func metricCell(v any) any {
	switch val := v.(type) {
	case decimal.Decimal:
		return val.InexactFloat64()
	case int:
		return val
	default:
		return model.FormatValue(v)
	}
}
