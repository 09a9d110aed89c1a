package sink

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/rickgao/cryptotracker/internal/config"
	"github.com/rickgao/cryptotracker/internal/model"
)

// AnalysisMarker introduces an analysis block in the CSV file.
const AnalysisMarker = "Analysis Results:"

// TimestampLayout formats the Last Updated line.
const TimestampLayout = "2006-01-02 15:04:05.000000"

// analysisBoundary separates the table from the first analysis block.
var analysisBoundary = []byte("\n" + AnalysisMarker)

// CSVSink writes the listing table to a flat file every cycle.
//
// The table is truncated and rewritten each cycle. When accumulate is set,
// analysis blocks from earlier cycles are kept below the new table, so the
// block history grows by one block per cycle until the file is cleared
// externally.
type CSVSink struct {
	path       string
	accumulate bool
	logger     *slog.Logger
	now        func() time.Time
}

// NewCSV creates a CSVSink.
func NewCSV(cfg config.CSVConfig, logger *slog.Logger) *CSVSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVSink{
		path:       cfg.Path,
		accumulate: cfg.Accumulate(),
		logger:     logger,
		now:        time.Now,
	}
}

// Name returns "csv".
func (s *CSVSink) Name() string { return config.SinkCSV }

// Path returns the output file path.
func (s *CSVSink) Path() string { return s.path }

// Write rewrites the file with set, then appends the summary block and a
// Last Updated line. Nothing is appended for an empty summary.
func (s *CSVSink) Write(ctx context.Context, set model.ListingSet, summary model.Summary) error {
	var history []byte
	if s.accumulate {
		h, err := s.readHistory()
		if err != nil {
			return model.PersistenceError("read csv history", err)
		}
		history = h
	}

	var buf bytes.Buffer
	if err := writeTable(&buf, set); err != nil {
		return model.PersistenceError("encode csv", err)
	}
	buf.Write(history)

	if !summary.Empty() {
		buf.WriteString("\n" + AnalysisMarker + "\n")
		for _, m := range summary.Metrics() {
			fmt.Fprintf(&buf, "%s: %s\n", m.Name, m.String())
		}
		fmt.Fprintf(&buf, "Last Updated: %s\n", s.now().Format(TimestampLayout))
	}

	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return model.PersistenceError("write csv", err)
	}

	s.logger.Info("data successfully updated in csv",
		"path", s.path,
		"rows", set.Len(),
		"metrics", summary.Len(),
		"cycle_id", model.CycleID(ctx),
	)
	return nil
}

// Close is a no-op; the file is not held open between cycles.
func (s *CSVSink) Close() error { return nil }

// readHistory returns the analysis blocks currently in the file, starting at
// the newline before the first marker. A missing file has no history.
func (s *CSVSink) readHistory() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	idx := bytes.Index(data, analysisBoundary)
	if idx < 0 {
		return nil, nil
	}
	return data[idx:], nil
}

func writeTable(buf *bytes.Buffer, set model.ListingSet) error {
	w := csv.NewWriter(buf)
	if err := w.Write(model.Columns); err != nil {
		return err
	}
	for i := 0; i < set.Len(); i++ {
		if err := w.Write(set.At(i).Fields()); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ReadTable parses the header and data rows of a file written by CSVSink,
// ignoring any analysis blocks below the table.
func ReadTable(path string) (header []string, rows [][]string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}

	if idx := bytes.Index(data, analysisBoundary); idx >= 0 {
		data = data[:idx]
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, errors.New("parse csv: missing header")
	}

	return records[0], records[1:], nil
}
