package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rowanhq/headliner/internal/types"
)

// CSV column headers. Column order in existing files is not assumed; the
// header row is consulted on every load.
const (
	colHeadline = "headline"
	colSource   = "source"
	colDate     = "collection_date"
)

// CSVStore persists a dataset as a single CSV file with a header row.
type CSVStore struct {
	path        string
	defaultDate string
	logger      *slog.Logger
}

// NewCSVStore creates a CSV-file dataset store. defaultDate fills in the
// collection date for files whose header lacks that column.
func NewCSVStore(path, defaultDate string, logger *slog.Logger) *CSVStore {
	return &CSVStore{
		path:        path,
		defaultDate: defaultDate,
		logger:      logger.With("component", "csv_store", "path", path),
	}
}

func (s *CSVStore) Name() string { return "csv" }

// Load implements Store. Files missing the headline or source column are
// rejected wholesale rather than half-read.
func (s *CSVStore) Load(_ context.Context) (types.Batch, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("dataset file absent, treating as empty")
			return nil, nil
		}
		return nil, &types.StoreError{Backend: s.Name(), Path: s.path, Err: err}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, &types.StoreError{Backend: s.Name(), Path: s.path, Err: fmt.Errorf("read header: %w", err)}
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	headlineIdx, okH := cols[colHeadline]
	sourceIdx, okS := cols[colSource]
	if !okH || !okS {
		return nil, &types.StoreError{
			Backend: s.Name(),
			Path:    s.path,
			Err:     fmt.Errorf("header %v: %w", header, types.ErrMissingColumns),
		}
	}
	dateIdx, okD := cols[colDate]

	var records types.Batch
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &types.StoreError{Backend: s.Name(), Path: s.path, Err: fmt.Errorf("read row: %w", err)}
		}

		if headlineIdx >= len(row) || sourceIdx >= len(row) {
			continue
		}
		text := strings.TrimSpace(row[headlineIdx])
		if text == "" {
			continue
		}

		date := s.defaultDate
		if okD && dateIdx < len(row) && strings.TrimSpace(row[dateIdx]) != "" {
			date = strings.TrimSpace(row[dateIdx])
		}

		records = append(records, types.HeadlineRecord{
			Text:           text,
			Source:         types.Source(strings.TrimSpace(row[sourceIdx])),
			CollectionDate: date,
		})
	}

	s.logger.Debug("dataset loaded", "records", len(records))
	return records, nil
}

// Replace implements Store. The new contents are written to a temp file in
// the same directory and renamed over the target, so a crash mid-write
// leaves the previous dataset intact.
func (s *CSVStore) Replace(_ context.Context, records types.Batch) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &types.StoreError{Backend: s.Name(), Path: s.path, Err: fmt.Errorf("create dataset dir: %w", err)}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return &types.StoreError{Backend: s.Name(), Path: s.path, Err: fmt.Errorf("create temp file: %w", err)}
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	writer := csv.NewWriter(tmp)
	if err := writer.Write([]string{colHeadline, colSource, colDate}); err != nil {
		tmp.Close()
		return &types.StoreError{Backend: s.Name(), Path: s.path, Err: fmt.Errorf("write header: %w", err)}
	}
	for _, rec := range records {
		if err := writer.Write([]string{rec.Text, string(rec.Source), rec.CollectionDate}); err != nil {
			tmp.Close()
			return &types.StoreError{Backend: s.Name(), Path: s.path, Err: fmt.Errorf("write row: %w", err)}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		return &types.StoreError{Backend: s.Name(), Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &types.StoreError{Backend: s.Name(), Path: s.path, Err: err}
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return &types.StoreError{Backend: s.Name(), Path: s.path, Err: fmt.Errorf("swap dataset: %w", err)}
	}

	s.logger.Info("dataset written", "records", len(records))
	return nil
}

func (s *CSVStore) Close() error { return nil }
