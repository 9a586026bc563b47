// Package report computes per-run collection statistics and appends them
// to a cumulative CSV ledger, one row per run.
package report

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rowanhq/headliner/internal/dedup"
	"github.com/rowanhq/headliner/internal/types"
)

// Ledger appends run reports to a CSV file. Rows are never rewritten; the
// file is the run history. The two per-source count columns are named after
// the configured sources so renamed sources keep reporting correctly.
type Ledger struct {
	path    string
	sources [2]types.Source
	logger  *slog.Logger
}

// NewLedger creates a ledger writing to the given path, with per-source
// count columns for the two given sources in order.
func NewLedger(path string, sources [2]types.Source, logger *slog.Logger) *Ledger {
	return &Ledger{
		path:    path,
		sources: sources,
		logger:  logger.With("component", "report_ledger", "path", path),
	}
}

func (l *Ledger) header() []string {
	return []string{
		"date",
		"total_scraped",
		strings.ToLower(string(l.sources[0])) + "_count",
		strings.ToLower(string(l.sources[1])) + "_count",
		"headlines_added",
		"duplicates_skipped",
		"dataset_size_before",
		"dataset_size_after",
	}
}

// Compute derives the run report from the integrated dataset as it stood
// before the merge and the day's batch. A batch record counts as added when
// its canonical key is absent from the prior dataset and from earlier batch
// records; everything else is a skipped duplicate, so added plus skipped
// always equals the batch size, and size-after is size-before plus added.
func Compute(date string, before, batch types.Batch) types.RunReport {
	prior := dedup.NewSet()
	for _, rec := range before {
		prior.Add(rec.Text)
	}

	report := types.RunReport{
		Date:         date,
		TotalScraped: len(batch),
		SourceCounts: map[types.Source]int{},
		SizeBefore:   len(before),
	}
	for _, rec := range batch {
		report.SourceCounts[rec.Source]++
		if prior.Add(rec.Text) {
			report.HeadlinesAdded++
		} else {
			report.DuplicatesSkipped++
		}
	}
	report.SizeAfter = report.SizeBefore + report.HeadlinesAdded
	return report
}

// Append writes one report row, creating the file and header on first use.
func (l *Ledger) Append(report types.RunReport) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return &types.StoreError{Backend: "report", Path: l.path, Err: fmt.Errorf("create report dir: %w", err)}
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &types.StoreError{Backend: "report", Path: l.path, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return &types.StoreError{Backend: "report", Path: l.path, Err: err}
	}

	writer := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := writer.Write(l.header()); err != nil {
			return &types.StoreError{Backend: "report", Path: l.path, Err: fmt.Errorf("write header: %w", err)}
		}
	}

	row := []string{
		report.Date,
		strconv.Itoa(report.TotalScraped),
		strconv.Itoa(report.SourceCounts[l.sources[0]]),
		strconv.Itoa(report.SourceCounts[l.sources[1]]),
		strconv.Itoa(report.HeadlinesAdded),
		strconv.Itoa(report.DuplicatesSkipped),
		strconv.Itoa(report.SizeBefore),
		strconv.Itoa(report.SizeAfter),
	}
	if err := writer.Write(row); err != nil {
		return &types.StoreError{Backend: "report", Path: l.path, Err: fmt.Errorf("write row: %w", err)}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return &types.StoreError{Backend: "report", Path: l.path, Err: err}
	}

	l.logger.Info("run report appended",
		"date", report.Date,
		"added", report.HeadlinesAdded,
		"duplicates", report.DuplicatesSkipped,
		"dataset_size", report.SizeAfter,
	)
	return nil
}
