package report

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/rowanhq/headliner/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func batchOf(n int, prefix string, src types.Source) types.Batch {
	out := make(types.Batch, n)
	for i := range out {
		out[i] = types.HeadlineRecord{
			Text:           prefix + " story number " + strings.Repeat("x", i+1),
			Source:         src,
			CollectionDate: "2026-08-25",
		}
	}
	return out
}

func TestComputeArithmetic(t *testing.T) {
	before := batchOf(100, "prior", types.SourceFoxNews)

	batch := batchOf(8, "fox", types.SourceFoxNews)
	batch = append(batch, batchOf(7, "nbc", types.SourceNBC)...)
	// 5 duplicates of records already in the dataset, with case noise.
	for i := 0; i < 5; i++ {
		dup := before[i]
		dup.Text = strings.ToUpper(dup.Text)
		dup.CollectionDate = "2026-08-25"
		batch = append(batch, dup)
	}

	report := Compute("2026-08-25", before, batch)

	if report.TotalScraped != 20 {
		t.Errorf("total = %d, want 20", report.TotalScraped)
	}
	if report.HeadlinesAdded != 15 {
		t.Errorf("added = %d, want 15", report.HeadlinesAdded)
	}
	if report.DuplicatesSkipped != 5 {
		t.Errorf("duplicates = %d, want 5", report.DuplicatesSkipped)
	}
	if report.SizeBefore != 100 || report.SizeAfter != 115 {
		t.Errorf("sizes = %d/%d, want 100/115", report.SizeBefore, report.SizeAfter)
	}
	if report.HeadlinesAdded+report.DuplicatesSkipped != report.TotalScraped {
		t.Error("added + skipped must equal batch size")
	}
	if report.SourceCounts[types.SourceFoxNews] != 13 || report.SourceCounts[types.SourceNBC] != 7 {
		t.Errorf("source counts = %v", report.SourceCounts)
	}
}

func TestComputeEmptyBatch(t *testing.T) {
	before := batchOf(10, "prior", types.SourceNBC)

	report := Compute("2026-08-25", before, nil)
	if report.TotalScraped != 0 || report.HeadlinesAdded != 0 || report.DuplicatesSkipped != 0 {
		t.Errorf("unexpected counts %+v", report)
	}
	if report.SizeAfter != report.SizeBefore {
		t.Errorf("size changed with empty batch: %d -> %d", report.SizeBefore, report.SizeAfter)
	}
}

var defaultSources = [2]types.Source{types.SourceFoxNews, types.SourceNBC}

func TestAppendCreatesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	ledger := NewLedger(path, defaultSources, testLogger)

	first := types.RunReport{
		Date:           "2026-08-24",
		TotalScraped:   10,
		SourceCounts:   map[types.Source]int{types.SourceFoxNews: 5, types.SourceNBC: 5},
		HeadlinesAdded: 10,
		SizeBefore:     0,
		SizeAfter:      10,
	}
	second := types.RunReport{
		Date:              "2026-08-25",
		TotalScraped:      6,
		SourceCounts:      map[types.Source]int{types.SourceFoxNews: 3, types.SourceNBC: 3},
		HeadlinesAdded:    4,
		DuplicatesSkipped: 2,
		SizeBefore:        10,
		SizeAfter:         14,
	}
	if err := ledger.Append(first); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := ledger.Append(second); err != nil {
		t.Fatalf("append: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	wantHeader := []string{
		"date", "total_scraped", "foxnews_count", "nbc_count",
		"headlines_added", "duplicates_skipped", "dataset_size_before", "dataset_size_after",
	}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Errorf("header = %v, want %v", rows[0], wantHeader)
	}
	want := []string{"2026-08-25", "6", "3", "3", "4", "2", "10", "14"}
	if !reflect.DeepEqual(rows[2], want) {
		t.Errorf("second row = %v, want %v", rows[2], want)
	}
}

func TestAppendUsesConfiguredSourceNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	ledger := NewLedger(path, [2]types.Source{"CNN", "BBC"}, testLogger)

	run := types.RunReport{
		Date:           "2026-08-25",
		TotalScraped:   7,
		SourceCounts:   map[types.Source]int{"CNN": 4, "BBC": 3},
		HeadlinesAdded: 7,
		SizeAfter:      7,
	}
	if err := ledger.Append(run); err != nil {
		t.Fatalf("append: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if rows[0][2] != "cnn_count" || rows[0][3] != "bbc_count" {
		t.Errorf("count columns = %v, want cnn_count/bbc_count", rows[0][2:4])
	}
	if rows[1][2] != "4" || rows[1][3] != "3" {
		t.Errorf("counts = %v, want 4 and 3", rows[1][2:4])
	}
}
