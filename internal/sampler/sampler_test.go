package sampler

import (
	"log/slog"
	"math/rand"
	"os"
	"testing"

	"github.com/rowanhq/headliner/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func newTestSampler() *Sampler {
	return New(rand.New(rand.NewSource(42)), testLogger)
}

func headlines(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = prefix + string(rune('a'+i))
	}
	return out
}

func TestBalanceEqualCounts(t *testing.T) {
	s := newTestSampler()

	a := headlines("fox ", 10)
	b := headlines("nbc ", 3)
	batch := s.Balance(a, b, types.SourceFoxNews, types.SourceNBC, "2026-08-25")

	if len(batch) != 6 {
		t.Fatalf("batch size = %d, want 6", len(batch))
	}

	counts := map[types.Source]int{}
	for _, rec := range batch {
		counts[rec.Source]++
		if rec.CollectionDate != "2026-08-25" {
			t.Errorf("record date = %q, want 2026-08-25", rec.CollectionDate)
		}
	}
	if counts[types.SourceFoxNews] != 3 || counts[types.SourceNBC] != 3 {
		t.Errorf("per-source counts = %v, want 3 each", counts)
	}
}

func TestBalanceSampleIsSubsetInOrder(t *testing.T) {
	s := newTestSampler()

	a := headlines("fox ", 10)
	b := headlines("nbc ", 3)
	batch := s.Balance(a, b, types.SourceFoxNews, types.SourceNBC, "2026-08-25")

	pos := map[string]int{}
	for i, h := range a {
		pos[h] = i
	}

	last := -1
	for _, rec := range batch[:3] {
		i, ok := pos[rec.Text]
		if !ok {
			t.Fatalf("sampled headline %q not in source list", rec.Text)
		}
		if i <= last {
			t.Errorf("sample out of encounter order at %q", rec.Text)
		}
		last = i
	}
}

func TestBalanceEmptySourceGivesEmptyBatch(t *testing.T) {
	s := newTestSampler()

	batch := s.Balance(headlines("fox ", 5), nil, types.SourceFoxNews, types.SourceNBC, "2026-08-25")
	if len(batch) != 0 {
		t.Errorf("expected empty batch when one source is empty, got %d records", len(batch))
	}

	batch = s.Balance(nil, nil, types.SourceFoxNews, types.SourceNBC, "2026-08-25")
	if len(batch) != 0 {
		t.Errorf("expected empty batch when both sources are empty, got %d records", len(batch))
	}
}

func TestBalanceWholeListWhenCountsMatch(t *testing.T) {
	s := newTestSampler()

	a := headlines("fox ", 4)
	b := headlines("nbc ", 4)
	batch := s.Balance(a, b, types.SourceFoxNews, types.SourceNBC, "2026-08-25")

	if len(batch) != 8 {
		t.Fatalf("batch size = %d, want 8", len(batch))
	}
	for i, h := range a {
		if batch[i].Text != h {
			t.Errorf("batch[%d] = %q, want %q", i, batch[i].Text, h)
		}
	}
}
