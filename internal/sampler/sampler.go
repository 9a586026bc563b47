// Package sampler builds class-balanced daily batches from per-source
// headline lists.
package sampler

import (
	"log/slog"
	"math/rand"
	"sort"

	"github.com/rowanhq/headliner/internal/types"
)

// Sampler draws equal-sized random samples from two source lists. It owns
// its random source so runs can be made deterministic in tests.
type Sampler struct {
	rng    *rand.Rand
	logger *slog.Logger
}

// New creates a sampler seeded from the given source.
func New(rng *rand.Rand, logger *slog.Logger) *Sampler {
	return &Sampler{
		rng:    rng,
		logger: logger.With("component", "sampler"),
	}
}

// Balance samples n = min(len(a), len(b)) headlines from each list without
// replacement and tags them with their source and the collection date.
// Each sample preserves the encounter order of its input list. If either
// list is empty the batch is empty: balance is both-or-neither.
func (s *Sampler) Balance(a, b []string, srcA, srcB types.Source, date string) types.Batch {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		s.logger.Warn("empty source list, producing empty batch",
			"source_a", srcA, "count_a", len(a),
			"source_b", srcB, "count_b", len(b),
		)
		return nil
	}

	batch := make(types.Batch, 0, 2*n)
	for _, h := range s.sample(a, n) {
		batch = append(batch, types.HeadlineRecord{Text: h, Source: srcA, CollectionDate: date})
	}
	for _, h := range s.sample(b, n) {
		batch = append(batch, types.HeadlineRecord{Text: h, Source: srcB, CollectionDate: date})
	}

	s.logger.Info("balanced batch assembled",
		"per_source", n,
		"batch_size", len(batch),
	)
	return batch
}

// sample picks n distinct indices uniformly and returns the corresponding
// elements in their original order.
func (s *Sampler) sample(list []string, n int) []string {
	if n >= len(list) {
		out := make([]string, len(list))
		copy(out, list)
		return out
	}

	idx := s.rng.Perm(len(list))[:n]
	sort.Ints(idx)

	out := make([]string, 0, n)
	for _, i := range idx {
		out = append(out, list[i])
	}
	return out
}
