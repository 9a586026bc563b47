// Package merge implements the three-way keep-first dataset merge.
package merge

import (
	"github.com/rowanhq/headliner/internal/dedup"
	"github.com/rowanhq/headliner/internal/types"
)

// Merge combines the original dataset, the current integrated dataset, and
// today's batch into one dataset. Precedence follows argument order: when
// two records share a canonical key, the one from the earlier list (or
// earlier position within a list) wins, keeping its source and date. The
// inputs are not modified.
func Merge(original, integrated, batch types.Batch) types.Batch {
	seen := dedup.NewSet()
	out := make(types.Batch, 0, len(original)+len(integrated)+len(batch))

	for _, list := range []types.Batch{original, integrated, batch} {
		for _, rec := range list {
			if seen.Add(rec.Text) {
				out = append(out, rec)
			}
		}
	}
	return out
}
