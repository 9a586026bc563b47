// Package dedup provides the canonical identity key for headlines and a
// seen-set used by every deduplication stage (within-source extraction,
// batch assembly, dataset merge, report deltas).
package dedup

import "strings"

// Key is the canonical identity of a headline: lowercased and trimmed of
// surrounding whitespace. No other normalization is applied — headlines
// differing only by trailing punctuation are distinct.
type Key string

// Canonical derives the identity key for a headline text.
func Canonical(text string) Key {
	return Key(strings.ToLower(strings.TrimSpace(text)))
}

// Set tracks canonical keys already encountered. It is owned by a single
// stage and passed explicitly; there is no ambient shared state.
type Set struct {
	seen map[Key]struct{}
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{seen: make(map[Key]struct{})}
}

// Add records the headline's canonical key. It returns true if the key was
// not present before, false for a duplicate.
func (s *Set) Add(text string) bool {
	k := Canonical(text)
	if _, ok := s.seen[k]; ok {
		return false
	}
	s.seen[k] = struct{}{}
	return true
}

// Has reports whether the headline's canonical key has been recorded.
func (s *Set) Has(text string) bool {
	_, ok := s.seen[Canonical(text)]
	return ok
}

// Len returns the number of distinct keys recorded.
func (s *Set) Len() int {
	return len(s.seen)
}
