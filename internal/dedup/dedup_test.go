package dedup

import (
	"strings"
	"testing"
)

func TestCanonicalEquivalence(t *testing.T) {
	cases := []string{
		"Storm Hits Coast ",
		"  Mixed CASE Headline",
		"already canonical",
		"\tTabs and trailing\t",
	}
	for _, s := range cases {
		want := Canonical(strings.ToLower(strings.TrimSpace(s)))
		if got := Canonical(s); got != want {
			t.Errorf("Canonical(%q) = %q, want %q", s, got, want)
		}
	}
}

func TestCanonicalTreatsCaseAndSpaceAsDuplicates(t *testing.T) {
	if Canonical("Storm Hits Coast ") != Canonical("storm hits coast") {
		t.Error("expected case/whitespace variants to share a key")
	}
}

func TestCanonicalKeepsPunctuationDistinct(t *testing.T) {
	if Canonical("storm hits coast") == Canonical("storm hits coast.") {
		t.Error("trailing punctuation must produce a distinct key")
	}
}

func TestSetAddHas(t *testing.T) {
	s := NewSet()
	if !s.Add("Breaking: markets rally") {
		t.Fatal("first Add should report new")
	}
	if s.Add("breaking: markets rally  ") {
		t.Error("canonical duplicate should not be added")
	}
	if !s.Has("BREAKING: Markets Rally") {
		t.Error("Has should match canonical variants")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}
