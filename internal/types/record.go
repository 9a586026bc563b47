package types

// Source identifies which news site a headline came from.
type Source string

const (
	SourceFoxNews Source = "FoxNews"
	SourceNBC     Source = "NBC"
)

// Sentinel collection dates assigned to records loaded from files that
// predate the collection_date column.
const (
	DateOriginal = "initial"
	DateUnknown  = "unknown"
)

// HeadlineRecord is one extracted headline plus its provenance.
// Text is the raw extracted form; canonicalization happens only at
// comparison time, never on the stored value.
type HeadlineRecord struct {
	Text           string
	Source         Source
	CollectionDate string // YYYY-MM-DD or a sentinel above
}

// Batch is the ordered, class-balanced set of records collected in one run,
// before merging into the integrated dataset.
type Batch []HeadlineRecord

// RunReport is one audit row describing what a collection run changed.
type RunReport struct {
	Date              string
	TotalScraped      int
	SourceCounts      map[Source]int
	HeadlinesAdded    int
	DuplicatesSkipped int
	SizeBefore        int
	SizeAfter         int
}
