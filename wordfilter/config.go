package wordfilter

// Config holds the normalization and classification rules of a Filter. It is a plain value:
// the same Config may be used to build any number of Filters, one per batch call.
type Config struct {
	// MapCompat applies Unicode compatibility composition (NFKC), e.g. "ﬁ" -> "fi".
	MapCompat bool

	// MapCase applies Unicode case folding, e.g. "The" -> "the".
	MapCase bool

	// MapQuote maps curly and full-width apostrophes to "'".
	MapQuote bool

	// RemoveIgnorable removes default-ignorable code points (soft hyphens, zero-width joiners,
	// variation selectors).
	RemoveIgnorable bool

	// StripAccents removes nonspacing marks after canonical decomposition, e.g. "café" -> "cafe".
	StripAccents bool

	// Drop rules by word kind. Dropped occurrences are reported with TermDropped.
	DropLetter, DropNumber, DropPunct, DropSymbol bool

	// Drop lists forms to drop, e.g. stopwords. They are normalized with the rules above.
	Drop []string

	// DropExcept lists forms exempt from every drop rule.
	DropExcept []string

	// Select, if not nil, fixes the vocabulary to the given forms (normalized, duplicates
	// merged) and switches the Filter to ScanSelected.
	Select []string

	// MaxTerms caps the vocabulary size, 0 means no limit.
	MaxTerms int
}

// DefaultConfig returns the default rules: compatibility mapping, case folding, quote
// mapping and removal of ignorable code points. Nothing is dropped.
func DefaultConfig() Config {
	return Config{
		MapCompat:       true,
		MapCase:         true,
		MapQuote:        true,
		RemoveIgnorable: true,
	}
}

// ScanKind selects how retained occurrences are classified into the vocabulary.
type ScanKind int

const (
	// ScanTerms interns every retained form, growing the vocabulary.
	ScanTerms ScanKind = iota

	// ScanSelected looks retained forms up in a fixed vocabulary, reporting TermExcluded for
	// forms not in it.
	ScanSelected

	// ScanCount applies the drop rules only. Retained occurrences are reported with
	// TermCounted and the vocabulary stays empty.
	ScanCount
)

// String implements fmt.Stringer.
func (k ScanKind) String() string {
	switch k {
	case ScanTerms:
		return "terms"
	case ScanSelected:
		return "selected"
	case ScanCount:
		return "count"
	default:
		return "unknown"
	}
}
