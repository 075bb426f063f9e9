package text

import (
	"github.com/pkg/errors"
)

// Error kinds that abort a batch call. Errors returned by the scanners and drivers wrap one
// of these, use errors.Is or KindOf to classify them.
var (
	// ErrAllocation is the cause of failures growing a buffer or table, or initializing a scanner.
	ErrAllocation = errors.New("allocation failure")

	// ErrScanInvariant is the cause of failures reported by a scanner after it stopped, such as
	// malformed UTF-8 reaching a low-level scan step.
	ErrScanInvariant = errors.New("scan invariant violation")
)

// Kind classifies an error returned by a batch call.
type Kind int

const (
	KindNone Kind = iota
	KindAllocation
	KindScanInvariant
	KindOther
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindAllocation:
		return "allocation"
	case KindScanInvariant:
		return "scan-invariant"
	default:
		return "other"
	}
}

// KindOf returns the Kind of err: KindNone for nil, KindOther if it wraps neither kind.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrAllocation):
		return KindAllocation
	case errors.Is(err, ErrScanInvariant):
		return KindScanInvariant
	default:
		return KindOther
	}
}
