// Package text defines the input side of the scanning engine: possibly-missing, borrowed
// UTF-8 byte spans, the Source interface that supplies them, and the error kinds that abort
// a batch call.
package text

import (
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Span is an immutable view over UTF-8 bytes, or a missing (NA) element.
//
// A Span never owns its bytes: they are borrowed from the caller and must not be modified
// while a batch call that received the Span is running. A missing Span is distinct from an
// empty one: Missing().IsMissing() is true, while New(nil) is a present Span of size 0.
type Span struct {
	data    []byte
	present bool
}

// New returns a present Span over b. The bytes are expected to be valid UTF-8 (see Validated).
func New(b []byte) Span {
	return Span{data: b, present: true}
}

// FromString returns a present Span over the bytes of s.
func FromString(s string) Span {
	return Span{data: []byte(s), present: true}
}

// Missing returns the missing (NA) Span.
func Missing() Span {
	return Span{}
}

// Validated is like New, but checks that b is valid UTF-8.
func Validated(b []byte) (Span, error) {
	if !utf8.Valid(b) {
		return Span{}, errors.Errorf("text span of %d bytes is not valid UTF-8", len(b))
	}
	return New(b), nil
}

// IsMissing reports whether the span is the missing (NA) element.
func (s Span) IsMissing() bool {
	return !s.present
}

// Size returns the number of bytes in the span, 0 for a missing span.
func (s Span) Size() int {
	return len(s.data)
}

// Bytes returns the borrowed bytes of the span, nil for a missing span.
func (s Span) Bytes() []byte {
	return s.data
}

// String returns a copy of the span's text, or "NA" if it is missing.
func (s Span) String() string {
	if !s.present {
		return "NA"
	}
	return string(s.data)
}

// Source supplies an ordered sequence of spans. Spans must stay immutable for the duration of
// any batch call reading them.
type Source interface {
	// Len returns the number of elements.
	Len() int

	// Get returns element i, for 0 <= i < Len().
	Get(i int) Span
}

// Spans is a Source backed by a slice.
type Spans []Span

// Compile time assert that Spans implements Source.
var _ Source = Spans(nil)

// Len implements Source.
func (s Spans) Len() int { return len(s) }

// Get implements Source.
func (s Spans) Get(i int) Span { return s[i] }

// Strings returns a Source over the given strings, all present.
func Strings(values ...string) Spans {
	spans := make(Spans, len(values))
	for i, v := range values {
		spans[i] = FromString(v)
	}
	return spans
}
