// Package sentfilter implements a sentence boundary scanner over a single text.Span.
//
// Candidate boundaries come from the Unicode sentence break rules (UAX #29) provided by
// github.com/clipperhouse/uax29/v2/sentences. The Filter adds two policies on top of them:
// the line break mode, and break suppression for strings such as abbreviations ("Mr.") whose
// trailing punctuation must not end a sentence by itself.
//
// Usage:
//
//	f := sentfilter.New(sentfilter.SpaceOrCRLF)
//	_ = f.Suppress(text.FromString("Dr."))
//	_ = f.Start(span)
//	for f.Advance() {
//		fmt.Printf("%q\n", f.Current())
//	}
//	if err := f.Err(); err != nil { ... }
package sentfilter

import (
	"bytes"
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/sentences"
	"github.com/gomlx/go-textscan/text"
	"github.com/pkg/errors"
)

// BreakMode selects how line breaks are treated.
type BreakMode int

const (
	// Strict treats every line break (CR, LF) as the end of a sentence.
	Strict BreakMode = iota

	// SpaceOrCRLF treats CR and LF as spaces: a line break only ends a sentence where a space
	// would. Paragraph and line separators (U+2028, U+2029, U+0085) still break.
	SpaceOrCRLF
)

// String implements fmt.Stringer.
func (m BreakMode) String() string {
	switch m {
	case Strict:
		return "strict"
	case SpaceOrCRLF:
		return "space-or-crlf"
	default:
		return "unknown"
	}
}

// hardBreaks are the separators after which a break is never suppressed.
const hardBreaks = "\r\n\u0085\u2028\u2029"

// Filter is a stateful sentence cursor. Configure it with New and Suppress, then for each
// span call Start and Advance until it returns false. The suppression set and break mode
// persist across Start calls, only the scan position is reset.
//
// A Filter is owned by a single goroutine.
type Filter struct {
	mode BreakMode

	suppress map[string]struct{}
	lengths  []int // Distinct suppression lengths in bytes, ascending.

	iter    *sentences.Iterator[[]byte]
	data    []byte // Span bytes.
	buf     []byte // Bytes being scanned: data, or scratch in SpaceOrCRLF mode.
	scratch []byte

	start, end int
	scanning   bool
	err        error
}

// New creates a Filter with the given break mode and an empty suppression set.
func New(mode BreakMode) *Filter {
	return &Filter{
		mode:     mode,
		suppress: make(map[string]struct{}),
		iter:     sentences.FromBytes(nil),
	}
}

// Mode returns the break mode the Filter was created with.
func (f *Filter) Mode() BreakMode {
	return f.mode
}

// Suppress adds s to the suppression set. Trailing white space of s is ignored, since
// candidates are matched without theirs. Missing, empty and all-space spans are skipped.
// Suppressions must be added before the first call to Start.
func (f *Filter) Suppress(s text.Span) error {
	if s.IsMissing() || s.Size() == 0 {
		return nil
	}
	if f.scanning {
		return errors.Errorf("can't add break suppression %q after scanning started", s.Bytes())
	}
	if !utf8.Valid(s.Bytes()) {
		return errors.Errorf("break suppression of %d bytes is not valid UTF-8", s.Size())
	}
	trimmed := bytes.TrimRightFunc(s.Bytes(), unicode.IsSpace)
	if len(trimmed) == 0 {
		return nil
	}
	key := string(trimmed)
	if _, found := f.suppress[key]; found {
		return nil
	}
	f.suppress[key] = struct{}{}
	n := len(key)
	idx := sort.SearchInts(f.lengths, n)
	if idx == len(f.lengths) || f.lengths[idx] != n {
		f.lengths = append(f.lengths, 0)
		copy(f.lengths[idx+1:], f.lengths[idx:])
		f.lengths[idx] = n
	}
	return nil
}

// NumSuppressions returns the number of distinct strings in the suppression set.
func (f *Filter) NumSuppressions() int {
	return len(f.suppress)
}

// Start resets the cursor to the beginning of s. It fails only if s is missing.
//
// Bytes that are not valid UTF-8 don't fail Start: the first Advance returns false and Err
// reports an error wrapping text.ErrScanInvariant.
func (f *Filter) Start(s text.Span) error {
	if s.IsMissing() {
		return errors.New("can't start sentence scan on a missing span")
	}
	f.scanning = true
	f.err = nil
	f.start, f.end = 0, 0
	f.data = s.Bytes()
	f.buf = f.data
	if !utf8.Valid(f.data) {
		f.err = errors.Wrapf(text.ErrScanInvariant, "sentence scan: span of %d bytes is not valid UTF-8", len(f.data))
		f.buf = nil
		f.iter.SetText(nil)
		return nil
	}
	if f.mode == SpaceOrCRLF && bytes.ContainsAny(f.data, "\r\n") {
		// Same length as data, so offsets into buf are offsets into data.
		f.scratch = append(f.scratch[:0], f.data...)
		for i, b := range f.scratch {
			if b == '\r' || b == '\n' {
				f.scratch[i] = ' '
			}
		}
		f.buf = f.scratch
	}
	f.iter.SetText(f.buf)
	return nil
}

// Advance moves to the next sentence. It returns false when the span is exhausted or an
// error occurred, check Err afterwards.
func (f *Filter) Advance() bool {
	if f.err != nil {
		return false
	}
	unitStart := -1
	for {
		ok, err := f.next()
		if err != nil {
			f.err = err
			return false
		}
		if !ok {
			return false
		}
		if unitStart < 0 {
			unitStart = f.iter.Start()
		}
		end := f.iter.End()
		if end < len(f.buf) && f.suppressed(unitStart, end) {
			// Merge with the following candidate.
			continue
		}
		f.start, f.end = unitStart, end
		return true
	}
}

// next steps the underlying rule provider, which panics on internal inconsistencies.
func (f *Filter) next() (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			err = errors.Wrapf(text.ErrScanInvariant, "sentence segmentation failed: %v", r)
		}
	}()
	return f.iter.Next(), nil
}

// suppressed reports whether the candidate break after buf[start:end] is suppressed: the
// candidate, without trailing white space, ends with a suppression string that starts at a
// word boundary, and the trailing white space holds no hard break.
func (f *Filter) suppressed(start, end int) bool {
	if len(f.lengths) == 0 {
		return false
	}
	unit := f.buf[start:end]
	trimmed := bytes.TrimRightFunc(unit, unicode.IsSpace)
	if bytes.ContainsAny(unit[len(trimmed):], hardBreaks) {
		return false
	}
	for _, n := range f.lengths {
		if n > len(trimmed) {
			break
		}
		cut := len(trimmed) - n
		if _, found := f.suppress[string(trimmed[cut:])]; !found {
			continue
		}
		if atWordStart(trimmed[:cut]) {
			return true
		}
	}
	return false
}

// atWordStart reports whether a word may start right after prefix.
func atWordStart(prefix []byte) bool {
	if len(prefix) == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRune(prefix)
	return !(unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r))
}

// Current returns the bytes of the current sentence, borrowed from the span, including its
// trailing white space.
func (f *Filter) Current() []byte {
	return f.data[f.start:f.end]
}

// Offsets returns the byte offsets of the current sentence in the span.
func (f *Filter) Offsets() (start, end int) {
	return f.start, f.end
}

// Err returns the error that stopped the scan, if any.
func (f *Filter) Err() error {
	return f.err
}
