// Package wordfilter implements the token scanner and normalizer: a stateful cursor over one
// text.Span that produces normalized word occurrences and classifies each into a vocabulary
// identifier or a negative drop sentinel.
//
// Word boundaries come from the Unicode word break rules (UAX #29) provided by
// github.com/clipperhouse/uax29/v2/words; normalization uses golang.org/x/text.
//
// The vocabulary (a vocab.Table) belongs to the Filter and grows across every span scanned
// with it. Callers that mirror the vocabulary detect new identifiers by comparing NTerm before
// and after each Advance:
//
//	nterm := f.NTerm()
//	for {
//		id, ok := f.Advance()
//		if !ok {
//			break
//		}
//		for ; nterm < f.NTerm(); nterm++ {
//			register(nterm, f.Term(nterm))
//		}
//		use(id)
//	}
package wordfilter

import (
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/words"
	"github.com/gomlx/go-textscan/text"
	"github.com/gomlx/go-textscan/vocab"
	"github.com/pkg/errors"
)

// Sentinel term identifiers reported by Advance.
const (
	// TermDropped marks an occurrence removed by a drop rule.
	TermDropped = -1

	// TermExcluded marks a retained occurrence whose form is not in the selected vocabulary.
	TermExcluded = -2

	// TermCounted marks a retained occurrence of a ScanCount filter. It is not a vocabulary
	// identifier.
	TermCounted = 0
)

// classifier maps a normalized form to a term identifier. It is chosen once, when the Filter
// is created.
type classifier interface {
	classify(form []byte) (int, error)
}

// growing interns every form.
type growing struct {
	table *vocab.Table
}

func (c growing) classify(form []byte) (int, error) {
	id, _, err := c.table.Intern(form)
	return id, err
}

// selected looks forms up in a fixed table.
type selected struct {
	table *vocab.Table
}

func (c selected) classify(form []byte) (int, error) {
	if id, found := c.table.Lookup(form); found {
		return id, nil
	}
	return TermExcluded, nil
}

// counting retains forms without recording them.
type counting struct{}

func (counting) classify([]byte) (int, error) {
	return TermCounted, nil
}

// Filter is a stateful token cursor. Create it with New, then for each span call Start and
// Advance until it returns false. Rules and vocabulary persist across Start calls, only the
// scan position is reset.
//
// A Filter is owned by a single goroutine.
type Filter struct {
	scanKind   ScanKind
	rules      dropRules
	norm       *normalizer
	table      *vocab.Table
	classifier classifier

	iter *words.Iterator[[]byte]
	data []byte

	// Current occurrence.
	start, end int
	form       []byte
	wordKind   Kind
	termID     int

	err error
}

type dropRules struct {
	byKind [KindSymbol + 1]bool
	drop   map[string]struct{}
	except map[string]struct{}
}

// dropped reports whether an occurrence of the given kind and normalized form is dropped.
func (r *dropRules) dropped(kind Kind, form []byte) bool {
	if _, found := r.except[string(form)]; found {
		return false
	}
	if r.byKind[kind] {
		return true
	}
	_, found := r.drop[string(form)]
	return found
}

// New creates a Filter with the given rules.
func New(cfg Config) (*Filter, error) {
	f, err := newFilter(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Select == nil {
		f.scanKind = ScanTerms
		f.classifier = growing{table: f.table}
		return f, nil
	}
	if err := f.selectTerms(cfg.Select); err != nil {
		return nil, err
	}
	return f, nil
}

// NewCounting creates a Filter for counting retained occurrences. Unless cfg.Select is set,
// in which case it behaves as New, its kind is ScanCount: nothing is added to the vocabulary,
// so cfg.MaxTerms never fails a scan.
func NewCounting(cfg Config) (*Filter, error) {
	if cfg.Select != nil {
		return New(cfg)
	}
	f, err := newFilter(cfg)
	if err != nil {
		return nil, err
	}
	f.scanKind = ScanCount
	f.classifier = counting{}
	return f, nil
}

// newFilter creates a Filter with the normalization and drop rules of cfg, but no classifier.
func newFilter(cfg Config) (*Filter, error) {
	f := &Filter{
		norm:  newNormalizer(cfg),
		table: vocab.New(cfg.MaxTerms),
		iter:  words.FromBytes(nil),
		rules: dropRules{
			drop:   make(map[string]struct{}, len(cfg.Drop)),
			except: make(map[string]struct{}, len(cfg.DropExcept)),
		},
	}
	f.rules.byKind[KindLetter] = cfg.DropLetter
	f.rules.byKind[KindNumber] = cfg.DropNumber
	f.rules.byKind[KindPunct] = cfg.DropPunct
	f.rules.byKind[KindSymbol] = cfg.DropSymbol

	for _, w := range cfg.Drop {
		form, err := f.norm.applyString(w)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to normalize drop word %q", w)
		}
		f.rules.drop[form] = struct{}{}
	}
	for _, w := range cfg.DropExcept {
		form, err := f.norm.applyString(w)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to normalize drop exception %q", w)
		}
		f.rules.except[form] = struct{}{}
	}
	return f, nil
}

// selectTerms fixes the vocabulary to terms and switches f to ScanSelected.
func (f *Filter) selectTerms(terms []string) error {
	f.scanKind = ScanSelected
	f.classifier = selected{table: f.table}
	for _, w := range terms {
		form, err := f.norm.apply([]byte(w))
		if err != nil {
			return errors.Wrapf(err, "failed to normalize selected term %q", w)
		}
		if len(form) == 0 {
			continue
		}
		if _, _, err := f.table.Intern(form); err != nil {
			return errors.WithMessagef(err, "while selecting %d terms", len(terms))
		}
	}
	return nil
}

// ScanKind returns how the Filter classifies retained occurrences.
func (f *Filter) ScanKind() ScanKind {
	return f.scanKind
}

// Start resets the cursor to the beginning of s. It fails only if s is missing.
//
// Bytes that are not valid UTF-8 don't fail Start: the first Advance returns false and Err
// reports an error wrapping text.ErrScanInvariant.
func (f *Filter) Start(s text.Span) error {
	if s.IsMissing() {
		return errors.New("can't start token scan on a missing span")
	}
	f.err = nil
	f.start, f.end = 0, 0
	f.form = nil
	f.wordKind = KindSpace
	f.termID = TermDropped
	f.data = s.Bytes()
	if !utf8.Valid(f.data) {
		f.err = errors.Wrapf(text.ErrScanInvariant, "token scan: span of %d bytes is not valid UTF-8", len(f.data))
		f.iter.SetText(nil)
		return nil
	}
	f.iter.SetText(f.data)
	return nil
}

// Advance moves to the next non-space occurrence and returns its term identifier: a vocabulary
// identifier (>= 0), TermDropped or TermExcluded, or TermCounted for a ScanCount filter. It
// returns false when the span is exhausted or an error occurred, check Err afterwards.
//
// A call may add identifiers to the vocabulary; the returned identifier may be one of them.
func (f *Filter) Advance() (termID int, ok bool) {
	if f.err != nil {
		return TermDropped, false
	}
	for {
		more, err := f.next()
		if err != nil {
			f.err = err
			return TermDropped, false
		}
		if !more {
			return TermDropped, false
		}
		raw := f.iter.Value()
		kind := classify(raw)
		if kind == KindSpace {
			continue
		}
		form, err := f.norm.apply(raw)
		if err != nil {
			f.err = errors.Wrapf(text.ErrScanInvariant, "failed to normalize %q: %v", raw, err)
			return TermDropped, false
		}
		if len(form) == 0 {
			continue
		}

		f.start, f.end = f.iter.Start(), f.iter.End()
		f.form = form
		f.wordKind = kind
		if f.rules.dropped(kind, form) {
			f.termID = TermDropped
			return f.termID, true
		}
		id, err := f.classifier.classify(form)
		if err != nil {
			f.err = err
			return TermDropped, false
		}
		f.termID = id
		return id, true
	}
}

// next steps the underlying rule provider, which panics on internal inconsistencies.
func (f *Filter) next() (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			err = errors.Wrapf(text.ErrScanInvariant, "word segmentation failed: %v", r)
		}
	}()
	return f.iter.Next(), nil
}

// NTerm returns the current vocabulary size. Identifiers in [0, NTerm()) are valid.
func (f *Filter) NTerm() int {
	return f.table.Len()
}

// Term returns the canonical form of vocabulary identifier id.
func (f *Filter) Term(id int) string {
	return f.table.Form(id)
}

// Reserve adds form to the vocabulary verbatim, without normalization or drop rules, and
// returns its identifier. It is meant for special tokens, forms the scanner never produces
// such as "<unk>", and works with either ScanKind.
func (f *Filter) Reserve(form string) (int, error) {
	id, _, err := f.table.Intern([]byte(form))
	return id, err
}

// Vocabulary returns the Filter's vocabulary table. It must not be modified.
func (f *Filter) Vocabulary() *vocab.Table {
	return f.table
}

// TermID returns the identifier reported by the last successful Advance.
func (f *Filter) TermID() int {
	return f.termID
}

// Current returns the raw bytes of the current occurrence, borrowed from the span.
func (f *Filter) Current() []byte {
	return f.data[f.start:f.end]
}

// Form returns the normalized form of the current occurrence. It is only valid until the next
// call to Advance.
func (f *Filter) Form() []byte {
	return f.form
}

// Offsets returns the byte offsets of the current occurrence in the span.
func (f *Filter) Offsets() (start, end int) {
	return f.start, f.end
}

// WordKind returns the Kind of the current occurrence.
func (f *Filter) WordKind() Kind {
	return f.wordKind
}

// Err returns the error that stopped the scan, if any.
func (f *Filter) Err() error {
	return f.err
}
