package batch

import (
	"github.com/gomlx/go-textscan/text"
	"github.com/pkg/errors"
)

// initialCapacity of the growable buffers, which double when full.
const initialCapacity = 256

// Term is the caller-visible representation of one vocabulary entry. It is created once per
// identifier and shared, read-only, by every occurrence that references it.
type Term struct {
	ID   int
	Text string
}

// String implements fmt.Stringer.
func (t *Term) String() string {
	return t.Text
}

// TermSource is the symbol table a Materializer mirrors, usually a *wordfilter.Filter.
type TermSource interface {
	// NTerm returns the number of identifiers assigned so far.
	NTerm() int

	// Term returns the canonical form of identifier id.
	Term(id int) string
}

// Materializer keeps one Term per vocabulary identifier, in identifier order. It owns every
// Term it creates for the duration of a batch call, so the Terms stay valid at least as long
// as any result referencing them.
type Materializer struct {
	source TermSource
	terms  []*Term
}

// NewMaterializer creates a Materializer for source and registers the identifiers source
// already holds.
func NewMaterializer(source TermSource) *Materializer {
	m := &Materializer{
		source: source,
		terms:  make([]*Term, 0, initialCapacity),
	}
	m.Sync()
	return m
}

// Sync registers every identifier in [Len(), source.NTerm()) and returns how many were added.
// It must be called after each scanner step that may add identifiers, before the step's
// identifier is resolved with At.
func (m *Materializer) Sync() int {
	nterm := m.source.NTerm()
	added := 0
	for id := len(m.terms); id < nterm; id++ {
		m.terms = appendDoubling(m.terms, &Term{ID: id, Text: m.source.Term(id)})
		added++
	}
	return added
}

// At returns the Term of identifier id, or nil for a negative (dropped) identifier.
func (m *Materializer) At(id int) *Term {
	if id < 0 {
		return nil
	}
	return m.terms[id]
}

// Len returns the number of registered identifiers.
func (m *Materializer) Len() int {
	return len(m.terms)
}

// Terms returns the registered Terms, indexed by identifier. The slice must not be modified.
func (m *Materializer) Terms() []*Term {
	return m.terms
}

// appendDoubling appends v to s, doubling the capacity when s is full.
func appendDoubling[T any](s []T, v T) []T {
	if len(s) == cap(s) {
		grown := make([]T, len(s), max(2*cap(s), initialCapacity))
		copy(grown, s)
		s = grown
	}
	return append(s, v)
}

// positions is the per-element buffer of term identifiers, reused across the elements of a
// batch call.
type positions struct {
	ids []int

	// limit caps len(ids), 0 means no limit.
	limit int
}

func newPositions(limit int) *positions {
	return &positions{
		ids:   make([]int, 0, initialCapacity),
		limit: limit,
	}
}

func (p *positions) reset() {
	p.ids = p.ids[:0]
}

func (p *positions) add(id int) error {
	if p.limit > 0 && len(p.ids) >= p.limit {
		return errors.Wrapf(text.ErrAllocation, "element has more than %d tokens", p.limit)
	}
	p.ids = appendDoubling(p.ids, id)
	return nil
}
