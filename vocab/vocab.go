// Package vocab implements the incremental vocabulary table: an append-only mapping from
// distinct normalized forms to dense integer identifiers.
//
// Identifiers are assigned densely and monotonically starting at 0. Once assigned, an
// identifier and its form never change, so readers holding an identifier see a stable
// structure while the table keeps growing.
package vocab

import (
	"github.com/gomlx/go-textscan/text"
	"github.com/pkg/errors"
)

// Table is an append-only symbol table. It is not safe for concurrent use: it is owned by a
// single batch call.
type Table struct {
	ids   map[string]int
	forms []string

	// maxTerms caps the table size, 0 means no limit.
	maxTerms int
}

// New creates an empty Table. If maxTerms > 0, growing the table beyond maxTerms entries fails
// with an error wrapping text.ErrAllocation.
func New(maxTerms int) *Table {
	return &Table{
		ids:      make(map[string]int),
		maxTerms: maxTerms,
	}
}

// Intern returns the identifier of form, adding it to the table if it is new.
// The returned bool reports whether a new identifier was assigned.
func (t *Table) Intern(form []byte) (int, bool, error) {
	if id, found := t.ids[string(form)]; found {
		return id, false, nil
	}
	if t.maxTerms > 0 && len(t.forms) >= t.maxTerms {
		return -1, false, errors.Wrapf(text.ErrAllocation,
			"vocabulary full: can't add %q beyond %d terms", form, t.maxTerms)
	}
	id := len(t.forms)
	owned := string(form)
	t.forms = append(t.forms, owned)
	t.ids[owned] = id
	return id, true, nil
}

// Lookup returns the identifier of form, if it is in the table.
func (t *Table) Lookup(form []byte) (int, bool) {
	id, found := t.ids[string(form)]
	return id, found
}

// Form returns the canonical form of identifier id. It panics if id is out of range.
func (t *Table) Form(id int) string {
	return t.forms[id]
}

// Len returns the number of identifiers assigned so far.
func (t *Table) Len() int {
	return len(t.forms)
}

// Forms returns the canonical forms indexed by identifier. The slice must not be modified.
func (t *Table) Forms() []string {
	return t.forms
}
