package wordfilter

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalizer maps raw word bytes to their canonical form. It reuses its output buffer, so a
// returned form is only valid until the next call.
type normalizer struct {
	t   transform.Transformer // nil if no rule is enabled.
	buf []byte
}

func newNormalizer(cfg Config) *normalizer {
	var steps []transform.Transformer
	if cfg.MapCompat {
		steps = append(steps, norm.NFKC)
	}
	if cfg.StripAccents {
		// NFD decomposition then remove combining marks (Mn category).
		steps = append(steps, norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	}
	if cfg.MapCase {
		steps = append(steps, cases.Fold())
	}
	if cfg.MapQuote {
		steps = append(steps, runes.Map(mapQuote))
	}
	if cfg.RemoveIgnorable {
		steps = append(steps, runes.Remove(runes.Predicate(isIgnorable)))
	}

	n := &normalizer{}
	switch len(steps) {
	case 0:
	case 1:
		n.t = steps[0]
	default:
		n.t = transform.Chain(steps...)
	}
	return n
}

// apply returns the normalized form of raw.
func (n *normalizer) apply(raw []byte) ([]byte, error) {
	if n.t == nil {
		return raw, nil
	}
	out, _, err := transform.Append(n.t, n.buf[:0], raw)
	if err != nil {
		return nil, err
	}
	n.buf = out
	return out, nil
}

// applyString normalizes a configuration string, returning a copy.
func (n *normalizer) applyString(s string) (string, error) {
	form, err := n.apply([]byte(s))
	if err != nil {
		return "", err
	}
	return string(form), nil
}

func mapQuote(r rune) rune {
	switch r {
	case '\u2018', '\u2019', '\u201B', '\uFF07':
		return '\''
	}
	return r
}

func isIgnorable(r rune) bool {
	return unicode.In(r, unicode.Other_Default_Ignorable_Code_Point, unicode.Variation_Selector, unicode.Cf)
}

// Kind is the class of a raw word occurrence.
type Kind int

const (
	// KindSpace occurrences (white space, control and format characters only) are ignored:
	// they are never reported by Advance.
	KindSpace Kind = iota
	KindLetter
	KindNumber
	KindPunct
	KindSymbol
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindSpace:
		return "space"
	case KindLetter:
		return "letter"
	case KindNumber:
		return "number"
	case KindPunct:
		return "punct"
	case KindSymbol:
		return "symbol"
	default:
		return "unknown"
	}
}

// classify returns the Kind of a raw word: letter if it has any letter or mark, else number
// if it has any digit, else punctuation, else symbol. Words with nothing but white space,
// control or format characters are KindSpace.
func classify(raw []byte) Kind {
	var number, punct, symbol bool
	for len(raw) > 0 {
		r, size := utf8.DecodeRune(raw)
		raw = raw[size:]
		switch {
		case unicode.IsLetter(r) || unicode.IsMark(r):
			return KindLetter
		case unicode.IsNumber(r):
			number = true
		case isWhitespace(r) || isControl(r) || unicode.Is(unicode.Cf, r):
		case isPunctuation(r):
			punct = true
		default:
			symbol = true
		}
	}
	switch {
	case number:
		return KindNumber
	case punct:
		return KindPunct
	case symbol:
		return KindSymbol
	default:
		return KindSpace
	}
}

func isWhitespace(r rune) bool {
	if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
		return true
	}
	return unicode.IsSpace(r) || unicode.Is(unicode.Zs, r)
}

func isControl(r rune) bool {
	return unicode.IsControl(r)
}

func isPunctuation(r rune) bool {
	return unicode.IsPunct(r)
}
