package batch

import (
	"github.com/gomlx/go-textscan/text"
	"github.com/gomlx/go-textscan/wordfilter"
	"github.com/pkg/errors"
)

// CountTokens returns the number of retained tokens of each element of src. Dropped and
// excluded occurrences are not counted. Unless cfg.Select is set, no vocabulary is built, so
// cfg.MaxTerms does not apply.
func CountTokens(src text.Source, cfg wordfilter.Config) ([]Count, error) {
	f, err := wordfilter.NewCounting(cfg)
	if err != nil {
		return nil, err
	}
	c := begin("count-tokens", src.Len())
	total := 0
	counts, err := process(src, Count{Missing: true}, Count{}, func(s text.Span) (Count, error) {
		if err := f.Start(s); err != nil {
			return Count{}, err
		}
		n := 0
		for {
			id, ok := f.Advance()
			if !ok {
				break
			}
			if id >= 0 {
				n++
			}
		}
		if err := f.Err(); err != nil {
			return Count{}, err
		}
		total += n
		return Count{N: n}, nil
	})
	c.done(err, ", %d tokens", total)
	return counts, err
}

// SplitTokens splits each element of src into chunks of up to size retained tokens. A new
// chunk starts at the retained token that would exceed size, so dropped tokens and white
// space stay with the preceding chunk. An element without retained tokens is one chunk.
func SplitTokens(src text.Source, cfg wordfilter.Config, size int) ([]Chunks, error) {
	if size < 1 {
		return nil, errors.Errorf("split size must be positive, got %d", size)
	}
	f, err := wordfilter.NewCounting(cfg)
	if err != nil {
		return nil, err
	}
	c := begin("split-tokens", src.Len())
	lists, err := process(src, Chunks{Missing: true}, Chunks{Spans: []text.Span{}},
		func(s text.Span) (Chunks, error) {
			if err := f.Start(s); err != nil {
				return Chunks{}, err
			}
			data := s.Bytes()
			var spans []text.Span
			chunkStart, n := 0, 0
			for {
				id, ok := f.Advance()
				if !ok {
					break
				}
				if id < 0 {
					continue
				}
				if n == size {
					start, _ := f.Offsets()
					spans = append(spans, text.New(data[chunkStart:start]))
					chunkStart, n = start, 0
				}
				n++
			}
			if err := f.Err(); err != nil {
				return Chunks{}, err
			}
			spans = append(spans, text.New(data[chunkStart:]))
			return Chunks{Spans: spans}, nil
		})
	c.done(err, "")
	return lists, err
}

// TokenList is the result of Tokens for one element: one entry per token position, nil for
// dropped or excluded occurrences.
type TokenList struct {
	Terms   []*Term
	Missing bool
}

// Texts returns the text of each position, with na in place of nil Terms.
func (l TokenList) Texts(na string) []string {
	out := make([]string, len(l.Terms))
	for i, t := range l.Terms {
		if t == nil {
			out[i] = na
		} else {
			out[i] = t.Text
		}
	}
	return out
}

// Tokens extracts the token sequence of each element of src. The vocabulary grows across the
// whole call: equal normalized forms share one *Term, in this element and every other.
func Tokens(src text.Source, cfg wordfilter.Config, opts Options) ([]TokenList, error) {
	f, err := wordfilter.New(cfg)
	if err != nil {
		return nil, err
	}
	m := NewMaterializer(f)
	buf := newPositions(opts.MaxSpanTokens)

	c := begin("tokens", src.Len())
	lists, err := process(src, TokenList{Missing: true}, TokenList{Terms: []*Term{}},
		func(s text.Span) (TokenList, error) {
			if err := f.Start(s); err != nil {
				return TokenList{}, err
			}
			buf.reset()
			for {
				id, ok := f.Advance()
				if !ok {
					break
				}
				// id may reference an identifier introduced by this step.
				m.Sync()
				if err := buf.add(id); err != nil {
					return TokenList{}, err
				}
			}
			if err := f.Err(); err != nil {
				return TokenList{}, err
			}
			terms := make([]*Term, len(buf.ids))
			for i, id := range buf.ids {
				terms[i] = m.At(id)
			}
			return TokenList{Terms: terms}, nil
		})
	c.done(err, ", %d terms", m.Len())
	return lists, err
}
