package batch

import (
	"github.com/gomlx/go-textscan/sentfilter"
	"github.com/gomlx/go-textscan/text"
	"github.com/pkg/errors"
)

// SentenceConfig configures the sentence drivers.
type SentenceConfig struct {
	// Mode selects how line breaks are treated.
	Mode sentfilter.BreakMode

	// Suppress holds the break suppressions, e.g. abbreviations. Missing and empty elements
	// are skipped. May be nil.
	Suppress text.Source

	// Size is the number of sentences per chunk in SplitSentences, 0 meaning 1.
	Size int
}

// newSentenceFilter creates the call's sentence filter.
func newSentenceFilter(cfg SentenceConfig) (*sentfilter.Filter, error) {
	f := sentfilter.New(cfg.Mode)
	if cfg.Suppress == nil {
		return f, nil
	}
	for i := range cfg.Suppress.Len() {
		if err := f.Suppress(cfg.Suppress.Get(i)); err != nil {
			return nil, errors.WithMessagef(err, "failed adding break suppression %d to sentence filter", i)
		}
	}
	return f, nil
}

// CountSentences returns the number of sentences of each element of src.
// Sentence text is never materialized.
func CountSentences(src text.Source, cfg SentenceConfig) ([]Count, error) {
	f, err := newSentenceFilter(cfg)
	if err != nil {
		return nil, err
	}
	c := begin("count-sentences", src.Len())
	total := 0
	counts, err := process(src, Count{Missing: true}, Count{}, func(s text.Span) (Count, error) {
		if err := f.Start(s); err != nil {
			return Count{}, err
		}
		n := 0
		for f.Advance() {
			n++
		}
		if err := f.Err(); err != nil {
			return Count{}, err
		}
		total += n
		return Count{N: n}, nil
	})
	c.done(err, ", %d sentences", total)
	return counts, err
}

// SplitSentences splits each element of src into chunks of up to cfg.Size consecutive
// sentences. Each sentence keeps its trailing white space, so the chunks cover the element.
func SplitSentences(src text.Source, cfg SentenceConfig) ([]Chunks, error) {
	size := max(cfg.Size, 1)
	f, err := newSentenceFilter(cfg)
	if err != nil {
		return nil, err
	}
	c := begin("split-sentences", src.Len())
	lists, err := process(src, Chunks{Missing: true}, Chunks{Spans: []text.Span{}},
		func(s text.Span) (Chunks, error) {
			if err := f.Start(s); err != nil {
				return Chunks{}, err
			}
			data := s.Bytes()
			var spans []text.Span
			chunkStart, n := 0, 0
			for f.Advance() {
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
			if n > 0 {
				_, end := f.Offsets()
				spans = append(spans, text.New(data[chunkStart:end]))
			}
			return Chunks{Spans: spans}, nil
		})
	c.done(err, "")
	return lists, err
}
