// Package wordtok implements api.Tokenizer with whole normalized words as tokens.
//
// Token ids are wordfilter vocabulary identifiers. Unlike a batch call, a Tokenizer keeps its
// vocabulary across Encode calls, so the same word always maps to the same id. Dropped words
// are left out of the encoding.
//
// Special tokens are reserved in the vocabulary when the Tokenizer is created:
// api.TokEndOfSentence ("</s>") if sentence splitting is enabled, and api.TokUnknown ("<unk>")
// if the vocabulary is fixed with wordfilter.Config.Select.
package wordtok

import (
	"strings"
	"sync"

	"github.com/gomlx/go-textscan/sentfilter"
	"github.com/gomlx/go-textscan/text"
	"github.com/gomlx/go-textscan/tokenizers/api"
	"github.com/gomlx/go-textscan/wordfilter"
	"github.com/pkg/errors"
)

// Forms reserved for special tokens. The word scanner splits "<", "/" and ">" into
// separate words, so it never produces them.
const (
	EndOfSentenceForm = "</s>"
	UnknownForm       = "<unk>"
)

// Tokenizer is safe for concurrent use.
type Tokenizer struct {
	mu        sync.Mutex
	words     *wordfilter.Filter
	sentences *sentfilter.Filter
	eosID     int
	unkID     int
}

var _ api.TokenizerWithSpans = (*Tokenizer)(nil)

// New creates a Tokenizer with the given word rules. If sentences is not nil, the Tokenizer
// takes ownership of it and appends api.TokEndOfSentence after each sentence.
func New(cfg wordfilter.Config, sentences *sentfilter.Filter) (*Tokenizer, error) {
	words, err := wordfilter.New(cfg)
	if err != nil {
		return nil, err
	}
	t := &Tokenizer{words: words, sentences: sentences, eosID: -1, unkID: -1}
	if sentences != nil {
		if t.eosID, err = words.Reserve(EndOfSentenceForm); err != nil {
			return nil, errors.WithMessage(err, "failed to reserve end-of-sentence token")
		}
	}
	if words.ScanKind() == wordfilter.ScanSelected {
		if t.unkID, err = words.Reserve(UnknownForm); err != nil {
			return nil, errors.WithMessage(err, "failed to reserve unknown token")
		}
	}
	return t, nil
}

// Encode converts text to a sequence of token IDs.
func (t *Tokenizer) Encode(s string) ([]int, error) {
	res, err := t.EncodeWithSpans(s)
	if err != nil {
		return nil, err
	}
	return res.IDs, nil
}

// EncodeWithSpans converts text to token IDs and their byte spans in s.
func (t *Tokenizer) EncodeWithSpans(s string) (api.EncodingResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var res api.EncodingResult
	span := text.FromString(s)
	if t.sentences == nil {
		if err := t.encodeWords(&res, span, 0); err != nil {
			return api.EncodingResult{}, err
		}
		return res, nil
	}

	if err := t.sentences.Start(span); err != nil {
		return api.EncodingResult{}, err
	}
	for t.sentences.Advance() {
		start, end := t.sentences.Offsets()
		before := len(res.IDs)
		if err := t.encodeWords(&res, text.New(t.sentences.Current()), start); err != nil {
			return api.EncodingResult{}, err
		}
		if len(res.IDs) > before {
			res.IDs = append(res.IDs, t.eosID)
			res.Spans = append(res.Spans, api.TokenSpan{Start: end, End: end})
		}
	}
	if err := t.sentences.Err(); err != nil {
		return api.EncodingResult{}, err
	}
	return res, nil
}

// encodeWords appends the tokens of s, whose first byte is at offset base of the encoded text.
func (t *Tokenizer) encodeWords(res *api.EncodingResult, s text.Span, base int) error {
	if err := t.words.Start(s); err != nil {
		return err
	}
	for {
		id, ok := t.words.Advance()
		if !ok {
			break
		}
		switch {
		case id >= 0:
		case id == wordfilter.TermExcluded:
			id = t.unkID
		default:
			continue
		}
		start, end := t.words.Offsets()
		res.IDs = append(res.IDs, id)
		res.Spans = append(res.Spans, api.TokenSpan{Start: base + start, End: base + end})
	}
	return t.words.Err()
}

// Decode joins the forms of ids with spaces. Unknown ids are skipped.
func (t *Tokenizer) Decode(ids []int) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := t.words.NTerm()
	forms := make([]string, 0, len(ids))
	for _, id := range ids {
		if id >= 0 && id < n {
			forms = append(forms, t.words.Term(id))
		}
	}
	return strings.Join(forms, " ")
}

// SpecialTokenID returns the ID for a given special token.
func (t *Tokenizer) SpecialTokenID(token api.SpecialToken) (int, error) {
	switch token {
	case api.TokEndOfSentence:
		if t.eosID >= 0 {
			return t.eosID, nil
		}
	case api.TokUnknown:
		if t.unkID >= 0 {
			return t.unkID, nil
		}
	}
	return 0, errors.Errorf("special token %s not found", token)
}

// VocabSize returns the current size of the vocabulary, special tokens included.
func (t *Tokenizer) VocabSize() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.words.NTerm()
}
