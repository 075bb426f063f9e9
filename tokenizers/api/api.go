// Package api defines the Tokenizer API shared by the tokenizers under this directory.
package api

// TokenSpan represents the byte span of a token in the original text.
// Start and End are byte offsets (not rune offsets), suitable for slicing
// Go strings directly: originalText[span.Start:span.End].
// Special tokens inserted by a tokenizer have an empty span at the position they mark.
type TokenSpan struct {
	Start int // start byte position (inclusive)
	End   int // end byte position (exclusive)
}

// EncodingResult contains tokens with their spans in the original text.
type EncodingResult struct {
	IDs   []int       // token IDs
	Spans []TokenSpan // byte spans for each token
}

// Tokenizer converts text to "tokens" (integer ids) and back.
//
// Encoding fails if the text is not valid UTF-8, or if the tokenizer's vocabulary is full.
type Tokenizer interface {
	Encode(text string) ([]int, error)
	Decode(ids []int) string

	// SpecialTokenID returns ID for given special token if registered, or an error if not.
	SpecialTokenID(token SpecialToken) (int, error)
}

// TokenizerWithSpans extends Tokenizer with span tracking capability.
type TokenizerWithSpans interface {
	Tokenizer

	// EncodeWithSpans returns tokens along with their byte spans in the original text.
	EncodeWithSpans(text string) (EncodingResult, error)
}

// SpecialToken is an enum of special tokens a tokenizer may insert.
type SpecialToken int

const (
	// TokEndOfSentence follows the last token of each sentence.
	TokEndOfSentence SpecialToken = iota

	// TokUnknown replaces tokens outside a fixed vocabulary.
	TokUnknown
)

func (t SpecialToken) String() string {
	switch t {
	case TokEndOfSentence:
		return "end_of_sentence"
	case TokUnknown:
		return "unknown"
	default:
		return "special_token(?)"
	}
}
