package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopwords(t *testing.T) {
	words, err := Stopwords("english")
	require.NoError(t, err)
	assert.Contains(t, words, "the")
	assert.Contains(t, words, "and")
	assert.NotContains(t, words, "cat")
	for _, w := range words {
		assert.NotEmpty(t, w)
		assert.NotEqual(t, byte('#'), w[0])
	}
}

func TestAbbreviations(t *testing.T) {
	words, err := Abbreviations("English")
	require.NoError(t, err)
	assert.Contains(t, words, "Mr.")
	assert.Contains(t, words, "Dr.")
	assert.Contains(t, words, "e.g.")
}

func TestUnknownLanguage(t *testing.T) {
	_, err := Stopwords("klingon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "english")
}

func TestLanguages(t *testing.T) {
	assert.Equal(t, []string{"english"}, Languages())
}
