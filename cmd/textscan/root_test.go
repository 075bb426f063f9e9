package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args and stdin, returning its output.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestNewRootCmd_HasExpectedSubcommands(t *testing.T) {
	root := NewRootCmd()
	var names []string
	for _, sub := range root.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"sentences", "count-tokens", "tokens", "split-tokens"} {
		assert.Contains(t, names, want)
	}
}

func TestNewRootCmd_Flags(t *testing.T) {
	root := NewRootCmd()
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.PersistentFlags().Lookup("tokens-drop-punct"))
	assert.NotNil(t, root.PersistentFlags().Lookup("v"), "klog verbosity flag")
}

func TestSentences(t *testing.T) {
	out, err := run(t, "", "sentences", "Dr. Smith left. He returned.", "NA", "")
	require.NoError(t, err)
	assert.Equal(t, "1\t3\n2\tNA\n3\t0\n", out)

	out, err = run(t, "", "sentences", "--sentences-suppress=Dr.", "Dr. Smith left. He returned.")
	require.NoError(t, err)
	assert.Equal(t, "1\t2\n", out)
}

func TestSentencesSplit(t *testing.T) {
	out, err := run(t, "", "sentences", "--split", "--sentences-abbreviations=english",
		"Dr. Smith left. He returned.")
	require.NoError(t, err)
	assert.Equal(t, "1\t\"Dr. Smith left. \" \"He returned.\"\n", out)
}

func TestSentencesSplitSize(t *testing.T) {
	out, err := run(t, "", "sentences", "--split", "--size=2", "One. Two. Three.")
	require.NoError(t, err)
	assert.Equal(t, "1\t\"One. Two. \" \"Three.\"\n", out)
}

func TestSplitTokens(t *testing.T) {
	out, err := run(t, "", "split-tokens", "--size=2", "--tokens-drop-punct", "Hi, you. Ok", "NA")
	require.NoError(t, err)
	assert.Equal(t, "1\t\"Hi, you. \" \"Ok\"\n2\tNA\n", out)

	_, err = run(t, "", "split-tokens", "--size=0", "a")
	require.Error(t, err)
}

func TestSentencesFromStdin(t *testing.T) {
	out, err := run(t, "One. Two.\r\nNA\n\nHi.\n", "sentences")
	require.NoError(t, err)
	assert.Equal(t, "1\t2\n2\tNA\n3\t0\n4\t1\n", out)
}

func TestCountTokens(t *testing.T) {
	out, err := run(t, "", "count-tokens", "--tokens-stopwords=english", "the cat", "-")
	require.NoError(t, err)
	assert.Equal(t, "1\t1\n2\t1\n", out)

	out, err = run(t, "", "count-tokens", "--input-missing=-", "the cat", "-")
	require.NoError(t, err)
	assert.Equal(t, "1\t2\n2\t-\n", out)
}

func TestTokens(t *testing.T) {
	out, err := run(t, "", "tokens", "--tokens-drop-punct", "The cat, the hat.", "NA")
	require.NoError(t, err)
	assert.Equal(t, "1\tthe cat _ the hat _\n2\tNA\n", out)
}

func TestScanFailureReportsKind(t *testing.T) {
	_, err := run(t, "", "tokens", "--tokens-max-terms=1", "a b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "allocation failure")
}

func TestInvalidInput(t *testing.T) {
	_, err := run(t, "", "count-tokens", "ok", string([]byte{'x', 0xfe}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "argument 2")

	_, err = run(t, "fine\n\xff\n", "sentences")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input line 2")
}

func TestUnknownLexiconLanguage(t *testing.T) {
	_, err := run(t, "", "count-tokens", "--tokens-stopwords=klingon", "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "klingon")
}
