package sentfilter

import (
	"testing"

	"github.com/gomlx/go-textscan/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scanAll returns the sentences of s, failing the test on a scan error.
func scanAll(t *testing.T, f *Filter, s string) []string {
	t.Helper()
	require.NoError(t, f.Start(text.FromString(s)))
	var got []string
	for f.Advance() {
		got = append(got, string(f.Current()))
	}
	require.NoError(t, f.Err())
	return got
}

func newFilter(t *testing.T, mode BreakMode, suppress ...string) *Filter {
	t.Helper()
	f := New(mode)
	for _, s := range suppress {
		require.NoError(t, f.Suppress(text.FromString(s)))
	}
	return f
}

func TestSentences(t *testing.T) {
	f := newFilter(t, Strict)
	assert.Equal(t, []string{"Hello world. ", "How are you?"}, scanAll(t, f, "Hello world. How are you?"))
	assert.Equal(t, []string{"One sentence"}, scanAll(t, f, "One sentence"))
}

func TestSuppression(t *testing.T) {
	const input = "Dr. Smith left. He returned."

	plain := newFilter(t, Strict)
	assert.Equal(t, []string{"Dr. ", "Smith left. ", "He returned."}, scanAll(t, plain, input))

	suppressed := newFilter(t, Strict, "Dr.")
	assert.Equal(t, []string{"Dr. Smith left. ", "He returned."}, scanAll(t, suppressed, input))
}

func TestSuppressionRequiresWordStart(t *testing.T) {
	f := newFilter(t, Strict, "Dr.")
	assert.Len(t, scanAll(t, f, "XDr. Smith left."), 2)
	assert.Len(t, scanAll(t, f, "(Dr. Smith left.)"), 1)
}

func TestSuppressionAtEndOfText(t *testing.T) {
	f := newFilter(t, Strict, "Dr.")
	assert.Equal(t, []string{"I saw the Dr. "}, scanAll(t, f, "I saw the Dr. "))
}

func TestSuppressionSkipsMissingAndEmpty(t *testing.T) {
	f := New(Strict)
	require.NoError(t, f.Suppress(text.Missing()))
	require.NoError(t, f.Suppress(text.New(nil)))
	require.NoError(t, f.Suppress(text.FromString("Mr.")))
	require.NoError(t, f.Suppress(text.FromString("Mr.")))
	assert.Equal(t, 1, f.NumSuppressions())
}

func TestSuppressionTrailingSpaceIgnored(t *testing.T) {
	f := newFilter(t, SpaceOrCRLF, "Mr. ", "   ")
	assert.Equal(t, 1, f.NumSuppressions())
	assert.Len(t, scanAll(t, f, "Mr.\r\nSmith left."), 1)

	f = newFilter(t, Strict, "Mr.\t", "Mr.")
	assert.Equal(t, 1, f.NumSuppressions())
	assert.Len(t, scanAll(t, f, "Mr. Smith left."), 1)
}

func TestSuppressAfterStart(t *testing.T) {
	f := New(Strict)
	require.NoError(t, f.Start(text.FromString("a")))
	assert.Error(t, f.Suppress(text.FromString("Mr.")))
}

func TestBreakModes(t *testing.T) {
	tests := []struct {
		name     string
		mode     BreakMode
		suppress []string
		input    string
		want     int
	}{
		{"strict line break", Strict, nil, "Hello\nworld", 2},
		{"soft line break", SpaceOrCRLF, nil, "Hello\nworld", 1},
		{"soft CRLF", SpaceOrCRLF, nil, "Hello\r\nworld", 1},
		{"soft line break after period", SpaceOrCRLF, nil, "Hello.\nWorld.", 2},
		{"strict hard break not suppressed", Strict, []string{"Dr."}, "Dr.\nSmith", 2},
		{"soft break suppressed", SpaceOrCRLF, []string{"Dr."}, "Dr.\nSmith", 1},
		{"paragraph separator", SpaceOrCRLF, nil, "Hello\u2029world", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFilter(t, tt.mode, tt.suppress...)
			assert.Len(t, scanAll(t, f, tt.input), tt.want)
		})
	}
}

func TestCurrentIsOriginalBytes(t *testing.T) {
	f := New(SpaceOrCRLF)
	got := scanAll(t, f, "Line one\ncontinues. Two.")
	assert.Equal(t, []string{"Line one\ncontinues. ", "Two."}, got)
}

func TestOffsets(t *testing.T) {
	f := New(Strict)
	require.NoError(t, f.Start(text.FromString("A b. C d.")))
	require.True(t, f.Advance())
	start, end := f.Offsets()
	assert.Equal(t, 0, start)
	assert.Equal(t, 5, end)
	require.True(t, f.Advance())
	start, end = f.Offsets()
	assert.Equal(t, 5, start)
	assert.Equal(t, 9, end)
	assert.False(t, f.Advance())
}

func TestRestartKeepsSuppressions(t *testing.T) {
	f := newFilter(t, Strict, "Mr.")
	for range 3 {
		assert.Len(t, scanAll(t, f, "Mr. Jones is here. Hi."), 2)
	}
}

func TestInvalidUTF8(t *testing.T) {
	f := New(Strict)
	require.NoError(t, f.Start(text.New([]byte{'a', 0xff, '.'})))
	assert.False(t, f.Advance())
	require.Error(t, f.Err())
	assert.ErrorIs(t, f.Err(), text.ErrScanInvariant)

	// The error is cleared by the next Start.
	require.NoError(t, f.Start(text.FromString("ok")))
	assert.True(t, f.Advance())
	assert.NoError(t, f.Err())
}

func TestStartMissing(t *testing.T) {
	assert.Error(t, New(Strict).Start(text.Missing()))
}
