package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gomlx/go-textscan/sentfilter"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBinder wraps a pflag.FlagSet to satisfy the flagBinder interface.
type fakeBinder struct {
	fs *pflag.FlagSet
}

func (f *fakeBinder) Flags() *pflag.FlagSet { return f.fs }

// parsedBinder registers all config flags at their defaults and parses args.
func parsedBinder(t *testing.T, defaults Config, args ...string) *fakeBinder {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, defaults)
	require.NoError(t, fs.Parse(args))
	return &fakeBinder{fs: fs}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.Sentences.CRLFBreak)
	assert.True(t, cfg.Tokens.MapCase)
	assert.True(t, cfg.Tokens.MapCompat)
	assert.True(t, cfg.Tokens.MapQuote)
	assert.True(t, cfg.Tokens.RemoveIgnorable)
	assert.False(t, cfg.Tokens.StripAccents)
	assert.False(t, cfg.Tokens.DropPunct)
	assert.Equal(t, "NA", cfg.Input.Missing)
	assert.Zero(t, cfg.Tokens.MaxTerms)
	assert.Zero(t, cfg.Batch.MaxSpanTokens)
}

func TestRegisterFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, DefaultConfig())
	for name := range flagKeys {
		assert.NotNil(t, fs.Lookup(name), "flag --%s", name)
	}
	assert.Equal(t, "NA", fs.Lookup("input-missing").DefValue)
}

func TestLoad_Defaults(t *testing.T) {
	defaults := DefaultConfig()
	cfg, err := Load(LoadOptions{
		Cmd:      parsedBinder(t, defaults),
		Defaults: defaults,
	})
	require.NoError(t, err)
	assert.Equal(t, defaults.Sentences.CRLFBreak, cfg.Sentences.CRLFBreak)
	assert.Equal(t, defaults.Tokens.MapCase, cfg.Tokens.MapCase)
	assert.Equal(t, defaults.Input.Missing, cfg.Input.Missing)
	assert.Empty(t, cfg.Tokens.Drop)
}

func TestLoad_FlagOverride(t *testing.T) {
	defaults := DefaultConfig()
	cfg, err := Load(LoadOptions{
		Cmd: parsedBinder(t, defaults,
			"--sentences-crlf-break=false",
			"--tokens-drop-punct",
			"--tokens-map-case=false",
			"--tokens-drop=the,a",
			"--tokens-max-terms=100",
			"--input-missing=<NA>",
		),
		Defaults: defaults,
	})
	require.NoError(t, err)
	assert.False(t, cfg.Sentences.CRLFBreak)
	assert.True(t, cfg.Tokens.DropPunct)
	assert.False(t, cfg.Tokens.MapCase)
	assert.Equal(t, []string{"the", "a"}, cfg.Tokens.Drop)
	assert.Equal(t, 100, cfg.Tokens.MaxTerms)
	assert.Equal(t, "<NA>", cfg.Input.Missing)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TEXTSCAN_TOKENS_MAX_TERMS", "10")
	t.Setenv("TEXTSCAN_TOKENS_STRIP_ACCENTS", "true")
	t.Setenv("TEXTSCAN_INPUT_MISSING", "-")

	cfg, err := Load(LoadOptions{Defaults: DefaultConfig()})
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Tokens.MaxTerms)
	assert.True(t, cfg.Tokens.StripAccents)
	assert.Equal(t, "-", cfg.Input.Missing)
}

func TestLoad_ConfigFile(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "textscan.yaml")
	content := `
sentences:
  abbreviations: english
tokens:
  drop_punct: true
  stopwords: english
batch:
  max_span_tokens: 50
`
	require.NoError(t, os.WriteFile(cfgFile, []byte(content), 0o644))

	defaults := DefaultConfig()
	cfg, err := Load(LoadOptions{
		Cmd:        parsedBinder(t, defaults, "--tokens-max-terms=7"),
		ConfigFile: cfgFile,
		Defaults:   defaults,
	})
	require.NoError(t, err)
	assert.Equal(t, "english", cfg.Sentences.Abbreviations)
	assert.True(t, cfg.Tokens.DropPunct)
	assert.Equal(t, "english", cfg.Tokens.Stopwords)
	assert.Equal(t, 50, cfg.Batch.MaxSpanTokens)
	assert.Equal(t, 7, cfg.Tokens.MaxTerms)
	assert.True(t, cfg.Tokens.MapCase, "unset keys keep their defaults")
}

func TestLoad_InvalidConfigFile(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "textscan.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("tokens: [unclosed\n"), 0o644))
	_, err := Load(LoadOptions{ConfigFile: cfgFile, Defaults: DefaultConfig()})
	require.Error(t, err)
}

func TestLoad_MissingExplicitConfigFile(t *testing.T) {
	_, err := Load(LoadOptions{
		ConfigFile: filepath.Join(t.TempDir(), "missing.yaml"),
		Defaults:   DefaultConfig(),
	})
	require.Error(t, err)
}

func TestWordFilter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tokens.DropPunct = true
	cfg.Tokens.Drop = []string{"cat"}
	cfg.Tokens.Stopwords = "english"

	wf, err := cfg.WordFilter()
	require.NoError(t, err)
	assert.True(t, wf.MapCase)
	assert.True(t, wf.DropPunct)
	assert.Contains(t, wf.Drop, "cat")
	assert.Contains(t, wf.Drop, "the")
	assert.Nil(t, wf.Select)
	assert.Equal(t, []string{"cat"}, cfg.Tokens.Drop, "configured list is not modified")

	cfg.Tokens.Select = []string{"dog"}
	wf, err = cfg.WordFilter()
	require.NoError(t, err)
	assert.Equal(t, []string{"dog"}, wf.Select)

	cfg.Tokens.Stopwords = "klingon"
	_, err = cfg.WordFilter()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tokens.stopwords")
}

func TestSentenceConfig(t *testing.T) {
	cfg := DefaultConfig()
	sc, err := cfg.SentenceConfig()
	require.NoError(t, err)
	assert.Equal(t, sentfilter.Strict, sc.Mode)
	assert.Nil(t, sc.Suppress)

	cfg.Sentences.CRLFBreak = false
	cfg.Sentences.Suppress = []string{"approx."}
	cfg.Sentences.Abbreviations = "english"
	sc, err = cfg.SentenceConfig()
	require.NoError(t, err)
	assert.Equal(t, sentfilter.SpaceOrCRLF, sc.Mode)
	require.NotNil(t, sc.Suppress)
	assert.Greater(t, sc.Suppress.Len(), 1)
	assert.Equal(t, "approx.", sc.Suppress.Get(0).String())

	cfg.Sentences.Abbreviations = "klingon"
	_, err = cfg.SentenceConfig()
	require.Error(t, err)
}

func TestBatchOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Batch.MaxSpanTokens = 3
	assert.Equal(t, 3, cfg.BatchOptions().MaxSpanTokens)
}
