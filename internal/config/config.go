// Package config loads the textscan command configuration from flags, environment
// (TEXTSCAN_*) and an optional config file, and converts it to the library configurations.
package config

import (
	"strings"

	"github.com/gomlx/go-textscan/batch"
	"github.com/gomlx/go-textscan/lexicon"
	"github.com/gomlx/go-textscan/sentfilter"
	"github.com/gomlx/go-textscan/text"
	"github.com/gomlx/go-textscan/wordfilter"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Sentences SentencesConfig `mapstructure:"sentences"`
	Tokens    TokensConfig    `mapstructure:"tokens"`
	Batch     BatchConfig     `mapstructure:"batch"`
	Input     InputConfig     `mapstructure:"input"`
}

type SentencesConfig struct {
	CRLFBreak     bool     `mapstructure:"crlf_break"`
	Suppress      []string `mapstructure:"suppress"`
	Abbreviations string   `mapstructure:"abbreviations"`
}

type TokensConfig struct {
	MapCase         bool     `mapstructure:"map_case"`
	MapCompat       bool     `mapstructure:"map_compat"`
	MapQuote        bool     `mapstructure:"map_quote"`
	RemoveIgnorable bool     `mapstructure:"remove_ignorable"`
	StripAccents    bool     `mapstructure:"strip_accents"`
	DropLetter      bool     `mapstructure:"drop_letter"`
	DropNumber      bool     `mapstructure:"drop_number"`
	DropPunct       bool     `mapstructure:"drop_punct"`
	DropSymbol      bool     `mapstructure:"drop_symbol"`
	Drop            []string `mapstructure:"drop"`
	DropExcept      []string `mapstructure:"drop_except"`
	Stopwords       string   `mapstructure:"stopwords"`
	Select          []string `mapstructure:"select"`
	MaxTerms        int      `mapstructure:"max_terms"`
}

type BatchConfig struct {
	MaxSpanTokens int `mapstructure:"max_span_tokens"`
}

type InputConfig struct {
	Missing string `mapstructure:"missing"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	wf := wordfilter.DefaultConfig()
	return Config{
		Sentences: SentencesConfig{
			CRLFBreak: true,
		},
		Tokens: TokensConfig{
			MapCase:         wf.MapCase,
			MapCompat:       wf.MapCompat,
			MapQuote:        wf.MapQuote,
			RemoveIgnorable: wf.RemoveIgnorable,
			StripAccents:    wf.StripAccents,
		},
		Input: InputConfig{
			Missing: "NA",
		},
	}
}

// flagKeys maps each flag to the configuration key it sets.
var flagKeys = map[string]string{
	"sentences-crlf-break":    "sentences.crlf_break",
	"sentences-suppress":      "sentences.suppress",
	"sentences-abbreviations": "sentences.abbreviations",
	"tokens-map-case":         "tokens.map_case",
	"tokens-map-compat":       "tokens.map_compat",
	"tokens-map-quote":        "tokens.map_quote",
	"tokens-remove-ignorable": "tokens.remove_ignorable",
	"tokens-strip-accents":    "tokens.strip_accents",
	"tokens-drop-letter":      "tokens.drop_letter",
	"tokens-drop-number":      "tokens.drop_number",
	"tokens-drop-punct":       "tokens.drop_punct",
	"tokens-drop-symbol":      "tokens.drop_symbol",
	"tokens-drop":             "tokens.drop",
	"tokens-drop-except":      "tokens.drop_except",
	"tokens-stopwords":        "tokens.stopwords",
	"tokens-select":           "tokens.select",
	"tokens-max-terms":        "tokens.max_terms",
	"batch-max-span-tokens":   "batch.max_span_tokens",
	"input-missing":           "input.missing",
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.Bool("sentences-crlf-break", defaults.Sentences.CRLFBreak, "Every CR/LF ends a sentence; if false only paragraph separators and punctuation do")
	fs.StringSlice("sentences-suppress", defaults.Sentences.Suppress, "Strings whose trailing context never ends a sentence, e.g. \"Dr.\"")
	fs.String("sentences-abbreviations", defaults.Sentences.Abbreviations, "Add the built-in abbreviation list of this language to the suppressions")
	fs.Bool("tokens-map-case", defaults.Tokens.MapCase, "Apply Unicode case folding")
	fs.Bool("tokens-map-compat", defaults.Tokens.MapCompat, "Apply Unicode compatibility composition (NFKC)")
	fs.Bool("tokens-map-quote", defaults.Tokens.MapQuote, "Map curly and full-width apostrophes to '")
	fs.Bool("tokens-remove-ignorable", defaults.Tokens.RemoveIgnorable, "Remove default-ignorable code points")
	fs.Bool("tokens-strip-accents", defaults.Tokens.StripAccents, "Remove accents")
	fs.Bool("tokens-drop-letter", defaults.Tokens.DropLetter, "Drop words made of letters")
	fs.Bool("tokens-drop-number", defaults.Tokens.DropNumber, "Drop numbers")
	fs.Bool("tokens-drop-punct", defaults.Tokens.DropPunct, "Drop punctuation")
	fs.Bool("tokens-drop-symbol", defaults.Tokens.DropSymbol, "Drop symbols")
	fs.StringSlice("tokens-drop", defaults.Tokens.Drop, "Forms to drop")
	fs.StringSlice("tokens-drop-except", defaults.Tokens.DropExcept, "Forms exempt from every drop rule")
	fs.String("tokens-stopwords", defaults.Tokens.Stopwords, "Drop the built-in stopword list of this language")
	fs.StringSlice("tokens-select", defaults.Tokens.Select, "Fixed vocabulary: report only these forms")
	fs.Int("tokens-max-terms", defaults.Tokens.MaxTerms, "Maximum vocabulary size (0 for no limit)")
	fs.Int("batch-max-span-tokens", defaults.Batch.MaxSpanTokens, "Maximum tokens of one element (0 for no limit)")
	fs.String("input-missing", defaults.Input.Missing, "Input line marking a missing element")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("TEXTSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrap(err, "read config file")
		}
	} else {
		v.SetConfigName("textscan")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, errors.Wrap(err, "read config file")
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("sentences.crlf_break", c.Sentences.CRLFBreak)
	v.SetDefault("sentences.suppress", c.Sentences.Suppress)
	v.SetDefault("sentences.abbreviations", c.Sentences.Abbreviations)
	v.SetDefault("tokens.map_case", c.Tokens.MapCase)
	v.SetDefault("tokens.map_compat", c.Tokens.MapCompat)
	v.SetDefault("tokens.map_quote", c.Tokens.MapQuote)
	v.SetDefault("tokens.remove_ignorable", c.Tokens.RemoveIgnorable)
	v.SetDefault("tokens.strip_accents", c.Tokens.StripAccents)
	v.SetDefault("tokens.drop_letter", c.Tokens.DropLetter)
	v.SetDefault("tokens.drop_number", c.Tokens.DropNumber)
	v.SetDefault("tokens.drop_punct", c.Tokens.DropPunct)
	v.SetDefault("tokens.drop_symbol", c.Tokens.DropSymbol)
	v.SetDefault("tokens.drop", c.Tokens.Drop)
	v.SetDefault("tokens.drop_except", c.Tokens.DropExcept)
	v.SetDefault("tokens.stopwords", c.Tokens.Stopwords)
	v.SetDefault("tokens.select", c.Tokens.Select)
	v.SetDefault("tokens.max_terms", c.Tokens.MaxTerms)
	v.SetDefault("batch.max_span_tokens", c.Batch.MaxSpanTokens)
	v.SetDefault("input.missing", c.Input.Missing)
}

// bindFlags binds every registered config flag of fs to its key. Flags not in fs are skipped.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return errors.Wrapf(err, "bind flag --%s", name)
		}
	}
	return nil
}

// WordFilter returns the token scanner configuration. A stopword language adds its built-in
// list to the dropped forms.
func (c Config) WordFilter() (wordfilter.Config, error) {
	t := c.Tokens
	cfg := wordfilter.Config{
		MapCompat:       t.MapCompat,
		MapCase:         t.MapCase,
		MapQuote:        t.MapQuote,
		RemoveIgnorable: t.RemoveIgnorable,
		StripAccents:    t.StripAccents,
		DropLetter:      t.DropLetter,
		DropNumber:      t.DropNumber,
		DropPunct:       t.DropPunct,
		DropSymbol:      t.DropSymbol,
		Drop:            t.Drop,
		DropExcept:      t.DropExcept,
		MaxTerms:        t.MaxTerms,
	}
	if len(t.Select) > 0 {
		cfg.Select = t.Select
	}
	if t.Stopwords != "" {
		words, err := lexicon.Stopwords(t.Stopwords)
		if err != nil {
			return wordfilter.Config{}, errors.WithMessage(err, "tokens.stopwords")
		}
		cfg.Drop = append(append([]string(nil), t.Drop...), words...)
	}
	return cfg, nil
}

// SentenceConfig returns the sentence drivers configuration. An abbreviations language adds
// its built-in list to the suppressions.
func (c Config) SentenceConfig() (batch.SentenceConfig, error) {
	s := c.Sentences
	cfg := batch.SentenceConfig{Mode: sentfilter.Strict}
	if !s.CRLFBreak {
		cfg.Mode = sentfilter.SpaceOrCRLF
	}
	suppress := s.Suppress
	if s.Abbreviations != "" {
		words, err := lexicon.Abbreviations(s.Abbreviations)
		if err != nil {
			return batch.SentenceConfig{}, errors.WithMessage(err, "sentences.abbreviations")
		}
		suppress = append(append([]string(nil), suppress...), words...)
	}
	if len(suppress) > 0 {
		cfg.Suppress = text.Strings(suppress...)
	}
	return cfg, nil
}

// BatchOptions returns the materializing drivers options.
func (c Config) BatchOptions() batch.Options {
	return batch.Options{MaxSpanTokens: c.Batch.MaxSpanTokens}
}
