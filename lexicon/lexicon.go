// Package lexicon provides built-in word lists: stopwords to drop when scanning tokens, and
// abbreviations whose trailing period must not end a sentence.
package lexicon

import (
	"bufio"
	"bytes"
	"embed"
	"io/fs"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

//go:embed data/*.txt
var dataFS embed.FS

const (
	stopwordsPrefix     = "stopwords_"
	abbreviationsPrefix = "abbreviations_"
)

// Stopwords returns the stopword list for the given language, e.g. "english".
func Stopwords(lang string) ([]string, error) {
	return load(stopwordsPrefix, lang)
}

// Abbreviations returns the abbreviation list for the given language, e.g. "english".
func Abbreviations(lang string) ([]string, error) {
	return load(abbreviationsPrefix, lang)
}

// Languages returns the sorted languages for which both lists are available.
func Languages() []string {
	entries, err := fs.ReadDir(dataFS, "data")
	if err != nil {
		return nil
	}
	count := make(map[string]int)
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".txt")
		for _, prefix := range []string{stopwordsPrefix, abbreviationsPrefix} {
			if lang, found := strings.CutPrefix(name, prefix); found {
				count[lang]++
			}
		}
	}
	var langs []string
	for lang, n := range count {
		if n == 2 {
			langs = append(langs, lang)
		}
	}
	sort.Strings(langs)
	return langs
}

// load reads one word per line, skipping blank lines and '#' comments.
func load(prefix, lang string) ([]string, error) {
	name := "data/" + prefix + strings.ToLower(lang) + ".txt"
	content, err := dataFS.ReadFile(name)
	if err != nil {
		return nil, errors.Errorf("no %s list for language %q, available: %v",
			strings.TrimSuffix(prefix, "_"), lang, Languages())
	}
	var words []string
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read %q", name)
	}
	return words, nil
}
