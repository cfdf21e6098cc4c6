// Package transcript analyzes interview transcripts of the scoliosis bracing
// study.
package transcript

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

var (
	// "don't" is split as "do n't"
	contractionRegex = regexp.MustCompile(`(?i)([a-z])n't\b`)
	tokenRegex       = regexp.MustCompile(`(?i)n't|'[a-z]+|[\p{L}]+|[0-9]+(?:[.,][0-9]+)*|[^\s\p{L}0-9]`)
	sentenceRegex    = regexp.MustCompile(`[^.!?]+[.!?]*`)
)

func normalizeQuotes(text string) string {
	return strings.NewReplacer("’", "'", "‘", "'").Replace(text)
}

// Words splits text into word and punctuation tokens. Contractions are
// split off their stem ("can't" becomes "ca", "n't").
func Words(text string) []string {
	text = contractionRegex.ReplaceAllString(normalizeQuotes(text), "$1 n't")
	return tokenRegex.FindAllString(text, -1)
}

// Sentences splits text after runs of sentence ending punctuation.
func Sentences(text string) []string {
	var out []string
	for _, s := range sentenceRegex.FindAllString(text, -1) {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// CleanTokens keeps the purely alphabetic tokens.
func CleanTokens(tokens []string) []string {
	var out []string
	for _, tok := range tokens {
		if isAlpha(tok) {
			out = append(out, tok)
		}
	}
	return out
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// RemoveStopwords drops english stop words and interview filler words,
// ignoring case.
func RemoveStopwords(tokens []string) []string {
	var out []string
	for _, tok := range tokens {
		if IsStopword(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

type WordCount struct {
	Word  string
	Count int
}

// TopWords counts the lowercased words of text that are neither stop
// words nor punctuation and returns the `n` most frequent. Ties are
// ordered alphabetically, n <= 0 returns every word.
func TopWords(text string, n int) []WordCount {
	counts := map[string]int{}
	for _, word := range CleanTokens(RemoveStopwords(Words(text))) {
		counts[strings.ToLower(word)]++
	}

	out := make([]WordCount, 0, len(counts))
	for word, count := range counts {
		out = append(out, WordCount{Word: word, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Stem reduces every word to its english snowball stem.
func Stem(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = english.Stem(w, false)
	}
	return out
}
