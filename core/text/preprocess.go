// Package text turns raw corpus text into normalized tokens.
package text

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Punctuation is the set of characters stripped from both ends of
// every word.
const Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Preprocess splits text on whitespace, strips surrounding
// punctuation, drops words that become empty, and lowercases the
// rest.
func Preprocess(text string) []string {
	return Lower(RemovePunctuation(SplitWords(text)))
}

func SplitWords(text string) []string {
	return strings.Fields(text)
}

// RemovePunctuation strips leading and trailing punctuation.  Words
// that consist only of punctuation are dropped.  Inner punctuation,
// e.g., in "don't" or "@-@", is kept.
func RemovePunctuation(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if s := strings.Trim(w, Punctuation); len(s) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// Lower lowercases words in place using full Unicode case mapping.
func Lower(words []string) []string {
	c := cases.Lower(language.Und) // Casers are stateful; one per call.
	for i, w := range words {
		words[i] = c.String(w)
	}
	return words
}
