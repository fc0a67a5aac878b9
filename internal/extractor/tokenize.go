package extractor

import (
	"strings"
	"unicode"
)

// isWordRune reports whether r may appear inside a word candidate. Splits
// happen at any other rune; the tokenizer has no locale dependency.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\''
}

// tokenize splits text into word candidates at Unicode non-letter/
// non-digit/non-apostrophe boundaries, then strips leading/trailing
// apostrophes (the only punctuation isWordRune admits). Empty tokens are
// discarded.
func tokenize(text string) []string {
	var words []string
	start := -1
	runes := []rune(text)

	flush := func(end int) {
		if start < 0 {
			return
		}
		word := strings.Trim(string(runes[start:end]), "'")
		if word != "" {
			words = append(words, word)
		}
		start = -1
	}

	for i, r := range runes {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(runes))

	return words
}
