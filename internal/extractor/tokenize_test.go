package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeSplitsOnPunctuation(t *testing.T) {
	assert.Equal(t, []string{"hello", "world"}, tokenize("hello, world!"))
}

func TestTokenizeKeepsInternalApostrophe(t *testing.T) {
	assert.Equal(t, []string{"don't"}, tokenize("don't stop"))
}

func TestTokenizeStripsLeadingTrailingApostrophe(t *testing.T) {
	assert.Equal(t, []string{"quoted"}, tokenize("'quoted'"))
}

func TestTokenizeDiscardsEmptyTokens(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, tokenize("a,,,b"))
}

func TestTokenizeHandlesUnicodeLetters(t *testing.T) {
	assert.Equal(t, []string{"日本語", "café"}, tokenize("日本語 café"))
}

func TestTokenizeEmptyStringYieldsNoWords(t *testing.T) {
	assert.Empty(t, tokenize(""))
}

func TestTokenizeDigitsAreWords(t *testing.T) {
	assert.Equal(t, []string{"abc123"}, tokenize("abc123"))
}
