package filterpipe_test

import (
	"testing"

	"github.com/lexforge/wdict/internal/filterpipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(t *testing.T, names ...string) []filterpipe.FilterKind {
	t.Helper()
	out := make([]filterpipe.FilterKind, 0, len(names))
	for _, n := range names {
		k, ok := filterpipe.ParseFilterKind(n)
		require.True(t, ok, "unknown filter kind %q", n)
		out = append(out, k)
	}
	return out
}

func TestToLowerTransform(t *testing.T) {
	p := filterpipe.NewPipeline(kinds(t, "to-lower"))
	got, keep := p.Apply("HeLLo")
	assert.True(t, keep)
	assert.Equal(t, "hello", got)
}

func TestAllNumbersRejectsPureDigits(t *testing.T) {
	p := filterpipe.NewPipeline(kinds(t, "all-numbers"))

	_, keep := p.Apply("12345")
	assert.False(t, keep)

	got, keep := p.Apply("abc123")
	assert.True(t, keep)
	assert.Equal(t, "abc123", got)
}

func TestOnlyNumbersKeepsPureDigitsOnly(t *testing.T) {
	p := filterpipe.NewPipeline(kinds(t, "only-numbers"))

	got, keep := p.Apply("12345")
	assert.True(t, keep)
	assert.Equal(t, "12345", got)

	_, keep = p.Apply("abc123")
	assert.False(t, keep)
}

func TestAllVsOnlyDivergeOnEmptyString(t *testing.T) {
	all := filterpipe.NewPipeline(kinds(t, "all-numbers"))
	only := filterpipe.NewPipeline(kinds(t, "only-numbers"))

	_, keepAll := all.Apply("")
	_, keepOnly := only.Apply("")

	assert.False(t, keepAll, "all-numbers rejects the vacuous empty string")
	assert.True(t, keepOnly, "only-numbers keeps the vacuous empty string")
}

func TestAnyVsNoAreExactComplements(t *testing.T) {
	any := filterpipe.NewPipeline(kinds(t, "any-numbers"))
	no := filterpipe.NewPipeline(kinds(t, "no-numbers"))

	words := []string{"", "abc", "abc123", "123"}
	for _, w := range words {
		_, keepAny := any.Apply(w)
		_, keepNo := no.Apply(w)
		assert.Equal(t, keepAny, !keepNo, "word %q: any/no must be exact complements", w)
	}
}

func TestRejectorShortCircuitsRemainingFilters(t *testing.T) {
	p := filterpipe.NewPipeline(kinds(t, "all-numbers", "to-upper"))
	_, keep := p.Apply("777")
	assert.False(t, keep)
}

func TestTransformThenRejectorSeesTransformedWord(t *testing.T) {
	p := filterpipe.NewPipeline(kinds(t, "to-lower", "any-upper"))
	got, keep := p.Apply("HELLO")
	assert.True(t, keep)
	assert.Equal(t, "hello", got)
}

func TestDeunicodeFoldsToASCII(t *testing.T) {
	p := filterpipe.NewPipeline(kinds(t, "deunicode"))
	got, keep := p.Apply("café")
	assert.True(t, keep)
	assert.Equal(t, "cafe", got)
}

func TestDecancerStripsCombiningMarks(t *testing.T) {
	p := filterpipe.NewPipeline(kinds(t, "decancer"))
	got, keep := p.Apply("café")
	assert.True(t, keep)
	assert.Equal(t, "cafe", got)
}

func TestDegenerateCombinationRejectsEverything(t *testing.T) {
	p := filterpipe.NewPipeline(kinds(t, "all-ascii", "no-ascii"))
	for _, w := range []string{"abc", "123", "日本語"} {
		_, keep := p.Apply(w)
		assert.False(t, keep, "word %q should be rejected by the degenerate combination", w)
	}
}

func TestNoneIsIdentity(t *testing.T) {
	p := filterpipe.NewPipeline(kinds(t, "none"))
	got, keep := p.Apply("Unchanged")
	assert.True(t, keep)
	assert.Equal(t, "Unchanged", got)
}
