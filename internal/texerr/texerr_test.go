package texerr

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertMessage compares got against want, rendering a unified diff on
// mismatch instead of testify's default one-line "expected X got Y" — a
// mismatched Error() string is usually a wording tweak in one clause, and
// the diff makes that clause jump out instead of reprinting both full
// strings.
func assertMessage(t *testing.T, want, got string) {
	t.Helper()
	if want == got {
		return
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  1,
	})
	require.NoError(t, err)
	t.Errorf("message mismatch:\n%s", diff)
}

func TestInvalidInputMessage(t *testing.T) {
	err := InvalidInputAt("selection", "position out of range", 12)
	assertMessage(t, "selection: position out of range (invalid input, pos=12)", err.Error())
}

func TestConfigWrapsCause(t *testing.T) {
	cause := fmt.Errorf("cycle: a -> b -> a")
	err := Config("facet", "facet dependency graph has a cycle", cause)
	assertMessage(t, "facet: facet dependency graph has a cycle (configuration error)", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestRunawayFilterMessage(t *testing.T) {
	err := RunawayFilter("indentOnType", 10)
	assert.True(t, strings.Contains(err.Error(), "10 iterations"))
	assert.True(t, Is(err, KindRunawayFilter))
}

func TestIsUnwrapsWrappedErrors(t *testing.T) {
	inner := Config("facet", "bad", nil)
	outer := Parser("syntax", "grammar panicked", inner)
	assert.True(t, Is(outer, KindParser))
	assert.True(t, Is(outer, KindConfig))
	assert.False(t, Is(outer, KindRunawayFilter))
}
