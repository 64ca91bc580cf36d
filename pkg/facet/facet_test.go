package facet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/texere-dev/edit/internal/texerr"
)

func sumCombine(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

func TestResolveCombinesStaticValues(t *testing.T) {
	f := Define("sum", sumCombine)
	cfg, err := Resolve(Extensions(f.Of(1), f.Of(2), f.Of(3)))
	require.NoError(t, err)
	assert.Equal(t, 6, f.Read(cfg))
}

func TestPrecedenceOrdersContributions(t *testing.T) {
	first := func(xs []string) string {
		if len(xs) == 0 {
			return ""
		}
		return xs[0]
	}
	f := Define("first", first)
	cfg, err := Resolve(Extensions(
		f.Of("default"),
		Prec(PrecHighest, f.Of("override")),
	))
	require.NoError(t, err)
	assert.Equal(t, "override", f.Read(cfg))
}

func TestComputeReadsAnotherFacet(t *testing.T) {
	base := Define("base", sumCombine)
	doubled := Define("doubled", sumCombine)

	cfg, err := Resolve(Extensions(
		base.Of(5),
		doubled.Compute([]Dependency{base}, func(c *Configuration) int {
			return base.Read(c) * 2
		}),
	))
	require.NoError(t, err)
	assert.Equal(t, 10, doubled.Read(cfg))
}

func TestCycleIsReportedAsError(t *testing.T) {
	a := Define("a", sumCombine)
	b := Define("b", sumCombine)

	root := Extensions(
		a.Compute([]Dependency{b}, func(c *Configuration) int { return b.Read(c) }),
		b.Compute([]Dependency{a}, func(c *Configuration) int { return a.Read(c) }),
	)
	_, err := Resolve(root)
	require.Error(t, err)
}

func TestCompartmentSwap(t *testing.T) {
	f := Define("val", sumCombine)
	compartment := NewCompartment(f.Of(1))
	cfg, err := Resolve(compartment.Of())
	require.NoError(t, err)
	assert.Equal(t, 1, f.Read(cfg))

	compartment.Reconfigure(f.Of(99))
	cfg, err = Resolve(compartment.Of())
	require.NoError(t, err)
	assert.Equal(t, 99, f.Read(cfg))
}

func TestDuplicateCompartmentIsInvalidInput(t *testing.T) {
	f := Define("val", sumCombine)
	compartment := NewCompartment(f.Of(1))

	_, err := Resolve(Extensions(compartment.Of(), compartment.Of()))
	require.Error(t, err)
	assert.True(t, texerr.Is(err, texerr.KindInvalidInput))
}

func TestCompartmentReconfigurePreservesOtherFacets(t *testing.T) {
	unrelated := Define("unrelated", sumCombine)
	f := Define("val", sumCombine)
	compartment := NewCompartment(f.Of(1))

	cfg, err := Resolve(Extensions(unrelated.Of(7), compartment.Of()))
	require.NoError(t, err)
	assert.Equal(t, 7, unrelated.Read(cfg))
	assert.Equal(t, 1, f.Read(cfg))

	compartment.Reconfigure(f.Of(42))
	flat, err := flattenCompartments(Extensions(unrelated.Of(7), compartment.Of()))
	require.NoError(t, err)
	cfg, err = Resolve(flat)
	require.NoError(t, err)
	assert.Equal(t, 7, unrelated.Read(cfg))
	assert.Equal(t, 42, f.Read(cfg))
}

func TestRecomputeSkipsUnchangedDependency(t *testing.T) {
	// Output is a pointer so the test can assert the exact same value is
	// returned across a recompute, not merely an equal one.
	docLen := Define[int, *int]("docLen", func(xs []int) *int {
		v := 0
		if len(xs) > 0 {
			v = xs[0]
		}
		return &v
	})
	calls := 0
	ext := docLen.Compute([]Dependency{DocDependency}, func(c *Configuration) int {
		calls++
		return c.Host().(int)
	})

	cfg, err := ResolveHost(ext, 5)
	require.NoError(t, err)
	first := docLen.Read(cfg)
	require.Equal(t, 5, *first)
	require.Equal(t, 1, calls)

	next := Recompute(cfg, 5, func(Dependency) bool { return false })
	second := docLen.Read(next)
	assert.Equal(t, 1, calls, "unchanged dependency must not recompute")
	assert.Same(t, first, second)

	next = Recompute(next, 9, func(d Dependency) bool { return d == DocDependency })
	third := docLen.Read(next)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 9, *third)
	assert.NotSame(t, first, third)
}
