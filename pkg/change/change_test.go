package change

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/texere-dev/edit/pkg/text"
)

func TestOfAndApply(t *testing.T) {
	doc := text.New("hello world")
	cs, err := Of([]Spec{{From: 6, To: 11, Insert: "Go"}}, doc.Length(), false)
	require.NoError(t, err)
	got := cs.Apply(doc)
	assert.Equal(t, "hello Go", got.String())
	assert.Equal(t, 11, cs.Length())
	assert.Equal(t, 8, cs.NewLength())
}

func TestOfMultipleSpecsSimultaneous(t *testing.T) {
	doc := text.New("abcdef")
	cs, err := Of([]Spec{
		{From: 0, To: 1, Insert: "X"},
		{From: 4, To: 6, Insert: ""},
	}, doc.Length(), false)
	require.NoError(t, err)
	assert.Equal(t, "Xbcd", cs.Apply(doc).String())
}

func TestOfOverlappingSpecsRejected(t *testing.T) {
	_, err := Of([]Spec{{From: 0, To: 5, Insert: "a"}, {From: 3, To: 6, Insert: "b"}}, 6, false)
	require.Error(t, err)
}

func TestOfSequential(t *testing.T) {
	// First spec inserts 3 chars at the front, second spec's offsets are
	// relative to the document *after* that insertion.
	cs, err := Of([]Spec{
		{From: 0, To: 0, Insert: "abc"},
		{From: 3, To: 3, Insert: "def"},
	}, 0, true)
	require.NoError(t, err)
	assert.Equal(t, "abcdef", cs.Apply(text.Empty).String())
}

func TestInvertRoundTrip(t *testing.T) {
	doc := text.New("hello world")
	cs, err := Of([]Spec{{From: 6, To: 11, Insert: "Go"}}, doc.Length(), false)
	require.NoError(t, err)
	applied := cs.Apply(doc)
	undo := cs.Invert(doc)
	back := undo.Apply(applied)
	assert.Equal(t, doc.String(), back.String())
}

func TestComposeMatchesSequentialApply(t *testing.T) {
	doc := text.New("abcdef")
	cs1, _ := Of([]Spec{{From: 0, To: 1, Insert: "Z"}}, doc.Length(), false)
	mid := cs1.Apply(doc)
	cs2, _ := Of([]Spec{{From: mid.Length() - 1, To: mid.Length(), Insert: "Y"}}, mid.Length(), false)
	composed := cs1.Compose(cs2)
	assert.Equal(t, cs2.Apply(mid).String(), composed.Apply(doc).String())
}

func TestMapPosThroughInsertion(t *testing.T) {
	desc := EmptyDesc(10)
	cs, _ := Of([]Spec{{From: 5, To: 5, Insert: "XYZ"}}, 10, false)
	_ = desc
	assert.Equal(t, 0, cs.MapPos(0, 1, ModeSimple))
	assert.Equal(t, 5, cs.MapPos(5, -1, ModeSimple))
	assert.Equal(t, 8, cs.MapPos(5, 1, ModeSimple))
	assert.Equal(t, 13, cs.MapPos(10, 1, ModeSimple))
}

func TestMapPosThroughDeletion(t *testing.T) {
	cs, _ := Of([]Spec{{From: 2, To: 6, Insert: ""}}, 10, false)
	assert.Equal(t, 2, cs.MapPos(2, -1, ModeSimple))
	assert.Equal(t, 2, cs.MapPos(4, -1, ModeSimple))
	assert.Equal(t, 2, cs.MapPos(4, 1, ModeSimple))
	assert.Equal(t, -3, cs.MapPos(4, 0, ModeTrackDel))
	assert.Equal(t, 6, cs.MapPos(10, 1, ModeSimple))
}

func TestMapDescRebaseSymmetric(t *testing.T) {
	base := 10
	a, _ := Of([]Spec{{From: 2, To: 2, Insert: "AA"}}, base, false)
	b, _ := Of([]Spec{{From: 6, To: 6, Insert: "BB"}}, base, false)

	aPrime := a.MapDesc(b.Desc())
	bPrime := b.MapDesc(a.Desc())

	left := b.Compose(aPrime)
	right := a.Compose(bPrime)
	assert.Equal(t, left.NewLength(), right.NewLength())

	doc := text.New("0123456789")
	assert.Equal(t, left.Apply(doc).String(), right.Apply(doc).String())
}

func TestFromDiffProducesEquivalentEdit(t *testing.T) {
	oldS := "the quick brown fox"
	newS := "the quick red fox"
	cs := FromDiff(oldS, newS)
	assert.Equal(t, newS, cs.Apply(text.New(oldS)).String())
}

func TestEmptyChangeSetIsNoop(t *testing.T) {
	cs := EmptySet(5)
	assert.True(t, cs.Empty())
	doc := text.New("abcde")
	assert.Equal(t, doc.String(), cs.Apply(doc).String())
}

func TestRestrictKeepsProtectedRangesAndAppliesRest(t *testing.T) {
	doc := text.New("onetwo")
	cs, err := Of([]Spec{{From: 0, To: 6, Insert: ""}}, doc.Length(), false)
	require.NoError(t, err)

	restricted, err := Restrict(cs, doc, [][2]int{{0, 2}, {4, 6}})
	require.NoError(t, err)
	assert.Equal(t, "onwo", restricted.Apply(doc).String())
}

func TestRestrictWithNoKeepRangesMatchesOriginal(t *testing.T) {
	doc := text.New("hello")
	cs, err := Of([]Spec{{From: 1, To: 3, Insert: "X"}}, doc.Length(), false)
	require.NoError(t, err)

	restricted, err := Restrict(cs, doc, nil)
	require.NoError(t, err)
	assert.Equal(t, cs.Apply(doc).String(), restricted.Apply(doc).String())
}

func TestEditedRangesReportsEachReplacedSpan(t *testing.T) {
	cs, err := Of([]Spec{{From: 2, To: 4, Insert: "XY"}, {From: 8, To: 8, Insert: "Z"}}, 10, false)
	require.NoError(t, err)

	ranges := cs.Desc().EditedRanges()
	require.Len(t, ranges, 2)
	assert.Equal(t, EditedRange{From: 2, To: 4, InsertedLen: 2}, ranges[0])
	assert.Equal(t, EditedRange{From: 8, To: 8, InsertedLen: 1}, ranges[1])
}

func TestEditedRangesEmptyForNoopChange(t *testing.T) {
	cs := EmptySet(5)
	assert.Empty(t, cs.Desc().EditedRanges())
}
