package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/texere-dev/edit/pkg/change"
	"github.com/texere-dev/edit/pkg/facet"
	"github.com/texere-dev/edit/pkg/selection"
	"github.com/texere-dev/edit/pkg/text"
)

func newTestState(t *testing.T, content string, fields ...Field) *EditorState {
	t.Helper()
	s, err := Create(Config{
		Doc:    text.New(content),
		Fields: fields,
	})
	require.NoError(t, err)
	return s
}

func TestCreateAndUpdateAppliesChanges(t *testing.T) {
	s := newTestState(t, "hello world")
	cs, err := change.Of([]change.Spec{{From: 6, To: 11, Insert: "Go"}}, s.Doc().Length(), false)
	require.NoError(t, err)

	tr, err := s.Update(TransactionSpec{Changes: cs})
	require.NoError(t, err)
	assert.Equal(t, "hello Go", tr.State().Doc().String())
}

func TestChangeFilterCanRejectTransaction(t *testing.T) {
	rejectAll := facet.Prec(facet.PrecDefault, ChangeFilter.Of(func(tr *Transaction) ChangeFilterResult { return RejectChange() }))
	s, err := Create(Config{Doc: text.New("abc"), Extensions: rejectAll})
	require.NoError(t, err)

	cs, _ := change.Of([]change.Spec{{From: 0, To: 1, Insert: "X"}}, 3, false)
	_, err = s.Update(TransactionSpec{Changes: cs})
	require.Error(t, err)
}

func TestChangeFilterSkippedWhenOptedOut(t *testing.T) {
	rejectAll := ChangeFilter.Of(func(tr *Transaction) ChangeFilterResult { return RejectChange() })
	s, err := Create(Config{Doc: text.New("abc"), Extensions: rejectAll})
	require.NoError(t, err)

	cs, _ := change.Of([]change.Spec{{From: 0, To: 1, Insert: "X"}}, 3, false)
	tr, err := s.Update(TransactionSpec{Changes: cs, SkipChangeFilter: true})
	require.NoError(t, err)
	assert.Equal(t, "Xbc", tr.State().Doc().String())
}

// Scenario: doc="onetwo", a changeFilter answers AllowRanges(0,2,4,6) —
// protecting "on" and "wo" — for a transaction that replaces the whole
// document. Only the gap between those ranges, "et", is actually
// removed.
func TestChangeFilterAllowRangesExcisesGap(t *testing.T) {
	protectEnds := ChangeFilter.Of(func(tr *Transaction) ChangeFilterResult {
		return AllowRanges(0, 2, 4, 6)
	})
	s, err := Create(Config{Doc: text.New("onetwo"), Extensions: protectEnds})
	require.NoError(t, err)

	cs, _ := change.Of([]change.Spec{{From: 0, To: 6, Insert: ""}}, 6, false)
	tr, err := s.Update(TransactionSpec{Changes: cs})
	require.NoError(t, err)
	assert.Equal(t, "onwo", tr.State().Doc().String())
}

// Scenario: allowMultipleSelections defaults to false. Three cursors
// collapse down to the main one before the transaction commits.
func TestDefaultDisallowsMultipleSelections(t *testing.T) {
	s, err := Create(Config{
		Doc: text.New("abcdefgh"),
		Selection: selection.New([]selection.Range{
			selection.Cursor(0), selection.Cursor(4), selection.Cursor(8),
		}, 1),
	})
	require.NoError(t, err)

	tr, err := s.Update(TransactionSpec{})
	require.NoError(t, err)
	assert.Equal(t, 1, tr.State().Selection().Len())
	assert.Equal(t, selection.Cursor(4), tr.State().Selection().Main())
}

// Scenario: allowMultipleSelections=true, doc="abcdefgh" with cursors at
// {0,4,8}; replacing each range with "Q" produces "QabcdQefghQ", with
// the resulting cursors starting at {1,6,11}.
func TestMultipleSelectionsEachReceiveTheirOwnChange(t *testing.T) {
	allowMultiple := facet.Prec(facet.PrecDefault, AllowMultipleSelections.Of(true))
	s, err := Create(Config{
		Doc:        text.New("abcdefgh"),
		Extensions: allowMultiple,
		Selection: selection.New([]selection.Range{
			selection.Cursor(0), selection.Cursor(4), selection.Cursor(8),
		}, 0),
	})
	require.NoError(t, err)

	cs, err := change.Of([]change.Spec{
		{From: 0, To: 0, Insert: "Q"},
		{From: 4, To: 4, Insert: "Q"},
		{From: 8, To: 8, Insert: "Q"},
	}, 8, false)
	require.NoError(t, err)

	// The replace-selection operation leaves each cursor just after the
	// "Q" it inserted; mapping alone keeps a cursor before an insertion at
	// its own position (see selection.Range.Map), so the spec carries
	// that selection explicitly.
	var placed []selection.Range
	for _, r := range s.Selection().Ranges() {
		placed = append(placed, selection.Cursor(cs.MapPos(r.To(), 1, change.ModeSimple)))
	}
	tr, err := s.Update(TransactionSpec{Changes: cs, Selection: selection.New(placed, 0)})
	require.NoError(t, err)
	next := tr.State()
	assert.Equal(t, "QabcdQefghQ", next.Doc().String())
	require.Equal(t, 3, next.Selection().Len())
	starts := []int{next.Selection().Range(0).From(), next.Selection().Range(1).From(), next.Selection().Range(2).From()}
	assert.Equal(t, []int{1, 6, 11}, starts)
}

// Scenario: a facet computed from doc.length recomputes on a change that
// touches the document, but keeps the exact prior value (by reference)
// across a transaction that doesn't.
func TestDynamicFacetRecomputesOnlyWhenItsDependencyChanges(t *testing.T) {
	docLen := facet.Define[int, *int]("docLen", func(xs []int) *int {
		v := 0
		if len(xs) > 0 {
			v = xs[0]
		}
		return &v
	})
	lenExt := docLen.Compute([]facet.Dependency{facet.DocDependency}, func(c *facet.Configuration) int {
		return c.Host().(*EditorState).Doc().Length()
	})

	s, err := Create(Config{Doc: text.New(""), Extensions: lenExt})
	require.NoError(t, err)

	cs, err := change.Of([]change.Spec{{From: 0, To: 0, Insert: "hello"}}, 0, false)
	require.NoError(t, err)
	tr, err := s.Update(TransactionSpec{Changes: cs})
	require.NoError(t, err)
	s = tr.State()
	first := docLen.Read(s.Config())
	assert.Equal(t, 5, *first)

	tr, err = s.Update(TransactionSpec{})
	require.NoError(t, err)
	s = tr.State()
	second := docLen.Read(s.Config())
	assert.Same(t, first, second)
}

// Scenario: a field that counts transactions is 2 after two updates;
// reconfiguring to an extension tree that keeps the field (but drops
// everything else) preserves its value across the reconfigure, one more
// update brings it to 3; reconfiguring to no fields at all drops it.
func TestReconfigurePreservesThenDropsField(t *testing.T) {
	counter := DefineField("counter",
		func(*EditorState) int { return 0 },
		func(v int, tr *Transaction) int { return v + 1 },
	)

	s, err := Create(Config{Doc: text.New(""), Fields: []Field{counter}})
	require.NoError(t, err)

	tr, err := s.Update(TransactionSpec{})
	require.NoError(t, err)
	s = tr.State()
	tr, err = s.Update(TransactionSpec{})
	require.NoError(t, err)
	s = tr.State()
	assert.Equal(t, 2, counter.Get(s))

	tr, err = s.Update(TransactionSpec{Effects: []EffectValue{
		ReconfigureEffect.Of(Reconfiguration{Fields: []Field{counter}}),
	}})
	require.NoError(t, err)
	s = tr.State()
	assert.Equal(t, 2, counter.Get(s)) // reconfiguring carries the value forward, it doesn't also update it

	tr, err = s.Update(TransactionSpec{})
	require.NoError(t, err)
	s = tr.State()
	assert.Equal(t, 3, counter.Get(s))

	tr, err = s.Update(TransactionSpec{Effects: []EffectValue{
		ReconfigureEffect.Of(Reconfiguration{}),
	}})
	require.NoError(t, err)
	s = tr.State()
	_, ok := counter.GetOr(s)
	assert.False(t, ok)
}

// Compartment preservation: reconfiguring one compartment doesn't change
// a facet whose providers live outside it.
func TestCompartmentReconfigurePreservesUnrelatedFacets(t *testing.T) {
	unrelated := facet.Define("unrelated", func(xs []int) int {
		total := 0
		for _, x := range xs {
			total += x
		}
		return total
	})
	val := facet.Define("val", func(xs []int) int {
		total := 0
		for _, x := range xs {
			total += x
		}
		return total
	})

	compartment := facet.NewCompartment(val.Of(1))
	ext := facet.Extensions(unrelated.Of(7), compartment.Of())

	s, err := Create(Config{Doc: text.New(""), Extensions: ext})
	require.NoError(t, err)
	assert.Equal(t, 7, unrelated.Read(s.Config()))
	assert.Equal(t, 1, val.Read(s.Config()))

	tr, err := s.Update(TransactionSpec{Effects: []EffectValue{
		ReconfigureCompartment(compartment, val.Of(42)),
	}})
	require.NoError(t, err)
	s = tr.State()
	assert.Equal(t, 7, unrelated.Read(s.Config()))
	assert.Equal(t, 42, val.Read(s.Config()))
}

func TestHistoryUndoRedo(t *testing.T) {
	s := newTestState(t, "hello world", HistoryField)

	cs, _ := change.Of([]change.Spec{{From: 6, To: 11, Insert: "Go"}}, s.Doc().Length(), false)
	tr, err := s.Update(TransactionSpec{Changes: cs})
	require.NoError(t, err)
	s = tr.State()
	assert.Equal(t, "hello Go", s.Doc().String())

	spec, ok := Undo(s)
	require.True(t, ok)
	tr, err = s.Update(spec)
	require.NoError(t, err)
	s = tr.State()
	assert.Equal(t, "hello world", s.Doc().String())

	spec, ok = Redo(s)
	require.True(t, ok)
	tr, err = s.Update(spec)
	require.NoError(t, err)
	s = tr.State()
	assert.Equal(t, "hello Go", s.Doc().String())
}

func TestEffectReachesFieldUpdate(t *testing.T) {
	counter := DefineEffect[int]("bump")
	total := DefineField("total",
		func(*EditorState) int { return 0 },
		func(v int, tr *Transaction) int {
			for _, ev := range tr.Effects() {
				if counter.Is(ev) {
					v += counter.Value(ev)
				}
			}
			return v
		},
	)

	s := newTestState(t, "", total)
	tr, err := s.Update(TransactionSpec{Effects: []EffectValue{counter.Of(5)}})
	require.NoError(t, err)
	assert.Equal(t, 5, total.Get(tr.State()))
}
