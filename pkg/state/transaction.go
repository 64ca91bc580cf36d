package state

import (
	"reflect"

	"github.com/texere-dev/edit/internal/texerr"
	"github.com/texere-dev/edit/pkg/change"
	"github.com/texere-dev/edit/pkg/facet"
	"github.com/texere-dev/edit/pkg/selection"
)

func identity[T any](xs []T) []T { return xs }

func anyTrue(xs []bool) bool {
	for _, x := range xs {
		if x {
			return true
		}
	}
	return false
}

// ChangeFilterResult is what one changeFilter provider reports for a
// transaction: pass it through unchanged, veto it outright, or restrict
// it to the gaps between a list of old-document ranges.
type ChangeFilterResult struct {
	pass   bool
	ranges []int
}

// PassChange lets the transaction's change through unmodified.
func PassChange() ChangeFilterResult { return ChangeFilterResult{pass: true} }

// RejectChange vetoes the transaction outright.
func RejectChange() ChangeFilterResult { return ChangeFilterResult{} }

// AllowRanges restricts the transaction's change to the gaps between the
// given ranges — flattened [from0,to0, from1,to1, ...] pairs, in the
// coordinates of the document Update was called against. Those ranges
// keep their original text; the proposed change still applies to
// everything outside them. This is the "protect what you don't like,
// let the rest of the edit through" form of filtering, as opposed to a
// plain veto.
func AllowRanges(ranges ...int) ChangeFilterResult {
	return ChangeFilterResult{pass: true, ranges: ranges}
}

func rangePairs(flat []int) [][2]int {
	out := make([][2]int, 0, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		out = append(out, [2]int{flat[i], flat[i+1]})
	}
	return out
}

// ChangeFilter, TransactionFilter and TransactionExtender are the three
// facets Update consults on every dispatch: a change filter can veto a
// transaction outright (or excise part of its change), a transaction
// filter can replace it with a different one, and a transaction extender
// can only append additional effects to one that's already been decided.
var (
	ChangeFilter = facet.Define[func(*Transaction) ChangeFilterResult, []func(*Transaction) ChangeFilterResult](
		"changeFilter", identity[func(*Transaction) ChangeFilterResult])
	TransactionFilter = facet.Define[func(*Transaction) *Transaction, []func(*Transaction) *Transaction](
		"transactionFilter", identity[func(*Transaction) *Transaction])
	TransactionExtender = facet.Define[func(*Transaction) []EffectValue, []func(*Transaction) []EffectValue](
		"transactionExtender", identity[func(*Transaction) []EffectValue])

	// AllowMultipleSelections controls whether Update lets a transaction
	// leave more than one range in the selection, or collapses it down
	// to the main range. Any provider reporting true wins; the default
	// (no contributions) is false.
	AllowMultipleSelections = facet.Define("allowMultipleSelections", anyTrue)
)

// Reconfiguration is the payload a ReconfigureEffect carries: the new
// extension tree and the new field set to adopt. See
// EditorState.reconfigured for exactly how fields are added, kept or
// dropped.
type Reconfiguration struct {
	Extensions facet.Extension
	Fields     []Field
}

// ReconfigureEffect, attached to a transaction, replaces the
// EditorState's facet extension tree and field set wholesale once the
// transaction is applied.
var ReconfigureEffect = DefineEffect[Reconfiguration]("reconfigure")

// compartmentReconfigure is the payload a CompartmentEffect carries.
type compartmentReconfigure struct {
	Compartment *facet.Compartment
	Extension   facet.Extension
}

// CompartmentEffect, attached to a transaction, swaps one Compartment's
// contribution in place and re-resolves the owning EditorState's whole
// extension tree, leaving every other Compartment's contribution — and
// every facet whose providers live outside this compartment — read
// exactly as before.
var CompartmentEffect = DefineEffect[compartmentReconfigure]("compartment.reconfigure")

// ReconfigureCompartment returns an effect that swaps compartment's
// contribution for ext, taking effect once the transaction carrying it
// is applied.
func ReconfigureCompartment(compartment *facet.Compartment, ext facet.Extension) EffectValue {
	return CompartmentEffect.Of(compartmentReconfigure{Compartment: compartment, Extension: ext})
}

// maxFilterIterations bounds the transactionFilter loop: a filter that
// keeps replacing the transaction with another one that itself gets
// replaced forever is a configuration bug, reported as a runaway-filter
// error rather than hung forever.
const maxFilterIterations = 10

// Transaction is one dispatch: the changes and selection to apply to
// startState, plus the effects and annotations carried alongside them.
type Transaction struct {
	startState  *EditorState
	changes     *change.ChangeSet
	sel         *selection.Selection
	effects     []EffectValue
	annotations []AnnotationValue
	newState    *EditorState

	// explicitSelection is true when some merged spec set Selection
	// directly, rather than letting it fall out of mapping the prior
	// selection through the changes. A changeFilter that restricts the
	// change only remaps sel when this is false.
	explicitSelection bool
}

// StartState returns the EditorState this transaction was built against.
func (tr *Transaction) StartState() *EditorState { return tr.startState }

// Changes returns the transaction's combined document edit.
func (tr *Transaction) Changes() *change.ChangeSet { return tr.changes }

// NewSelection returns the selection the transaction will leave in place.
func (tr *Transaction) NewSelection() *selection.Selection { return tr.sel }

// Effects returns every effect value attached to the transaction,
// including those appended by transactionExtender functions.
func (tr *Transaction) Effects() []EffectValue { return tr.effects }

// DocChanged reports whether this transaction touches the document at
// all (a pure selection move carries an empty ChangeSet).
func (tr *Transaction) DocChanged() bool { return !tr.changes.Empty() }

// State returns the EditorState that results from this transaction. Only
// valid after Update has returned it successfully.
func (tr *Transaction) State() *EditorState { return tr.newState }

// Update merges one or more TransactionSpecs into a single transaction,
// runs it through the changeFilter, transactionFilter and
// transactionExtender passes, and applies the result to produce the next
// EditorState.
func (s *EditorState) Update(specs ...TransactionSpec) (*Transaction, error) {
	tr, runFilter, err := mergeSpecs(s, specs)
	if err != nil {
		return nil, err
	}

	if runFilter {
		for _, pred := range ChangeFilter.Read(s.config) {
			res := pred(tr)
			if !res.pass {
				return nil, texerr.InvalidInput("state", "transaction rejected by a changeFilter")
			}
			if res.ranges != nil {
				restricted, err := change.Restrict(tr.changes, s.doc, rangePairs(res.ranges))
				if err != nil {
					return nil, texerr.InvalidInput("state", "changeFilter allowed-ranges out of bounds")
				}
				tr.changes = restricted
				if !tr.explicitSelection {
					tr.sel = s.sel.Map(restricted.Desc())
				}
			}
		}
	}

	filters := TransactionFilter.Read(s.config)
	for i := 0; i < maxFilterIterations; i++ {
		changed := false
		for _, f := range filters {
			next := f(tr)
			if next != tr {
				tr = next
				changed = true
			}
		}
		if !changed {
			break
		}
		if i == maxFilterIterations-1 {
			return nil, texerr.RunawayFilter("transactionFilter", maxFilterIterations)
		}
	}

	for _, ext := range TransactionExtender.Read(s.config) {
		tr.effects = append(tr.effects, ext(tr)...)
	}

	tr.sel = selection.EnforceSingle(tr.sel, AllowMultipleSelections.Read(s.config))

	newState, err := applyTransaction(s, tr)
	if err != nil {
		return nil, err
	}
	tr.newState = newState
	return tr, nil
}

// mergeSpecs composes every spec's changes in sequence, picks the final
// selection, and concatenates effects/annotations. It returns whether the
// changeFilter pass should run: the pass is skipped only if every spec
// opted out, and otherwise covers the whole merged change, including the
// changes of specs that opted out. Sequential is not read.
func mergeSpecs(s *EditorState, specs []TransactionSpec) (*Transaction, bool, error) {
	changes := change.EmptySet(s.doc.Length())
	sel := s.sel
	var effects []EffectValue
	var annotations []AnnotationValue
	runFilter := false
	explicitSelection := false

	for _, spec := range specs {
		c := spec.Changes
		if c == nil {
			c = change.EmptySet(changes.NewLength())
		}
		changes = changes.Compose(c)
		if spec.Selection != nil {
			sel = spec.Selection
			explicitSelection = true
		} else {
			sel = sel.Map(c.Desc())
		}
		effects = append(effects, spec.Effects...)
		annotations = append(annotations, spec.Annotations...)
		if !spec.SkipChangeFilter {
			runFilter = true
		}
	}

	return &Transaction{
		startState:        s,
		changes:           changes,
		sel:               sel,
		effects:           effects,
		annotations:       annotations,
		explicitSelection: explicitSelection,
	}, runFilter, nil
}

// applyTransaction produces the next EditorState: it runs any
// ReconfigureEffect/compartment-reconfigure effect first (so field
// add/drop and the new extension tree are in place before the
// transaction's own changes apply), then applies the document edit and
// every field's update function, and finally resolves the facet
// Configuration — by a full re-resolve when the tree changed, or by an
// incremental Recompute (skipping any computed facet none of whose
// dependencies actually changed) for an ordinary transaction.
func applyTransaction(s *EditorState, tr *Transaction) (*EditorState, error) {
	var reconfigureTo *Reconfiguration
	var compartmentEffects []compartmentReconfigure
	for _, ev := range tr.effects {
		if ReconfigureEffect.Is(ev) {
			r := ReconfigureEffect.Value(ev)
			reconfigureTo = &r
		}
		if CompartmentEffect.Is(ev) {
			compartmentEffects = append(compartmentEffects, CompartmentEffect.Value(ev))
		}
	}

	for _, ce := range compartmentEffects {
		ce.Compartment.Reconfigure(ce.Extension)
	}

	reconfiguring := reconfigureTo != nil || len(compartmentEffects) > 0

	base := s
	if reconfigureTo != nil {
		reconfigured, err := s.reconfigured(reconfigureTo.Extensions, reconfigureTo.Fields)
		if err != nil {
			return nil, err
		}
		base = reconfigured
	} else if len(compartmentEffects) > 0 {
		// The compartment's contribution changed in place; re-resolving
		// the same tree and field set picks it up while leaving every
		// other facet's providers — inside or outside any compartment —
		// untouched.
		reconfigured, err := s.reconfigured(s.ext, s.fieldsOrder)
		if err != nil {
			return nil, err
		}
		base = reconfigured
	}

	newDoc := tr.changes.Apply(base.doc)

	// A reconfigure carries every existing field's value forward
	// unchanged (reconfigured already did that) and runs create for any
	// field the new tree adds; it does not also run update for this same
	// dispatch, so "reconfigure, then one ordinary transaction" advances
	// a transaction-counting field by exactly one, not two.
	newFields := base.fields
	if !reconfiguring {
		newFields = map[*fieldKey]any{}
		for _, f := range base.fieldsOrder {
			newFields[f.key()] = f.apply(base.fields[f.key()], tr)
		}
	}

	next := &EditorState{
		doc:         newDoc,
		sel:         tr.sel,
		ext:         base.ext,
		fieldsOrder: base.fieldsOrder,
		fields:      newFields,
	}

	if reconfiguring {
		resolved, err := facet.ResolveHost(base.ext, next)
		if err != nil {
			return nil, err
		}
		next.config = resolved
		return next, nil
	}

	next.config = facet.Recompute(base.config, next, changeTracker(s, tr, base, newFields))
	return next, nil
}

// changeTracker builds the "did this dependency change" callback
// Recompute uses to decide whether a computed facet can keep its prior
// value: the document dependency fires when the transaction touched the
// doc at all, the selection dependency fires when the resulting
// selection differs from the starting one, and a field dependency fires
// when that field's new value isn't reflect.DeepEqual to its old one.
func changeTracker(s *EditorState, tr *Transaction, base *EditorState, newFields map[*fieldKey]any) func(facet.Dependency) bool {
	return func(d facet.Dependency) bool {
		if d == facet.DocDependency {
			return tr.DocChanged()
		}
		if d == facet.SelectionDependency {
			return !tr.sel.Eq(s.sel)
		}
		for _, f := range base.fieldsOrder {
			if d == facet.FieldDependency(f.key()) {
				return !reflect.DeepEqual(newFields[f.key()], base.fields[f.key()])
			}
		}
		return false
	}
}
