// Package facet implements the core's configuration system: Facet values
// combine inputs contributed from anywhere in an Extension tree into a
// single Output; Compartment lets part of that tree be swapped out at
// runtime; Configuration resolves the whole tree, including facets whose
// value is computed from other facets, in dependency order.
//
// Grounded on the teacher's pkg/concordia package for the general shape
// of "many small typed providers merged into one resolved view" (its
// concordia.go coordinates independently-registered providers the same
// way Configuration coordinates facets), generalized here with Go
// generics so each Facet keeps its own Input/Output types instead of
// concordia's any-typed registry.
package facet

import (
	"fmt"
	"sync"

	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/dfs"

	"github.com/texere-dev/edit/internal/texerr"
)

// key is a Facet's runtime identity. Facets compare by pointer, not
// value, the same way the teacher's concordia providers key off of a
// registered name.
type key struct {
	name string
}

func (k *key) key() *key { return k }

// Facet declares a named extension point. Input is the type every
// contributor provides; Output is the type combine reduces them to.
type Facet[Input, Output any] struct {
	k       *key
	combine func([]Input) Output
}

// Define creates a new Facet with the given combine function, which is
// called with all contributed Input values in priority order (see
// Extension priorities) to produce the resolved Output.
func Define[Input, Output any](name string, combine func([]Input) Output) *Facet[Input, Output] {
	return &Facet[Input, Output]{k: &key{name: name}, combine: combine}
}

// Of returns an Extension that contributes a single static value.
func (f *Facet[Input, Output]) Of(value Input) Extension {
	return Extension{entries: []entry{{facetKey: f.k, static: value}}}
}

// Compute returns an Extension that contributes a value computed from
// deps, re-evaluated whenever Configuration is rebuilt. A dependency may
// be another Facet, or one of the sentinel Dependencies this package
// exports (DocDependency, SelectionDependency, FieldDependency) that a
// higher-level package attaches meaning to through Configuration.Host —
// this package only needs their identity to know when to recompute.
// deps must be resolved before this facet in dependency order —
// Configuration enforces that with a topological sort and reports a
// cycle as a config error.
func (f *Facet[Input, Output]) Compute(deps []Dependency, get func(*Configuration) Input) Extension {
	return Extension{entries: []entry{{
		facetKey: f.k,
		deps:     deps,
		compute:  func(c *Configuration) any { return get(c) },
	}}}
}

// Read resolves f's combined Output from c. If f was never provided any
// value, combine is called with an empty slice, so the facet's value is
// whatever its combine function returns for no inputs.
func (f *Facet[Input, Output]) Read(c *Configuration) Output {
	if v, ok := c.combined[f.k]; ok {
		return v.(Output)
	}
	raw := c.resolved[f.k]
	inputs := make([]Input, len(raw))
	for i, v := range raw {
		inputs[i] = v.(Input)
	}
	out := f.combine(inputs)
	c.combined[f.k] = out
	return out
}

// Dependency identifies something a Compute extension can depend on,
// erased down to the key Configuration's change-tracking needs. Facets
// implement it directly; DocDependency, SelectionDependency and
// FieldDependency let a package built on top of facet (pkg/state) name
// dependencies this package doesn't itself model.
type Dependency interface {
	key() *key
}

func (f *Facet[Input, Output]) key() *key { return f.k }

// DocDependency is the Dependency a Compute extension declares to mark
// itself as needing to recompute whenever the document changes. facet
// itself attaches no meaning to it beyond identity — pkg/state reports
// "changed" for it via Configuration.Host.
var DocDependency Dependency = &key{name: "$doc"}

// SelectionDependency is the Dependency a Compute extension declares to
// mark itself as needing to recompute whenever the selection changes.
var SelectionDependency Dependency = &key{name: "$selection"}

var (
	fieldDepsMu sync.Mutex
	fieldDeps   = map[any]*key{}
)

// FieldDependency returns a stable Dependency identifying id, the
// runtime identity of a StateField (or any other comparable value a
// caller wants to track). Calling it twice with the same id returns the
// same Dependency, so a StateField-owning package can declare "depends
// on field X" the same way it declares a dependency on another Facet.
func FieldDependency(id any) Dependency {
	fieldDepsMu.Lock()
	defer fieldDepsMu.Unlock()
	k, ok := fieldDeps[id]
	if !ok {
		k = &key{name: fmt.Sprintf("$field:%v", id)}
		fieldDeps[id] = k
	}
	return k
}

// entry is one contribution to the Extension tree: either a static
// value or a computed one with its dependency list. compartment is set
// when this entry arrived through a Compartment's Of(), so flattening
// can tell two independent splices of the same Compartment apart from
// the entries that naturally share one splice's identity.
type entry struct {
	facetKey    *key
	static      any
	compute     func(*Configuration) any
	deps        []Dependency
	priority    int
	compartment *compartmentUse
}

// Extension is an opaque piece of configuration: a leaf contribution, or
// (via Extensions/Prec) a group of them.
type Extension struct {
	entries []entry
}

// Extensions flattens a list of extensions into one.
func Extensions(exts ...Extension) Extension {
	var all []entry
	for _, e := range exts {
		all = append(all, e.entries...)
	}
	return Extension{entries: all}
}

// Precedence controls contribution order within a facet's combine input,
// matching the core's highest/high/default/low/lowest priority bands.
type Precedence int

const (
	PrecLowest Precedence = iota - 2
	PrecLow
	PrecDefault
	PrecHigh
	PrecHighest
)

// Prec wraps ext so all of its entries sort at priority p relative to
// other contributions to the same facet. Higher precedence contributions
// appear earlier in the combine input.
func Prec(p Precedence, ext Extension) Extension {
	out := make([]entry, len(ext.entries))
	for i, e := range ext.entries {
		e.priority = int(p)
		out[i] = e
	}
	return Extension{entries: out}
}

// contribution is one raw value contributed to a facet, still tagged
// with its precedence and arrival order so Configuration can sort it
// correctly before calling combine.
type contribution struct {
	priority int
	seq      int
	value    any
}

// Configuration is the resolved result of an Extension tree: every
// facet's Output, computed in dependency order.
type Configuration struct {
	source Extension

	static   map[*key][]contribution // per-facet static contributions, priority-ordered
	computed []entry                 // compute entries, topologically sorted

	computedVals []any          // one slot per computed entry, parallel to computed
	resolved     map[*key][]any // per-facet, priority-ordered raw Input values (static + computed)
	combined     map[*key]any   // per-facet cached combine() Output

	host any
}

// Host returns the value attached via ResolveHost/Recompute, or nil.
// pkg/state attaches the owning EditorState so a Compute function can
// read the document, the selection, or a field it declared a dependency
// on — concepts this package knows nothing about directly.
func (c *Configuration) Host() any { return c.host }

func sortEntryContribs(cs []contribution) {
	// Stable sort by descending priority; within equal priority, arrival
	// (seq) order — satisfying the Open Question decision that ties
	// resolve to insertion order.
	for i := 1; i < len(cs); i++ {
		for j := i; j > 0 && less(cs[j], cs[j-1]); j-- {
			cs[j], cs[j-1] = cs[j-1], cs[j]
		}
	}
}

func less(a, b contribution) bool {
	if a.priority != b.priority {
		return a.priority > b.priority
	}
	return a.seq < b.seq
}

// flattenCompartments expands every Compartment splice in root into its
// current entries, detecting the same Compartment spliced into one tree
// twice as a duplicate-compartment configuration error.
func flattenCompartments(root Extension) (Extension, error) {
	out, err := flattenEntries(root.entries, map[*Compartment]*compartmentUse{})
	if err != nil {
		return Extension{}, err
	}
	return Extension{entries: out}, nil
}

func flattenEntries(entries []entry, seen map[*Compartment]*compartmentUse) ([]entry, error) {
	var out []entry
	for _, e := range entries {
		if e.compartment == nil {
			out = append(out, e)
			continue
		}
		c := e.compartment.c
		if prior, ok := seen[c]; ok {
			if prior != e.compartment {
				return nil, texerr.InvalidInput("facet", "duplicate compartment in configuration")
			}
			// This splice's current entries were already expanded.
			continue
		}
		seen[c] = e.compartment
		nested, err := flattenEntries(c.current.entries, seen)
		if err != nil {
			return nil, err
		}
		out = append(out, nested...)
	}
	return out, nil
}

// plan builds the static-contribution table and the topologically
// sorted compute-entry list from a flattened Extension tree. A cycle
// among Compute dependencies is reported as a config error, not a
// panic, since it can originate from user-supplied extensions at
// StateField/EditorState construction time.
func plan(root Extension) (map[*key][]contribution, []entry, error) {
	raw := map[*key][]contribution{}

	g := core.NewGraph(core.WithDirected(true))
	nodeName := func(k *key) string { return fmt.Sprintf("%p:%s", k, k.name) }
	seen := map[*key]bool{}
	ensureVertex := func(k *key) {
		if !seen[k] {
			seen[k] = true
			_ = g.AddVertex(nodeName(k))
		}
	}

	var computed []entry
	for i, e := range root.entries {
		ensureVertex(e.facetKey)
		if e.compute != nil {
			computed = append(computed, e)
			for _, dep := range e.deps {
				dk := dep.key()
				ensureVertex(dk)
				if _, err := g.AddEdge(nodeName(dk), nodeName(e.facetKey), 0); err != nil {
					return nil, nil, texerr.Config("facet", "dependency graph rejected an edge", err)
				}
			}
		} else {
			raw[e.facetKey] = append(raw[e.facetKey], contribution{priority: e.priority, seq: i, value: e.static})
		}
	}

	order, err := dfs.TopologicalSort(g)
	if err != nil {
		return nil, nil, texerr.Config("facet", "facet dependency graph has a cycle", err)
	}
	orderIndex := make(map[string]int, len(order))
	for i, name := range order {
		orderIndex[name] = i
	}

	sortedComputed := make([]entry, len(computed))
	copy(sortedComputed, computed)
	for i := 1; i < len(sortedComputed); i++ {
		for j := i; j > 0 && orderIndex[nodeName(sortedComputed[j].facetKey)] < orderIndex[nodeName(sortedComputed[j-1].facetKey)]; j-- {
			sortedComputed[j], sortedComputed[j-1] = sortedComputed[j-1], sortedComputed[j]
		}
	}

	for _, cs := range raw {
		sortEntryContribs(cs)
	}

	return raw, sortedComputed, nil
}

// eval (re)computes c.resolved/c.combined. When prev is nil every
// computed entry runs; otherwise a computed entry is skipped — and its
// previous raw value and cached combined Output carried forward by
// reference — unless one of its declared dependencies changed: another
// computed facet that itself recomputed, or an external dependency
// (doc/selection/field) that changed reports as changed. This is what
// lets Facet.Read keep returning the exact same Output reference across
// a transaction that touched none of a facet's dependencies.
func (c *Configuration) eval(prev *Configuration, changed func(Dependency) bool) {
	c.resolved = map[*key][]any{}
	c.combined = map[*key]any{}
	for k, cs := range c.static {
		vals := make([]any, len(cs))
		for i, ct := range cs {
			vals[i] = ct.value
		}
		c.resolved[k] = vals
	}

	touched := map[*key]bool{}
	c.computedVals = make([]any, len(c.computed))
	for i, e := range c.computed {
		stale := prev == nil || len(prev.computed) != len(c.computed)
		if !stale {
			for _, d := range e.deps {
				if touched[d.key()] {
					stale = true
					break
				}
				if changed != nil && changed(d) {
					stale = true
					break
				}
			}
		}
		if stale {
			c.computedVals[i] = e.compute(c)
			touched[e.facetKey] = true
		} else {
			c.computedVals[i] = prev.computedVals[i]
		}
		c.resolved[e.facetKey] = append(c.resolved[e.facetKey], c.computedVals[i])
	}

	if prev != nil {
		for k, v := range prev.combined {
			if !touched[k] {
				c.combined[k] = v
			}
		}
	}
}

// Resolve builds a Configuration from root, computing every dynamic
// entry in dependency order.
func Resolve(root Extension) (*Configuration, error) {
	return ResolveHost(root, nil)
}

// ResolveHost is Resolve, but attaches host so a Compute function can
// read it back via Configuration.Host — pkg/state uses this to let a
// facet depend on the document, the selection, or a StateField without
// this package importing any of those concepts.
func ResolveHost(root Extension, host any) (*Configuration, error) {
	flat, err := flattenCompartments(root)
	if err != nil {
		return nil, err
	}
	static, computed, err := plan(flat)
	if err != nil {
		return nil, err
	}
	c := &Configuration{source: root, static: static, computed: computed, host: host}
	c.eval(nil, nil)
	return c, nil
}

// Recompute re-resolves prev's same extension tree with host attached,
// skipping any computed facet whose dependencies changed is nil or
// reports unchanged for — see eval. Only valid against a Configuration
// whose extension tree hasn't structurally changed since prev was
// built; a reconfiguration (Compartment swap or whole-tree replace)
// must call Resolve/ResolveHost again instead.
func Recompute(prev *Configuration, host any, changed func(Dependency) bool) *Configuration {
	c := &Configuration{source: prev.source, static: prev.static, computed: prev.computed, host: host}
	c.eval(prev, changed)
	return c
}
