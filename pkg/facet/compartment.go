package facet

// compartmentUse tags the entries produced by one particular call to a
// Compartment's Of(), so flattening can tell "the same Compartment
// spliced into this tree twice" (a duplicate-compartment configuration
// error) apart from "the entries of one splice, which naturally all
// share that splice's identity".
type compartmentUse struct{ c *Compartment }

// Compartment marks a slot in an Extension tree whose content can be
// swapped for a new Extension without touching the rest of the tree —
// the mechanism a reconfigure effect uses to replace a single language
// or theme extension without rebuilding the whole configuration by hand.
type Compartment struct {
	current Extension
}

// NewCompartment creates a Compartment initially holding ext.
func NewCompartment(ext Extension) *Compartment {
	return &Compartment{current: ext}
}

// Of returns the Extension this compartment currently contributes to the
// tree it's embedded in. Resolve/Recompute expand it back to c.current's
// entries at resolve time, so a later Reconfigure is visible to any
// Configuration re-resolved from a tree that still embeds this same
// Compartment value.
func (c *Compartment) Of() Extension {
	use := &compartmentUse{c: c}
	out := make([]entry, len(c.current.entries))
	for i, e := range c.current.entries {
		if e.compartment == nil {
			e.compartment = use
		}
		out[i] = e
	}
	return Extension{entries: out}
}

// Reconfigure replaces c's contribution in place with ext. It takes
// effect the next time a Configuration is resolved (not recomputed)
// from a tree that embeds c — see pkg/state's compartment-reconfigure
// effect, which re-resolves the owning EditorState's whole tree so
// every other Compartment's contribution is read unchanged while this
// one picks up ext.
func (c *Compartment) Reconfigure(ext Extension) {
	c.current = ext
}
