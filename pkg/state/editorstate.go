package state

import (
	"github.com/texere-dev/edit/pkg/change"
	"github.com/texere-dev/edit/pkg/facet"
	"github.com/texere-dev/edit/pkg/selection"
	"github.com/texere-dev/edit/pkg/text"
)

// EditorState is the immutable snapshot a transaction produces: a
// document, a selection, the resolved facet configuration, and the
// current value of every registered StateField.
type EditorState struct {
	doc    *text.Text
	sel    *selection.Selection
	ext    facet.Extension
	config *facet.Configuration
	fieldsOrder []Field
	fields map[*fieldKey]any
}

// Config describes how to build the first EditorState: the starting
// document, an optional starting selection (defaults to a cursor at 0),
// the facet extension tree, and the StateFields to register.
type Config struct {
	Doc        *text.Text
	Selection  *selection.Selection
	Extensions facet.Extension
	Fields     []Field
}

// Create resolves cfg.Extensions and builds the first EditorState,
// running every field's create function. Computed facets see this state
// as their Configuration.Host, so a Compute extension can read the
// starting document, selection or another field's initial value.
func Create(cfg Config) (*EditorState, error) {
	doc := cfg.Doc
	if doc == nil {
		doc = text.Empty
	}
	sel := cfg.Selection
	if sel == nil {
		sel = selection.Single(selection.Cursor(0))
	}
	s := &EditorState{
		doc:         doc,
		sel:         sel,
		ext:         cfg.Extensions,
		fieldsOrder: cfg.Fields,
		fields:      map[*fieldKey]any{},
	}
	for _, f := range cfg.Fields {
		s.fields[f.key()] = f.initial(s)
	}
	resolved, err := facet.ResolveHost(cfg.Extensions, s)
	if err != nil {
		return nil, err
	}
	s.config = resolved
	return s, nil
}

// Doc returns the current document.
func (s *EditorState) Doc() *text.Text { return s.doc }

// Selection returns the current selection.
func (s *EditorState) Selection() *selection.Selection { return s.sel }

// Config returns the resolved facet configuration backing this state.
func (s *EditorState) Config() *facet.Configuration { return s.config }

// reconfigured builds the EditorState a ReconfigureEffect (or a
// compartment-reconfigure effect, which re-resolves the same tree in
// place) produces: it keeps s's document and selection, but adopts ext
// as its extension tree and fields as its field set. A field present in
// both the old and new set keeps its old value unchanged; a field only
// in the new set is created fresh via its own create function, run
// against the partially-built next state (doc/selection carried over,
// but only the fields already assigned by the time create runs are
// visible — fields run in the order they appear in fields); a field
// only in the old set is dropped. The resolved Configuration's Host is
// this same partially-built state, so a Compute extension introduced by
// the reconfiguration can read the fields the reconfiguration itself
// just created.
func (s *EditorState) reconfigured(ext facet.Extension, fields []Field) (*EditorState, error) {
	next := &EditorState{
		doc:         s.doc,
		sel:         s.sel,
		ext:         ext,
		fieldsOrder: fields,
		fields:      map[*fieldKey]any{},
	}
	for _, f := range fields {
		if v, ok := s.fields[f.key()]; ok {
			next.fields[f.key()] = v
			continue
		}
		next.fields[f.key()] = f.initial(next)
	}
	resolved, err := facet.ResolveHost(ext, next)
	if err != nil {
		return nil, err
	}
	next.config = resolved
	return next, nil
}

// TransactionSpec is one set of changes to apply, as passed to Update.
// Multiple specs in one Update call are merged: their Changes compose in
// order, so each spec's offsets refer to the document as modified by the
// specs before it. Update does not read Sequential; setting it changes
// nothing.
type TransactionSpec struct {
	Changes     *change.ChangeSet
	Selection   *selection.Selection
	Effects     []EffectValue
	Annotations []AnnotationValue
	Sequential  bool
	// SkipChangeFilter opts out of the changeFilter pass. The pass is
	// skipped only when every spec in the Update call sets it; otherwise
	// it runs over the whole merged change, this spec's part included.
	// The zero value runs filters, matching the core's default of always
	// filtering unless a caller explicitly opts out.
	SkipChangeFilter bool
}
