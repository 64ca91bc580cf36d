// Package state implements the core's transaction pipeline: StateField
// values attached to an EditorState, Annotations and Effects carried by a
// Transaction, and the dispatch sequence (merge specs, run change
// filters, run transaction filters, run transaction extenders, apply)
// that turns a TransactionSpec into a new EditorState.
//
// Grounded on the teacher's pkg/ot/undo_manager.go for the
// state-carried-forward-across-edits shape (its UndoManager is itself
// adapted here into a StateField, see history.go), and on
// pkg/concordia's provider-registry pattern for how independently defined
// fields get assembled into one resolved state.
package state

import "github.com/google/uuid"

// fieldKey is a StateField's runtime identity.
type fieldKey struct {
	name string
	id   uuid.UUID
}

// Field is the type-erased view of a StateField that EditorState and
// Transaction operate on without needing to know V. jsonKey/marshalField/
// unmarshalField back EditorState.ToJson/FromJson; marshalField/
// unmarshalField report ok=false for a field that was never given a JSON
// shape via StateField.JSON, so ToJson simply omits it.
type Field interface {
	key() *fieldKey
	initial(*EditorState) any
	apply(value any, tr *Transaction) any
	jsonKey() string
	marshalField(value any) (any, bool)
	unmarshalField(raw any) (any, bool)
}

// StateField declares a piece of state that lives on every EditorState
// and updates once per transaction.
type StateField[V any] struct {
	k        *fieldKey
	create   func(*EditorState) V
	update   func(V, *Transaction) V
	toJSON   func(V) any
	fromJSON func(any) V
}

// DefineField creates a new StateField. create produces the field's
// initial value when an EditorState is constructed; update produces the
// next value from the previous one and the transaction being applied.
func DefineField[V any](name string, create func(*EditorState) V, update func(V, *Transaction) V) *StateField[V] {
	return &StateField[V]{k: &fieldKey{name: name, id: uuid.New()}, create: create, update: update}
}

// JSON gives f a serialization shape: toJSON converts its value to
// something encoding/json can marshal, fromJSON reconstructs it from the
// decoded JSON value. A field without a JSON shape is simply omitted from
// EditorState.ToJson's output and left at its create value on FromJson.
func (f *StateField[V]) JSON(toJSON func(V) any, fromJSON func(any) V) *StateField[V] {
	f.toJSON = toJSON
	f.fromJSON = fromJSON
	return f
}

func (f *StateField[V]) key() *fieldKey { return f.k }

func (f *StateField[V]) initial(s *EditorState) any { return f.create(s) }

func (f *StateField[V]) apply(value any, tr *Transaction) any {
	var v V
	if value != nil {
		v = value.(V)
	}
	return f.update(v, tr)
}

func (f *StateField[V]) jsonKey() string { return f.k.name }

func (f *StateField[V]) marshalField(value any) (any, bool) {
	if f.toJSON == nil {
		return nil, false
	}
	var v V
	if value != nil {
		v = value.(V)
	}
	return f.toJSON(v), true
}

func (f *StateField[V]) unmarshalField(raw any) (any, bool) {
	if f.fromJSON == nil {
		return nil, false
	}
	return f.fromJSON(raw), true
}

// Get reads f's current value from s. Panics if f was never registered on
// s's EditorState, since an unregistered field has no sensible value.
func (f *StateField[V]) Get(s *EditorState) V {
	raw, ok := s.fields[f.k]
	if !ok {
		panic("state: field not registered on this EditorState")
	}
	return raw.(V)
}

// GetOr reads f's current value from s, reporting false instead of
// panicking when f isn't registered — the form a caller that survives
// reconfiguration (where a field can be dropped from one EditorState to
// the next) needs instead of Get.
func (f *StateField[V]) GetOr(s *EditorState) (V, bool) {
	raw, ok := s.fields[f.k]
	if !ok {
		var zero V
		return zero, false
	}
	return raw.(V), true
}
