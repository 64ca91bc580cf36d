package state

import "github.com/google/uuid"

// annotationKey and effectKey are runtime identities, same pattern as
// fieldKey: distinct values of the same declared Annotation/Effect type
// never collide because each Define call mints a fresh one.
type annotationKey struct {
	name string
	id   uuid.UUID
}

type effectKey struct {
	name string
	id   uuid.UUID
}

// Annotation declares a piece of metadata a Transaction can carry
// alongside its changes — e.g. "this transaction came from a remote
// collaborator" or "this transaction should not be added to history".
// Unlike Effect, an annotation never affects EditorState fields; it's
// read-only context for transactionFilter/transactionExtender and for the
// dispatching code around Update.
type Annotation[T any] struct {
	k       *annotationKey
	deflt   T
	hasDflt bool
}

// DefineAnnotation creates a new Annotation kind.
func DefineAnnotation[T any](name string) *Annotation[T] {
	return &Annotation[T]{k: &annotationKey{name: name, id: uuid.New()}}
}

// Default sets the value Get returns when the annotation wasn't attached
// to a transaction.
func (a *Annotation[T]) Default(v T) *Annotation[T] {
	a.deflt = v
	a.hasDflt = true
	return a
}

// Of attaches value to a transaction spec.
func (a *Annotation[T]) Of(value T) AnnotationValue {
	return AnnotationValue{key: a.k, value: value}
}

// Get reads this annotation's value from tr, or its default (the zero
// value of T if none was set) if tr doesn't carry it.
func (a *Annotation[T]) Get(tr *Transaction) T {
	for _, av := range tr.annotations {
		if av.key == a.k {
			return av.value.(T)
		}
	}
	return a.deflt
}

// AnnotationValue is a type-erased Annotation value, as attached to a
// TransactionSpec.
type AnnotationValue struct {
	key   *annotationKey
	value any
}

// Effect declares a kind of side-value a Transaction can carry that
// StateField.update functions read to decide how to change their value —
// e.g. "fold this range" or "set the active language". Unlike
// Annotation, effects are meant to be consumed by field updaters.
type Effect[T any] struct {
	k *effectKey
}

// DefineEffect creates a new Effect kind.
func DefineEffect[T any](name string) *Effect[T] {
	return &Effect[T]{k: &effectKey{name: name, id: uuid.New()}}
}

// Of attaches value to a transaction spec.
func (e *Effect[T]) Of(value T) EffectValue {
	return EffectValue{key: e.k, value: value}
}

// Is reports whether ev was produced by e, letting a field's update
// function filter tr.Effects() down to the ones it cares about.
func (e *Effect[T]) Is(ev EffectValue) bool { return ev.key == e.k }

// Value extracts ev's payload as T. Panics if ev wasn't produced by e;
// callers should guard with Is first.
func (e *Effect[T]) Value(ev EffectValue) T { return ev.value.(T) }

// EffectValue is a type-erased Effect value, as attached to a
// TransactionSpec or appended by a transactionExtender.
type EffectValue struct {
	key   *effectKey
	value any
}
