package state

import "github.com/texere-dev/edit/pkg/change"

// History is the undo/redo state this core attaches as a StateField,
// adapted from the teacher's pkg/ot/undo_manager.go UndoManager: rather
// than a standalone mutable manager object with a normal/undoing/redoing
// mode flag, it's an immutable value (two stacks of ChangeSet) produced
// by HistoryField's update function each transaction, with historyAction
// annotation standing in for the teacher's UndoManagerState so the field
// knows which stack a given transaction came from.
type History struct {
	maxItems int
	undo     []*change.ChangeSet
	redo     []*change.ChangeSet
}

const defaultHistoryDepth = 100

func newHistory() *History {
	return &History{maxItems: defaultHistoryDepth}
}

func push(stack []*change.ChangeSet, cs *change.ChangeSet, max int) []*change.ChangeSet {
	stack = append(stack, cs)
	if len(stack) > max {
		stack = stack[len(stack)-max:]
	}
	return stack
}

func pop(stack []*change.ChangeSet) ([]*change.ChangeSet, *change.ChangeSet) {
	if len(stack) == 0 {
		return stack, nil
	}
	n := len(stack) - 1
	return stack[:n], stack[n]
}

// CanUndo reports whether there's a recorded change to undo.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether there's an undone change to redo.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

type historyEvent int

const (
	historyNormal historyEvent = iota
	historyFromUndo
	historyFromRedo
)

// historyAction tags a transaction produced by Undo/Redo so HistoryField's
// update function pops/pushes the right stack instead of recording it as
// a normal edit.
var historyAction = DefineAnnotation[historyEvent]("historyAction").Default(historyNormal)

// HistoryField is the StateField that tracks undo/redo stacks across
// transactions. Register it once per EditorState that wants undo support.
var HistoryField = DefineField("history",
	func(*EditorState) *History { return newHistory() },
	func(h *History, tr *Transaction) *History {
		if !tr.DocChanged() {
			return h
		}
		inverse := tr.changes.Invert(tr.startState.Doc())
		next := &History{maxItems: h.maxItems, undo: h.undo, redo: h.redo}

		switch historyAction.Get(tr) {
		case historyFromUndo:
			next.undo, _ = pop(next.undo)
			next.redo = push(next.redo, inverse, next.maxItems)
		case historyFromRedo:
			next.redo, _ = pop(next.redo)
			next.undo = push(next.undo, inverse, next.maxItems)
		default:
			next.undo = push(next.undo, inverse, next.maxItems)
			next.redo = nil
		}
		return next
	},
)

// Undo returns a TransactionSpec that reverts the most recent recorded
// change, or ok=false if there's nothing to undo.
func Undo(s *EditorState) (TransactionSpec, bool) {
	h := HistoryField.Get(s)
	if !h.CanUndo() {
		return TransactionSpec{}, false
	}
	_, cs := pop(h.undo)
	return TransactionSpec{
		Changes:     cs,
		Annotations: []AnnotationValue{historyAction.Of(historyFromUndo)},
	}, true
}

// Redo returns a TransactionSpec that reapplies the most recently undone
// change, or ok=false if there's nothing to redo.
func Redo(s *EditorState) (TransactionSpec, bool) {
	h := HistoryField.Get(s)
	if !h.CanRedo() {
		return TransactionSpec{}, false
	}
	_, cs := pop(h.redo)
	return TransactionSpec{
		Changes:     cs,
		Annotations: []AnnotationValue{historyAction.Of(historyFromRedo)},
	}, true
}
