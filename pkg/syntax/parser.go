package syntax

import (
	"context"
	"time"

	"github.com/texere-dev/edit/internal/budget"
	"github.com/texere-dev/edit/pkg/text"
)

// Parser produces a Tree for a document, optionally reusing fragments
// from a previous parse of a close-by version of that document.
// Implementations are expected to stop early and return a partial tree
// plus done=false if the supplied budget expires before the whole
// document is parsed — Coordinator resumes them on the next idle slice.
type Parser interface {
	Parse(ctx context.Context, doc *text.Text, fragments []TreeFragment, b *budget.Budget) (tree *Tree, done bool)
}

// Coordinator owns the current Tree for one document and keeps it up to
// date as edits arrive, reparsing in the background when a single parse
// would exceed its time budget — grounded on the teacher's
// pkg/weave/engine/engine.go incremental-recompute loop, generalized from
// weave's arbitrary derived values to this package's syntax trees
// specifically, and on aretext's parser.go claim that "every invocation
// is cached and may be reused when reparsing after an edit" (here,
// reused via TreeFragment instead of aretext's token-level computation
// cache).
type Coordinator struct {
	parser    Parser
	tree      *Tree
	pending   []Edit
	sliceTime time.Duration
}

// defaultSlice is the cooperative scheduling quantum: a background parse
// step runs for at most this long before yielding, so a worker loop
// calling Work repeatedly stays responsive to new keystrokes between
// calls.
const defaultSlice = 8 * time.Millisecond

// NewCoordinator creates a Coordinator with no tree yet parsed.
func NewCoordinator(p Parser) *Coordinator {
	return &Coordinator{parser: p, sliceTime: defaultSlice}
}

// Tree returns the most recently completed parse tree, or nil if none has
// finished yet.
func (c *Coordinator) Tree() *Tree { return c.tree }

// NoteEdit records that the document changed at [from,to) (old-document
// coordinates), replaced by insertedLen code points, so the next call to
// Work knows which fragments of the current tree remain valid.
func (c *Coordinator) NoteEdit(from, to, insertedLen int) {
	c.pending = append(c.pending, Edit{From: from, To: to, InsertedLen: insertedLen})
}

// Work runs one cooperative parse step against doc, which must already
// reflect every edit recorded via NoteEdit. It returns true once the
// parse has fully caught up with doc; a caller should keep calling Work
// (e.g. from an idle callback) until it does.
func (c *Coordinator) Work(ctx context.Context, doc *text.Text) bool {
	fragments := FragmentsFromEdits(c.tree, c.pending, 0)
	b := budget.New(c.sliceTime)

	var tree *Tree
	var done bool
	budget.Do(ctx, "syntax-parse", func(ctx context.Context) {
		tree, done = c.parser.Parse(ctx, doc, fragments, b)
	})

	if tree != nil {
		c.tree = tree
	}
	if done {
		c.pending = nil
	}
	return done
}

// Advance returns a new Coordinator reflecting edits applied to doc, with
// one cooperative Work step already run, leaving c itself untouched.
// Work/NoteEdit mutate a Coordinator in place for a caller (an idle
// callback) that owns one Coordinator for a document's whole lifetime;
// Advance is the copy-on-write form a caller threading a Coordinator
// through an immutable value — pkg/state's syntax StateField — needs
// instead, so that field's old and new values are never the same
// pointer and its dependents can tell the two apart by content.
func (c *Coordinator) Advance(ctx context.Context, doc *text.Text, edits []Edit) *Coordinator {
	next := &Coordinator{parser: c.parser, tree: c.tree, sliceTime: c.sliceTime}
	next.pending = append(next.pending, c.pending...)
	next.pending = append(next.pending, edits...)
	next.Work(ctx, doc)
	return next
}

// EnsureSyntaxTree runs Work in a loop for callers that need a tree right
// now — e.g. before a structural command like "select enclosing block" —
// rather than whatever the background scheduler has produced so far. It
// returns the tree and true once the parse has fully caught up with doc
// or, when upto > 0, once the current tree covers at least upto code
// points. It returns the current tree and false once ctx is done, which
// timeoutMs > 0 arranges after that many milliseconds, so a synchronous
// call from a command handler can't hang on a pathological document.
// timeoutMs <= 0 means no time limit; with upto <= 0 only a complete
// parse ends the loop.
func EnsureSyntaxTree(ctx context.Context, c *Coordinator, doc *text.Text, upto int, timeoutMs int) (*Tree, bool) {
	if timeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
		defer cancel()
	}

	for {
		done := c.Work(ctx, doc)
		if done {
			return c.tree, true
		}
		if upto > 0 && c.tree != nil && c.tree.Length() >= upto {
			return c.tree, true
		}
		select {
		case <-ctx.Done():
			return c.tree, false
		default:
		}
	}
}
