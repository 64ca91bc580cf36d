// Package budget implements cooperative CPU-time budgeting for
// background work that must yield control periodically instead of
// running to completion — the syntax parser coordinator's incremental
// reparse being the main consumer, so a large paste doesn't block
// keystroke handling.
//
// This is built on the standard library's runtime/pprof rather than the
// github.com/google/pprof module: that module (an indirect, transitive
// dependency in this stack) is a profile.pb.gz reader/analyzer/visualizer,
// not a runtime instrumentation API — there's nothing in it a cooperative
// scheduler could call. runtime/pprof's label API is the actual
// instrumentation surface for tagging a unit of background work so a
// profile taken later can attribute time to it, which is what Budget.Do
// uses it for.
package budget

import (
	"context"
	"runtime/pprof"
	"time"
)

// Budget bounds how long a cooperative work loop may run before it must
// yield back to its caller.
type Budget struct {
	slice time.Duration
	start time.Time
}

// New starts a budget with the given time slice.
func New(slice time.Duration) *Budget {
	return &Budget{slice: slice, start: time.Now()}
}

// Expired reports whether this budget's slice has elapsed.
func (b *Budget) Expired() bool {
	return time.Since(b.start) >= b.slice
}

// Remaining returns how much of the slice is left, floored at zero.
func (b *Budget) Remaining() time.Duration {
	left := b.slice - time.Since(b.start)
	if left < 0 {
		return 0
	}
	return left
}

// Do runs fn labeled as label for profiling purposes, via
// runtime/pprof.Do, and returns once fn has returned. Labeling a
// parse chunk this way means a profile captured while many
// EditorStates are parsing concurrently can attribute CPU time back
// to the specific label (language name, document id) rather than
// showing one undifferentiated "parse" blob.
func Do(ctx context.Context, label string, fn func(context.Context)) {
	pprof.Do(ctx, pprof.Labels("budget", label), fn)
}
