// Package invariant provides contract assertions for the bit engine,
// enforcing spec §3 and §8's structural invariants defensively in
// addition to the structural guarantees the node graph and scheduler
// already provide by construction (a dangling parent link or a Bind
// popped out of order corrupts every evaluation after it).
//
// Adapted from the teacher's core/invariant package: ContextNotBackground
// is kept for callers that thread a context.Context, though nothing in the
// engine itself takes one (spec §5: the engine is single-threaded and
// synchronous), and the doc examples below are this engine's own call
// sites rather than the teacher's.
//
// All functions panic on violation — these are programming errors, not
// user errors, and are never the engine's own fallible-operation error
// path (engine/diag.Error).
package invariant

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
)

// Precondition checks an input contract at function entry.
//
// Example:
//
//	func (n *Node) RemoveNodes(at, count int) []*Node {
//	    invariant.Precondition(at >= 0 && count >= 0, "at=%d count=%d must be non-negative", at, count)
//	    ...
//	}
func Precondition(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("PRECONDITION", format, args...)
	}
}

// Postcondition checks an output contract before function return.
//
// Example:
//
//	children := n.Children()
//	invariant.Postcondition(len(children) == len(want), "Replace must adopt every child")
func Postcondition(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("POSTCONDITION", format, args...)
	}
}

// Invariant checks an internal invariant during function execution — spec
// §8's "∀ n, ∀ c ∈ children(n): parent(c) = n ∧ children(n)[c.index] = c"
// is exactly the shape of check this is for.
//
// Example:
//
//	invariant.Invariant(c.Parent() == n, "child's parent must point back to n")
func Invariant(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("INVARIANT", format, args...)
	}
}

// NotNil panics if value is nil, including a typed nil pointer/interface.
func NotNil(value interface{}, name string) {
	if value == nil || isNilValue(value) {
		fail("PRECONDITION", "%s must not be nil", name)
	}
}

func isNilValue(value interface{}) bool {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return v.IsNil()
	default:
		return false
	}
}

// InRange panics if value is outside [min, max] — used to validate a
// node index against its parent's child count before a splice.
func InRange(value, minVal, maxVal int, name string) {
	if value < minVal || value > maxVal {
		fail("PRECONDITION", "%s must be in range [%d, %d], got %d",
			name, minVal, maxVal, value)
	}
}

// Positive panics if value <= 0.
func Positive(value int, name string) {
	if value <= 0 {
		fail("POSTCONDITION", "%s must be positive, got %d", name, value)
	}
}

// ExpectNoError panics if err is not nil — used where a failure can only
// mean a programming error, such as re-lexing a span this engine itself
// already produced.
func ExpectNoError(err error, msg string) {
	if err != nil {
		fail("POSTCONDITION", "%s must not fail: %v", msg, err)
	}
}

// ContextNotBackground panics if ctx is nil or is context.Background()
// itself; contexts derived from Background pass.
func ContextNotBackground(ctx context.Context, location string) {
	if ctx == nil {
		fail("PRECONDITION", "context must not be nil at %s", location)
	}
	if ctx == context.Background() {
		fail("PRECONDITION", "context must not be Background() at %s", location)
	}
}

// fail panics with a formatted message including the raise site.
func fail(kind, format string, args ...interface{}) {
	pc := make([]uintptr, 10)
	n := runtime.Callers(3, pc)
	frames := runtime.CallersFrames(pc[:n])

	msg := fmt.Sprintf("%s VIOLATION: "+format, append([]interface{}{kind}, args...)...)
	if frame, ok := frames.Next(); ok {
		msg += fmt.Sprintf("\n  at %s:%d", frame.File, frame.Line)
	}
	panic(msg)
}
