// Package diag implements spec §7's error taxonomy: a single tagged error
// value carrying a displayable message, an optional originating span, and
// the file/line of the raise site for diagnostics.
//
// Grounded on original_source/rust/boot/result.rs's Error (message-only)
// and the teacher's runtime/planner.PlanError (message + suggestion +
// formatted Error() string) — this repo's Error generalizes both: Kind and
// Span carry the source's Error semantics, Suggestion the teacher's.
package diag

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/bitlang/bit/engine/source"
)

// Kind is the error taxonomy from spec §7.
type Kind string

const (
	LexInvalidToken       Kind = "Lex.InvalidToken"
	ParseNumeric          Kind = "Parse.Numeric"
	ParseUnterminated     Kind = "Parse.UnterminatedString"
	CompileUntranslatable Kind = "Compile.Untranslatable"
	IOLoadFailed          Kind = "IO.LoadFailed"
	ArenaExhausted        Kind = "Arena.Exhausted"
	SymbolTableFull       Kind = "SymbolTable.Full"
)

// Error is the engine's single error type. Every fallible operation
// returns one of these rather than panicking (spec §7: "propagation is
// explicit... errors bubble to the driver, which formats and reports
// them"). Arena.Exhausted and SymbolTable.Full are the two taxonomy
// entries that are raised as panics instead (spec: "abort process"), since
// the arena and symbol table are process-wide singletons, not per-compile
// Result-returning operations; the driver (cmd/bit) recovers them at the
// top level and reports them through this same Error type.
type Error struct {
	Kind       Kind
	Message    string
	Span       source.Span
	HasSpan    bool
	Suggestion string
	file       string
	line       int
}

// New builds an Error of the given kind, formatting Message from format
// and args and capturing the raise site's file/line for diagnostics.
func New(kind Kind, span source.Span, format string, args ...any) *Error {
	_, file, line, _ := runtime.Caller(1)
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Span:    span,
		HasSpan: true,
		file:    file,
		line:    line,
	}
}

// Newf builds an Error with no associated span.
func Newf(kind Kind, format string, args ...any) *Error {
	_, file, line, _ := runtime.Caller(1)
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		file:    file,
		line:    line,
	}
}

// WithSuggestion attaches a fix suggestion, returning e for chaining.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.HasSpan {
		fmt.Fprintf(&b, " at %s", e.Span)
	}
	if e.Suggestion != "" {
		b.WriteString("\n")
		b.WriteString(e.Suggestion)
	}
	return b.String()
}

// RaiseSite returns the file and line where this Error was constructed,
// for --verbose diagnostics.
func (e *Error) RaiseSite() (string, int) { return e.file, e.line }
