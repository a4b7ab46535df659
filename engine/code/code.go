// Package code implements spec §4.6's lowering target: once a node tree
// has settled (the scheduler queue has drained), the root is walked to
// produce a Code tree suitable for C emission.
//
// Grounded on original_source/rust/boot/code/mod.rs and clang.rs for the
// Expr shape, generalized per spec §4.6 to include UInt alongside SInt.
package code

import (
	"github.com/bitlang/bit/engine/source"
)

// ExprKind discriminates an Expr's variant.
type ExprKind uint8

const (
	None ExprKind = iota
	Seq
	Unit
	Bool
	SInt
	UInt
	Str
	Print
	Float
)

// Expr is the lowered expression tree (spec §4.6's grammar).
type Expr struct {
	Kind     ExprKind
	Bool_    bool
	Int      int64
	UInt     uint64
	Float_   float64
	Str_     string
	Children []Code // Seq and Print carry their operands here
}

// Code pairs an Expr with the span it was lowered from, for diagnostics.
type Code struct {
	Expr Expr
	Span source.Span
}

func New(e Expr, span source.Span) Code { return Code{Expr: e, Span: span} }

func NoneAt(span source.Span) Code  { return New(Expr{Kind: None}, span) }
func UnitAt(span source.Span) Code  { return New(Expr{Kind: Unit}, span) }
func BoolAt(b bool, span source.Span) Code {
	return New(Expr{Kind: Bool, Bool_: b}, span)
}
func SIntAt(i int64, span source.Span) Code {
	return New(Expr{Kind: SInt, Int: i}, span)
}
func UIntAt(u uint64, span source.Span) Code {
	return New(Expr{Kind: UInt, UInt: u}, span)
}
func FloatAt(f float64, span source.Span) Code {
	return New(Expr{Kind: Float, Float_: f}, span)
}
func StrAt(s string, span source.Span) Code {
	return New(Expr{Kind: Str, Str_: s}, span)
}
func SeqAt(children []Code, span source.Span) Code {
	return New(Expr{Kind: Seq, Children: children}, span)
}
func PrintAt(children []Code, span source.Span) Code {
	return New(Expr{Kind: Print, Children: children}, span)
}

// IsNone reports whether e lowered to the empty expression.
func (e Expr) IsNone() bool { return e.Kind == None }
