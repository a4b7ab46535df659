// Package corelang implements spec §4.3's built-in value kinds and §4.5's
// standard evaluators: the small set of Value types (Source, Token, Raw,
// Group, Literal, Print, Program, Module) that a bare node graph needs
// before any user-defined language feature exists, plus the Tokenize,
// SplitLines, ParseLiteral and ParsePrint evaluators that drive a graph
// from "one Source node per input" to a settled tree ready for
// engine/code's lowering pass.
//
// Grounded on original_source/rust/boot/core/{raw,lines,print,program,group,literal}.rs
// and original_source/rust/boot/node.rs's Source value handling.
package corelang

import (
	"fmt"

	"github.com/bitlang/bit/engine/node"
	"github.com/bitlang/bit/engine/source"
	"github.com/bitlang/bit/engine/token"
	"github.com/bitlang/bit/engine/writer"
)

// SourceValue is the root value kind: one per loaded source, created before
// any binding runs. Tokenize is the only evaluator that ever matches it.
type SourceValue struct {
	node.Unhandled
	src source.Source
}

// NewSourceValue wraps src as a node payload.
func NewSourceValue(src source.Source) SourceValue { return SourceValue{src: src} }

func (v SourceValue) Source() source.Source { return v.src }
func (v SourceValue) Kind() node.Kind       { return node.KindSource }
func (v SourceValue) Bind(n *node.Node, e node.Enroller) {
	e.EnrollKind(n, node.KindSource)
}
func (v SourceValue) Describe(w *writer.Writer) error {
	_, err := fmt.Fprintf(w, "source %s", v.src)
	return err
}

// RawFlag tags the stage a Raw node has reached in the tokenize → split →
// group pipeline (spec §4.3's Raw flags).
type RawFlag uint8

const (
	// RawList marks the single Raw node Tokenize attaches under a Source,
	// holding the full, unsplit token stream.
	RawList RawFlag = 1 << iota
	// RawLineSplit marks a Raw node SplitLines has already visited, whether
	// or not it produced new children — set in place on a node whose tokens
	// are all Breaks (or none) to keep it from being revisited, and on the
	// container and each line node when it does split.
	RawLineSplit
	// RawGroup marks a Raw node whose children (not its token list) are
	// authoritative: one per source line once SplitLines has run.
	RawGroup
)

// Has reports whether f is set.
func (f RawFlag) Has(flag RawFlag) bool { return f&flag != 0 }

// RawValue is the intermediate token-container value (spec §4.3, §4.5).
// Before SplitLines runs it carries the full token slice; after, for a
// Group-flagged node, the slice is vestigial and the node's children are
// what matters.
type RawValue struct {
	node.Unhandled
	tokens []token.Token
	flags  RawFlag
}

// NewRaw builds a Raw value over tokens with the given flags.
func NewRaw(tokens []token.Token, flags RawFlag) RawValue {
	return RawValue{tokens: tokens, flags: flags}
}

func (v RawValue) Tokens() []token.Token { return v.tokens }
func (v RawValue) Flags() RawFlag        { return v.flags }
func (v RawValue) Has(f RawFlag) bool    { return v.flags.Has(f) }
func (v RawValue) Kind() node.Kind       { return node.KindRaw }
func (v RawValue) Bind(n *node.Node, e node.Enroller) {
	e.EnrollKind(n, node.KindRaw)
}
func (v RawValue) Describe(w *writer.Writer) error {
	if v.Has(RawGroup) {
		_, err := fmt.Fprintf(w, "raw(group)")
		return err
	}
	_, err := fmt.Fprintf(w, "raw(%d tokens)", len(v.tokens))
	return err
}

// TokenValue wraps a single lexer Token as a node payload — SplitLines
// creates one per token in each line it splits out, whether or not that
// line ends in a Break.
type TokenValue struct {
	node.Unhandled
	tok token.Token
}

// NewToken wraps t as a node payload.
func NewToken(t token.Token) TokenValue { return TokenValue{tok: t} }

func (v TokenValue) Token() token.Token { return v.tok }
func (v TokenValue) Kind() node.Kind    { return node.KindToken }
func (v TokenValue) Bind(n *node.Node, e node.Enroller) {
	e.EnrollKind(n, node.KindToken)
	switch v.tok.Kind() {
	case token.Word:
		e.EnrollSymbol(n, v.tok.Sym(), true)
	case token.Symbol:
		e.EnrollSymbol(n, v.tok.Sym(), false)
	}
}
func (v TokenValue) Describe(w *writer.Writer) error {
	_, err := fmt.Fprintf(w, "%s", v.tok)
	return err
}

// GroupValue is a bare collection marker with no behavior beyond being a
// Seq source for code lowering (spec's SUPPLEMENTED FEATURES, grounded on
// rust/boot/core/group.rs's empty `struct Group;`). No evaluator in this
// package ever constructs one directly — SplitLines uses Raw with the
// Group flag instead — but it's kept as a standalone Value kind so a
// future evaluator can produce a pure grouping node without Raw's
// tokenize-stage baggage.
type GroupValue struct{ node.Unhandled }

func (v GroupValue) Kind() node.Kind { return node.KindGroup }
func (v GroupValue) Bind(n *node.Node, e node.Enroller) {
	e.EnrollKind(n, node.KindGroup)
}
func (v GroupValue) Describe(w *writer.Writer) error {
	_, err := fmt.Fprintf(w, "group")
	return err
}

// LiteralKind discriminates LiteralValue's payload.
type LiteralKind uint8

const (
	LitBool LiteralKind = iota
	LitInt
	LitFloat
	LitStr
)

// LiteralValue is a settled literal: Bool, Int, Float or Str, produced by
// ParseLiteral from a matching Token node.
type LiteralValue struct {
	node.Unhandled
	kind LiteralKind
	b    bool
	i    int64
	f    float64
	s    string
}

func NewLiteralBool(b bool) LiteralValue    { return LiteralValue{kind: LitBool, b: b} }
func NewLiteralInt(i int64) LiteralValue    { return LiteralValue{kind: LitInt, i: i} }
func NewLiteralFloat(f float64) LiteralValue { return LiteralValue{kind: LitFloat, f: f} }
func NewLiteralStr(s string) LiteralValue   { return LiteralValue{kind: LitStr, s: s} }

func (v LiteralValue) LitKind() LiteralKind { return v.kind }
func (v LiteralValue) BoolValue() bool      { return v.b }
func (v LiteralValue) IntValue() int64      { return v.i }
func (v LiteralValue) FloatValue() float64  { return v.f }
func (v LiteralValue) StrValue() string     { return v.s }

func (v LiteralValue) Kind() node.Kind {
	switch v.kind {
	case LitBool:
		return node.KindLiteralBool
	case LitInt:
		return node.KindLiteralInt
	case LitFloat:
		return node.KindLiteralFloat
	default:
		return node.KindLiteralStr
	}
}
func (v LiteralValue) Bind(n *node.Node, e node.Enroller) {
	e.EnrollKind(n, v.Kind())
}
func (v LiteralValue) Describe(w *writer.Writer) error {
	var err error
	switch v.kind {
	case LitBool:
		_, err = fmt.Fprintf(w, "%t", v.b)
	case LitInt:
		_, err = fmt.Fprintf(w, "%d", v.i)
	case LitFloat:
		_, err = fmt.Fprintf(w, "%g", v.f)
	default:
		_, err = fmt.Fprintf(w, "%q", v.s)
	}
	return err
}

// PrintValue is the settled form of a `print` statement; its operands are
// its node's children (spec's SUPPLEMENTED FEATURES, rust/boot/core/print.rs).
type PrintValue struct{ node.Unhandled }

func (v PrintValue) Kind() node.Kind { return node.KindPrint }
func (v PrintValue) Bind(n *node.Node, e node.Enroller) {
	e.EnrollKind(n, node.KindPrint)
}
func (v PrintValue) Describe(w *writer.Writer) error {
	_, err := fmt.Fprintf(w, "print")
	return err
}

// ModuleValue groups one Source's settled top-level nodes under a single
// child of Program, so Source itself can lower to None (spec §4.6's
// literal mapping table) while the source's statements still flow through
// to C emission via Module's Seq lowering.
type ModuleValue struct {
	node.Unhandled
	src source.Source
}

// NewModuleValue builds a Module wrapping src's settled children.
func NewModuleValue(src source.Source) ModuleValue { return ModuleValue{src: src} }

func (v ModuleValue) Source() source.Source { return v.src }
func (v ModuleValue) Kind() node.Kind       { return node.KindModule }
func (v ModuleValue) Bind(n *node.Node, e node.Enroller) {
	e.EnrollKind(n, node.KindModule)
}
func (v ModuleValue) Describe(w *writer.Writer) error {
	_, err := fmt.Fprintf(w, "module %s", v.src)
	return err
}

// ProgramValue is the single root value wrapping every loaded source's
// Module (rust/boot/core/program.rs). It is the one value kind in this
// package with a non-trivial Process: an Output message asks it to render
// a full, indented dump of its own tree (each node's Describe text, one per
// line; spans are not printed).
type ProgramValue struct{}

// Output is the one Message variant the original source actually sends
// (rust/boot/value.rs's process(msg)): a request to dump a node tree to w.
type Output struct {
	Node *node.Node
	Out  *writer.Writer
}

func (v ProgramValue) Kind() node.Kind { return node.KindProgram }
func (v ProgramValue) Bind(n *node.Node, e node.Enroller) {
	e.EnrollKind(n, node.KindProgram)
}
func (v ProgramValue) Describe(w *writer.Writer) error {
	_, err := fmt.Fprintf(w, "program")
	return err
}
func (v ProgramValue) Process(msg any) (bool, error) {
	out, ok := msg.(Output)
	if !ok {
		return false, nil
	}
	if err := dumpNode(out.Node, out.Out); err != nil {
		return true, err
	}
	return true, nil
}

// dumpNode renders n and its descendants indented one level per depth,
// matching the original Writer-based node dump (rust/boot/format.rs).
func dumpNode(n *node.Node, w *writer.Writer) error {
	if err := n.Value().Describe(w); err != nil {
		return err
	}
	if _, err := w.WriteString("\n"); err != nil {
		return err
	}
	child := w.Indented()
	for _, c := range n.Children() {
		if err := dumpNode(c, child); err != nil {
			return err
		}
	}
	return nil
}
