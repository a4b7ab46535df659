// Package node implements spec §3's Node graph: a mutable, arena-allocated
// cell holding (span, value, done flag, parent, index, children), plus the
// Value interface every node payload implements.
//
// Value lives in the same package as Node (rather than its own package)
// because Value.Bind takes a *Node and Node.SetValue calls back into
// Value.Bind — splitting them across two packages would create an import
// cycle. Concrete Value kinds live downstream in engine/corelang.
//
// Grounded on original_source/rust/boot/node.rs and value.rs.
package node

import (
	"github.com/bitlang/bit/engine/symbol"
	"github.com/bitlang/bit/engine/writer"
)

// Kind identifies a Value's concrete type for binding-table dispatch and
// downcasting, standing in for the original's TypeId-based value_type().
type Kind uint8

const (
	KindSource Kind = iota
	KindToken
	KindRaw
	KindGroup
	KindLiteralBool
	KindLiteralInt
	KindLiteralFloat
	KindLiteralStr
	KindPrint
	KindProgram
	KindModule
)

func (k Kind) String() string {
	switch k {
	case KindSource:
		return "Source"
	case KindToken:
		return "Token"
	case KindRaw:
		return "Raw"
	case KindGroup:
		return "Group"
	case KindLiteralBool, KindLiteralInt, KindLiteralFloat, KindLiteralStr:
		return "Literal"
	case KindPrint:
		return "Print"
	case KindProgram:
		return "Program"
	case KindModule:
		return "Module"
	default:
		return "Unknown"
	}
}

// Enroller is implemented by the binding registry (engine/bind) and is
// handed to Value.Bind so a value can enroll its node into the appropriate
// binding tables without engine/node importing engine/bind.
type Enroller interface {
	// EnrollKind enrolls n into the table for every node of value kind k
	// within n's source (spec §4.3: "by concrete value kind, always").
	EnrollKind(n *Node, k Kind)
	// EnrollSymbol enrolls n into the table keyed by the exact symbol sym
	// — the Words table when isWord, else the Symbols table (spec §4.3:
	// "by exact value... for symbol-bearing tokens: by the specific
	// symbol").
	EnrollSymbol(n *Node, sym symbol.Symbol, isWord bool)
}

// Value is the polymorphic payload attached to each Node (spec §4.3, §9).
type Value interface {
	// Kind returns the concrete type identity, used for downcasting and
	// kind-based binding dispatch.
	Kind() Kind
	// Bind enrolls n into whichever binding tables this value's kind (and,
	// where applicable, exact content) requires.
	Bind(n *Node, e Enroller)
	// Describe writes a human-readable rendering of this value.
	Describe(w *writer.Writer) error
	// Process handles an optional out-of-band message, reporting whether
	// it recognized and handled it.
	Process(msg any) (bool, error)
}

// Unhandled is embeddable by Value implementations that never handle
// messages, matching the original's default no-op Process.
type Unhandled struct{}

func (Unhandled) Process(msg any) (bool, error) { return false, nil }
