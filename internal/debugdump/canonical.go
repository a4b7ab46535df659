// Package debugdump implements the --dump-nodes debugging aid: a
// deterministic, content-addressed snapshot of a settled node tree.
//
// Grounded on the teacher's core/planfmt package: a CanonicalX mirror of
// the live tree, encoded with fxamacker/cbor/v2's canonical (deterministic)
// mode and hashed with golang.org/x/crypto/blake2b the same way
// planfmt.Writer hashes a Plan. The hash exists so `bit --dump-nodes` runs
// on identical sources can be compared byte-for-byte — a cheap check for
// spec §8's determinism property — without diffing the much larger text
// dump produced by corelang's Writer-based Output message.
package debugdump

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"

	"github.com/bitlang/bit/engine/code"
	"github.com/bitlang/bit/engine/corelang"
	"github.com/bitlang/bit/engine/node"
)

// CanonicalNode is the CBOR-stable mirror of a settled node.Node: span
// bounds plus a text rendering of the value and its children, in order.
// Pointer-identity and arena layout (neither stable across runs) are
// deliberately absent.
type CanonicalNode struct {
	Kind     uint8           `cbor:"1,keyasint"`
	Start    int             `cbor:"2,keyasint"`
	End      int             `cbor:"3,keyasint"`
	Text     string          `cbor:"4,keyasint,omitempty"`
	Children []CanonicalNode `cbor:"5,keyasint,omitempty"`
}

// canonicalize walks n into its CanonicalNode mirror.
func canonicalize(n *node.Node) CanonicalNode {
	span := n.Span()
	cn := CanonicalNode{
		Kind:  uint8(n.Value().Kind()),
		Start: span.Start(),
		End:   span.End(),
		Text:  valueText(n.Value()),
	}
	for _, c := range n.Children() {
		cn.Children = append(cn.Children, canonicalize(c))
	}
	return cn
}

// valueText extracts the one piece of per-node data that Kind and span
// don't already capture: a token's text, or a literal's parsed value.
func valueText(v node.Value) string {
	switch vv := v.(type) {
	case corelang.TokenValue:
		return vv.Token().Text()
	case corelang.LiteralValue:
		switch vv.LitKind() {
		case corelang.LitBool:
			return fmt.Sprintf("%t", vv.BoolValue())
		case corelang.LitInt:
			return fmt.Sprintf("%d", vv.IntValue())
		case corelang.LitFloat:
			return fmt.Sprintf("%g", vv.FloatValue())
		default:
			return vv.StrValue()
		}
	default:
		return ""
	}
}

// Dump canonicalizes program's tree, CBOR-encodes it in canonical
// (deterministic) mode, and returns the encoded bytes plus their
// BLAKE2b-256 hash.
func Dump(program *node.Node) (blob []byte, hash [32]byte, err error) {
	cn := canonicalize(program)

	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, hash, fmt.Errorf("debugdump: building canonical encoder: %w", err)
	}
	blob, err = encMode.Marshal(cn)
	if err != nil {
		return nil, hash, fmt.Errorf("debugdump: encoding node tree: %w", err)
	}

	hash = blake2b.Sum256(blob)
	return blob, hash, nil
}

// DumpCode is Dump's counterpart for a lowered code.Code tree, used to
// compare --dump-code output across runs the same way Dump compares
// --dump-nodes output.
func DumpCode(c code.Code) (blob []byte, hash [32]byte, err error) {
	cc := canonicalizeCode(c)

	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, hash, fmt.Errorf("debugdump: building canonical encoder: %w", err)
	}
	blob, err = encMode.Marshal(cc)
	if err != nil {
		return nil, hash, fmt.Errorf("debugdump: encoding code tree: %w", err)
	}

	hash = blake2b.Sum256(blob)
	return blob, hash, nil
}

// CanonicalCode is CanonicalNode's counterpart for code.Code.
type CanonicalCode struct {
	Kind     uint8           `cbor:"1,keyasint"`
	Bool     bool            `cbor:"2,keyasint,omitempty"`
	Int      int64           `cbor:"3,keyasint,omitempty"`
	UInt     uint64          `cbor:"4,keyasint,omitempty"`
	Float    float64         `cbor:"5,keyasint,omitempty"`
	Str      string          `cbor:"6,keyasint,omitempty"`
	Children []CanonicalCode `cbor:"7,keyasint,omitempty"`
}

func canonicalizeCode(c code.Code) CanonicalCode {
	cc := CanonicalCode{
		Kind:  uint8(c.Expr.Kind),
		Bool:  c.Expr.Bool_,
		Int:   c.Expr.Int,
		UInt:  c.Expr.UInt,
		Float: c.Expr.Float_,
		Str:   c.Expr.Str_,
	}
	for _, child := range c.Expr.Children {
		cc.Children = append(cc.Children, canonicalizeCode(child))
	}
	return cc
}
