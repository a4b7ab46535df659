package code

import (
	"github.com/bitlang/bit/engine/corelang"
	"github.com/bitlang/bit/engine/diag"
	"github.com/bitlang/bit/engine/node"
	"github.com/bitlang/bit/engine/token"
)

// Compile walks a settled node tree and lowers it to a Code tree per spec
// §4.6's mapping table.
//
// Grounded on original_source/rust/boot/code/mod.rs's output_code dispatch.
// Source itself maps to None per the distilled spec's literal table
// ("Source, Token(other), None → None"); the meaningful sequence of a
// compiled source's statements instead flows through the Module node
// engine/compile's driver builds from each Source's settled children
// (see DESIGN.md's Open Question resolution) — so Compile is never
// actually called directly on a Source node in normal use, but the case
// is still handled for completeness, since the mapping is a total
// function over every node.Kind.
func Compile(n *node.Node) (Code, error) {
	return compileNode(n)
}

func compileChildren(n *node.Node) ([]Code, error) {
	kids := n.Children()
	out := make([]Code, 0, len(kids))
	for _, c := range kids {
		cc, err := compileNode(c)
		if err != nil {
			return nil, err
		}
		out = append(out, cc)
	}
	return out, nil
}

func compileNode(n *node.Node) (Code, error) {
	span := n.Span()

	switch val := n.Value().(type) {
	case corelang.LiteralValue:
		switch val.LitKind() {
		case corelang.LitBool:
			return BoolAt(val.BoolValue(), span), nil
		case corelang.LitInt:
			return SIntAt(val.IntValue(), span), nil
		case corelang.LitFloat:
			return FloatAt(val.FloatValue(), span), nil
		default:
			return StrAt(val.StrValue(), span), nil
		}

	case corelang.PrintValue:
		kids, err := compileChildren(n)
		if err != nil {
			return Code{}, err
		}
		return PrintAt(kids, span), nil

	case corelang.GroupValue, corelang.ProgramValue, corelang.ModuleValue:
		kids, err := compileChildren(n)
		if err != nil {
			return Code{}, err
		}
		return SeqAt(kids, span), nil

	case corelang.RawValue:
		if val.Has(corelang.RawGroup) {
			kids, err := compileChildren(n)
			if err != nil {
				return Code{}, err
			}
			return SeqAt(kids, span), nil
		}
		return Code{}, diag.New(diag.CompileUntranslatable, span, "node cannot be compiled")

	case corelang.TokenValue:
		if val.Token().Kind() == token.Literal {
			text := val.Token().Text()
			if len(text) >= 2 {
				text = text[1 : len(text)-1]
			}
			return StrAt(text, span), nil
		}
		return NoneAt(span), nil

	case corelang.SourceValue:
		return NoneAt(span), nil

	default:
		return NoneAt(span), nil
	}
}
