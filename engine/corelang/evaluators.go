package corelang

import (
	"github.com/bitlang/bit/engine/bind"
	"github.com/bitlang/bit/engine/lexer"
	"github.com/bitlang/bit/engine/node"
	"github.com/bitlang/bit/engine/source"
	"github.com/bitlang/bit/engine/token"
)

// Precedence ordering for the standard evaluators (spec §4.5's
// SUPPLEMENTED note: a named enum, not bare integers, matching the
// original's intent without a type it didn't have).
const (
	Sources   bind.Precedence = 0
	LineSplit bind.Precedence = 10
	Literal   bind.Precedence = 20
	Print     bind.Precedence = 30
)

// RegisterAll attaches the four standard evaluators to reg, using lex to
// tokenize each Source node Tokenize encounters.
func RegisterAll(reg *bind.Registry, lex *lexer.Lexer) {
	reg.RegisterGlobal(node.KindSource, tokenizeEval{lex: lex})
	reg.RegisterGlobal(node.KindRaw, splitLinesEval{})
	reg.RegisterGlobal(node.KindToken, parseLiteralEval{})
	reg.RegisterWord("print", parsePrintEval{})
}

// tokenizeEval runs the lexer over each Source node's text, attaching a
// single Raw(List) child (spec §4.5's Tokenize).
type tokenizeEval struct{ lex *lexer.Lexer }

func (tokenizeEval) Precedence() bind.Precedence { return Sources }

func (e tokenizeEval) Execute(nodes []*node.Node) error {
	for _, n := range nodes {
		sv, ok := n.Value().(SourceValue)
		if !ok {
			continue
		}
		cursor := source.NewCursor(sv.Source())
		toks, err := e.lex.Tokenize(&cursor)
		if err != nil {
			return err
		}
		child := n.Graph().NewNode(n.Span(), NewRaw(toks, RawList))
		n.Replace([]*node.Node{child})
		n.SetDone(true)
	}
	return nil
}

// splitLinesEval splits a Raw(List)'s tokens on Break, replacing it with
// one Raw(Group) child per non-empty line, each carrying one Token child
// per lexical token in that line. A trailing run of tokens with no
// terminating Break still forms its own line (the final line of a source
// need not end in a newline); only a Raw whose token list holds nothing but
// Breaks — including an empty list, the lexer's output for an empty
// source — is flagged LineSplit in place with no new children (spec §4.5's
// boundary case).
type splitLinesEval struct{}

func (splitLinesEval) Precedence() bind.Precedence { return LineSplit }

func (splitLinesEval) Execute(nodes []*node.Node) error {
	for _, n := range nodes {
		rv, ok := n.Value().(RawValue)
		if !ok || rv.Has(RawLineSplit) {
			continue
		}
		toks := rv.Tokens()

		var lines [][]token.Token
		cur := 0
		for i, t := range toks {
			if t.Kind() != token.Break {
				continue
			}
			if i > cur {
				lines = append(lines, toks[cur:i])
			}
			cur = i + 1
		}
		if cur < len(toks) {
			lines = append(lines, toks[cur:])
		}
		if len(lines) == 0 {
			n.SetValue(NewRaw(toks, rv.Flags()|RawLineSplit))
			continue
		}

		lineNodes := make([]*node.Node, 0, len(lines))
		for _, lineToks := range lines {
			lineSpan := spanOfTokens(lineToks, n.Span())
			lineNode := n.Graph().NewNode(lineSpan, NewRaw(lineToks, RawGroup|RawLineSplit))
			tokNodes := make([]*node.Node, 0, len(lineToks))
			for _, t := range lineToks {
				tokNodes = append(tokNodes, n.Graph().NewNode(t.Span(), NewToken(t)))
			}
			lineNode.Replace(tokNodes)
			lineNodes = append(lineNodes, lineNode)
		}

		n.SetValue(NewRaw(nil, RawGroup|RawLineSplit))
		n.Replace(lineNodes)
		n.SetDone(true)
	}
	return nil
}

// parseLiteralEval converts an Integer, Float, Literal or Word(true/false)
// Token node into a settled LiteralValue node at the same position in its
// parent (spec §4.5's ParseLiteral).
type parseLiteralEval struct{}

func (parseLiteralEval) Precedence() bind.Precedence { return Literal }

func (parseLiteralEval) Execute(nodes []*node.Node) error {
	for _, n := range nodes {
		tv, ok := n.Value().(TokenValue)
		if !ok {
			continue
		}
		t := tv.Token()

		var lit LiteralValue
		switch t.Kind() {
		case token.Word:
			switch {
			case t.IsWord("true"):
				lit = NewLiteralBool(true)
			case t.IsWord("false"):
				lit = NewLiteralBool(false)
			default:
				continue
			}
		case token.Integer:
			v, err := parseInt(t.Span())
			if err != nil {
				return err
			}
			lit = NewLiteralInt(v)
		case token.Float:
			v, err := parseFloat(t.Span())
			if err != nil {
				return err
			}
			lit = NewLiteralFloat(v)
		case token.Literal:
			s, err := parseStr(t.Span())
			if err != nil {
				return err
			}
			lit = NewLiteralStr(s)
		default:
			continue
		}

		n.SetDone(true)
		replaceInPlace(n, n.Graph().NewNode(t.Span(), lit))
	}
	return nil
}

// parsePrintEval rewrites a Word("print") node and every sibling that
// follows it into a single Print node occupying the print word's former
// position (spec §4.5's ParsePrint, rust/boot/core/print.rs).
type parsePrintEval struct{}

func (parsePrintEval) Precedence() bind.Precedence { return Print }

func (parsePrintEval) Execute(nodes []*node.Node) error {
	for _, n := range nodes {
		n.SetDone(true)
		parent := n.Parent()
		if parent == nil {
			continue
		}
		idx := n.Index()
		removed := parent.RemoveNodes(idx, parent.Len()-idx)

		span := n.Span()
		if len(removed) > 1 {
			spans := make([]source.Span, len(removed))
			for i, r := range removed {
				spans[i] = r.Span()
			}
			span = source.MergeAll(spans)
		}

		printNode := n.Graph().NewNode(span, PrintValue{})
		printNode.SetDone(true)
		if len(removed) > 1 {
			printNode.AppendNodes(removed[1:]...)
		}
		parent.InsertNodes(idx, printNode)
	}
	return nil
}

// replaceInPlace swaps old for replacement at old's current position in
// its parent, if it has one (a parentless node — unreachable in practice,
// since every Token node is created as a line's child — is left alone).
func replaceInPlace(old, replacement *node.Node) {
	parent := old.Parent()
	if parent == nil {
		return
	}
	idx := old.Index()
	parent.RemoveNodes(idx, 1)
	parent.InsertNodes(idx, replacement)
}

func spanOfTokens(toks []token.Token, fallback source.Span) source.Span {
	if len(toks) == 0 {
		return fallback
	}
	spans := make([]source.Span, len(toks))
	for i, t := range toks {
		spans[i] = t.Span()
	}
	return source.MergeAll(spans)
}
