package code_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bitlang/bit/engine/arena"
	"github.com/bitlang/bit/engine/bind"
	"github.com/bitlang/bit/engine/code"
	"github.com/bitlang/bit/engine/corelang"
	"github.com/bitlang/bit/engine/node"
	"github.com/bitlang/bit/engine/source"
)

func newGraph(t *testing.T) *node.Graph {
	t.Helper()
	return node.NewGraph(arena.New(arena.DefaultSize), bind.NewRegistry())
}

func TestCompileLiteralsLowerToMatchingExprKind(t *testing.T) {
	g := newGraph(t)
	span := source.Empty()

	n := g.NewNode(span, corelang.NewLiteralInt(42))
	c, err := code.Compile(n)
	require.NoError(t, err)
	require.Equal(t, code.SInt, c.Expr.Kind)
	require.Equal(t, int64(42), c.Expr.Int)

	n = g.NewNode(span, corelang.NewLiteralBool(true))
	c, err = code.Compile(n)
	require.NoError(t, err)
	require.Equal(t, code.Bool, c.Expr.Kind)
	require.True(t, c.Expr.Bool_)

	n = g.NewNode(span, corelang.NewLiteralFloat(3.14))
	c, err = code.Compile(n)
	require.NoError(t, err)
	require.Equal(t, code.Float, c.Expr.Kind)
	require.Equal(t, 3.14, c.Expr.Float_)

	n = g.NewNode(span, corelang.NewLiteralStr("hi"))
	c, err = code.Compile(n)
	require.NoError(t, err)
	require.Equal(t, code.Str, c.Expr.Kind)
	require.Equal(t, "hi", c.Expr.Str_)
}

func TestCompilePrintLowersChildrenAsOperands(t *testing.T) {
	g := newGraph(t)
	span := source.Empty()

	a := g.NewNode(span, corelang.NewLiteralInt(1))
	b := g.NewNode(span, corelang.NewLiteralInt(2))
	p := g.NewNode(span, corelang.PrintValue{})
	p.AppendNodes(a, b)

	c, err := code.Compile(p)
	require.NoError(t, err)
	require.Equal(t, code.Print, c.Expr.Kind)
	require.Len(t, c.Expr.Children, 2)
	require.Equal(t, int64(1), c.Expr.Children[0].Expr.Int)
	require.Equal(t, int64(2), c.Expr.Children[1].Expr.Int)
}

func TestCompileUngroupedRawIsUntranslatable(t *testing.T) {
	g := newGraph(t)
	n := g.NewNode(source.Empty(), corelang.NewRaw(nil, corelang.RawList))
	_, err := code.Compile(n)
	require.Error(t, err)
}

func TestCompileSourceLowersToNone(t *testing.T) {
	smap, err := source.NewSourceMap(t.TempDir())
	require.NoError(t, err)
	src := smap.FromString("test.bit", "")

	g := newGraph(t)
	n := g.NewNode(src.Span(), corelang.NewSourceValue(src))
	c, err := code.Compile(n)
	require.NoError(t, err)
	require.True(t, c.Expr.IsNone())
}
