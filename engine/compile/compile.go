// Package compile is the top-level driver spec §6 calls execute(sources,
// options): it wires a fresh arena, node graph and binding registry,
// enrolls one SourceValue node per input, drains the scheduler, and lowers
// the settled tree to a Code tree via engine/code.
package compile

import (
	"log/slog"

	"github.com/bitlang/bit/engine/arena"
	"github.com/bitlang/bit/engine/bind"
	"github.com/bitlang/bit/engine/code"
	"github.com/bitlang/bit/engine/corelang"
	"github.com/bitlang/bit/engine/lexer"
	"github.com/bitlang/bit/engine/node"
	"github.com/bitlang/bit/engine/source"
)

// Result is a settled program: the node tree for inspection/dumping
// (--dump-nodes) alongside the Code tree lowered from it (--dump-code and
// C emission).
type Result struct {
	Program *node.Node
	Code    code.Code
}

// Run tokenizes, splits, and parses every source to a settled tree rooted
// at a single Program node (one Module child per source, in the order
// given), then lowers that tree to Code. Scheduler tracing goes to
// slog.Default(); use RunWithLogger to route it elsewhere (cmd/bit's
// --verbose does).
func Run(a *arena.Arena, srcs []source.Source) (*Result, error) {
	return RunWithLogger(a, srcs, slog.Default())
}

// RunWithLogger is Run with an explicit scheduler logger.
func RunWithLogger(a *arena.Arena, srcs []source.Source, log *slog.Logger) (*Result, error) {
	reg := bind.NewRegistryWithLogger(log)
	graph := node.NewGraph(a, reg)
	lex := lexer.New()
	corelang.RegisterAll(reg, lex)

	srcNodes := make([]*node.Node, len(srcs))
	for i, s := range srcs {
		srcNodes[i] = graph.NewNode(s.Span(), corelang.NewSourceValue(s))
	}

	if err := reg.Run(); err != nil {
		return nil, err
	}

	modules := make([]*node.Node, len(srcs))
	for i, s := range srcs {
		m := graph.NewNode(s.Span(), corelang.NewModuleValue(s))
		m.Replace(srcNodes[i].Children())
		m.SetDone(true)
		modules[i] = m
	}

	program := graph.NewNode(source.Empty(), corelang.NewProgramValue())
	program.Replace(modules)
	program.SetDone(true)

	c, err := code.Compile(program)
	if err != nil {
		return nil, err
	}
	return &Result{Program: program, Code: c}, nil
}
