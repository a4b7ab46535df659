package debugdump

import (
	"github.com/bitlang/bit/engine/corelang"
	"github.com/bitlang/bit/engine/node"
	"github.com/bitlang/bit/engine/writer"
)

// WriteText renders program's tree as indented, human-readable text by
// sending corelang's Output message through Value.Process — the same path
// the original Rust CLI used for its node dump (rust/boot/format.rs).
func WriteText(program *node.Node, w *writer.Writer) error {
	handled, err := program.Value().Process(corelang.Output{Node: program, Out: w})
	if err != nil {
		return err
	}
	if !handled {
		return writeTextFallback(program, w)
	}
	return nil
}

// writeTextFallback covers a root value that doesn't implement Process
// (any Value other than corelang.ProgramValue), walking the tree directly
// instead of relying on the Output message protocol.
func writeTextFallback(n *node.Node, w *writer.Writer) error {
	if err := n.Value().Describe(w); err != nil {
		return err
	}
	if _, err := w.WriteString("\n"); err != nil {
		return err
	}
	child := w.Indented()
	for _, c := range n.Children() {
		if err := writeTextFallback(c, child); err != nil {
			return err
		}
	}
	return nil
}
