// Package cemit implements spec §6's C emission back end: a settled Code
// tree is walked in order and rendered to a single C translation unit
// ending in `int main(int argc, char *argv[])` that executes each
// statement in turn.
//
// Every literal value a Print operand carries is already known at lower
// time (this bootstrap language has no variables), so each operand is
// emitted as a local `const` declaration of the matching C type, printed
// through the matching printf conversion — real, if trivial, use of the
// declared type rather than folding straight to a pre-rendered string.
// That is also why `<stdbool.h>`/`<inttypes.h>` are only emitted when a
// Bool/SInt/UInt operand actually appears, matching spec §6's "on demand".
package cemit

import (
	"fmt"
	"strings"

	"github.com/bitlang/bit/engine/code"
)

// Emit renders c to a complete C source file.
func Emit(c code.Code) string {
	var needBool, needInt bool
	stmts := flatten(c, &needBool, &needInt)

	var out strings.Builder
	out.WriteString("#include <stdio.h>\n")
	if needBool {
		out.WriteString("#include <stdbool.h>\n")
	}
	if needInt {
		out.WriteString("#include <inttypes.h>\n")
	}
	out.WriteString("\nint main(int argc, char *argv[]) {\n")
	for _, s := range stmts {
		out.WriteString(s)
	}
	out.WriteString("\treturn 0;\n}\n")
	return out.String()
}

// flatten walks c, collecting one rendered C statement block per Print
// node encountered (in source order); Seq/Program/Module nodes recurse
// into their children, None/Unit contribute nothing.
func flatten(c code.Code, needBool, needInt *bool) []string {
	switch c.Expr.Kind {
	case code.Seq:
		var out []string
		for _, child := range c.Expr.Children {
			out = append(out, flatten(child, needBool, needInt)...)
		}
		return out

	case code.Print:
		return []string{emitPrint(c, needBool, needInt)}

	default:
		// None, Unit, and any bare literal outside of Print (not produced
		// by this compiler's evaluators) have no observable effect.
		return nil
	}
}

// emitPrint renders one Print node to a braced C statement block: one
// const-typed declaration per operand, followed by a single printf call
// whose format string concatenates one conversion per operand, separated
// by literal spaces, ending in a newline.
func emitPrint(c code.Code, needBool, needInt *bool) string {
	var b strings.Builder
	b.WriteString("\t{\n")

	var fmtParts []string
	var args []string
	for i, operand := range c.Expr.Children {
		switch operand.Expr.Kind {
		case code.Bool:
			*needBool = true
			fmt.Fprintf(&b, "\t\tconst bool v%d = %t;\n", i, operand.Expr.Bool_)
			fmtParts = append(fmtParts, `"%s"`)
			args = append(args, fmt.Sprintf("v%d ? \"true\" : \"false\"", i))
		case code.SInt:
			*needInt = true
			fmt.Fprintf(&b, "\t\tconst int64_t v%d = %d;\n", i, operand.Expr.Int)
			fmtParts = append(fmtParts, `"%" PRId64`)
			args = append(args, fmt.Sprintf("v%d", i))
		case code.UInt:
			*needInt = true
			fmt.Fprintf(&b, "\t\tconst uint64_t v%d = %d;\n", i, operand.Expr.UInt)
			fmtParts = append(fmtParts, `"%" PRIu64`)
			args = append(args, fmt.Sprintf("v%d", i))
		case code.Float:
			fmt.Fprintf(&b, "\t\tconst double v%d = %s;\n", i, formatFloatLiteral(operand.Expr.Float_))
			fmtParts = append(fmtParts, `"%g"`)
			args = append(args, fmt.Sprintf("v%d", i))
		case code.Str:
			fmt.Fprintf(&b, "\t\tconst char *v%d = %s;\n", i, cStringLiteral(operand.Expr.Str_))
			fmtParts = append(fmtParts, `"%s"`)
			args = append(args, fmt.Sprintf("v%d", i))
		case code.None, code.Unit:
			continue
		default:
			continue
		}
	}

	format := joinFormat(fmtParts)
	if len(args) == 0 {
		fmt.Fprintf(&b, "\t\tprintf(%s);\n", format)
	} else {
		fmt.Fprintf(&b, "\t\tprintf(%s, %s);\n", format, strings.Join(args, ", "))
	}
	b.WriteString("\t}\n")
	return b.String()
}

// joinFormat assembles the adjacent-string-literal format argument: each
// operand's conversion fragment, separated by a literal runtime space,
// ending in a literal newline.
func joinFormat(parts []string) string {
	var out []string
	for i, p := range parts {
		if i > 0 {
			out = append(out, `" "`)
		}
		out = append(out, p)
	}
	out = append(out, `"\n"`)
	return strings.Join(out, " ")
}

// formatFloatLiteral renders f as a C floating-point literal that
// round-trips through strconv-equivalent precision.
func formatFloatLiteral(f float64) string {
	return fmt.Sprintf("%v", f)
}

// cStringLiteral renders s as a quoted C string literal, escaping `"` and
// `\` and rendering any byte outside printable ASCII as `\xNN` (spec §6).
// A `\x` escape greedily consumes following hex digits in C, so a literal
// hex-digit byte immediately after one is pushed into its own adjacent
// string-literal fragment to stop it being absorbed.
func cStringLiteral(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	afterHexEscape := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
			afterHexEscape = false
		case c >= 0x20 && c < 0x7f:
			if afterHexEscape && isHexDigit(c) {
				b.WriteString(`" "`)
			}
			b.WriteByte(c)
			afterHexEscape = false
		default:
			fmt.Fprintf(&b, `\x%02x`, c)
			afterHexEscape = true
		}
	}
	b.WriteByte('"')
	return b.String()
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
