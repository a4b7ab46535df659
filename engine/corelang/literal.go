package corelang

import (
	"strconv"
	"strings"

	"github.com/bitlang/bit/engine/diag"
	"github.com/bitlang/bit/engine/source"
)

// parseInt parses an Integer token's text: an optional 0x/0X (base 16),
// 0b/0B (base 2) or 0c/0C (base 8) prefix, else base 10, with '_' allowed
// anywhere between digits.
//
// Grounded on original_source/rust/boot/core/literal.rs's parse_digits,
// with its add-the-base step replaced by adding the digit (see DESIGN.md):
// each digit accumulates via checked_mul(base) then checked_add(digit),
// overflowing (and erroring with the literal's span) the moment either
// checked operation can't represent the result in 64 bits.
func parseInt(span source.Span) (int64, error) {
	text := span.Text()
	base := int64(10)
	switch {
	case strings.HasPrefix(text, "0x"), strings.HasPrefix(text, "0X"):
		text, base = text[2:], 16
	case strings.HasPrefix(text, "0b"), strings.HasPrefix(text, "0B"):
		text, base = text[2:], 2
	case strings.HasPrefix(text, "0c"), strings.HasPrefix(text, "0C"):
		text, base = text[2:], 8
	}

	var out int64
	seen := false
	for _, c := range text {
		if c == '_' {
			continue
		}
		d, ok := digitValue(c)
		if !ok || int64(d) >= base {
			return 0, diag.New(diag.ParseNumeric, span, "invalid digit %q for numeric literal in base %d", c, base)
		}
		seen = true
		mul, ok := checkedMul(out, base)
		if !ok {
			return 0, diag.New(diag.ParseNumeric, span, "numeric literal overflows 64 bits")
		}
		sum, ok := checkedAdd(mul, int64(d))
		if !ok {
			return 0, diag.New(diag.ParseNumeric, span, "numeric literal overflows 64 bits")
		}
		out = sum
	}
	if !seen {
		return 0, diag.New(diag.ParseNumeric, span, "numeric literal has no digits")
	}
	return out, nil
}

func digitValue(c rune) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}

func checkedMul(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	r := a * b
	if r/b != a {
		return 0, false
	}
	return r, true
}

func checkedAdd(a, b int64) (int64, bool) {
	r := a + b
	if (b > 0 && r < a) || (b < 0 && r > a) {
		return 0, false
	}
	return r, true
}

// parseFloat strips '_' from a Float token's text and parses the result
// with strconv.ParseFloat. The distilled spec's §4.5 prose ("underscores
// stripped; parsed into a 64-bit IEEE-754 number") is followed directly
// rather than the original's int/dec/exp-part reassembly in
// parse_float — that reassembly only relocates the decimal point
// correctly when an exponent is present in the pre-dot segment, and
// otherwise reassembles a malformed string; reproducing it verbatim would
// break this spec's own required `print 3.14` scenario (see DESIGN.md).
func parseFloat(span source.Span) (float64, error) {
	text := span.Text()
	var b strings.Builder
	b.Grow(len(text))
	for _, c := range text {
		if c == '_' {
			continue
		}
		b.WriteRune(c)
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, diag.New(diag.ParseNumeric, span, "invalid floating point literal: %v", err)
	}
	return v, nil
}

// parseStr strips the surrounding quote delimiters from a Literal token's
// text. Escape processing is not performed at this stage (spec §4.5):
// the token's span already covers any backslash sequences verbatim.
func parseStr(span source.Span) (string, error) {
	text := span.Text()
	if len(text) < 2 {
		return "", diag.New(diag.ParseUnterminated, span, "string literal missing delimiters")
	}
	delim := text[0]
	if delim != '\'' && delim != '"' {
		return "", diag.New(diag.ParseNumeric, span, "invalid string literal delimiter %q", delim)
	}
	if text[len(text)-1] != delim {
		return "", diag.New(diag.ParseUnterminated, span, "string literal missing closing %q delimiter", string(delim))
	}
	return text[1 : len(text)-1], nil
}
