package source

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// Cursor is an immutable-iterator-style pointer into a Source, tracking
// byte offset, line (CR/LF/CRLF collapsed to one break each), tab-expanded
// column, and the indentation column of the current line — all per
// spec §4.2.
//
// Column accounting is East-Asian-width aware via golang.org/x/text/width
// (wide and fullwidth runes advance the column by 2) rather than a naive
// rune count, so Span.Column stays visually accurate for full-width
// characters inside comments and string literals — the teacher pack's
// lexers are otherwise unicode-width-blind, and x/text/width is the
// ecosystem's standard tool for that gap.
type Cursor struct {
	src   Source
	pos   int
	row   int
	col   int
	ind   int
	wasCR bool
}

// NewCursor returns a Cursor positioned at the start of src.
func NewCursor(src Source) Cursor {
	return Cursor{src: src}
}

// Span returns the span of length n starting at the cursor's position.
func (c Cursor) Span(n int) Span { return NewSpan(c.src, c.pos, c.pos+n) }

// Text returns the remaining, unconsumed source text.
func (c Cursor) Text() string { return c.src.Text()[c.pos:] }

// Len returns the number of remaining bytes.
func (c Cursor) Len() int { return c.src.Len() - c.pos }

// Offset returns the current byte offset.
func (c Cursor) Offset() int { return c.pos }

// Line returns the 1-based current line number.
func (c Cursor) Line() int { return c.row + 1 }

// Column returns the 1-based current column number.
func (c Cursor) Column() int { return c.col + 1 }

// Indent returns the indentation column (leading whitespace width) of the
// current line.
func (c Cursor) Indent() int { return c.ind }

// Peek returns the next rune without consuming it.
func (c Cursor) Peek() (rune, bool) {
	if c.Len() == 0 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(c.Text())
	return r, true
}

// Read consumes and returns the next rune.
func (c *Cursor) Read() (rune, bool) {
	r, ok := c.Peek()
	if !ok {
		return 0, false
	}
	c.advance(r)
	return r, true
}

// SkipLen advances the cursor by exactly n bytes, which must fall on rune
// boundaries.
func (c *Cursor) SkipLen(n int) {
	text := c.Text()[:n]
	for len(text) > 0 {
		r, size := utf8.DecodeRuneInString(text)
		c.advance(r)
		text = text[size:]
	}
}

// TextContext returns up to maxChars characters of the upcoming text, cut
// at the first whitespace or line break — used to build "invalid token"
// diagnostics (spec §4.2).
func (c Cursor) TextContext(maxChars int) string {
	text := c.Text()
	if idx := strings.IndexAny(text, " \t\f\r\n"); idx >= 0 {
		text = text[:idx]
	}
	if maxChars <= 0 {
		maxChars = 10
	}
	count := 0
	for i := range text {
		if count == maxChars {
			return text[:i]
		}
		count++
	}
	return text
}

func (c *Cursor) advance(r rune) {
	isIndent := c.ind == c.col && isSpace(r)
	switch r {
	case '\t':
		tab := c.src.TabSize()
		c.col += tab - (c.col % tab)
	case '\r':
		c.row++
		c.col = 0
		c.ind = 0
	case '\n':
		if !c.wasCR {
			c.row++
			c.col = 0
			c.ind = 0
		}
	default:
		c.col += runeWidth(r)
	}
	c.pos += utf8.RuneLen(r)
	c.wasCR = r == '\r'
	if isIndent {
		c.ind = c.col
	}
}

func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\f'
}
