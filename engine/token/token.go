// Package token implements spec §3's Token: a tagged variant over
// {Break, Symbol, Word, Integer, Float, Literal, Comment}, each carrying a
// span.
//
// Grounded on original_source/rust/boot/token.rs.
package token

import (
	"fmt"

	"github.com/bitlang/bit/engine/source"
	"github.com/bitlang/bit/engine/symbol"
)

// Kind discriminates the token variant.
type Kind uint8

const (
	Break Kind = iota
	Symbol
	Word
	Integer
	Float
	Literal
	Comment
)

func (k Kind) String() string {
	switch k {
	case Break:
		return "break"
	case Symbol:
		return "symbol"
	case Word:
		return "word"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Literal:
		return "literal"
	case Comment:
		return "comment"
	default:
		return "unknown"
	}
}

// Token is an immutable lexical unit produced by the lexer.
type Token struct {
	kind Kind
	span source.Span
	sym  symbol.Symbol // populated for Symbol and Word kinds
}

func New(kind Kind, span source.Span) Token { return Token{kind: kind, span: span} }

// NewSymbol builds a Symbol-kind token carrying the interned operator text.
func NewSymbol(sym symbol.Symbol, span source.Span) Token {
	return Token{kind: Symbol, span: span, sym: sym}
}

// NewWord builds a Word-kind token carrying the interned identifier text.
func NewWord(sym symbol.Symbol, span source.Span) Token {
	return Token{kind: Word, span: span, sym: sym}
}

func (t Token) Kind() Kind         { return t.kind }
func (t Token) Span() source.Span  { return t.span }
func (t Token) Text() string       { return t.span.Text() }
func (t Token) Sym() symbol.Symbol { return t.sym }

// IsWord reports whether this token is a Word equal to text, used to match
// keywords like "print".
func (t Token) IsWord(text string) bool {
	return t.kind == Word && t.sym.Text() == text
}

func (t Token) String() string {
	switch t.kind {
	case Break:
		return "eol"
	case Symbol:
		return fmt.Sprintf("symbol(%s)", t.sym.Text())
	case Word:
		return fmt.Sprintf("word(%s)", t.sym.Text())
	default:
		return fmt.Sprintf("%s(%s)", t.kind, t.Text())
	}
}
