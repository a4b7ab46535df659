// Package lexer implements spec §4.2's lexer contract: given a Cursor
// positioned at a source's start, produce an ordered sequence of Tokens
// covering the entire input.
//
// Grounded on original_source/rust/boot/lexer.rs, adapted to return a
// Go error (wrapping engine/diag) instead of panicking, and to use
// engine/symbol's Symbol rather than a second unrelated Symbol type.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/bitlang/bit/engine/diag"
	"github.com/bitlang/bit/engine/source"
	"github.com/bitlang/bit/engine/symbol"
	"github.com/bitlang/bit/engine/token"
)

// Lexer tokenizes source text, optionally recognizing a caller-registered
// set of operator symbols via longest-prefix match.
type Lexer struct {
	symbols *symbolTable
}

// New creates an empty Lexer with no registered operator symbols.
func New() *Lexer { return &Lexer{symbols: newSymbolTable()} }

// AddSymbol registers an operator/punctuation string for longest-prefix
// matching.
func (l *Lexer) AddSymbol(s string) { l.symbols.add(s) }

// AddSymbols registers every string in ss.
func (l *Lexer) AddSymbols(ss ...string) {
	for _, s := range ss {
		l.AddSymbol(s)
	}
}

// Tokenize consumes cursor to EOF, returning every recognized Token in
// order.
func (l *Lexer) Tokenize(cursor *source.Cursor) ([]token.Token, error) {
	var out []token.Token
	for cursor.Len() > 0 {
		text := cursor.Text()

		skip := 0
		for _, r := range text {
			if !isSpace(r) {
				break
			}
			skip += utf8.RuneLen(r)
		}
		if skip > 0 {
			cursor.SkipLen(skip)
			continue
		}
		if cursor.Len() == 0 {
			break
		}

		tok, ok, err := l.matchBreak(cursor, text)
		if err != nil {
			return nil, err
		}
		if !ok {
			tok, ok = l.matchNext(cursor, text)
		}
		if !ok {
			sym, found := l.symbols.read(text)
			if !found {
				ctx := cursor.TextContext(5)
				sep := ""
				if ctx != "" {
					sep = " -- "
				}
				return nil, diag.New(diag.LexInvalidToken, cursor.Span(0),
					"invalid token at %s%s%s", cursor.Span(0), sep, ctx)
			}
			tok = token.NewSymbol(symbol.Get(sym), cursor.Span(len(sym)))
			ok = true
		}

		out = append(out, tok)
		cursor.SkipLen(tok.Span().Len())
	}
	return out, nil
}

func (l *Lexer) matchBreak(cursor *source.Cursor, text string) (token.Token, bool, error) {
	r, _ := utf8.DecodeRuneInString(text)
	if r != '\r' && r != '\n' {
		return token.Token{}, false, nil
	}
	n := 1
	if strings.HasPrefix(text, "\r\n") {
		n = 2
	}
	return token.New(token.Break, cursor.Span(n)), true, nil
}

func (l *Lexer) matchNext(cursor *source.Cursor, text string) (token.Token, bool) {
	r, _ := utf8.DecodeRuneInString(text)

	switch {
	case r == '#':
		n := len(text)
		for i, c := range text {
			if c == '\n' || c == '\r' {
				n = i
				break
			}
		}
		return token.New(token.Comment, cursor.Span(n)), true

	case r == '\'' || r == '"':
		quote := r
		escape := false
		n := len(text)
		for i, c := range text {
			if c == quote && i > 0 && !escape {
				n = i + utf8.RuneLen(c)
				break
			}
			if escape {
				escape = false
			} else if c == '\\' {
				escape = true
			}
		}
		return token.New(token.Literal, cursor.Span(n)), true

	case isDigit(r):
		return l.matchNumber(cursor, text), true

	default:
		n := 0
		for i, c := range text {
			if !isIdent(c, i > 0) {
				n = i
				break
			}
			n = len(text)
		}
		if n == 0 {
			return token.Token{}, false
		}
		word := text[:n]
		return token.NewWord(symbol.Get(word), cursor.Span(n)), true
	}
}

func (l *Lexer) matchNumber(cursor *source.Cursor, text string) token.Token {
	n := countDigits(text)
	isFloat := false

	if strings.HasPrefix(text[n:], ".") {
		pos := n + 1
		fracLen := countDigits(text[pos:])
		if fracLen > 0 {
			n = pos + fracLen + countDigits(text[pos+fracLen:])
			isFloat = true
		}
	}

	rest := text[n:]
	if len(rest) > 0 && (rest[0] == 'e' || rest[0] == 'E') {
		expLen := 1
		rest2 := rest[1:]
		if len(rest2) > 0 && (rest2[0] == '+' || rest2[0] == '-') {
			expLen++
			rest2 = rest2[1:]
		}
		digits := countDigits(rest2)
		if digits > 0 {
			n += expLen + digits
			isFloat = true
		}
	}

	n += countAlphaNum(text[n:])
	span := cursor.Span(n)
	if isFloat {
		return token.New(token.Float, span)
	}
	return token.New(token.Integer, span)
}

func countDigits(s string) int {
	n := 0
	for n < len(s) {
		c := s[n]
		if c == '_' || (c >= '0' && c <= '9') {
			n++
			continue
		}
		break
	}
	return n
}

func countAlphaNum(s string) int {
	n := 0
	for _, r := range s {
		if !(r == '_' || isAlphaNumRune(r)) {
			break
		}
		n += utf8.RuneLen(r)
	}
	return n
}

func isAlphaNumRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdent(r rune, notFirst bool) bool {
	if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
		return true
	}
	return notFirst && isDigit(r)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\f'
}
