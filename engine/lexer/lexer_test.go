package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bitlang/bit/engine/lexer"
	"github.com/bitlang/bit/engine/source"
	"github.com/bitlang/bit/engine/token"
)

func tokenize(t *testing.T, text string) []token.Token {
	t.Helper()
	smap, err := source.NewSourceMap(t.TempDir())
	require.NoError(t, err)
	src := smap.FromString("test.bit", text)
	cursor := source.NewCursor(src)
	toks, err := lexer.New().Tokenize(&cursor)
	require.NoError(t, err)
	return toks
}

// Boundary: the lexer on the empty string yields the empty token list
// (spec §8).
func TestTokenizeEmptySourceYieldsNoTokens(t *testing.T) {
	require.Empty(t, tokenize(t, ""))
}

func TestTokenizeWordAndIntegerLiteral(t *testing.T) {
	toks := tokenize(t, "print 42")
	require.Len(t, toks, 2)
	require.Equal(t, token.Word, toks[0].Kind())
	require.Equal(t, "print", toks[0].Text())
	require.Equal(t, token.Integer, toks[1].Kind())
	require.Equal(t, "42", toks[1].Text())
}

// A comment runs to end of line as a single Comment token (downstream
// evaluators, not the lexer, are what ignore it — see
// engine/compile's end-to-end comment scenario).
func TestTokenizeCommentRunsToEndOfLine(t *testing.T) {
	toks := tokenize(t, "print 1 # trailing comment\nprint 2")
	var kinds []token.Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind())
	}
	require.Contains(t, kinds, token.Break)
	require.Contains(t, kinds, token.Comment)

	for _, tok := range toks {
		if tok.Kind() == token.Comment {
			require.Equal(t, "# trailing comment", tok.Text())
		}
	}
}

func TestTokenizeCRLFAndCRCollapseToOneBreak(t *testing.T) {
	toks := tokenize(t, "print 1\r\nprint 2\rprint 3")
	breaks := 0
	for _, tok := range toks {
		if tok.Kind() == token.Break {
			breaks++
		}
	}
	require.Equal(t, 2, breaks)
}
