package corelang

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bitlang/bit/engine/source"
)

func spanOf(t *testing.T, text string) source.Span {
	t.Helper()
	smap, err := source.NewSourceMap(t.TempDir())
	require.NoError(t, err)
	src := smap.FromString("test.bit", text)
	return src.Span()
}

func TestParseIntDecimal(t *testing.T) {
	v, err := parseInt(spanOf(t, "1_234"))
	require.NoError(t, err)
	require.Equal(t, int64(1234), v)
}

func TestParseIntHexBinOct(t *testing.T) {
	v, err := parseInt(spanOf(t, "0xff"))
	require.NoError(t, err)
	require.Equal(t, int64(255), v)

	v, err = parseInt(spanOf(t, "0b101"))
	require.NoError(t, err)
	require.Equal(t, int64(5), v)

	v, err = parseInt(spanOf(t, "0c17"))
	require.NoError(t, err)
	require.Equal(t, int64(15), v)
}

// The boundary overflow case: with digit-by-digit accumulation (the
// original's checked_add(base) quirk is not reproduced, see DESIGN.md),
// sixteen hex digits of f overflow the signed 64-bit total when the last
// digit's multiply by 16 runs.
func TestParseIntOverflowBoundary(t *testing.T) {
	_, err := parseInt(spanOf(t, "0xffffffffffffffff_"))
	require.Error(t, err)
}

func TestParseIntInvalidDigit(t *testing.T) {
	_, err := parseInt(spanOf(t, "0b102"))
	require.Error(t, err)
}

func TestParseFloatStripsUnderscores(t *testing.T) {
	v, err := parseFloat(spanOf(t, "3_14.1_5"))
	require.NoError(t, err)
	require.Equal(t, 314.15, v)
}

func TestParseFloatInvalid(t *testing.T) {
	_, err := parseFloat(spanOf(t, "3.14.15"))
	require.Error(t, err)
}

func TestParseStrStripsDelimiters(t *testing.T) {
	s, err := parseStr(spanOf(t, `'hello world'`))
	require.NoError(t, err)
	require.Equal(t, "hello world", s)

	s, err = parseStr(spanOf(t, `"double"`))
	require.NoError(t, err)
	require.Equal(t, "double", s)
}

func TestParseStrMismatchedDelimiters(t *testing.T) {
	_, err := parseStr(spanOf(t, `'unterminated"`))
	require.Error(t, err)
}

func TestParseStrTooShort(t *testing.T) {
	_, err := parseStr(spanOf(t, `'`))
	require.Error(t, err)
}
