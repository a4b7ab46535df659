package writer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bitlang/bit/engine/writer"
)

func TestBasicWrite(t *testing.T) {
	w, buf := writer.NewString()
	_, err := w.WriteString("hello world!!!")
	require.NoError(t, err)
	require.Equal(t, "hello world!!!", buf.String())
}

func TestIndentedWrite(t *testing.T) {
	w, buf := writer.NewString()
	indented := w.Indented()
	_, err := indented.WriteString("Head:\nLine 1\nLine 2\n")
	require.NoError(t, err)
	require.Equal(t, "Head:\n    Line 1\n    Line 2\n", buf.String())
}

func TestSplitIndentAfterBreak(t *testing.T) {
	w, buf := writer.NewString()
	_, err := w.WriteString("Head(\n")
	require.NoError(t, err)
	inner := w.Indented()
	_, err = inner.WriteString("Line 1\nLine 2\n")
	require.NoError(t, err)
	_, err = w.WriteString(")")
	require.NoError(t, err)
	require.Equal(t, "Head(\n    Line 1\n    Line 2\n)", buf.String())
}

func TestWriteCRLF(t *testing.T) {
	w, buf := writer.NewString()
	indented := w.Indented()
	_, err := indented.WriteString("Head:\r\nLine 1\r\nLine 2\r")
	require.NoError(t, err)
	require.Equal(t, "Head:\n    Line 1\n    Line 2\n", buf.String())
}

func TestWriteCRAloneAndCRLFSplit(t *testing.T) {
	w, buf := writer.NewString()
	_, err := w.WriteString("Head(\r\n")
	require.NoError(t, err)
	inner := w.Indented()
	_, err = inner.WriteString("Line 1\rLine 2\r\n")
	require.NoError(t, err)
	_, err = w.WriteString(")")
	require.NoError(t, err)
	require.Equal(t, "Head(\n    Line 1\n    Line 2\n)", buf.String())
}

func TestBasicTextDedent(t *testing.T) {
	input := "line 1\nline 2"
	require.Equal(t, "line 1\nline 2", writer.Text(input))
}

func TestByteSize(t *testing.T) {
	require.Equal(t, "1 byte", writer.ByteSize(1))
	require.Equal(t, "512 bytes", writer.ByteSize(512))
	require.Equal(t, "2 KB", writer.ByteSize(2048))
	require.Equal(t, "1.5 MB", writer.ByteSize(writer.MB+writer.MB/2))
}
