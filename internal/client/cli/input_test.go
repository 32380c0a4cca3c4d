package cli

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readerFromLines(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
}

func TestGetSimpleText(t *testing.T) {
	var out strings.Builder
	got, err := GetSimpleText(readerFromLines("  alice@example.com  ", ""), "Enter email", &out)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got)
	assert.Contains(t, out.String(), "Enter email")
}

func TestGetSimpleText_PartialLineAtEOF(t *testing.T) {
	var out strings.Builder
	got, err := GetSimpleText(bufio.NewReader(strings.NewReader("no-newline")), "Enter email", &out)
	require.NoError(t, err)
	assert.Equal(t, "no-newline", got)
}

func TestGetSimpleText_EmptyInput(t *testing.T) {
	var out strings.Builder
	_, err := GetSimpleText(bufio.NewReader(strings.NewReader("")), "Enter email", &out)
	require.Error(t, err)
}

func TestGetMultiline_DotTerminates(t *testing.T) {
	var out strings.Builder
	got, err := GetMultiline(readerFromLines("line one", "line two", ".", ""), "Enter content", &out)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", got)
}

func TestGetMultiline_EOFTerminates(t *testing.T) {
	var out strings.Builder
	got, err := GetMultiline(readerFromLines("only line", ""), "Enter content", &out)
	require.NoError(t, err)
	assert.Equal(t, "only line", got)
}

func TestGetPassword_UsesSeam(t *testing.T) {
	orig := readPassword
	defer func() { readPassword = orig }()
	readPassword = func(fd int) ([]byte, error) {
		return []byte("s3cret"), nil
	}

	var out strings.Builder
	got, err := GetPassword("Enter password", &out)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
	assert.Contains(t, out.String(), "Enter password: ")
}
