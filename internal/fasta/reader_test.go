package fasta

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFasta(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.fasta")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReaderScenario(t *testing.T) {
	input := ">seq1\nATCG\nATCG\n\n>seq2\nMKTVL\n"
	r := NewReader(strings.NewReader(input))

	rec, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "seq1", rec.Header)
	assert.Equal(t, "ATCGATCG", rec.Sequence)
	assert.Equal(t, 8, rec.Len())
	assert.Equal(t, AlphabetNucleotide, rec.Alphabet())

	rec, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, "seq2", rec.Header)
	assert.Equal(t, "MKTVL", rec.Sequence)
	assert.Equal(t, 5, rec.Len())
	assert.Equal(t, AlphabetProtein, rec.Alphabet())

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReaderCRLF(t *testing.T) {
	lf, err := ReadAll(strings.NewReader(">a\nACGT\nGG\n>b\nTT\n"))
	require.NoError(t, err)
	crlf, err := ReadAll(strings.NewReader(">a\r\nACGT\r\nGG\r\n>b\r\nTT\r\n"))
	require.NoError(t, err)
	assert.Equal(t, lf, crlf)
}

func TestReaderEmptyInput(t *testing.T) {
	recs, err := ReadAll(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, recs)

	recs, err = ReadAll(strings.NewReader("\n\n  \n"))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestReaderHeaderOnlyRecord(t *testing.T) {
	recs, err := ReadAll(strings.NewReader(">lonely\n"))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "lonely", recs[0].Header)
	assert.Equal(t, "", recs[0].Sequence)
	assert.Equal(t, AlphabetUnknown, recs[0].Alphabet())
}

func TestReaderBareMarkerHeader(t *testing.T) {
	recs, err := ReadAll(strings.NewReader(">\nACGT\n"))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "", recs[0].Header)
	assert.Equal(t, "ACGT", recs[0].Sequence)
}

func TestReaderMalformed(t *testing.T) {
	r := NewReader(strings.NewReader("\nACGT\n>late\nTT\n"))
	_, err := r.Next()
	require.Error(t, err)

	var malformed *MalformedError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, 2, malformed.Line)
	assert.Equal(t, "ACGT", malformed.Text)
	assert.Contains(t, err.Error(), "line 2")

	// terminal state repeats
	_, again := r.Next()
	assert.Equal(t, err, again)
}

func TestReaderEmitsBeforeFailure(t *testing.T) {
	r := NewReader(strings.NewReader(">ok\nACGT\n>ok2\nTT\n"))
	first, err := r.Next()
	require.NoError(t, err)

	bad := NewReader(strings.NewReader("junk\n>never\nACGT\n"))
	_, err = bad.Next()
	require.Error(t, err)

	// records handed out earlier are unaffected by another reader failing
	assert.Equal(t, Record{Header: "ok", Sequence: "ACGT"}, first)
}

func TestFileReaderMissingSource(t *testing.T) {
	r := NewFileReader(filepath.Join(t.TempDir(), "nope.fasta"))
	_, err := r.Next()
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, again := r.Next()
	assert.Equal(t, err, again)
}

func TestFileReaderStreams(t *testing.T) {
	path := writeFasta(t, ">a\nACGT\n>b\nMKTVL*\n")
	r := NewFileReader(path)
	defer r.Close()

	rec, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "a", rec.Header)

	rec, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, "b", rec.Header)
	assert.Equal(t, AlphabetProtein, rec.Alphabet())

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReaderCloseEarly(t *testing.T) {
	path := writeFasta(t, ">a\nACGT\n>b\nTT\n")
	r := NewFileReader(path)

	_, err := r.Next()
	require.NoError(t, err)

	require.NoError(t, r.Close())
	require.NoError(t, r.Close()) // idempotent

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestPromptReader(t *testing.T) {
	path := writeFasta(t, ">p\nACGT\n")
	calls := 0
	r := NewPromptReader(func() (string, error) {
		calls++
		return path, nil
	})

	rec, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "p", rec.Header)

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, 1, calls)
}

func TestPromptReaderError(t *testing.T) {
	r := NewPromptReader(func() (string, error) {
		return "", errors.New("prompt cancelled")
	})
	_, err := r.Next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prompt cancelled")
}
