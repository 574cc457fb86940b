package fasta

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "junk before header\n>chr1 first\nACGT\nAC  \n\n>chr2\r\nTT\r\nGG\n>empty\n>chr3\nN"

func collect(t *testing.T, r io.Reader, keyFn KeyFunc) []Record {
	t.Helper()
	var out []Record
	for rec, err := range Records(r, keyFn) {
		require.NoError(t, err)
		out = append(out, rec)
	}
	return out
}

func TestRecords(t *testing.T) {
	recs := collect(t, strings.NewReader(sample), nil)
	require.Len(t, recs, 4)

	assert.Equal(t, "chr1 first", recs[0].Header)
	assert.Equal(t, "ACGTAC", string(recs[0].Seq))
	assert.Equal(t, "chr2", recs[1].Header)
	assert.Equal(t, "TTGG", string(recs[1].Seq))
	assert.Equal(t, "empty", recs[2].Header)
	assert.Empty(t, recs[2].Seq)
	assert.Equal(t, "chr3", recs[3].Header)
	assert.Equal(t, "N", string(recs[3].Seq))
}

func TestRecords_KeyFunc(t *testing.T) {
	recs := collect(t, strings.NewReader(">a extra\nAC\n>b  extra\nGT\n"), FirstField)
	require.Len(t, recs, 2)
	assert.Equal(t, "a", recs[0].Header)
	assert.Equal(t, "b", recs[1].Header)

	assert.Equal(t, "c", FirstField("c\tdescription"))
	assert.Equal(t, "plain", FirstField("plain"))
}

func TestRecords_EarlyStop(t *testing.T) {
	n := 0
	for range Records(strings.NewReader(sample), nil) {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

type failingReader struct{ err error }

func (f failingReader) Read([]byte) (int, error) { return 0, f.err }

func TestRecords_ReadError(t *testing.T) {
	boom := errors.New("boom")
	r := io.MultiReader(strings.NewReader(">a\nAC\n"), failingReader{boom})

	var gotErr error
	for _, err := range Records(r, nil) {
		if err != nil {
			gotErr = err
		}
	}
	assert.ErrorIs(t, gotErr, boom)
}

func TestRecords_LongLine(t *testing.T) {
	seq := strings.Repeat("ACGT", 100_000)
	recs := collect(t, strings.NewReader(">long\n"+seq+"\n"), nil)
	require.Len(t, recs, 1)
	assert.Equal(t, len(seq), len(recs[0].Seq))
}

func writeCompressed(t *testing.T, c Compression, payload string) string {
	t.Helper()
	var buf bytes.Buffer
	switch c {
	case Gzip:
		w := gzip.NewWriter(&buf)
		_, err := io.WriteString(w, payload)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case Zstd:
		w, err := zstd.NewWriter(&buf)
		require.NoError(t, err)
		_, err = io.WriteString(w, payload)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case LZ4:
		w := lz4.NewWriter(&buf)
		_, err := io.WriteString(w, payload)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	default:
		buf.WriteString(payload)
	}
	path := filepath.Join(t.TempDir(), "src.fa")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestOpenSource_Compressed(t *testing.T) {
	payload := ">x\nACGT\nAC\n>y\nGG\n"

	for _, c := range []Compression{None, Gzip, Zstd, LZ4} {
		t.Run(string(c), func(t *testing.T) {
			path := writeCompressed(t, c, payload)

			fh, err := os.Open(path)
			require.NoError(t, err)
			defer fh.Close()
			rc, detected, err := NewReader(fh)
			require.NoError(t, err)
			assert.Equal(t, c, detected)
			require.NoError(t, rc.Close())

			src, err := OpenSource(path)
			require.NoError(t, err)
			defer src.Close()

			recs := collect(t, src, nil)
			require.Len(t, recs, 2)
			assert.Equal(t, "ACGTAC", string(recs[0].Seq))
			assert.Equal(t, "GG", string(recs[1].Seq))
		})
	}
}

func TestOpenSource_Missing(t *testing.T) {
	_, err := OpenSource(filepath.Join(t.TempDir(), "missing.fa"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.Write("chr1_1", []byte("ACGT")))
	require.NoError(t, w.Write("chr1_5", nil))
	require.NoError(t, w.Flush())

	assert.Equal(t, ">chr1_1\nACGT\n>chr1_5\n\n", buf.String())

	recs := collect(t, &buf, nil)
	require.Len(t, recs, 2)
	assert.Equal(t, "chr1_5", recs[1].Header)
}

func TestFileRecords(t *testing.T) {
	path := writeCompressed(t, Gzip, ">a x\nAC\n>b\nGT\n")

	var headers []string
	for rec, err := range FileRecords(path, FirstField) {
		require.NoError(t, err)
		headers = append(headers, rec.Header)
	}
	assert.Equal(t, []string{"a", "b"}, headers)

	for _, err := range FileRecords(filepath.Join(t.TempDir(), "nope.fa"), nil) {
		assert.ErrorIs(t, err, os.ErrNotExist)
	}
}
