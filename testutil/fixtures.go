package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Record is a fixture entry.
type Record struct {
	Header string
	Seq    string
}

// ThreeChrs are the records of the three_chrs.fasta fixture:
// chr1 repeats ACTG, chr2 is T, 78 A, T, chr3 is 3600 bp.
var ThreeChrs = []Record{
	{Header: "chr1", Seq: strings.Repeat("ACTG", 20)},
	{Header: "chr2", Seq: "T" + strings.Repeat("A", 78) + "T"},
	{Header: "chr3", Seq: "ACGCATT" + strings.Repeat("TTGCA", 716) + "T" + "TACGCACGCTAC"},
}

// Format renders records as FASTA with sequence lines wrapped at width.
// A width <= 0 writes each sequence on a single line.
func Format(records []Record, width int) string {
	var sb strings.Builder
	for _, rec := range records {
		sb.WriteString(">")
		sb.WriteString(rec.Header)
		sb.WriteString("\n")
		seq := rec.Seq
		if width <= 0 {
			sb.WriteString(seq)
			sb.WriteString("\n")
			continue
		}
		for len(seq) > 0 {
			n := min(width, len(seq))
			sb.WriteString(seq[:n])
			sb.WriteString("\n")
			seq = seq[n:]
		}
	}
	return sb.String()
}

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
	return path
}

// WriteThreeChrs writes the three_chrs.fasta fixture wrapped at 60 columns.
func WriteThreeChrs(t testing.TB, dir string) string {
	t.Helper()
	return WriteFile(t, dir, "three_chrs.fasta", Format(ThreeChrs, 60))
}
