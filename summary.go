package flatfa

import (
	"cmp"
	"slices"
)

// SummaryEntry describes one sequence.
type SummaryEntry struct {
	Header string
	Len    uint64
	// GC is the fraction of G and C bases, case-insensitive.
	GC float64
}

// Summary describes the sequences of a source.
type Summary struct {
	// Total is the number of bases over all sequences.
	Total uint64
	Count int
	// Entries are sorted by descending length, ties by header.
	Entries []SummaryEntry
}

// Summary computes per-sequence lengths and GC content. It reads every
// sequence once.
func (f *Fasta) Summary() (Summary, error) {
	s := Summary{
		Total:   f.idx.Total(),
		Count:   len(f.idx),
		Entries: make([]SummaryEntry, 0, len(f.idx)),
	}
	for _, h := range f.Keys() {
		rec, err := f.Get(h)
		if err != nil {
			return Summary{}, err
		}
		seq, err := rec.Bytes()
		if err != nil {
			return Summary{}, err
		}
		s.Entries = append(s.Entries, SummaryEntry{
			Header: h,
			Len:    uint64(len(seq)),
			GC:     gcFraction(seq),
		})
	}
	slices.SortStableFunc(s.Entries, func(a, b SummaryEntry) int {
		return cmp.Or(cmp.Compare(b.Len, a.Len), cmp.Compare(a.Header, b.Header))
	})
	return s, nil
}

func gcFraction(seq []byte) float64 {
	if len(seq) == 0 {
		return 0
	}
	var gc int
	for _, c := range seq {
		switch c {
		case 'G', 'g', 'C', 'c':
			gc++
		}
	}
	return float64(gc) / float64(len(seq))
}
