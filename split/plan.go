package split

import (
	"cmp"
	"errors"
	"slices"
)

// ErrInvalidCount is returned when fewer than one output file is requested.
var ErrInvalidCount = errors.New("number of output files must be positive")

// Item is a sequence to distribute.
type Item struct {
	Header string
	Len    uint64
}

const (
	// Below this smallest/largest ratio the longest remaining item goes to
	// the smallest bin.
	aggressiveRatio = 0.80
	// Below this ratio the shortest remaining item goes to the smallest bin.
	gentleRatio = 0.94
)

// Plan distributes items over n bins with a greedy heuristic and returns
// the bins in assignment order.
//
// Items are sorted by length. Each bin is seeded with one of the longest
// items. For every further item the ratio of the smallest to the largest
// bin total decides: below 0.80 the longest remaining item goes to the
// smallest bin, below 0.94 the shortest remaining item does, otherwise the
// longest remaining item goes to the next bin in round-robin order.
func Plan(items []Item, n int) ([][]Item, error) {
	if n < 1 {
		return nil, ErrInvalidCount
	}

	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b Item) int {
		return cmp.Or(cmp.Compare(a.Len, b.Len), cmp.Compare(a.Header, b.Header))
	})

	bins := make([][]Item, n)
	totals := make([]uint64, n)
	put := func(bin int, it Item) {
		bins[bin] = append(bins[bin], it)
		totals[bin] += it.Len
	}

	lo, hi := 0, len(sorted)-1
	added := 0
	for ; added < n && lo <= hi; added++ {
		put(added, sorted[hi])
		hi--
	}

	for ; lo <= hi; added++ {
		smallest, ratio := balance(totals)
		switch {
		case ratio < aggressiveRatio:
			put(smallest, sorted[hi])
			hi--
		case ratio < gentleRatio:
			put(smallest, sorted[lo])
			lo++
		default:
			put(added%n, sorted[hi])
			hi--
		}
	}
	return bins, nil
}

// balance returns the first bin with the smallest total and the ratio of
// the smallest to the largest total.
func balance(totals []uint64) (int, float64) {
	smallest := 0
	largest := totals[0]
	for i, t := range totals {
		if t < totals[smallest] {
			smallest = i
		}
		largest = max(largest, t)
	}
	if largest == 0 {
		return smallest, 1
	}
	return smallest, float64(totals[smallest]) / float64(largest)
}
