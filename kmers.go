package flatfa

import (
	"fmt"
	"iter"
)

// AsKmers yields (offset, seq[offset:offset+k]) for offsets 0, k-overlap,
// 2(k-overlap), ... below len(seq). The final window is shorter than k when
// the sequence ends inside it.
func AsKmers(seq []byte, k, overlap int) (iter.Seq2[int, []byte], error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidK, k)
	}
	if overlap >= k {
		return nil, fmt.Errorf("%w: overlap %d, k %d", ErrInvalidOverlap, overlap, k)
	}
	return func(yield func(int, []byte) bool) {
		for i := 0; i < len(seq); i += k - overlap {
			if !yield(i, seq[i:min(i+k, len(seq))]) {
				return
			}
		}
	}, nil
}
