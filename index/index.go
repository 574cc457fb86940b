package index

import (
	"errors"
	"fmt"
	"slices"
)

// ErrDuplicateHeader is matched by every DuplicateHeaderError.
var ErrDuplicateHeader = errors.New("duplicate header")

// DuplicateHeaderError reports a header that occurs more than once in a source.
type DuplicateHeaderError struct {
	Header string
}

func (e *DuplicateHeaderError) Error() string {
	return fmt.Sprintf("headers must be unique: %s is duplicated", e.Header)
}

// Is allows errors.Is(err, ErrDuplicateHeader).
func (e *DuplicateHeaderError) Is(target error) bool {
	return target == ErrDuplicateHeader
}

// Span is a half-open byte range [Start, Stop) in a flattened store.
type Span struct {
	Start uint64
	Stop  uint64
}

// Len returns Stop - Start.
func (s Span) Len() uint64 { return s.Stop - s.Start }

// Index maps a record header to its span.
type Index map[string]Span

// Add records header at span, rejecting duplicates.
func (idx Index) Add(header string, span Span) error {
	if _, ok := idx[header]; ok {
		return &DuplicateHeaderError{Header: header}
	}
	idx[header] = span
	return nil
}

// Keys returns all headers in sorted order.
func (idx Index) Keys() []string {
	keys := make([]string, 0, len(idx))
	for k := range idx {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Total returns the sum of all span lengths.
func (idx Index) Total() uint64 {
	var total uint64
	for _, s := range idx {
		total += s.Len()
	}
	return total
}

func (idx Index) toWire() map[string][2]uint64 {
	out := make(map[string][2]uint64, len(idx))
	for k, s := range idx {
		out[k] = [2]uint64{s.Start, s.Stop}
	}
	return out
}

func fromWire(m map[string][2]uint64) (Index, error) {
	idx := make(Index, len(m))
	for k, v := range m {
		if v[0] > v[1] {
			return nil, fmt.Errorf("%w: span for %q has start %d > stop %d", ErrCorrupt, k, v[0], v[1])
		}
		idx[k] = Span{Start: v[0], Stop: v[1]}
	}
	return idx, nil
}
