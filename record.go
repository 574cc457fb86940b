package flatfa

import (
	"fmt"
)

// Record is a read-only view of one sequence. Byte slices returned by its
// methods may alias the backend's memory and must not be modified.
type Record struct {
	f           *Fasta
	header      string
	start, stop uint64
}

// Header returns the indexed header.
func (r *Record) Header() string { return r.header }

// Len returns the sequence length.
func (r *Record) Len() int { return int(r.stop - r.start) }

// Start returns the offset of the first base in the store.
func (r *Record) Start() uint64 { return r.start }

// Stop returns the offset one past the last base in the store.
func (r *Record) Stop() uint64 { return r.stop }

func (r *Record) String() string {
	return fmt.Sprintf("Record(%s, %d..%d)", r.header, r.start, r.stop)
}

// Bytes returns the whole sequence.
func (r *Record) Bytes() ([]byte, error) {
	return r.f.fetch(r.start, r.stop)
}

// Text returns the whole sequence as a string.
func (r *Record) Text() (string, error) {
	b, err := r.Bytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// At returns the base at i. Negative i counts from the end.
func (r *Record) At(i int) (byte, error) {
	n := r.Len()
	if i >= n || -i > n {
		return 0, fmt.Errorf("%w: %d (length %d)", ErrIndexOutOfRange, i, n)
	}
	pos := int64(r.start) + int64(i)
	if i < 0 {
		pos = int64(r.stop) + int64(i)
	}
	b, err := r.f.fetch(uint64(pos), uint64(pos)+1)
	if err != nil {
		return 0, err
	}
	if len(b) != 1 {
		return 0, fmt.Errorf("%w: %d (length %d)", ErrIndexOutOfRange, i, n)
	}
	return b[0], nil
}

// Slice returns seq[a:b:step]. Negative bounds count from the end and out
// of range bounds are clamped. The step is applied to the window seq[a:b],
// so a negative step yields seq[a:b] reversed and subsampled.
func (r *Record) Slice(a, b, step Bound) ([]byte, error) {
	if step.ok && step.v == 0 {
		return nil, ErrZeroStep
	}
	unit := !step.ok || step.v == 1

	if unit && (!a.ok || a.v == 0) && (!b.ok || b.v >= r.Len()) {
		return r.f.fetch(r.start, r.stop)
	}

	start, stop, ok := adjust(r.start, r.stop, a, b)
	if !ok {
		return r.f.fetch(r.stop, r.stop)
	}
	window, err := r.f.fetch(start, stop)
	if err != nil {
		return nil, err
	}
	if unit {
		return window, nil
	}
	return stride(window, step.v), nil
}

// Range returns seq[a:b].
func (r *Record) Range(a, b int) ([]byte, error) {
	return r.Slice(At(a), At(b), None)
}
