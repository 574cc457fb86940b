package flatfa

// Bound is an optional slice bound or step. The zero value is None.
type Bound struct {
	v  int
	ok bool
}

// None is an omitted slice bound.
var None = Bound{}

// At returns the slice bound n. Negative values count from the end.
func At(n int) Bound { return Bound{v: n, ok: true} }

// Value returns the bound and whether it is set.
func (b Bound) Value() (int, bool) { return b.v, b.ok }

// adjust maps the slice [a:b] onto the absolute window [start, stop) and
// clamps it. ok is false when the result is empty.
func adjust(start, stop uint64, a, b Bound) (uint64, uint64, bool) {
	lo, hi := int64(start), int64(stop)

	s := lo
	if a.ok {
		if a.v < 0 {
			s = hi + int64(a.v)
		} else {
			s = lo + int64(a.v)
		}
	}
	e := hi
	if b.ok {
		if b.v < 0 {
			e = hi + int64(b.v)
		} else {
			e = lo + int64(b.v)
		}
	}

	if s > hi {
		return 0, 0, false
	}
	s = max(s, lo)
	e = min(max(e, lo), hi)
	if e <= s {
		return 0, 0, false
	}
	return uint64(s), uint64(e), true
}

// stride returns every step-th byte of b. A negative step walks b from the
// end, so stride(b, -1) is b reversed.
func stride(b []byte, step int) []byte {
	if len(b) == 0 {
		return []byte{}
	}
	if step > 0 {
		out := make([]byte, 0, (len(b)+step-1)/step)
		for i := 0; i < len(b); i += step {
			out = append(out, b[i])
		}
		return out
	}
	out := make([]byte, 0, (len(b)-step-1)/-step)
	for i := len(b) - 1; i >= 0; i += step {
		out = append(out, b[i])
	}
	return out
}
