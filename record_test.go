package flatfa

import (
	"testing"

	"github.com/hupe1980/flatfa/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getRecord(t *testing.T, f *Fasta, header string) *Record {
	t.Helper()
	rec, err := f.Get(header)
	require.NoError(t, err)
	return rec
}

func TestRecord_At(t *testing.T) {
	f := openThreeChrs(t)
	chr1 := getRecord(t, f, "chr1")

	tests := []struct {
		i    int
		want byte
	}{
		{0, 'A'},
		{1, 'C'},
		{79, 'G'},
		{-1, 'G'},
		{-2, 'T'},
		{-80, 'A'},
	}
	for _, tc := range tests {
		got, err := chr1.At(tc.i)
		require.NoError(t, err, tc.i)
		assert.Equal(t, string(tc.want), string(got), tc.i)
	}

	for _, i := range []int{80, 81, -81, -800} {
		_, err := chr1.At(i)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, i)
	}
}

func TestRecord_Slice(t *testing.T) {
	f := openThreeChrs(t)
	chr1 := getRecord(t, f, "chr1")
	chr2 := getRecord(t, f, "chr2")
	chr3 := getRecord(t, f, "chr3")

	tests := []struct {
		name    string
		rec     *Record
		a, b, s Bound
		want    string
	}{
		{"prefix", chr1, None, At(10), None, "ACTGACTGAC"},
		{"codons", chr1, At(0), At(10), At(3), "AGTC"},
		{"chr3 window", chr3, At(9), At(12), None, "GCA"},
		{"chr3 stride", chr3, At(0), At(7), At(3), "ACT"},
		{"chr3 stride offset", chr3, At(1), At(7), At(3), "CA"},
		{"chr3 tail", chr3, At(-10), None, None, "CGCACGCTAC"},
		{"reverse", chr1, At(0), At(4), At(-1), "GTCA"},
		{"reverse stride", chr3, At(0), At(7), At(-3), "TCA"},
		{"whole", chr2, None, None, None, testutil.ThreeChrs[1].Seq},
		{"stop clamped", chr2, At(0), At(900), None, testutil.ThreeChrs[1].Seq},
		{"start at end", chr2, At(80), At(81), None, ""},
		{"last", chr2, At(79), At(81), None, "T"},
		{"past end", chr2, At(800), At(810), None, ""},
		{"negative past start", chr2, At(-800), At(-810), None, ""},
		{"negative start clamped", chr2, At(-800), At(2), None, "TA"},
		{"inverted", chr1, At(5), At(2), None, ""},
		{"step one", chr1, At(0), At(4), At(1), "ACTG"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.rec.Slice(tc.a, tc.b, tc.s)
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Equal(t, tc.want, string(got))
		})
	}

	_, err := chr1.Slice(None, None, At(0))
	assert.ErrorIs(t, err, ErrZeroStep)

	got, err := chr1.Range(2, 9)
	require.NoError(t, err)
	assert.Equal(t, "TGACTGA", string(got))
}

// pySlice is s[a:b][::step] on a plain string.
func pySlice(s string, a, b, step Bound) string {
	n := len(s)
	norm := func(x Bound, def int) int {
		v, ok := x.Value()
		if !ok {
			return def
		}
		if v < 0 {
			v += n
		}
		return min(max(v, 0), n)
	}
	lo, hi := norm(a, 0), norm(b, n)
	if hi <= lo {
		return ""
	}
	w := s[lo:hi]
	st, ok := step.Value()
	if !ok {
		st = 1
	}
	var out []byte
	if st > 0 {
		for i := 0; i < len(w); i += st {
			out = append(out, w[i])
		}
	} else {
		for i := len(w) - 1; i >= 0; i += st {
			out = append(out, w[i])
		}
	}
	return string(out)
}

func TestRecord_SliceMatchesStringSlicing(t *testing.T) {
	f := openThreeChrs(t)
	rng := testutil.NewRNG(7)

	bound := func(n int) Bound {
		if rng.Intn(5) == 0 {
			return None
		}
		return At(rng.Intn(4*n+1) - 2*n)
	}

	for _, want := range testutil.ThreeChrs {
		rec := getRecord(t, f, want.Header)
		n := len(want.Seq)
		for range 500 {
			a, b := bound(n), bound(n)
			s := None
			if rng.Intn(2) == 0 {
				s = At(rng.Intn(9) - 4)
				if v, _ := s.Value(); v == 0 {
					s = None
				}
			}
			got, err := rec.Slice(a, b, s)
			require.NoError(t, err)
			assert.Equal(t, pySlice(want.Seq, a, b, s), string(got), "%s[%v:%v:%v] seed=%d", want.Header, a, b, s, rng.Seed())
		}
	}
}

func TestAdjust(t *testing.T) {
	start, stop, ok := adjust(100, 180, At(-800), None)
	assert.True(t, ok)
	assert.Equal(t, uint64(100), start)
	assert.Equal(t, uint64(180), stop)

	_, _, ok = adjust(100, 180, At(81), None)
	assert.False(t, ok)

	start, stop, ok = adjust(100, 180, At(10), At(-10))
	assert.True(t, ok)
	assert.Equal(t, uint64(110), start)
	assert.Equal(t, uint64(170), stop)
}

func TestStride(t *testing.T) {
	assert.Equal(t, "ACE", string(stride([]byte("ABCDEF"), 2)))
	assert.Equal(t, "FDB", string(stride([]byte("ABCDEF"), -2)))
	assert.Equal(t, "FEDCBA", string(stride([]byte("ABCDEF"), -1)))
	assert.Equal(t, []byte{}, stride(nil, 3))
}
