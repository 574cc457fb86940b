package flatfa

// complementTable maps every byte to its complement. Bytes outside
// ATCGNX (either case) map to themselves. It is never modified.
var complementTable = func() (t [256]byte) {
	for i := range t {
		t[i] = byte(i)
	}
	from, to := "ATCGatcgNnXx", "TAGCtagcNnXx"
	for i := range len(from) {
		t[from[i]] = to[i]
	}
	return t
}()

// Complement returns the base-pair complement of seq in a new slice.
func Complement(seq []byte) []byte {
	out := make([]byte, len(seq))
	for i, c := range seq {
		out[i] = complementTable[c]
	}
	return out
}

// ReverseComplement returns the reverse complement of seq in a new slice.
func ReverseComplement(seq []byte) []byte {
	out := make([]byte, len(seq))
	for i, c := range seq {
		out[len(seq)-1-i] = complementTable[c]
	}
	return out
}
