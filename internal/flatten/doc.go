// Package flatten turns a stream of FASTA records into a flattened store and
// its offset index, and decides whether existing sidecars can be reused.
//
// A flattened store is either the bare concatenation of all sequences, or,
// in place mode, a FASTA layout with one unwrapped sequence line per record:
//
//	>h1
//	SEQ1
//	>h2
//	SEQ2
//
// In place mode replaces the source with that layout and leaves a
// placeholder holding Magic in the store sidecar.
package flatten
