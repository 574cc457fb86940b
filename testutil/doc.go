// Package testutil provides testing utilities for flatfa.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random generator for sequences and record lengths,
// and FASTA fixtures written into a test's temporary directory.
//
// # Random Sequences
//
//	rng := testutil.NewRNG(seed)
//	seq := rng.Sequence(1000)          // A, C, G, T
//	lens := rng.ZipfLengths(50, 10, 1.5) // skewed record lengths
//
// # Fixtures
//
//	path := testutil.WriteThreeChrs(t, t.TempDir())
package testutil
