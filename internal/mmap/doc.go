// Package mmap provides read-only memory-mapped file access for zero-copy I/O.
//
// # Overview
//
// Flattened sequence stores are usually large (a whole genome is several
// gigabytes) while lookups touch a few kilobytes at random offsets. Mapping the
// store lets the kernel page in only what a slice touches, and lets several
// processes share the same page cache for a read-only store.
//
// # Usage
//
//	m, err := mmap.Open("genome.fasta.flat")
//	if err != nil { ... }
//	defer m.Close()
//
//	// Zero-copy, clamped view of [start, stop)
//	seq := m.Slice(start, stop)
//
//	// Lookups are random, not sequential
//	m.Advise(mmap.AccessRandom)
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with madvise(2) for access hints
//   - Windows: CreateFileMapping/MapViewOfFile (madvise is a no-op)
//
// # Thread Safety
//
// A Mapping is safe for concurrent read access. Close is idempotent. Callers
// must not use slices obtained from Slice after Close returns.
package mmap
