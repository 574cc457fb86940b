// Package backend prepares a FASTA source for random access and serves
// byte ranges of its flattened sequence data.
//
// Prepare either reuses the sidecars of an earlier run, when they are at
// least as new as the source, or rebuilds them. The variants differ in where
// the index lives and how bytes are fetched:
//
//   - File: .gdx index sidecar, ReadAt on the .flat store per fetch
//   - Mmap: .gdx index sidecar, zero-copy reads from a memory-mapped store (default)
//   - Memory: nothing written to disk, the whole source held in memory
//   - KV: index held in a kvstore.Store, store memory-mapped locally
//
// Every View clamps fetches to [0, Size()) and returns an empty slice when
// nothing remains. Returned slices must not be modified.
package backend
