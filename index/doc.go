// Package index defines the header → byte span mapping produced by a
// flatten pass, and the self-describing sidecar format it is persisted in.
//
// # Sidecar format
//
// The first line names the codec and compression:
//
//	#flatfa-index v1 codec=go-json compression=zstd
//
// The rest of the file is the codec encoding of map[string][2]uint64,
// optionally zstd compressed. Readers pick the codec by name, so sidecars
// written with any built-in codec stay readable.
package index
