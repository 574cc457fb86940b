// Package flatfa provides fast random access to the sequences of large
// multi-line FASTA files.
//
// The first Open of a source flattens it: newlines are removed, the
// sequence bytes are written to a store sidecar (<source>.flat) and the
// byte range of every header is written to an index sidecar
// (<source>.gdx). Later opens reuse both sidecars as long as they are at
// least as new as the source.
//
// # Quick Start
//
//	ctx := context.Background()
//	f, err := flatfa.Open(ctx, "genome.fasta")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	chr1, _ := f.Get("chr1")
//	fmt.Println(chr1.Len())
//	seq, _ := chr1.Range(0, 10)         // chr1[0:10]
//	codons, _ := chr1.Slice(flatfa.None, flatfa.None, flatfa.At(3)) // chr1[::3]
//
// # Backends
//
// The store is served by one of several backends chosen at Open:
//
//   - backend.Mmap (default): zero-copy slices of a memory-mapped store
//   - backend.File: one ReadAt per fetch
//   - backend.Memory: the flattened sequences live in memory, nothing is written
//   - backend.KV: the index lives in a kvstore.Store (DynamoDB, S3, MinIO)
//
//	f, err := flatfa.Open(ctx, "genome.fasta", flatfa.WithBackend(backend.File()))
//
// # Features
//
// Sequence resolves a feature (chromosome, coordinates, strand and optional
// span groups such as exons) to its bases, reverse complementing features
// on the minus strand:
//
//	seq, err := f.SequenceString(flatfa.Feature{Chr: "chr1", Start: 10, Stop: 12, Strand: flatfa.Reverse})
//
// Coordinates are one-based and closed by default. Use ZeroBased for
// half-open zero-based intervals.
//
// # Flatten In Place
//
// WithFlattenInPlace rewrites the source itself as a FASTA file with one
// sequence line per record and leaves a small placeholder at <source>.flat.
// No second copy of the sequence data is kept.
//
// # Caching
//
// Cache validity is decided solely by modification times. Concurrent
// rebuilds of the same stale source from several processes are not
// coordinated and may corrupt the sidecars.
package flatfa
