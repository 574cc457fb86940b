// Package fasta reads and writes FASTA formatted sequence files.
//
// Records streams (header, sequence) pairs from any io.Reader. OpenSource
// opens a file and transparently decompresses gzip, zstd and lz4 frames,
// detected by magic number rather than file extension.
//
//	rc, err := fasta.OpenSource("genome.fa.gz")
//	if err != nil {
//		return err
//	}
//	defer rc.Close()
//
//	for rec, err := range fasta.Records(rc, fasta.FirstField) {
//		if err != nil {
//			return err
//		}
//		fmt.Println(rec.Header, len(rec.Seq))
//	}
package fasta
