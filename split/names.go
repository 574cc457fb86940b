package split

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Names returns n output names derived from source. The file index, and
// the k-mer and overlap sizes when positive, are inserted before the last
// "fa" of the base name:
//
//	Names("some.fasta", 1, 0, 0)         // some.split.fasta
//	Names("some.fasta", 2, 0, 0)         // some.0.fasta, some.1.fasta
//	Names("some.fasta", 2, 10000, 2000)  // some.0.10Kmer.2Koverlap.fasta, ...
//
// Indices are zero-padded to the width of n. Sizes divisible by 1000 are
// written with a K suffix. A count below one yields no names.
func Names(source string, n, kmers, overlap int) []string {
	var extra string
	if kmers > 0 {
		extra += kiloSuffix(kmers) + "mer."
	}
	if overlap > 0 {
		extra += kiloSuffix(overlap) + "overlap."
	}

	dir, base := filepath.Split(source)
	pattern := func(id string) string {
		if p := strings.LastIndex(base, "fa"); p != -1 {
			return dir + base[:p] + id + "." + extra + base[p:]
		}
		return dir + base + "." + extra + id
	}

	switch {
	case n < 1:
		return nil
	case n == 1:
		return []string{pattern("split")}
	}
	width := len(strconv.Itoa(n))
	names := make([]string, n)
	for i := range names {
		names[i] = pattern(fmt.Sprintf("%0*d", width, i))
	}
	return names
}

func kiloSuffix(v int) string {
	if v%1000 == 0 {
		return strconv.Itoa(v/1000) + "K"
	}
	return strconv.Itoa(v)
}

// HeaderName substitutes %(fasta)s with the base name of source and
// %(seqid)s with header in template.
func HeaderName(template, source, header string) string {
	return strings.NewReplacer(
		"%(fasta)s", filepath.Base(source),
		"%(seqid)s", header,
	).Replace(template)
}

// KmerHeader names the window of parent starting at the zero-based offset
// start. The position in the name is one-based.
func KmerHeader(parent string, start int) string {
	return parent + "_" + strconv.Itoa(start+1)
}
