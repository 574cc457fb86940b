// Package split writes the sequences of an open flatfa.Fasta to several
// FASTA files.
//
// Three strategies are available:
//
//   - ByHeader writes one file per header, named by a template.
//   - Windows cuts every sequence into overlapping k-mer windows and deals
//     them round-robin over the output files.
//   - Balance distributes whole sequences so the files hold similar
//     numbers of bases.
//
// Balance uses the greedy heuristic of Plan. It runs in O(n log n) and does
// not solve the bin packing problem: the result is usually within a few
// percent of even, but no bound is guaranteed for skewed length
// distributions.
package split
