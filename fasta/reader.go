package fasta

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"iter"
	"strings"
)

// Record is a single parsed FASTA entry.
type Record struct {
	Header string
	Seq    []byte
}

// KeyFunc transforms a raw header into the key used to index a record.
type KeyFunc func(header string) string

// FirstField keys a record by the header text before the first whitespace.
func FirstField(header string) string {
	if i := strings.IndexAny(header, " \t"); i >= 0 {
		return header[:i]
	}
	return header
}

// Records returns an iterator over the records in r.
//
// The header is the text after '>' with surrounding whitespace removed,
// passed through keyFn when it is non-nil. The sequence is the concatenation
// of the following lines with trailing whitespace stripped; blank lines and
// text before the first header are skipped. Iteration stops at the first
// read error, which is yielded once.
func Records(r io.Reader, keyFn KeyFunc) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		br := bufio.NewReaderSize(r, 64*1024)

		var (
			header  string
			seq     []byte
			inEntry bool
		)

		for {
			line, err := br.ReadBytes('\n')
			if len(line) > 0 {
				if line[0] == '>' {
					if inEntry {
						if !yield(Record{Header: header, Seq: seq}, nil) {
							return
						}
					}
					header = strings.TrimSpace(string(line[1:]))
					if keyFn != nil {
						header = keyFn(header)
					}
					seq = nil
					inEntry = true
				} else if inEntry {
					if trimmed := bytes.TrimRight(line, " \t\r\n"); len(trimmed) > 0 {
						seq = append(seq, trimmed...)
					}
				}
			}

			if err != nil {
				if !errors.Is(err, io.EOF) {
					yield(Record{}, err)
					return
				}
				break
			}
		}

		if inEntry {
			yield(Record{Header: header, Seq: seq}, nil)
		}
	}
}

// FileRecords returns an iterator that opens path with OpenSource on each
// iteration and closes it when iteration ends.
func FileRecords(path string, keyFn KeyFunc) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		rc, err := OpenSource(path)
		if err != nil {
			yield(Record{}, err)
			return
		}
		defer rc.Close()

		for rec, err := range Records(rc, keyFn) {
			if !yield(rec, err) {
				return
			}
		}
	}
}
