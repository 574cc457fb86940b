package fasta

import (
	"bufio"
	"io"
)

// Writer emits records as ">header\nseq\n".
type Writer struct {
	w *bufio.Writer
}

// NewWriter returns a buffered Writer. Call Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriterSize(w, 64*1024)}
}

// Write writes a single record.
func (w *Writer) Write(header string, seq []byte) error {
	if err := w.w.WriteByte('>'); err != nil {
		return err
	}
	if _, err := w.w.WriteString(header); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	if _, err := w.w.Write(seq); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
