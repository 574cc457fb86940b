package index

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hupe1980/flatfa/codec"
	"github.com/klauspost/compress/zstd"
)

// ErrCorrupt is returned when a sidecar cannot be decoded.
var ErrCorrupt = errors.New("corrupt index sidecar")

const headerPrefix = "#flatfa-index v1"

// Compression selects how the sidecar body is stored.
type Compression string

const (
	CompressionZstd Compression = "zstd"
	CompressionNone Compression = "none"
)

var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	zstdDecoder, _ = zstd.NewReader(nil)
)

// Encode writes idx to w. A nil codec selects codec.Default and an empty
// compression selects zstd.
func Encode(w io.Writer, idx Index, c codec.Codec, comp Compression) error {
	if c == nil {
		c = codec.Default
	}
	if comp == "" {
		comp = CompressionZstd
	}

	body, err := c.Marshal(idx.toWire())
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}

	switch comp {
	case CompressionZstd:
		body = zstdEncoder.EncodeAll(body, nil)
	case CompressionNone:
	default:
		return fmt.Errorf("encode index: unknown compression %q", comp)
	}

	if _, err := fmt.Fprintf(w, "%s codec=%s compression=%s\n", headerPrefix, c.Name(), comp); err != nil {
		return err
	}
	_, err = w.Write(body)
	return err
}

// Decode reads a sidecar written by Encode.
func Decode(r io.Reader) (Index, error) {
	br := bufio.NewReader(r)

	line, err := br.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("%w: missing header line", ErrCorrupt)
	}
	line = strings.TrimSuffix(line, "\n")
	if !strings.HasPrefix(line, headerPrefix) {
		return nil, fmt.Errorf("%w: unexpected header %q", ErrCorrupt, line)
	}

	var codecName, comp string
	for _, field := range strings.Fields(strings.TrimPrefix(line, headerPrefix)) {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}
		switch key {
		case "codec":
			codecName = value
		case "compression":
			comp = value
		}
	}

	c, ok := codec.ByName(codecName)
	if !ok {
		return nil, fmt.Errorf("%w: unknown codec %q", ErrCorrupt, codecName)
	}

	body, err := io.ReadAll(br)
	if err != nil {
		return nil, err
	}

	switch Compression(comp) {
	case CompressionZstd:
		body, err = zstdDecoder.DecodeAll(body, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %w", ErrCorrupt, err)
		}
	case CompressionNone:
	default:
		return nil, fmt.Errorf("%w: unknown compression %q", ErrCorrupt, comp)
	}

	var wire map[string][2]uint64
	if err := c.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, c.Name(), err)
	}
	return fromWire(wire)
}
