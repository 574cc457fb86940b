package flatfa

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
)

// Strand is the orientation of a feature.
type Strand int8

const (
	// StrandUnknown is an unset strand. It resolves like Forward.
	StrandUnknown Strand = 0
	Forward       Strand = 1
	Reverse       Strand = -1
)

var errInvalidStrand = errors.New("invalid strand")

// ParseStrand parses "-1", "-", "1", "+" and the empty string or ".".
func ParseStrand(s string) (Strand, error) {
	switch s {
	case "-1", "-":
		return Reverse, nil
	case "1", "+":
		return Forward, nil
	case "", ".", "0":
		return StrandUnknown, nil
	}
	return StrandUnknown, fmt.Errorf("%w: %q", errInvalidStrand, s)
}

// MarshalJSON encodes the strand as -1, 0 or 1.
func (s Strand) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(s))), nil
}

// UnmarshalJSON accepts -1, 1, 0, null and the strings of ParseStrand.
func (s *Strand) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*s = StrandUnknown
	case float64:
		switch x {
		case -1:
			*s = Reverse
		case 1:
			*s = Forward
		case 0:
			*s = StrandUnknown
		default:
			return fmt.Errorf("%w: %v", errInvalidStrand, x)
		}
	case string:
		p, err := ParseStrand(x)
		if err != nil {
			return err
		}
		*s = p
	default:
		return fmt.Errorf("%w: %s", errInvalidStrand, data)
	}
	return nil
}

// Interval is a pair of feature coordinates. It decodes from [start, stop]
// or {"start": ..., "stop": ...}.
type Interval struct {
	Start int `json:"start"`
	Stop  int `json:"stop"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (iv *Interval) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var pair []int
		if err := json.Unmarshal(data, &pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("interval must have 2 coordinates, got %d", len(pair))
		}
		iv.Start, iv.Stop = pair[0], pair[1]
		return nil
	}
	type plain Interval
	return json.Unmarshal(data, (*plain)(iv))
}

// Feature locates a region of a chromosome. Spans holds named interval
// groups such as exons. Locations holds the same kind of groups nested
// under a "locations" key; when it is non-empty it is searched instead of
// Spans.
type Feature struct {
	Chr       string
	Start     int
	Stop      int
	Strand    Strand
	Spans     map[string][]Interval
	Locations map[string][]Interval
}

// UnmarshalJSON decodes chr, start, stop, strand and locations. Any other
// key holding a list of intervals becomes a span group.
func (f *Feature) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*f = Feature{}
	for key, v := range raw {
		var err error
		switch key {
		case "chr":
			err = unmarshalChr(v, &f.Chr)
		case "start":
			err = json.Unmarshal(v, &f.Start)
		case "stop":
			err = json.Unmarshal(v, &f.Stop)
		case "strand":
			err = json.Unmarshal(v, &f.Strand)
		case "locations":
			err = json.Unmarshal(v, &f.Locations)
		default:
			var ivs []Interval
			if json.Unmarshal(v, &ivs) != nil || ivs == nil {
				continue
			}
			if f.Spans == nil {
				f.Spans = make(map[string][]Interval)
			}
			f.Spans[key] = ivs
		}
		if err != nil {
			return fmt.Errorf("feature %s: %w", key, err)
		}
	}
	return nil
}

// MarshalJSON writes span groups as top-level keys.
func (f Feature) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(f.Spans)+5)
	for k, v := range f.Spans {
		m[k] = v
	}
	m["chr"] = f.Chr
	m["start"] = f.Start
	m["stop"] = f.Stop
	m["strand"] = f.Strand
	if len(f.Locations) > 0 {
		m["locations"] = f.Locations
	}
	return json.Marshal(m)
}

// chr may be numeric in feature files ("chr": 11).
func unmarshalChr(data []byte, chr *string) error {
	if err := json.Unmarshal(data, chr); err == nil {
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*chr = n.String()
	return nil
}

type sequenceOptions struct {
	spanKeys []string
	oneBased bool
	autoRC   bool
}

// SequenceOption configures Sequence.
type SequenceOption func(*sequenceOptions)

// WithSpanKeys resolves the feature from the first of keys present in its
// span groups, concatenating the intervals in order. Without a match the
// feature's own start and stop are used.
func WithSpanKeys(keys ...string) SequenceOption {
	return func(o *sequenceOptions) {
		o.spanKeys = keys
	}
}

// ZeroBased treats coordinates as zero-based half-open intervals instead
// of one-based closed ones.
func ZeroBased() SequenceOption {
	return func(o *sequenceOptions) {
		o.oneBased = false
	}
}

// WithoutReverseComplement returns reverse strand features as stored.
func WithoutReverseComplement() SequenceOption {
	return func(o *sequenceOptions) {
		o.autoRC = false
	}
}

// Sequence returns the bases of feat, reverse complemented when the feature
// is on the reverse strand. The result is owned by the caller.
func (f *Fasta) Sequence(feat Feature, optFns ...SequenceOption) ([]byte, error) {
	o := sequenceOptions{oneBased: true, autoRC: true}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if !f.Contains(feat.Chr) {
		return nil, fmt.Errorf("%w: %q", ErrChrNotFound, feat.Chr)
	}
	rec, err := f.Get(feat.Chr)
	if err != nil {
		return nil, err
	}

	ob := 0
	if o.oneBased {
		ob = 1
	}

	seq, found, err := fromSpans(rec, feat, o.spanKeys, ob)
	if err != nil {
		return nil, err
	}
	if !found {
		b, err := rec.Slice(At(feat.Start-ob), At(feat.Stop), None)
		if err != nil {
			return nil, err
		}
		seq = b
	}

	if o.autoRC && feat.Strand == Reverse {
		return ReverseComplement(seq), nil
	}
	return bytes.Clone(seq), nil
}

// SequenceString is Sequence returning a string.
func (f *Fasta) SequenceString(feat Feature, optFns ...SequenceOption) (string, error) {
	b, err := f.Sequence(feat, optFns...)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func fromSpans(rec *Record, feat Feature, keys []string, ob int) ([]byte, bool, error) {
	groups := feat.Spans
	if len(feat.Locations) > 0 {
		groups = feat.Locations
	}
	for _, k := range keys {
		ivs, ok := groups[k]
		if !ok {
			continue
		}
		seq := []byte{}
		for _, iv := range ivs {
			b, err := rec.Slice(At(iv.Start-ob), At(iv.Stop), None)
			if err != nil {
				return nil, false, err
			}
			seq = append(seq, b...)
		}
		return seq, true, nil
	}
	return nil, false, nil
}
