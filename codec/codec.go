// Package codec centralizes index sidecar encoding.
//
// The index sidecar is self-describing: its header line records the codec
// name, and readers select the codec with ByName. Changing the default codec
// therefore never breaks sidecars written by older builds.
package codec

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}
