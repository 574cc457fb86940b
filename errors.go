package flatfa

import (
	"errors"

	"github.com/hupe1980/flatfa/backend"
	"github.com/hupe1980/flatfa/index"
)

var (
	// ErrSourceNotFound is returned by Open when the source does not exist.
	ErrSourceNotFound = backend.ErrSourceNotFound

	// ErrBackendUnavailable is returned when a backend's dependency is missing.
	ErrBackendUnavailable = backend.ErrBackendUnavailable

	// ErrClosed is returned when a closed handle or its records are used.
	ErrClosed = backend.ErrClosed

	// ErrDuplicateHeader is matched by *DuplicateHeaderError.
	ErrDuplicateHeader = index.ErrDuplicateHeader

	// ErrNotFound is returned by Get for a header that is not indexed.
	ErrNotFound = errors.New("header not found")

	// ErrChrNotFound is returned when a feature names an unindexed chromosome.
	ErrChrNotFound = errors.New("chromosome not found")

	// ErrIndexOutOfRange is returned by point access outside a record.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrZeroStep is returned for a slice step of zero.
	ErrZeroStep = errors.New("slice step cannot be zero")

	// ErrInvalidK is returned when the k-mer size is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrInvalidOverlap is returned when the k-mer overlap is not less than k.
	ErrInvalidOverlap = errors.New("overlap must be less than k")
)

// DuplicateHeaderError reports a header seen twice while building the index.
// It matches ErrDuplicateHeader with errors.Is.
type DuplicateHeaderError = index.DuplicateHeaderError
