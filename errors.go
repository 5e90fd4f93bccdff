package rpeg

import "errors"

// Sentinel errors for the package's distinct failure kinds. Call sites
// wrap these with fmt.Errorf("%s: %w", ...) so callers can still
// errors.Is against a stable value while humans get a readable message.
var (
	// ErrBadHeader is returned when a compressed stream's magic line or
	// dimension line does not match the expected format.
	ErrBadHeader = errors.New("rpeg: bad compressed stream header")

	// ErrFormatError is returned when a compressed stream is truncated,
	// not a multiple of 4 bytes in the payload, or a PPM is malformed.
	ErrFormatError = errors.New("rpeg: malformed stream")

	// ErrIOError wraps an underlying read/write failure from a
	// collaborator (reader/writer) that is itself not one of the
	// sentinels above.
	ErrIOError = errors.New("rpeg: I/O error")
)
