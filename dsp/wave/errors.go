package wave

import "errors"

// Errors returned by the codec. Returned errors wrap one of these and can
// be tested with errors.Is.
var (
	ErrMalformedHeader   = errors.New("wave: malformed header")
	ErrUnsupportedFormat = errors.New("wave: unsupported sample format")
	ErrInvalidFormat     = errors.New("wave: invalid format field")
	ErrTruncated         = errors.New("wave: truncated stream")
	ErrSeekOutOfBounds   = errors.New("wave: seek out of bounds")
	ErrNotReady          = errors.New("wave: stream not ready")
)
