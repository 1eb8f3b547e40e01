package fft

import "errors"

// ErrOrderExceeded is returned by [Engine.EnsureOrder] when the requested
// transform order is larger than the engine's configured maximum.
var ErrOrderExceeded = errors.New("fft: transform order exceeds engine maximum")
