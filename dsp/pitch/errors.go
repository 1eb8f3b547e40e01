package pitch

import "errors"

// ErrInvalidConfig is wrapped by every configuration error.
var ErrInvalidConfig = errors.New("pitch: invalid configuration")
