package usecases

import "errors"

// ErrInvalid marks request validation failures so transports can map them to
// client errors without string matching.
var ErrInvalid = errors.New("invalid request")
