package pipeline

import "errors"

// ErrMissingOutput is returned when a step's external process exited
// successfully but the artifact it was expected to produce does not exist.
var ErrMissingOutput = errors.New("pipeline: expected output missing")
