package enrich

import "errors"

// ErrMalformedResponse indicates that a model response could not be parsed
// into the shape a stage expects. Stages retry on this error; any other
// completion error propagates immediately.
var ErrMalformedResponse = errors.New("malformed model response")
