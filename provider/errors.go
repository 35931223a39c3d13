package provider

import "errors"

// ErrMalformedResponse marks provider responses that arrived but could not
// be interpreted: no choices, empty messages, undecodable tool arguments.
// Callers classify with errors.Is.
var ErrMalformedResponse = errors.New("malformed provider response")
