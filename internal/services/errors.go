package services

import (
	"errors"
	"fmt"
)

// ErrMissingCredential is returned by a provider before any network call when
// no API key could be resolved from config or environment.
var ErrMissingCredential = errors.New("provider api key is missing")

// ErrEmptyCompletion is returned when the provider answered 2xx but the
// response body carried no completion text.
var ErrEmptyCompletion = errors.New("provider returned an empty completion")

// UpstreamError reports a non-2xx status from the completion endpoint.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("unexpected status code: %d, body: %s", e.StatusCode, e.Body)
}
