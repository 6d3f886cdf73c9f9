// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package remote

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrMalformedCatalog = errors.New("malformed catalog")

// StatusError is a non-2xx answer from a remote service.
type StatusError struct {
	StatusCode int
	// Message is the service's own "message" field, if it sent one.
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("remote returned %d: %s", e.StatusCode, e.Message)
}

func (e *StatusError) HTTPStatus() int {
	return e.StatusCode
}

func (e *StatusError) UserMessage() string {
	return e.Message
}
