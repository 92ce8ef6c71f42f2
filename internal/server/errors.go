// SPDX-License-Identifier: EPL-2.0

package server

import "errors"

var (
	// ErrUnauthorized is returned for a missing or wrong X-API-Key.
	ErrUnauthorized = errors.New("invalid API key or malformed request")

	// ErrMissingField is returned when a required request field is absent.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidBase64 is returned when audioBase64 does not decode.
	ErrInvalidBase64 = errors.New("audioBase64 is not valid base64")

	// ErrBadRequest is returned for a body that cannot be parsed at all.
	ErrBadRequest = errors.New("malformed request body")
)
