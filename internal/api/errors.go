// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "errors"

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeEmptyInput
	ErrTypeInvalidEndpoint
	ErrTypeTransport
	ErrTypeHTTPStatus
	ErrTypeEmptyBody
	ErrTypeDecode
	ErrTypeEncode
)

// ClientError represents an error from the chat client.
type ClientError struct {
	Type       ErrorType
	Message    string
	StatusCode int // set only for ErrTypeHTTPStatus
	Cause      error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Sentinel errors for easy checking.
var (
	ErrEmptyInput = &ClientError{Type: ErrTypeEmptyInput, Message: "prompt is empty"}
	ErrEmptyBody  = &ClientError{Type: ErrTypeEmptyBody, Message: "server returned an empty body"}
)

// =============================================================================
// INSPECTION HELPERS
// =============================================================================

func isType(err error, t ErrorType) bool {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Type == t
	}
	return false
}

// IsEmptyInput reports whether err means the prompt was blank.
func IsEmptyInput(err error) bool { return isType(err, ErrTypeEmptyInput) }

// IsInvalidEndpoint reports whether err means the base URL was unusable.
func IsInvalidEndpoint(err error) bool { return isType(err, ErrTypeInvalidEndpoint) }

// IsTransport reports whether err was a network-level failure.
func IsTransport(err error) bool { return isType(err, ErrTypeTransport) }

// IsHTTPStatus reports whether err was a non-success HTTP status. When it
// was, the second return value carries the status code.
func IsHTTPStatus(err error) (bool, int) {
	var ce *ClientError
	if errors.As(err, &ce) && ce.Type == ErrTypeHTTPStatus {
		return true, ce.StatusCode
	}
	return false, 0
}

// IsEmptyBody reports whether err means the server sent no payload.
func IsEmptyBody(err error) bool { return isType(err, ErrTypeEmptyBody) }

// IsDecode reports whether err means the response JSON was malformed.
func IsDecode(err error) bool { return isType(err, ErrTypeDecode) }
