// Package apiclient is the resilient access layer to the marketplace API.
package apiclient

import (
	"encoding/json"
	"fmt"

	domainErrors "github.com/polkiloo/marketpanel/internal/domain/errors"
)

type (
	Error = domainErrors.Error
	Kind  = domainErrors.Kind
)

const (
	KindNetworkUnavailable = domainErrors.KindNetworkUnavailable
	KindServerFault        = domainErrors.KindServerFault
	KindMalformedRequest   = domainErrors.KindMalformedRequest
	KindValidationFailure  = domainErrors.KindValidationFailure
	KindUnauthorized       = domainErrors.KindUnauthorized
	KindForbidden          = domainErrors.KindForbidden
	KindNotFound           = domainErrors.KindNotFound
	KindConflict           = domainErrors.KindConflict
	KindUnknown            = domainErrors.KindUnknown
)

// Reject builds a locally refused error in the normalized shape.
func Reject(kind Kind, message string, cause error) *Error {
	return domainErrors.Reject(kind, message, cause)
}

// AsError extracts a normalized error from err's chain.
func AsError(err error) (*Error, bool) {
	return domainErrors.AsError(err)
}

// TransportError is the raw outcome of a failed logical request.
// StatusCode is zero when no response was received.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
	Offline    bool
	TimedOut   bool
	Attempts   int
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("%s %s: status %d after %d attempt(s)", e.Method, e.URL, e.StatusCode, e.Attempts)
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	default:
		return fmt.Sprintf("%s %s: request failed", e.Method, e.URL)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Retryable reports whether another attempt may succeed.
func (e *TransportError) Retryable() bool {
	return e.Offline || e.TimedOut || e.StatusCode >= 500
}

// ServerMessage returns the "message" field of a JSON error body, if any.
func (e *TransportError) ServerMessage() string {
	if len(e.Body) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(e.Body, &payload); err != nil {
		return ""
	}
	return payload.Message
}
