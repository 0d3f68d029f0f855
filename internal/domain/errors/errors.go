package errors

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrNoSession       = errors.New("no active session")
	ErrInvalidResponse = errors.New("invalid response shape")
	ErrOffline         = errors.New("client is offline")
)

// Kind is the category of a normalized error.
type Kind string

const (
	KindNetworkUnavailable Kind = "NetworkUnavailable"
	KindServerFault        Kind = "ServerFault"
	KindMalformedRequest   Kind = "MalformedRequest"
	KindValidationFailure  Kind = "ValidationFailure"
	KindUnauthorized       Kind = "Unauthorized"
	KindForbidden          Kind = "Forbidden"
	KindNotFound           Kind = "NotFound"
	KindConflict           Kind = "Conflict"
	KindUnknown            Kind = "Unknown"
)

// Code returns the HTTP-like code a locally built error of this kind carries.
func (k Kind) Code() int {
	switch k {
	case KindNetworkUnavailable:
		return 0
	case KindMalformedRequest, KindValidationFailure:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is the normalized error every caller of the access layer receives.
// IsBigError marks failures that warrant a global notice instead of an inline one.
type Error struct {
	Kind               Kind   `json:"kind"`
	Message            string `json:"message"`
	Code               int    `json:"code"`
	IsBigError         bool   `json:"isBigError"`
	SessionInvalidated bool   `json:"sessionInvalidated,omitempty"`
	Original           error  `json:"-"`
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Original
}

// Reject builds a non-big error for a locally refused operation.
func Reject(kind Kind, message string, cause error) *Error {
	return &Error{
		Kind:     kind,
		Message:  message,
		Code:     kind.Code(),
		Original: cause,
	}
}

// AsError extracts a normalized error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind reports whether err carries a normalized error of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := AsError(err)
	return ok && e.Kind == kind
}
