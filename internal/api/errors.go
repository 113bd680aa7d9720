package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed API call so callers can branch without
// inspecting HTTP details.
type Kind string

const (
	// KindNetwork means the request never completed.
	KindNetwork Kind = "network"
	// KindValidation covers 4xx rejections that carry a caller-facing message.
	KindValidation Kind = "validation"
	// KindAuth covers 401/403 and role mismatches.
	KindAuth Kind = "auth"
	// KindNotFound means the referenced entity is missing or archived.
	KindNotFound Kind = "not_found"
	// KindUnknown covers 5xx and unexpected response shapes.
	KindUnknown Kind = "unknown"
)

// Error is the single error type the client resolves failures to.
// It is never silently swallowed: every operation returns either a
// normalized value or an *Error.
type Error struct {
	Kind       Kind
	Message    string
	HTTPStatus int
	err        error
}

func (e *Error) Error() string {
	if e.HTTPStatus > 0 {
		return fmt.Sprintf("api: %s (%d): %s", e.Kind, e.HTTPStatus, e.Message)
	}
	return fmt.Sprintf("api: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.err }

// KindOf extracts the Kind from any error chain, defaulting to KindUnknown.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func networkError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: err.Error(), err: err}
}

func decodeError(err error) *Error {
	return &Error{Kind: KindUnknown, Message: fmt.Sprintf("decode response: %v", err), err: err}
}

func validationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// statusError maps an HTTP rejection onto the error taxonomy. The message
// is whatever caller-facing text the backend provided, falling back to the
// status text.
func statusError(status int, message string) *Error {
	if message == "" {
		message = http.StatusText(status)
	}
	kind := KindUnknown
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = KindAuth
	case status == http.StatusNotFound:
		kind = KindNotFound
	case status >= 400 && status < 500:
		kind = KindValidation
	}
	return &Error{Kind: kind, Message: message, HTTPStatus: status}
}
