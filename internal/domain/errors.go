package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound signals a missing resource (HTTP 404 from the backend).
	ErrNotFound = errors.New("not found")
	// ErrRequestFailed signals a non-2xx response from the backend.
	ErrRequestFailed = errors.New("request failed")
	// ErrTransport signals that the network call itself could not complete.
	ErrTransport = errors.New("transport failure")
	// ErrDecode signals a response body that does not match the expected shape.
	ErrDecode = errors.New("decode failure")
	// ErrInvalidInput signals a request rejected before it reaches the backend.
	ErrInvalidInput = errors.New("invalid input")
)

// FailureKind classifies an error for user-facing state.
type FailureKind string

const (
	// KindTransport is a network-level failure.
	KindTransport FailureKind = "transport"
	// KindRequest is a non-2xx response other than 404.
	KindRequest FailureKind = "request"
	// KindNotFound is a 404 response for a specific entity.
	KindNotFound FailureKind = "not_found"
	// KindDecode is a malformed or mismatched response body.
	KindDecode FailureKind = "decode"
	// KindUnknown is anything else.
	KindUnknown FailureKind = "unknown"
)

// RequestError is returned when the transport succeeded but the server rejected the request.
type RequestError struct {
	Op         string
	StatusCode int
	Status     string // reason phrase, e.g. "Not Found"
	Detail     string // best-effort "detail" field from the error body
}

func (e *RequestError) Error() string {
	msg := fmt.Sprintf("%s: %s: %d %s", e.Op, ErrRequestFailed.Error(), e.StatusCode, e.Status)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Is reports ErrRequestFailed for every RequestError and ErrNotFound for 404s.
func (e *RequestError) Is(target error) bool {
	switch target {
	case ErrRequestFailed:
		return true
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// NewRequestError builds a RequestError using the standard reason phrase for status.
func NewRequestError(op string, status int, detail string) error {
	return &RequestError{
		Op:         op,
		StatusCode: status,
		Status:     http.StatusText(status),
		Detail:     detail,
	}
}

// TransportError wraps a failure of the underlying network call.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, ErrTransport.Error(), e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is matches ErrTransport.
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// DecodeError wraps a JSON decoding failure of a 2xx response.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, ErrDecode.Error(), e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is matches ErrDecode.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// KindOf maps an error onto a FailureKind. NotFound wins over the generic request kind.
func KindOf(err error) FailureKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrRequestFailed):
		return KindRequest
	case errors.Is(err, ErrDecode):
		return KindDecode
	case errors.Is(err, ErrTransport):
		return KindTransport
	}
	return KindUnknown
}
