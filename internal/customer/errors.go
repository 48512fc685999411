package customer

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"syscall"
)

// ErrorType represents the category of a failed gateway call
type ErrorType int

const (
	// ErrTypeNetwork indicates a transport failure not covered by a more specific type
	ErrTypeNetwork ErrorType = iota
	// ErrTypeTimeout indicates the transport gave up waiting
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates nothing is listening at the base URL
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates the service host could not be resolved
	ErrTypeDNS
	// ErrTypeHTTP indicates a non-success status code
	ErrTypeHTTP
	// ErrTypeNotFound indicates the service has no record with the requested id
	ErrTypeNotFound
	// ErrTypeParse indicates a response body that could not be decoded
	ErrTypeParse
	// ErrTypeRequest indicates the request could not be built
	ErrTypeRequest
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeNotFound:
		return "Not Found"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeRequest:
		return "Request Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// ServiceError is returned by every Client method.
type ServiceError struct {
	Type       ErrorType
	Op         string // gateway operation, e.g. "list", "delete"
	Message    string
	StatusCode int    // HTTP status code, when one was received
	Body       string // response body of a failed HTTP call, trimmed
	Err        error
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	msg := fmt.Sprintf("%s: %s %s", e.Type, e.Op, e.Message)
	if e.Err != nil {
		msg = fmt.Sprintf("%s (caused by: %v)", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for error chain inspection
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError maps a transport error onto a ServiceError type.
func ClassifyNetworkError(op string, err error) *ServiceError {
	if err == nil {
		return nil
	}

	if os.IsTimeout(err) {
		return &ServiceError{Type: ErrTypeTimeout, Op: op, Message: "request timed out", Err: err}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &ServiceError{Type: ErrTypeDNS, Op: op, Message: fmt.Sprintf("cannot resolve %s", dnsErr.Name), Err: err}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return &ServiceError{Type: ErrTypeConnectionRefused, Op: op, Message: "connection refused", Err: err}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != err {
		return ClassifyNetworkError(op, urlErr.Err)
	}

	return &ServiceError{Type: ErrTypeNetwork, Op: op, Message: "request failed", Err: err}
}

// NewHTTPError creates an error for a non-success status code.
// 404 is reported as ErrTypeNotFound.
func NewHTTPError(op string, statusCode int, body string) *ServiceError {
	t := ErrTypeHTTP
	if statusCode == http.StatusNotFound {
		t = ErrTypeNotFound
	}
	return &ServiceError{
		Type:       t,
		Op:         op,
		Message:    fmt.Sprintf("unexpected status %d", statusCode),
		StatusCode: statusCode,
		Body:       body,
	}
}

// NewParseError creates an error for an undecodable response.
func NewParseError(op string, err error) *ServiceError {
	return &ServiceError{Type: ErrTypeParse, Op: op, Message: "failed to decode response", Err: err}
}

// NewRequestError creates an error for a request that could not be built.
func NewRequestError(op string, err error) *ServiceError {
	return &ServiceError{Type: ErrTypeRequest, Op: op, Message: "failed to build request", Err: err}
}

func errorType(err error) (ErrorType, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Type, true
	}
	return 0, false
}

// IsNetworkError reports transport-level failures (including timeout, refused and DNS).
func IsNetworkError(err error) bool {
	t, ok := errorType(err)
	return ok && (t == ErrTypeNetwork || t == ErrTypeTimeout || t == ErrTypeConnectionRefused || t == ErrTypeDNS)
}

// IsNotFound reports whether the service answered 404.
func IsNotFound(err error) bool {
	t, ok := errorType(err)
	return ok && t == ErrTypeNotFound
}

// IsHTTPError reports any non-success status, including 404.
func IsHTTPError(err error) bool {
	t, ok := errorType(err)
	return ok && (t == ErrTypeHTTP || t == ErrTypeNotFound)
}

// IsParseError reports an undecodable response.
func IsParseError(err error) bool {
	t, ok := errorType(err)
	return ok && t == ErrTypeParse
}

// GetShortErrorMessage returns a concise description suitable for logs and CLI hints.
func GetShortErrorMessage(err error) string {
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		return err.Error()
	}

	switch svcErr.Type {
	case ErrTypeTimeout:
		return "Service not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Service refused connection - is it running?"
	case ErrTypeDNS:
		return "Cannot resolve service hostname"
	case ErrTypeNetwork:
		return "Network error - check connection"
	case ErrTypeNotFound:
		return "Record not found"
	case ErrTypeHTTP:
		return fmt.Sprintf("Service error (HTTP %d)", svcErr.StatusCode)
	case ErrTypeParse:
		return "Failed to parse service response"
	default:
		return svcErr.Message
	}
}
