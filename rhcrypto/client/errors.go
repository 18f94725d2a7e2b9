package client

import (
	"errors"
	"fmt"

	"github.com/betbot/gorh/rhcrypto/signing"
)

// ErrNoNextPage the page has no next cursor.
var ErrNoNextPage = errors.New("rhcrypto: no next page")

// HTTPError non-2xx response. Body holds the parsed JSON error body when the
// response was JSON, the raw text otherwise.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Status     string
	Body       any
	RawBody    []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("rhcrypto: %s %s: http %d: %s", e.Method, e.Path, e.StatusCode, string(e.RawBody))
}

// TransportError the request never completed (DNS, connection, timeout,
// cancelled context).
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("rhcrypto: %s %s: transport: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError 2xx response whose body is not JSON.
type DecodeError struct {
	Method string
	Path   string
	Body   []byte
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("rhcrypto: %s %s: decode response: %v", e.Method, e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Kind failure class of an error returned by the client.
type Kind int

const (
	KindNone Kind = iota
	KindSigning
	KindHTTP
	KindTransport
	KindDecode
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindSigning:
		return "signing"
	case KindHTTP:
		return "http"
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	default:
		return "other"
	}
}

// ErrorKind classifies err.
func ErrorKind(err error) Kind {
	if err == nil {
		return KindNone
	}
	var (
		signErr      *signing.SigningError
		httpErr      *HTTPError
		transportErr *TransportError
		decodeErr    *DecodeError
	)
	switch {
	case errors.As(err, &signErr):
		return KindSigning
	case errors.As(err, &httpErr):
		return KindHTTP
	case errors.As(err, &transportErr):
		return KindTransport
	case errors.As(err, &decodeErr):
		return KindDecode
	default:
		return KindOther
	}
}

// AsHTTPError returns the HTTPError in err's chain, if any.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}
