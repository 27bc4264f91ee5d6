package errors

import (
	"errors"
	"fmt"
)

var (
	// Tokens
	ErrInvalidSigningMethod = fmt.Errorf("invalid token signing method")
	ErrInvalidToken         = fmt.Errorf("invalid token")
	ErrTokenExpired         = fmt.Errorf("token expired")
	ErrTokenNotYetValid     = fmt.Errorf("token not yet valid")

	// Authorization
	ErrEmptyAuthHeader    = fmt.Errorf("authorization header is missing")
	ErrInvalidAuthHeader  = fmt.Errorf("malformed authorization header")
	ErrInvalidCredentials = fmt.Errorf("invalid username or password")
	ErrUnauthorized       = fmt.Errorf("unauthorized")
	ErrForbidden          = fmt.Errorf("forbidden")

	// Session
	ErrNoSession       = fmt.Errorf("no active session")
	ErrLoginInProgress = fmt.Errorf("login already in progress")

	// General
	ErrNotFound   = fmt.Errorf("not found")
	ErrBadRequest = fmt.Errorf("bad request")
)

// Kind classifies a failed API call.
type Kind int

const (
	KindTransport Kind = iota + 1
	KindAuth
	KindBusiness
	KindHTTP
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAuth:
		return "auth"
	case KindBusiness:
		return "business"
	case KindHTTP:
		return "http"
	default:
		return "unknown"
	}
}

// ApiError is the error value of every failed backend call. Message is safe to show to the user.
type ApiError struct {
	Kind    Kind
	Code    int
	Message string
	Err     error
}

func (e *ApiError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error (code %d): %s: %v", e.Kind, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error (code %d): %s", e.Kind, e.Code, e.Message)
}

func (e *ApiError) Unwrap() error { return e.Err }

func NewApiError(kind Kind, code int, message string, err error) *ApiError {
	return &ApiError{Kind: kind, Code: code, Message: message, Err: err}
}

// AsApiError extracts an *ApiError from the chain.
func AsApiError(err error) (*ApiError, bool) {
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func IsAuth(err error) bool {
	apiErr, ok := AsApiError(err)
	return ok && apiErr.Kind == KindAuth
}

func IsBusiness(err error) bool {
	apiErr, ok := AsApiError(err)
	return ok && apiErr.Kind == KindBusiness
}

func IsTransport(err error) bool {
	apiErr, ok := AsApiError(err)
	return ok && apiErr.Kind == KindTransport
}

// HttpError is returned by the dev backend handlers and rendered as an error envelope.
type HttpError struct {
	Code    int
	Message string
	Err     error
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err}
}

type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}
