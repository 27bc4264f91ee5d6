package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "cleaning-console/pkg/errors"
)

// UnexpectedErrorMessage is used when a failed response carries no readable envelope.
const UnexpectedErrorMessage = "unexpected error"

// Envelope is the wire contract every backend endpoint answers with.
// A 2xx response may still carry Success == false for business-rule failures.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
	Code    int    `json:"code"`
}

// UnexpectedError builds the envelope synthesized when an error body cannot be parsed.
func UnexpectedError(status int) Envelope[any] {
	return Envelope[any]{
		Success: false,
		Message: UnexpectedErrorMessage,
		Code:    status,
	}
}

// SuccessOne writes a successful envelope.
func SuccessOne[T any](c echo.Context, code int, message string, data T) error {
	return c.JSON(code, Envelope[T]{
		Success: true,
		Message: message,
		Data:    data,
		Code:    code,
	})
}

// ErrorResponse maps err onto a status code and writes a failed envelope.
func ErrorResponse(c echo.Context, err error) error {
	code := http.StatusInternalServerError
	msg := "internal server error"

	var httpErr *apperrors.HttpError
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &httpErr):
		code = httpErr.Code
		msg = httpErr.Message
	case errors.As(err, &validationErrs):
		code = http.StatusBadRequest
		msg = validationErrs.Error()
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		code = http.StatusUnauthorized
		msg = err.Error()
	case errors.Is(err, apperrors.ErrEmptyAuthHeader),
		errors.Is(err, apperrors.ErrInvalidAuthHeader),
		errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenNotYetValid),
		errors.Is(err, apperrors.ErrInvalidSigningMethod),
		errors.Is(err, apperrors.ErrUnauthorized):
		code = http.StatusUnauthorized
		msg = err.Error()
	case errors.Is(err, apperrors.ErrForbidden):
		code = http.StatusForbidden
		msg = err.Error()
	case errors.Is(err, apperrors.ErrNotFound):
		code = http.StatusNotFound
		msg = err.Error()
	case errors.Is(err, apperrors.ErrBadRequest):
		code = http.StatusBadRequest
		msg = err.Error()
	}

	return c.JSON(code, Envelope[any]{
		Success: false,
		Message: msg,
		Code:    code,
	})
}
