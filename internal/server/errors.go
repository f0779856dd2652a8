package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"scribble/internal/logs"
)

// ErrorType is the category of a handler error.
type ErrorType string

const (
	TypeValidation ErrorType = "validation"
	TypeNotFound   ErrorType = "not_found"
	TypeInternal   ErrorType = "internal"
)

// Error is a handler error carrying the category used to pick the status code.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus maps the error type to a status code.
func (e *Error) HTTPStatus() int {
	switch e.Type {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse is the JSON body written for handler errors.
type ErrorResponse struct {
	Error string    `json:"error"`
	Type  ErrorType `json:"type"`
}

func validationError(message string) *Error {
	return &Error{Type: TypeValidation, Message: message}
}

func internalError(message string, cause error) *Error {
	return &Error{Type: TypeInternal, Message: message, Cause: cause}
}

// errorMiddleware renders *Error values as JSON. Echo's own HTTP errors pass
// through to the default handler untouched.
func errorMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				return err
			}

			var structured *Error
			if !errors.As(err, &structured) {
				structured = internalError("internal server error", err)
			}

			logs.Logger.Warn("Request failed",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", structured.HTTPStatus(),
				"error", structured)

			if err := c.JSON(structured.HTTPStatus(), ErrorResponse{Error: structured.Message, Type: structured.Type}); err != nil {
				return fmt.Errorf("failed to write error response: %w", err)
			}
			return nil
		}
	}
}
