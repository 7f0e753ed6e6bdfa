package httperror

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error is the structured error returned by handlers. The web layer maps it
// onto a response: 4xx errors surface their message to the user, 5xx errors
// are logged and rendered generically.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsClientError reports whether the error should be shown to the user inline.
func (e *Error) IsClientError() bool {
	return e.Status >= fiber.StatusBadRequest && e.Status < fiber.StatusInternalServerError
}

func New(status int, code, message string, details any) *Error {
	return &Error{
		Status:  status,
		Code:    code,
		Message: message,
		Details: details,
	}
}

func BadRequest(code, message string, details any) *Error {
	return New(fiber.StatusBadRequest, code, message, details)
}

func NotFound(code, message string, details any) *Error {
	return New(fiber.StatusNotFound, code, message, details)
}

func UnsupportedMediaType(code, message string, details any) *Error {
	return New(fiber.StatusUnsupportedMediaType, code, message, details)
}

func InternalServerError(code, message string, details any) *Error {
	return New(fiber.StatusInternalServerError, code, message, details)
}

func NoContent(code, message string, details any) *Error {
	return New(fiber.StatusNoContent, code, message, details)
}
