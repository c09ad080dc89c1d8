package errors

import "net/http"

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// NotFound covers both "no such object" and "object owned by someone else" —
// the two cases are deliberately indistinguishable to callers.
func NotFound(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusNotFound}
}

// Conflict signals a duplicate email or username at registration.
func Conflict(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusConflict}
}

// InvariantViolation signals a structurally forbidden mutation, such as
// deleting the user's last remaining board.
func InvariantViolation(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusUnprocessableEntity}
}

func Unauthorized(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusUnauthorized}
}

func BadRequest(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusBadRequest}
}

func statusCode(err error) int {
	if e, ok := err.(*ErrorWithStatusCode); ok {
		return e.StatusCode
	}
	return 0
}

func IsNotFound(err error) bool {
	return statusCode(err) == http.StatusNotFound
}

func IsConflict(err error) bool {
	return statusCode(err) == http.StatusConflict
}

func IsInvariantViolation(err error) bool {
	return statusCode(err) == http.StatusUnprocessableEntity
}
