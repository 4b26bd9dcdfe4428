// Package errors defines the JSON body every failed request answers with and
// the helpers handlers and middleware use to abort with it.
package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Code classifies a failure for API clients
type Code string

const (
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeInvalidInput       Code = "INVALID_INPUT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeConflict           Code = "CONFLICT"
	CodeInternal           Code = "INTERNAL_ERROR"
)

type kind struct {
	status   int
	fallback string
}

var kinds = map[Code]kind{
	CodeUnauthorized:       {http.StatusUnauthorized, "Authentication required"},
	CodeInvalidCredentials: {http.StatusUnauthorized, "invalid email or password"},
	CodeInvalidInput:       {http.StatusBadRequest, "Invalid request"},
	CodeNotFound:           {http.StatusNotFound, "Resource not found"},
	CodeConflict:           {http.StatusConflict, "Resource already exists"},
	CodeInternal:           {http.StatusInternalServerError, "Internal server error"},
}

// APIError is the error body: `{"code", "message", "details"?}`
type APIError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// Status is the HTTP status the code is served with. Unknown codes are 500.
func (e *APIError) Status() int {
	if k, ok := kinds[e.Code]; ok {
		return k.status
	}
	return http.StatusInternalServerError
}

// New builds an APIError, substituting the code's stock message for an empty one.
func New(code Code, message string) *APIError {
	if message == "" {
		message = kinds[code].fallback
	}
	return &APIError{Code: code, Message: message}
}

// WithDetails attaches structured details, such as failed validation rules.
func (e *APIError) WithDetails(details any) *APIError {
	e.Details = details
	return e
}

// Abort writes err and stops the handler chain.
func Abort(c *gin.Context, err *APIError) {
	c.AbortWithStatusJSON(err.Status(), err)
}

func Unauthorized(c *gin.Context, message string) {
	Abort(c, New(CodeUnauthorized, message))
}

func InvalidCredentials(c *gin.Context, message string) {
	Abort(c, New(CodeInvalidCredentials, message))
}

func NotFound(c *gin.Context, message string) {
	Abort(c, New(CodeNotFound, message))
}

func BadRequest(c *gin.Context, message string) {
	Abort(c, New(CodeInvalidInput, message))
}

// BadRequestWithDetails reports invalid input together with per-field details
func BadRequestWithDetails(c *gin.Context, message string, details any) {
	Abort(c, New(CodeInvalidInput, message).WithDetails(details))
}

func Conflict(c *gin.Context, message string) {
	Abort(c, New(CodeConflict, message))
}

// InternalError hides the cause; handlers log it before calling this.
func InternalError(c *gin.Context, message string) {
	Abort(c, New(CodeInternal, message))
}
