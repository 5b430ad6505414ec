// Package errx implements typed, registry-backed application errors with a
// stable HTTP mapping. Each domain owns a Registry (e.g. "REPORT") and
// registers its codes once; services and handlers create errors from those
// codes and optionally attach detail key/values.
package errx

import (
	"fmt"
	"net/http"
)

// Type classifies an error for logging and HTTP mapping.
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeBusiness      Type = "BUSINESS"
	TypeExternal      Type = "EXTERNAL"
	TypeInternal      Type = "INTERNAL"
)

// Code identifies a registered error, e.g. "REPORT_NOT_FOUND".
type Code string

type definition struct {
	code       Code
	errType    Type
	httpStatus int
	message    string
}

// Registry holds the error definitions for one domain prefix.
type Registry struct {
	prefix string
	defs   map[Code]definition
}

// NewRegistry creates a registry whose codes are prefixed with the given
// domain name.
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		defs:   make(map[Code]definition),
	}
}

// Register adds an error definition and returns its full code.
func (r *Registry) Register(code string, errType Type, httpStatus int, message string) Code {
	full := Code(r.prefix + "_" + code)
	r.defs[full] = definition{
		code:       full,
		errType:    errType,
		httpStatus: httpStatus,
		message:    message,
	}
	return full
}

// New creates an Error from a registered code. Unknown codes produce an
// internal error so a bad constant never panics at runtime.
func (r *Registry) New(code Code) *Error {
	def, ok := r.defs[code]
	if !ok {
		return &Error{
			Code:       code,
			Type:       TypeInternal,
			HTTPStatus: http.StatusInternalServerError,
			Message:    "unregistered error code",
		}
	}
	return &Error{
		Code:       def.code,
		Type:       def.errType,
		HTTPStatus: def.httpStatus,
		Message:    def.message,
	}
}

// Error is the application error carried through services up to the HTTP
// error handler.
type Error struct {
	Code       Code           `json:"code"`
	Type       Type           `json:"type"`
	HTTPStatus int            `json:"-"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	cause      error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is/As.
func (e *Error) Unwrap() error {
	return e.cause
}

// WithDetail attaches a key/value to the error and returns it for chaining.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause records the underlying error.
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

// ToHTTPResponse returns the JSON body served for this error.
func (e *Error) ToHTTPResponse() map[string]any {
	resp := map[string]any{
		"error":   true,
		"type":    e.Type,
		"code":    e.Code,
		"message": e.Message,
	}
	if len(e.Details) > 0 {
		resp["details"] = e.Details
	}
	return resp
}

// Wrap converts an arbitrary error into an *Error of the given type. An
// existing *Error passes through unchanged so classifications made close to
// the failure are preserved.
func Wrap(err error, message string, errType Type) *Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	return &Error{
		Code:       Code(string(errType) + "_ERROR"),
		Type:       errType,
		HTTPStatus: statusFor(errType),
		Message:    message,
		cause:      err,
	}
}

func statusFor(t Type) int {
	switch t {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeAuthorization:
		return http.StatusForbidden
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	case TypeBusiness:
		return http.StatusUnprocessableEntity
	case TypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
