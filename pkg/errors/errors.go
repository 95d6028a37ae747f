package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeValidation  Code = "VALIDATION_ERROR"
	CodeNotFound    Code = "NOT_FOUND"
	CodeMethod      Code = "METHOD_NOT_ALLOWED"
	CodeConflict    Code = "CONFLICT"
	CodeIdempotency Code = "IDEMPOTENCY_KEY_REUSED"
	CodeRateLimit   Code = "RATE_LIMIT_EXCEEDED"
	CodeInternal    Code = "INTERNAL_ERROR"
	CodeDependency  Code = "DEPENDENCY_ERROR"
)

// Metadata describes how a code is rendered at the HTTP boundary.
// When ExposeMessage is set the error's own message is returned to the
// caller; otherwise PublicMessage replaces it.
type Metadata struct {
	HTTPStatus     int
	Retryable      bool
	PublicMessage  string
	ExposeMessage  bool
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		HTTPStatus:     http.StatusBadRequest,
		Retryable:      false,
		PublicMessage:  "Validation error",
		ExposeMessage:  true,
		DetailsAllowed: true,
	},
	CodeNotFound: {
		HTTPStatus:     http.StatusNotFound,
		Retryable:      false,
		PublicMessage:  "Resource not found",
		ExposeMessage:  true,
		DetailsAllowed: false,
	},
	CodeMethod: {
		HTTPStatus:     http.StatusMethodNotAllowed,
		Retryable:      false,
		PublicMessage:  "Method not allowed",
		ExposeMessage:  true,
		DetailsAllowed: false,
	},
	CodeConflict: {
		HTTPStatus:     http.StatusConflict,
		Retryable:      false,
		PublicMessage:  "Conflict detected",
		ExposeMessage:  true,
		DetailsAllowed: false,
	},
	CodeIdempotency: {
		HTTPStatus:     http.StatusConflict,
		Retryable:      false,
		PublicMessage:  "Idempotency key reused",
		ExposeMessage:  true,
		DetailsAllowed: true,
	},
	CodeRateLimit: {
		HTTPStatus:     http.StatusTooManyRequests,
		Retryable:      false,
		PublicMessage:  "Rate limit exceeded",
		ExposeMessage:  false,
		DetailsAllowed: false,
	},
	CodeInternal: {
		HTTPStatus:     http.StatusInternalServerError,
		Retryable:      true,
		PublicMessage:  "Internal server error",
		ExposeMessage:  false,
		DetailsAllowed: false,
	},
	CodeDependency: {
		HTTPStatus:     http.StatusServiceUnavailable,
		Retryable:      true,
		PublicMessage:  "Dependency unavailable",
		ExposeMessage:  false,
		DetailsAllowed: false,
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	entity  string
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

// Kind returns a message-less error usable as an errors.Is target for
// every error of the same code and entity.
func Kind(code Code, entity string) *Error {
	return &Error{code: code, entity: entity}
}

// NotFound reports a missing record, e.g. "Customer not found with ID: 7".
func NotFound(entity string, id any) *Error {
	return &Error{
		code:    CodeNotFound,
		entity:  entity,
		message: fmt.Sprintf("%s not found with ID: %v", entity, id),
	}
}

// AlreadyExists reports a unique field collision, e.g.
// "Customer already exists with email: a@b.c".
func AlreadyExists(entity, field string, value any) *Error {
	return &Error{
		code:    CodeConflict,
		entity:  entity,
		message: fmt.Sprintf("%s already exists with %s: %v", entity, field, value),
	}
}

// InUse reports a delete blocked by rows that still reference the record,
// e.g. "Customer has orders and cannot be deleted".
func InUse(entity, dependents string, cause error) *Error {
	return &Error{
		code:    CodeConflict,
		entity:  entity,
		message: fmt.Sprintf("%s has %s and cannot be deleted", entity, dependents),
		cause:   cause,
	}
}

// Invalid reports a domain rule violation on entity, e.g.
// "Order validation error: Order must have at least one item".
func Invalid(entity, detail string) *Error {
	return &Error{
		code:    CodeValidation,
		entity:  entity,
		message: fmt.Sprintf("%s validation error: %s", entity, detail),
	}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Entity() string {
	if e == nil {
		return ""
	}
	return e.entity
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is matches targets built with Kind: same code, and same entity when the
// target names one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	if t.message != "" || t.code != e.code {
		return false
	}
	return t.entity == "" || t.entity == e.entity
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}
