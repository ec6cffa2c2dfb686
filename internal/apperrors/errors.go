package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an AppError. Callers branch on the kind, never on the message.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindBusinessRule
	KindConflict
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrBusinessRule indicates a well formed request that the ledger rules reject.
var ErrBusinessRule = errors.New("business rule violation")

// ErrConflict indicates a retryable concurrency conflict in the store.
var ErrConflict = errors.New("concurrency conflict")

// ErrInternal indicates an unexpected failure.
var ErrInternal = errors.New("internal error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
// It is reported with KindValidation.
var ErrDuplicate = errors.New("resource already exists")

func (k Kind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindValidation:
		return ErrValidation
	case KindBusinessRule:
		return ErrBusinessRule
	case KindConflict:
		return ErrConflict
	default:
		return ErrInternal
	}
}

// HTTPStatus returns the status code a transport should use for the kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindBusinessRule:
		return http.StatusUnprocessableEntity
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindBusinessRule:
		return "business_rule"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// AppError is the single error type surfaced by services.
type AppError struct {
	Kind    Kind
	Code    string
	Message string
	Meta    map[string]any
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match an AppError against the kind sentinels and ErrDuplicate.
func (e *AppError) Is(target error) bool {
	if target == e.Kind.sentinel() {
		return true
	}
	return target == ErrDuplicate && e.Code == CodeDuplicateReference
}

// Retryable reports whether the caller may retry the operation unchanged.
func (e *AppError) Retryable() bool {
	return e.Kind == KindConflict
}

// WithMeta returns the error with an extra metadata entry.
func (e *AppError) WithMeta(key string, value any) *AppError {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates an AppError.
func New(kind Kind, code, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message}
}

// Wrap creates an AppError around a cause.
func Wrap(kind Kind, code, message string, err error) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message, Err: err}
}

// NewInternalError wraps an unexpected failure. The message is logged, not returned to clients.
func NewInternalError(message string, err error) *AppError {
	return Wrap(KindInternal, CodeInternal, message, err)
}

// NewConflictError wraps a retryable store conflict.
func NewConflictError(message string, err error) *AppError {
	return Wrap(KindConflict, CodeConcurrencyConflict, message, err)
}

// AsAppError extracts an AppError from the chain. Plain errors become internal errors.
func AsAppError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError("unexpected error", err)
}

// KindOf returns the kind of err, KindInternal when err is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsRetryable reports whether err is a retryable conflict.
func IsRetryable(err error) bool {
	return KindOf(err) == KindConflict
}
