package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used for classification with errors.Is. Every concrete
// error type in this package unwraps to exactly one of these, which lets
// transport layers map any engine error to a response code without knowing
// the concrete type.
var (
	// ErrValidation indicates malformed or out-of-range input. Recoverable
	// locally; surfaced to the caller as an inline message.
	ErrValidation = errors.New("validation failed")

	// ErrConflict indicates the entity changed before the call landed
	// (e.g. the bid was already selected). Never retried silently; the
	// caller must resynchronize from the authoritative source.
	ErrConflict = errors.New("state conflict")

	// ErrNotFound indicates a stale identifier after deletion or expiry.
	ErrNotFound = errors.New("object not found")

	// ErrAuthorization indicates a verification-gate or ownership failure.
	ErrAuthorization = errors.New("not authorized")

	// ErrTransport indicates the realtime connection is unavailable.
	// Retryable at the transport layer only.
	ErrTransport = errors.New("transport unavailable")
)

// sanitize strips newlines out of values interpolated into error messages
// so a single error always renders as one log line.
func sanitize(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "\r", " ")
}

// ValidationError reports malformed input for a named parameter.
type ValidationError struct {
	ParamName string
	Cause     error
}

// NewValidationError creates a ValidationError for the given parameter.
func NewValidationError(paramName string) *ValidationError {
	return &ValidationError{ParamName: paramName}
}

// NewValidationErrorWithCause creates a ValidationError wrapping an underlying cause.
func NewValidationErrorWithCause(paramName string, cause error) *ValidationError {
	return &ValidationError{ParamName: paramName, Cause: cause}
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValidation, sanitize(e.ParamName), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, sanitize(e.ParamName))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ConflictError reports that an entity's observed state no longer matches
// the state a caller acted on. Entity-invariant violations are never
// auto-corrected; they always surface as a ConflictError so the caller is
// forced to refresh.
type ConflictError struct {
	Entity string
	ID     any
	Reason string
	Cause  error
}

// NewConflictError creates a ConflictError for an entity and the reason the
// operation lost.
func NewConflictError(entity string, id any, reason string) *ConflictError {
	return &ConflictError{Entity: entity, ID: id, Reason: reason}
}

// NewConflictErrorWithCause creates a ConflictError wrapping an underlying cause.
func NewConflictErrorWithCause(entity string, id any, reason string, cause error) *ConflictError {
	return &ConflictError{Entity: entity, ID: id, Reason: reason, Cause: cause}
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("%s: %s %s: %s", ErrConflict, sanitize(e.Entity), fmt.Sprintf("%v", e.ID), sanitize(e.Reason))
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %s)", msg, sanitize(e.Cause.Error()))
	}
	return msg
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// NotFoundError reports that an entity does not exist or is no longer available.
type NotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewNotFoundError creates a NotFoundError for a parameter name and identifier.
func NewNotFoundError(paramName string, id any) *NotFoundError {
	return &NotFoundError{ParamName: paramName, ID: id}
}

// NewNotFoundErrorWithCause creates a NotFoundError wrapping an underlying cause.
func NewNotFoundErrorWithCause(paramName string, id any, cause error) *NotFoundError {
	return &NotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *NotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %v (cause: %s)",
			ErrNotFound, sanitize(e.ParamName), e.ID, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %v", ErrNotFound, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// AuthorizationError reports a verification-gate denial or an ownership check
// failure. RedirectTo, when set, names the flow the caller should be sent to
// instead of an inline error (e.g. the identity verification flow).
type AuthorizationError struct {
	Action     string
	RedirectTo string
	Cause      error
}

// NewAuthorizationError creates an AuthorizationError for a denied action.
func NewAuthorizationError(action string, redirectTo string) *AuthorizationError {
	return &AuthorizationError{Action: action, RedirectTo: redirectTo}
}

// NewAuthorizationErrorWithCause creates an AuthorizationError wrapping an underlying cause.
func NewAuthorizationErrorWithCause(action string, redirectTo string, cause error) *AuthorizationError {
	return &AuthorizationError{Action: action, RedirectTo: redirectTo, Cause: cause}
}

func (e *AuthorizationError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrAuthorization, sanitize(e.Action))
	if e.RedirectTo != "" {
		msg = fmt.Sprintf("%s (redirect: %s)", msg, sanitize(e.RedirectTo))
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %s)", msg, sanitize(e.Cause.Error()))
	}
	return msg
}

func (e *AuthorizationError) Unwrap() error {
	return ErrAuthorization
}

// TransportError reports a realtime-connection failure. Retryable: callers
// degrade to polling and surface it only as a passive status indicator.
type TransportError struct {
	Op    string
	Cause error
}

// NewTransportError creates a TransportError for a named operation.
func NewTransportError(op string) *TransportError {
	return &TransportError{Op: op}
}

// NewTransportErrorWithCause creates a TransportError wrapping an underlying cause.
func NewTransportErrorWithCause(op string, cause error) *TransportError {
	return &TransportError{Op: op, Cause: cause}
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrTransport, sanitize(e.Op), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrTransport, sanitize(e.Op))
}

func (e *TransportError) Unwrap() error {
	return ErrTransport
}

// ValueIsRequiredError reports a missing required value. Used by value-object
// constructors and constructor guards.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// ErrValueIsRequired is the sentinel for missing required values. It unwraps
// to ErrValidation so required-value failures classify as validation errors.
var ErrValueIsRequired = fmt.Errorf("%w: value is required", ErrValidation)

// NewValueIsRequiredError creates a ValueIsRequiredError for the given parameter.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("value is required: %s (cause: %s)", sanitize(e.ParamName), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("value is required: %s", sanitize(e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}
