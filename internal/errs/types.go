package errs

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	MsgNotAuthenticated       = "user is not authenticated"
	MsgCredentialRejected     = "credential rejected or expired, sign in again"
	MsgInsufficientPermission = "you don't have permission to perform this action"
	MsgConnectionFailed       = "connection failed, check your network connection"
	MsgTimeout                = "the request took too long, try again"
	MsgServerError            = "server error, try again later"
	MsgInvalidResponse        = "invalid response from server"
)

// ErrCancelled is returned when the user declines a confirmation.
var ErrCancelled = errors.New("operation cancelled")

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

// ValidationError is raised locally, before any network call.
type ValidationError struct {
	ErrorMessage
	Field string
}

type AuthKind int

const (
	AuthMissing AuthKind = iota
	AuthExpired
	AuthForbidden
)

func (k AuthKind) String() string {
	switch k {
	case AuthMissing:
		return "missing"
	case AuthExpired:
		return "expired"
	case AuthForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

type AuthError struct {
	ErrorMessage
	Kind   AuthKind
	Status int
	Err    error
}

func (e *AuthError) Unwrap() error { return e.Err }

// NetworkError covers connectivity failures, timeouts and unclassified non-2xx responses.
type NetworkError struct {
	ErrorMessage
	Status  int
	Timeout bool
	Err     error
}

func (e *NetworkError) Unwrap() error { return e.Err }

// CacheError is only ever logged.
type CacheError struct {
	ErrorMessage
	Op  string
	Err error
}

func (e *CacheError) Unwrap() error { return e.Err }

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
		Field:        field,
	}
}

func NewAuthError(kind AuthKind, message string, err error) *AuthError {
	return &AuthError{
		ErrorMessage: ErrorMessage{Message: message},
		Kind:         kind,
		Err:          err,
	}
}

func NewNetworkError(status int, message string, err error) *NetworkError {
	return &NetworkError{
		ErrorMessage: ErrorMessage{Message: message},
		Status:       status,
		Err:          err,
	}
}

func NewTimeoutError(err error) *NetworkError {
	return &NetworkError{
		ErrorMessage: ErrorMessage{Message: MsgTimeout},
		Timeout:      true,
		Err:          err,
	}
}

func NewCacheError(op string, err error) *CacheError {
	return &CacheError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("cache %s failed: %v", op, err)},
		Op:           op,
		Err:          err,
	}
}

// FromStatus classifies a non-2xx API response.
func FromStatus(status int) error {
	switch status {
	case http.StatusUnauthorized:
		e := NewAuthError(AuthExpired, MsgCredentialRejected, nil)
		e.Status = status
		return e
	case http.StatusForbidden:
		e := NewAuthError(AuthForbidden, MsgInsufficientPermission, nil)
		e.Status = status
		return e
	default:
		return NewNetworkError(status, fmt.Sprintf("%s (status %d)", MsgServerError, status), nil)
	}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsAuth(err error) bool {
	var a *AuthError
	return errors.As(err, &a)
}

func IsNetwork(err error) bool {
	var n *NetworkError
	return errors.As(err, &n)
}
