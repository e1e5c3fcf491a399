package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an error for transport mapping.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindNotFound
	KindConflict
	KindInviteInvalid
	KindInviteUsed
	KindInviteExpired
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInviteInvalid:
		return "invite_invalid"
	case KindInviteUsed:
		return "invite_used"
	case KindInviteExpired:
		return "invite_expired"
	default:
		return "internal"
	}
}

// StatusCode is the HTTP status a kind maps to.
func (k Kind) StatusCode() int {
	switch k {
	case KindValidation, KindInviteInvalid, KindInviteUsed, KindInviteExpired:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// FieldError is one entry of a validation error's details.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
	Details []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Validation returns a validation error carrying per-field details.
func Validation(details ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: "Validation error", Details: details}
}

// Wrap classifies err under kind, keeping it reachable via errors.Is/As.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// As extracts the classified error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}

// StatusCode maps err to an HTTP status; unclassified errors are 500.
func StatusCode(err error) int {
	return KindOf(err).StatusCode()
}
