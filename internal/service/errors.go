package service

import "errors" // Error inspection

// Kind classifies service failures for the transport layer
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindUnauthorized
	KindTooManyAttempts
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindTooManyAttempts:
		return "too_many_attempts"
	default:
		return "internal"
	}
}

// Error is a classified service failure. Message is safe to show to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal server error", Err: err}
}

// KindOf reports the kind of err; unclassified errors are internal
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

// MessageOf returns the client-facing message of err
func MessageOf(err error) string {
	var se *Error
	if errors.As(err, &se) && se.Kind != KindInternal {
		return se.Message
	}
	return "Internal server error"
}

const (
	msgUserExists         = "User with this email already exists"
	msgUserNotFound       = "User not found"
	msgInvalidCredentials = "Invalid email or password"
	msgTooManyAttempts    = "Too many failed login attempts, try again later"
	msgInvalidToken       = "Invalid or expired token"
	msgPaymentExists      = "Payment with this order number already exists"
	msgPaymentNotFound    = "Payment not found"
	msgStayDates          = "checkOutDate must not be before checkInDate"
)
