package domain

import "errors"

// ErrorKind classifies application errors so the transport layer can map
// them to status codes without string matching.
type ErrorKind string

const (
	ErrKindValidation         ErrorKind = "validation"
	ErrKindPreconditionFailed ErrorKind = "precondition_failed"
	ErrKindInvalidState       ErrorKind = "invalid_state"
	ErrKindNotFound           ErrorKind = "not_found"
	ErrKindPersistence        ErrorKind = "persistence"
)

type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// ValidationError reports missing or invalid caller input.
func ValidationError(msg string) error {
	return &Error{Kind: ErrKindValidation, Msg: msg}
}

// PreconditionFailed reports equipment not in the expected status or an
// availability shortfall discovered while mutating.
func PreconditionFailed(msg string) error {
	return &Error{Kind: ErrKindPreconditionFailed, Msg: msg}
}

// InvalidState reports an operation against a record in a terminal state,
// such as finalizing an already-finalized rental.
func InvalidState(msg string) error {
	return &Error{Kind: ErrKindInvalidState, Msg: msg}
}

func NotFound(msg string) error {
	return &Error{Kind: ErrKindNotFound, Msg: msg}
}

// PersistenceError wraps a store failure, preserving the driver message.
func PersistenceError(msg string, err error) error {
	return &Error{Kind: ErrKindPersistence, Msg: msg, Err: err}
}

// KindOf returns the classification of err, or "" for plain errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
