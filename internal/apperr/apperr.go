// Package apperr defines the closed set of error kinds the box engine returns.
// Callers branch with errors.Is against ErrValidation, ErrNotFound and ErrStore.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrStore      = errors.New("store error")
)

// Error carries the kind plus the offending identifier or field name.
type Error struct {
	Kind    error
	Subject string
	Msg     string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Subject != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Subject)
	}
	if e.Msg != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(subject, format string, args ...any) error {
	return &Error{Kind: ErrValidation, Subject: subject, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(subject string) error {
	return &Error{Kind: ErrNotFound, Subject: subject}
}

// Store wraps a failure coming from the database. A nil err returns nil.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	return &Error{Kind: ErrStore, Msg: op, Err: err}
}

// PublicMessage is the text safe to hand to an untrusted caller. Store causes are
// never included.
func PublicMessage(err error) string {
	var ae *Error
	if !errors.As(err, &ae) {
		return "internal server error"
	}
	if ae.Kind == ErrStore {
		return "internal server error"
	}
	msg := ae.Kind.Error()
	if ae.Subject != "" {
		msg += ": " + ae.Subject
	}
	if ae.Msg != "" {
		msg += ": " + ae.Msg
	}
	return msg
}

// Subject returns the identifier or field name attached to err, if any.
func Subject(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Subject
	}
	return ""
}
