package config

import (
	"errors"
	"fmt"
)

// ErrorKind classifies configuration failures.
type ErrorKind int

const (
	// KindValidation is an out-of-range or malformed setter input.
	KindValidation ErrorKind = iota + 1

	// KindResolution is an unset or unregistered library name.
	KindResolution

	// KindMisuse is a call the current state does not allow: reading before
	// initialisation, initialising twice, or asking for a database that is
	// not configured.
	KindMisuse
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindResolution:
		return "resolution"
	case KindMisuse:
		return "misuse"
	default:
		return "unknown"
	}
}

// Error is the single error type of the configuration layer.
type Error struct {
	Kind    ErrorKind
	Field   string
	Value   any
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Field != "" && e.Value != nil:
		return fmt.Sprintf("%s error: %s=%v: %s", e.Kind, e.Field, e.Value, e.Message)
	case e.Field != "":
		return fmt.Sprintf("%s error: %s: %s", e.Kind, e.Field, e.Message)
	default:
		return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is, or wraps, an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var cerr *Error
	return errors.As(err, &cerr) && cerr.Kind == kind
}

func misuse(msg string) error {
	return &Error{Kind: KindMisuse, Message: msg}
}
