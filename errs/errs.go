// Package errs defines the error taxonomy shared by the service and
// store layers. Handlers translate these kinds into HTTP statuses;
// everything else (driver errors, timeouts) is wrapped as a storage
// error so internal detail never reaches a client.
package errs

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindValidation Kind = iota
	KindAuthentication
	KindConflict
	KindNotFound
	KindStorage
	KindStorageTimeout
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Authentication(msg string) error {
	return &Error{Kind: KindAuthentication, Message: msg}
}

func Conflict(msg string) error {
	return &Error{Kind: KindConflict, Message: msg}
}

func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Storage(err error) error {
	return &Error{Kind: KindStorage, Message: "storage error", Err: err}
}

func StorageTimeout(err error) error {
	return &Error{Kind: KindStorageTimeout, Message: "storage timeout", Err: err}
}

// Is reports whether err is (or wraps) an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
