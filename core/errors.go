package core

import "github.com/pkg/errors"

// ErrBusy is returned when the scheduling lock could not be acquired in time.
var ErrBusy = errors.New("Hệ thống đang bận, vui lòng thử lại sau.")

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

// NotFoundError means an identifier does not resolve to a row.
type NotFoundError struct {
	message string
}

func NewNotFoundError(msg string) error {
	return &NotFoundError{message: msg}
}

func (nf NotFoundError) Error() string {
	return nf.message
}

func IsNotFound(err error) bool {
	_, ok := errors.Cause(err).(*NotFoundError)
	return ok
}

// DependencyError means a delete was refused because other rows still reference the target.
type DependencyError struct {
	message string
}

func NewDependencyError(msg string) error {
	return &DependencyError{message: msg}
}

func (de DependencyError) Error() string {
	return de.message
}

func IsDependencyBlocked(err error) bool {
	_, ok := errors.Cause(err).(*DependencyError)
	return ok
}
