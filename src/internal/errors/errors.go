// Package errors re-exports github.com/pkg/errors so the rest of the
// module has one place to get wrapped, stack-trace-carrying errors from.
package errors

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

// New returns an error with a stack trace attached at the call site.
func New(message string) error {
	return pkgerrors.New(message)
}

// Errorf formats according to a format specifier and returns the string as
// an error with a stack trace attached at the call site.
func Errorf(format string, args ...interface{}) error {
	return pkgerrors.Errorf(format, args...)
}

// Wrapf annotates err with a message and a stack trace at the call site.
// Returns nil if err is nil.
func Wrapf(err error, format string, args ...interface{}) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// Wrap annotates err with a message and a stack trace at the call site.
// Returns nil if err is nil.
func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}

// EnsureStack wraps err in a stack-carrying error if it does not already
// have one attached, so callers can always render a stack for a fatal error.
func EnsureStack(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(interface{ StackTrace() pkgerrors.StackTrace }); ok {
		return err
	}
	return pkgerrors.WithStack(err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target and, if so,
// sets target to that error value and returns true.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Cause returns the underlying cause of err, if it implements Cause().
func Cause(err error) error {
	return pkgerrors.Cause(err)
}
