// Package apperr defines the error taxonomy shared by the usecase layer.
// Callers branch on the sentinels with errors.Is; persistence failures are
// wrapped into a StorageError so the underlying cause stays inspectable.
package apperr

import (
	stderrors "errors"
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidArgument    = stderrors.New("invalid argument")
	ErrNotFound           = stderrors.New("not found")
	ErrInsufficientStock  = stderrors.New("insufficient stock")
	ErrDuplicateKey       = stderrors.New("duplicate key")
	ErrEmptyCart          = stderrors.New("cart is empty")
	ErrInvalidCredentials = stderrors.New("invalid credentials")
	ErrPermissionDenied   = stderrors.New("permission denied")
	ErrSaleFinalized      = stderrors.New("sale already finalized")
)

// StorageError wraps any failure coming out of the persistence layer.
type StorageError struct {
	err error
}

func (e *StorageError) Error() string {
	return "storage: " + e.err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.err
}

// Storage wraps err with context as a StorageError. Returns nil for nil err.
func Storage(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &StorageError{err: errors.Wrap(err, msg)}
}

// IsStorage reports whether err is (or wraps) a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return stderrors.As(err, &se)
}

// Invalidf builds an ErrInvalidArgument with a formatted detail message.
func Invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
