package nativestorage

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by areas when a key has no value. Storages never surface it.
	ErrNotFound = errors.New("key not found")
	// ErrUnsupportedType is an unsupported type error.
	ErrUnsupportedType = errors.New("unsupported type")
	// ErrBackendUnavailable is returned when the underlying area cannot be reached.
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrKeyTooLarge is returned when an item exceeds the per-item quota of the area.
	ErrKeyTooLarge = errors.New("key too large")
	// ErrQuotaExceeded is returned when a write would exceed the number of items allowed in the area.
	ErrQuotaExceeded = errors.New("quota exceeded")
)

// StorageError is an error reported by an area while serving an operation.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to %s %q: %s", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func wrapError(op, key string, err error) error {
	if err == nil {
		return nil
	}

	return &StorageError{Op: op, Key: key, Err: err}
}
