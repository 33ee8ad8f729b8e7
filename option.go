package nativestorage

import (
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

type configurableSyncedStorage interface {
	withLogger(l *zap.Logger)
}

type configurableLocalStorage interface {
	withLogger(l *zap.Logger)
	withClock(c clock.Clock)
	withDelay(d time.Duration)
}

// SyncedStorageOption is an option to configure SyncedStorage.
type SyncedStorageOption interface {
	applySyncedStorageOption(s configurableSyncedStorage)
}

// LocalStorageOption is an option to configure LocalStorage.
type LocalStorageOption interface {
	applyLocalStorageOption(s configurableLocalStorage)
}

// StorageOption is an option that configures both SyncedStorage and LocalStorage.
type StorageOption interface {
	SyncedStorageOption
	LocalStorageOption
}

type loggerOption struct {
	logger *zap.Logger
}

func (o loggerOption) applySyncedStorageOption(s configurableSyncedStorage) {
	s.withLogger(o.logger)
}

func (o loggerOption) applyLocalStorageOption(s configurableLocalStorage) {
	s.withLogger(o.logger)
}

// WithLogger sets the diagnostic logger. A nil logger discards everything.
func WithLogger(l *zap.Logger) StorageOption {
	if l == nil {
		l = zap.NewNop()
	}

	return loggerOption{logger: l}
}

type localStorageOptionFunc func(s configurableLocalStorage)

func (f localStorageOptionFunc) applyLocalStorageOption(s configurableLocalStorage) {
	f(s)
}

// WithClock sets the clock used to schedule the delay before each local operation.
func WithClock(c clock.Clock) LocalStorageOption {
	return localStorageOptionFunc(func(s configurableLocalStorage) {
		s.withClock(c)
	})
}

// WithDelay sets the delay before each local operation. A non-positive delay runs the operation right away.
func WithDelay(d time.Duration) LocalStorageOption {
	return localStorageOptionFunc(func(s configurableLocalStorage) {
		s.withDelay(d)
	})
}
