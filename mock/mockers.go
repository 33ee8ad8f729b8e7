package mock

import (
	"testing"

	"github.com/stretchr/testify/mock"
)

// Arguments holds the arguments of a mocked call.
type Arguments = mock.Arguments

// Anything is used in Diffs and Assert when the argument being tested shouldn't be taken into consideration.
const Anything = mock.Anything

// KeyringMocker is Keyring mocker.
type KeyringMocker func(tb testing.TB) *Keyring

// MockKeyring creates Keyring mock with cleanup to ensure all the expectations are met.
func MockKeyring(mocks ...func(k *Keyring)) KeyringMocker { //nolint: revive
	return func(tb testing.TB) *Keyring {
		tb.Helper()

		k := NewKeyring(tb)

		for _, m := range mocks {
			m(k)
		}

		return k
	}
}

// SyncAreaMocker is SyncArea mocker.
type SyncAreaMocker func(tb testing.TB) *SyncArea

// MockSyncArea creates SyncArea mock with cleanup to ensure all the expectations are met.
func MockSyncArea(mocks ...func(a *SyncArea)) SyncAreaMocker { //nolint: revive
	return func(tb testing.TB) *SyncArea {
		tb.Helper()

		a := NewSyncArea(tb)

		for _, m := range mocks {
			m(a)
		}

		return a
	}
}

// LocalAreaMocker is LocalArea mocker.
type LocalAreaMocker func(tb testing.TB) *LocalArea

// MockLocalArea creates LocalArea mock with cleanup to ensure all the expectations are met.
func MockLocalArea(mocks ...func(a *LocalArea)) LocalAreaMocker { //nolint: revive
	return func(tb testing.TB) *LocalArea {
		tb.Helper()

		a := NewLocalArea(tb)

		for _, m := range mocks {
			m(a)
		}

		return a
	}
}

// GetCallback invokes the callback passed to SyncArea.Get with the given result.
func GetCallback(items map[string]any, err error) func(args mock.Arguments) {
	return func(args mock.Arguments) {
		cb := args.Get(1).(func(map[string]any, error)) //nolint: errcheck,forcetypeassert

		go cb(items, err)
	}
}

// SetCallback invokes the callback passed to SyncArea.Set with the given error.
func SetCallback(err error) func(args mock.Arguments) {
	return func(args mock.Arguments) {
		cb := args.Get(1).(func(error)) //nolint: errcheck,forcetypeassert

		go cb(err)
	}
}
