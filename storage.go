// Package nativestorage provides uniform asynchronous key/value storages over synced and device-local areas.
package nativestorage

import "fmt"

const (
	// Undefined is how a synced entry without a value is printed.
	Undefined = "undefined"
	// Null is how a local entry without a value is printed.
	Null = "null"
)

// Storage is a uniform asynchronous interface for storing and retrieving data.
//
// Reading a key that was never set is not an error: the returned entry resolves with Found set to false.
type Storage[V any] interface {
	Get(key string) *Deferred[Entry[V]]
	Set(key string, value V) *Deferred[struct{}]
}

// SyncArea is a callback based key/value service replicated across devices, such as chrome.storage.sync.
//
// Implementations must invoke the callback exactly once. Values are opaque to the area.
type SyncArea interface {
	Get(key string, callback func(items map[string]any, err error))
	Set(items map[string]any, callback func(err error))
}

// LocalArea is a device-local string key/value store, such as window.localStorage.
type LocalArea interface {
	GetItem(key string) (value string, found bool, err error)
	SetItem(key string, value string) error
}

// Entry is the result of reading a key.
type Entry[V any] struct {
	Value V
	Found bool

	absent string
}

// String formats the value, or the absence marker of the backend that produced the entry.
func (e Entry[V]) String() string {
	if !e.Found {
		if e.absent == "" {
			return Undefined
		}

		return e.absent
	}

	return fmt.Sprint(e.Value)
}

func foundEntry[V any](v V) Entry[V] {
	return Entry[V]{Value: v, Found: true}
}

func absentEntry[V any](marker string) Entry[V] {
	return Entry[V]{absent: marker}
}
