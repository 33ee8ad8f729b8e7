package nativestorage

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/multierr"
)

// Quota limits what a MemorySyncArea accepts. Zero values mean no limit.
type Quota struct {
	// BytesPerItem is the maximum size of an item, measured as the length of its key plus its JSON encoding.
	BytesPerItem int
	// MaxItems is the maximum number of items in the area.
	MaxItems int
}

// ChromeSyncQuota mirrors the limits of chrome.storage.sync.
var ChromeSyncQuota = Quota{
	BytesPerItem: 8192,
	MaxItems:     512,
}

var (
	_ SyncArea  = (*MemorySyncArea)(nil)
	_ LocalArea = (*MemoryLocalArea)(nil)
)

// MemorySyncArea is an in-process SyncArea. Callbacks are invoked on their own goroutine.
type MemorySyncArea struct {
	mu    sync.RWMutex
	items map[string]any
	quota Quota
}

// Get reads the item for the given key. The callback receives an empty map if the key is not set.
func (a *MemorySyncArea) Get(key string, callback func(items map[string]any, err error)) {
	a.mu.RLock()
	v, ok := a.items[key]
	a.mu.RUnlock()

	items := make(map[string]any, 1)
	if ok {
		items[key] = v
	}

	go callback(items, nil)
}

// Set writes all items, or none of them if any item is rejected by the quota.
func (a *MemorySyncArea) Set(items map[string]any, callback func(err error)) {
	a.mu.Lock()

	err := a.checkQuota(items)
	if err == nil {
		for k, v := range items {
			a.items[k] = v
		}
	}

	a.mu.Unlock()

	go callback(err)
}

func (a *MemorySyncArea) checkQuota(items map[string]any) error {
	var err error

	added := 0

	for k, v := range items {
		if _, ok := a.items[k]; !ok {
			added++
		}

		if a.quota.BytesPerItem <= 0 {
			continue
		}

		b, mErr := json.Marshal(v)
		if mErr != nil {
			err = multierr.Append(err, fmt.Errorf("%w: %q: %s", ErrUnsupportedType, k, mErr.Error()))

			continue
		}

		if size := len(k) + len(b); size > a.quota.BytesPerItem {
			err = multierr.Append(err, fmt.Errorf("%w: %q is %d bytes, limit is %d", ErrKeyTooLarge, k, size, a.quota.BytesPerItem))
		}
	}

	if a.quota.MaxItems > 0 && len(a.items)+added > a.quota.MaxItems {
		err = multierr.Append(err, fmt.Errorf("%w: %d items, limit is %d", ErrQuotaExceeded, len(a.items)+added, a.quota.MaxItems))
	}

	return err
}

// Len returns the number of items in the area.
func (a *MemorySyncArea) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return len(a.items)
}

// MemorySyncAreaOption is an option to configure MemorySyncArea.
type MemorySyncAreaOption func(a *MemorySyncArea)

// WithQuota sets the quota of the area.
func WithQuota(q Quota) MemorySyncAreaOption {
	return func(a *MemorySyncArea) {
		a.quota = q
	}
}

// NewMemorySyncArea creates a new empty MemorySyncArea.
func NewMemorySyncArea(opts ...MemorySyncAreaOption) *MemorySyncArea {
	a := &MemorySyncArea{
		items: make(map[string]any),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// MemoryLocalArea is an in-process LocalArea.
type MemoryLocalArea struct {
	mu    sync.RWMutex
	items map[string]string
}

// GetItem gets the item for the given key.
func (a *MemoryLocalArea) GetItem(key string) (string, bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	v, ok := a.items[key]

	return v, ok, nil
}

// SetItem sets the item for the given key.
func (a *MemoryLocalArea) SetItem(key string, value string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.items[key] = value

	return nil
}

// NewMemoryLocalArea creates a new empty MemoryLocalArea.
func NewMemoryLocalArea() *MemoryLocalArea {
	return &MemoryLocalArea{items: make(map[string]string)}
}
