package nativestorage

import (
	"fmt"

	"go.uber.org/zap"
)

var (
	_ Storage[any]              = (*SyncedStorage[any])(nil)
	_ configurableSyncedStorage = (*SyncedStorage[any])(nil)
)

// SyncedStorage is a storage implementation that uses a synced area.
type SyncedStorage[V any] struct {
	area   SyncArea
	logger *zap.Logger
}

func (s *SyncedStorage[V]) withLogger(l *zap.Logger) {
	s.logger = l
}

// Get gets the value for the given key.
func (s *SyncedStorage[V]) Get(key string) *Deferred[Entry[V]] {
	d := newDeferred[Entry[V]]()

	s.logger.Debug("chromeGet", zap.String("key", key))

	s.area.Get(key, func(items map[string]any, err error) {
		entry, err := lookupItem[V](items, key, err)

		s.logger.Debug(fmt.Sprintf("resolve: %s", entry), zap.String("key", key))

		d.resolve(entry, wrapError("get", key, err))
	})

	return d
}

// Set sets the value for the given key.
func (s *SyncedStorage[V]) Set(key string, value V) *Deferred[struct{}] {
	d := newDeferred[struct{}]()

	s.logger.Debug("chromeSet", zap.String("key", key))

	s.area.Set(map[string]any{key: value}, func(err error) {
		d.resolve(struct{}{}, wrapError("set", key, err))
	})

	return d
}

func lookupItem[V any](items map[string]any, key string, err error) (Entry[V], error) {
	result := absentEntry[V](Undefined)

	if err != nil {
		return result, err
	}

	raw, ok := items[key]
	if !ok || raw == nil {
		return result, nil
	}

	v, ok := raw.(V)
	if !ok {
		return result, fmt.Errorf("%w: %T", ErrUnsupportedType, raw)
	}

	return foundEntry(v), nil
}

// NewSyncedStorage creates a new SyncedStorage on top of the given area.
func NewSyncedStorage[V any](area SyncArea, opts ...SyncedStorageOption) *SyncedStorage[V] {
	s := &SyncedStorage[V]{
		area:   area,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt.applySyncedStorageOption(s)
	}

	return s
}
