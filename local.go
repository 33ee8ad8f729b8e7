package nativestorage

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

// DefaultDelay is the pause before every local operation.
const DefaultDelay = 1000 * time.Millisecond

var (
	_ Storage[any]             = (*LocalStorage[any])(nil)
	_ configurableLocalStorage = (*LocalStorage[any])(nil)
)

// LocalStorage is a storage implementation that uses a device-local area.
//
// Every operation waits for a fixed delay before it touches the area.
type LocalStorage[V any] struct {
	area   LocalArea
	clock  clock.Clock
	delay  time.Duration
	logger *zap.Logger
}

func (s *LocalStorage[V]) withLogger(l *zap.Logger) {
	s.logger = l
}

func (s *LocalStorage[V]) withClock(c clock.Clock) {
	s.clock = c
}

func (s *LocalStorage[V]) withDelay(d time.Duration) {
	s.delay = d
}

// after runs fn once the delay has elapsed. The timer is registered before after returns.
func (s *LocalStorage[V]) after(fn func()) {
	if s.delay <= 0 {
		go fn()

		return
	}

	s.clock.AfterFunc(s.delay, fn)
}

func (s *LocalStorage[V]) get(key string) (Entry[V], error) {
	result := absentEntry[V](Null)

	d, found, err := s.area.GetItem(key)
	if err != nil {
		return result, fmt.Errorf("failed to read data from local area: %w", err)
	}

	if !found {
		return result, nil
	}

	var v V

	if err := unmarshalData(d, &v); err != nil {
		return result, fmt.Errorf("failed to unmarshal data read from local area: %w", err)
	}

	return foundEntry(v), nil
}

func (s *LocalStorage[V]) set(key string, value V) error {
	d, err := marshalData(value)
	if err != nil {
		return fmt.Errorf("failed to marshal data for writing to local area: %w", err)
	}

	if err := s.area.SetItem(key, d); err != nil {
		return fmt.Errorf("failed to write data to local area: %w", err)
	}

	return nil
}

// Get gets the value for the given key.
func (s *LocalStorage[V]) Get(key string) *Deferred[Entry[V]] {
	d := newDeferred[Entry[V]]()

	s.after(func() {
		entry, err := s.get(key)
		if err != nil {
			s.logger.Error("could not get local item", zap.String("key", key), zap.Error(err))
		}

		d.resolve(entry, wrapError("get", key, err))
	})

	return d
}

// Set sets the value for the given key.
func (s *LocalStorage[V]) Set(key string, value V) *Deferred[struct{}] {
	d := newDeferred[struct{}]()

	s.after(func() {
		err := s.set(key, value)
		if err != nil {
			s.logger.Error("could not set local item", zap.String("key", key), zap.Error(err))
		}

		d.resolve(struct{}{}, wrapError("set", key, err))
	})

	return d
}

// NewLocalStorage creates a new LocalStorage on top of the given area.
func NewLocalStorage[V any](area LocalArea, opts ...LocalStorageOption) *LocalStorage[V] {
	s := &LocalStorage[V]{
		area:   area,
		clock:  clock.New(),
		delay:  DefaultDelay,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt.applyLocalStorageOption(s)
	}

	return s
}
