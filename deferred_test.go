package nativestorage

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeferred_ResolvesOnce(t *testing.T) {
	t.Parallel()

	d := newDeferred[string]()

	assert.False(t, d.Resolved())
	assert.True(t, d.resolve("first", nil))
	assert.False(t, d.resolve("second", assert.AnError))
	assert.True(t, d.Resolved())

	actual, err := d.Wait(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "first", actual)
}

func TestDeferred_ConcurrentResolve(t *testing.T) {
	t.Parallel()

	d := newDeferred[int]()

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		won int
	)

	for i := range 10 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if d.resolve(i, nil) {
				mu.Lock()
				won++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, won)
}

func TestDeferred_Wait_ContextDone(t *testing.T) {
	t.Parallel()

	d := newDeferred[string]()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	actual, err := d.Wait(ctx)

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, actual)
	assert.False(t, d.Resolved())
}

func TestDeferred_Done(t *testing.T) {
	t.Parallel()

	d := newDeferred[struct{}]()

	go d.resolve(struct{}{}, nil)

	<-d.Done()

	assert.True(t, d.Resolved())
}

func TestEntry_String(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		scenario string
		entry    Entry[any]
		expected string
	}{
		{scenario: "zero entry", entry: Entry[any]{}, expected: "undefined"},
		{scenario: "absent synced", entry: absentEntry[any](Undefined), expected: "undefined"},
		{scenario: "absent local", entry: absentEntry[any](Null), expected: "null"},
		{scenario: "string", entry: foundEntry[any]("dark"), expected: "dark"},
		{scenario: "number", entry: foundEntry[any](42.5), expected: "42.5"},
		{scenario: "found nil", entry: foundEntry[any](nil), expected: "<nil>"},
	}

	for _, tc := range testCases {
		t.Run(tc.scenario, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, tc.entry.String())
		})
	}
}
