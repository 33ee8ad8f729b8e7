package nativestorage_test

import (
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go.nhat.io/nativestorage"
	"go.nhat.io/nativestorage/mock"
)

func newMockedLocalStorage[V any](area nativestorage.LocalArea) (*nativestorage.LocalStorage[V], *clock.Mock) {
	clk := clock.NewMock()

	return nativestorage.NewLocalStorage[V](area, nativestorage.WithClock(clk)), clk
}

func TestLocalStorage_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := waitContext(t)
	s, clk := newMockedLocalStorage[string](nativestorage.NewMemoryLocalArea())

	set := s.Set("theme", "dark")
	clk.Add(nativestorage.DefaultDelay)

	_, err := set.Wait(ctx)
	require.NoError(t, err)

	get := s.Get("theme")
	clk.Add(nativestorage.DefaultDelay)

	actual, err := get.Wait(ctx)
	require.NoError(t, err)

	assert.True(t, actual.Found)
	assert.Equal(t, "dark", actual.Value)
}

func TestLocalStorage_ResolvesAfterDelay(t *testing.T) {
	t.Parallel()

	ctx := waitContext(t)
	s, clk := newMockedLocalStorage[string](nativestorage.NewMemoryLocalArea())
	start := clk.Now()

	set := s.Set("theme", "dark")

	clk.Add(nativestorage.DefaultDelay - time.Millisecond)
	assert.False(t, set.Resolved(), "set resolved before the delay")

	clk.Add(time.Millisecond)

	_, err := set.Wait(ctx)
	require.NoError(t, err)

	get := s.Get("theme")

	clk.Add(nativestorage.DefaultDelay - time.Millisecond)
	assert.False(t, get.Resolved(), "get resolved before the delay")

	clk.Add(time.Millisecond)

	actual, err := get.Wait(ctx)
	require.NoError(t, err)

	assert.Equal(t, "dark", actual.Value)
	assert.GreaterOrEqual(t, clk.Now().Sub(start), 2*nativestorage.DefaultDelay)
}

func TestLocalStorage_DoesNotTouchAreaBeforeDelay(t *testing.T) {
	t.Parallel()

	a := mock.MockLocalArea(func(a *mock.LocalArea) {
		a.On("SetItem", "theme", "dark").Return(nil).Once()
	})(t)

	s, clk := newMockedLocalStorage[string](a)

	set := s.Set("theme", "dark")

	clk.Add(nativestorage.DefaultDelay / 2)
	a.AssertNotCalled(t, "SetItem", "theme", "dark")

	clk.Add(nativestorage.DefaultDelay / 2)

	_, err := set.Wait(waitContext(t))
	require.NoError(t, err)
}

func TestLocalStorage_Get_KeyNotSet(t *testing.T) {
	t.Parallel()

	s, clk := newMockedLocalStorage[string](nativestorage.NewMemoryLocalArea())

	get := s.Get("missing")
	clk.Add(nativestorage.DefaultDelay)

	actual, err := get.Wait(waitContext(t))
	require.NoError(t, err)

	assert.False(t, actual.Found)
	assert.Equal(t, nativestorage.Null, actual.String())
}

func TestLocalStorage_ConcurrentSet(t *testing.T) {
	t.Parallel()

	ctx := waitContext(t)
	area := nativestorage.NewMemoryLocalArea()
	s, clk := newMockedLocalStorage[string](area)

	a := s.Set("x", "a")
	b := s.Set("x", "b")

	clk.Add(nativestorage.DefaultDelay)

	var wg sync.WaitGroup

	for _, d := range []*nativestorage.Deferred[struct{}]{a, b} {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := d.Wait(ctx)
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	actual, found, err := area.GetItem("x")
	require.NoError(t, err)

	assert.True(t, found)
	assert.Contains(t, []string{"a", "b"}, actual)
}

func TestLocalStorage_RealClock(t *testing.T) {
	t.Parallel()

	ctx := waitContext(t)
	delay := 20 * time.Millisecond
	s := nativestorage.NewLocalStorage[string](nativestorage.NewMemoryLocalArea(), nativestorage.WithDelay(delay))

	start := time.Now()

	_, err := s.Set("theme", "dark").Wait(ctx)
	require.NoError(t, err)

	actual, err := s.Get("theme").Wait(ctx)
	require.NoError(t, err)

	assert.Equal(t, "dark", actual.Value)
	assert.GreaterOrEqual(t, time.Since(start), 2*delay)
}

func TestLocalStorage_NoDelay(t *testing.T) {
	t.Parallel()

	ctx := waitContext(t)
	s := nativestorage.NewLocalStorage[[]byte](nativestorage.NewMemoryLocalArea(), nativestorage.WithDelay(0))

	_, err := s.Set("blob", []byte("data")).Wait(ctx)
	require.NoError(t, err)

	actual, err := s.Get("blob").Wait(ctx)
	require.NoError(t, err)

	assert.Equal(t, []byte("data"), actual.Value)
}

func TestLocalStorage_TextMarshaler(t *testing.T) {
	t.Parallel()

	ctx := waitContext(t)
	area := nativestorage.NewMemoryLocalArea()
	s := nativestorage.NewLocalStorage[custom](area, nativestorage.WithDelay(0))

	_, err := s.Set("answer", custom(42)).Wait(ctx)
	require.NoError(t, err)

	raw, _, err := area.GetItem("answer")
	require.NoError(t, err)
	assert.Equal(t, "42", raw)

	actual, err := s.Get("answer").Wait(ctx)
	require.NoError(t, err)

	assert.Equal(t, custom(42), actual.Value)
}

func TestLocalStorage_Set_Failure_TextMarshaler(t *testing.T) {
	t.Parallel()

	s := nativestorage.NewLocalStorage[custom](nativestorage.NewMemoryLocalArea(), nativestorage.WithDelay(0))

	_, err := s.Set("answer", custom(-1)).Wait(waitContext(t))

	require.EqualError(t, err, `failed to set "answer": failed to marshal data for writing to local area: negative value`)
}

func TestLocalStorage_Get_Failure_TextUnmarshaler(t *testing.T) {
	t.Parallel()

	area := nativestorage.NewMemoryLocalArea()
	require.NoError(t, area.SetItem("answer", "value"))

	s := nativestorage.NewLocalStorage[custom](area, nativestorage.WithDelay(0))

	_, err := s.Get("answer").Wait(waitContext(t))

	require.EqualError(t, err, `failed to get "answer": failed to unmarshal data read from local area: strconv.Atoi: parsing "value": invalid syntax`)
}

func TestLocalStorage_UnsupportedType(t *testing.T) {
	t.Parallel()

	s := nativestorage.NewLocalStorage[chan struct{}](nativestorage.NewMemoryLocalArea(), nativestorage.WithDelay(0))

	_, err := s.Set("ch", make(chan struct{})).Wait(waitContext(t))

	require.ErrorIs(t, err, nativestorage.ErrUnsupportedType)
	require.EqualError(t, err, `failed to set "ch": failed to marshal data for writing to local area: unsupported type: chan struct {}`)
}

func TestLocalStorage_Failure_IsLogged(t *testing.T) {
	t.Parallel()

	a := mock.MockLocalArea(func(a *mock.LocalArea) {
		a.On("GetItem", "theme").Return("", false, assert.AnError)
		a.On("SetItem", "theme", "dark").Return(nativestorage.ErrBackendUnavailable)
	})(t)

	logger, logs := observedLogger()
	s := nativestorage.NewLocalStorage[string](a, nativestorage.WithDelay(0), nativestorage.WithLogger(logger))

	_, err := s.Set("theme", "dark").Wait(waitContext(t))
	require.ErrorIs(t, err, nativestorage.ErrBackendUnavailable)

	actual, err := s.Get("theme").Wait(waitContext(t))
	require.ErrorIs(t, err, assert.AnError)
	assert.False(t, actual.Found)

	assert.Equal(t, []string{"could not set local item", "could not get local item"}, messages(logs))
	assert.Equal(t, 2, logs.FilterField(zap.String("key", "theme")).Len())
}

func TestLocalStorage_Success_IsNotLogged(t *testing.T) {
	t.Parallel()

	logger, logs := observedLogger()
	s := nativestorage.NewLocalStorage[string](nativestorage.NewMemoryLocalArea(), nativestorage.WithDelay(0), nativestorage.WithLogger(logger))

	_, err := s.Set("theme", "dark").Wait(waitContext(t))
	require.NoError(t, err)

	_, err = s.Get("theme").Wait(waitContext(t))
	require.NoError(t, err)

	assert.Empty(t, logs.All())
}

type custom int

func (c custom) MarshalText() (text []byte, err error) {
	if c < 0 {
		return nil, errors.New("negative value")
	}

	return []byte(strconv.Itoa(int(c))), nil
}

func (c *custom) UnmarshalText(text []byte) error {
	r, err := strconv.Atoi(string(text))
	if err != nil {
		return err
	}

	*c = custom(r)

	return nil
}
