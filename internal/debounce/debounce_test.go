package debounce_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chuckie/modelpick/internal/debounce"
	"github.com/chuckie/modelpick/internal/testutil"
)

type call struct {
	arg string
	at  time.Duration
}

func recorder(clock *testutil.FakeClock) (*[]call, func(string)) {
	var calls []call
	return &calls, func(s string) {
		calls = append(calls, call{arg: s, at: clock.Now()})
	}
}

func TestDebouncer_TrailingCallWithLastArgument(t *testing.T) {
	clock := &testutil.FakeClock{}
	calls, fn := recorder(clock)
	d := debounce.New(fn, 300*time.Millisecond, debounce.WithClock(clock))

	d.Call("a")
	clock.AdvanceTo(100 * time.Millisecond)
	d.Call("ab")
	clock.AdvanceTo(150 * time.Millisecond)
	d.Call("abc")

	clock.AdvanceTo(449 * time.Millisecond)
	assert.Empty(t, *calls, "nothing fires during the quiet window")

	clock.AdvanceTo(time.Second)
	require.Len(t, *calls, 1)
	assert.Equal(t, call{arg: "abc", at: 450 * time.Millisecond}, (*calls)[0])
	assert.False(t, d.Pending())
}

func TestDebouncer_CancelBeforeDelay(t *testing.T) {
	clock := &testutil.FakeClock{}
	calls, fn := recorder(clock)
	d := debounce.New(fn, 300*time.Millisecond, debounce.WithClock(clock))

	d.Call("a")
	clock.AdvanceTo(100 * time.Millisecond)
	d.Call("ab")
	clock.AdvanceTo(150 * time.Millisecond)
	d.Call("abc")
	clock.AdvanceTo(200 * time.Millisecond)
	d.Cancel()

	clock.AdvanceTo(2 * time.Second)
	assert.Empty(t, *calls)
	assert.False(t, d.Pending())
	assert.Zero(t, clock.Active())
}

func TestDebouncer_CancelWhenIdleIsNoop(t *testing.T) {
	clock := &testutil.FakeClock{}
	calls, fn := recorder(clock)
	d := debounce.New(fn, 0, debounce.WithClock(clock))

	assert.NotPanics(t, d.Cancel)
	assert.NotPanics(t, d.Cancel)

	// Still usable afterwards.
	d.Call("x")
	clock.Advance(debounce.DefaultDelay)
	require.Len(t, *calls, 1)
	assert.Equal(t, "x", (*calls)[0].arg)

	assert.NotPanics(t, d.Cancel)
	require.Len(t, *calls, 1)
}

func TestDebouncer_DefaultDelay(t *testing.T) {
	clock := &testutil.FakeClock{}
	calls, fn := recorder(clock)
	d := debounce.New(fn, -5, debounce.WithClock(clock))

	d.Call("x")
	clock.Advance(debounce.DefaultDelay - time.Millisecond)
	assert.Empty(t, *calls)

	clock.Advance(time.Millisecond)
	require.Len(t, *calls, 1)
	assert.Equal(t, 100*time.Millisecond, (*calls)[0].at)
}

func TestDebouncer_SpacedCallsEachFire(t *testing.T) {
	clock := &testutil.FakeClock{}
	calls, fn := recorder(clock)
	d := debounce.New(fn, 50*time.Millisecond, debounce.WithClock(clock))

	for _, s := range []string{"one", "two", "three"} {
		d.Call(s)
		clock.Advance(60 * time.Millisecond)
	}

	require.Len(t, *calls, 3)
	assert.Equal(t, "three", (*calls)[2].arg)
}

func TestDebouncer_OnePendingTimer(t *testing.T) {
	clock := &testutil.FakeClock{}
	_, fn := recorder(clock)
	d := debounce.New(fn, 50*time.Millisecond, debounce.WithClock(clock))

	for i := 0; i < 10; i++ {
		d.Call("q")
		assert.Equal(t, 1, clock.Active())
	}
	assert.True(t, d.Pending())
}

type counter struct {
	name string
	hits []string
}

func (c *counter) record(s string) {
	c.hits = append(c.hits, c.name+":"+s)
}

func TestDebouncer_MethodValueKeepsReceiver(t *testing.T) {
	clock := &testutil.FakeClock{}
	owner := &counter{name: "owner"}
	d := debounce.New(owner.record, 10*time.Millisecond, debounce.WithClock(clock))

	d.Call("hi")
	clock.Advance(10 * time.Millisecond)

	assert.Equal(t, []string{"owner:hi"}, owner.hits)
}

func TestDebouncer_CallbackMayReenter(t *testing.T) {
	clock := &testutil.FakeClock{}
	var d *debounce.Debouncer[int]
	var got []int
	d = debounce.New(func(n int) {
		got = append(got, n)
		if n < 3 {
			d.Call(n + 1)
		}
	}, 10*time.Millisecond, debounce.WithClock(clock))

	d.Call(1)
	clock.Advance(100 * time.Millisecond)

	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestDebouncer_WallClock(t *testing.T) {
	var hits atomic.Int32
	var last atomic.Value
	d := debounce.New(func(s string) {
		hits.Add(1)
		last.Store(s)
	}, 30*time.Millisecond)

	for _, s := range []string{"a", "ab", "abc"} {
		d.Call(s)
	}

	require.Eventually(t, func() bool { return hits.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, "abc", last.Load())
}
