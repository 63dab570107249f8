package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/chuckie/modelpick/internal/debounce"
	"github.com/chuckie/modelpick/internal/domain"
)

// FakeSource is a deterministic ports.ModelSource.
type FakeSource struct {
	mu     sync.Mutex
	Models []domain.ModelInfo
	Err    error
	calls  int
}

func (f *FakeSource) ListModels(ctx context.Context) ([]domain.ModelInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.Err != nil {
		return nil, f.Err
	}
	out := make([]domain.ModelInfo, len(f.Models))
	copy(out, f.Models)
	return out, nil
}

// Calls returns how many times ListModels ran.
func (f *FakeSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// FakeSelection records every setter call in order.
type FakeSelection struct {
	Model    string
	Provider string
	Calls    []string
	SaveErr  error
	Saves    int
}

func (f *FakeSelection) SetModel(model string) {
	f.Model = model
	f.Calls = append(f.Calls, "model:"+model)
}

func (f *FakeSelection) SetProvider(provider string) {
	f.Provider = provider
	f.Calls = append(f.Calls, "provider:"+provider)
}

func (f *FakeSelection) Save() error {
	f.Saves++
	return f.SaveErr
}

// FakeClock is a manual debounce.Clock. Timers fire synchronously inside
// Advance, in deadline order.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *FakeClock
	at      time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

var _ debounce.Clock = (*FakeClock)(nil)

// Now returns the elapsed fake time since creation.
func (c *FakeClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc implements debounce.Clock.
func (c *FakeClock) AfterFunc(d time.Duration, f func()) debounce.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &fakeTimer{clock: c, at: c.now + d, seq: c.seq, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Stop implements debounce.Timer.
func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves time forward by d, firing due timers.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	for {
		next := c.nextDueLocked(target)
		if next == nil {
			break
		}
		c.now = next.at
		next.fired = true
		c.mu.Unlock()
		next.f()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}

// AdvanceTo moves time forward to the absolute offset at.
func (c *FakeClock) AdvanceTo(at time.Duration) {
	d := at - c.Now()
	if d > 0 {
		c.Advance(d)
	}
}

// Active returns the number of timers neither fired nor stopped.
func (c *FakeClock) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

func (c *FakeClock) nextDueLocked(target time.Duration) *fakeTimer {
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.fired && !t.stopped && t.at <= target {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at == due[j].at {
			return due[i].seq < due[j].seq
		}
		return due[i].at < due[j].at
	})
	return due[0]
}
