//go:build !release
// +build !release

package mocks

import (
	"sync"
	"time"

	"github.com/go-home-io/device-monitor/providers"
)

// Fake timer which fires on demand.
type fakeTimer struct {
	sync.Mutex
	d       time.Duration
	cmd     func()
	stopped bool
	fired   bool
}

// Stop cancels the timer.
func (t *fakeTimer) Stop() bool {
	t.Lock()
	defer t.Unlock()
	if t.stopped || t.fired {
		return false
	}

	t.stopped = true
	return true
}

type fakeTimers struct {
	sync.Mutex
	timers []*fakeTimer
}

// AfterFunc records a new timer.
func (f *fakeTimers) AfterFunc(d time.Duration, cmd func()) providers.ITimer {
	f.Lock()
	defer f.Unlock()
	t := &fakeTimer{d: d, cmd: cmd}
	f.timers = append(f.timers, t)
	return t
}

// Durations returns durations of all armed timers.
func (f *fakeTimers) Durations() []time.Duration {
	f.Lock()
	defer f.Unlock()
	result := make([]time.Duration, 0, len(f.timers))
	for _, v := range f.timers {
		result = append(result, v.d)
	}

	return result
}

// FireAll invokes every pending timer and returns number of fired ones.
func (f *fakeTimers) FireAll() int {
	f.Lock()
	pending := make([]*fakeTimer, 0)
	for _, v := range f.timers {
		v.Lock()
		if !v.stopped && !v.fired {
			v.fired = true
			pending = append(pending, v)
		}
		v.Unlock()
	}
	f.Unlock()

	for _, v := range pending {
		v.cmd()
	}

	return len(pending)
}

// FakeNewTimer creates a fake timer provider.
func FakeNewTimer() *fakeTimers {
	return &fakeTimers{
		timers: make([]*fakeTimer, 0),
	}
}
