//go:build !release
// +build !release

package mocks

import (
	"sync"

	"github.com/go-home-io/device-monitor/providers"
)

type fakeAccessor struct {
	owner     *fakeProperties
	path      string
	callback  func(interface{})
	value     interface{}
	available bool
	closed    bool
}

func (a *fakeAccessor) Value() interface{} {
	a.owner.Lock()
	defer a.owner.Unlock()
	return a.value
}

func (a *fakeAccessor) Available() bool {
	a.owner.Lock()
	defer a.owner.Unlock()
	return a.available
}

func (a *fakeAccessor) Close() {
	a.owner.Lock()
	defer a.owner.Unlock()
	a.closed = true
}

type fakeEventSub struct {
	owner    *fakeProperties
	key      string
	callback func(interface{})
	closed   bool
}

func (s *fakeEventSub) Close() {
	s.owner.Lock()
	defer s.owner.Unlock()
	s.closed = true
}

type fakeProperties struct {
	sync.Mutex
	accessors []*fakeAccessor
	events    []*fakeEventSub
}

// Subscribe records a subscription. Values are unavailable until set.
func (p *fakeProperties) Subscribe(path string, callback func(value interface{})) providers.IPropertyAccessor {
	p.Lock()
	defer p.Unlock()
	a := &fakeAccessor{owner: p, path: path, callback: callback}
	p.accessors = append(p.accessors, a)
	return a
}

// SubscribeEvent records an event subscription.
func (p *fakeProperties) SubscribeEvent(path string, event string,
	callback func(payload interface{})) providers.ISubscription {
	p.Lock()
	defer p.Unlock()
	s := &fakeEventSub{owner: p, key: path + "/" + event, callback: callback}
	p.events = append(p.events, s)
	return s
}

// Fire updates property and invokes every open subscriber.
func (p *fakeProperties) Fire(path string, value interface{}, available bool) int {
	p.Lock()
	toCall := make([]*fakeAccessor, 0)
	for _, v := range p.accessors {
		if v.path != path || v.closed {
			continue
		}

		v.value = value
		v.available = available
		toCall = append(toCall, v)
	}
	p.Unlock()

	for _, v := range toCall {
		v.callback(value)
	}

	return len(toCall)
}

// Emit invokes every open event subscriber.
func (p *fakeProperties) Emit(path string, event string, payload interface{}) int {
	p.Lock()
	toCall := make([]*fakeEventSub, 0)
	for _, v := range p.events {
		if v.key == path+"/"+event && !v.closed {
			toCall = append(toCall, v)
		}
	}
	p.Unlock()

	for _, v := range toCall {
		v.callback(payload)
	}

	return len(toCall)
}

// Subscribed returns paths of open subscriptions.
func (p *fakeProperties) Subscribed() []string {
	p.Lock()
	defer p.Unlock()
	result := make([]string, 0)
	for _, v := range p.accessors {
		if !v.closed {
			result = append(result, v.path)
		}
	}

	return result
}

// OpenEvents returns number of open event subscriptions.
func (p *fakeProperties) OpenEvents() int {
	p.Lock()
	defer p.Unlock()
	cnt := 0
	for _, v := range p.events {
		if !v.closed {
			cnt++
		}
	}

	return cnt
}

// FakeNewProperties creates a fake property provider.
func FakeNewProperties() *fakeProperties {
	return &fakeProperties{
		accessors: make([]*fakeAccessor, 0),
		events:    make([]*fakeEventSub, 0),
	}
}
