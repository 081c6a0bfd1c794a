// Package host contains standalone host runtime: property store and devices inventory.
package host

import (
	"sort"
	"sync"

	"github.com/go-home-io/device-monitor/common"
	"github.com/go-home-io/device-monitor/providers"
	"github.com/go-home-io/device-monitor/utils"
)

const (
	// Logger system.
	logSystem = "host"
)

// Single property state.
type property struct {
	deliver   sync.Mutex
	value     interface{}
	available bool
	listeners map[int]func(interface{})
}

// Property store implementation.
type propertyStore struct {
	sync.Mutex
	logger     common.ILoggerProvider
	properties map[string]*property
	events     map[string]map[int]func(interface{})
	nextID     int
}

// Subscription to a single property.
type accessor struct {
	store *propertyStore
	path  string
	id    int
}

// Subscription to an event stream.
type eventSubscription struct {
	store *propertyStore
	key   string
	id    int
}

// NewPropertyStore constructs a new property store.
func NewPropertyStore(logger common.ILoggerProvider) providers.IPropertyStoreProvider {
	return &propertyStore{
		logger:     logger,
		properties: make(map[string]*property),
		events:     make(map[string]map[int]func(interface{})),
	}
}

// Subscribe registers change callback for the property.
// Unknown properties are reported as unavailable until set.
func (s *propertyStore) Subscribe(path string, callback func(value interface{})) providers.IPropertyAccessor {
	s.Lock()
	defer s.Unlock()

	p := s.getOrCreate(path)
	s.nextID++
	p.listeners[s.nextID] = callback

	return &accessor{
		store: s,
		path:  path,
		id:    s.nextID,
	}
}

// SubscribeEvent registers callback for the named event of the path.
func (s *propertyStore) SubscribeEvent(path string, event string,
	callback func(payload interface{})) providers.ISubscription {
	s.Lock()
	defer s.Unlock()

	key := eventKey(path, event)
	if _, ok := s.events[key]; !ok {
		s.events[key] = make(map[int]func(interface{}))
	}

	s.nextID++
	s.events[key][s.nextID] = callback

	return &eventSubscription{
		store: s,
		key:   key,
		id:    s.nextID,
	}
}

// Set updates property value and marks it available.
// Listeners are invoked only if something has changed.
// Callbacks must not set the property they observe.
func (s *propertyStore) Set(path string, value interface{}) {
	s.update(path, func(p *property) bool {
		if p.available && utils.PropertyEqual(p.value, value) {
			return false
		}

		p.value = value
		p.available = true
		return true
	})
}

// SetAvailable updates property availability.
func (s *propertyStore) SetAvailable(path string, available bool) {
	s.update(path, func(p *property) bool {
		if p.available == available {
			return false
		}

		p.available = available
		return true
	})
}

// Get returns current property state.
func (s *propertyStore) Get(path string) (interface{}, bool) {
	s.Lock()
	defer s.Unlock()

	p, ok := s.properties[path]
	if !ok {
		return nil, false
	}

	return p.value, p.available
}

// Publish delivers event payload to all subscribers.
func (s *propertyStore) Publish(path string, event string, payload interface{}) {
	s.Lock()
	subs := s.events[eventKey(path, event)]
	toCall := make([]func(interface{}), 0, len(subs))
	for _, v := range sortedListeners(subs) {
		toCall = append(toCall, v)
	}
	s.Unlock()

	s.logger.Debug("Publishing event", common.LogSystemToken, logSystem,
		common.LogPropertyToken, path, common.LogNameToken, event)
	for _, v := range toCall {
		v(payload)
	}
}

// Applies change and notifies listeners in subscription order.
// Per-property delivery lock keeps notifications ordered.
func (s *propertyStore) update(path string, change func(p *property) bool) {
	s.Lock()
	p := s.getOrCreate(path)
	s.Unlock()

	p.deliver.Lock()
	defer p.deliver.Unlock()

	s.Lock()
	if !change(p) {
		s.Unlock()
		return
	}

	value := p.value
	toCall := sortedListeners(p.listeners)
	s.Unlock()

	for _, v := range toCall {
		v(value)
	}
}

// Returns existing property or creates a new unavailable one.
// Must be called under the store lock.
func (s *propertyStore) getOrCreate(path string) *property {
	p, ok := s.properties[path]
	if !ok {
		p = &property{
			listeners: make(map[int]func(interface{})),
		}
		s.properties[path] = p
	}

	return p
}

// Value returns current property value.
func (a *accessor) Value() interface{} {
	v, _ := a.store.Get(a.path)
	return v
}

// Available returns current property availability.
func (a *accessor) Available() bool {
	_, ok := a.store.Get(a.path)
	return ok
}

// Close removes subscription.
func (a *accessor) Close() {
	a.store.Lock()
	defer a.store.Unlock()

	if p, ok := a.store.properties[a.path]; ok {
		delete(p.listeners, a.id)
	}
}

// Close removes event subscription.
func (e *eventSubscription) Close() {
	e.store.Lock()
	defer e.store.Unlock()

	if subs, ok := e.store.events[e.key]; ok {
		delete(subs, e.id)
	}
}

// Builds event key.
func eventKey(path string, event string) string {
	return path + "/" + event
}

// Returns listeners ordered by subscription ID.
func sortedListeners(listeners map[int]func(interface{})) []func(interface{}) {
	ids := make([]int, 0, len(listeners))
	for k := range listeners {
		ids = append(ids, k)
	}

	sort.Ints(ids)
	result := make([]func(interface{}), 0, len(ids))
	for _, v := range ids {
		result = append(result, listeners[v])
	}

	return result
}
