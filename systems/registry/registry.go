// Package registry contains monitors registry.
package registry

import (
	"sync"

	"github.com/go-home-io/device-monitor/systems/monitor"
)

// Registry keeps monitors in insertion order keyed by device path.
type Registry struct {
	sync.RWMutex
	byPath map[string]*monitor.Monitor
	order  []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byPath: make(map[string]*monitor.Monitor),
		order:  make([]string, 0),
	}
}

// IsMonitored checks whether path already has a monitor.
func (r *Registry) IsMonitored(path string) bool {
	r.RLock()
	defer r.RUnlock()
	_, ok := r.byPath[path]
	return ok
}

// Register inserts monitor.
// Callers check IsMonitored first, existing entry is replaced in place.
func (r *Registry) Register(m *monitor.Monitor) {
	r.Lock()
	defer r.Unlock()
	if _, ok := r.byPath[m.Path()]; !ok {
		r.order = append(r.order, m.Path())
	}

	r.byPath[m.Path()] = m
}

// Get returns monitor by path.
func (r *Registry) Get(path string) (*monitor.Monitor, bool) {
	r.RLock()
	defer r.RUnlock()
	m, ok := r.byPath[path]
	return m, ok
}

// All returns monitors in registration order.
func (r *Registry) All() []*monitor.Monitor {
	r.RLock()
	defer r.RUnlock()
	result := make([]*monitor.Monitor, 0, len(r.order))
	for _, v := range r.order {
		result = append(result, r.byPath[v])
	}

	return result
}

// Len returns number of monitors.
func (r *Registry) Len() int {
	r.RLock()
	defer r.RUnlock()
	return len(r.order)
}

// Remove deletes monitor and releases its subscriptions.
func (r *Registry) Remove(path string) bool {
	r.Lock()
	m, ok := r.byPath[path]
	if !ok {
		r.Unlock()
		return false
	}

	delete(r.byPath, path)
	for i, v := range r.order {
		if v == path {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.Unlock()

	m.Close()
	return true
}
