//go:build !release
// +build !release

package mocks

import (
	"sort"
	"sync"

	"github.com/go-home-io/device-monitor/enums"
	"github.com/go-home-io/device-monitor/providers"
)

// FakeNetworkDevice is a configurable network device facade.
type FakeNetworkDevice struct {
	DeviceName string
	Cap        enums.Capability
	IsEnabled  bool
	Addr       string
	DevicePort int
}

// Name returns device name.
func (d *FakeNetworkDevice) Name() string { return d.DeviceName }

// Capability returns device capability.
func (d *FakeNetworkDevice) Capability() enums.Capability { return d.Cap }

// Enabled returns enabled flag.
func (d *FakeNetworkDevice) Enabled() bool { return d.IsEnabled }

// Address returns device address.
func (d *FakeNetworkDevice) Address() string { return d.Addr }

// Port returns device port.
func (d *FakeNetworkDevice) Port() int { return d.DevicePort }

// FakePJLinkDevice is a configurable PJLink projector facade.
type FakePJLinkDevice struct {
	FakeNetworkDevice
	sync.Mutex
	Err      bool
	Warn     bool
	LinkInfo *providers.PJLinkInfo
}

// HasError returns error flag.
func (d *FakePJLinkDevice) HasError() bool {
	d.Lock()
	defer d.Unlock()
	return d.Err
}

// HasWarning returns warning flag.
func (d *FakePJLinkDevice) HasWarning() bool {
	d.Lock()
	defer d.Unlock()
	return d.Warn
}

// SetProblem updates problem flags.
func (d *FakePJLinkDevice) SetProblem(hasError bool, hasWarning bool) {
	d.Lock()
	defer d.Unlock()
	d.Err = hasError
	d.Warn = hasWarning
}

// Info returns extended info.
func (d *FakePJLinkDevice) Info() *providers.PJLinkInfo {
	if nil == d.LinkInfo {
		return &providers.PJLinkInfo{}
	}

	return d.LinkInfo
}

// FakeSpot is a configurable display spot facade.
type FakeSpot struct {
	SpotName string
	Addr     string
	Vol      float64
}

// Name returns spot name.
func (s *FakeSpot) Name() string { return s.SpotName }

// Address returns spot address.
func (s *FakeSpot) Address() string { return s.Addr }

// Volume returns spot volume.
func (s *FakeSpot) Volume() float64 { return s.Vol }

// FakeCluster is a configurable cluster facade.
type FakeCluster struct {
	sync.Mutex
	ClusterName string
	Show        string
	callbacks   []func(*providers.ClusterError)
}

type fakeClusterSub struct {
	closed bool
}

func (s *fakeClusterSub) Close() {
	s.closed = true
}

// Name returns cluster name.
func (c *FakeCluster) Name() string { return c.ClusterName }

// ShowName returns current show name.
func (c *FakeCluster) ShowName() string { return c.Show }

// SubscribeErrors records error callback.
func (c *FakeCluster) SubscribeErrors(callback func(*providers.ClusterError)) providers.ISubscription {
	c.Lock()
	defer c.Unlock()
	c.callbacks = append(c.callbacks, callback)
	return &fakeClusterSub{}
}

// Raise invokes all error callbacks.
func (c *FakeCluster) Raise(errType string, text string) {
	c.Lock()
	cbs := append([]func(*providers.ClusterError){}, c.callbacks...)
	c.Unlock()

	for _, v := range cbs {
		v(&providers.ClusterError{Type: errType, Text: text})
	}
}

// FakeLookup is an in-memory device lookup.
type FakeLookup struct {
	sync.Mutex
	Networks map[string]providers.INetworkDevice
	Spots    map[string]providers.IDisplaySpot
	Clusters map[string]providers.ICluster
}

// Network returns network device.
func (l *FakeLookup) Network(name string) (providers.INetworkDevice, bool) {
	l.Lock()
	defer l.Unlock()
	d, ok := l.Networks[name]
	return d, ok
}

// Spot returns display spot.
func (l *FakeLookup) Spot(name string) (providers.IDisplaySpot, bool) {
	l.Lock()
	defer l.Unlock()
	d, ok := l.Spots[name]
	return d, ok
}

// Cluster returns cluster.
func (l *FakeLookup) Cluster(name string) (providers.ICluster, bool) {
	l.Lock()
	defer l.Unlock()
	d, ok := l.Clusters[name]
	return d, ok
}

// Names returns sorted names of the category.
func (l *FakeLookup) Names(category enums.Category) []string {
	l.Lock()
	defer l.Unlock()
	result := make([]string, 0)
	switch category {
	case enums.CatNetwork:
		for k := range l.Networks {
			result = append(result, k)
		}
	case enums.CatSpot:
		for k := range l.Spots {
			result = append(result, k)
		}
	case enums.CatWATCHOUT:
		for k := range l.Clusters {
			result = append(result, k)
		}
	}

	sort.Strings(result)
	return result
}

// Exists checks whether device is known.
func (l *FakeLookup) Exists(category enums.Category, name string) bool {
	for _, v := range l.Names(category) {
		if v == name {
			return true
		}
	}

	return false
}

// Remove deletes device from the lookup.
func (l *FakeLookup) Remove(category enums.Category, name string) {
	l.Lock()
	defer l.Unlock()
	switch category {
	case enums.CatNetwork:
		delete(l.Networks, name)
	case enums.CatSpot:
		delete(l.Spots, name)
	case enums.CatWATCHOUT:
		delete(l.Clusters, name)
	}
}

// FakeNewLookup creates an empty device lookup.
func FakeNewLookup() *FakeLookup {
	return &FakeLookup{
		Networks: make(map[string]providers.INetworkDevice),
		Spots:    make(map[string]providers.IDisplaySpot),
		Clusters: make(map[string]providers.ICluster),
	}
}
