// Package monitor contains per-device health trackers.
package monitor

import (
	"sync"
	"time"

	"github.com/go-home-io/device-monitor/enums"
	"github.com/go-home-io/device-monitor/providers"
	"github.com/go-home-io/device-monitor/utils"
)

const (
	// Connectivity property name.
	propConnected = "connected"
	// Power property name.
	propPower = "power"
	// Projector problem property name.
	propHasProblem = "hasProblem"
	// Cluster show property name.
	propShowName = "showName"
)

// IMonitorListener receives monitor state changes.
type IMonitorListener interface {
	ConnectionChanged(m *Monitor, connected bool)
	PowerChanged(m *Monitor, power bool)
	StatusChanged(m *Monitor)
	ChallengeRaised(m *Monitor, state enums.ChallengeState, text string)
}

// Context is shared by all monitors of a single engine.
type Context struct {
	Properties providers.IPropertyProvider
	Listener   IMonitorListener
}

// Monitor tracks a single device.
// Device type selects which facade is set and which payload blocks are reported.
type Monitor struct {
	sync.Mutex
	path       string
	category   enums.Category
	name       string
	deviceType enums.DeviceType

	connected providers.IPropertyAccessor
	power     providers.IPropertyAccessor
	subs      []providers.ISubscription
	closed    bool

	network providers.INetworkDevice
	pjLink  providers.IPJLinkPlusDevice
	spot    providers.IDisplaySpot
	cluster providers.ICluster
}

// Creates base monitor subscribed to the connectivity property.
func newMonitor(ctx *Context, category enums.Category, name string, deviceType enums.DeviceType) *Monitor {
	m := &Monitor{
		path:       category.Path(name),
		category:   category,
		name:       name,
		deviceType: deviceType,
		subs:       make([]providers.ISubscription, 0),
	}

	m.connected = ctx.Properties.Subscribe(m.property(propConnected), func(interface{}) {
		ctx.Listener.ConnectionChanged(m, m.IsConnected())
	})

	return m
}

// Adds power subscription.
func (m *Monitor) watchPower(ctx *Context) {
	m.power = ctx.Properties.Subscribe(m.property(propPower), func(interface{}) {
		ctx.Listener.PowerChanged(m, m.IsPoweredUp())
	})
}

// Path returns device path.
func (m *Monitor) Path() string {
	return m.path
}

// Category returns device category.
func (m *Monitor) Category() enums.Category {
	return m.category
}

// Name returns device name.
func (m *Monitor) Name() string {
	return m.name
}

// DeviceType returns monitor variant.
func (m *Monitor) DeviceType() enums.DeviceType {
	return m.deviceType
}

// IsConnected returns false whenever connectivity is unknown or unavailable.
func (m *Monitor) IsConnected() bool {
	return accessorBool(m.connected)
}

// IsPoweredUp returns false whenever power is not tracked or unavailable.
func (m *Monitor) IsPoweredUp() bool {
	return accessorBool(m.power)
}

// ChallengeStatus returns derived problem state.
func (m *Monitor) ChallengeStatus() enums.ChallengeState {
	if enums.DevPJLinkPlus != m.deviceType {
		return enums.ChNoChallenge
	}

	if nil == m.pjLink {
		return enums.ChUnknown
	}

	if m.pjLink.HasError() {
		return enums.ChError
	}

	if m.pjLink.HasWarning() {
		return enums.ChWarning
	}

	return enums.ChNoChallenge
}

// StatusMessage builds snapshot of the current state.
func (m *Monitor) StatusMessage(now time.Time) *providers.StatusMessage {
	return &providers.StatusMessage{
		IsConnected:     m.IsConnected(),
		IsPoweredUp:     m.IsPoweredUp(),
		ChallengeStatus: m.ChallengeStatus(),
		DeviceType:      m.deviceType,
		Data:            m.deviceData(),
		Timestamp:       now.UTC(),
	}
}

// Close releases all subscriptions.
func (m *Monitor) Close() {
	m.Lock()
	defer m.Unlock()
	if m.closed {
		return
	}

	m.closed = true
	m.connected.Close()
	if nil != m.power {
		m.power.Close()
	}

	for _, v := range m.subs {
		v.Close()
	}
}

// Closed returns whether subscriptions were released.
func (m *Monitor) Closed() bool {
	m.Lock()
	defer m.Unlock()
	return m.closed
}

// Builds device property path.
func (m *Monitor) property(name string) string {
	return m.path + "." + name
}

// Reads boolean accessor honouring availability.
func accessorBool(a providers.IPropertyAccessor) bool {
	if nil == a || !a.Available() {
		return false
	}

	return utils.ToBool(a.Value())
}
