package registry

import (
	"testing"

	"github.com/go-home-io/device-monitor/enums"
	"github.com/go-home-io/device-monitor/mocks"
	"github.com/go-home-io/device-monitor/systems/monitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopListener struct{}

func (nopListener) ConnectionChanged(*monitor.Monitor, bool)                       {}
func (nopListener) PowerChanged(*monitor.Monitor, bool)                            {}
func (nopListener) StatusChanged(*monitor.Monitor)                                 {}
func (nopListener) ChallengeRaised(*monitor.Monitor, enums.ChallengeState, string) {}

func getMonitor(name string) *monitor.Monitor {
	ctx := &monitor.Context{Properties: mocks.FakeNewProperties(), Listener: nopListener{}}
	return monitor.NewNetworkTCP(ctx, &mocks.FakeNetworkDevice{DeviceName: name})
}

// Tests registration order.
func TestOrder(t *testing.T) {
	r := NewRegistry()
	names := []string{"c", "a", "b"}
	for _, v := range names {
		r.Register(getMonitor(v))
	}

	all := r.All()
	require.Equal(t, 3, len(all), "len")
	for i, v := range names {
		assert.Equal(t, "Network."+v, all[i].Path(), "order %d", i)
	}

	assert.True(t, r.IsMonitored("Network.a"), "monitored")
	assert.False(t, r.IsMonitored("Network.d"), "not monitored")
}

// Tests that All returns a copy.
func TestAllCopy(t *testing.T) {
	r := NewRegistry()
	r.Register(getMonitor("a"))
	all := r.All()
	all[0] = nil

	m, ok := r.Get("Network.a")
	require.True(t, ok, "get")
	assert.NotNil(t, m, "monitor")
	assert.NotNil(t, r.All()[0], "copy")
}

// Tests re-registration keeps single entry.
func TestReRegister(t *testing.T) {
	r := NewRegistry()
	r.Register(getMonitor("a"))
	r.Register(getMonitor("b"))
	r.Register(getMonitor("a"))
	assert.Equal(t, 2, r.Len(), "len")
	assert.Equal(t, "Network.a", r.All()[0].Path(), "position")
}

// Tests removal.
func TestRemove(t *testing.T) {
	r := NewRegistry()
	m := getMonitor("a")
	r.Register(m)
	r.Register(getMonitor("b"))

	assert.True(t, r.Remove("Network.a"), "remove")
	assert.False(t, r.Remove("Network.a"), "second remove")
	assert.True(t, m.Closed(), "closed")
	assert.Equal(t, 1, r.Len(), "len")
	assert.Equal(t, "Network.b", r.All()[0].Path(), "left")
}
