package monitor

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/go-home-io/device-monitor/enums"
	"github.com/go-home-io/device-monitor/mocks"
	"github.com/go-home-io/device-monitor/providers"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listenerEvent struct {
	kind  string
	path  string
	value bool
	state enums.ChallengeState
	text  string
}

type fakeListener struct {
	sync.Mutex
	events []listenerEvent
}

func (l *fakeListener) add(e listenerEvent) {
	l.Lock()
	defer l.Unlock()
	l.events = append(l.events, e)
}

func (l *fakeListener) ConnectionChanged(m *Monitor, connected bool) {
	l.add(listenerEvent{kind: "connection", path: m.Path(), value: connected})
}

func (l *fakeListener) PowerChanged(m *Monitor, power bool) {
	l.add(listenerEvent{kind: "power", path: m.Path(), value: power})
}

func (l *fakeListener) StatusChanged(m *Monitor) {
	l.add(listenerEvent{kind: "status", path: m.Path()})
}

func (l *fakeListener) ChallengeRaised(m *Monitor, state enums.ChallengeState, text string) {
	l.add(listenerEvent{kind: "challenge", path: m.Path(), state: state, text: text})
}

func (l *fakeListener) kinds() []string {
	l.Lock()
	defer l.Unlock()
	result := make([]string, 0)
	for _, v := range l.events {
		result = append(result, v.kind)
	}

	return result
}

type fakeProps interface {
	providers.IPropertyProvider
	Fire(path string, value interface{}, available bool) int
	Subscribed() []string
}

func getContext() (*Context, *fakeListener, fakeProps) {
	props := mocks.FakeNewProperties()
	l := &fakeListener{}
	return &Context{Properties: props, Listener: l}, l, props
}

func getNetwork(name string) *mocks.FakeNetworkDevice {
	return &mocks.FakeNetworkDevice{
		DeviceName: name,
		Cap:        enums.CapNetworkProjector,
		IsEnabled:  true,
		Addr:       "10.0.0.5",
		DevicePort: 4352,
	}
}

// Tests subscriptions of every variant.
func TestSubscriptions(t *testing.T) {
	data := []struct {
		create func(ctx *Context) *Monitor
		paths  []string
		dt     enums.DeviceType
	}{
		{
			create: func(ctx *Context) *Monitor { return NewNetworkTCP(ctx, getNetwork("tcp")) },
			paths:  []string{"Network.tcp.connected"},
			dt:     enums.DevNetworkTCP,
		},
		{
			create: func(ctx *Context) *Monitor { return NewNetworkUDP(ctx, getNetwork("udp")) },
			paths:  []string{"Network.udp.connected"},
			dt:     enums.DevNetworkUDP,
		},
		{
			create: func(ctx *Context) *Monitor { return NewNetworkDriver(ctx, getNetwork("drv")) },
			paths:  []string{"Network.drv.connected"},
			dt:     enums.DevNetworkDriver,
		},
		{
			create: func(ctx *Context) *Monitor { return NewGrandMA(ctx, getNetwork("ma")) },
			paths:  []string{"Network.ma.connected"},
			dt:     enums.DevGrandMA,
		},
		{
			create: func(ctx *Context) *Monitor { return NewNetworkProjector(ctx, getNetwork("p1")) },
			paths:  []string{"Network.p1.connected", "Network.p1.power"},
			dt:     enums.DevNetworkProjector,
		},
		{
			create: func(ctx *Context) *Monitor { return NewZummaPC(ctx, getNetwork("pc")) },
			paths:  []string{"Network.pc.connected", "Network.pc.power"},
			dt:     enums.DevZummaPC,
		},
		{
			create: func(ctx *Context) *Monitor {
				return NewPJLinkPlus(ctx, &mocks.FakePJLinkDevice{FakeNetworkDevice: *getNetwork("pj")})
			},
			paths: []string{"Network.pj.connected", "Network.pj.power", "Network.pj.hasProblem"},
			dt:    enums.DevPJLinkPlus,
		},
		{
			create: func(ctx *Context) *Monitor { return NewSpot(ctx, &mocks.FakeSpot{SpotName: "b.b"}) },
			paths:  []string{"Spot.b.b.connected", "Spot.b.b.power"},
			dt:     enums.DevSpot,
		},
		{
			create: func(ctx *Context) *Monitor { return NewCluster(ctx, &mocks.FakeCluster{ClusterName: "main"}) },
			paths:  []string{"WATCHOUT.main.connected", "WATCHOUT.main.showName"},
			dt:     enums.DevWATCHOUTCluster,
		},
	}

	for _, v := range data {
		ctx, _, props := getContext()
		m := v.create(ctx)
		assert.Equal(t, v.paths, props.Subscribed(), "subscriptions %s", v.dt.String())
		assert.Equal(t, v.dt, m.DeviceType(), "device type %s", v.dt.String())

		m.Close()
		assert.Equal(t, 0, len(props.Subscribed()), "close %s", v.dt.String())
		assert.True(t, m.Closed(), "closed %s", v.dt.String())
	}
}

// Tests connectivity and power reads.
func TestConnectivityAndPower(t *testing.T) {
	ctx, l, props := getContext()

	m := NewNetworkProjector(ctx, getNetwork("p1"))
	assert.False(t, m.IsConnected(), "unset connected")
	assert.False(t, m.IsPoweredUp(), "unset power")

	props.Fire("Network.p1.connected", true, true)
	assert.True(t, m.IsConnected(), "connected")
	props.Fire("Network.p1.connected", true, false)
	assert.False(t, m.IsConnected(), "unavailable connected")

	props.Fire("Network.p1.power", "on", true)
	assert.True(t, m.IsPoweredUp(), "power")

	assert.Equal(t, []string{"connection", "connection", "power"}, l.kinds(), "events")
	assert.Equal(t, true, l.events[0].value, "first connection")
	assert.Equal(t, false, l.events[1].value, "second connection")
}

// Tests that devices without power accessor never report power.
func TestNoPower(t *testing.T) {
	ctx, _, props := getContext()

	m := NewNetworkTCP(ctx, getNetwork("tcp"))
	assert.Equal(t, 0, props.Fire("Network.tcp.power", true, true), "subscribers")
	assert.False(t, m.IsPoweredUp(), "power")
	assert.Equal(t, enums.ChNoChallenge, m.ChallengeStatus(), "challenge")
}

// Tests PJLink challenge derivation.
func TestPJLinkChallenge(t *testing.T) {
	data := []struct {
		err   bool
		warn  bool
		state enums.ChallengeState
	}{
		{err: false, warn: false, state: enums.ChNoChallenge},
		{err: false, warn: true, state: enums.ChWarning},
		{err: true, warn: false, state: enums.ChError},
		{err: true, warn: true, state: enums.ChError},
	}

	for _, v := range data {
		ctx, l, props := getContext()
		dev := &mocks.FakePJLinkDevice{FakeNetworkDevice: *getNetwork("pj"),
			LinkInfo: &providers.PJLinkInfo{ErrorStatus: "lamp"}}
		m := NewPJLinkPlus(ctx, dev)

		dev.SetProblem(v.err, v.warn)
		props.Fire("Network.pj.hasProblem", v.err || v.warn, true)
		assert.Equal(t, v.state, m.ChallengeStatus(), "state %v %v", v.err, v.warn)

		if v.state.IsProblem() {
			require.Equal(t, []string{"status", "challenge"}, l.kinds(), "events %v %v", v.err, v.warn)
			assert.Equal(t, v.state, l.events[1].state, "raised %v %v", v.err, v.warn)
			assert.Equal(t, "lamp", l.events[1].text, "text %v %v", v.err, v.warn)
		} else {
			assert.Equal(t, []string{"status"}, l.kinds(), "events %v %v", v.err, v.warn)
		}
	}
}

// Tests cluster error events.
func TestClusterErrors(t *testing.T) {
	ctx, l, _ := getContext()
	cluster := &mocks.FakeCluster{ClusterName: "main", Show: "show"}
	NewCluster(ctx, cluster)

	cluster.Raise("Error", "display lost")
	cluster.Raise("Warning", "slow")

	require.Equal(t, []string{"challenge", "status", "challenge", "status"}, l.kinds(), "events")
	assert.Equal(t, enums.ChError, l.events[0].state, "error")
	assert.Equal(t, "display lost", l.events[0].text, "error text")
	assert.Equal(t, enums.ChWarning, l.events[2].state, "warning")
}

// Tests cluster show name changes.
func TestClusterShowName(t *testing.T) {
	ctx, l, props := getContext()
	m := NewCluster(ctx, &mocks.FakeCluster{ClusterName: "main", Show: "show"})

	props.Fire("WATCHOUT.main.showName", "show", true)
	assert.Equal(t, []string{"status"}, l.kinds(), "events")
	assert.False(t, m.IsPoweredUp(), "cluster power")
}

// Tests status payload composition.
func TestStatusMessage(t *testing.T) {
	now := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	info := &providers.PJLinkInfo{DeviceName: "pj", LampCount: 1}

	data := []struct {
		create func(ctx *Context) *Monitor
		data   []*providers.DeviceData
	}{
		{
			create: func(ctx *Context) *Monitor { return NewNetworkTCP(ctx, getNetwork("tcp")) },
			data:   []*providers.DeviceData{},
		},
		{
			create: func(ctx *Context) *Monitor { return NewNetworkUDP(ctx, getNetwork("udp")) },
			data:   []*providers.DeviceData{},
		},
		{
			create: func(ctx *Context) *Monitor { return NewGrandMA(ctx, getNetwork("ma")) },
			data: []*providers.DeviceData{
				{DeviceType: enums.DevNetworkDriver,
					DeviceData: &NetworkDriverData{Enabled: true, Address: "10.0.0.5", Port: 4352}},
			},
		},
		{
			create: func(ctx *Context) *Monitor {
				return NewPJLinkPlus(ctx, &mocks.FakePJLinkDevice{FakeNetworkDevice: *getNetwork("pj"),
					LinkInfo: info})
			},
			data: []*providers.DeviceData{
				{DeviceType: enums.DevNetworkDriver,
					DeviceData: &NetworkDriverData{Enabled: true, Address: "10.0.0.5", Port: 4352}},
				{DeviceType: enums.DevPJLinkPlus, DeviceData: info},
			},
		},
		{
			create: func(ctx *Context) *Monitor {
				return NewSpot(ctx, &mocks.FakeSpot{SpotName: "s1", Addr: "10.0.0.9", Vol: 0.5})
			},
			data: []*providers.DeviceData{
				{DeviceType: enums.DevSpot, DeviceData: &SpotData{Address: "10.0.0.9", Volume: 0.5}},
			},
		},
		{
			create: func(ctx *Context) *Monitor {
				return NewCluster(ctx, &mocks.FakeCluster{ClusterName: "main", Show: "demo"})
			},
			data: []*providers.DeviceData{
				{DeviceType: enums.DevWATCHOUTCluster, DeviceData: &ClusterData{ShowName: "demo"}},
			},
		},
	}

	for _, v := range data {
		ctx, _, _ := getContext()
		m := v.create(ctx)
		msg := m.StatusMessage(now)

		assert.Equal(t, m.DeviceType(), msg.DeviceType, "type %s", m.Path())
		assert.Equal(t, now, msg.Timestamp, "timestamp %s", m.Path())
		assert.False(t, msg.IsConnected, "connected %s", m.Path())
		assert.True(t, cmp.Equal(v.data, msg.Data), "data %s: %s", m.Path(), cmp.Diff(v.data, msg.Data))
	}
}

// Tests wire format of status message.
func TestStatusMessageJSON(t *testing.T) {
	ctx, _, _ := getContext()
	m := NewGrandMA(ctx, getNetwork("ma"))
	data, err := json.Marshal(m.StatusMessage(time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)))
	require.NoError(t, err, "marshal")

	out := make(map[string]interface{})
	require.NoError(t, json.Unmarshal(data, &out), "unmarshal")
	assert.Equal(t, "GrandMA", out["deviceType"], "device type")
	assert.Equal(t, "no-challenge", out["challengeStatus"], "challenge")
	blocks := out["data"].([]interface{})
	require.Equal(t, 1, len(blocks), "blocks")
	assert.Equal(t, "NetworkDriver", blocks[0].(map[string]interface{})["deviceType"], "block type")
}
