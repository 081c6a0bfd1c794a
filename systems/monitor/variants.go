package monitor

import (
	"github.com/go-home-io/device-monitor/enums"
	"github.com/go-home-io/device-monitor/providers"
)

// NewNetworkTCP creates a monitor tracking only connectivity of a TCP device.
func NewNetworkTCP(ctx *Context, device providers.INetworkDevice) *Monitor {
	m := newMonitor(ctx, enums.CatNetwork, device.Name(), enums.DevNetworkTCP)
	m.network = device
	return m
}

// NewNetworkUDP creates a monitor tracking only connectivity of a UDP device.
func NewNetworkUDP(ctx *Context, device providers.INetworkDevice) *Monitor {
	m := newMonitor(ctx, enums.CatNetwork, device.Name(), enums.DevNetworkUDP)
	m.network = device
	return m
}

// NewNetworkDriver creates a generic network driver monitor.
func NewNetworkDriver(ctx *Context, device providers.INetworkDevice) *Monitor {
	m := newMonitor(ctx, enums.CatNetwork, device.Name(), enums.DevNetworkDriver)
	m.network = device
	return m
}

// NewGrandMA creates a lighting console monitor.
func NewGrandMA(ctx *Context, device providers.INetworkDevice) *Monitor {
	m := newMonitor(ctx, enums.CatNetwork, device.Name(), enums.DevGrandMA)
	m.network = device
	return m
}

// NewNetworkProjector creates a projector monitor tracking power.
func NewNetworkProjector(ctx *Context, device providers.INetworkDevice) *Monitor {
	m := newMonitor(ctx, enums.CatNetwork, device.Name(), enums.DevNetworkProjector)
	m.network = device
	m.watchPower(ctx)
	return m
}

// NewZummaPC creates a Zumma PC monitor tracking power.
func NewZummaPC(ctx *Context, device providers.INetworkDevice) *Monitor {
	m := newMonitor(ctx, enums.CatNetwork, device.Name(), enums.DevZummaPC)
	m.network = device
	m.watchPower(ctx)
	return m
}

// NewPJLinkPlus creates a PJLink projector monitor.
// Problem flag changes push status, problems are raised as challenges.
func NewPJLinkPlus(ctx *Context, device providers.IPJLinkPlusDevice) *Monitor {
	m := newMonitor(ctx, enums.CatNetwork, device.Name(), enums.DevPJLinkPlus)
	m.network = device
	m.pjLink = device
	m.watchPower(ctx)

	problem := ctx.Properties.Subscribe(m.property(propHasProblem), func(interface{}) {
		ctx.Listener.StatusChanged(m)
		state := m.ChallengeStatus()
		if state.IsProblem() {
			ctx.Listener.ChallengeRaised(m, state, problemText(device, state))
		}
	})

	m.subs = append(m.subs, problem)
	return m
}

// NewSpot creates a display spot monitor.
func NewSpot(ctx *Context, spot providers.IDisplaySpot) *Monitor {
	m := newMonitor(ctx, enums.CatSpot, spot.Name(), enums.DevSpot)
	m.spot = spot
	m.watchPower(ctx)
	return m
}

// NewCluster creates a WATCHOUT cluster monitor.
// Clusters have no power state.
func NewCluster(ctx *Context, cluster providers.ICluster) *Monitor {
	m := newMonitor(ctx, enums.CatWATCHOUT, cluster.Name(), enums.DevWATCHOUTCluster)
	m.cluster = cluster

	show := ctx.Properties.Subscribe(m.property(propShowName), func(interface{}) {
		ctx.Listener.StatusChanged(m)
	})

	errs := cluster.SubscribeErrors(func(e *providers.ClusterError) {
		if nil == e {
			return
		}

		state := enums.ChWarning
		if e.IsError() {
			state = enums.ChError
		}

		ctx.Listener.ChallengeRaised(m, state, e.Text)
		ctx.Listener.StatusChanged(m)
	})

	m.subs = append(m.subs, show, errs)
	return m
}

// Builds challenge text from projector information.
func problemText(device providers.IPJLinkPlusDevice, state enums.ChallengeState) string {
	info := device.Info()
	if nil != info && "" != info.ErrorStatus {
		return info.ErrorStatus
	}

	return "projector reports " + state.String()
}
