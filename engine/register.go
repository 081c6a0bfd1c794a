package engine

import (
	"strings"

	"github.com/go-home-io/device-monitor/common"
	"github.com/go-home-io/device-monitor/enums"
	"github.com/go-home-io/device-monitor/providers"
	"github.com/go-home-io/device-monitor/systems/monitor"
	"github.com/go-home-io/device-monitor/utils"
	"github.com/gobwas/glob"
)

// Characters which turn a name into a pattern.
const globChars = "*?{["

// RegisterNetworkDevice starts monitoring of network devices.
// List is comma separated, every entry might be a glob pattern.
func (e *MonitorEngine) RegisterNetworkDevice(nameList string) {
	e.register(enums.CatNetwork, nameList)
}

// RegisterSpot starts monitoring of display spots.
func (e *MonitorEngine) RegisterSpot(nameList string) {
	e.register(enums.CatSpot, nameList)
}

// RegisterWatchout starts monitoring of WATCHOUT clusters.
func (e *MonitorEngine) RegisterWatchout(nameList string) {
	e.register(enums.CatWATCHOUT, nameList)
}

// Registers every name of the list.
func (e *MonitorEngine) register(category enums.Category, nameList string) {
	for _, token := range utils.GetStringArray(nameList) {
		for _, name := range e.expand(category, token) {
			if err := e.registerSingle(category, name); err != nil {
				e.Logger.Warn(err.Error(), common.LogCategoryToken, category.String(),
					common.LogDeviceNameToken, name)
			}
		}
	}

	e.reporter.UpdateGauges(e.registry.Len(), e.InstallationState().Up)
}

// Expands pattern into known device names.
// Exact names and non-matching patterns are returned as is.
func (e *MonitorEngine) expand(category enums.Category, token string) []string {
	if e.lookup.Exists(category, token) || !strings.ContainsAny(token, globChars) {
		return []string{token}
	}

	g, err := glob.Compile(token)
	if err != nil {
		return []string{token}
	}

	result := make([]string, 0)
	for _, v := range e.lookup.Names(category) {
		if g.Match(v) {
			result = append(result, v)
		}
	}

	if 0 == len(result) {
		return []string{token}
	}

	return result
}

// Creates monitor for a single device.
// Already monitored path is skipped.
func (e *MonitorEngine) registerSingle(category enums.Category, name string) error {
	e.Lock()
	defer e.Unlock()

	path := category.Path(name)
	if e.registry.IsMonitored(path) {
		return nil
	}

	var m *monitor.Monitor
	switch category {
	case enums.CatNetwork:
		device, ok := e.lookup.Network(name)
		if !ok {
			return &ErrUnknownDevice{Name: name}
		}

		m = e.networkMonitor(device)
		if nil == m {
			return &ErrUnsupportedDevice{Name: name}
		}
	case enums.CatSpot:
		spot, ok := e.lookup.Spot(name)
		if !ok {
			return &ErrUnknownDevice{Name: name}
		}

		m = monitor.NewSpot(e.ctx, spot)
	case enums.CatWATCHOUT:
		cluster, ok := e.lookup.Cluster(name)
		if !ok {
			return &ErrUnknownDevice{Name: name}
		}

		m = monitor.NewCluster(e.ctx, cluster)
	default:
		return &ErrUnknownDevice{Name: name}
	}

	e.registry.Register(m)
	e.Logger.Info("Registered device", common.LogDevicePathToken, path,
		common.LogDeviceTypeToken, m.DeviceType().String())
	return nil
}

// Picks monitor variant from the device capability.
func (e *MonitorEngine) networkMonitor(device providers.INetworkDevice) *monitor.Monitor {
	switch device.Capability() {
	case enums.CapGrandMA:
		return monitor.NewGrandMA(e.ctx, device)
	case enums.CapPJLinkPlus:
		pj, ok := device.(providers.IPJLinkPlusDevice)
		if !ok {
			return monitor.NewNetworkProjector(e.ctx, device)
		}
		return monitor.NewPJLinkPlus(e.ctx, pj)
	case enums.CapZummaPC:
		return monitor.NewZummaPC(e.ctx, device)
	case enums.CapNetworkProjector:
		return monitor.NewNetworkProjector(e.ctx, device)
	case enums.CapNetworkTCP:
		return monitor.NewNetworkTCP(e.ctx, device)
	case enums.CapNetworkUDP:
		return monitor.NewNetworkUDP(e.ctx, device)
	case enums.CapNone:
		return nil
	}

	return nil
}
