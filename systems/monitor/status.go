package monitor

import (
	"github.com/go-home-io/device-monitor/enums"
	"github.com/go-home-io/device-monitor/providers"
)

// NetworkDriverData is reported by every network driver based monitor.
type NetworkDriverData struct {
	Enabled bool   `json:"enabled"`
	Address string `json:"address"`
	Port    int    `json:"port"`
}

// SpotData is reported by display spots.
type SpotData struct {
	Address string  `json:"address"`
	Volume  float64 `json:"volume"`
}

// ClusterData is reported by WATCHOUT clusters.
type ClusterData struct {
	ShowName string `json:"showName"`
}

// Accumulates type-tagged payloads.
// Network driver block goes first, more specific blocks follow.
func (m *Monitor) deviceData() []*providers.DeviceData {
	data := make([]*providers.DeviceData, 0)

	if isNetworkDriver(m.deviceType) && nil != m.network {
		data = append(data, &providers.DeviceData{
			DeviceType: enums.DevNetworkDriver,
			DeviceData: &NetworkDriverData{
				Enabled: m.network.Enabled(),
				Address: m.network.Address(),
				Port:    m.network.Port(),
			},
		})
	}

	switch m.deviceType {
	case enums.DevPJLinkPlus:
		if nil != m.pjLink {
			data = append(data, &providers.DeviceData{
				DeviceType: enums.DevPJLinkPlus,
				DeviceData: m.pjLink.Info(),
			})
		}
	case enums.DevSpot:
		if nil != m.spot {
			data = append(data, &providers.DeviceData{
				DeviceType: enums.DevSpot,
				DeviceData: &SpotData{
					Address: m.spot.Address(),
					Volume:  m.spot.Volume(),
				},
			})
		}
	case enums.DevWATCHOUTCluster:
		if nil != m.cluster {
			data = append(data, &providers.DeviceData{
				DeviceType: enums.DevWATCHOUTCluster,
				DeviceData: &ClusterData{
					ShowName: m.cluster.ShowName(),
				},
			})
		}
	}

	return data
}

// Checks whether variant carries network driver attributes.
func isNetworkDriver(t enums.DeviceType) bool {
	switch t {
	case enums.DevNetworkDriver, enums.DevNetworkProjector, enums.DevGrandMA, enums.DevPJLinkPlus, enums.DevZummaPC:
		return true
	}

	return false
}
