// Package enums contains enumerations shared by the monitor systems.
package enums

import (
	"encoding/json"
	"fmt"
)

// DeviceType describes monitored device variant.
// String representation is used on the wire.
type DeviceType int

const (
	// DevUnknown describes unknown device type.
	DevUnknown DeviceType = iota
	// DevNetworkTCP describes generic TCP network device.
	DevNetworkTCP
	// DevNetworkUDP describes generic UDP network device.
	DevNetworkUDP
	// DevNetworkDriver describes generic network driver.
	DevNetworkDriver
	// DevNetworkProjector describes network projector.
	DevNetworkProjector
	// DevGrandMA describes GrandMA lighting console.
	DevGrandMA
	// DevPJLinkPlus describes PJLink projector with extended info.
	DevPJLinkPlus
	// DevSpot describes display spot.
	DevSpot
	// DevZummaPC describes Zumma PC.
	DevZummaPC
	// DevWATCHOUTCluster describes WATCHOUT cluster.
	DevWATCHOUTCluster
)

var deviceTypeNames = map[DeviceType]string{
	DevUnknown:          "unknown",
	DevNetworkTCP:       "NetworkTCP",
	DevNetworkUDP:       "NetworkUDP",
	DevNetworkDriver:    "NetworkDriver",
	DevNetworkProjector: "NetworkProjector",
	DevGrandMA:          "GrandMA",
	DevPJLinkPlus:       "PJLinkPlus",
	DevSpot:             "Spot",
	DevZummaPC:          "ZummaPC",
	DevWATCHOUTCluster:  "WATCHOUTCluster",
}

// String returns wire representation of the device type.
func (i DeviceType) String() string {
	if s, ok := deviceTypeNames[i]; ok {
		return s
	}

	return fmt.Sprintf("DeviceType(%d)", i)
}

// DeviceTypeString retrieves an enum value from the wire name.
func DeviceTypeString(s string) (DeviceType, error) {
	for k, v := range deviceTypeNames {
		if v == s {
			return k, nil
		}
	}

	return DevUnknown, fmt.Errorf("%s does not belong to DeviceType values", s)
}

// DeviceTypeValues returns all known device types.
func DeviceTypeValues() []DeviceType {
	return []DeviceType{DevUnknown, DevNetworkTCP, DevNetworkUDP, DevNetworkDriver, DevNetworkProjector,
		DevGrandMA, DevPJLinkPlus, DevSpot, DevZummaPC, DevWATCHOUTCluster}
}

// MarshalJSON implements the json.Marshaler interface.
func (i DeviceType) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (i *DeviceType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("DeviceType should be a string, got %s", data)
	}

	var err error
	*i, err = DeviceTypeString(s)
	return err
}
