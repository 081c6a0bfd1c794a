package enums

import "strings"

// Capability describes the most specific trait a network device exposes.
// Registration dispatches on it.
type Capability int

const (
	// CapNone describes device without known monitoring trait.
	CapNone Capability = iota
	// CapGrandMA describes GrandMA console.
	CapGrandMA
	// CapPJLinkPlus describes PJLink projector with extended info.
	CapPJLinkPlus
	// CapZummaPC describes Zumma PC.
	CapZummaPC
	// CapNetworkProjector describes generic network projector.
	CapNetworkProjector
	// CapNetworkTCP describes generic TCP device.
	CapNetworkTCP
	// CapNetworkUDP describes generic UDP device.
	CapNetworkUDP
)

var capabilityDrivers = map[string]Capability{
	"grandma":             CapGrandMA,
	"pjlinkplus":          CapPJLinkPlus,
	"zummapc":             CapZummaPC,
	"networkprojector":    CapNetworkProjector,
	"networktcp":          CapNetworkTCP,
	"christieperformance": CapNetworkTCP,
	"samsungmdc":          CapNetworkTCP,
	"networkudp":          CapNetworkUDP,
}

// CapabilityForDriver resolves capability from the driver name.
// Unknown drivers resolve to CapNone.
func CapabilityForDriver(driver string) Capability {
	c, ok := capabilityDrivers[strings.ToLower(strings.TrimSpace(driver))]
	if !ok {
		return CapNone
	}

	return c
}

// String returns capability name.
func (c Capability) String() string {
	switch c {
	case CapGrandMA:
		return "GrandMA"
	case CapPJLinkPlus:
		return "PJLinkPlus"
	case CapZummaPC:
		return "ZummaPC"
	case CapNetworkProjector:
		return "NetworkProjector"
	case CapNetworkTCP:
		return "NetworkTCP"
	case CapNetworkUDP:
		return "NetworkUDP"
	}

	return "none"
}
