package providers

import "github.com/go-home-io/device-monitor/enums"

// IDeviceLookupProvider defines host devices lookup.
type IDeviceLookupProvider interface {
	Network(name string) (INetworkDevice, bool)
	Spot(name string) (IDisplaySpot, bool)
	Cluster(name string) (ICluster, bool)
	Names(category enums.Category) []string
	Exists(category enums.Category, name string) bool
}

// INetworkDevice defines network driver facade.
type INetworkDevice interface {
	Name() string
	Capability() enums.Capability
	Enabled() bool
	Address() string
	Port() int
}

// IPJLinkPlusDevice defines projector facade exposing problem flags.
type IPJLinkPlusDevice interface {
	INetworkDevice
	HasError() bool
	HasWarning() bool
	Info() *PJLinkInfo
}

// IDisplaySpot defines display spot facade.
type IDisplaySpot interface {
	Name() string
	Address() string
	Volume() float64
}

// ICluster defines WATCHOUT cluster facade.
type ICluster interface {
	Name() string
	ShowName() string
	SubscribeErrors(callback func(*ClusterError)) ISubscription
}

// ClusterError describes error or warning raised by a cluster.
type ClusterError struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// IsError returns true for error-level cluster messages.
func (e *ClusterError) IsError() bool {
	return "Error" == e.Type
}

// PJLinkInfo has extended projector information.
type PJLinkInfo struct {
	DeviceName                   string  `json:"deviceName" yaml:"deviceName"`
	ManufactureName              string  `json:"manufactureName" yaml:"manufactureName"`
	ProductName                  string  `json:"productName" yaml:"productName"`
	OtherInformation             string  `json:"otherInformation" yaml:"otherInformation"`
	ErrorStatus                  string  `json:"errorStatus" yaml:"errorStatus"`
	SerialNumber                 string  `json:"serialNumber" yaml:"serialNumber"`
	SoftwareVersion              string  `json:"softwareVersion" yaml:"softwareVersion"`
	LampCount                    int     `json:"lampCount" yaml:"lampCount"`
	LampActive                   [4]bool `json:"lampActive" yaml:"lampActive"`
	LampHours                    [4]int  `json:"lampHours" yaml:"lampHours"`
	LampReplacementModelNumber   string  `json:"lampReplacementModelNumber" yaml:"lampReplacementModelNumber"`
	HasFilter                    bool    `json:"hasFilter" yaml:"hasFilter"`
	FilterUsageTime              int     `json:"filterUsageTime" yaml:"filterUsageTime"`
	FilterReplacementModelNumber string  `json:"filterReplacementModelNumber" yaml:"filterReplacementModelNumber"`
}
