package host

import (
	"github.com/go-home-io/device-monitor/enums"
	"github.com/go-home-io/device-monitor/providers"
	"github.com/go-home-io/device-monitor/utils"
)

// Network device facade.
type networkDevice struct {
	store providers.IPropertyStoreProvider
	path  string
	name  string
	cap   enums.Capability
}

// Name returns device name.
func (d *networkDevice) Name() string {
	return d.name
}

// Capability returns device capability.
func (d *networkDevice) Capability() enums.Capability {
	return d.cap
}

// Enabled returns whether device is enabled.
func (d *networkDevice) Enabled() bool {
	v, _ := d.store.Get(prop(d.path, propEnabled))
	return utils.ToBool(v)
}

// Address returns device address.
func (d *networkDevice) Address() string {
	v, _ := d.store.Get(prop(d.path, propAddress))
	return utils.ToString(v)
}

// Port returns device port.
func (d *networkDevice) Port() int {
	v, _ := d.store.Get(prop(d.path, propPort))
	return utils.ToInt(v)
}

// PJLink projector facade.
type pjLinkDevice struct {
	*networkDevice
}

// HasError returns projector error flag.
func (d *pjLinkDevice) HasError() bool {
	v, _ := d.store.Get(prop(d.path, propHasError))
	return utils.ToBool(v)
}

// HasWarning returns projector warning flag.
func (d *pjLinkDevice) HasWarning() bool {
	v, _ := d.store.Get(prop(d.path, propHasWarning))
	return utils.ToBool(v)
}

// Info returns extended projector information.
func (d *pjLinkDevice) Info() *providers.PJLinkInfo {
	v, _ := d.store.Get(prop(d.path, propInfo))
	switch info := v.(type) {
	case *providers.PJLinkInfo:
		cp := *info
		return &cp
	case providers.PJLinkInfo:
		return &info
	case nil:
		return &providers.PJLinkInfo{}
	}

	info := &providers.PJLinkInfo{}
	if err := utils.ConvertProperty(v, info); err != nil {
		return &providers.PJLinkInfo{}
	}

	return info
}

// Display spot facade.
type displaySpot struct {
	store providers.IPropertyStoreProvider
	path  string
	name  string
}

// Name returns spot name.
func (s *displaySpot) Name() string {
	return s.name
}

// Address returns spot address.
func (s *displaySpot) Address() string {
	v, _ := s.store.Get(prop(s.path, propAddress))
	return utils.ToString(v)
}

// Volume returns spot volume.
func (s *displaySpot) Volume() float64 {
	v, _ := s.store.Get(prop(s.path, propVolume))
	f, _ := utils.ToFloat(v)
	return f
}

// WATCHOUT cluster facade.
type cluster struct {
	store providers.IPropertyStoreProvider
	path  string
	name  string
}

// Name returns cluster name.
func (c *cluster) Name() string {
	return c.name
}

// ShowName returns currently loaded show.
func (c *cluster) ShowName() string {
	v, _ := c.store.Get(prop(c.path, propShowName))
	return utils.ToString(v)
}

// SubscribeErrors subscribes to cluster error stream.
// Payloads are accepted either as ClusterError or as a generic map.
func (c *cluster) SubscribeErrors(callback func(*providers.ClusterError)) providers.ISubscription {
	return c.store.SubscribeEvent(c.path, EventError, func(payload interface{}) {
		callback(toClusterError(payload))
	})
}

// Converts event payload into cluster error.
func toClusterError(payload interface{}) *providers.ClusterError {
	switch v := payload.(type) {
	case *providers.ClusterError:
		return v
	case providers.ClusterError:
		return &v
	case string:
		return &providers.ClusterError{Type: "Warning", Text: v}
	}

	e := &providers.ClusterError{}
	if err := utils.ConvertProperty(payload, e); err != nil {
		return &providers.ClusterError{Type: "Warning", Text: utils.ToString(payload)}
	}

	return e
}
