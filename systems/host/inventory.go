package host

import (
	"sort"
	"sync"

	"github.com/go-home-io/device-monitor/common"
	"github.com/go-home-io/device-monitor/enums"
	"github.com/go-home-io/device-monitor/providers"
	"github.com/go-home-io/device-monitor/utils"
)

const (
	// Property with device address.
	propAddress = "address"
	// Property with device port.
	propPort = "port"
	// Property with device enabled flag.
	propEnabled = "enabled"
	// Property with spot volume.
	propVolume = "volume"
	// Property with cluster show name.
	propShowName = "showName"
	// Property with PJLink error flag.
	propHasError = "hasError"
	// Property with PJLink warning flag.
	propHasWarning = "hasWarning"
	// Property with PJLink problem flag.
	propHasProblem = "hasProblem"
	// Property with PJLink extended info.
	propInfo = "info"
	// EventError describes cluster error event.
	EventError = "error"
)

// Known device record.
type device struct {
	category enums.Category
	name     string
	driver   string
	watchers []providers.IPropertyAccessor
}

// Devices inventory implementation.
type inventory struct {
	sync.Mutex
	logger  common.ILoggerProvider
	store   providers.IPropertyStoreProvider
	devices map[enums.Category]map[string]*device
}

// IInventoryProvider defines devices lookup which could be changed at runtime.
type IInventoryProvider interface {
	providers.IDeviceLookupProvider
	Add(raw *providers.RawDevice)
	Remove(category enums.Category, name string) bool
}

// ConstructInventory has data required for a new inventory.
type ConstructInventory struct {
	Logger  common.ILoggerProvider
	Store   providers.IPropertyStoreProvider
	Devices []*providers.RawDevice
}

// NewInventory constructs devices inventory and seeds static attributes into the store.
func NewInventory(ctor *ConstructInventory) IInventoryProvider {
	inv := &inventory{
		logger: ctor.Logger,
		store:  ctor.Store,
		devices: map[enums.Category]map[string]*device{
			enums.CatNetwork:  make(map[string]*device),
			enums.CatSpot:     make(map[string]*device),
			enums.CatWATCHOUT: make(map[string]*device),
		},
	}

	for _, v := range ctor.Devices {
		inv.Add(v)
	}

	return inv
}

// Add registers a new device or overwrites attributes of existing one.
func (i *inventory) Add(raw *providers.RawDevice) {
	path := raw.Category.Path(raw.Name)
	d := &device{
		category: raw.Category,
		name:     raw.Name,
		driver:   raw.Driver,
	}

	i.Lock()
	if old, ok := i.devices[raw.Category][raw.Name]; ok {
		old.close()
	}
	i.devices[raw.Category][raw.Name] = d
	i.Unlock()

	switch raw.Category {
	case enums.CatNetwork:
		enabled := true
		if nil != raw.Enabled {
			enabled = *raw.Enabled
		}

		i.store.Set(prop(path, propAddress), raw.Address)
		i.store.Set(prop(path, propPort), raw.Port)
		i.store.Set(prop(path, propEnabled), enabled)
		if enums.CapPJLinkPlus == enums.CapabilityForDriver(raw.Driver) {
			info := raw.Info
			if nil == info {
				info = &providers.PJLinkInfo{}
			}

			i.store.Set(prop(path, propInfo), info)
			i.store.Set(prop(path, propHasError), false)
			i.store.Set(prop(path, propHasWarning), false)
			i.store.Set(prop(path, propHasProblem), false)
			d.watchers = i.watchProblem(path)
		}
	case enums.CatSpot:
		i.store.Set(prop(path, propAddress), raw.Address)
		i.store.Set(prop(path, propVolume), raw.Volume)
	case enums.CatWATCHOUT:
		i.store.Set(prop(path, propShowName), raw.ShowName)
	}

	for k, v := range raw.Props {
		i.store.Set(prop(path, k), v)
	}

	i.logger.Debug("Device added", common.LogSystemToken, logSystem,
		common.LogDevicePathToken, path, common.LogProviderToken, raw.Driver)
}

// Remove deletes device from the inventory.
// Device properties become unavailable.
func (i *inventory) Remove(category enums.Category, name string) bool {
	i.Lock()
	d, ok := i.devices[category][name]
	delete(i.devices[category], name)
	i.Unlock()

	if !ok {
		return false
	}

	d.close()

	i.store.SetAvailable(prop(category.Path(name), "connected"), false)
	i.logger.Info("Device removed", common.LogSystemToken, logSystem,
		common.LogDevicePathToken, category.Path(name))
	return true
}

// Network returns network device facade.
func (i *inventory) Network(name string) (providers.INetworkDevice, bool) {
	d, ok := i.get(enums.CatNetwork, name)
	if !ok {
		return nil, false
	}

	nd := &networkDevice{
		store: i.store,
		path:  enums.CatNetwork.Path(name),
		name:  name,
		cap:   enums.CapabilityForDriver(d.driver),
	}

	if enums.CapPJLinkPlus == nd.cap {
		return &pjLinkDevice{networkDevice: nd}, true
	}

	return nd, true
}

// Spot returns display spot facade.
func (i *inventory) Spot(name string) (providers.IDisplaySpot, bool) {
	if _, ok := i.get(enums.CatSpot, name); !ok {
		return nil, false
	}

	return &displaySpot{
		store: i.store,
		path:  enums.CatSpot.Path(name),
		name:  name,
	}, true
}

// Cluster returns cluster facade.
func (i *inventory) Cluster(name string) (providers.ICluster, bool) {
	if _, ok := i.get(enums.CatWATCHOUT, name); !ok {
		return nil, false
	}

	return &cluster{
		store: i.store,
		path:  enums.CatWATCHOUT.Path(name),
		name:  name,
	}, true
}

// Names returns sorted names of all devices within the category.
func (i *inventory) Names(category enums.Category) []string {
	i.Lock()
	defer i.Unlock()

	result := make([]string, 0, len(i.devices[category]))
	for k := range i.devices[category] {
		result = append(result, k)
	}

	sort.Strings(result)
	return result
}

// Exists checks whether device is known.
func (i *inventory) Exists(category enums.Category, name string) bool {
	_, ok := i.get(category, name)
	return ok
}

// Returns device record.
func (i *inventory) get(category enums.Category, name string) (*device, bool) {
	i.Lock()
	defer i.Unlock()
	d, ok := i.devices[category][name]
	return d, ok
}

// Derives projector problem flag from error and warning flags.
func (i *inventory) watchProblem(path string) []providers.IPropertyAccessor {
	update := func(interface{}) {
		e, _ := i.store.Get(prop(path, propHasError))
		w, _ := i.store.Get(prop(path, propHasWarning))
		i.store.Set(prop(path, propHasProblem), utils.ToBool(e) || utils.ToBool(w))
	}

	return []providers.IPropertyAccessor{
		i.store.Subscribe(prop(path, propHasError), update),
		i.store.Subscribe(prop(path, propHasWarning), update),
	}
}

// Releases device watchers.
func (d *device) close() {
	for _, v := range d.watchers {
		v.Close()
	}

	d.watchers = nil
}

// Builds property path.
func prop(path string, name string) string {
	return path + "." + name
}
