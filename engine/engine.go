// Package engine contains device monitoring engine.
package engine

import (
	"sync"

	"github.com/go-home-io/device-monitor/common"
	"github.com/go-home-io/device-monitor/providers"
	"github.com/go-home-io/device-monitor/systems/monitor"
	"github.com/go-home-io/device-monitor/systems/registry"
	"github.com/go-home-io/device-monitor/utils"
)

const (
	// Default logger system.
	logSystem = "engine"

	// Logger flush cadence.
	flushSpec = "@every 10s"
)

// InstallationState has installation lifecycle flags.
type InstallationState struct {
	StartingUp bool `json:"installationIsStartingUp"`
	Up         bool `json:"installationIsUp"`
}

// MonitorEngine keeps registered monitors and reports their state.
type MonitorEngine struct {
	Settings providers.ISettingsProvider
	Logger   common.ILoggerProvider

	sync.Mutex
	state    InstallationState
	registry *registry.Registry
	reporter providers.IReportingProvider
	config   providers.IConfigStoreProvider
	lookup   providers.IDeviceLookupProvider
	ctx      *monitor.Context

	startupTimer providers.ITimer
	cronIDs      []int
}

// ConstructEngine has data required for a new engine.
type ConstructEngine struct {
	Settings   providers.ISettingsProvider
	Reporter   providers.IReportingProvider
	Config     providers.IConfigStoreProvider
	Lookup     providers.IDeviceLookupProvider
	Properties providers.IPropertyProvider
}

// NewEngine constructs a new monitoring engine.
// Nothing is sent until Start is called.
func NewEngine(ctor *ConstructEngine) *MonitorEngine {
	e := &MonitorEngine{
		Settings: ctor.Settings,
		Logger:   ctor.Settings.PluginLogger(logSystem, ""),
		registry: registry.NewRegistry(),
		reporter: ctor.Reporter,
		config:   ctor.Config,
		lookup:   ctor.Lookup,
		cronIDs:  make([]int, 0),
	}

	e.ctx = &monitor.Context{
		Properties: ctor.Properties,
		Listener:   e,
	}

	return e
}

// Start loads collector settings and starts periodic jobs.
// Heartbeat is sent immediately.
func (e *MonitorEngine) Start() {
	e.config.Load()
	s := e.Settings.MonitorSettings()

	e.sendHeartbeat()
	e.schedule(utils.EverySeconds(s.HeartbeatInterval), e.sendHeartbeat)
	e.schedule(flushSpec, e.Settings.SystemLogger().Flush)
	if s.PruneInterval > 0 {
		e.schedule(utils.EverySeconds(s.PruneInterval), func() {
			e.Prune()
		})
	}

	reg := e.Settings.RegisterConfig()
	if nil != reg {
		e.RegisterNetworkDevice(reg.Network)
		e.RegisterSpot(reg.Spots)
		e.RegisterWatchout(reg.Watchout)
	}

	e.Logger.Info("Successfully started monitoring engine",
		common.LogNameToken, common.MonitorVersion)
}

// Stop cancels periodic jobs and stops reporting.
func (e *MonitorEngine) Stop() {
	e.Lock()
	for _, v := range e.cronIDs {
		e.Settings.Cron().RemoveFunc(v)
	}

	e.cronIDs = make([]int, 0)
	if nil != e.startupTimer {
		e.startupTimer.Stop()
		e.startupTimer = nil
	}
	e.Unlock()

	e.reporter.Stop()
	e.Logger.Info("Monitoring engine is stopped")
}

// Registers cron job.
func (e *MonitorEngine) schedule(spec string, cmd func()) {
	id, err := e.Settings.Cron().AddFunc(spec, cmd)
	if err != nil {
		e.Logger.Error("Failed to register cron job", err, common.LogNameToken, spec)
		return
	}

	e.Lock()
	e.cronIDs = append(e.cronIDs, id)
	e.Unlock()
}
