//go:build !release
// +build !release

package mocks

import (
	"github.com/go-home-io/device-monitor/common"
	"github.com/go-home-io/device-monitor/enums"
	"github.com/go-home-io/device-monitor/providers"
)

// FakeSettings is a configurable settings provider.
type FakeSettings struct {
	Logger    *fakeLogger
	CronProv  *fakeCron
	TimerProv *fakeTimers
	Monitor   *providers.MonitorSettings
	API       *providers.APISettings
	Devices   []*providers.RawDevice
	Mappings  []*providers.RawMapping
	Register  *providers.RegisterSettings
	Unity     []*providers.UnitySettings
}

// SystemLogger returns fake logger.
func (f *FakeSettings) SystemLogger() common.ILoggerProvider {
	return f.Logger
}

// PluginLogger returns fake logger.
func (f *FakeSettings) PluginLogger(string, string) common.ILoggerProvider {
	return f.Logger
}

// Cron returns fake cron.
func (f *FakeSettings) Cron() providers.ICronProvider {
	return f.CronProv
}

// Timer returns fake timer.
func (f *FakeSettings) Timer() providers.ITimerProvider {
	return f.TimerProv
}

// Validator returns always-successful validator.
func (f *FakeSettings) Validator() providers.IValidatorProvider {
	return FakeNewValidator(true)
}

// MonitorSettings returns engine settings.
func (f *FakeSettings) MonitorSettings() *providers.MonitorSettings {
	return f.Monitor
}

// APISettings returns control API settings.
func (f *FakeSettings) APISettings() *providers.APISettings {
	return f.API
}

// DevicesConfig returns devices inventory.
func (f *FakeSettings) DevicesConfig() []*providers.RawDevice {
	return f.Devices
}

// MappingsConfig returns input mappings.
func (f *FakeSettings) MappingsConfig() []*providers.RawMapping {
	return f.Mappings
}

// RegisterConfig returns start-up registrations.
func (f *FakeSettings) RegisterConfig() *providers.RegisterSettings {
	return f.Register
}

// UnityConfig returns application connections.
func (f *FakeSettings) UnityConfig() []*providers.UnitySettings {
	return f.Unity
}

// FakeNewSettings creates a new fake settings provider with default values.
func FakeNewSettings(logCallback func(string)) *FakeSettings {
	return &FakeSettings{
		Logger:    FakeNewLogger(logCallback),
		CronProv:  FakeNewCron(),
		TimerProv: FakeNewTimer(),
		Monitor: &providers.MonitorSettings{
			SettingsFile:       "BlocksMonitor.config.json",
			HeartbeatInterval:  300,
			StartupTimeout:     600,
			HealthCheckTimeout: 60,
			MinLogLevel:        enums.LogInfo,
			DebugTruncate:      160,
			LogBurst:           100,
			ChallengeRepeat:    600,
			BacklogWarning:     1000,
			HTTPTimeout:        5,
		},
		API:      &providers.APISettings{Port: 3114},
		Devices:  make([]*providers.RawDevice, 0),
		Mappings: make([]*providers.RawMapping, 0),
		Register: &providers.RegisterSettings{},
		Unity:    make([]*providers.UnitySettings, 0),
	}
}
