package settings

import (
	"github.com/go-home-io/device-monitor/common"
	"github.com/go-home-io/device-monitor/providers"
	"github.com/go-home-io/device-monitor/systems/logger"
)

// SystemLogger returns default system logger.
func (s *settingsProvider) SystemLogger() common.ILoggerProvider {
	return s.logger
}

// PluginLogger returns logger scoped to the system and provider.
func (s *settingsProvider) PluginLogger(system string, provider string) common.ILoggerProvider {
	return logger.NewPluginLogger(&logger.ConstructPluginLogger{
		SystemLogger: s.logger,
		System:       system,
		Provider:     provider,
	})
}

// Cron returns system's cron provider.
func (s *settingsProvider) Cron() providers.ICronProvider {
	return s.cron
}

// Timer returns one-shot timer provider.
func (s *settingsProvider) Timer() providers.ITimerProvider {
	return s.timer
}

// Validator returns yaml validator provider.
func (s *settingsProvider) Validator() providers.IValidatorProvider {
	return s.validator
}

// MonitorSettings returns engine settings.
func (s *settingsProvider) MonitorSettings() *providers.MonitorSettings {
	return s.monitor
}

// APISettings returns control API settings.
func (s *settingsProvider) APISettings() *providers.APISettings {
	return s.api
}

// DevicesConfig returns host devices inventory.
func (s *settingsProvider) DevicesConfig() []*providers.RawDevice {
	return s.devices
}

// MappingsConfig returns input mappings.
func (s *settingsProvider) MappingsConfig() []*providers.RawMapping {
	return s.mappings
}

// RegisterConfig returns start-up registrations.
func (s *settingsProvider) RegisterConfig() *providers.RegisterSettings {
	return s.register
}

// UnityConfig returns application variable sync connections.
func (s *settingsProvider) UnityConfig() []*providers.UnitySettings {
	return s.unity
}
