package providers

import "github.com/go-home-io/device-monitor/enums"

// IReportingProvider defines outbound collector traffic.
// All calls are fire-and-forget.
type IReportingProvider interface {
	Heartbeat(msg *HeartbeatMessage)
	DeviceStatus(path string, msg *StatusMessage)
	Challenge(path string, state enums.ChallengeState, text string)
	Log(origin string, level enums.LogLevel, message string)
	UpdateGauges(registered int, installationUp bool)
	Stop()
}

// CollectorSettings has persisted collector connection details.
type CollectorSettings struct {
	ServerURL   string `json:"blocksMonitorServerURL"`
	AccessToken string `json:"accessToken"`
}

// IConfigStoreProvider defines persisted collector settings storage.
type IConfigStoreProvider interface {
	Load() *CollectorSettings
	Settings() *CollectorSettings
	Save(*CollectorSettings) error
}
