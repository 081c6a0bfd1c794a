package providers

import (
	"time"

	"github.com/go-home-io/device-monitor/enums"
)

// HeartbeatMessage describes liveness beacon.
type HeartbeatMessage struct {
	InstallationIsStartingUp bool      `json:"installationIsStartingUp"`
	InstallationIsUp         bool      `json:"installationIsUp"`
	MonitorVersion           string    `json:"monitorVersion"`
	Timestamp                time.Time `json:"timestamp"`
}

// StatusMessage describes device status snapshot.
type StatusMessage struct {
	IsConnected     bool                 `json:"isConnected"`
	IsPoweredUp     bool                 `json:"isPoweredUp"`
	ChallengeStatus enums.ChallengeState `json:"challengeStatus"`
	DeviceType      enums.DeviceType     `json:"deviceType"`
	Data            []*DeviceData        `json:"data"`
	Timestamp       time.Time            `json:"timestamp"`
}

// DeviceData describes type-tagged status payload.
type DeviceData struct {
	DeviceType enums.DeviceType `json:"deviceType"`
	DeviceData interface{}      `json:"deviceData"`
}

// ChallengeMessage describes device problem report.
type ChallengeMessage struct {
	State     enums.ChallengeState `json:"state"`
	Text      string               `json:"text"`
	Timestamp time.Time            `json:"timestamp"`
}

// LogMessage describes message sent to the collector log channel.
type LogMessage struct {
	Level     enums.LogLevel `json:"level"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
}
