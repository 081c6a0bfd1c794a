package engine

import (
	"strconv"
	"time"

	"github.com/go-home-io/device-monitor/common"
	"github.com/go-home-io/device-monitor/enums"
	"github.com/go-home-io/device-monitor/providers"
)

// Origin of messages logged through the entry point.
const scriptOrigin = "."

// ReportStartup marks installation as starting up.
// Unless confirmed earlier, installation is promoted to up once timeout elapses.
// Non-positive timeout falls back to the configured one.
func (e *MonitorEngine) ReportStartup(timeoutSeconds int) {
	if timeoutSeconds <= 0 {
		timeoutSeconds = e.Settings.MonitorSettings().StartupTimeout
	}

	e.Lock()
	e.state.StartingUp = true
	if nil != e.startupTimer {
		e.startupTimer.Stop()
	}

	e.startupTimer = e.Settings.Timer().AfterFunc(time.Duration(timeoutSeconds)*time.Second, e.startupTimeout)
	e.Unlock()

	e.Logger.Info("Installation is starting up", "timeout", strconv.Itoa(timeoutSeconds))
	e.sendHeartbeat()
}

// ReportStartupFinished promotes installation to up.
func (e *MonitorEngine) ReportStartupFinished() {
	e.Lock()
	if nil != e.startupTimer {
		e.startupTimer.Stop()
		e.startupTimer = nil
	}
	e.Unlock()

	e.reportInstallationIsUp()
}

// ReportShutdown clears installation flags.
func (e *MonitorEngine) ReportShutdown() {
	e.Lock()
	e.state.StartingUp = false
	e.state.Up = false
	if nil != e.startupTimer {
		e.startupTimer.Stop()
		e.startupTimer = nil
	}
	e.Unlock()

	e.Logger.Info("Installation is shutting down")
	e.sendHeartbeat()
}

// Log sends message to the collector log channel.
// Zero level is treated as info.
func (e *MonitorEngine) Log(message string, level enums.LogLevel) {
	if 0 == level {
		level = enums.LogInfo
	}

	e.reporter.Log(scriptOrigin, level, message)
}

// InstallationState returns current lifecycle flags.
func (e *MonitorEngine) InstallationState() InstallationState {
	e.Lock()
	defer e.Unlock()
	return e.state
}

// Fires when startup timeout elapses.
func (e *MonitorEngine) startupTimeout() {
	e.Lock()
	startingUp := e.state.StartingUp
	e.startupTimer = nil
	e.Unlock()

	if !startingUp {
		return
	}

	e.Logger.Info("Startup timeout elapsed, assuming installation is up")
	e.reportInstallationIsUp()
}

// Marks installation as up and runs health sweep.
func (e *MonitorEngine) reportInstallationIsUp() {
	e.Lock()
	e.state.Up = true
	e.state.StartingUp = false
	e.Unlock()

	e.Logger.Info("Installation is up")
	e.runHealthCheck()
	e.sendHeartbeat()
}

// Sends heartbeat with current flags.
func (e *MonitorEngine) sendHeartbeat() {
	st := e.InstallationState()
	e.Logger.Debug("Sending heartbeat")
	e.reporter.UpdateGauges(e.registry.Len(), st.Up)
	e.reporter.Heartbeat(&providers.HeartbeatMessage{
		InstallationIsStartingUp: st.StartingUp,
		InstallationIsUp:         st.Up,
		MonitorVersion:           common.MonitorVersion,
		Timestamp:                time.Now().UTC(),
	})
}
