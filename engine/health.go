package engine

import (
	"context"
	"time"

	"github.com/go-home-io/device-monitor/common"
	"github.com/go-home-io/device-monitor/enums"
	"github.com/go-home-io/device-monitor/providers"
	"github.com/go-home-io/device-monitor/systems/monitor"
	"github.com/pkg/errors"
)

// MonitorState describes single monitor snapshot.
type MonitorState struct {
	Path       string                   `json:"path"`
	DeviceType enums.DeviceType         `json:"deviceType"`
	Status     *providers.StatusMessage `json:"status"`
}

// Snapshot describes engine state.
type Snapshot struct {
	InstallationState
	Monitors []*MonitorState `json:"monitors"`
}

// CheckHealth pushes status of every registered monitor in registration order.
// Sweep fails if it does not finish before the watchdog fires
// or the caller's context is cancelled.
func (e *MonitorEngine) CheckHealth(ctx context.Context) error {
	timeout := time.Duration(e.Settings.MonitorSettings().HealthCheckTimeout) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	all := e.registry.All()
	for i, m := range all {
		if err := ctx.Err(); err != nil {
			if context.DeadlineExceeded == err {
				return &ErrHealthCheckTimeout{Timeout: timeout, Checked: i, Total: len(all)}
			}

			return errors.Wrap(err, "health check aborted")
		}

		if !m.IsConnected() {
			e.Logger.Debug("Device is not connected", common.LogDevicePathToken, m.Path())
		} else if !m.IsPoweredUp() {
			e.Logger.Debug("Device is not powered up", common.LogDevicePathToken, m.Path())
		}

		e.pushStatus(m)
	}

	return nil
}

// Runs health sweep and logs failure.
func (e *MonitorEngine) runHealthCheck() {
	if err := e.CheckHealth(context.Background()); err != nil {
		e.Logger.Error("Health check failed", err)
	}
}

// State returns snapshot of the engine.
func (e *MonitorEngine) State() *Snapshot {
	now := time.Now()
	s := &Snapshot{
		InstallationState: e.InstallationState(),
		Monitors:          make([]*MonitorState, 0),
	}

	for _, m := range e.registry.All() {
		s.Monitors = append(s.Monitors, &MonitorState{
			Path:       m.Path(),
			DeviceType: m.DeviceType(),
			Status:     m.StatusMessage(now),
		})
	}

	return s
}

// DeviceStatus returns current status of the monitored device.
func (e *MonitorEngine) DeviceStatus(path string) (*providers.StatusMessage, bool) {
	m, ok := e.registry.Get(path)
	if !ok {
		return nil, false
	}

	return m.StatusMessage(time.Now()), true
}

// Prune removes monitors of devices which disappeared from the host.
func (e *MonitorEngine) Prune() int {
	e.Lock()
	defer e.Unlock()

	removed := 0
	for _, m := range e.registry.All() {
		if e.lookup.Exists(m.Category(), m.Name()) {
			continue
		}

		if e.registry.Remove(m.Path()) {
			removed++
			e.Logger.Info("Removed monitor of a vanished device", common.LogDevicePathToken, m.Path())
		}
	}

	if removed > 0 {
		e.reporter.UpdateGauges(e.registry.Len(), e.state.Up)
	}

	return removed
}

// ConnectionChanged pushes status on every connectivity change.
func (e *MonitorEngine) ConnectionChanged(m *monitor.Monitor, connected bool) {
	if !connected && e.InstallationState().Up {
		e.Logger.Debug("Device lost connection during installation run",
			common.LogDevicePathToken, m.Path())
	}

	e.pushStatus(m)
}

// PowerChanged pushes status on every power change.
func (e *MonitorEngine) PowerChanged(m *monitor.Monitor, power bool) {
	if !power && e.InstallationState().Up {
		e.Logger.Debug("Device lost power during installation run",
			common.LogDevicePathToken, m.Path())
	}

	e.pushStatus(m)
}

// StatusChanged pushes device status.
func (e *MonitorEngine) StatusChanged(m *monitor.Monitor) {
	e.pushStatus(m)
}

// ChallengeRaised reports device problem and mirrors it to the collector log.
func (e *MonitorEngine) ChallengeRaised(m *monitor.Monitor, state enums.ChallengeState, text string) {
	level := enums.LogWarning
	if enums.ChError == state {
		level = enums.LogError
	}

	e.Logger.Warn("Device reported "+state.String(), common.LogDevicePathToken, m.Path())
	e.reporter.Challenge(m.Path(), state, text)
	e.reporter.Log(m.Path(), level, m.Path()+" reported "+state.String()+": "+text)
}

// Queues status snapshot.
func (e *MonitorEngine) pushStatus(m *monitor.Monitor) {
	if m.Closed() {
		return
	}

	e.reporter.DeviceStatus(m.Path(), m.StatusMessage(time.Now()))
}
