//go:build !release
// +build !release

package mocks

import (
	"sync"

	"github.com/go-home-io/device-monitor/enums"
	"github.com/go-home-io/device-monitor/providers"
)

// FakeChallenge describes recorded challenge report.
type FakeChallenge struct {
	Path  string
	State enums.ChallengeState
	Text  string
}

// FakeLog describes recorded collector log message.
type FakeLog struct {
	Origin  string
	Level   enums.LogLevel
	Message string
}

// FakeStatus describes recorded status push.
type FakeStatus struct {
	Path string
	Msg  *providers.StatusMessage
}

type fakeReporter struct {
	sync.Mutex
	heartbeats []*providers.HeartbeatMessage
	statuses   []*FakeStatus
	challenges []*FakeChallenge
	logs       []*FakeLog
	stopped    bool
	registered int
	up         bool
}

func (r *fakeReporter) Heartbeat(msg *providers.HeartbeatMessage) {
	r.Lock()
	defer r.Unlock()
	r.heartbeats = append(r.heartbeats, msg)
}

func (r *fakeReporter) DeviceStatus(path string, msg *providers.StatusMessage) {
	r.Lock()
	defer r.Unlock()
	r.statuses = append(r.statuses, &FakeStatus{Path: path, Msg: msg})
}

func (r *fakeReporter) Challenge(path string, state enums.ChallengeState, text string) {
	r.Lock()
	defer r.Unlock()
	r.challenges = append(r.challenges, &FakeChallenge{Path: path, State: state, Text: text})
}

func (r *fakeReporter) Log(origin string, level enums.LogLevel, message string) {
	r.Lock()
	defer r.Unlock()
	r.logs = append(r.logs, &FakeLog{Origin: origin, Level: level, Message: message})
}

func (r *fakeReporter) UpdateGauges(registered int, installationUp bool) {
	r.Lock()
	defer r.Unlock()
	r.registered = registered
	r.up = installationUp
}

func (r *fakeReporter) Stop() {
	r.Lock()
	defer r.Unlock()
	r.stopped = true
}

// Heartbeats returns recorded heartbeats.
func (r *fakeReporter) Heartbeats() []*providers.HeartbeatMessage {
	r.Lock()
	defer r.Unlock()
	return append([]*providers.HeartbeatMessage{}, r.heartbeats...)
}

// Statuses returns recorded status pushes.
func (r *fakeReporter) Statuses() []*FakeStatus {
	r.Lock()
	defer r.Unlock()
	return append([]*FakeStatus{}, r.statuses...)
}

// Challenges returns recorded challenges.
func (r *fakeReporter) Challenges() []*FakeChallenge {
	r.Lock()
	defer r.Unlock()
	return append([]*FakeChallenge{}, r.challenges...)
}

// Logs returns recorded log messages.
func (r *fakeReporter) Logs() []*FakeLog {
	r.Lock()
	defer r.Unlock()
	return append([]*FakeLog{}, r.logs...)
}

// Stopped returns whether reporter was stopped.
func (r *fakeReporter) Stopped() bool {
	r.Lock()
	defer r.Unlock()
	return r.stopped
}

// Gauges returns last reported gauge values.
func (r *fakeReporter) Gauges() (int, bool) {
	r.Lock()
	defer r.Unlock()
	return r.registered, r.up
}

// Reset clears recorded data.
func (r *fakeReporter) Reset() {
	r.Lock()
	defer r.Unlock()
	r.heartbeats = nil
	r.statuses = nil
	r.challenges = nil
	r.logs = nil
}

// FakeNewReporter creates a recording reporter.
func FakeNewReporter() *fakeReporter {
	return &fakeReporter{}
}
