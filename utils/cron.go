package utils

import (
	"time"

	"github.com/go-home-io/device-monitor/providers"
	"gopkg.in/robfig/cron.v2"
)

// Cron implementation.
type provider struct {
	cron *cron.Cron
}

// NewCron creates a new scheduler.
func NewCron() providers.ICronProvider {
	p := provider{
		cron: cron.New(),
	}

	p.cron.Start()
	return &p
}

// AddFunc schedules a new job.
func (p *provider) AddFunc(spec string, cmd func()) (int, error) {
	id, err := p.cron.AddFunc(spec, cmd)
	return int(id), err
}

// RemoveFunc removes scheduled job from cron.
func (p *provider) RemoveFunc(id int) {
	p.cron.Remove(cron.EntryID(id))
}

// EverySeconds formats cron spec for a fixed interval.
func EverySeconds(seconds int) string {
	return "@every " + (time.Duration(seconds) * time.Second).String()
}

// Wall-clock timer implementation.
type timerProvider struct {
}

// NewTimer creates a new one-shot timer provider.
func NewTimer() providers.ITimerProvider {
	return &timerProvider{}
}

// AfterFunc arms a new timer.
func (*timerProvider) AfterFunc(d time.Duration, cmd func()) providers.ITimer {
	return time.AfterFunc(d, cmd)
}
