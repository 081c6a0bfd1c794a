//go:build !release
// +build !release

package mocks

import "sync"

// Fake cron which fires jobs on demand.
type fakeCron struct {
	sync.Mutex
	jobs  map[int]func()
	specs map[int]string
	next  int
}

// AddFunc registers a job.
func (c *fakeCron) AddFunc(spec string, cmd func()) (int, error) {
	c.Lock()
	defer c.Unlock()
	c.next++
	c.jobs[c.next] = cmd
	c.specs[c.next] = spec
	return c.next, nil
}

// RemoveFunc removes a job.
func (c *fakeCron) RemoveFunc(id int) {
	c.Lock()
	defer c.Unlock()
	delete(c.jobs, id)
	delete(c.specs, id)
}

// Fire invokes all jobs registered with the cron expression.
func (c *fakeCron) Fire(spec string) int {
	c.Lock()
	toCall := make([]func(), 0)
	for id, s := range c.specs {
		if s == spec {
			toCall = append(toCall, c.jobs[id])
		}
	}
	c.Unlock()

	for _, v := range toCall {
		v()
	}

	return len(toCall)
}

// Specs returns registered specs.
func (c *fakeCron) Specs() []string {
	c.Lock()
	defer c.Unlock()
	result := make([]string, 0, len(c.specs))
	for _, v := range c.specs {
		result = append(result, v)
	}

	return result
}

// FakeNewCron creates a fake cron provider.
func FakeNewCron() *fakeCron {
	return &fakeCron{
		jobs:  make(map[int]func()),
		specs: make(map[int]string),
	}
}
