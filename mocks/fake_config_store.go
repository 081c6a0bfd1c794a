//go:build !release
// +build !release

package mocks

import (
	"sync"

	"github.com/go-home-io/device-monitor/providers"
)

type fakeConfigStore struct {
	sync.Mutex
	settings *providers.CollectorSettings
	saved    int
}

func (c *fakeConfigStore) Load() *providers.CollectorSettings {
	return c.Settings()
}

func (c *fakeConfigStore) Settings() *providers.CollectorSettings {
	c.Lock()
	defer c.Unlock()
	cp := *c.settings
	return &cp
}

func (c *fakeConfigStore) Save(s *providers.CollectorSettings) error {
	c.Lock()
	defer c.Unlock()
	cp := *s
	c.settings = &cp
	c.saved++
	return nil
}

// FakeNewConfigStore creates in-memory collector settings store.
func FakeNewConfigStore(url string, token string) providers.IConfigStoreProvider {
	return &fakeConfigStore{
		settings: &providers.CollectorSettings{ServerURL: url, AccessToken: token},
	}
}
