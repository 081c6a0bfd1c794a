// Package config contains persisted collector settings storage.
package config

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-home-io/device-monitor/common"
	"github.com/go-home-io/device-monitor/providers"
	"github.com/pkg/errors"
)

const (
	// Logger system.
	logSystem = "config"

	// DefaultServerURL is used when settings file is absent or broken.
	DefaultServerURL = "http://localhost:3113"

	// EnvServerURL overrides collector URL.
	EnvServerURL = "MONITOR_SERVER_URL"
	// EnvAccessToken overrides collector access token.
	EnvAccessToken = "MONITOR_ACCESS_TOKEN"
)

// File system based settings store.
type fsConfig struct {
	sync.Mutex
	location string
	logger   common.ILoggerProvider
	settings *providers.CollectorSettings
}

// ConstructConfigStore has data required for a new settings store.
type ConstructConfigStore struct {
	Location string
	Logger   common.ILoggerProvider
}

// NewConfigStore constructs a new settings store.
// Settings are not read until Load is called.
func NewConfigStore(ctor *ConstructConfigStore) providers.IConfigStoreProvider {
	return &fsConfig{
		location: ctor.Location,
		logger:   ctor.Logger,
		settings: defaultSettings(),
	}
}

// Load reads settings file.
// On any failure defaults are written back and used for the rest of the process lifetime.
func (c *fsConfig) Load() *providers.CollectorSettings {
	s, err := c.read()
	if err != nil {
		c.logger.Error("Failed to read settings, using defaults", err,
			common.LogSystemToken, logSystem, common.LogFileToken, c.location)
		s = defaultSettings()
		if err := c.Save(s); err != nil {
			c.logger.Error("Failed to write default settings", err,
				common.LogSystemToken, logSystem, common.LogFileToken, c.location)
		}
	}

	applyEnv(s)

	c.Lock()
	c.settings = s
	c.Unlock()

	c.logger.Info("Loaded collector settings", common.LogSystemToken, logSystem,
		common.LogURLToken, s.ServerURL)
	return c.Settings()
}

// Settings returns a copy of the current settings.
func (c *fsConfig) Settings() *providers.CollectorSettings {
	c.Lock()
	defer c.Unlock()
	cp := *c.settings
	return &cp
}

// Save persists settings with 4 spaces indentation.
func (c *fsConfig) Save(s *providers.CollectorSettings) error {
	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return errors.Wrap(err, "marshal settings")
	}

	if dir := filepath.Dir(c.location); "" != dir {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return errors.Wrap(err, "create settings dir")
		}
	}

	if err := ioutil.WriteFile(c.location, data, 0644); err != nil {
		return errors.Wrap(err, "write settings")
	}

	c.Lock()
	cp := *s
	c.settings = &cp
	c.Unlock()
	return nil
}

// Reads and parses settings file.
func (c *fsConfig) read() (*providers.CollectorSettings, error) {
	data, err := ioutil.ReadFile(c.location)
	if err != nil {
		return nil, errors.Wrap(err, "read settings")
	}

	s := &providers.CollectorSettings{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, errors.Wrap(err, "parse settings")
	}

	return s, nil
}

// Returns hard-coded defaults.
func defaultSettings() *providers.CollectorSettings {
	return &providers.CollectorSettings{
		ServerURL:   DefaultServerURL,
		AccessToken: "",
	}
}

// Applies environment overrides.
func applyEnv(s *providers.CollectorSettings) {
	if v := os.Getenv(EnvServerURL); "" != v {
		s.ServerURL = v
	}

	if v := os.Getenv(EnvAccessToken); "" != v {
		s.AccessToken = v
	}
}
