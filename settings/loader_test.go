package settings

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-home-io/device-monitor/enums"
	"github.com/go-home-io/device-monitor/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
system: monitor
provider: engine
heartbeatInterval: 60
minLogLevel: warning
settingsFile: {{ env "MONITOR_TEST_SETTINGS" }}
---
system: api
provider: http
port: {{ env "MONITOR_TEST_MISSING" | default "8080" }}
---
system: device
provider: network
name: proj1
driver: PJLink
address: 10.0.0.1
port: 4352
---
system: device
provider: network
name: proj1
driver: TCP
---
system: device
provider: spot
name: b.b
volume: 0.5
---
system: device
provider: unknown
name: broken
---
system: mapper
provider: linear
ioAlias: fader
inRange:
  max: 127
outRange:
  min: -1
  max: 1
wholeNumbersOut: true
---
system: mapper
provider: linear
---
system: register
provider: network
names: proj1, "proj2"
---
system: register
provider: network
names: proj3
---
system: register
provider: watchout
names: main
---
system: unity
provider: udp
remote: 10.0.0.5:12543
---
system: unity
provider: udp
listen: ":12544"
prefix: Unity
---
provider: orphan
`

func writeConfig(t *testing.T, name string, data string) string {
	location := filepath.Join(t.TempDir(), name)
	require.NoError(t, ioutil.WriteFile(location, []byte(data), 0600), "write")
	return location
}

// Tests full config load.
func TestLoad(t *testing.T) {
	t.Setenv("MONITOR_TEST_SETTINGS", "monitor.json")
	s, err := Load(&StartUpOptions{Config: writeConfig(t, "monitor.yaml", testConfig)})
	require.NoError(t, err, "load")

	m := s.MonitorSettings()
	assert.Equal(t, 60, m.HeartbeatInterval, "heartbeat")
	assert.Equal(t, 600, m.StartupTimeout, "startup default")
	assert.Equal(t, 60, m.HealthCheckTimeout, "health default")
	assert.Equal(t, enums.LogWarning, m.MinLogLevel, "level")
	assert.Equal(t, "monitor.json", m.SettingsFile, "env template")

	assert.Equal(t, 8080, s.APISettings().Port, "port")

	devices := s.DevicesConfig()
	require.Equal(t, 2, len(devices), "devices")
	assert.Equal(t, enums.CatNetwork, devices[0].Category, "first category")
	assert.Equal(t, "PJLink", devices[0].Driver, "duplicate ignored")
	assert.Equal(t, enums.CatSpot, devices[1].Category, "second category")
	assert.Equal(t, 0.5, devices[1].Volume, "volume")

	mappings := s.MappingsConfig()
	require.Equal(t, 1, len(mappings), "mappings")
	assert.Equal(t, "fader", mappings[0].IOAlias, "alias")
	assert.Equal(t, float64(127), mappings[0].InRange.Max, "in max")
	assert.Equal(t, float64(-1), mappings[0].OutRange.Min, "out min")
	assert.True(t, mappings[0].WholeNumbersOut, "whole numbers")

	reg := s.RegisterConfig()
	assert.Equal(t, `proj1, "proj2", proj3`, reg.Network, "network")
	assert.Equal(t, "", reg.Spots, "spots")
	assert.Equal(t, "main", reg.Watchout, "watchout")

	unity := s.UnityConfig()
	require.Equal(t, 1, len(unity), "unity")
	assert.Equal(t, ":12543", unity[0].Listen, "listen default")
	assert.Equal(t, "10.0.0.5:12543", unity[0].Remote, "remote")
	assert.Equal(t, "Unity", unity[0].Prefix, "prefix default")

	assert.NotNil(t, s.Cron(), "cron")
	assert.NotNil(t, s.Timer(), "timer")
	assert.NotNil(t, s.Validator(), "validator")
	assert.NotNil(t, s.PluginLogger("test", "test"), "plugin logger")
}

// Tests defaults when nothing is configured.
func TestLoadDefaults(t *testing.T) {
	s, err := Load(&StartUpOptions{Config: writeConfig(t, "monitor.yaml", "system: device\nprovider: spot\nname: a")})
	require.NoError(t, err, "load")

	assert.Equal(t, 300, s.MonitorSettings().HeartbeatInterval, "heartbeat")
	assert.Equal(t, enums.LogInfo, s.MonitorSettings().MinLogLevel, "level")
	assert.Equal(t, 3114, s.APISettings().Port, "port")
	assert.False(t, s.APISettings().Disabled, "disabled")
	assert.Equal(t, 1, len(s.DevicesConfig()), "devices")
}

// Tests environment file.
func TestLoadEnvFile(t *testing.T) {
	os.Unsetenv("MONITOR_TEST_ENV_FILE")       // nolint: errcheck
	defer os.Unsetenv("MONITOR_TEST_ENV_FILE") // nolint: errcheck

	env := writeConfig(t, ".env", "MONITOR_TEST_ENV_FILE=from-file\n")
	cfg := writeConfig(t, "monitor.yaml", "system: monitor\nsettingsFile: {{ env \"MONITOR_TEST_ENV_FILE\" }}")

	s, err := Load(&StartUpOptions{Config: cfg, Env: env})
	require.NoError(t, err, "load")
	assert.Equal(t, "from-file", s.MonitorSettings().SettingsFile, "settings file")
}

// Tests invalid configs.
func TestLoadErrors(t *testing.T) {
	data := []struct {
		name   string
		config string
	}{
		{name: "template", config: "system: monitor\nsettingsFile: {{ env }"},
		{name: "yaml", config: "system: monitor\nheartbeatInterval: [1, 2"},
		{name: "validation", config: "system: monitor\nheartbeatInterval: -5"},
		{name: "port", config: "system: api\nport: 70000"},
	}

	for _, v := range data {
		_, err := Load(&StartUpOptions{Config: writeConfig(t, "monitor.yaml", v.config)})
		assert.Error(t, err, v.name)
	}

	_, err := Load(&StartUpOptions{Config: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err, "missing file")
}

// Tests logger record.
func TestLoadLogger(t *testing.T) {
	cfg := writeConfig(t, "monitor.yaml", "system: logger\nprovider: logrus\nlevel: debug\nformat: json\n---\n"+
		"system: logger\nprovider: unknown")

	s, err := Load(&StartUpOptions{Config: cfg, Verbose: true})
	require.NoError(t, err, "load")
	assert.NotNil(t, s.SystemLogger(), "logger")
}

// Tests mappings reload.
func TestLoadMappings(t *testing.T) {
	cfg := writeConfig(t, "monitor.yaml", testConfig)
	options := &StartUpOptions{Config: cfg}
	log := mocks.FakeNewLogger(nil)

	mappings, err := LoadMappings(options, log)
	require.NoError(t, err, "load")
	require.Equal(t, 1, len(mappings), "mappings")
	assert.Equal(t, "fader", mappings[0].IOAlias, "alias")

	updated := "system: mapper\nprovider: linear\nioAlias: knob\n---\n" +
		"system: mapper\nprovider: linear\nioAlias: fader\nautoInRange: true\n---\n" +
		"system: monitor\nheartbeatInterval: -5"
	require.NoError(t, ioutil.WriteFile(cfg, []byte(updated), 0600), "update")

	mappings, err = LoadMappings(options, log)
	require.NoError(t, err, "reload")
	require.Equal(t, 2, len(mappings), "reloaded mappings")
	assert.Equal(t, "knob", mappings[0].IOAlias, "first alias")
	assert.Equal(t, float64(1), mappings[0].InRange.Max, "default range")
	assert.True(t, mappings[1].AutoInRange, "auto range")

	_, err = LoadMappings(&StartUpOptions{Config: filepath.Join(t.TempDir(), "missing.yaml")}, log)
	assert.Error(t, err, "missing file")
}
