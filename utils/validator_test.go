package utils

import (
	"testing"

	"github.com/go-home-io/device-monitor/mocks"
	"github.com/go-home-io/device-monitor/providers"
	"github.com/stretchr/testify/assert"
)

type testStruct struct {
	Port int32  `validate:"port"`
	Name string `validate:"devicename"`
}

// Tests success validation.
func TestSuccessValidation(t *testing.T) {
	in := []*testStruct{
		{
			Port: 8080,
			Name: "projector1",
		},
		{
			Port: 65535,
			Name: "Lobby Screen",
		},
	}

	validator := NewValidator(mocks.FakeNewLogger(nil))
	for _, v := range in {
		assert.True(t, validator.Validate(v), v.Name)
	}
}

// Tests failed validation.
func TestFailedValidation(t *testing.T) {
	in := []*testStruct{
		{
			Port: 0,
			Name: "projector1",
		},
		{
			Port: 80,
			Name: "[projector1]",
		},
		{
			Port: 80,
			Name: "a,b",
		},
		{
			Port: 80,
			Name: " ",
		},
	}

	warned := 0
	validator := NewValidator(mocks.FakeNewLogger(func(string) {
		warned++
	}))
	for _, v := range in {
		assert.False(t, validator.Validate(v), v.Name)
	}

	assert.Equal(t, len(in), warned)
}

// Tests that default values are applied.
func TestDefaults(t *testing.T) {
	s := &providers.MonitorSettings{}
	validator := NewValidator(mocks.FakeNewLogger(nil))
	assert.True(t, validator.Validate(s))
	assert.Equal(t, 300, s.HeartbeatInterval)
	assert.Equal(t, 600, s.StartupTimeout)
	assert.Equal(t, 60, s.HealthCheckTimeout)
	assert.Equal(t, 160, s.DebugTruncate)
	assert.Equal(t, "BlocksMonitor.config.json", s.SettingsFile)
	assert.EqualValues(t, 20000, s.MinLogLevel)
	assert.Equal(t, float64(0), s.LogRate)
	assert.Equal(t, 1000, s.BacklogWarning)

	s = &providers.MonitorSettings{LogRate: -1}
	assert.False(t, validator.Validate(s))
}
