//go:build !release
// +build !release

package mocks

import (
	"github.com/go-home-io/device-monitor/common"
	"github.com/go-home-io/device-monitor/providers"
)

type fakeValidator struct {
	success bool
}

func (f *fakeValidator) SetLogger(logger common.ILoggerProvider) {
}

func (f *fakeValidator) Validate(interface{}) bool {
	return f.success
}

// FakeNewValidator creates a new fake validation provider.
func FakeNewValidator(success bool) providers.IValidatorProvider {
	return &fakeValidator{
		success: success,
	}
}
