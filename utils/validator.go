package utils

import (
	"strings"
	"sync"

	"github.com/creasty/defaults"
	"github.com/go-home-io/device-monitor/common"
	"github.com/go-home-io/device-monitor/providers"
	"gopkg.in/go-playground/validator.v9"
)

// Validator implementation.
type validatorProvider struct {
	sync.Mutex
	validator *validator.Validate
	logger    common.ILoggerProvider
}

// NewValidator constructs a new validator.
func NewValidator(logger common.ILoggerProvider) providers.IValidatorProvider {
	val := &validatorProvider{
		logger: logger,
	}
	v := validator.New()
	loadNewValidator(v, logger, "port", port)
	loadNewValidator(v, logger, "devicename", deviceName)

	val.validator = v
	return val
}

// SetLogger updates the logger.
// Since logger is loaded after first init, we need to re-assign it.
func (v *validatorProvider) SetLogger(logger common.ILoggerProvider) {
	v.logger = logger
}

// Validate sets default values and performs validation of a config structure.
func (v *validatorProvider) Validate(object interface{}) bool {
	v.Lock()
	defer v.Unlock()

	err := defaults.Set(object)

	if err != nil {
		v.logger.Error("Failed to set default field values", err)
		return false
	}

	err = v.validator.Struct(object)
	if err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			v.logger.Error("Failed to validate structure", err)
			return false
		}

		for _, e := range errs {
			v.logger.Warn("Validation error", common.LogFieldToken, e.Namespace())
		}

		return false
	}
	return true
}

// Port type validation.
func port(fl validator.FieldLevel) bool {
	return isPort(fl.Field().Int())
}

// Device names are used in comma-separated lists.
func deviceName(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return "" != strings.TrimSpace(s) && !strings.ContainsAny(s, ",\"'[]")
}

// Validates whether value could be used as a port.
func isPort(val int64) bool {
	return val > 0 && val <= 65535
}

// Attempt to register a new validator.
func loadNewValidator(validator *validator.Validate, logger common.ILoggerProvider,
	name string, function validator.Func) {
	if err := validator.RegisterValidation(name, function); err != nil {
		logger.Error("Failed to register validator type", err, "type", name)
	}
}
