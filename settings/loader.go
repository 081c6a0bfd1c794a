// Package settings is responsible for parsing yaml-based configuration.
package settings

import (
	"bytes"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/go-home-io/device-monitor/common"
	"github.com/go-home-io/device-monitor/enums"
	"github.com/go-home-io/device-monitor/providers"
	"github.com/go-home-io/device-monitor/systems"
	"github.com/go-home-io/device-monitor/systems/logger"
	"github.com/go-home-io/device-monitor/utils"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	// Logger system.
	logSystem = "settings"
)

// StartUpOptions defines arguments allowed by the system.
type StartUpOptions struct {
	Config  string `short:"c" long:"config" default:"./configs/monitor.yaml" description:"Config file location."`
	Env     string `short:"e" long:"env" default:".env" description:"Environment file location."`
	Verbose bool   `short:"v" long:"verbose" description:"Enables debug output until logger is configured."`
}

// Defines loaded provider record.
type rawProvider struct {
	System   string
	Provider string
	Config   []byte
}

// System settings.
type settingsProvider struct {
	logger    common.ILoggerProvider
	cron      providers.ICronProvider
	timer     providers.ITimerProvider
	validator providers.IValidatorProvider

	monitor  *providers.MonitorSettings
	api      *providers.APISettings
	devices  []*providers.RawDevice
	mappings []*providers.RawMapping
	register *providers.RegisterSettings
	unity    []*providers.UnitySettings
}

// Load system configuration.
func Load(options *StartUpOptions) (providers.ISettingsProvider, error) {
	level := enums.LogInfo
	if options.Verbose {
		level = enums.LogDebug
	}

	settings := &settingsProvider{
		logger:   logger.NewConsoleLogger(level),
		cron:     utils.NewCron(),
		timer:    utils.NewTimer(),
		devices:  make([]*providers.RawDevice, 0),
		mappings: make([]*providers.RawMapping, 0),
		register: &providers.RegisterSettings{},
		unity:    make([]*providers.UnitySettings, 0),
	}

	settings.validator = utils.NewValidator(settings.logger)
	settings.loadEnv(options.Env)

	provs, err := settings.readFile(options.Config)
	if err != nil {
		return nil, err
	}

	provs = settings.loadLoggerProvider(provs)
	for _, v := range provs {
		if err := settings.parseProvider(v); err != nil {
			return nil, err
		}
	}

	if err := settings.validate(); err != nil {
		return nil, err
	}

	return settings, nil
}

// LoadMappings re-reads input mapping records from the config file.
// Every other record is ignored.
func LoadMappings(options *StartUpOptions, log common.ILoggerProvider) ([]*providers.RawMapping, error) {
	settings := &settingsProvider{
		logger:   log,
		mappings: make([]*providers.RawMapping, 0),
	}
	settings.validator = utils.NewValidator(log)

	provs, err := settings.readFile(options.Config)
	if err != nil {
		return nil, err
	}

	for _, v := range provs {
		if v.System == systems.SysMapper.String() {
			settings.loadMapping(v)
		}
	}

	return settings.mappings, nil
}

// Reads config file and splits it into records.
func (s *settingsProvider) readFile(location string) ([]*rawProvider, error) {
	data, err := ioutil.ReadFile(location)
	if err != nil {
		return nil, errors.Wrap(err, "config read failed")
	}

	tpl := newTemplateProvider(&constructTemplate{Logger: s.logger})
	data, err = tpl.Process(data)
	if err != nil {
		return nil, err
	}

	return s.loadFile(data)
}

// Loads environment file if it exists.
func (s *settingsProvider) loadEnv(location string) {
	if "" == location {
		return
	}

	if _, err := os.Stat(location); err != nil {
		return
	}

	if err := godotenv.Load(location); err != nil {
		s.logger.Error("Failed to load environment file", err, common.LogSystemToken, logSystem,
			common.LogFileToken, location)
		return
	}

	s.logger.Debug("Loaded environment file", common.LogSystemToken, logSystem, common.LogFileToken, location)
}

// Processes yaml stream.
// Every document is a separate record defined by system and provider.
func (s *settingsProvider) loadFile(fileData []byte) ([]*rawProvider, error) {
	provs := make([]*rawProvider, 0)
	decoder := yaml.NewDecoder(bytes.NewReader(fileData))
	for {
		var value map[string]interface{}
		err := decoder.Decode(&value)
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, errors.Wrap(err, "config parse failed")
		}

		if nil == value {
			continue
		}

		componentType := ""
		componentProvider := ""

		if cs, ok := value["system"].(string); ok {
			componentType = strings.ToLower(cs)
		}

		if ct, ok := value["provider"].(string); ok {
			componentProvider = strings.ToLower(ct)
		}

		if componentType == "" {
			s.logger.Warn("Failed to parse a record in the config file: system is not defined",
				common.LogSystemToken, logSystem)
			continue
		}

		byteData, err := yaml.Marshal(value)
		if err != nil {
			s.logger.Error("Failed to parse config file", err, common.LogSystemToken, componentType,
				common.LogProviderToken, componentProvider)
			continue
		}

		provs = append(provs, &rawProvider{
			Provider: componentProvider,
			System:   componentType,
			Config:   byteData,
		})
	}

	return provs, nil
}

// Loads logger configuration.
// Logger goes first so every other record is reported through it.
func (s *settingsProvider) loadLoggerProvider(provs []*rawProvider) []*rawProvider {
	left := make([]*rawProvider, 0, len(provs))
	for _, v := range provs {
		if v.System != systems.SysLogger.String() {
			left = append(left, v)
			continue
		}

		set := &providers.LoggerSettings{}
		if err := yaml.Unmarshal(v.Config, set); err != nil {
			s.logger.Error("Failed to unmarshal logger config", err, common.LogProviderToken, v.Provider)
			continue
		}

		if "" == set.Provider {
			set.Provider = v.Provider
		}

		if !s.validator.Validate(set) {
			s.logger.Warn("Incorrect logger settings, keeping console logger",
				common.LogProviderToken, v.Provider)
			continue
		}

		log, err := logger.NewLoggerProvider(&logger.ConstructLogger{Settings: set})
		if err != nil {
			s.logger.Error("Failed to load logger", err, common.LogProviderToken, v.Provider)
			continue
		}

		s.logger = log
		s.validator.SetLogger(s.PluginLogger("validator", ""))
	}

	return left
}

// Processes single provider config.
func (s *settingsProvider) parseProvider(provider *rawProvider) error {
	s.logger.Debug("Processing config", common.LogProviderToken, provider.Provider,
		common.LogSystemToken, provider.System)

	sys, err := systems.SystemTypeString(provider.System)
	if err != nil {
		s.logger.Warn("Unknown provider's system", common.LogProviderToken, provider.Provider,
			common.LogSystemToken, provider.System)
		return nil
	}

	switch sys {
	case systems.SysMonitor:
		return s.loadMonitor(provider)
	case systems.SysAPI:
		return s.loadAPI(provider)
	case systems.SysDevice:
		s.loadDevice(provider)
	case systems.SysMapper:
		s.loadMapping(provider)
	case systems.SysRegister:
		s.loadRegister(provider)
	case systems.SysUnity:
		s.loadUnity(provider)
	}

	return nil
}

// Loads engine settings.
func (s *settingsProvider) loadMonitor(provider *rawProvider) error {
	if nil != s.monitor {
		s.logger.Warn("Duplicated monitor settings, ignoring", common.LogSystemToken, provider.System)
		return nil
	}

	set := &providers.MonitorSettings{}
	if err := yaml.Unmarshal(provider.Config, set); err != nil {
		return errors.Wrap(err, "monitor settings unmarshal failed")
	}

	if !s.validator.Validate(set) {
		return &utils.ErrInvalidConfig{}
	}

	s.monitor = set
	return nil
}

// Loads control API settings.
func (s *settingsProvider) loadAPI(provider *rawProvider) error {
	set := &providers.APISettings{}
	if err := yaml.Unmarshal(provider.Config, set); err != nil {
		return errors.Wrap(err, "api settings unmarshal failed")
	}

	if !s.validator.Validate(set) {
		return &utils.ErrInvalidConfig{}
	}

	s.api = set
	return nil
}

// Loads host device.
// Provider holds device category.
func (s *settingsProvider) loadDevice(provider *rawProvider) {
	category, err := enums.CategoryString(provider.Provider)
	if err != nil {
		s.logger.Warn("Ignoring device since category is unknown", common.LogCategoryToken, provider.Provider)
		return
	}

	d := &providers.RawDevice{}
	if err := yaml.Unmarshal(provider.Config, d); err != nil {
		s.logger.Error("Failed to unmarshal device", err, common.LogCategoryToken, provider.Provider)
		return
	}

	d.Category = category
	if !s.validator.Validate(d) {
		s.logger.Warn("Ignoring invalid device", common.LogCategoryToken, provider.Provider,
			common.LogDeviceNameToken, d.Name)
		return
	}

	for _, v := range s.devices {
		if v.Category == d.Category && v.Name == d.Name {
			s.logger.Warn("Ignoring device since name is duplicated",
				common.LogCategoryToken, provider.Provider, common.LogDeviceNameToken, d.Name)
			return
		}
	}

	s.devices = append(s.devices, d)
}

// Loads input mapping.
func (s *settingsProvider) loadMapping(provider *rawProvider) {
	m := &providers.RawMapping{
		InRange:  providers.ValueRange{Min: 0, Max: 1},
		OutRange: providers.ValueRange{Min: 0, Max: 1},
	}

	if err := yaml.Unmarshal(provider.Config, m); err != nil {
		s.logger.Error("Failed to unmarshal mapping", err, common.LogSystemToken, provider.System)
		return
	}

	if !s.validator.Validate(m) {
		s.logger.Warn("Ignoring invalid mapping", common.LogSystemToken, provider.System)
		return
	}

	s.mappings = append(s.mappings, m)
}

// Names registered at start-up.
type rawRegister struct {
	Names string `yaml:"names"`
}

// Loads start-up registration list.
// Provider holds device category, lists of the same category are joined.
func (s *settingsProvider) loadRegister(provider *rawProvider) {
	category, err := enums.CategoryString(provider.Provider)
	if err != nil {
		s.logger.Warn("Ignoring registration since category is unknown",
			common.LogCategoryToken, provider.Provider)
		return
	}

	r := &rawRegister{}
	if err := yaml.Unmarshal(provider.Config, r); err != nil {
		s.logger.Error("Failed to unmarshal registration", err, common.LogCategoryToken, provider.Provider)
		return
	}

	switch category {
	case enums.CatNetwork:
		s.register.Network = joinList(s.register.Network, r.Names)
	case enums.CatSpot:
		s.register.Spots = joinList(s.register.Spots, r.Names)
	case enums.CatWATCHOUT:
		s.register.Watchout = joinList(s.register.Watchout, r.Names)
	}
}

// Loads application variable sync connection.
func (s *settingsProvider) loadUnity(provider *rawProvider) {
	u := &providers.UnitySettings{}
	if err := yaml.Unmarshal(provider.Config, u); err != nil {
		s.logger.Error("Failed to unmarshal unity connection", err, common.LogProviderToken, provider.Provider)
		return
	}

	if !s.validator.Validate(u) {
		s.logger.Warn("Ignoring invalid unity connection", common.LogProviderToken, provider.Provider)
		return
	}

	for _, v := range s.unity {
		if v.Listen == u.Listen || v.Prefix == u.Prefix {
			s.logger.Warn("Ignoring unity connection since listen address or prefix is duplicated",
				common.LogProviderToken, provider.Provider, common.LogNameToken, u.Prefix)
			return
		}
	}

	s.unity = append(s.unity, u)
}

// Validates whether all necessary settings are present.
func (s *settingsProvider) validate() error {
	if nil == s.monitor {
		s.logger.Warn("Monitor settings are not defined, using the default ones",
			common.LogSystemToken, logSystem)
		s.monitor = &providers.MonitorSettings{}
		if !s.validator.Validate(s.monitor) {
			return &utils.ErrInvalidConfig{}
		}
	}

	if nil == s.api {
		s.api = &providers.APISettings{}
		if !s.validator.Validate(s.api) {
			return &utils.ErrInvalidConfig{}
		}
	}

	return nil
}

// Appends name list.
func joinList(list string, names string) string {
	if "" == strings.TrimSpace(list) {
		return names
	}

	if "" == strings.TrimSpace(names) {
		return list
	}

	return list + ", " + names
}
