package providers

import (
	"github.com/go-home-io/device-monitor/common"
	"github.com/go-home-io/device-monitor/enums"
)

// ISettingsProvider defines settings loader provider logic.
type ISettingsProvider interface {
	SystemLogger() common.ILoggerProvider
	PluginLogger(system string, provider string) common.ILoggerProvider
	Cron() ICronProvider
	Timer() ITimerProvider
	Validator() IValidatorProvider
	MonitorSettings() *MonitorSettings
	APISettings() *APISettings
	DevicesConfig() []*RawDevice
	MappingsConfig() []*RawMapping
	RegisterConfig() *RegisterSettings
	UnityConfig() []*UnitySettings
}

// MonitorSettings has engine tuning parameters.
type MonitorSettings struct {
	SettingsFile       string         `yaml:"settingsFile" default:"BlocksMonitor.config.json" validate:"required"`
	HeartbeatInterval  int            `yaml:"heartbeatInterval" default:"300" validate:"gte=1"`
	StartupTimeout     int            `yaml:"startupTimeout" default:"600" validate:"gte=1"`
	HealthCheckTimeout int            `yaml:"healthCheckTimeout" default:"60" validate:"gte=1"`
	MinLogLevel        enums.LogLevel `yaml:"minLogLevel" default:"20000" validate:"gt=0"`
	Debug              bool           `yaml:"debug"`
	DebugTruncate      int            `yaml:"debugTruncate" default:"160" validate:"gte=10"`
	LogRate            float64        `yaml:"logRate" validate:"gte=0"`
	LogBurst           int            `yaml:"logBurst" default:"20" validate:"gte=1"`
	ChallengeRepeat    int            `yaml:"challengeRepeat" default:"600" validate:"gte=0"`
	BacklogWarning     int            `yaml:"backlogWarning" default:"1000" validate:"gte=1"`
	HTTPTimeout        int            `yaml:"httpTimeout" default:"10" validate:"gte=1"`
	PruneInterval      int            `yaml:"pruneInterval" validate:"gte=0"`
}

// APISettings has control API configuration.
type APISettings struct {
	Disabled  bool       `yaml:"disabled"`
	Port      int        `yaml:"port" default:"3114" validate:"port"`
	UsersFile string     `yaml:"usersFile"`
	Roles     []*SecRole `yaml:"roles" validate:"dive"`
}

// LoggerSettings has system logger configuration.
type LoggerSettings struct {
	Provider string `yaml:"provider" default:"console" validate:"oneof=console logrus"`
	Level    string `yaml:"level" default:"info"`
	Format   string `yaml:"format" default:"text" validate:"oneof=text json"`
	File     string `yaml:"file"`
}

// RawDevice describes host device loaded from config files.
type RawDevice struct {
	Category enums.Category         `yaml:"category"`
	Name     string                 `yaml:"name" validate:"devicename"`
	Driver   string                 `yaml:"driver"`
	Address  string                 `yaml:"address"`
	Port     int                    `yaml:"port" validate:"gte=0,lte=65535"`
	Enabled  *bool                  `yaml:"enabled"`
	Volume   float64                `yaml:"volume"`
	ShowName string                 `yaml:"showName"`
	Info     *PJLinkInfo            `yaml:"info"`
	Props    map[string]interface{} `yaml:"properties"`
}

// ValueRange describes mapper range.
type ValueRange struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// RawMapping describes single input mapper.
type RawMapping struct {
	IOAlias         string     `yaml:"ioAlias" validate:"required"`
	InRange         ValueRange `yaml:"inRange"`
	OutRange        ValueRange `yaml:"outRange"`
	AutoInRange     bool       `yaml:"autoInRange"`
	WholeNumbersOut bool       `yaml:"wholeNumbersOut"`
	ValueLoop       bool       `yaml:"valueLoop"`
}

// RegisterSettings has name lists registered at start-up.
type RegisterSettings struct {
	Network  string `yaml:"network"`
	Spots    string `yaml:"spots"`
	Watchout string `yaml:"watchout"`
}

// UnitySettings has application variable sync connection configuration.
type UnitySettings struct {
	Listen string `yaml:"listen" default:":12543" validate:"required"`
	Remote string `yaml:"remote"`
	Prefix string `yaml:"prefix" default:"Unity" validate:"required"`
}
