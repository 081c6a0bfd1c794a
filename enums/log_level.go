package enums

import (
	"fmt"
	"strconv"
	"strings"
)

// LogLevel describes collector log message severity.
// Numeric values are sent on the wire.
type LogLevel int

const (
	// LogDebug describes debug messages.
	LogDebug LogLevel = 10000
	// LogInfo describes info messages.
	LogInfo LogLevel = 20000
	// LogWarning describes warnings.
	LogWarning LogLevel = 30000
	// LogError describes errors.
	LogError LogLevel = 40000
	// LogFatal describes fatal errors.
	LogFatal LogLevel = 50000
)

// String returns human-readable level name.
func (l LogLevel) String() string {
	switch l {
	case LogDebug:
		return "debug"
	case LogInfo:
		return "info"
	case LogWarning:
		return "warning"
	case LogError:
		return "error"
	case LogFatal:
		return "fatal"
	}

	return strconv.Itoa(int(l))
}

// LogLevelString parses level either from the name or from the numeric value.
func LogLevelString(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "dbg":
		return LogDebug, nil
	case "info", "":
		return LogInfo, nil
	case "warning", "warn":
		return LogWarning, nil
	case "error", "err":
		return LogError, nil
	case "fatal":
		return LogFatal, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return LogInfo, fmt.Errorf("%s is not a valid log level", s)
	}

	return LogLevel(n), nil
}

// UnmarshalYAML allows both names and numbers in config files.
func (l *LogLevel) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}

	lvl, err := LogLevelString(s)
	if err != nil {
		return err
	}

	*l = lvl
	return nil
}
