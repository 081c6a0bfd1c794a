package logger

import (
	"io"
	"os"

	"github.com/go-home-io/device-monitor/common"
	"github.com/go-home-io/device-monitor/enums"
	"github.com/sirupsen/logrus"
)

// Logrus-backed logger.
type logrusLogger struct {
	logger *logrus.Logger
	file   *os.File
}

// ConstructLogrusLogger has data required for a new logrus logger.
type ConstructLogrusLogger struct {
	Level  enums.LogLevel
	JSON   bool
	Output io.Writer
	File   string
}

// NewLogrusLogger constructs a new logrus logger.
// File takes precedence over Output, stdout is used if neither is set.
func NewLogrusLogger(ctor *ConstructLogrusLogger) (common.ILoggerProvider, error) {
	l := logrus.New()
	p := &logrusLogger{
		logger: l,
	}

	switch {
	case "" != ctor.File:
		f, err := os.OpenFile(ctor.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, err
		}
		p.file = f
		l.Out = f
	case nil != ctor.Output:
		l.Out = ctor.Output
	default:
		l.Out = os.Stdout
	}

	if ctor.JSON {
		l.Formatter = &logrus.JSONFormatter{}
	} else {
		l.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	}

	l.Level = logrusLevel(ctor.Level)
	return p, nil
}

// Debug sends debug level message.
func (p *logrusLogger) Debug(msg string, fields ...string) {
	p.logger.WithFields(logrusFields(fields...)).Debug(msg)
}

// Info sends info level message.
func (p *logrusLogger) Info(msg string, fields ...string) {
	p.logger.WithFields(logrusFields(fields...)).Info(msg)
}

// Warn sends warning level message.
func (p *logrusLogger) Warn(msg string, fields ...string) {
	p.logger.WithFields(logrusFields(fields...)).Warn(msg)
}

// Error sends error level message.
func (p *logrusLogger) Error(msg string, err error, fields ...string) {
	p.logger.WithFields(logrusFields(fields...)).WithError(err).Error(msg)
}

// Fatal sends fatal level message and exits.
func (p *logrusLogger) Fatal(msg string, err error, fields ...string) {
	p.logger.WithFields(logrusFields(fields...)).WithError(err).Fatal(msg)
}

// Flush syncs the log file if any.
func (p *logrusLogger) Flush() {
	if nil == p.file {
		return
	}

	p.file.Sync() // nolint: gosec, errcheck
}

// Converts flat fields into logrus representation.
func logrusFields(fields ...string) logrus.Fields {
	result := logrus.Fields{}
	for k, v := range withFields(fields...) {
		result[k] = v
	}

	return result
}

// Maps monitor log levels into logrus ones.
func logrusLevel(level enums.LogLevel) logrus.Level {
	switch {
	case level <= enums.LogDebug:
		return logrus.DebugLevel
	case level <= enums.LogInfo:
		return logrus.InfoLevel
	case level <= enums.LogWarning:
		return logrus.WarnLevel
	case level <= enums.LogError:
		return logrus.ErrorLevel
	}

	return logrus.FatalLevel
}
