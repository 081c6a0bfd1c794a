// Package logger provides system loggers.
package logger

import (
	"github.com/go-home-io/device-monitor/common"
	"github.com/go-home-io/device-monitor/enums"
	"github.com/go-home-io/device-monitor/providers"
)

const (
	// Console logger provider.
	providerConsole = "console"
	// Logrus logger provider.
	providerLogrus = "logrus"
)

// Logger provider wrapper implementation.
type provider struct {
	logger common.ILoggerProvider
	nodeID string
}

// ConstructLogger has data required for a new logger.
type ConstructLogger struct {
	Settings *providers.LoggerSettings
	NodeID   string
}

// NewLoggerProvider constructs a new system logger.
func NewLoggerProvider(ctor *ConstructLogger) (common.ILoggerProvider, error) {
	level, err := enums.LogLevelString(ctor.Settings.Level)
	if err != nil {
		return nil, err
	}

	prov := provider{
		nodeID: ctor.NodeID,
	}

	switch ctor.Settings.Provider {
	case providerLogrus:
		prov.logger, err = NewLogrusLogger(&ConstructLogrusLogger{
			Level: level,
			JSON:  "json" == ctor.Settings.Format,
			File:  ctor.Settings.File,
		})
		if err != nil {
			return nil, err
		}
	case providerConsole, "":
		prov.logger = NewConsoleLogger(level)
	default:
		return nil, &ErrUnknownProvider{Name: ctor.Settings.Provider}
	}

	return &prov, nil
}

// Debug sends debug level message.
func (p *provider) Debug(msg string, fields ...string) {
	p.logger.Debug(msg, p.prepareFields(fields...)...)
}

// Info sends info level message.
func (p *provider) Info(msg string, fields ...string) {
	p.logger.Info(msg, p.prepareFields(fields...)...)
}

// Warn sends warning level message.
func (p *provider) Warn(msg string, fields ...string) {
	p.logger.Warn(msg, p.prepareFields(fields...)...)
}

// Error sends error level message.
func (p *provider) Error(msg string, err error, fields ...string) {
	p.logger.Error(msg, err, p.prepareFields(fields...)...)
}

// Fatal sends fatal level message and exits.
func (p *provider) Fatal(msg string, err error, fields ...string) {
	p.logger.Fatal(msg, err, p.prepareFields(fields...)...)
}

// Flush flushes logger buffer if any.
func (p *provider) Flush() {
	p.logger.Flush()
}

// Extending logger fields with current node ID.
func (p *provider) prepareFields(fields ...string) []string {
	if "" == p.nodeID {
		return fields
	}

	return append(fields, "node", p.nodeID)
}
