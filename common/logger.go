// Package common contains data shared across all monitor systems.
package common

// ILoggerProvider defines logger provider which is passed to every system.
// Fields are flat key-value pairs.
type ILoggerProvider interface {
	Debug(msg string, fields ...string)
	Info(msg string, fields ...string)
	Warn(msg string, fields ...string)
	Error(msg string, err error, fields ...string)
	Fatal(msg string, err error, fields ...string)
	Flush()
}
