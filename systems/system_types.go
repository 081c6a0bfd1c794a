// Package systems contains known config record systems.
package systems

import (
	"fmt"
	"strings"
)

// SystemType is an enum describing known system types.
type SystemType int

const (
	// SysMonitor describes monitoring engine settings.
	SysMonitor SystemType = iota
	// SysLogger describes logger system.
	SysLogger
	// SysAPI describes control API system.
	SysAPI
	// SysDevice describes host device record.
	SysDevice
	// SysMapper describes input mapper record.
	SysMapper
	// SysRegister describes start-up registration record.
	SysRegister
	// SysUnity describes application variable sync connection.
	SysUnity
)

var systemTypeNames = []string{"monitor", "logger", "api", "device", "mapper", "register", "unity"}

// String returns config representation of the system.
func (i SystemType) String() string {
	if i < 0 || int(i) >= len(systemTypeNames) {
		return fmt.Sprintf("SystemType(%d)", i)
	}

	return systemTypeNames[i]
}

// SystemTypeString retrieves an enum value from the config name.
func SystemTypeString(s string) (SystemType, error) {
	s = strings.ToLower(s)
	for k, v := range systemTypeNames {
		if v == s {
			return SystemType(k), nil
		}
	}

	return 0, fmt.Errorf("%s does not belong to SystemType values", s)
}
