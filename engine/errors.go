package engine

import (
	"fmt"
	"time"
)

// ErrHealthCheckTimeout defines health sweep which did not finish in time.
type ErrHealthCheckTimeout struct {
	Timeout time.Duration
	Checked int
	Total   int
}

// Error formats output.
func (e *ErrHealthCheckTimeout) Error() string {
	return fmt.Sprintf("health check took longer than %d seconds! (%d of %d checked)",
		int(e.Timeout.Seconds()), e.Checked, e.Total)
}

// ErrUnknownDevice defines device missing in the host inventory.
type ErrUnknownDevice struct {
	Name string
}

// Error formats output.
func (e *ErrUnknownDevice) Error() string {
	return "no device found:" + e.Name
}

// ErrUnsupportedDevice defines device without monitoring capability.
type ErrUnsupportedDevice struct {
	Name string
}

// Error formats output.
func (e *ErrUnsupportedDevice) Error() string {
	return "device is not supported:" + e.Name
}
