package server

import "fmt"

// ErrUnknownDevice defines unknown monitored device error.
type ErrUnknownDevice struct {
	Path string
}

// Error formats output.
func (e *ErrUnknownDevice) Error() string {
	return fmt.Sprintf("device %s is not monitored", e.Path)
}

// ErrUnknownCategory defines unknown device category error.
type ErrUnknownCategory struct {
	Name string
}

// Error formats output.
func (e *ErrUnknownCategory) Error() string {
	return fmt.Sprintf("category %s is unknown", e.Name)
}

// ErrBadRequest defines generic request error.
type ErrBadRequest struct {
	Reason string
}

// Error formats output.
func (e *ErrBadRequest) Error() string {
	if "" == e.Reason {
		return "bad request"
	}

	return "bad request: " + e.Reason
}
