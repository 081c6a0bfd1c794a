package reporting

import "fmt"

// ErrUnexpectedStatus defines non-successful collector response.
type ErrUnexpectedStatus struct {
	Code int
}

// Error formats output.
func (e *ErrUnexpectedStatus) Error() string {
	return fmt.Sprintf("collector responded with status %d", e.Code)
}

// ErrNoServerURL defines missing collector address.
type ErrNoServerURL struct {
}

// Error formats output.
func (*ErrNoServerURL) Error() string {
	return "collector server URL is not set"
}
