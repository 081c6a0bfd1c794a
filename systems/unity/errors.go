package unity

// ErrBadRemote defines application address which can't be resolved.
type ErrBadRemote struct {
	Remote string
}

// Error formats output.
func (e *ErrBadRemote) Error() string {
	return "can't resolve application address " + e.Remote
}
