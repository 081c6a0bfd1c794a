package security

import (
	"github.com/go-home-io/device-monitor/providers"
)

// AuthenticatedUser has data with authenticated user.
type AuthenticatedUser struct {
	Username string
	Rules    []*providers.BakedRule
}

// Name returns the user name.
func (u *AuthenticatedUser) Name() string {
	return u.Username
}

// Get verifies whether user is allowed to read the resource.
func (u *AuthenticatedUser) Get(resource string) bool {
	return u.isAllowed(providers.SecVerbGet, resource)
}

// Command verifies whether user is allowed to change the resource.
func (u *AuthenticatedUser) Command(resource string) bool {
	return u.isAllowed(providers.SecVerbCommand, resource)
}

// Checks whether operation is allowed according to the received rules.
func (u *AuthenticatedUser) isAllowed(verb providers.SecVerb, resource string) bool {
	for _, v := range u.Rules {
		if providers.SecVerbGet == verb && !v.Get {
			continue
		}

		if providers.SecVerbCommand == verb && !v.Command {
			continue
		}

		for _, r := range v.Resources {
			if r.Match(resource) {
				return true
			}
		}
	}

	return false
}
