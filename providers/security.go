package providers

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// ISecurityProvider defines control API authorization provider.
type ISecurityProvider interface {
	Enabled() bool
	GetUser(headers map[string][]string) (IAuthenticatedUser, error)
}

// IAuthenticatedUser describes authenticated user.
type IAuthenticatedUser interface {
	Name() string
	Get(resource string) bool
	Command(resource string) bool
}

// SecVerb describes allowed rules for the role.
type SecVerb int

const (
	// SecVerbAll describes all allowed operation rules.
	SecVerbAll SecVerb = iota
	// SecVerbGet describes read-only operation rule.
	SecVerbGet
	// SecVerbCommand describes state-changing operation rule.
	SecVerbCommand
)

// String returns verb name.
func (v SecVerb) String() string {
	switch v {
	case SecVerbAll:
		return "*"
	case SecVerbGet:
		return "get"
	case SecVerbCommand:
		return "command"
	}

	return fmt.Sprintf("SecVerb(%d)", v)
}

// SecVerbString parses verb name.
func SecVerbString(s string) (SecVerb, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "*", "all":
		return SecVerbAll, nil
	case "get":
		return SecVerbGet, nil
	case "command":
		return SecVerbCommand, nil
	}

	return SecVerbAll, fmt.Errorf("%s does not belong to SecVerb values", s)
}

// SecRoleRule has data, describing single security rule.
// Resources are glob patterns matched against device or property paths.
type SecRoleRule struct {
	Resources []string `yaml:"resources" validate:"unique,min=1"`
	Verbs     []string `yaml:"verbs" validate:"unique,min=1,dive,oneof=* get command"`
}

// SecRole has data, describing single security role.
type SecRole struct {
	Name  string        `yaml:"name" validate:"required"`
	Users []string      `yaml:"users" validate:"unique,min=1"`
	Rules []SecRoleRule `yaml:"rules" validate:"min=1,dive"`
}

// BakedRule has pre-compiled rule.
type BakedRule struct {
	Resources []glob.Glob
	Get       bool
	Command   bool
}
