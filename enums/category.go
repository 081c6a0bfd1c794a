package enums

import (
	"fmt"
	"strings"
)

// Category describes device path prefix.
type Category int

const (
	// CatNetwork describes network devices.
	CatNetwork Category = iota
	// CatSpot describes display spots.
	CatSpot
	// CatWATCHOUT describes WATCHOUT clusters.
	CatWATCHOUT
)

// String returns path prefix.
func (c Category) String() string {
	switch c {
	case CatNetwork:
		return "Network"
	case CatSpot:
		return "Spot"
	case CatWATCHOUT:
		return "WATCHOUT"
	}

	return fmt.Sprintf("Category(%d)", c)
}

// CategoryString parses category name, case-insensitive.
func CategoryString(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "network":
		return CatNetwork, nil
	case "spot", "spots":
		return CatSpot, nil
	case "watchout":
		return CatWATCHOUT, nil
	}

	return CatNetwork, fmt.Errorf("%s does not belong to Category values", s)
}

// Path builds device path for the name.
func (c Category) Path(name string) string {
	return c.String() + "." + name
}

// UnmarshalYAML parses category from config files.
func (c *Category) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}

	cat, err := CategoryString(s)
	if err != nil {
		return err
	}

	*c = cat
	return nil
}
