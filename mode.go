package finledger

import "fmt"

// Mode selects which isolated storage namespace is active.
type Mode int

const (
	// Real is the mode holding the user's actual bank data.
	Real Mode = iota
	// Demo is the mode holding generated sample data.
	Demo
)

func (m Mode) String() string {
	switch m {
	case Real:
		return "real"
	case Demo:
		return "demo"
	default:
		return "unknown"
	}
}

// ParseMode parses a string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "real":
		return Real, nil
	case "demo":
		return Demo, nil
	default:
		return 0, fmt.Errorf("unknown mode: %q", s)
	}
}
