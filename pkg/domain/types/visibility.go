package types

import "fmt"

// Visibility controls whether a task is shown on the client portal
type Visibility string

const (
	VisibilityInternal Visibility = "internal"
	VisibilityExternal Visibility = "external"
)

// AllVisibilities returns all valid visibilities
func AllVisibilities() []Visibility {
	return []Visibility{
		VisibilityInternal,
		VisibilityExternal,
	}
}

// IsValid checks if the visibility is valid
func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityInternal, VisibilityExternal:
		return true
	default:
		return false
	}
}

// String returns the string representation of the visibility
func (v Visibility) String() string {
	return string(v)
}

// ParseVisibility parses a string into a Visibility
func ParseVisibility(s string) (Visibility, error) {
	visibility := Visibility(s)
	if !visibility.IsValid() {
		return "", fmt.Errorf("invalid visibility: %s", s)
	}
	return visibility, nil
}
