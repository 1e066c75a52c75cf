package types

import "fmt"

// RecipientType selects whose email address a send_email action resolves
type RecipientType string

const (
	RecipientClient RecipientType = "client"
	RecipientStaff  RecipientType = "staff"
)

// AllRecipientTypes returns all valid recipient types
func AllRecipientTypes() []RecipientType {
	return []RecipientType{
		RecipientClient,
		RecipientStaff,
	}
}

// IsValid checks if the recipient type is valid
func (r RecipientType) IsValid() bool {
	switch r {
	case RecipientClient, RecipientStaff:
		return true
	default:
		return false
	}
}

// String returns the string representation of the recipient type
func (r RecipientType) String() string {
	return string(r)
}

// ParseRecipientType parses a string into a RecipientType
func ParseRecipientType(s string) (RecipientType, error) {
	recipient := RecipientType(s)
	if !recipient.IsValid() {
		return "", fmt.Errorf("invalid recipient type: %s", s)
	}
	return recipient, nil
}
