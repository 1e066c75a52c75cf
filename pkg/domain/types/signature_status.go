package types

import "fmt"

// SignatureStatus represents the status of an e-signature request
type SignatureStatus string

const (
	SignatureStatusPending  SignatureStatus = "pending"
	SignatureStatusSent     SignatureStatus = "sent"
	SignatureStatusViewed   SignatureStatus = "viewed"
	SignatureStatusSigned   SignatureStatus = "signed"
	SignatureStatusDeclined SignatureStatus = "declined"
)

// AllSignatureStatuses returns all valid signature statuses
func AllSignatureStatuses() []SignatureStatus {
	return []SignatureStatus{
		SignatureStatusPending,
		SignatureStatusSent,
		SignatureStatusViewed,
		SignatureStatusSigned,
		SignatureStatusDeclined,
	}
}

// IsValid checks if the signature status is valid
func (s SignatureStatus) IsValid() bool {
	switch s {
	case SignatureStatusPending,
		SignatureStatusSent,
		SignatureStatusViewed,
		SignatureStatusSigned,
		SignatureStatusDeclined:
		return true
	default:
		return false
	}
}

// IsSignable reports whether a signature in this status can still be signed.
// Signed and declined are terminal.
func (s SignatureStatus) IsSignable() bool {
	switch s {
	case SignatureStatusPending, SignatureStatusSent, SignatureStatusViewed:
		return true
	default:
		return false
	}
}

// String returns the string representation of the signature status
func (s SignatureStatus) String() string {
	return string(s)
}

// ParseSignatureStatus parses a string into a SignatureStatus
func ParseSignatureStatus(s string) (SignatureStatus, error) {
	status := SignatureStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid signature status: %s", s)
	}
	return status, nil
}
