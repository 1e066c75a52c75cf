package types

import "fmt"

// SignatureMethod is how the signer produced the signature
type SignatureMethod string

const (
	SignatureMethodDrawn SignatureMethod = "drawn"
	SignatureMethodTyped SignatureMethod = "typed"
)

// AllSignatureMethods returns all valid signature methods
func AllSignatureMethods() []SignatureMethod {
	return []SignatureMethod{
		SignatureMethodDrawn,
		SignatureMethodTyped,
	}
}

// IsValid checks if the signature method is valid
func (m SignatureMethod) IsValid() bool {
	switch m {
	case SignatureMethodDrawn, SignatureMethodTyped:
		return true
	default:
		return false
	}
}

// String returns the string representation of the signature method
func (m SignatureMethod) String() string {
	return string(m)
}

// ParseSignatureMethod parses a string into a SignatureMethod
func ParseSignatureMethod(s string) (SignatureMethod, error) {
	method := SignatureMethod(s)
	if !method.IsValid() {
		return "", fmt.Errorf("invalid signature method: %s", s)
	}
	return method, nil
}
