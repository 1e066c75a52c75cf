package types

import "fmt"

// ExecStatus represents the outcome of one automation rule evaluation
type ExecStatus string

const (
	ExecStatusSuccess ExecStatus = "success"
	ExecStatusFailed  ExecStatus = "failed"
	ExecStatusSkipped ExecStatus = "skipped"
)

// AllExecStatuses returns all valid execution statuses
func AllExecStatuses() []ExecStatus {
	return []ExecStatus{
		ExecStatusSuccess,
		ExecStatusFailed,
		ExecStatusSkipped,
	}
}

// IsValid checks if the execution status is valid
func (s ExecStatus) IsValid() bool {
	switch s {
	case ExecStatusSuccess,
		ExecStatusFailed,
		ExecStatusSkipped:
		return true
	default:
		return false
	}
}

// String returns the string representation of the execution status
func (s ExecStatus) String() string {
	return string(s)
}

// ParseExecStatus parses a string into an ExecStatus
func ParseExecStatus(s string) (ExecStatus, error) {
	status := ExecStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid execution status: %s", s)
	}
	return status, nil
}
