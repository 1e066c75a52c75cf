package types

import "fmt"

// ScheduleStatus represents the state of a delayed automation run
type ScheduleStatus string

const (
	ScheduleStatusPending ScheduleStatus = "pending"
	ScheduleStatusDone    ScheduleStatus = "done"
	ScheduleStatusFailed  ScheduleStatus = "failed"
)

// AllScheduleStatuses returns all valid schedule statuses
func AllScheduleStatuses() []ScheduleStatus {
	return []ScheduleStatus{
		ScheduleStatusPending,
		ScheduleStatusDone,
		ScheduleStatusFailed,
	}
}

// IsValid checks if the schedule status is valid
func (s ScheduleStatus) IsValid() bool {
	switch s {
	case ScheduleStatusPending,
		ScheduleStatusDone,
		ScheduleStatusFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation of the schedule status
func (s ScheduleStatus) String() string {
	return string(s)
}

// ParseScheduleStatus parses a string into a ScheduleStatus
func ParseScheduleStatus(s string) (ScheduleStatus, error) {
	status := ScheduleStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid schedule status: %s", s)
	}
	return status, nil
}
