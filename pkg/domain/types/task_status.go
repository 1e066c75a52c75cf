package types

import "fmt"

// TaskStatus represents the status of an onboarding task
type TaskStatus string

const (
	TaskStatusPending       TaskStatus = "pending"
	TaskStatusInProgress    TaskStatus = "in_progress"
	TaskStatusWaitingClient TaskStatus = "waiting_client"
	TaskStatusCompleted     TaskStatus = "completed"
	TaskStatusSkipped       TaskStatus = "skipped"
)

// AllTaskStatuses returns all valid task statuses
func AllTaskStatuses() []TaskStatus {
	return []TaskStatus{
		TaskStatusPending,
		TaskStatusInProgress,
		TaskStatusWaitingClient,
		TaskStatusCompleted,
		TaskStatusSkipped,
	}
}

// IsValid checks if the task status is valid
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending,
		TaskStatusInProgress,
		TaskStatusWaitingClient,
		TaskStatusCompleted,
		TaskStatusSkipped:
		return true
	default:
		return false
	}
}

// IsDone reports whether the task no longer blocks its stage.
// Both completed and skipped tasks count as done for stage advancement.
func (s TaskStatus) IsDone() bool {
	return s == TaskStatusCompleted || s == TaskStatusSkipped
}

// String returns the string representation of the task status
func (s TaskStatus) String() string {
	return string(s)
}

// ParseTaskStatus parses a string into a TaskStatus
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid task status: %s", s)
	}
	return status, nil
}
