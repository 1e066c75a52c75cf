package types

import "fmt"

// StageStatus represents the status of an onboarding stage
type StageStatus string

const (
	StageStatusPending   StageStatus = "pending"
	StageStatusActive    StageStatus = "active"
	StageStatusCompleted StageStatus = "completed"
	StageStatusArchived  StageStatus = "archived"
)

// AllStageStatuses returns all valid stage statuses
func AllStageStatuses() []StageStatus {
	return []StageStatus{
		StageStatusPending,
		StageStatusActive,
		StageStatusCompleted,
		StageStatusArchived,
	}
}

// IsValid checks if the stage status is valid
func (s StageStatus) IsValid() bool {
	switch s {
	case StageStatusPending,
		StageStatusActive,
		StageStatusCompleted,
		StageStatusArchived:
		return true
	default:
		return false
	}
}

// String returns the string representation of the stage status
func (s StageStatus) String() string {
	return string(s)
}

// ParseStageStatus parses a string into a StageStatus
func ParseStageStatus(s string) (StageStatus, error) {
	status := StageStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid stage status: %s", s)
	}
	return status, nil
}
