package types

import "fmt"

// ProjectStatus represents the lifecycle status of an onboarding project
type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "draft"
	ProjectStatusPending   ProjectStatus = "pending"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusArchived  ProjectStatus = "archived"
)

// AllProjectStatuses returns all valid project statuses
func AllProjectStatuses() []ProjectStatus {
	return []ProjectStatus{
		ProjectStatusDraft,
		ProjectStatusPending,
		ProjectStatusActive,
		ProjectStatusCompleted,
		ProjectStatusArchived,
	}
}

// IsValid checks if the project status is valid
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusDraft,
		ProjectStatusPending,
		ProjectStatusActive,
		ProjectStatusCompleted,
		ProjectStatusArchived:
		return true
	default:
		return false
	}
}

// String returns the string representation of the project status
func (s ProjectStatus) String() string {
	return string(s)
}

// ParseProjectStatus parses a string into a ProjectStatus
func ParseProjectStatus(s string) (ProjectStatus, error) {
	status := ProjectStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid project status: %s", s)
	}
	return status, nil
}
