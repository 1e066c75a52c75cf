package model

import (
	"time"

	"github.com/doorstep-hq/doorstep/pkg/domain/types"
)

// Task represents an onboarding task within a project
type Task struct {
	ID                 string
	ProjectID          string
	StageID            string // Optional: unstaged tasks never participate in stage advancement
	Title              string
	Category           string
	Visibility         types.Visibility
	RequiresFileUpload bool
	RequiresSignature  bool
	Status             types.TaskStatus
	OrderIndex         int
	CompletedAt        *time.Time
	CompletedBy        string // "client", "staff", "automation"
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
