package model

import (
	"time"

	"github.com/doorstep-hq/doorstep/pkg/domain/types"
)

// Stage represents an ordered phase of an onboarding project
type Stage struct {
	ID         string
	ProjectID  string
	Name       string
	Status     types.StageStatus
	OrderIndex int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
