package model

import (
	"time"

	"github.com/doorstep-hq/doorstep/pkg/domain/types"
)

// ScheduledRun is a delayed automation evaluation queued by the dispatcher.
// The sweeper re-evaluates the rule against current state once FireAt passes;
// trigger conditions are NOT snapshotted at enqueue time.
type ScheduledRun struct {
	ID           string
	AutomationID string
	ProjectID    string
	Event        TriggerEvent
	FireAt       time.Time
	Status       types.ScheduleStatus
	Error        string // Populated when Status is failed
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
