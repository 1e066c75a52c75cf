package model

import (
	"time"

	"github.com/doorstep-hq/doorstep/pkg/domain/types"
)

// ActionResult describes what an executed action did (or deliberately did not do)
type ActionResult struct {
	Action  types.ActionType
	Target  string // Task title, stage name, recipient address, or project status
	Skipped bool   // True when the target was already in the desired state
	Reason  string // Human-readable reason when skipped
	Detail  string
}

// ExecutionLog is an immutable record of one (automation, event) evaluation.
// Entries are created by the dispatcher only and never updated or deleted.
type ExecutionLog struct {
	ID           string
	AutomationID string
	ProjectID    string
	Event        TriggerEvent
	Result       *ActionResult // Nil for failed or delayed evaluations
	Status       types.ExecStatus
	Error        string // Populated when Status is failed
	CreatedAt    time.Time
}
