package interfaces

import (
	"context"

	"github.com/doorstep-hq/doorstep/pkg/domain/model"
)

// ExecutionRepository defines the interface for the execution audit log.
// The log is append-only: there is no update or delete.
type ExecutionRepository interface {
	// Put appends an execution log entry
	Put(ctx context.Context, entry *model.ExecutionLog) (*model.ExecutionLog, error)

	// ListByProject retrieves execution log entries of a project, newest first
	ListByProject(ctx context.Context, projectID string) ([]*model.ExecutionLog, error)

	// ListByAutomation retrieves execution log entries of one automation, newest first
	ListByAutomation(ctx context.Context, automationID string) ([]*model.ExecutionLog, error)
}
