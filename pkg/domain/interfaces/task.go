package interfaces

import (
	"context"

	"github.com/doorstep-hq/doorstep/pkg/domain/model"
)

// TaskRepository defines the interface for Task data access
type TaskRepository interface {
	// Create creates a new task with auto-generated ID
	Create(ctx context.Context, task *model.Task) (*model.Task, error)

	// Get retrieves a task by ID within a project
	Get(ctx context.Context, projectID, id string) (*model.Task, error)

	// ListByProject retrieves all tasks of a project
	ListByProject(ctx context.Context, projectID string) ([]*model.Task, error)

	// ListByStage retrieves all tasks referencing a stage
	ListByStage(ctx context.Context, projectID, stageID string) ([]*model.Task, error)

	// Update updates an existing task
	Update(ctx context.Context, task *model.Task) (*model.Task, error)
}
