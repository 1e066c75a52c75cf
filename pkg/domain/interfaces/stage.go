package interfaces

import (
	"context"

	"github.com/doorstep-hq/doorstep/pkg/domain/model"
)

// StageRepository defines the interface for Stage data access
type StageRepository interface {
	// Create creates a new stage with auto-generated ID
	Create(ctx context.Context, stage *model.Stage) (*model.Stage, error)

	// Get retrieves a stage by ID within a project
	Get(ctx context.Context, projectID, id string) (*model.Stage, error)

	// ListByProject retrieves all stages of a project ordered by order index
	ListByProject(ctx context.Context, projectID string) ([]*model.Stage, error)

	// FirstPending retrieves the first pending stage of a project by order
	// index. Returns ErrNotFound when no stage is pending.
	FirstPending(ctx context.Context, projectID string) (*model.Stage, error)

	// Update updates an existing stage
	Update(ctx context.Context, stage *model.Stage) (*model.Stage, error)
}
