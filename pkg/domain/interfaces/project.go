package interfaces

import (
	"context"

	"github.com/doorstep-hq/doorstep/pkg/domain/model"
)

// ProjectRepository defines the interface for Project data access
type ProjectRepository interface {
	// Create creates a new project with auto-generated ID
	Create(ctx context.Context, project *model.Project) (*model.Project, error)

	// Get retrieves a project by ID
	Get(ctx context.Context, id string) (*model.Project, error)

	// List retrieves all projects
	List(ctx context.Context) ([]*model.Project, error)

	// Update updates an existing project
	Update(ctx context.Context, project *model.Project) (*model.Project, error)
}
