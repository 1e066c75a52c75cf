package interfaces

import (
	"context"

	"github.com/doorstep-hq/doorstep/pkg/domain/model"
)

// SignatureRepository defines the interface for Signature data access
type SignatureRepository interface {
	// Create creates a new signature with auto-generated ID
	Create(ctx context.Context, signature *model.Signature) (*model.Signature, error)

	// Get retrieves a signature by ID within a project
	Get(ctx context.Context, projectID, id string) (*model.Signature, error)

	// GetByID retrieves a signature by ID alone. The signing portal addresses
	// signatures without knowing the owning project.
	GetByID(ctx context.Context, id string) (*model.Signature, error)

	// ListByProject retrieves all signatures of a project
	ListByProject(ctx context.Context, projectID string) ([]*model.Signature, error)

	// Update updates an existing signature
	Update(ctx context.Context, signature *model.Signature) (*model.Signature, error)
}
