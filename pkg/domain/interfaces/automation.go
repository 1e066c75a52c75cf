package interfaces

import (
	"context"

	"github.com/doorstep-hq/doorstep/pkg/domain/model"
	"github.com/doorstep-hq/doorstep/pkg/domain/types"
)

// AutomationRepository defines the interface for Automation rule data access
type AutomationRepository interface {
	// Create creates a new automation rule with auto-generated ID.
	// The rule must already be validated.
	Create(ctx context.Context, automation *model.Automation) (*model.Automation, error)

	// Get retrieves an automation by ID
	Get(ctx context.Context, id string) (*model.Automation, error)

	// ListByTemplate retrieves all automations of a template
	ListByTemplate(ctx context.Context, templateID string) ([]*model.Automation, error)

	// ListActiveByTrigger retrieves active automations of a template matching
	// a trigger type, ordered by order index
	ListActiveByTrigger(ctx context.Context, templateID string, trigger types.TriggerType) ([]*model.Automation, error)

	// Update updates an existing automation
	Update(ctx context.Context, automation *model.Automation) (*model.Automation, error)

	// Delete deletes an automation by ID
	Delete(ctx context.Context, id string) error
}
