package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/doorstep-hq/doorstep/pkg/domain/model"
	"github.com/doorstep-hq/doorstep/pkg/domain/types"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

type automationRepository struct {
	mu          sync.RWMutex
	automations map[string]*model.Automation
}

func newAutomationRepository() *automationRepository {
	return &automationRepository{
		automations: make(map[string]*model.Automation),
	}
}

// copyAutomation creates a deep copy of an automation rule
func copyAutomation(a *model.Automation) *model.Automation {
	copied := *a
	return &copied
}

func sortAutomations(automations []*model.Automation) {
	sort.Slice(automations, func(i, j int) bool {
		if automations[i].OrderIndex != automations[j].OrderIndex {
			return automations[i].OrderIndex < automations[j].OrderIndex
		}
		return automations[i].CreatedAt.Before(automations[j].CreatedAt)
	})
}

func (r *automationRepository) Create(ctx context.Context, automation *model.Automation) (*model.Automation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyAutomation(automation)
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.automations[created.ID] = created
	return copyAutomation(created), nil
}

func (r *automationRepository) Get(ctx context.Context, id string) (*model.Automation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	automation, exists := r.automations[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "automation not found", goerr.V("id", id))
	}

	return copyAutomation(automation), nil
}

func (r *automationRepository) ListByTemplate(ctx context.Context, templateID string) ([]*model.Automation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	automations := make([]*model.Automation, 0)
	for _, automation := range r.automations {
		if automation.TemplateID == templateID {
			automations = append(automations, copyAutomation(automation))
		}
	}
	sortAutomations(automations)

	return automations, nil
}

func (r *automationRepository) ListActiveByTrigger(ctx context.Context, templateID string, trigger types.TriggerType) ([]*model.Automation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	automations := make([]*model.Automation, 0)
	for _, automation := range r.automations {
		if automation.TemplateID == templateID && automation.Active && automation.Trigger == trigger {
			automations = append(automations, copyAutomation(automation))
		}
	}
	sortAutomations(automations)

	return automations, nil
}

func (r *automationRepository) Update(ctx context.Context, automation *model.Automation) (*model.Automation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.automations[automation.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "automation not found", goerr.V("id", automation.ID))
	}

	updated := copyAutomation(automation)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.automations[updated.ID] = updated
	return copyAutomation(updated), nil
}

func (r *automationRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.automations[id]; !exists {
		return goerr.Wrap(ErrNotFound, "automation not found", goerr.V("id", id))
	}

	delete(r.automations, id)
	return nil
}
