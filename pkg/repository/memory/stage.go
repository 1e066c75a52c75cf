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

type stageRepository struct {
	mu     sync.RWMutex
	stages map[string]map[string]*model.Stage // projectID -> stageID -> stage
}

func newStageRepository() *stageRepository {
	return &stageRepository{
		stages: make(map[string]map[string]*model.Stage),
	}
}

func (r *stageRepository) ensureProject(projectID string) {
	if _, exists := r.stages[projectID]; !exists {
		r.stages[projectID] = make(map[string]*model.Stage)
	}
}

// copyStage creates a deep copy of a stage
func copyStage(s *model.Stage) *model.Stage {
	copied := *s
	return &copied
}

func sortStages(stages []*model.Stage) {
	sort.Slice(stages, func(i, j int) bool {
		return stages[i].OrderIndex < stages[j].OrderIndex
	})
}

func (r *stageRepository) Create(ctx context.Context, stage *model.Stage) (*model.Stage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureProject(stage.ProjectID)

	now := time.Now().UTC()
	created := copyStage(stage)
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.stages[created.ProjectID][created.ID] = created
	return copyStage(created), nil
}

func (r *stageRepository) Get(ctx context.Context, projectID, id string) (*model.Stage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	proj, exists := r.stages[projectID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "stage not found", goerr.V("id", id))
	}

	stage, exists := proj[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "stage not found", goerr.V("id", id))
	}

	return copyStage(stage), nil
}

func (r *stageRepository) ListByProject(ctx context.Context, projectID string) ([]*model.Stage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	proj, exists := r.stages[projectID]
	if !exists {
		return []*model.Stage{}, nil
	}

	stages := make([]*model.Stage, 0, len(proj))
	for _, stage := range proj {
		stages = append(stages, copyStage(stage))
	}
	sortStages(stages)

	return stages, nil
}

func (r *stageRepository) FirstPending(ctx context.Context, projectID string) (*model.Stage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	proj, exists := r.stages[projectID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "no pending stage", goerr.V("project_id", projectID))
	}

	var first *model.Stage
	for _, stage := range proj {
		if stage.Status != types.StageStatusPending {
			continue
		}
		if first == nil || stage.OrderIndex < first.OrderIndex {
			first = stage
		}
	}
	if first == nil {
		return nil, goerr.Wrap(ErrNotFound, "no pending stage", goerr.V("project_id", projectID))
	}

	return copyStage(first), nil
}

func (r *stageRepository) Update(ctx context.Context, stage *model.Stage) (*model.Stage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	proj, exists := r.stages[stage.ProjectID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "stage not found", goerr.V("id", stage.ID))
	}

	existing, exists := proj[stage.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "stage not found", goerr.V("id", stage.ID))
	}

	updated := copyStage(stage)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.stages[updated.ProjectID][updated.ID] = updated
	return copyStage(updated), nil
}
