package memory

import (
	"context"
	"sync"
	"time"

	"github.com/doorstep-hq/doorstep/pkg/domain/model"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

type projectRepository struct {
	mu       sync.RWMutex
	projects map[string]*model.Project
}

func newProjectRepository() *projectRepository {
	return &projectRepository{
		projects: make(map[string]*model.Project),
	}
}

// copyProject creates a deep copy of a project
func copyProject(p *model.Project) *model.Project {
	copied := *p
	if p.StartedAt != nil {
		startedAt := *p.StartedAt
		copied.StartedAt = &startedAt
	}
	if p.CompletedAt != nil {
		completedAt := *p.CompletedAt
		copied.CompletedAt = &completedAt
	}
	return &copied
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) (*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyProject(project)
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.projects[created.ID] = created
	return copyProject(created), nil
}

func (r *projectRepository) Get(ctx context.Context, id string) (*model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	project, exists := r.projects[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "project not found", goerr.V("id", id))
	}

	return copyProject(project), nil
}

func (r *projectRepository) List(ctx context.Context) ([]*model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	projects := make([]*model.Project, 0, len(r.projects))
	for _, project := range r.projects {
		projects = append(projects, copyProject(project))
	}

	return projects, nil
}

func (r *projectRepository) Update(ctx context.Context, project *model.Project) (*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.projects[project.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "project not found", goerr.V("id", project.ID))
	}

	updated := copyProject(project)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.projects[updated.ID] = updated
	return copyProject(updated), nil
}
