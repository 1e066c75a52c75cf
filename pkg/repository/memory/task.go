package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/doorstep-hq/doorstep/pkg/domain/model"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

type taskRepository struct {
	mu    sync.RWMutex
	tasks map[string]map[string]*model.Task // projectID -> taskID -> task
}

func newTaskRepository() *taskRepository {
	return &taskRepository{
		tasks: make(map[string]map[string]*model.Task),
	}
}

func (r *taskRepository) ensureProject(projectID string) {
	if _, exists := r.tasks[projectID]; !exists {
		r.tasks[projectID] = make(map[string]*model.Task)
	}
}

// copyTask creates a deep copy of a task
func copyTask(t *model.Task) *model.Task {
	copied := *t
	if t.CompletedAt != nil {
		completedAt := *t.CompletedAt
		copied.CompletedAt = &completedAt
	}
	return &copied
}

func sortTasks(tasks []*model.Task) {
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].OrderIndex != tasks[j].OrderIndex {
			return tasks[i].OrderIndex < tasks[j].OrderIndex
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureProject(task.ProjectID)

	now := time.Now().UTC()
	created := copyTask(task)
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.tasks[created.ProjectID][created.ID] = created
	return copyTask(created), nil
}

func (r *taskRepository) Get(ctx context.Context, projectID, id string) (*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	proj, exists := r.tasks[projectID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", id))
	}

	task, exists := proj[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", id))
	}

	return copyTask(task), nil
}

func (r *taskRepository) ListByProject(ctx context.Context, projectID string) ([]*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	proj, exists := r.tasks[projectID]
	if !exists {
		return []*model.Task{}, nil
	}

	tasks := make([]*model.Task, 0, len(proj))
	for _, task := range proj {
		tasks = append(tasks, copyTask(task))
	}
	sortTasks(tasks)

	return tasks, nil
}

func (r *taskRepository) ListByStage(ctx context.Context, projectID, stageID string) ([]*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	proj, exists := r.tasks[projectID]
	if !exists {
		return []*model.Task{}, nil
	}

	tasks := make([]*model.Task, 0)
	for _, task := range proj {
		if task.StageID == stageID {
			tasks = append(tasks, copyTask(task))
		}
	}
	sortTasks(tasks)

	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, task *model.Task) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	proj, exists := r.tasks[task.ProjectID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", task.ID))
	}

	existing, exists := proj[task.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", task.ID))
	}

	updated := copyTask(task)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.tasks[updated.ProjectID][updated.ID] = updated
	return copyTask(updated), nil
}
