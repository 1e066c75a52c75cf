package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/doorstep-hq/doorstep/pkg/domain/model"
	"github.com/google/uuid"
)

type executionRepository struct {
	mu      sync.RWMutex
	entries map[string]*model.ExecutionLog
}

func newExecutionRepository() *executionRepository {
	return &executionRepository{
		entries: make(map[string]*model.ExecutionLog),
	}
}

// copyExecutionLog creates a deep copy of an execution log entry
func copyExecutionLog(e *model.ExecutionLog) *model.ExecutionLog {
	copied := *e
	if e.Result != nil {
		result := *e.Result
		copied.Result = &result
	}
	return &copied
}

func sortExecutionLogs(entries []*model.ExecutionLog) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
}

func (r *executionRepository) Put(ctx context.Context, entry *model.ExecutionLog) (*model.ExecutionLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyExecutionLog(entry)
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.entries[created.ID] = created
	return copyExecutionLog(created), nil
}

func (r *executionRepository) ListByProject(ctx context.Context, projectID string) ([]*model.ExecutionLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]*model.ExecutionLog, 0)
	for _, entry := range r.entries {
		if entry.ProjectID == projectID {
			entries = append(entries, copyExecutionLog(entry))
		}
	}
	sortExecutionLogs(entries)

	return entries, nil
}

func (r *executionRepository) ListByAutomation(ctx context.Context, automationID string) ([]*model.ExecutionLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]*model.ExecutionLog, 0)
	for _, entry := range r.entries {
		if entry.AutomationID == automationID {
			entries = append(entries, copyExecutionLog(entry))
		}
	}
	sortExecutionLogs(entries)

	return entries, nil
}
