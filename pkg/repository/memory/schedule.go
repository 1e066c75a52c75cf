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

type scheduleRepository struct {
	mu   sync.RWMutex
	runs map[string]*model.ScheduledRun
}

func newScheduleRepository() *scheduleRepository {
	return &scheduleRepository{
		runs: make(map[string]*model.ScheduledRun),
	}
}

// copyScheduledRun creates a deep copy of a scheduled run
func copyScheduledRun(s *model.ScheduledRun) *model.ScheduledRun {
	copied := *s
	return &copied
}

func (r *scheduleRepository) Put(ctx context.Context, run *model.ScheduledRun) (*model.ScheduledRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyScheduledRun(run)
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	if created.Status == "" {
		created.Status = types.ScheduleStatusPending
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.runs[created.ID] = created
	return copyScheduledRun(created), nil
}

func (r *scheduleRepository) ListDue(ctx context.Context, now time.Time) ([]*model.ScheduledRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	runs := make([]*model.ScheduledRun, 0)
	for _, run := range r.runs {
		if run.Status == types.ScheduleStatusPending && !run.FireAt.After(now) {
			runs = append(runs, copyScheduledRun(run))
		}
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].FireAt.Before(runs[j].FireAt)
	})

	return runs, nil
}

func (r *scheduleRepository) MarkDone(ctx context.Context, id string) error {
	return r.setStatus(id, types.ScheduleStatusDone, "")
}

func (r *scheduleRepository) MarkFailed(ctx context.Context, id string, errMsg string) error {
	return r.setStatus(id, types.ScheduleStatusFailed, errMsg)
}

func (r *scheduleRepository) setStatus(id string, status types.ScheduleStatus, errMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, exists := r.runs[id]
	if !exists {
		return goerr.Wrap(ErrNotFound, "scheduled run not found", goerr.V("id", id))
	}

	run.Status = status
	run.Error = errMsg
	run.UpdatedAt = time.Now().UTC()
	return nil
}
