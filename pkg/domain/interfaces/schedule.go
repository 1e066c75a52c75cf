package interfaces

import (
	"context"
	"time"

	"github.com/doorstep-hq/doorstep/pkg/domain/model"
)

// ScheduleRepository defines the interface for delayed automation runs
type ScheduleRepository interface {
	// Put stores a scheduled run
	Put(ctx context.Context, run *model.ScheduledRun) (*model.ScheduledRun, error)

	// ListDue retrieves pending runs whose fire time is at or before now
	ListDue(ctx context.Context, now time.Time) ([]*model.ScheduledRun, error)

	// MarkDone marks a run as executed
	MarkDone(ctx context.Context, id string) error

	// MarkFailed marks a run as failed with an error message
	MarkFailed(ctx context.Context, id string, errMsg string) error
}
