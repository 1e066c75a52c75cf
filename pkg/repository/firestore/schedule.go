package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/doorstep-hq/doorstep/pkg/domain/model"
	"github.com/doorstep-hq/doorstep/pkg/domain/types"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type scheduleRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newScheduleRepository(client *firestore.Client) *scheduleRepository {
	return &scheduleRepository{client: client}
}

func (r *scheduleRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_scheduled_runs"
	}
	return "scheduled_runs"
}

func (r *scheduleRepository) Put(ctx context.Context, run *model.ScheduledRun) (*model.ScheduledRun, error) {
	now := time.Now().UTC()
	created := *run
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	if created.Status == "" {
		created.Status = types.ScheduleStatusPending
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, err := r.client.Collection(r.collection()).Doc(created.ID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to put scheduled run", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *scheduleRepository) ListDue(ctx context.Context, now time.Time) ([]*model.ScheduledRun, error) {
	iter := r.client.Collection(r.collection()).
		Where("Status", "==", string(types.ScheduleStatusPending)).
		Where("FireAt", "<=", now).
		OrderBy("FireAt", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	runs := make([]*model.ScheduledRun, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list due runs")
		}

		var run model.ScheduledRun
		if err := doc.DataTo(&run); err != nil {
			return nil, goerr.Wrap(err, "failed to decode scheduled run")
		}
		runs = append(runs, &run)
	}

	return runs, nil
}

func (r *scheduleRepository) MarkDone(ctx context.Context, id string) error {
	return r.setStatus(ctx, id, types.ScheduleStatusDone, "")
}

func (r *scheduleRepository) MarkFailed(ctx context.Context, id string, errMsg string) error {
	return r.setStatus(ctx, id, types.ScheduleStatusFailed, errMsg)
}

func (r *scheduleRepository) setStatus(ctx context.Context, id string, scheduleStatus types.ScheduleStatus, errMsg string) error {
	_, err := r.client.Collection(r.collection()).Doc(id).Update(ctx, []firestore.Update{
		{Path: "Status", Value: string(scheduleStatus)},
		{Path: "Error", Value: errMsg},
		{Path: "UpdatedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "scheduled run not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to update scheduled run", goerr.V("id", id))
	}

	return nil
}
