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

type stageRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newStageRepository(client *firestore.Client) *stageRepository {
	return &stageRepository{client: client}
}

func (r *stageRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_stages"
	}
	return "stages"
}

func (r *stageRepository) Create(ctx context.Context, stage *model.Stage) (*model.Stage, error) {
	now := time.Now().UTC()
	created := *stage
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, err := r.client.Collection(r.collection()).Doc(created.ID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create stage", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *stageRepository) Get(ctx context.Context, projectID, id string) (*model.Stage, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "stage not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get stage", goerr.V("id", id))
	}

	var stage model.Stage
	if err := docSnap.DataTo(&stage); err != nil {
		return nil, goerr.Wrap(err, "failed to decode stage", goerr.V("id", id))
	}
	if stage.ProjectID != projectID {
		return nil, goerr.Wrap(ErrNotFound, "stage not found", goerr.V("id", id))
	}

	return &stage, nil
}

func (r *stageRepository) ListByProject(ctx context.Context, projectID string) ([]*model.Stage, error) {
	iter := r.client.Collection(r.collection()).
		Where("ProjectID", "==", projectID).
		OrderBy("OrderIndex", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	stages := make([]*model.Stage, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list stages")
		}

		var stage model.Stage
		if err := doc.DataTo(&stage); err != nil {
			return nil, goerr.Wrap(err, "failed to decode stage")
		}
		stages = append(stages, &stage)
	}

	return stages, nil
}

func (r *stageRepository) FirstPending(ctx context.Context, projectID string) (*model.Stage, error) {
	iter := r.client.Collection(r.collection()).
		Where("ProjectID", "==", projectID).
		Where("Status", "==", string(types.StageStatusPending)).
		OrderBy("OrderIndex", firestore.Asc).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(ErrNotFound, "no pending stage", goerr.V("project_id", projectID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query pending stage", goerr.V("project_id", projectID))
	}

	var stage model.Stage
	if err := doc.DataTo(&stage); err != nil {
		return nil, goerr.Wrap(err, "failed to decode stage")
	}

	return &stage, nil
}

func (r *stageRepository) Update(ctx context.Context, stage *model.Stage) (*model.Stage, error) {
	existing, err := r.Get(ctx, stage.ProjectID, stage.ID)
	if err != nil {
		return nil, err
	}

	updated := *stage
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := r.client.Collection(r.collection()).Doc(updated.ID).Set(ctx, &updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update stage", goerr.V("id", updated.ID))
	}

	return &updated, nil
}
