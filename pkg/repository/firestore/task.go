package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/doorstep-hq/doorstep/pkg/domain/model"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type taskRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newTaskRepository(client *firestore.Client) *taskRepository {
	return &taskRepository{client: client}
}

func (r *taskRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_tasks"
	}
	return "tasks"
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) (*model.Task, error) {
	now := time.Now().UTC()
	created := *task
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, err := r.client.Collection(r.collection()).Doc(created.ID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create task", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *taskRepository) Get(ctx context.Context, projectID, id string) (*model.Task, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get task", goerr.V("id", id))
	}

	var task model.Task
	if err := docSnap.DataTo(&task); err != nil {
		return nil, goerr.Wrap(err, "failed to decode task", goerr.V("id", id))
	}
	if task.ProjectID != projectID {
		return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", id))
	}

	return &task, nil
}

func (r *taskRepository) ListByProject(ctx context.Context, projectID string) ([]*model.Task, error) {
	iter := r.client.Collection(r.collection()).
		Where("ProjectID", "==", projectID).
		OrderBy("OrderIndex", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	return decodeTasks(iter)
}

func (r *taskRepository) ListByStage(ctx context.Context, projectID, stageID string) ([]*model.Task, error) {
	iter := r.client.Collection(r.collection()).
		Where("ProjectID", "==", projectID).
		Where("StageID", "==", stageID).
		Documents(ctx)
	defer iter.Stop()

	return decodeTasks(iter)
}

func (r *taskRepository) Update(ctx context.Context, task *model.Task) (*model.Task, error) {
	existing, err := r.Get(ctx, task.ProjectID, task.ID)
	if err != nil {
		return nil, err
	}

	updated := *task
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := r.client.Collection(r.collection()).Doc(updated.ID).Set(ctx, &updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update task", goerr.V("id", updated.ID))
	}

	return &updated, nil
}

func decodeTasks(iter *firestore.DocumentIterator) ([]*model.Task, error) {
	tasks := make([]*model.Task, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate tasks")
		}

		var task model.Task
		if err := doc.DataTo(&task); err != nil {
			return nil, goerr.Wrap(err, "failed to decode task")
		}
		tasks = append(tasks, &task)
	}

	return tasks, nil
}
