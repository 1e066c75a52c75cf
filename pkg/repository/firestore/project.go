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

type projectRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newProjectRepository(client *firestore.Client) *projectRepository {
	return &projectRepository{client: client}
}

func (r *projectRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_projects"
	}
	return "projects"
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) (*model.Project, error) {
	now := time.Now().UTC()
	created := *project
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, err := r.client.Collection(r.collection()).Doc(created.ID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create project", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *projectRepository) Get(ctx context.Context, id string) (*model.Project, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "project not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get project", goerr.V("id", id))
	}

	var project model.Project
	if err := docSnap.DataTo(&project); err != nil {
		return nil, goerr.Wrap(err, "failed to decode project", goerr.V("id", id))
	}

	return &project, nil
}

func (r *projectRepository) List(ctx context.Context) ([]*model.Project, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	projects := make([]*model.Project, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list projects")
		}

		var project model.Project
		if err := doc.DataTo(&project); err != nil {
			return nil, goerr.Wrap(err, "failed to decode project")
		}
		projects = append(projects, &project)
	}

	return projects, nil
}

func (r *projectRepository) Update(ctx context.Context, project *model.Project) (*model.Project, error) {
	existing, err := r.Get(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	updated := *project
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := r.client.Collection(r.collection()).Doc(updated.ID).Set(ctx, &updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update project", goerr.V("id", updated.ID))
	}

	return &updated, nil
}
