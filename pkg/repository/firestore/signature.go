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

type signatureRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newSignatureRepository(client *firestore.Client) *signatureRepository {
	return &signatureRepository{client: client}
}

func (r *signatureRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_signatures"
	}
	return "signatures"
}

func (r *signatureRepository) Create(ctx context.Context, signature *model.Signature) (*model.Signature, error) {
	now := time.Now().UTC()
	created := *signature
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, err := r.client.Collection(r.collection()).Doc(created.ID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create signature", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *signatureRepository) Get(ctx context.Context, projectID, id string) (*model.Signature, error) {
	signature, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if signature.ProjectID != projectID {
		return nil, goerr.Wrap(ErrNotFound, "signature not found", goerr.V("id", id))
	}

	return signature, nil
}

func (r *signatureRepository) GetByID(ctx context.Context, id string) (*model.Signature, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "signature not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get signature", goerr.V("id", id))
	}

	var signature model.Signature
	if err := docSnap.DataTo(&signature); err != nil {
		return nil, goerr.Wrap(err, "failed to decode signature", goerr.V("id", id))
	}

	return &signature, nil
}

func (r *signatureRepository) ListByProject(ctx context.Context, projectID string) ([]*model.Signature, error) {
	iter := r.client.Collection(r.collection()).
		Where("ProjectID", "==", projectID).
		Documents(ctx)
	defer iter.Stop()

	signatures := make([]*model.Signature, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list signatures")
		}

		var signature model.Signature
		if err := doc.DataTo(&signature); err != nil {
			return nil, goerr.Wrap(err, "failed to decode signature")
		}
		signatures = append(signatures, &signature)
	}

	return signatures, nil
}

func (r *signatureRepository) Update(ctx context.Context, signature *model.Signature) (*model.Signature, error) {
	existing, err := r.GetByID(ctx, signature.ID)
	if err != nil {
		return nil, err
	}

	updated := *signature
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := r.client.Collection(r.collection()).Doc(updated.ID).Set(ctx, &updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update signature", goerr.V("id", updated.ID))
	}

	return &updated, nil
}
