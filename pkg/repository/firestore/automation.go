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

type automationRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAutomationRepository(client *firestore.Client) *automationRepository {
	return &automationRepository{client: client}
}

func (r *automationRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_automations"
	}
	return "automations"
}

func (r *automationRepository) Create(ctx context.Context, automation *model.Automation) (*model.Automation, error) {
	now := time.Now().UTC()
	created := *automation
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, err := r.client.Collection(r.collection()).Doc(created.ID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create automation", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *automationRepository) Get(ctx context.Context, id string) (*model.Automation, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "automation not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get automation", goerr.V("id", id))
	}

	var automation model.Automation
	if err := docSnap.DataTo(&automation); err != nil {
		return nil, goerr.Wrap(err, "failed to decode automation", goerr.V("id", id))
	}

	return &automation, nil
}

func (r *automationRepository) ListByTemplate(ctx context.Context, templateID string) ([]*model.Automation, error) {
	iter := r.client.Collection(r.collection()).
		Where("TemplateID", "==", templateID).
		OrderBy("OrderIndex", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	return decodeAutomations(iter)
}

func (r *automationRepository) ListActiveByTrigger(ctx context.Context, templateID string, trigger types.TriggerType) ([]*model.Automation, error) {
	iter := r.client.Collection(r.collection()).
		Where("TemplateID", "==", templateID).
		Where("Active", "==", true).
		Where("Trigger", "==", string(trigger)).
		OrderBy("OrderIndex", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	return decodeAutomations(iter)
}

func (r *automationRepository) Update(ctx context.Context, automation *model.Automation) (*model.Automation, error) {
	existing, err := r.Get(ctx, automation.ID)
	if err != nil {
		return nil, err
	}

	updated := *automation
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := r.client.Collection(r.collection()).Doc(updated.ID).Set(ctx, &updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update automation", goerr.V("id", updated.ID))
	}

	return &updated, nil
}

func (r *automationRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}

	if _, err := r.client.Collection(r.collection()).Doc(id).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete automation", goerr.V("id", id))
	}

	return nil
}

func decodeAutomations(iter *firestore.DocumentIterator) ([]*model.Automation, error) {
	automations := make([]*model.Automation, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate automations")
		}

		var automation model.Automation
		if err := doc.DataTo(&automation); err != nil {
			return nil, goerr.Wrap(err, "failed to decode automation")
		}
		automations = append(automations, &automation)
	}

	return automations, nil
}
