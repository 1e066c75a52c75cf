package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/doorstep-hq/doorstep/pkg/domain/model"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
)

type executionRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newExecutionRepository(client *firestore.Client) *executionRepository {
	return &executionRepository{client: client}
}

func (r *executionRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_execution_logs"
	}
	return "execution_logs"
}

func (r *executionRepository) Put(ctx context.Context, entry *model.ExecutionLog) (*model.ExecutionLog, error) {
	created := *entry
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	// Create, not Set: the log is append-only and an ID collision is a bug
	if _, err := r.client.Collection(r.collection()).Doc(created.ID).Create(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to put execution log", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *executionRepository) ListByProject(ctx context.Context, projectID string) ([]*model.ExecutionLog, error) {
	iter := r.client.Collection(r.collection()).
		Where("ProjectID", "==", projectID).
		OrderBy("CreatedAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	return decodeExecutionLogs(iter)
}

func (r *executionRepository) ListByAutomation(ctx context.Context, automationID string) ([]*model.ExecutionLog, error) {
	iter := r.client.Collection(r.collection()).
		Where("AutomationID", "==", automationID).
		OrderBy("CreatedAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	return decodeExecutionLogs(iter)
}

func decodeExecutionLogs(iter *firestore.DocumentIterator) ([]*model.ExecutionLog, error) {
	entries := make([]*model.ExecutionLog, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate execution logs")
		}

		var entry model.ExecutionLog
		if err := doc.DataTo(&entry); err != nil {
			return nil, goerr.Wrap(err, "failed to decode execution log")
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}
