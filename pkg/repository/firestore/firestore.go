package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/doorstep-hq/doorstep/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

// Firestore is the production repository backend
type Firestore struct {
	client    *firestore.Client
	project   *projectRepository
	task      *taskRepository
	stage     *stageRepository
	signature *signatureRepository
	rule      *automationRepository
	execution *executionRepository
	schedule  *scheduleRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces all collections, mainly for integration
// tests sharing one database
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.project.collectionPrefix = prefix
		f.task.collectionPrefix = prefix
		f.stage.collectionPrefix = prefix
		f.signature.collectionPrefix = prefix
		f.rule.collectionPrefix = prefix
		f.execution.collectionPrefix = prefix
		f.schedule.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:    client,
		project:   newProjectRepository(client),
		task:      newTaskRepository(client),
		stage:     newStageRepository(client),
		signature: newSignatureRepository(client),
		rule:      newAutomationRepository(client),
		execution: newExecutionRepository(client),
		schedule:  newScheduleRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Project() interfaces.ProjectRepository {
	return f.project
}

func (f *Firestore) Task() interfaces.TaskRepository {
	return f.task
}

func (f *Firestore) Stage() interfaces.StageRepository {
	return f.stage
}

func (f *Firestore) Signature() interfaces.SignatureRepository {
	return f.signature
}

func (f *Firestore) Automation() interfaces.AutomationRepository {
	return f.rule
}

func (f *Firestore) Execution() interfaces.ExecutionRepository {
	return f.execution
}

func (f *Firestore) Schedule() interfaces.ScheduleRepository {
	return f.schedule
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
