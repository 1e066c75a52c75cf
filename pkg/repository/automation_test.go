package repository_test

import (
	"context"
	"os"
	"testing"

	"github.com/doorstep-hq/doorstep/pkg/domain/interfaces"
	"github.com/doorstep-hq/doorstep/pkg/domain/model"
	"github.com/doorstep-hq/doorstep/pkg/domain/types"
	"github.com/doorstep-hq/doorstep/pkg/repository/firestore"
	"github.com/doorstep-hq/doorstep/pkg/repository/memory"
	"github.com/m-mizutani/gt"
)

func runAutomationRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	newRule := func(name string, active bool, trigger types.TriggerType, order int) *model.Automation {
		return &model.Automation{
			TemplateID:   "tpl-standard",
			Name:         name,
			Active:       active,
			Trigger:      trigger,
			Action:       types.ActionActivateTask,
			ActionConfig: model.ActionConfig{TaskTitle: "Schedule Kickoff Call"},
			OrderIndex:   order,
		}
	}

	t.Run("ListActiveByTrigger filters and orders", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Automation().Create(ctx, newRule("second", true, types.TriggerTaskCompleted, 2))
		gt.NoError(t, err).Required()
		_, err = repo.Automation().Create(ctx, newRule("first", true, types.TriggerTaskCompleted, 1))
		gt.NoError(t, err).Required()
		_, err = repo.Automation().Create(ctx, newRule("inactive", false, types.TriggerTaskCompleted, 0))
		gt.NoError(t, err).Required()
		_, err = repo.Automation().Create(ctx, newRule("other trigger", true, types.TriggerStageCompleted, 0))
		gt.NoError(t, err).Required()

		rules, err := repo.Automation().ListActiveByTrigger(ctx, "tpl-standard", types.TriggerTaskCompleted)
		gt.NoError(t, err).Required()
		gt.Array(t, rules).Length(2)
		gt.Value(t, rules[0].Name).Equal("first")
		gt.Value(t, rules[1].Name).Equal("second")
	})

	t.Run("ListActiveByTrigger scopes by template", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		rule := newRule("rule", true, types.TriggerTaskCompleted, 0)
		rule.TemplateID = "tpl-other"
		_, err := repo.Automation().Create(ctx, rule)
		gt.NoError(t, err).Required()

		rules, err := repo.Automation().ListActiveByTrigger(ctx, "tpl-standard", types.TriggerTaskCompleted)
		gt.NoError(t, err).Required()
		gt.Array(t, rules).Length(0)
	})

	t.Run("Delete removes the rule", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Automation().Create(ctx, newRule("doomed", true, types.TriggerTaskCompleted, 0))
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Automation().Delete(ctx, created.ID))

		_, err = repo.Automation().Get(ctx, created.ID)
		gt.Error(t, err)
	})
}

func TestAutomationRepository_Memory(t *testing.T) {
	runAutomationRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestAutomationRepository_Firestore(t *testing.T) {
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}

	runAutomationRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := firestore.New(context.Background(), projectID, "")
		gt.NoError(t, err).Required()
		return repo
	})
}
