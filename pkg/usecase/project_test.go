package usecase_test

import (
	"context"
	"testing"

	"github.com/doorstep-hq/doorstep/pkg/domain/model"
	"github.com/doorstep-hq/doorstep/pkg/domain/types"
	"github.com/doorstep-hq/doorstep/pkg/repository/memory"
	"github.com/doorstep-hq/doorstep/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func standardTemplate() *model.TemplateDefinition {
	return &model.TemplateDefinition{
		ID:   "tpl-standard",
		Name: "Standard Onboarding",
		Stages: []model.StageDefinition{
			{
				Name: "Paperwork",
				Tasks: []model.TaskDefinition{
					{Title: "Submit W-9", Category: "documents"},
					{Title: "Upload Insurance", Category: "documents", RequiresFileUpload: true},
				},
			},
			{
				Name: "Kickoff",
				Tasks: []model.TaskDefinition{
					{Title: "Schedule Kickoff Call", Category: "meetings"},
				},
			},
		},
	}
}

func TestCreateFromTemplate(t *testing.T) {
	ctx := context.Background()

	t.Run("instantiates stages and tasks", func(t *testing.T) {
		repo := memory.New()
		uc := newUseCases(repo)

		project, err := uc.Project.CreateFromTemplate(ctx, standardTemplate(), usecase.CreateProjectInput{
			Name:        "Maple Street HOA",
			ClientName:  "Dana Whitfield",
			ClientEmail: "dana@example.com",
			StaffEmail:  "staff@doorstep.example",
		})
		gt.NoError(t, err).Required()

		gt.Value(t, project.TemplateID).Equal("tpl-standard")
		gt.Value(t, project.Status).Equal(types.ProjectStatusActive)
		gt.Value(t, project.StartedAt).NotNil()

		stages, err := repo.Stage().ListByProject(ctx, project.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, stages).Length(2).Required()
		gt.Value(t, stages[0].Name).Equal("Paperwork")
		gt.Value(t, stages[0].Status).Equal(types.StageStatusActive)
		gt.Value(t, stages[1].Name).Equal("Kickoff")
		gt.Value(t, stages[1].Status).Equal(types.StageStatusPending)

		tasks, err := repo.Task().ListByStage(ctx, project.ID, stages[0].ID)
		gt.NoError(t, err).Required()
		gt.Array(t, tasks).Length(2).Required()
		gt.Value(t, tasks[0].Title).Equal("Submit W-9")
		gt.Value(t, tasks[0].Status).Equal(types.TaskStatusPending)
		gt.Value(t, tasks[0].Visibility).Equal(types.VisibilityExternal)
		gt.Bool(t, tasks[1].RequiresFileUpload).True()
	})

	t.Run("fires project_created rules", func(t *testing.T) {
		repo := memory.New()
		uc := newUseCases(repo)
		rule, err := repo.Automation().Create(ctx, &model.Automation{
			TemplateID:   "tpl-standard",
			Name:         "start with W-9",
			Active:       true,
			Trigger:      types.TriggerProjectCreated,
			Action:       types.ActionActivateTask,
			ActionConfig: model.ActionConfig{TaskTitle: "Submit W-9"},
		})
		gt.NoError(t, err).Required()

		project, err := uc.Project.CreateFromTemplate(ctx, standardTemplate(), usecase.CreateProjectInput{
			Name: "Maple Street HOA",
		})
		gt.NoError(t, err).Required()

		tasks, err := repo.Task().ListByProject(ctx, project.ID)
		gt.NoError(t, err).Required()

		var w9 *model.Task
		for _, task := range tasks {
			if task.Title == "Submit W-9" {
				w9 = task
			}
		}
		gt.Value(t, w9).NotNil().Required()
		gt.Value(t, w9.Status).Equal(types.TaskStatusInProgress)

		byRule := executionsByAutomation(t, repo, project.ID)
		gt.Array(t, byRule[rule.ID]).Length(1).Required()
		gt.Value(t, byRule[rule.ID][0].Status).Equal(types.ExecStatusSuccess)
	})

	t.Run("rejects invalid template", func(t *testing.T) {
		repo := memory.New()
		uc := newUseCases(repo)

		def := standardTemplate()
		def.Stages[1].Name = "Paperwork" // duplicate
		_, err := uc.Project.CreateFromTemplate(ctx, def, usecase.CreateProjectInput{Name: "X"})
		gt.Error(t, err)
	})

	t.Run("requires a project name", func(t *testing.T) {
		repo := memory.New()
		uc := newUseCases(repo)

		_, err := uc.Project.CreateFromTemplate(ctx, standardTemplate(), usecase.CreateProjectInput{})
		gt.Error(t, err)
	})
}

func TestUpdateProjectStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("transition to active stamps started_at once", func(t *testing.T) {
		repo := memory.New()
		uc := newUseCases(repo)
		project, err := repo.Project().Create(ctx, &model.Project{
			Name:   "Maple Street HOA",
			Status: types.ProjectStatusDraft,
		})
		gt.NoError(t, err).Required()

		updated, err := uc.Project.UpdateStatus(ctx, project.ID, types.ProjectStatusActive)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Status).Equal(types.ProjectStatusActive)
		gt.Value(t, updated.StartedAt).NotNil().Required()
		first := *updated.StartedAt

		// Re-activating later must not move the stamp
		_, err = uc.Project.UpdateStatus(ctx, project.ID, types.ProjectStatusPending)
		gt.NoError(t, err).Required()
		again, err := uc.Project.UpdateStatus(ctx, project.ID, types.ProjectStatusActive)
		gt.NoError(t, err).Required()
		gt.Value(t, *again.StartedAt).Equal(first)
	})

	t.Run("transition to completed stamps completed_at", func(t *testing.T) {
		repo := memory.New()
		uc := newUseCases(repo)
		project := seedProject(t, repo)

		updated, err := uc.Project.UpdateStatus(ctx, project.ID, types.ProjectStatusCompleted)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Status).Equal(types.ProjectStatusCompleted)
		gt.Value(t, updated.CompletedAt).NotNil()
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		repo := memory.New()
		uc := newUseCases(repo)
		project := seedProject(t, repo)

		_, err := uc.Project.UpdateStatus(ctx, project.ID, types.ProjectStatus("bogus"))
		gt.Error(t, err).Is(usecase.ErrInvalidProjectStatus)
	})

	t.Run("unknown project", func(t *testing.T) {
		repo := memory.New()
		uc := newUseCases(repo)

		_, err := uc.Project.UpdateStatus(ctx, "missing", types.ProjectStatusActive)
		gt.Error(t, err).Is(usecase.ErrProjectNotFound)
	})
}
