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

func TestCheckAndAdvance(t *testing.T) {
	ctx := context.Background()

	t.Run("all tasks done completes the stage and activates the next", func(t *testing.T) {
		repo := memory.New()
		uc := newUseCases(repo)
		project := seedProject(t, repo)
		paperwork := seedStage(t, repo, project.ID, "Paperwork", types.StageStatusActive, 0)
		kickoff := seedStage(t, repo, project.ID, "Kickoff", types.StageStatusPending, 1)
		seedTask(t, repo, project.ID, paperwork.ID, "Submit W-9", types.TaskStatusCompleted)
		skipped := seedTask(t, repo, project.ID, paperwork.ID, "Upload Insurance", types.TaskStatusSkipped)

		uc.Stage.CheckAndAdvance(ctx, project.ID, skipped.ID)

		gotPaperwork, err := repo.Stage().Get(ctx, project.ID, paperwork.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, gotPaperwork.Status).Equal(types.StageStatusCompleted)

		gotKickoff, err := repo.Stage().Get(ctx, project.ID, kickoff.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, gotKickoff.Status).Equal(types.StageStatusActive)
	})

	t.Run("pending task blocks the stage", func(t *testing.T) {
		repo := memory.New()
		uc := newUseCases(repo)
		project := seedProject(t, repo)
		paperwork := seedStage(t, repo, project.ID, "Paperwork", types.StageStatusActive, 0)
		kickoff := seedStage(t, repo, project.ID, "Kickoff", types.StageStatusPending, 1)
		done := seedTask(t, repo, project.ID, paperwork.ID, "Submit W-9", types.TaskStatusCompleted)
		seedTask(t, repo, project.ID, paperwork.ID, "Upload Insurance", types.TaskStatusPending)

		uc.Stage.CheckAndAdvance(ctx, project.ID, done.ID)

		gotPaperwork, err := repo.Stage().Get(ctx, project.ID, paperwork.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, gotPaperwork.Status).Equal(types.StageStatusActive)

		gotKickoff, err := repo.Stage().Get(ctx, project.ID, kickoff.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, gotKickoff.Status).Equal(types.StageStatusPending)
	})

	t.Run("unstaged task never cascades", func(t *testing.T) {
		repo := memory.New()
		uc := newUseCases(repo)
		project := seedProject(t, repo)
		stage := seedStage(t, repo, project.ID, "Paperwork", types.StageStatusActive, 0)
		task := seedTask(t, repo, project.ID, "", "Submit W-9", types.TaskStatusCompleted)

		uc.Stage.CheckAndAdvance(ctx, project.ID, task.ID)

		got, err := repo.Stage().Get(ctx, project.ID, stage.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Status).Equal(types.StageStatusActive)
	})

	t.Run("last stage completes without a successor", func(t *testing.T) {
		repo := memory.New()
		uc := newUseCases(repo)
		project := seedProject(t, repo)
		stage := seedStage(t, repo, project.ID, "Paperwork", types.StageStatusActive, 0)
		task := seedTask(t, repo, project.ID, stage.ID, "Submit W-9", types.TaskStatusCompleted)

		uc.Stage.CheckAndAdvance(ctx, project.ID, task.ID)

		got, err := repo.Stage().Get(ctx, project.ID, stage.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Status).Equal(types.StageStatusCompleted)
	})

	t.Run("stage completion fires stage_completed rules through the queue", func(t *testing.T) {
		repo := memory.New()
		mail := &stubMailer{}
		uc := newUseCases(repo, usecase.WithMailer(mail))
		project := seedProject(t, repo)
		paperwork := seedStage(t, repo, project.ID, "Paperwork", types.StageStatusActive, 0)
		task := seedTask(t, repo, project.ID, paperwork.ID, "Submit W-9", types.TaskStatusPending)
		rule := seedRule(t, repo, &model.Automation{
			Name:          "paperwork done mail",
			Trigger:       types.TriggerStageCompleted,
			TriggerConfig: model.TriggerConfig{StageName: "Paperwork"},
			Action:        types.ActionSendEmail,
			ActionConfig:  model.ActionConfig{Recipient: types.RecipientStaff, Subject: "Paperwork complete", Message: "all documents in"},
		})

		// Completing the stage's last task through the portal path drives the
		// whole chain: task_completed -> cascade -> stage_completed rule
		_, err := uc.Task.CompleteTask(ctx, project.ID, task.ID, "client")
		gt.NoError(t, err).Required()

		gt.Array(t, mail.sent).Length(1).Required()
		gt.Value(t, mail.sent[0].to).Equal("staff@doorstep.example")

		byRule := executionsByAutomation(t, repo, project.ID)
		gt.Array(t, byRule[rule.ID]).Length(1).Required()
		gt.Value(t, byRule[rule.ID][0].Status).Equal(types.ExecStatusSuccess)
	})
}
