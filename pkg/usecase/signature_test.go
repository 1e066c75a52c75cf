package usecase_test

import (
	"context"
	"testing"

	"github.com/doorstep-hq/doorstep/pkg/domain/interfaces"
	"github.com/doorstep-hq/doorstep/pkg/domain/model"
	"github.com/doorstep-hq/doorstep/pkg/domain/types"
	"github.com/doorstep-hq/doorstep/pkg/repository/memory"
	"github.com/doorstep-hq/doorstep/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func seedSignature(t *testing.T, repo interfaces.Repository, projectID, taskID string, status types.SignatureStatus) *model.Signature {
	t.Helper()
	signature, err := repo.Signature().Create(context.Background(), &model.Signature{
		ProjectID: projectID,
		TaskID:    taskID,
		Title:     "Management Agreement",
		Status:    status,
	})
	gt.NoError(t, err).Required()
	return signature
}

func validSignInput() usecase.SignInput {
	return usecase.SignInput{
		SignerName: "Dana Whitfield",
		TypedName:  "Dana Whitfield",
		Consent:    true,
		IPAddress:  "203.0.113.7",
		UserAgent:  "Mozilla/5.0",
	}
}

func TestSign(t *testing.T) {
	ctx := context.Background()

	t.Run("signable states transition to signed", func(t *testing.T) {
		for _, status := range []types.SignatureStatus{
			types.SignatureStatusPending,
			types.SignatureStatusSent,
			types.SignatureStatusViewed,
		} {
			t.Run(status.String(), func(t *testing.T) {
				repo := memory.New()
				uc := newUseCases(repo)
				project := seedProject(t, repo)
				signature := seedSignature(t, repo, project.ID, "", status)

				signed, err := uc.Signature.Sign(ctx, signature.ID, validSignInput())
				gt.NoError(t, err).Required()

				gt.Value(t, signed.Status).Equal(types.SignatureStatusSigned)
				gt.Value(t, signed.Method).Equal(types.SignatureMethodTyped)
				gt.Value(t, signed.SignerName).Equal("Dana Whitfield")
				gt.Value(t, signed.SignedAt).NotNil()
				gt.Value(t, signed.ConsentAt).NotNil()
				gt.Value(t, signed.IPAddress).Equal("203.0.113.7")
			})
		}
	})

	t.Run("finalized signatures reject with conflict", func(t *testing.T) {
		for _, status := range []types.SignatureStatus{
			types.SignatureStatusSigned,
			types.SignatureStatusDeclined,
		} {
			t.Run(status.String(), func(t *testing.T) {
				repo := memory.New()
				uc := newUseCases(repo)
				project := seedProject(t, repo)
				signature := seedSignature(t, repo, project.ID, "", status)

				_, err := uc.Signature.Sign(ctx, signature.ID, validSignInput())
				gt.Error(t, err).Is(usecase.ErrSignatureFinalized)

				// No audit record for the rejected attempt
				entries, err := repo.Execution().ListByProject(ctx, project.ID)
				gt.NoError(t, err).Required()
				gt.Array(t, entries).Length(0)
			})
		}
	})

	t.Run("consent is required", func(t *testing.T) {
		repo := memory.New()
		uc := newUseCases(repo)
		project := seedProject(t, repo)
		signature := seedSignature(t, repo, project.ID, "", types.SignatureStatusSent)

		input := validSignInput()
		input.Consent = false
		_, err := uc.Signature.Sign(ctx, signature.ID, input)
		gt.Error(t, err).Is(usecase.ErrConsentRequired)
	})

	t.Run("signer name is required", func(t *testing.T) {
		repo := memory.New()
		uc := newUseCases(repo)
		project := seedProject(t, repo)
		signature := seedSignature(t, repo, project.ID, "", types.SignatureStatusSent)

		input := validSignInput()
		input.SignerName = ""
		_, err := uc.Signature.Sign(ctx, signature.ID, input)
		gt.Error(t, err).Is(usecase.ErrSignerNameRequired)
	})

	t.Run("exactly one of drawn or typed payload", func(t *testing.T) {
		repo := memory.New()
		uc := newUseCases(repo)
		project := seedProject(t, repo)

		both := validSignInput()
		both.SignatureImage = "data:image/png;base64,AAAA"
		signature := seedSignature(t, repo, project.ID, "", types.SignatureStatusSent)
		_, err := uc.Signature.Sign(ctx, signature.ID, both)
		gt.Error(t, err).Is(usecase.ErrInvalidSignaturePayload)

		neither := validSignInput()
		neither.TypedName = ""
		signature2 := seedSignature(t, repo, project.ID, "", types.SignatureStatusSent)
		_, err = uc.Signature.Sign(ctx, signature2.ID, neither)
		gt.Error(t, err).Is(usecase.ErrInvalidSignaturePayload)
	})

	t.Run("drawn payload sets method and clears typed name", func(t *testing.T) {
		repo := memory.New()
		uc := newUseCases(repo)
		project := seedProject(t, repo)
		signature := seedSignature(t, repo, project.ID, "", types.SignatureStatusViewed)

		input := validSignInput()
		input.TypedName = ""
		input.SignatureImage = "data:image/png;base64,AAAA"

		signed, err := uc.Signature.Sign(ctx, signature.ID, input)
		gt.NoError(t, err).Required()
		gt.Value(t, signed.Method).Equal(types.SignatureMethodDrawn)
		gt.Value(t, signed.TypedName).Equal("")
		gt.String(t, signed.SignatureImage).NotEqual("")
	})

	t.Run("unparseable address is not recorded", func(t *testing.T) {
		repo := memory.New()
		uc := newUseCases(repo)
		project := seedProject(t, repo)
		signature := seedSignature(t, repo, project.ID, "", types.SignatureStatusSent)

		input := validSignInput()
		input.IPAddress = "not-an-ip"
		signed, err := uc.Signature.Sign(ctx, signature.ID, input)
		gt.NoError(t, err).Required()
		gt.Value(t, signed.IPAddress).Equal("")
	})

	t.Run("unknown signature", func(t *testing.T) {
		repo := memory.New()
		uc := newUseCases(repo)

		_, err := uc.Signature.Sign(ctx, "missing", validSignInput())
		gt.Error(t, err).Is(usecase.ErrSignatureNotFound)
	})

	t.Run("signing completes the linked task and cascades", func(t *testing.T) {
		repo := memory.New()
		uc := newUseCases(repo)
		project := seedProject(t, repo)
		documents := seedStage(t, repo, project.ID, "Documents", types.StageStatusActive, 0)
		kickoff := seedStage(t, repo, project.ID, "Kickoff", types.StageStatusPending, 1)
		insurance := seedTask(t, repo, project.ID, documents.ID, "Upload Insurance", types.TaskStatusPending)
		agreement := seedTask(t, repo, project.ID, documents.ID, "Sign Agreement", types.TaskStatusPending)
		signature := seedSignature(t, repo, project.ID, agreement.ID, types.SignatureStatusSent)
		rule := seedRule(t, repo, &model.Automation{
			Name:          "documents done",
			Trigger:       types.TriggerStageCompleted,
			TriggerConfig: model.TriggerConfig{StageName: "Documents"},
			Action:        types.ActionUpdateProjectStatus,
			ActionConfig:  model.ActionConfig{ProjectStatus: types.ProjectStatusCompleted},
		})

		// First task alone must not advance the stage
		_, err := uc.Task.CompleteTask(ctx, project.ID, insurance.ID, "client")
		gt.NoError(t, err).Required()

		gotStage, err := repo.Stage().Get(ctx, project.ID, documents.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, gotStage.Status).Equal(types.StageStatusActive)

		// Signing completes the linked task, which finishes the stage
		_, err = uc.Signature.Sign(ctx, signature.ID, validSignInput())
		gt.NoError(t, err).Required()

		gotTask, err := repo.Task().Get(ctx, project.ID, agreement.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, gotTask.Status).Equal(types.TaskStatusCompleted)

		gotStage, err = repo.Stage().Get(ctx, project.ID, documents.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, gotStage.Status).Equal(types.StageStatusCompleted)

		gotKickoff, err := repo.Stage().Get(ctx, project.ID, kickoff.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, gotKickoff.Status).Equal(types.StageStatusActive)

		byRule := executionsByAutomation(t, repo, project.ID)
		gt.Array(t, byRule[rule.ID]).Length(1).Required()
		gt.Value(t, byRule[rule.ID][0].Status).Equal(types.ExecStatusSuccess)
	})
}

func TestMarkViewed(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		from types.SignatureStatus
		want types.SignatureStatus
	}{
		{from: types.SignatureStatusPending, want: types.SignatureStatusViewed},
		{from: types.SignatureStatusSent, want: types.SignatureStatusViewed},
		{from: types.SignatureStatusViewed, want: types.SignatureStatusViewed},
		{from: types.SignatureStatusSigned, want: types.SignatureStatusSigned},
		{from: types.SignatureStatusDeclined, want: types.SignatureStatusDeclined},
	}

	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			repo := memory.New()
			uc := newUseCases(repo)
			project := seedProject(t, repo)
			signature := seedSignature(t, repo, project.ID, "", tt.from)

			got, err := uc.Signature.MarkViewed(ctx, signature.ID)
			gt.NoError(t, err).Required()
			gt.Value(t, got.Status).Equal(tt.want)
		})
	}
}
