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

func runStageRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	seedStages := func(t *testing.T, repo interfaces.Repository, statuses []types.StageStatus) []*model.Stage {
		t.Helper()
		ctx := context.Background()
		stages := make([]*model.Stage, 0, len(statuses))
		for i, status := range statuses {
			stage, err := repo.Stage().Create(ctx, &model.Stage{
				ProjectID:  "prj-1",
				Name:       "Stage " + string(rune('A'+i)),
				Status:     status,
				OrderIndex: i,
			})
			gt.NoError(t, err).Required()
			stages = append(stages, stage)
		}
		return stages
	}

	t.Run("ListByProject orders by index", func(t *testing.T) {
		repo := newRepo(t)
		seedStages(t, repo, []types.StageStatus{
			types.StageStatusActive,
			types.StageStatusPending,
			types.StageStatusPending,
		})

		stages, err := repo.Stage().ListByProject(context.Background(), "prj-1")
		gt.NoError(t, err).Required()
		gt.Array(t, stages).Length(3)
		gt.Value(t, stages[0].Name).Equal("Stage A")
		gt.Value(t, stages[2].Name).Equal("Stage C")
	})

	t.Run("FirstPending returns lowest pending order index", func(t *testing.T) {
		repo := newRepo(t)
		seedStages(t, repo, []types.StageStatus{
			types.StageStatusCompleted,
			types.StageStatusActive,
			types.StageStatusPending,
			types.StageStatusPending,
		})

		stage, err := repo.Stage().FirstPending(context.Background(), "prj-1")
		gt.NoError(t, err).Required()
		gt.Value(t, stage.Name).Equal("Stage C")
	})

	t.Run("FirstPending fails when nothing is pending", func(t *testing.T) {
		repo := newRepo(t)
		seedStages(t, repo, []types.StageStatus{
			types.StageStatusCompleted,
			types.StageStatusCompleted,
		})

		_, err := repo.Stage().FirstPending(context.Background(), "prj-1")
		gt.Error(t, err)
	})

	t.Run("Update changes status", func(t *testing.T) {
		repo := newRepo(t)
		stages := seedStages(t, repo, []types.StageStatus{types.StageStatusActive})

		stages[0].Status = types.StageStatusCompleted
		updated, err := repo.Stage().Update(context.Background(), stages[0])
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Status).Equal(types.StageStatusCompleted)
	})
}

func TestStageRepository_Memory(t *testing.T) {
	runStageRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestStageRepository_Firestore(t *testing.T) {
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}

	runStageRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := firestore.New(context.Background(), projectID, "")
		gt.NoError(t, err).Required()
		return repo
	})
}
