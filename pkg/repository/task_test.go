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

func runTaskRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns ID and timestamps", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		project, err := repo.Project().Create(ctx, &model.Project{
			Name:   "Maple Street HOA",
			Status: types.ProjectStatusActive,
		})
		gt.NoError(t, err).Required()

		created, err := repo.Task().Create(ctx, &model.Task{
			ProjectID:  project.ID,
			Title:      "Submit W-9",
			Category:   "documents",
			Visibility: types.VisibilityExternal,
			Status:     types.TaskStatusPending,
		})
		gt.NoError(t, err).Required()

		gt.String(t, created.ID).NotEqual("")
		gt.Value(t, created.ProjectID).Equal(project.ID)
		gt.Value(t, created.Status).Equal(types.TaskStatusPending)
		gt.Bool(t, created.CreatedAt.IsZero()).False()
	})

	t.Run("Get scopes by project", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Task().Create(ctx, &model.Task{
			ProjectID: "prj-1",
			Title:     "Upload Insurance",
			Status:    types.TaskStatusPending,
		})
		gt.NoError(t, err).Required()

		got, err := repo.Task().Get(ctx, "prj-1", created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Title).Equal("Upload Insurance")

		// Wrong project must not leak the task
		_, err = repo.Task().Get(ctx, "prj-2", created.ID)
		gt.Error(t, err)
	})

	t.Run("ListByStage returns only staged tasks ordered by index", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for i, title := range []string{"Third", "First", "Second"} {
			order := []int{2, 0, 1}[i]
			_, err := repo.Task().Create(ctx, &model.Task{
				ProjectID:  "prj-1",
				StageID:    "stg-1",
				Title:      title,
				OrderIndex: order,
				Status:     types.TaskStatusPending,
			})
			gt.NoError(t, err).Required()
		}
		_, err := repo.Task().Create(ctx, &model.Task{
			ProjectID: "prj-1",
			Title:     "Unstaged",
			Status:    types.TaskStatusPending,
		})
		gt.NoError(t, err).Required()

		tasks, err := repo.Task().ListByStage(ctx, "prj-1", "stg-1")
		gt.NoError(t, err).Required()
		gt.Array(t, tasks).Length(3)
	})

	t.Run("Update preserves CreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Task().Create(ctx, &model.Task{
			ProjectID: "prj-1",
			Title:     "Sign Agreement",
			Status:    types.TaskStatusPending,
		})
		gt.NoError(t, err).Required()

		created.Status = types.TaskStatusInProgress
		updated, err := repo.Task().Update(ctx, created)
		gt.NoError(t, err).Required()

		gt.Value(t, updated.Status).Equal(types.TaskStatusInProgress)
		gt.Value(t, updated.CreatedAt).Equal(created.CreatedAt)
	})

	t.Run("Update of unknown task fails", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Task().Update(ctx, &model.Task{
			ID:        "missing",
			ProjectID: "prj-1",
			Title:     "Ghost",
		})
		gt.Error(t, err)
	})
}

func TestTaskRepository_Memory(t *testing.T) {
	runTaskRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestTaskRepository_Firestore(t *testing.T) {
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}

	runTaskRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := firestore.New(context.Background(), projectID, "")
		gt.NoError(t, err).Required()
		return repo
	})
}
