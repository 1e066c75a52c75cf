package repository_test

import (
	"context"
	"testing"

	"github.com/doorstep-hq/doorstep/pkg/domain/interfaces"
	"github.com/doorstep-hq/doorstep/pkg/domain/model"
	"github.com/doorstep-hq/doorstep/pkg/domain/types"
	"github.com/doorstep-hq/doorstep/pkg/repository/memory"
	"github.com/m-mizutani/gt"
)

func runSignatureRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("GetByID finds signature without project scope", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Signature().Create(ctx, &model.Signature{
			ProjectID: "prj-1",
			TaskID:    "task-1",
			Title:     "Management Agreement",
			Status:    types.SignatureStatusSent,
		})
		gt.NoError(t, err).Required()

		got, err := repo.Signature().GetByID(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Title).Equal("Management Agreement")
		gt.Value(t, got.Status).Equal(types.SignatureStatusSent)
	})

	t.Run("Get enforces project scope", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Signature().Create(ctx, &model.Signature{
			ProjectID: "prj-1",
			Title:     "Lease Addendum",
			Status:    types.SignatureStatusPending,
		})
		gt.NoError(t, err).Required()

		_, err = repo.Signature().Get(ctx, "prj-2", created.ID)
		gt.Error(t, err)
	})

	t.Run("Update persists signer fields", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Signature().Create(ctx, &model.Signature{
			ProjectID: "prj-1",
			Title:     "Management Agreement",
			Status:    types.SignatureStatusViewed,
		})
		gt.NoError(t, err).Required()

		created.Status = types.SignatureStatusSigned
		created.SignerName = "Dana Whitfield"
		created.Method = types.SignatureMethodTyped
		created.TypedName = "Dana Whitfield"

		updated, err := repo.Signature().Update(ctx, created)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Status).Equal(types.SignatureStatusSigned)
		gt.Value(t, updated.SignerName).Equal("Dana Whitfield")
	})
}

func TestSignatureRepository_Memory(t *testing.T) {
	runSignatureRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}
