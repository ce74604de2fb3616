package userconfigs_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/sevenknights-calc/internal/domain/stats"
	calcerr "github.com/KirkDiggler/sevenknights-calc/internal/errors"
	"github.com/KirkDiggler/sevenknights-calc/internal/repositories/userconfigs"
	"github.com/KirkDiggler/sevenknights-calc/internal/repositories/userconfigs/mocks"
	mockuuid "github.com/KirkDiggler/sevenknights-calc/internal/uuid/mocks"
)

func TestInMemoryRepository(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	timeProvider := mocks.NewMockTimeProvider(ctrl)
	timeProvider.EXPECT().Now().Return(now).AnyTimes()
	uuidGen := mockuuid.NewMockGenerator(ctrl)

	repo := userconfigs.NewInMemoryRepository(&userconfigs.InMemoryRepoConfig{
		TimeProvider:  timeProvider,
		UUIDGenerator: uuidGen,
	})
	ctx := context.Background()

	t.Run("create assigns an ID", func(t *testing.T) {
		uuidGen.EXPECT().New().Return("generated-1")

		profile := &userconfigs.Profile{
			Name:  "default",
			Stats: stats.Mapping{"ATK_CHAR": decimal.NewFromInt(5000)},
		}
		require.NoError(t, repo.Create(ctx, profile))
		assert.Equal(t, "generated-1", profile.ID)
		assert.Equal(t, now, profile.CreatedAt)
	})

	t.Run("get returns a copy", func(t *testing.T) {
		got, err := repo.Get(ctx, "generated-1")
		require.NoError(t, err)
		got.Stats["ATK_CHAR"] = decimal.NewFromInt(1)

		again, err := repo.Get(ctx, "generated-1")
		require.NoError(t, err)
		assert.Equal(t, "5000", again.Stats["ATK_CHAR"].String())
	})

	t.Run("duplicate create fails", func(t *testing.T) {
		err := repo.Create(ctx, &userconfigs.Profile{ID: "generated-1"})
		assert.True(t, calcerr.IsAlreadyExists(err))
	})

	t.Run("update keeps created at", func(t *testing.T) {
		err := repo.Update(ctx, &userconfigs.Profile{
			ID:        "generated-1",
			Name:      "renamed",
			Stats:     stats.Mapping{"ATK_CHAR": decimal.NewFromInt(6000)},
			CreatedAt: now.Add(time.Hour),
		})
		require.NoError(t, err)

		got, err := repo.Get(ctx, "generated-1")
		require.NoError(t, err)
		assert.Equal(t, "renamed", got.Name)
		assert.Equal(t, now, got.CreatedAt)
	})

	t.Run("list sorts by name", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, &userconfigs.Profile{ID: "p2", Name: "alpha"}))

		profiles, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, profiles, 2)
		assert.Equal(t, "p2", profiles[0].ID)
		assert.Equal(t, "generated-1", profiles[1].ID)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "p2"))
		assert.True(t, calcerr.IsNotFound(repo.Delete(ctx, "p2")))

		_, err := repo.Get(ctx, "p2")
		assert.True(t, calcerr.IsNotFound(err))
	})

	t.Run("input validation", func(t *testing.T) {
		assert.True(t, calcerr.IsInvalidArgument(repo.Create(ctx, nil)))
		assert.True(t, calcerr.IsInvalidArgument(repo.Update(ctx, nil)))
		assert.True(t, calcerr.IsInvalidArgument(repo.Update(ctx, &userconfigs.Profile{})))
		assert.True(t, calcerr.IsNotFound(repo.Update(ctx, &userconfigs.Profile{ID: "nope"})))
		assert.True(t, calcerr.IsInvalidArgument(repo.Delete(ctx, "")))
		_, err := repo.Get(ctx, "")
		assert.True(t, calcerr.IsInvalidArgument(err))
	})
}

func TestInMemoryRepositoryConcurrentCreate(t *testing.T) {
	repo := userconfigs.NewInMemoryRepository(nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.Create(ctx, &userconfigs.Profile{Name: "p"}))
		}()
	}
	wg.Wait()

	profiles, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, profiles, 20)
}
