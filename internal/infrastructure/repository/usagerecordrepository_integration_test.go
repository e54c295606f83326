package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"iops/internal/domain/usage"
	"iops/internal/infrastructure/persistence/models"
	"iops/internal/shared/logger"
)

func setupUsageTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.UsageRecordModel{}, &models.UserModel{})
	require.NoError(t, err)

	return db
}

func newUsageRepo(t *testing.T) (usage.UsageRecordRepository, *gorm.DB) {
	db := setupUsageTestDB(t)
	return NewUsageRecordRepository(db, logger.NewLogger()), db
}

func createUsageRecord(t *testing.T, repo usage.UsageRecordRepository, userID uint, monthYear string) *usage.UsageRecord {
	t.Helper()
	record, err := usage.NewUsageRecord(userID, monthYear)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), record))
	return record
}

func TestUsageRecordRepository_CreateAndGet(t *testing.T) {
	repo, _ := newUsageRepo(t)
	ctx := context.Background()

	t.Run("create assigns ID and round-trips", func(t *testing.T) {
		record := createUsageRecord(t, repo, 1, "2025-06")
		assert.NotZero(t, record.ID())

		found, err := repo.GetByUserAndMonth(ctx, 1, "2025-06")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, uint(1), found.UserID())
		assert.Equal(t, "2025-06", found.MonthYear())
		assert.False(t, found.HasUsage())
	})

	t.Run("absent record reads as nil without error", func(t *testing.T) {
		found, err := repo.GetByUserAndMonth(ctx, 42, "2025-06")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("duplicate insert maps to ErrDuplicateRecord", func(t *testing.T) {
		createUsageRecord(t, repo, 2, "2025-06")

		dup, err := usage.NewUsageRecord(2, "2025-06")
		require.NoError(t, err)
		err = repo.Create(ctx, dup)
		assert.ErrorIs(t, err, usage.ErrDuplicateRecord)
	})

	t.Run("same user in different months gets separate rows", func(t *testing.T) {
		createUsageRecord(t, repo, 3, "2024-12")
		createUsageRecord(t, repo, 3, "2025-01")

		december, err := repo.GetByUserAndMonth(ctx, 3, "2024-12")
		require.NoError(t, err)
		january, err := repo.GetByUserAndMonth(ctx, 3, "2025-01")
		require.NoError(t, err)
		assert.NotEqual(t, december.ID(), january.ID())
	})
}

func TestUsageRecordRepository_IncrementCounter(t *testing.T) {
	repo, _ := newUsageRepo(t)
	ctx := context.Background()

	t.Run("increments only the targeted counter", func(t *testing.T) {
		createUsageRecord(t, repo, 1, "2025-06")

		require.NoError(t, repo.IncrementCounter(ctx, 1, "2025-06", usage.ResourceDataset))
		require.NoError(t, repo.IncrementCounter(ctx, 1, "2025-06", usage.ResourceDataset))
		require.NoError(t, repo.IncrementCounter(ctx, 1, "2025-06", usage.ResourceAIMessage))

		found, err := repo.GetByUserAndMonth(ctx, 1, "2025-06")
		require.NoError(t, err)
		assert.Equal(t, 2, found.DatasetsCount())
		assert.Equal(t, 1, found.AIMessagesCount())
		assert.Zero(t, found.ReportsCount())
	})

	t.Run("increment against missing row fails", func(t *testing.T) {
		err := repo.IncrementCounter(ctx, 99, "2025-06", usage.ResourceReport)
		assert.Error(t, err)
	})

	t.Run("unknown resource type is rejected", func(t *testing.T) {
		createUsageRecord(t, repo, 2, "2025-06")
		err := repo.IncrementCounter(ctx, 2, "2025-06", usage.ResourceType("export"))
		assert.ErrorIs(t, err, usage.ErrUnknownResourceType)
	})

	t.Run("rollover month starts from zero", func(t *testing.T) {
		createUsageRecord(t, repo, 3, "2024-12")
		require.NoError(t, repo.IncrementCounter(ctx, 3, "2024-12", usage.ResourceDataset))

		createUsageRecord(t, repo, 3, "2025-01")
		january, err := repo.GetByUserAndMonth(ctx, 3, "2025-01")
		require.NoError(t, err)
		assert.Zero(t, january.DatasetsCount())

		december, err := repo.GetByUserAndMonth(ctx, 3, "2024-12")
		require.NoError(t, err)
		assert.Equal(t, 1, december.DatasetsCount())
	})
}

func TestUsageRecordRepository_EnsureRecordsForUsers(t *testing.T) {
	repo, _ := newUsageRepo(t)
	ctx := context.Background()

	t.Run("creates missing rows and skips existing ones", func(t *testing.T) {
		existing := createUsageRecord(t, repo, 1, "2025-06")
		require.NoError(t, repo.IncrementCounter(ctx, 1, "2025-06", usage.ResourceDataset))

		err := repo.EnsureRecordsForUsers(ctx, "2025-06", []uint{1, 2, 3})
		require.NoError(t, err)

		// The pre-existing row keeps its counters.
		kept, err := repo.GetByUserAndMonth(ctx, 1, "2025-06")
		require.NoError(t, err)
		assert.Equal(t, existing.ID(), kept.ID())
		assert.Equal(t, 1, kept.DatasetsCount())

		for _, id := range []uint{2, 3} {
			found, err := repo.GetByUserAndMonth(ctx, id, "2025-06")
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.False(t, found.HasUsage())
		}
	})

	t.Run("empty user list is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.EnsureRecordsForUsers(ctx, "2025-06", nil))
	})
}

func TestUsageRecordRepository_ResetNonZero(t *testing.T) {
	repo, _ := newUsageRepo(t)
	ctx := context.Background()

	t.Run("resets only users with usage and reports their count", func(t *testing.T) {
		require.NoError(t, repo.EnsureRecordsForUsers(ctx, "2025-06", []uint{1, 2, 3, 4, 5}))
		require.NoError(t, repo.IncrementCounter(ctx, 1, "2025-06", usage.ResourceDataset))
		require.NoError(t, repo.IncrementCounter(ctx, 2, "2025-06", usage.ResourceAIMessage))
		require.NoError(t, repo.IncrementCounter(ctx, 3, "2025-06", usage.ResourceReport))

		affected, err := repo.ResetNonZero(ctx, "2025-06")
		require.NoError(t, err)
		assert.Equal(t, int64(3), affected)

		for _, id := range []uint{1, 2, 3, 4, 5} {
			found, err := repo.GetByUserAndMonth(ctx, id, "2025-06")
			require.NoError(t, err)
			assert.False(t, found.HasUsage(), "user %d should be zeroed", id)
		}
	})

	t.Run("second run affects nobody", func(t *testing.T) {
		affected, err := repo.ResetNonZero(ctx, "2025-06")
		require.NoError(t, err)
		assert.Zero(t, affected)
	})

	t.Run("other months are untouched", func(t *testing.T) {
		createUsageRecord(t, repo, 7, "2025-05")
		require.NoError(t, repo.IncrementCounter(ctx, 7, "2025-05", usage.ResourceDataset))

		_, err := repo.ResetNonZero(ctx, "2025-06")
		require.NoError(t, err)

		may, err := repo.GetByUserAndMonth(ctx, 7, "2025-05")
		require.NoError(t, err)
		assert.Equal(t, 1, may.DatasetsCount())
	})
}
