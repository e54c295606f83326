package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"iops/internal/application/usage/dto"
	"iops/internal/domain/usage"
	vo "iops/internal/domain/user/valueobjects"
	"iops/internal/shared/biztime"
	apperrors "iops/internal/shared/errors"
)

func newStatsUseCase(userRepo *mockUserRepository, usageRepo *mockUsageRecordRepository) *GetUsageStatsUseCase {
	getOrCreate := NewGetOrCreateUsageUseCase(usageRepo, nopLogger{})
	return NewGetUsageStatsUseCase(userRepo, getOrCreate, usage.NewDefaultPolicyTable(), nopLogger{})
}

func TestGetUsageStats_FreeTierSnapshot(t *testing.T) {
	userRepo := new(mockUserRepository)
	usageRepo := new(mockUsageRecordRepository)
	month := biztime.CurrentMonthKey()

	userRepo.On("GetByID", mock.Anything, uint(1)).Return(newTestUser(t, 1, vo.TierFree), nil)
	usageRepo.On("GetByUserAndMonth", mock.Anything, uint(1), month).
		Return(newRecordWithCounts(t, 1, month, 3, 12, 1), nil)

	uc := newStatsUseCase(userRepo, usageRepo)
	stats, err := uc.Execute(context.Background(), GetUsageStatsQuery{UserID: 1})

	require.NoError(t, err)
	assert.Equal(t, "free", stats.Tier)
	assert.Equal(t, month, stats.MonthYear)
	assert.Equal(t, dto.ResourceUsage{Current: 3, Limit: 5}, stats.Datasets)
	assert.Equal(t, dto.ResourceUsage{Current: 12, Limit: 50}, stats.AIMessages)
	assert.Equal(t, dto.ResourceUsage{Current: 1, Limit: 3}, stats.Reports)
}

func TestGetUsageStats_ProTierMarksUnlimited(t *testing.T) {
	userRepo := new(mockUserRepository)
	usageRepo := new(mockUsageRecordRepository)
	month := biztime.CurrentMonthKey()

	userRepo.On("GetByID", mock.Anything, uint(2)).Return(newTestUser(t, 2, vo.TierPro), nil)
	usageRepo.On("GetByUserAndMonth", mock.Anything, uint(2), month).
		Return(newRecordWithCounts(t, 2, month, 40, 900, 7), nil)

	uc := newStatsUseCase(userRepo, usageRepo)
	stats, err := uc.Execute(context.Background(), GetUsageStatsQuery{UserID: 2})

	require.NoError(t, err)
	assert.Equal(t, "pro", stats.Tier)
	assert.True(t, stats.Datasets.Unlimited)
	assert.True(t, stats.AIMessages.Unlimited)
	assert.True(t, stats.Reports.Unlimited)
	assert.Equal(t, usage.Unlimited, stats.Datasets.Limit)
	assert.Equal(t, 40, stats.Datasets.Current)
}

func TestGetUsageStats_NewMonthReadsAllZero(t *testing.T) {
	userRepo := new(mockUserRepository)
	usageRepo := new(mockUsageRecordRepository)
	month := biztime.CurrentMonthKey()

	userRepo.On("GetByID", mock.Anything, uint(3)).Return(newTestUser(t, 3, vo.TierFree), nil)
	usageRepo.On("GetByUserAndMonth", mock.Anything, uint(3), month).Return(nil, nil)
	usageRepo.On("Create", mock.Anything, mock.AnythingOfType("*usage.UsageRecord")).Return(nil)

	uc := newStatsUseCase(userRepo, usageRepo)
	stats, err := uc.Execute(context.Background(), GetUsageStatsQuery{UserID: 3})

	require.NoError(t, err)
	assert.Zero(t, stats.Datasets.Current)
	assert.Zero(t, stats.AIMessages.Current)
	assert.Zero(t, stats.Reports.Current)
}

func TestGetUsageStats_UnknownUser(t *testing.T) {
	userRepo := new(mockUserRepository)
	usageRepo := new(mockUsageRecordRepository)

	userRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, nil)

	uc := newStatsUseCase(userRepo, usageRepo)
	_, err := uc.Execute(context.Background(), GetUsageStatsQuery{UserID: 99})

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
	usageRepo.AssertNotCalled(t, "GetByUserAndMonth")
}

func TestGetUsageStats_CacheHitSkipsStore(t *testing.T) {
	userRepo := new(mockUserRepository)
	usageRepo := new(mockUsageRecordRepository)
	cache := new(mockStatsCache)
	month := biztime.CurrentMonthKey()

	cached := &dto.UsageStats{Tier: "free", MonthYear: month}
	cache.On("Get", mock.Anything, uint(1), month).Return(cached, nil)

	uc := newStatsUseCase(userRepo, usageRepo)
	uc.SetStatsCache(cache)
	stats, err := uc.Execute(context.Background(), GetUsageStatsQuery{UserID: 1})

	require.NoError(t, err)
	assert.Same(t, cached, stats)
	userRepo.AssertNotCalled(t, "GetByID")
	usageRepo.AssertNotCalled(t, "GetByUserAndMonth")
}

func TestGetUsageStats_CacheMissPopulatesCache(t *testing.T) {
	userRepo := new(mockUserRepository)
	usageRepo := new(mockUsageRecordRepository)
	cache := new(mockStatsCache)
	month := biztime.CurrentMonthKey()

	cache.On("Get", mock.Anything, uint(1), month).Return(nil, nil)
	userRepo.On("GetByID", mock.Anything, uint(1)).Return(newTestUser(t, 1, vo.TierFree), nil)
	usageRepo.On("GetByUserAndMonth", mock.Anything, uint(1), month).
		Return(newRecordWithCounts(t, 1, month, 1, 2, 3), nil)
	cache.On("Set", mock.Anything, uint(1), month, mock.AnythingOfType("*dto.UsageStats")).Return(nil)

	uc := newStatsUseCase(userRepo, usageRepo)
	uc.SetStatsCache(cache)
	_, err := uc.Execute(context.Background(), GetUsageStatsQuery{UserID: 1})

	require.NoError(t, err)
	cache.AssertExpectations(t)
}

func TestGetUsageStats_CacheReadFailureFallsThrough(t *testing.T) {
	userRepo := new(mockUserRepository)
	usageRepo := new(mockUsageRecordRepository)
	cache := new(mockStatsCache)
	month := biztime.CurrentMonthKey()

	cache.On("Get", mock.Anything, uint(1), month).Return(nil, errors.New("redis down"))
	userRepo.On("GetByID", mock.Anything, uint(1)).Return(newTestUser(t, 1, vo.TierFree), nil)
	usageRepo.On("GetByUserAndMonth", mock.Anything, uint(1), month).
		Return(newRecordWithCounts(t, 1, month, 0, 0, 0), nil)
	// The snapshot is still written back after a failed read.
	cache.On("Set", mock.Anything, uint(1), month, mock.AnythingOfType("*dto.UsageStats")).Return(nil)

	uc := newStatsUseCase(userRepo, usageRepo)
	uc.SetStatsCache(cache)
	stats, err := uc.Execute(context.Background(), GetUsageStatsQuery{UserID: 1})

	require.NoError(t, err)
	assert.Equal(t, "free", stats.Tier)
	cache.AssertExpectations(t)
}
