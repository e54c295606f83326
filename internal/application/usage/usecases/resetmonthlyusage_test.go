package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"iops/internal/shared/biztime"
)

func TestResetMonthlyUsage_ReportsAffectedUsers(t *testing.T) {
	userRepo := new(mockUserRepository)
	usageRepo := new(mockUsageRecordRepository)
	month := biztime.CurrentMonthKey()

	userRepo.On("ListAllIDs", mock.Anything).Return([]uint{1, 2, 3}, nil)
	usageRepo.On("EnsureRecordsForUsers", mock.Anything, month, []uint{1, 2, 3}).Return(nil)
	usageRepo.On("ResetNonZero", mock.Anything, month).Return(int64(2), nil)

	uc := NewResetMonthlyUsageUseCase(userRepo, usageRepo, nopLogger{})
	affected, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)
	usageRepo.AssertExpectations(t)
}

func TestResetMonthlyUsage_SecondRunAffectsNobody(t *testing.T) {
	userRepo := new(mockUserRepository)
	usageRepo := new(mockUsageRecordRepository)
	month := biztime.CurrentMonthKey()

	userRepo.On("ListAllIDs", mock.Anything).Return([]uint{1, 2}, nil)
	usageRepo.On("EnsureRecordsForUsers", mock.Anything, month, []uint{1, 2}).Return(nil)
	usageRepo.On("ResetNonZero", mock.Anything, month).Return(int64(0), nil)

	uc := NewResetMonthlyUsageUseCase(userRepo, usageRepo, nopLogger{})
	affected, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestResetMonthlyUsage_BatchesLargePopulations(t *testing.T) {
	userRepo := new(mockUserRepository)
	usageRepo := new(mockUsageRecordRepository)
	month := biztime.CurrentMonthKey()

	ids := make([]uint, 1201)
	for i := range ids {
		ids[i] = uint(i + 1)
	}

	userRepo.On("ListAllIDs", mock.Anything).Return(ids, nil)
	usageRepo.On("EnsureRecordsForUsers", mock.Anything, month, mock.MatchedBy(func(batch []uint) bool {
		return len(batch) <= ensureBatchSize
	})).Return(nil).Times(3)
	usageRepo.On("ResetNonZero", mock.Anything, month).Return(int64(1201), nil)

	uc := NewResetMonthlyUsageUseCase(userRepo, usageRepo, nopLogger{})
	affected, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(1201), affected)
	usageRepo.AssertExpectations(t)
}

func TestResetMonthlyUsage_EmptyPopulation(t *testing.T) {
	userRepo := new(mockUserRepository)
	usageRepo := new(mockUsageRecordRepository)
	month := biztime.CurrentMonthKey()

	userRepo.On("ListAllIDs", mock.Anything).Return([]uint{}, nil)
	usageRepo.On("ResetNonZero", mock.Anything, month).Return(int64(0), nil)

	uc := NewResetMonthlyUsageUseCase(userRepo, usageRepo, nopLogger{})
	affected, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Zero(t, affected)
	usageRepo.AssertNotCalled(t, "EnsureRecordsForUsers")
}

func TestResetMonthlyUsage_InvalidatesCachedSnapshots(t *testing.T) {
	userRepo := new(mockUserRepository)
	usageRepo := new(mockUsageRecordRepository)
	cache := new(mockStatsCache)
	month := biztime.CurrentMonthKey()

	userRepo.On("ListAllIDs", mock.Anything).Return([]uint{1, 2}, nil)
	usageRepo.On("EnsureRecordsForUsers", mock.Anything, month, []uint{1, 2}).Return(nil)
	usageRepo.On("ResetNonZero", mock.Anything, month).Return(int64(2), nil)
	cache.On("Invalidate", mock.Anything, uint(1), month).Return(nil)
	cache.On("Invalidate", mock.Anything, uint(2), month).Return(nil)

	uc := NewResetMonthlyUsageUseCase(userRepo, usageRepo, nopLogger{})
	uc.SetStatsCache(cache)
	affected, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)
	cache.AssertExpectations(t)
}

func TestResetMonthlyUsage_CacheFailureKeepsReset(t *testing.T) {
	userRepo := new(mockUserRepository)
	usageRepo := new(mockUsageRecordRepository)
	cache := new(mockStatsCache)
	month := biztime.CurrentMonthKey()

	userRepo.On("ListAllIDs", mock.Anything).Return([]uint{1, 2}, nil)
	usageRepo.On("EnsureRecordsForUsers", mock.Anything, month, []uint{1, 2}).Return(nil)
	usageRepo.On("ResetNonZero", mock.Anything, month).Return(int64(2), nil)
	cache.On("Invalidate", mock.Anything, uint(1), month).Return(errors.New("redis down"))

	uc := NewResetMonthlyUsageUseCase(userRepo, usageRepo, nopLogger{})
	uc.SetStatsCache(cache)
	affected, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything, uint(2), month)
}

func TestResetMonthlyUsage_EnsureFailureAborts(t *testing.T) {
	userRepo := new(mockUserRepository)
	usageRepo := new(mockUsageRecordRepository)
	month := biztime.CurrentMonthKey()

	userRepo.On("ListAllIDs", mock.Anything).Return([]uint{1}, nil)
	usageRepo.On("EnsureRecordsForUsers", mock.Anything, month, []uint{1}).
		Return(errors.New("table locked"))

	uc := NewResetMonthlyUsageUseCase(userRepo, usageRepo, nopLogger{})
	_, err := uc.Execute(context.Background())

	require.Error(t, err)
	usageRepo.AssertNotCalled(t, "ResetNonZero")
}
