package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"iops/internal/domain/usage"
	"iops/internal/domain/user"
	vo "iops/internal/domain/user/valueobjects"
	"iops/internal/shared/biztime"
	"iops/internal/shared/errors"
)

func newTestUser(t *testing.T, id uint, tier vo.Tier) *user.User {
	t.Helper()
	email, err := vo.NewEmail("user@example.com")
	require.NoError(t, err)
	account, err := user.Reconstruct(id, email, "analyst", "hash", tier, user.RoleUser, true, time.Now(), time.Now())
	require.NoError(t, err)
	return account
}

func newRecordWithCounts(t *testing.T, userID uint, monthYear string, datasets, aiMessages, reports int) *usage.UsageRecord {
	t.Helper()
	record, err := usage.ReconstructUsageRecord(1, userID, monthYear, datasets, aiMessages, reports, time.Now(), time.Now())
	require.NoError(t, err)
	return record
}

func newCheckLimitUseCase(userRepo *mockUserRepository, usageRepo *mockUsageRecordRepository) *CheckUsageLimitUseCase {
	getOrCreate := NewGetOrCreateUsageUseCase(usageRepo, nopLogger{})
	return NewCheckUsageLimitUseCase(userRepo, getOrCreate, usage.NewDefaultPolicyTable(), nopLogger{})
}

func TestCheckUsageLimit_AllowedUnderQuota(t *testing.T) {
	userRepo := new(mockUserRepository)
	usageRepo := new(mockUsageRecordRepository)
	month := biztime.CurrentMonthKey()

	userRepo.On("GetByID", mock.Anything, uint(1)).Return(newTestUser(t, 1, vo.TierFree), nil)
	usageRepo.On("GetByUserAndMonth", mock.Anything, uint(1), month).
		Return(newRecordWithCounts(t, 1, month, 4, 0, 0), nil)

	uc := newCheckLimitUseCase(userRepo, usageRepo)
	result, err := uc.Execute(context.Background(), CheckUsageLimitQuery{UserID: 1, Resource: usage.ResourceDataset})

	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Empty(t, result.Reason)
	assert.Equal(t, 4, result.Current)
	assert.Equal(t, 5, result.Limit)
	userRepo.AssertExpectations(t)
	usageRepo.AssertExpectations(t)
}

func TestCheckUsageLimit_DeniedAtQuota(t *testing.T) {
	userRepo := new(mockUserRepository)
	usageRepo := new(mockUsageRecordRepository)
	month := biztime.CurrentMonthKey()

	userRepo.On("GetByID", mock.Anything, uint(1)).Return(newTestUser(t, 1, vo.TierFree), nil)
	usageRepo.On("GetByUserAndMonth", mock.Anything, uint(1), month).
		Return(newRecordWithCounts(t, 1, month, 5, 0, 0), nil)

	uc := newCheckLimitUseCase(userRepo, usageRepo)
	result, err := uc.Execute(context.Background(), CheckUsageLimitQuery{UserID: 1, Resource: usage.ResourceDataset})

	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Contains(t, result.Reason, "monthly dataset limit (5/5)")
	assert.Contains(t, result.Reason, "upgrade")
}

func TestCheckUsageLimit_UnlimitedTierAlwaysAllowed(t *testing.T) {
	userRepo := new(mockUserRepository)
	usageRepo := new(mockUsageRecordRepository)
	month := biztime.CurrentMonthKey()

	userRepo.On("GetByID", mock.Anything, uint(2)).Return(newTestUser(t, 2, vo.TierPro), nil)
	usageRepo.On("GetByUserAndMonth", mock.Anything, uint(2), month).
		Return(newRecordWithCounts(t, 2, month, 100, 0, 0), nil)

	uc := newCheckLimitUseCase(userRepo, usageRepo)
	result, err := uc.Execute(context.Background(), CheckUsageLimitQuery{UserID: 2, Resource: usage.ResourceDataset})

	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, usage.Unlimited, result.Limit)
	assert.Equal(t, 100, result.Current)
}

func TestCheckUsageLimit_UnknownTierTreatedAsFree(t *testing.T) {
	userRepo := new(mockUserRepository)
	usageRepo := new(mockUsageRecordRepository)
	month := biztime.CurrentMonthKey()

	userRepo.On("GetByID", mock.Anything, uint(3)).Return(newTestUser(t, 3, vo.Tier("platinum")), nil)
	usageRepo.On("GetByUserAndMonth", mock.Anything, uint(3), month).
		Return(newRecordWithCounts(t, 3, month, 0, 50, 0), nil)

	uc := newCheckLimitUseCase(userRepo, usageRepo)
	result, err := uc.Execute(context.Background(), CheckUsageLimitQuery{UserID: 3, Resource: usage.ResourceAIMessage})

	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 50, result.Limit)
}

func TestCheckUsageLimit_LazilyCreatesRecord(t *testing.T) {
	userRepo := new(mockUserRepository)
	usageRepo := new(mockUsageRecordRepository)
	month := biztime.CurrentMonthKey()

	userRepo.On("GetByID", mock.Anything, uint(4)).Return(newTestUser(t, 4, vo.TierFree), nil)
	usageRepo.On("GetByUserAndMonth", mock.Anything, uint(4), month).Return(nil, nil)
	usageRepo.On("Create", mock.Anything, mock.AnythingOfType("*usage.UsageRecord")).Return(nil)

	uc := newCheckLimitUseCase(userRepo, usageRepo)
	result, err := uc.Execute(context.Background(), CheckUsageLimitQuery{UserID: 4, Resource: usage.ResourceReport})

	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 0, result.Current)
	usageRepo.AssertExpectations(t)
}

func TestCheckUsageLimit_UnknownUser(t *testing.T) {
	userRepo := new(mockUserRepository)
	usageRepo := new(mockUsageRecordRepository)

	userRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, nil)

	uc := newCheckLimitUseCase(userRepo, usageRepo)
	_, err := uc.Execute(context.Background(), CheckUsageLimitQuery{UserID: 99, Resource: usage.ResourceDataset})

	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestCheckUsageLimit_UnknownResourceType(t *testing.T) {
	userRepo := new(mockUserRepository)
	usageRepo := new(mockUsageRecordRepository)

	uc := newCheckLimitUseCase(userRepo, usageRepo)
	_, err := uc.Execute(context.Background(), CheckUsageLimitQuery{UserID: 1, Resource: usage.ResourceType("export")})

	require.Error(t, err)
	userRepo.AssertNotCalled(t, "GetByID")
}
