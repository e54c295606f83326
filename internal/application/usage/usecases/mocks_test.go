package usecases

import (
	"context"

	"github.com/stretchr/testify/mock"

	"iops/internal/application/usage/dto"
	"iops/internal/domain/usage"
	"iops/internal/domain/user"
	"iops/internal/shared/logger"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepository) ListAllIDs(ctx context.Context) ([]uint, error) {
	args := m.Called(ctx)
	if ids := args.Get(0); ids != nil {
		return ids.([]uint), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockUsageRecordRepository struct {
	mock.Mock
}

func (m *mockUsageRecordRepository) GetByUserAndMonth(ctx context.Context, userID uint, monthYear string) (*usage.UsageRecord, error) {
	args := m.Called(ctx, userID, monthYear)
	if r := args.Get(0); r != nil {
		return r.(*usage.UsageRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUsageRecordRepository) Create(ctx context.Context, record *usage.UsageRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockUsageRecordRepository) IncrementCounter(ctx context.Context, userID uint, monthYear string, resource usage.ResourceType) error {
	args := m.Called(ctx, userID, monthYear, resource)
	return args.Error(0)
}

func (m *mockUsageRecordRepository) EnsureRecordsForUsers(ctx context.Context, monthYear string, userIDs []uint) error {
	args := m.Called(ctx, monthYear, userIDs)
	return args.Error(0)
}

func (m *mockUsageRecordRepository) ResetNonZero(ctx context.Context, monthYear string) (int64, error) {
	args := m.Called(ctx, monthYear)
	return args.Get(0).(int64), args.Error(1)
}

type mockStatsCache struct {
	mock.Mock
}

func (m *mockStatsCache) Get(ctx context.Context, userID uint, monthYear string) (*dto.UsageStats, error) {
	args := m.Called(ctx, userID, monthYear)
	if s := args.Get(0); s != nil {
		return s.(*dto.UsageStats), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStatsCache) Set(ctx context.Context, userID uint, monthYear string, stats *dto.UsageStats) error {
	args := m.Called(ctx, userID, monthYear, stats)
	return args.Error(0)
}

func (m *mockStatsCache) Invalidate(ctx context.Context, userID uint, monthYear string) error {
	args := m.Called(ctx, userID, monthYear)
	return args.Error(0)
}

// nopLogger satisfies logger.Interface without asserting on log output.
type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any)                     {}
func (nopLogger) Info(msg string, args ...any)                      {}
func (nopLogger) Warn(msg string, args ...any)                      {}
func (nopLogger) Error(msg string, args ...any)                     {}
func (nopLogger) Debugw(msg string, keysAndValues ...interface{})   {}
func (nopLogger) Infow(msg string, keysAndValues ...interface{})    {}
func (nopLogger) Warnw(msg string, keysAndValues ...interface{})    {}
func (nopLogger) Errorw(msg string, keysAndValues ...interface{})   {}
func (nopLogger) Fatal(msg string, args ...any)                     {}
func (nopLogger) Fatalw(msg string, keysAndValues ...interface{})   {}
func (l nopLogger) With(args ...any) logger.Interface               { return l }
func (l nopLogger) Named(name string) logger.Interface              { return l }
