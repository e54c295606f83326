package usecases

import (
	"context"

	"iops/internal/application/usage/dto"
	"iops/internal/domain/usage"
	"iops/internal/domain/user"
)

// StatsCache is an optional read-through cache for usage stats snapshots.
// Entries are short-lived and invalidated on every counter mutation, so a
// stale snapshot can never mask a quota denial for long.
type StatsCache interface {
	Get(ctx context.Context, userID uint, monthYear string) (*dto.UsageStats, error)
	Set(ctx context.Context, userID uint, monthYear string, stats *dto.UsageStats) error
	Invalidate(ctx context.Context, userID uint, monthYear string) error
}

// QuotaNotifier delivers the one-time notification sent when a user consumes
// the last unit of a capped resource. Delivery is best-effort; failures are
// logged, never propagated into the metered request.
type QuotaNotifier interface {
	NotifyQuotaReached(ctx context.Context, account *user.User, resource usage.ResourceType, limit int) error
}
