package usage

import "context"

// UsageRecordRepository is the persistence port for per-user-per-month
// counters. Implementations must back uniqueness of (user_id, month_year)
// with a storage-level constraint and surface collisions as
// ErrDuplicateRecord so callers can resolve races by re-reading.
type UsageRecordRepository interface {
	// GetByUserAndMonth returns the record for the pair, or nil when absent.
	GetByUserAndMonth(ctx context.Context, userID uint, monthYear string) (*UsageRecord, error)

	// Create persists a new record immediately. A concurrent insert losing the
	// race against the unique constraint returns ErrDuplicateRecord.
	Create(ctx context.Context, record *UsageRecord) error

	// IncrementCounter adds exactly one unit to the resource's counter with a
	// single-statement relative update, so concurrent increments never lose
	// writes. The record must already exist.
	IncrementCounter(ctx context.Context, userID uint, monthYear string, resource ResourceType) error

	// EnsureRecordsForUsers bulk-creates zeroed records for every listed user
	// missing one for the month. Existing records are left untouched.
	EnsureRecordsForUsers(ctx context.Context, monthYear string, userIDs []uint) error

	// ResetNonZero zeroes every counter of the month's records that have any
	// non-zero counter, in one bulk statement, and returns how many records
	// were actually changed.
	ResetNonZero(ctx context.Context, monthYear string) (int64, error)
}
