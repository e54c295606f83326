package usage

import (
	"errors"
	"fmt"
	"time"

	"iops/internal/shared/biztime"
)

// UsageRecord tracks one user's consumption of the metered resources for one
// calendar month. Exactly one record exists per (user, month) pair; the
// persistence layer enforces this with a unique constraint, never application
// logic alone.
type UsageRecord struct {
	id              uint
	userID          uint
	monthYear       string
	datasetsCount   int
	aiMessagesCount int
	reportsCount    int
	createdAt       time.Time
	updatedAt       time.Time
}

// NewUsageRecord creates a zeroed record for a user and month key.
func NewUsageRecord(userID uint, monthYear string) (*UsageRecord, error) {
	if userID == 0 {
		return nil, errors.New("user ID cannot be zero")
	}
	if !biztime.ValidMonthKey(monthYear) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMonthKey, monthYear)
	}

	now := biztime.NowUTC()
	return &UsageRecord{
		userID:    userID,
		monthYear: monthYear,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructUsageRecord rebuilds a record from persisted state.
func ReconstructUsageRecord(
	id uint,
	userID uint,
	monthYear string,
	datasetsCount int,
	aiMessagesCount int,
	reportsCount int,
	createdAt time.Time,
	updatedAt time.Time,
) (*UsageRecord, error) {
	if id == 0 {
		return nil, errors.New("record ID cannot be zero")
	}
	if userID == 0 {
		return nil, errors.New("user ID cannot be zero")
	}
	if !biztime.ValidMonthKey(monthYear) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMonthKey, monthYear)
	}
	if datasetsCount < 0 || aiMessagesCount < 0 || reportsCount < 0 {
		return nil, errors.New("counters cannot be negative")
	}

	return &UsageRecord{
		id:              id,
		userID:          userID,
		monthYear:       monthYear,
		datasetsCount:   datasetsCount,
		aiMessagesCount: aiMessagesCount,
		reportsCount:    reportsCount,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

// Increment adds one unit of the given resource type. The three counters are
// independent; incrementing one never touches the others.
func (r *UsageRecord) Increment(resource ResourceType) error {
	switch resource {
	case ResourceDataset:
		r.datasetsCount++
	case ResourceAIMessage:
		r.aiMessagesCount++
	case ResourceReport:
		r.reportsCount++
	default:
		return fmt.Errorf("%w: %q", ErrUnknownResourceType, resource)
	}
	r.updatedAt = biztime.NowUTC()
	return nil
}

// CounterFor returns the current count for the given resource type.
func (r *UsageRecord) CounterFor(resource ResourceType) int {
	switch resource {
	case ResourceDataset:
		return r.datasetsCount
	case ResourceAIMessage:
		return r.aiMessagesCount
	case ResourceReport:
		return r.reportsCount
	default:
		return 0
	}
}

// Reset forces all counters back to zero regardless of their prior value.
func (r *UsageRecord) Reset() {
	r.datasetsCount = 0
	r.aiMessagesCount = 0
	r.reportsCount = 0
	r.updatedAt = biztime.NowUTC()
}

// HasUsage reports whether any counter is non-zero.
func (r *UsageRecord) HasUsage() bool {
	return r.datasetsCount > 0 || r.aiMessagesCount > 0 || r.reportsCount > 0
}

func (r *UsageRecord) ID() uint {
	return r.id
}

func (r *UsageRecord) UserID() uint {
	return r.userID
}

func (r *UsageRecord) MonthYear() string {
	return r.monthYear
}

func (r *UsageRecord) DatasetsCount() int {
	return r.datasetsCount
}

func (r *UsageRecord) AIMessagesCount() int {
	return r.aiMessagesCount
}

func (r *UsageRecord) ReportsCount() int {
	return r.reportsCount
}

func (r *UsageRecord) CreatedAt() time.Time {
	return r.createdAt
}

func (r *UsageRecord) UpdatedAt() time.Time {
	return r.updatedAt
}

// SetID assigns the persistence identity after the first insert.
func (r *UsageRecord) SetID(id uint) error {
	if id == 0 {
		return errors.New("record ID cannot be zero")
	}
	r.id = id
	return nil
}
