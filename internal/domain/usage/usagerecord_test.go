package usage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUsageRecord(t *testing.T) {
	record, err := NewUsageRecord(42, "2025-08")
	require.NoError(t, err)

	assert.Equal(t, uint(42), record.UserID())
	assert.Equal(t, "2025-08", record.MonthYear())
	assert.Equal(t, 0, record.DatasetsCount())
	assert.Equal(t, 0, record.AIMessagesCount())
	assert.Equal(t, 0, record.ReportsCount())
	assert.False(t, record.HasUsage())
}

func TestNewUsageRecord_Invalid(t *testing.T) {
	_, err := NewUsageRecord(0, "2025-08")
	assert.Error(t, err)

	_, err = NewUsageRecord(42, "2025-8")
	assert.ErrorIs(t, err, ErrInvalidMonthKey)

	_, err = NewUsageRecord(42, "")
	assert.ErrorIs(t, err, ErrInvalidMonthKey)
}

func TestUsageRecord_IncrementIsIndependent(t *testing.T) {
	record, err := NewUsageRecord(1, "2025-08")
	require.NoError(t, err)

	require.NoError(t, record.Increment(ResourceDataset))
	require.NoError(t, record.Increment(ResourceDataset))
	require.NoError(t, record.Increment(ResourceAIMessage))

	assert.Equal(t, 2, record.DatasetsCount())
	assert.Equal(t, 1, record.AIMessagesCount())
	assert.Equal(t, 0, record.ReportsCount())
	assert.True(t, record.HasUsage())
}

func TestUsageRecord_IncrementUnknownResource(t *testing.T) {
	record, err := NewUsageRecord(1, "2025-08")
	require.NoError(t, err)

	err = record.Increment(ResourceType("export"))
	assert.ErrorIs(t, err, ErrUnknownResourceType)
	assert.False(t, record.HasUsage())
}

func TestUsageRecord_Reset(t *testing.T) {
	record, err := ReconstructUsageRecord(7, 1, "2025-08", 4, 50, 3,
		time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.True(t, record.HasUsage())

	record.Reset()

	assert.Equal(t, 0, record.DatasetsCount())
	assert.Equal(t, 0, record.AIMessagesCount())
	assert.Equal(t, 0, record.ReportsCount())
	assert.False(t, record.HasUsage())
}

func TestReconstructUsageRecord_RejectsNegativeCounters(t *testing.T) {
	_, err := ReconstructUsageRecord(7, 1, "2025-08", -1, 0, 0, time.Now(), time.Now())
	assert.Error(t, err)
}

func TestUsageRecord_CounterFor(t *testing.T) {
	record, err := ReconstructUsageRecord(7, 1, "2025-08", 4, 50, 3, time.Now(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, 4, record.CounterFor(ResourceDataset))
	assert.Equal(t, 50, record.CounterFor(ResourceAIMessage))
	assert.Equal(t, 3, record.CounterFor(ResourceReport))
	assert.Equal(t, 0, record.CounterFor(ResourceType("bogus")))
}
