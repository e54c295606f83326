package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthKeyOf(t *testing.T) {
	// An instant late on New Year's Eve in a western timezone is already
	// January in UTC; the month key must follow UTC.
	loc := time.FixedZone("UTC-5", -5*3600)
	instant := time.Date(2024, 12, 31, 23, 30, 0, 0, loc)

	assert.Equal(t, "2025-01", MonthKeyOf(instant))
}

func TestValidMonthKey(t *testing.T) {
	valid := []string{"2024-01", "2024-12", "1999-06"}
	for _, key := range valid {
		assert.True(t, ValidMonthKey(key), key)
	}

	invalid := []string{"", "2024-13", "2024-00", "2024-1", "24-01", "2024/01", "2024-01-15"}
	for _, key := range invalid {
		assert.False(t, ValidMonthKey(key), key)
	}
}

func TestMonthStart(t *testing.T) {
	start, err := MonthStart("2024-12")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), start)

	_, err = MonthStart("not-a-month")
	assert.Error(t, err)
}

func TestNextMonthStart(t *testing.T) {
	from := time.Date(2024, 12, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), NextMonthStart(from))

	// Month boundary itself rolls to the following month.
	boundary := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), NextMonthStart(boundary))
}
