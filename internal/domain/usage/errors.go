package usage

import "errors"

var (
	// ErrUnknownResourceType signals a resource type outside the metered set.
	ErrUnknownResourceType = errors.New("unknown resource type")

	// ErrInvalidMonthKey signals a month key not in "YYYY-MM" form.
	ErrInvalidMonthKey = errors.New("invalid month key")

	// ErrDuplicateRecord is returned by the repository when an insert collides
	// with the (user_id, month_year) unique constraint. Callers resolve it by
	// re-reading the winning row.
	ErrDuplicateRecord = errors.New("usage record already exists for user and month")
)
