// Package ratelimit provides transport-level abuse protection, independent
// of the monthly usage quotas.
package ratelimit

import "context"

// Config holds the per-window request caps. A non-positive cap disables
// that window.
type Config struct {
	PerMinute int
	PerHour   int
}

// Limiter throttles request rates per key.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
