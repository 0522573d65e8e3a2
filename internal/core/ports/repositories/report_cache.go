package repositories

import (
	"context"
	"time"
)

// ReportCache caches computed dashboard payloads per user and month.
// A cache miss returns (nil, nil); failures are surfaced as errors so the
// caller can fall through to recomputation.
type ReportCache interface {
	Get(ctx context.Context, userID, month string) ([]byte, error)
	Set(ctx context.Context, userID, month string, payload []byte, ttl time.Duration) error
	// Invalidate drops every cached month for the user; called on any
	// transaction write.
	Invalidate(ctx context.Context, userID string) error
}
