package core

import (
	"context"
	"time"
)

// TimeProvider abstracts time operations for the domain. The eligibility rules
// compare "now" against event dates, so tests need to control the clock.
type TimeProvider interface {
	Now() time.Time
	Until(t time.Time) time.Duration
	WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc)
}
