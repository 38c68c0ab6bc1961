// Package clock holds the timing helpers shared by the settlement loops.
package clock

import (
	"context"
	"time"
)

// SleepWithContext pauses for d, or returns the context's error if it ends
// first. A non-positive duration returns immediately, still reporting an
// already-ended context.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
