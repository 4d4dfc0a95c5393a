package shell

import (
	"context"
	"time"
)

// StoreContext derives the context for one store or directory call.
// A non-positive timeout only adds cancellation.
func StoreContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, timeout)
}
