package persistence

import (
	"context"
	"errors"
	"time"
)

// ErrNotConfigured is returned by probes of a store the service runs without.
var ErrNotConfigured = errors.New("not configured")

// defaultProbeTimeout bounds every connectivity check so readiness never hangs on a dead peer.
const defaultProbeTimeout = 2 * time.Second

func withProbeTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	return context.WithTimeout(ctx, timeout)
}
