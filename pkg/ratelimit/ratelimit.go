package ratelimit

import (
	"context"
	"time"
)

// Lock paces calls to an external service, enforcing a minimum wait between
// the end of one call and the start of the next.
type Lock interface {
	Lock(ctx context.Context) (unlock func())
}

type lock struct {
	wait time.Duration
	c    chan struct{}
	last time.Time
}

func New(wait time.Duration) Lock {
	c := make(chan struct{}, 1)
	c <- struct{}{}
	return &lock{
		wait: wait,
		c:    c,
	}
}

func (l *lock) Lock(ctx context.Context) func() {
	select {
	case <-ctx.Done():
		return func() {}
	case <-l.c:
	}
	if elapsed := time.Since(l.last); elapsed < l.wait {
		t := time.NewTimer(l.wait - elapsed)
		defer t.Stop()
		select {
		case <-ctx.Done():
		case <-t.C:
		}
	}
	return func() {
		l.last = time.Now()
		select {
		case l.c <- struct{}{}:
		default:
		}
	}
}
