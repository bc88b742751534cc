package web

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// ErrBusy is returned when no conversion slot frees up within the queue
// timeout.
var ErrBusy = errors.New("too many concurrent conversions")

// Limiter bounds the number of workbooks converted at the same time. A
// workbook is held in memory several times over while it converts, so the
// limit caps peak memory.
type Limiter struct {
	slots  chan struct{}
	wait   time.Duration
	active atomic.Int64
}

// NewLimiter allows max conversions at once; callers wait up to wait for a
// slot. Non-positive values fall back to 4 and 30s.
func NewLimiter(max int, wait time.Duration) *Limiter {
	if max <= 0 {
		max = 4
	}
	if wait <= 0 {
		wait = 30 * time.Second
	}
	return &Limiter{slots: make(chan struct{}, max), wait: wait}
}

// Acquire takes a slot. Every successful Acquire must be paired with Release.
func (l *Limiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrBusy
	}
}

// Release returns a slot taken by Acquire.
func (l *Limiter) Release() {
	l.active.Add(-1)
	<-l.slots
}

// Active reports the conversions in progress.
func (l *Limiter) Active() int {
	return int(l.active.Load())
}

// Max reports the slot count.
func (l *Limiter) Max() int {
	return cap(l.slots)
}

// Drain blocks until no conversion is in progress or ctx ends.
func (l *Limiter) Drain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for l.Active() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}
