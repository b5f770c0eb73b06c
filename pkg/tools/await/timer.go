package await

import (
	"context"
	"sync"
	"time"
)

var timerPool = sync.Pool{
	New: newTimer,
}

func newTimer() any {
	t := time.NewTimer(time.Hour)
	t.Stop()
	return t
}

type timerAwaiter struct {
	*time.Timer
}

// For waits for d. Waits shorter than minWaitingTime are skipped.
func For(d time.Duration, minWaitingTime time.Duration) Awaiter {
	if d <= 0 || d < minWaitingTime {
		return noAwaiter{}
	}
	timer := timerPool.Get().(*time.Timer)
	timer.Reset(d)
	return &timerAwaiter{timer}
}

func (t *timerAwaiter) Await(ctx context.Context) bool {
	defer func() {
		if !t.Stop() {
			select {
			case <-t.C:
			default:
			}
		}
		timerPool.Put(t.Timer)
	}()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
