package await

import "context"

type Awaiter interface {
	// Await blocks until the awaited event or ctx is done.
	// Returns false if ctx was done first.
	Await(ctx context.Context) (waited bool)
}

type noAwaiter struct{}

func (noAwaiter) Await(ctx context.Context) bool {
	return ctx.Err() == nil
}
