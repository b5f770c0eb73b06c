package await

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFor(t *testing.T) {
	ctx := context.Background()

	start := time.Now()
	require.True(t, For(20*time.Millisecond, 0).Await(ctx))
	require.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	require.True(t, For(time.Hour, 2*time.Hour).Await(ctx))
}

func TestFor_cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.False(t, For(time.Hour, 0).Await(ctx))
	require.False(t, For(0, 0).Await(ctx))
}
