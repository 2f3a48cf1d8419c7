package middleware_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/dnd-alias-bot/internal/clock/mocks"
	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/middleware"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

type brokenStore struct{}

func (brokenStore) Increment(context.Context, string, time.Duration) (int, error) {
	return 0, errors.New("store down")
}

func (brokenStore) Reset(context.Context, string) error { return nil }

func TestMemoryRateLimitStore(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctrl := gomock.NewController(t)
	clock := mocks.NewMockTimeProvider(ctrl)
	t0 := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	store := middleware.NewMemoryRateLimitStore(clock)
	defer store.Close()

	ctx := context.Background()

	clock.EXPECT().Now().Return(t0)
	count, err := store.Increment(ctx, "user-1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	clock.EXPECT().Now().Return(t0.Add(59 * time.Second))
	count, err = store.Increment(ctx, "user-1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// the window has passed
	clock.EXPECT().Now().Return(t0.Add(time.Minute))
	count, err = store.Increment(ctx, "user-1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, store.Reset(ctx, "user-1"))
	clock.EXPECT().Now().Return(t0.Add(time.Minute))
	count, err = store.Increment(ctx, "user-1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMemoryRateLimitStore_CloseTwice(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := middleware.NewMemoryRateLimitStore(nil)
	store.Close()
	store.Close()
}

func TestRateLimitMiddleware(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := middleware.NewMemoryRateLimitStore(nil)
	defer store.Close()

	calls := 0
	handler := core.HandlerFunc(func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
		calls++
		return &core.HandlerResult{Response: core.NewResponse("ok")}, nil
	})
	limited := middleware.UserRateLimitMiddleware(2, time.Minute, store)(handler)

	for i := 0; i < 2; i++ {
		ctx := core.NewTestInteractionContext().AsCommand("character", "show")
		result, err := limited.Handle(ctx.InteractionContext)
		require.NoError(t, err)
		assert.Equal(t, "ok", result.Response.Content)
	}

	ctx := core.NewTestInteractionContext().AsCommand("character", "show")
	result, err := limited.Handle(ctx.InteractionContext)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.True(t, result.Response.Ephemeral)
	assert.Equal(t, "⏱️ You're doing that too fast! Please wait 1m0s before trying again.", result.Response.Content)

	// another user has their own bucket
	other := core.NewTestInteractionContext().WithUserID("someone-else").AsCommand("character", "show")
	_, err = limited.Handle(other.InteractionContext)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRateLimitMiddleware_StoreFailureLetsRequestThrough(t *testing.T) {
	reached := false
	handler := core.HandlerFunc(func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
		reached = true
		return nil, nil
	})

	ctx := core.NewTestInteractionContext().AsCommand("character", "show")
	_, err := middleware.UserRateLimitMiddleware(1, time.Minute, brokenStore{})(handler).Handle(ctx.InteractionContext)

	require.NoError(t, err)
	assert.True(t, reached)
}

func TestRedisRateLimitStore(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := middleware.NewRedisRateLimitStore(client)
	ctx := context.Background()

	mock.ExpectTxPipeline()
	mock.ExpectIncr("ratelimit:user-1").SetVal(3)
	mock.ExpectExpireNX("ratelimit:user-1", time.Minute).SetVal(false)
	mock.ExpectTxPipelineExec()

	count, err := store.Increment(ctx, "user-1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	mock.ExpectDel("ratelimit:user-1").SetVal(1)
	require.NoError(t, store.Reset(ctx, "user-1"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisRateLimitStore_Error(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := middleware.NewRedisRateLimitStore(client)

	mock.ExpectTxPipeline()
	mock.ExpectIncr("ratelimit:user-1").SetErr(errors.New("connection refused"))

	_, err := store.Increment(context.Background(), "user-1", time.Minute)
	assert.Error(t, err)
}
