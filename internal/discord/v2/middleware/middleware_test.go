package middleware_test

import (
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/dnd-alias-bot/internal/clock/mocks"
	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/core"
	mockcore "github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/core/mock"
	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/middleware"
	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

type fixedIDs string

func (f fixedIDs) New() string { return string(f) }

type recordingLogger struct {
	requests    int
	completions []time.Duration
	errs        []error
	nlp         core.NLPMetadata
}

func (r *recordingLogger) LogRequest(ctx *core.InteractionContext) { r.requests++ }

func (r *recordingLogger) LogCompletion(ctx *core.InteractionContext, duration time.Duration) {
	r.completions = append(r.completions, duration)
	r.nlp = ctx.NLP
}

func (r *recordingLogger) LogError(ctx *core.InteractionContext, err error) {
	r.errs = append(r.errs, err)
}

func TestTypingMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	typing := mockcore.NewMockTypingNotifier(ctrl)
	clock := mocks.NewMockTimeProvider(ctrl)
	t0 := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	// middleware and handler both ask for typing; only the first one goes out
	clock.EXPECT().Now().Return(t0).Times(2)
	typing.EXPECT().ChannelTyping("chan-1").Return(nil).Times(1)

	handler := core.HandlerFunc(func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
		ctx.TriggerTyping()
		return &core.HandlerResult{Response: core.NewResponse("ok")}, nil
	})

	ctx := core.NewTestInteractionContext().
		WithChannelID("chan-1").
		AsCommand("game", "encounter").
		WithResolvers(&core.Resolvers{Typing: typing, Clock: clock})

	_, err := middleware.TypingMiddleware("game")(handler).Handle(ctx.InteractionContext)
	require.NoError(t, err)
}

func TestTypingMiddleware_OtherCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	typing := mockcore.NewMockTypingNotifier(ctrl)

	ctx := core.NewTestInteractionContext().
		AsCommand("character", "show").
		WithResolvers(&core.Resolvers{Typing: typing})

	handler := core.HandlerFunc(func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
		return nil, nil
	})
	_, err := middleware.TypingMiddleware("game")(handler).Handle(ctx.InteractionContext)
	require.NoError(t, err)
}

func TestLoggingMiddleware(t *testing.T) {
	logger := &recordingLogger{}
	times := []time.Time{
		time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC),
		time.Date(2026, 3, 14, 15, 9, 26, int(250*time.Millisecond), time.UTC),
	}
	config := middleware.DefaultLogConfig()
	config.Logger = logger
	config.Now = func() time.Time {
		now := times[0]
		times = times[1:]
		return now
	}

	char := &entities.Character{Name: "Kestrel"}
	handlerErr := errors.New("boom")
	handler := core.HandlerFunc(func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
		ctx.NLP.Character = char
		return nil, handlerErr
	})

	ctx := core.NewTestInteractionContext().AsCommand("character", "show")
	_, err := middleware.LoggingMiddleware(config)(handler).Handle(ctx.InteractionContext)

	assert.Equal(t, handlerErr, err)
	assert.Equal(t, 1, logger.requests)
	assert.Equal(t, []time.Duration{250 * time.Millisecond}, logger.completions)
	assert.Equal(t, []error{handlerErr}, logger.errs)
	assert.Same(t, char, logger.nlp.Character)
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := core.HandlerFunc(func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
		seen = middleware.RequestID(ctx)
		return nil, nil
	})

	ctx := core.NewTestInteractionContext().AsCommand("character", "show")
	_, err := middleware.RequestIDMiddleware(fixedIDs("req-1"))(handler).Handle(ctx.InteractionContext)

	require.NoError(t, err)
	assert.Equal(t, "req-1", seen)
}

func TestDeferMiddleware_AlwaysDefer(t *testing.T) {
	defer goleak.VerifyNone(t)

	responder := core.NewMockResponder()
	ctx := core.NewTestInteractionContext().AsCommand("game", "combat")
	ctx.InteractionContext.WithValue("responder", responder)

	handler := core.HandlerFunc(func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
		return &core.HandlerResult{Response: core.NewResponse("ok")}, nil
	})

	mw := middleware.DeferMiddleware(&middleware.DeferConfig{AlwaysDefer: true, EphemeralByDefault: true})
	result, err := mw(handler).Handle(ctx.InteractionContext)

	require.NoError(t, err)
	assert.True(t, result.Deferred)
	assert.Equal(t, []bool{true}, responder.DeferCalls)
}

func TestDeferMiddleware_SlowHandler(t *testing.T) {
	defer goleak.VerifyNone(t)

	responder := core.NewMockResponder()
	ctx := core.NewTestInteractionContext().AsCommand("game", "encounter")
	ctx.InteractionContext.WithValue("responder", responder)

	release := make(chan struct{})
	handler := core.HandlerFunc(func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
		<-release
		return &core.HandlerResult{Response: core.NewResponse("rolled")}, nil
	})

	mw := middleware.DeferMiddleware(&middleware.DeferConfig{DeferAfter: 10 * time.Millisecond})
	go func() {
		time.Sleep(50 * time.Millisecond)
		close(release)
	}()
	result, err := mw(handler).Handle(ctx.InteractionContext)

	require.NoError(t, err)
	assert.True(t, result.Deferred)
	assert.Equal(t, []bool{false}, responder.DeferCalls)
}

func TestDeferMiddleware_FastHandler(t *testing.T) {
	defer goleak.VerifyNone(t)

	responder := core.NewMockResponder()
	ctx := core.NewTestInteractionContext().AsCommand("character", "show")
	ctx.InteractionContext.WithValue("responder", responder)

	handler := core.HandlerFunc(func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
		return &core.HandlerResult{Response: core.NewResponse("ok")}, nil
	})

	result, err := middleware.DeferMiddleware(&middleware.DeferConfig{DeferAfter: time.Minute})(handler).Handle(ctx.InteractionContext)

	require.NoError(t, err)
	assert.False(t, result.Deferred)
	assert.Empty(t, responder.DeferCalls)
}
