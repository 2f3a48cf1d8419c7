package middleware

import (
	"log"
	"slices"
	"time"

	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/core"
)

// DeferConfig configures the defer middleware
type DeferConfig struct {
	// AlwaysDefer forces deferred response for all interactions
	AlwaysDefer bool

	// EphemeralByDefault makes deferred responses ephemeral by default
	EphemeralByDefault bool

	// DeferAfter defers if handler doesn't respond within this duration
	// Set to 0 to disable auto-defer
	DeferAfter time.Duration

	// SkipCommands lists commands that always answer quickly
	SkipCommands []string
}

// DefaultDeferConfig returns a sensible default configuration
func DefaultDeferConfig() *DeferConfig {
	return &DeferConfig{
		DeferAfter: 2 * time.Second, // Discord requires response within 3s
	}
}

type handlerResponse struct {
	result *core.HandlerResult
	err    error
}

// DeferMiddleware handles Discord's 3-second response requirement.
// Slow lookups against the stores are the usual reason a handler runs long.
func DeferMiddleware(config *DeferConfig) core.Middleware {
	if config == nil {
		config = DefaultDeferConfig()
	}

	return func(next core.Handler) core.Handler {
		return core.HandlerFunc(func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
			responder, ok := ctx.Value("responder").(core.InteractionResponder)
			if !ok {
				return next.Handle(ctx)
			}

			if ctx.IsCommand() && slices.Contains(config.SkipCommands, ctx.GetCommandName()) {
				return next.Handle(ctx)
			}

			if config.AlwaysDefer {
				if err := responder.Defer(config.EphemeralByDefault); err != nil {
					log.Printf("[Discord] Failed to defer interaction: %v", err)
				}
				result, err := next.Handle(ctx)
				if result != nil {
					result.Deferred = true
				}
				return result, err
			}

			if config.DeferAfter <= 0 {
				return next.Handle(ctx)
			}

			// Buffered so the handler goroutine never blocks on send
			responseChan := make(chan handlerResponse, 1)
			go func() {
				result, err := next.Handle(ctx)
				responseChan <- handlerResponse{result, err}
			}()

			timer := time.NewTimer(config.DeferAfter)
			defer timer.Stop()

			select {
			case resp := <-responseChan:
				return resp.result, resp.err

			case <-timer.C:
				ephemeral := config.EphemeralByDefault || ctx.IsComponent()
				if err := responder.Defer(ephemeral); err != nil {
					log.Printf("[Discord] Failed to defer interaction after timeout: %v", err)
				}

				resp := <-responseChan
				if resp.result != nil {
					resp.result.Deferred = true
				}
				return resp.result, resp.err
			}
		})
	}
}
