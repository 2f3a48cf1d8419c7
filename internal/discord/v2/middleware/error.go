package middleware

import (
	"errors"
	"fmt"
	"log"

	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/core"
	dnderr "github.com/KirkDiggler/dnd-alias-bot/internal/errors"
)

// ErrorConfig configures error handling behavior
type ErrorConfig struct {
	// LogErrors controls whether unexpected errors are logged
	LogErrors bool

	// DefaultUserMessage is shown when no user-friendly message exists
	DefaultUserMessage string

	// ErrorLogger allows custom logging
	ErrorLogger ErrorLogger
}

// ErrorLogger logs errors
type ErrorLogger func(ctx *core.InteractionContext, err error)

// DefaultErrorConfig returns sensible defaults
func DefaultErrorConfig() *ErrorConfig {
	return &ErrorConfig{
		LogErrors:          true,
		DefaultUserMessage: "An error occurred while processing your request.",
		ErrorLogger:        defaultErrorLogger,
	}
}

// ErrorMiddleware turns handler errors into ephemeral replies.
// Lookups that found nothing ("You have no character active.") are shown as is;
// anything else gets the default message and is logged.
func ErrorMiddleware(config *ErrorConfig) core.Middleware {
	if config == nil {
		config = DefaultErrorConfig()
	}

	return func(next core.Handler) core.Handler {
		return core.HandlerFunc(func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
			result, err := next.Handle(ctx)
			if err == nil {
				return result, nil
			}

			message := userMessage(err)
			if message == "" {
				message = config.DefaultUserMessage
				if config.LogErrors && config.ErrorLogger != nil {
					config.ErrorLogger(ctx, err)
				}
			}

			// Return error result (don't propagate error up)
			return &core.HandlerResult{
				Response: core.NewEphemeralResponse(message),
				Context: map[string]interface{}{
					"error": err,
				},
			}, nil
		})
	}
}

// RecoveryMiddleware recovers from panics
func RecoveryMiddleware() core.Middleware {
	return func(next core.Handler) core.Handler {
		return core.HandlerFunc(func(ctx *core.InteractionContext) (result *core.HandlerResult, err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("[Discord] Panic recovered in handler: %v", r)

					switch v := r.(type) {
					case error:
						err = dnderr.Wrap(v, "handler panicked")
					default:
						err = fmt.Errorf("panic: %v", r)
					}

					result = &core.HandlerResult{
						Response: core.NewEphemeralResponse("An unexpected error occurred. Please try again later."),
						Context: map[string]interface{}{
							"error": err,
						},
					}
					err = nil
				}
			}()

			return next.Handle(ctx)
		})
	}
}

// userMessage picks the text to show for err, or "" when it should stay private
func userMessage(err error) string {
	var handlerErr *core.HandlerError
	if errors.As(err, &handlerErr) && handlerErr.ShowToUser {
		return handlerErr.UserMessage
	}
	return core.UserFacingMessage(err)
}

// defaultErrorLogger provides basic error logging
func defaultErrorLogger(ctx *core.InteractionContext, err error) {
	logCtx := map[string]interface{}{
		"user_id":    ctx.UserID,
		"guild_id":   ctx.GuildID,
		"channel_id": ctx.ChannelID,
		"code":       dnderr.GetCode(err),
	}
	if requestID := RequestID(ctx); requestID != "" {
		logCtx["request_id"] = requestID
	}

	if ctx.IsCommand() {
		logCtx["command"] = ctx.GetCommandName()
		logCtx["subcommand"] = ctx.GetSubcommand()
	} else if ctx.IsComponent() {
		if customID, parseErr := core.ParseCustomID(ctx.GetCustomID()); parseErr == nil {
			logCtx["domain"] = customID.Domain
			logCtx["action"] = customID.Action
		}
	}

	log.Printf("[Discord] Handler error: %v, context: %+v", err, logCtx)
}
