package middleware

import (
	"slices"

	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/core"
)

// TypingMiddleware shows the typing indicator in the channel before the handler runs.
// With no commands listed it applies to every slash command. Repeated indicators
// within one interaction are debounced by the context itself.
func TypingMiddleware(commands ...string) core.Middleware {
	return func(next core.Handler) core.Handler {
		return core.HandlerFunc(func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
			if ctx.IsCommand() && (len(commands) == 0 || slices.Contains(commands, ctx.GetCommandName())) {
				ctx.TriggerTyping()
			}
			return next.Handle(ctx)
		})
	}
}
