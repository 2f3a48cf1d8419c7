package middleware

import (
	"log"
	"strings"
	"time"

	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/dnd-alias-bot/internal/uuid"
)

// RequestIDKey is the context key RequestIDMiddleware stores the ID under
type RequestIDKey struct{}

// LogConfig configures logging behavior
type LogConfig struct {
	// LogRequests logs incoming interactions
	LogRequests bool

	// LogDuration logs handler execution time along with what the command acted on
	LogDuration bool

	// LogErrors logs errors (if not using ErrorMiddleware)
	LogErrors bool

	// Logger allows custom logging implementation
	Logger Logger

	// Now reads the clock, defaults to time.Now
	Now func() time.Time
}

// Logger is a custom logging interface
type Logger interface {
	LogRequest(ctx *core.InteractionContext)
	LogCompletion(ctx *core.InteractionContext, duration time.Duration)
	LogError(ctx *core.InteractionContext, err error)
}

// DefaultLogConfig returns sensible defaults
func DefaultLogConfig() *LogConfig {
	return &LogConfig{
		LogRequests: true,
		LogDuration: true,
		LogErrors:   true,
		Logger:      &defaultLogger{},
	}
}

// LoggingMiddleware provides request/response logging
func LoggingMiddleware(config *LogConfig) core.Middleware {
	if config == nil {
		config = DefaultLogConfig()
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}

	return func(next core.Handler) core.Handler {
		return core.HandlerFunc(func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
			if config.Logger == nil {
				return next.Handle(ctx)
			}

			if config.LogRequests {
				config.Logger.LogRequest(ctx)
			}

			start := now()
			result, err := next.Handle(ctx)

			if err != nil && config.LogErrors {
				config.Logger.LogError(ctx, err)
			}
			if config.LogDuration {
				config.Logger.LogCompletion(ctx, now().Sub(start))
			}

			return result, err
		})
	}
}

// defaultLogger provides basic stdout logging
type defaultLogger struct{}

func (l *defaultLogger) LogRequest(ctx *core.InteractionContext) {
	log.Printf("[Discord] %s, User: %s, Guild: %s, Channel: %s",
		describeInteraction(ctx),
		ctx.UserID,
		ctx.GuildID,
		ctx.ChannelID,
	)
}

func (l *defaultLogger) LogCompletion(ctx *core.InteractionContext, duration time.Duration) {
	log.Printf("[Discord] %s completed in %v%s", describeInteraction(ctx), duration, describeNLP(ctx.NLP))
}

func (l *defaultLogger) LogError(ctx *core.InteractionContext, err error) {
	log.Printf("[Discord] Error in %s: %v", describeInteraction(ctx), err)
}

// describeInteraction names the command or component being handled
func describeInteraction(ctx *core.InteractionContext) string {
	switch {
	case ctx.IsCommand():
		name := "Command: " + ctx.GetCommandName()
		if group := ctx.GetSubcommandGroup(); group != "" {
			name += "/" + group
		}
		if sub := ctx.GetSubcommand(); sub != "" {
			name += "/" + sub
		}
		return name
	case ctx.IsComponent():
		if parsed, err := core.ParseCustomID(ctx.GetCustomID()); err == nil {
			return "Component: " + parsed.Domain + ":" + parsed.Action
		}
		return "Component: " + ctx.GetCustomID()
	case ctx.IsModal():
		return "Modal: " + ctx.GetCustomID()
	}
	return "unknown"
}

// describeNLP renders what the command acted on, or "" if nothing was resolved
func describeNLP(nlp core.NLPMetadata) string {
	var parts []string
	if nlp.IsAlias {
		parts = append(parts, "alias")
	}
	if nlp.Character != nil {
		parts = append(parts, "character="+nlp.Character.Name)
	}
	if nlp.Caster != "" {
		parts = append(parts, "caster="+nlp.Caster)
	}
	if len(nlp.Targets) > 0 {
		parts = append(parts, "targets="+strings.Join(nlp.Targets, ","))
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, " ") + ")"
}

// RequestIDMiddleware adds a unique request ID to the context
func RequestIDMiddleware(ids uuid.Generator) core.Middleware {
	if ids == nil {
		ids = uuid.NewGoogleUUIDGenerator()
	}

	return func(next core.Handler) core.Handler {
		return core.HandlerFunc(func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
			requestID := ids.New()
			ctx.WithValue(RequestIDKey{}, requestID)

			log.Printf("[%s] Starting request", requestID)

			return next.Handle(ctx)
		})
	}
}

// RequestID returns the ID RequestIDMiddleware assigned, or ""
func RequestID(ctx *core.InteractionContext) string {
	id, _ := ctx.Value(RequestIDKey{}).(string)
	return id
}
