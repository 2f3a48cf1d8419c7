package routers

import (
	"fmt"

	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/handlers"
	"github.com/KirkDiggler/dnd-alias-bot/internal/services"
)

// CounterRouter handles /cc
type CounterRouter struct {
	router  *core.Router
	handler *handlers.CounterHandler
}

// NewCounterRouter creates the /cc router and registers it with the pipeline
func NewCounterRouter(pipeline *core.Pipeline, provider *services.Provider, opts *Options) (*CounterRouter, error) {
	handler, err := handlers.NewCounterHandler(&handlers.CounterHandlerConfig{
		Characters: provider.Characters,
		Counters:   provider.Counters,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create counter handler: %w", err)
	}

	cr := &CounterRouter{
		router:  core.NewRouter(CommandCounter, pipeline),
		handler: handler,
	}

	cr.router.Use(opts.rateLimit()...)
	cr.registerRoutes()
	cr.router.Register()

	return cr, nil
}

func (r *CounterRouter) registerRoutes() {
	r.router.SubcommandFunc(CommandCounter, "create", r.handler.Create)
	r.router.SubcommandFunc(CommandCounter, "set", r.handler.Set)
	r.router.SubcommandFunc(CommandCounter, "mod", r.handler.Mod)
	r.router.SubcommandFunc(CommandCounter, "reset", r.handler.Reset)
	r.router.SubcommandFunc(CommandCounter, "delete", r.handler.Delete)
}
