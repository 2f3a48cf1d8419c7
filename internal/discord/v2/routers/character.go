package routers

import (
	"fmt"

	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/handlers"
	"github.com/KirkDiggler/dnd-alias-bot/internal/services"
)

// CharacterRouter handles all character-related interactions
type CharacterRouter struct {
	router  *core.Router
	handler *handlers.CharacterHandler
}

// NewCharacterRouter creates the /character router and registers it with the pipeline
func NewCharacterRouter(pipeline *core.Pipeline, provider *services.Provider, opts *Options) (*CharacterRouter, error) {
	router := core.NewRouter(CommandCharacter, pipeline)

	handler, err := handlers.NewCharacterHandler(&handlers.CharacterHandlerConfig{
		Characters: provider.Characters,
		Counters:   provider.Counters,
		CustomIDs:  router.GetCustomIDBuilder(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create character handler: %w", err)
	}

	cr := &CharacterRouter{
		router:  router,
		handler: handler,
	}

	router.Use(opts.rateLimit()...)
	cr.registerRoutes()
	router.Register()

	return cr, nil
}

func (r *CharacterRouter) registerRoutes() {
	r.router.SubcommandFunc(CommandCharacter, "show", r.handler.Show)
	r.router.SubcommandFunc(CommandCharacter, "list", r.handler.List)
	r.router.SubcommandFunc(CommandCharacter, "counters", r.handler.Counters)
	r.router.SubcommandFunc(CommandCharacter, "counter", r.handler.Counter)
	r.router.SubcommandFunc(CommandCharacter, "coins", r.handler.Coins)
	r.router.SubcommandFunc(CommandCharacter, "deathsaves", r.handler.DeathSaves)

	r.router.ComponentFunc("activate", r.handler.Activate)
	r.router.ComponentFunc("deathsave", r.handler.DeathSaveButton)
}
