package routers

import (
	"fmt"

	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/handlers"
	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/middleware"
	"github.com/KirkDiggler/dnd-alias-bot/internal/services"
)

// GameRouter handles /game
type GameRouter struct {
	router  *core.Router
	handler *handlers.GameHandler
	dmOnly  core.Middleware

	// serverDMOnly also turns away direct messages, which have no server settings
	serverDMOnly core.Middleware
}

// NewGameRouter creates the /game router and registers it with the pipeline.
// Skipping time, starting and ending explorations and changing settings are
// reserved for the server's DMs.
func NewGameRouter(pipeline *core.Pipeline, provider *services.Provider, opts *Options) (*GameRouter, error) {
	handler, err := handlers.NewGameHandler(&handlers.GameHandlerConfig{
		Explorations: provider.Explorations,
		Settings:     provider.Settings,
		Roller:       provider.Roller,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create game handler: %w", err)
	}

	serverDMOnly := middleware.AuthorizationMiddleware(&middleware.AuthConfig{
		RequireGuildMember: true,
		CustomChecker:      middleware.DMCheck(opts.roleNamer()),
	})

	gr := &GameRouter{
		router:       core.NewRouter(CommandGame, pipeline),
		handler:      handler,
		dmOnly:       middleware.DMRequiredMiddleware(opts.roleNamer()),
		serverDMOnly: serverDMOnly,
	}

	// Every /game response starts with the typing indicator
	gr.router.Use(opts.rateLimit()...)
	gr.router.Use(middleware.TypingMiddleware())
	gr.registerRoutes()
	gr.router.Register()

	return gr, nil
}

func (r *GameRouter) registerRoutes() {
	r.router.SubcommandFunc(CommandGame, "combat", r.handler.Combat)
	r.router.SubcommandFunc(CommandGame, "exploration", r.handler.Exploration)
	r.router.SubcommandFunc(CommandGame, "encounter", r.handler.Encounter)

	r.router.Subcommand(CommandGame, "skip", r.dmOnly(core.HandlerFunc(r.handler.Skip)))

	r.router.SubcommandGroup(CommandGame, GroupExplore, "begin", r.dmOnly(core.HandlerFunc(r.handler.ExploreBegin)))
	r.router.SubcommandGroupFunc(CommandGame, GroupExplore, "join", r.handler.ExploreJoin)
	r.router.SubcommandGroupFunc(CommandGame, GroupExplore, "enctimer", r.handler.ExploreEncounterTimer)
	r.router.SubcommandGroupFunc(CommandGame, GroupExplore, "chance", r.handler.ExploreChance)
	r.router.SubcommandGroup(CommandGame, GroupExplore, "end", r.dmOnly(core.HandlerFunc(r.handler.ExploreEnd)))
	r.router.Subcommand(CommandGame, "settings", r.serverDMOnly(core.HandlerFunc(r.handler.Settings)))
}
