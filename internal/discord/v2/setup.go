// Package v2 assembles the interaction pipeline: middleware, per-interaction
// resolvers and the command routers.
package v2

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/middleware"
	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/routers"
	"github.com/KirkDiggler/dnd-alias-bot/internal/services"
	"github.com/KirkDiggler/dnd-alias-bot/internal/uuid"
	"github.com/bwmarrin/discordgo"
)

// Config holds what the pipeline is built from
type Config struct {
	Provider *services.Provider

	// TypingCooldown is the quiet period after a typing indicator; zero uses the default
	TypingCooldown time.Duration

	// Typing overrides the session as the typing indicator target
	Typing core.TypingNotifier

	Routers *routers.Options

	RequestIDs uuid.Generator
	Defer      *middleware.DeferConfig
	Log        *middleware.LogConfig
}

// NewPipeline builds the pipeline with its middleware, resolvers and every router registered
func NewPipeline(cfg *Config) (*core.Pipeline, error) {
	if cfg == nil || cfg.Provider == nil {
		return nil, errors.New("service provider is required")
	}
	provider := cfg.Provider

	pipeline := core.NewPipeline()
	pipeline.SetResolvers(&core.Resolvers{
		Characters:     provider.Characters,
		Combats:        provider.Combats,
		Explorations:   provider.Explorations,
		Encounters:     provider.Encounters,
		Settings:       provider.Settings,
		Typing:         cfg.Typing,
		Clock:          provider.Clock,
		TypingCooldown: cfg.TypingCooldown,
	})

	// Recovery sits inside the defer middleware so panics in its goroutine are caught
	pipeline.Use(
		middleware.RequestIDMiddleware(cfg.RequestIDs),
		middleware.LoggingMiddleware(cfg.Log),
		middleware.ErrorMiddleware(nil),
		middleware.DeferMiddleware(cfg.Defer),
		middleware.RecoveryMiddleware(),
	)

	if _, err := routers.NewCharacterRouter(pipeline, provider, cfg.Routers); err != nil {
		return nil, err
	}
	if _, err := routers.NewCounterRouter(pipeline, provider, cfg.Routers); err != nil {
		return nil, err
	}
	if _, err := routers.NewGameRouter(pipeline, provider, cfg.Routers); err != nil {
		return nil, err
	}

	return pipeline, nil
}

// InteractionHandler adapts the pipeline to a discordgo event handler
func InteractionHandler(pipeline *core.Pipeline) func(*discordgo.Session, *discordgo.InteractionCreate) {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if err := pipeline.Execute(context.Background(), s, i); err != nil {
			log.Printf("[Discord] Interaction %s failed: %v", i.ID, err)
		}
	}
}

// CommandRegistrar is the part of *discordgo.Session used to publish slash commands
type CommandRegistrar interface {
	ApplicationCommandBulkOverwrite(appID, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// RegisterCommands publishes the slash commands to the guild, or globally when guildID is empty
func RegisterCommands(s CommandRegistrar, appID, guildID string) error {
	registered, err := s.ApplicationCommandBulkOverwrite(appID, guildID, routers.Commands())
	if err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}
	log.Printf("[Discord] Registered %d commands", len(registered))
	return nil
}
