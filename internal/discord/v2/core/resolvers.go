package core

//go:generate mockgen -destination=mock/mock_resolvers.go -package=mockcore -source=resolvers.go

import (
	"context"
	"time"

	"github.com/KirkDiggler/dnd-alias-bot/internal/clock"
	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
	"github.com/bwmarrin/discordgo"
)

// DefaultTypingCooldown is how long TriggerTyping stays quiet after a typing signal
const DefaultTypingCooldown = 10 * time.Second

// CharacterSource finds a user's active character, guild first when guildID is set
type CharacterSource interface {
	GetActive(ctx context.Context, ownerID, guildID string) (*entities.Character, error)
}

// CombatSource finds the combat running in a channel
type CombatSource interface {
	GetByChannel(ctx context.Context, channelID string) (*entities.Combat, error)
}

// ExplorationSource finds the exploration running in a channel
type ExplorationSource interface {
	GetByChannel(ctx context.Context, channelID string) (*entities.Exploration, error)
}

// EncounterSource finds a user's active encounter sheet, guild first when guildID is set
type EncounterSource interface {
	GetActive(ctx context.Context, ownerID, guildID string) (*entities.EncounterSheet, error)
}

// SettingsSource loads a guild's server settings
type SettingsSource interface {
	GetByGuild(ctx context.Context, guildID string) (*entities.ServerSettings, error)
}

// TypingNotifier shows the bot as typing in a channel. *discordgo.Session satisfies it.
type TypingNotifier interface {
	ChannelTyping(channelID string, options ...discordgo.RequestOption) error
}

// Resolvers are the stores an InteractionContext loads its active entities from.
// One Resolvers is shared by every interaction; the per-interaction cache lives
// on the InteractionContext.
type Resolvers struct {
	Characters   CharacterSource
	Combats      CombatSource
	Explorations ExplorationSource
	Encounters   EncounterSource
	Settings     SettingsSource

	// Typing defaults to the interaction's session
	Typing TypingNotifier

	Clock          clock.TimeProvider
	TypingCooldown time.Duration
}

func (r *Resolvers) now() time.Time {
	if r == nil || r.Clock == nil {
		return time.Now()
	}
	return r.Clock.Now()
}

func (r *Resolvers) typingCooldown() time.Duration {
	if r == nil || r.TypingCooldown <= 0 {
		return DefaultTypingCooldown
	}
	return r.TypingCooldown
}
