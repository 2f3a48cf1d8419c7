package core

import (
	"log"

	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
	dnderr "github.com/KirkDiggler/dnd-alias-bot/internal/errors"
)

// NLPMetadata describes what a command acted on. Downstream logging reads it.
type NLPMetadata struct {
	// IsAlias is set when the command came from a user alias
	IsAlias bool

	// Character is the last character resolved through GetCharacter
	Character *entities.Character

	// Caster and Targets name who acted and on whom
	Caster  string
	Targets []string
}

// SetResolvers attaches the stores used by the Get* lookups
func (ic *InteractionContext) SetResolvers(r *Resolvers) {
	ic.resolvers = r
}

// GetCharacter returns the author's active character, loading it on first use.
// With ignoreGuild the globally active character is loaded fresh every call and
// the cached guild-scoped value is left alone.
// Returns dnderr.NoCharacter when the author has none.
func (ic *InteractionContext) GetCharacter(ignoreGuild bool) (*entities.Character, error) {
	if !ignoreGuild {
		if char, ok := ic.character.get(); ok {
			return char, nil
		}
	}

	if ic.resolvers == nil || ic.resolvers.Characters == nil {
		return nil, dnderr.Internalf("character lookups are not configured")
	}

	guildID := ic.GuildID
	if ignoreGuild {
		guildID = ""
	}
	char, err := ic.resolvers.Characters.GetActive(ic.Context, ic.UserID, guildID)
	if err != nil {
		return nil, err
	}

	if !ignoreGuild {
		ic.character.set(char)
	}
	ic.NLP.Character = char
	return char, nil
}

// GetCombat returns the combat running in this channel, loading it on first use.
// Returns dnderr.CombatNotFound when the channel is not in combat.
func (ic *InteractionContext) GetCombat() (*entities.Combat, error) {
	if combat, ok := ic.combat.get(); ok {
		return combat, nil
	}

	if ic.resolvers == nil || ic.resolvers.Combats == nil {
		return nil, dnderr.Internalf("combat lookups are not configured")
	}

	combat, err := ic.resolvers.Combats.GetByChannel(ic.Context, ic.ChannelID)
	if err != nil {
		return nil, err
	}
	ic.combat.set(combat)
	return combat, nil
}

// GetExploration returns the exploration running in this channel, loading it on first use.
// Returns dnderr.ExplorationNotFound when there is none.
func (ic *InteractionContext) GetExploration() (*entities.Exploration, error) {
	if exploration, ok := ic.exploration.get(); ok {
		return exploration, nil
	}

	if ic.resolvers == nil || ic.resolvers.Explorations == nil {
		return nil, dnderr.Internalf("exploration lookups are not configured")
	}

	exploration, err := ic.resolvers.Explorations.GetByChannel(ic.Context, ic.ChannelID)
	if err != nil {
		return nil, err
	}
	ic.exploration.set(exploration)
	return exploration, nil
}

// GetEncounter returns the author's active encounter sheet, loading it on first use.
// ignoreGuild behaves as in GetCharacter.
// Returns dnderr.NoEncounter when the author has none.
func (ic *InteractionContext) GetEncounter(ignoreGuild bool) (*entities.EncounterSheet, error) {
	if !ignoreGuild {
		if sheet, ok := ic.encounter.get(); ok {
			return sheet, nil
		}
	}

	if ic.resolvers == nil || ic.resolvers.Encounters == nil {
		return nil, dnderr.Internalf("encounter lookups are not configured")
	}

	guildID := ic.GuildID
	if ignoreGuild {
		guildID = ""
	}
	sheet, err := ic.resolvers.Encounters.GetActive(ic.Context, ic.UserID, guildID)
	if err != nil {
		return nil, err
	}

	if !ignoreGuild {
		ic.encounter.set(sheet)
	}
	return sheet, nil
}

// GetServerSettings returns the guild's settings, loading them on first use.
// Outside a guild it returns nil without an error.
func (ic *InteractionContext) GetServerSettings() (*entities.ServerSettings, error) {
	if settings, ok := ic.serverSettings.get(); ok {
		return settings, nil
	}

	if ic.GuildID == "" {
		ic.serverSettings.set(nil)
		return nil, nil
	}

	if ic.resolvers == nil || ic.resolvers.Settings == nil {
		return nil, dnderr.Internalf("settings lookups are not configured")
	}

	settings, err := ic.resolvers.Settings.GetByGuild(ic.Context, ic.GuildID)
	if err != nil {
		return nil, err
	}
	ic.serverSettings.set(settings)
	return settings, nil
}

// TriggerTyping shows the bot as typing in the channel. Calls within the
// cooldown of the last signal are dropped. Failures are logged, never returned.
func (ic *InteractionContext) TriggerTyping() {
	notifier := ic.typingNotifier()
	if notifier == nil || ic.ChannelID == "" {
		return
	}

	now := ic.resolvers.now()
	if ic.typed && now.Sub(ic.lastTyping) < ic.resolvers.typingCooldown() {
		return
	}

	if err := notifier.ChannelTyping(ic.ChannelID); err != nil {
		log.Printf("[Context] Could not trigger typing in %s: %v", ic.ChannelID, err)
		return
	}
	ic.typed = true
	ic.lastTyping = now
}

func (ic *InteractionContext) typingNotifier() TypingNotifier {
	if ic.resolvers != nil && ic.resolvers.Typing != nil {
		return ic.resolvers.Typing
	}
	if ic.Session != nil {
		return ic.Session
	}
	return nil
}
