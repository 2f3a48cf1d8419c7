package builders

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
	"github.com/bwmarrin/discordgo"
)

// Discord caps a field value at 1024 characters
const maxFieldLength = 1024

// EmbedBuilder provides a fluent API for building Discord embeds
type EmbedBuilder struct {
	embed *discordgo.MessageEmbed
}

// NewEmbed creates a new embed builder
func NewEmbed() *EmbedBuilder {
	return &EmbedBuilder{
		embed: &discordgo.MessageEmbed{
			Type:   discordgo.EmbedTypeRich,
			Fields: make([]*discordgo.MessageEmbedField, 0),
		},
	}
}

// Title sets the embed title
func (b *EmbedBuilder) Title(title string) *EmbedBuilder {
	b.embed.Title = title
	return b
}

// Description sets the embed description
func (b *EmbedBuilder) Description(description string) *EmbedBuilder {
	b.embed.Description = description
	return b
}

// Color sets the embed color
func (b *EmbedBuilder) Color(color int) *EmbedBuilder {
	b.embed.Color = color
	return b
}

// Footer sets the embed footer
func (b *EmbedBuilder) Footer(text string) *EmbedBuilder {
	b.embed.Footer = &discordgo.MessageEmbedFooter{
		Text: text,
	}
	return b
}

// Field adds a field, truncating values Discord would reject
func (b *EmbedBuilder) Field(name, value string, inline bool) *EmbedBuilder {
	b.embed.Fields = append(b.embed.Fields, &discordgo.MessageEmbedField{
		Name:   name,
		Value:  truncate(value, maxFieldLength),
		Inline: inline,
	})
	return b
}

// truncate shortens s to at most limit bytes, ending in "..." and never splitting a rune
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// Build returns the final embed
func (b *EmbedBuilder) Build() *discordgo.MessageEmbed {
	return b.embed
}

// Color constants
const (
	ColorSuccess = 0x00ff00 // Green
	ColorError   = 0xff0000 // Red
	ColorWarning = 0xffaa00 // Orange
	ColorInfo    = 0x0099ff // Blue
	ColorPrimary = 0x7289da // Discord Blurple
)

// CharacterEmbedBuilder renders a character sheet
type CharacterEmbedBuilder struct {
	*EmbedBuilder
}

// NewCharacterEmbed creates a new character embed builder
func NewCharacterEmbed(char *entities.Character) *CharacterEmbedBuilder {
	b := &CharacterEmbedBuilder{
		EmbedBuilder: NewEmbed().Color(ColorPrimary).Title(char.Name),
	}

	var desc []string
	if char.Race != "" {
		desc = append(desc, char.Race)
	}
	if char.Background != "" {
		desc = append(desc, char.Background)
	}
	if level, ok := char.Stats["level"]; ok {
		desc = append(desc, fmt.Sprintf("Level %d", level))
	}
	b.Description(strings.Join(desc, " • "))
	return b
}

// AddCounters adds one line per rendered counter, keyed by counter name
func (b *CharacterEmbedBuilder) AddCounters(names []string, rendered map[string]string) *CharacterEmbedBuilder {
	if len(names) == 0 {
		return b
	}
	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("**%s**: %s", name, rendered[name]))
	}
	b.Field("Counters", strings.Join(lines, "\n"), false)
	return b
}

// AddCoins adds the coinpurse, as total gold when compact
func (b *CharacterEmbedBuilder) AddCoins(purse *entities.Coinpurse, compact bool) *CharacterEmbedBuilder {
	if purse == nil {
		return b
	}
	value := purse.String()
	if compact {
		value, _ = purse.StyledString("compact")
	}
	b.Field("Coins", value, true)
	return b
}

// AddDeathSaves adds the death save tally
func (b *CharacterEmbedBuilder) AddDeathSaves(saves *entities.DeathSaves) *CharacterEmbedBuilder {
	if saves == nil {
		return b
	}
	b.Field("Death Saves", saves.String(), true)
	return b
}

// ListEmbedBuilder renders a list with a count footer
type ListEmbedBuilder struct {
	*EmbedBuilder
}

// NewListEmbed creates a new list embed builder
func NewListEmbed(title string) *ListEmbedBuilder {
	return &ListEmbedBuilder{
		EmbedBuilder: NewEmbed().Title(title).Color(ColorPrimary),
	}
}

// SetItems renders one line per item with a total in the footer
func (b *ListEmbedBuilder) SetItems(items []string) *ListEmbedBuilder {
	b.Description(strings.Join(items, "\n"))
	b.Footer(fmt.Sprintf("Total: %d", len(items)))
	return b
}
