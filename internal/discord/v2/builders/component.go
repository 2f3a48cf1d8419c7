package builders

import (
	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/core"
	"github.com/bwmarrin/discordgo"
)

// maxSelectOptions is Discord's limit on options in one select menu
const maxSelectOptions = 25

// ComponentBuilder builds Discord message components
type ComponentBuilder struct {
	rows            []discordgo.MessageComponent
	currentRow      []discordgo.MessageComponent
	customIDBuilder *core.CustomIDBuilder
}

// NewComponentBuilder creates a new component builder
func NewComponentBuilder(customIDBuilder *core.CustomIDBuilder) *ComponentBuilder {
	return &ComponentBuilder{
		rows:            make([]discordgo.MessageComponent, 0),
		currentRow:      make([]discordgo.MessageComponent, 0, 5), // Max 5 per row
		customIDBuilder: customIDBuilder,
	}
}

// Button adds a button targeting target to the current row
func (b *ComponentBuilder) Button(label string, style discordgo.ButtonStyle, action, target string, args ...string) *ComponentBuilder {
	b.addComponent(discordgo.Button{
		Label:    label,
		Style:    style,
		CustomID: b.customIDBuilder.Button(action, target, args...),
	})
	return b
}

// PrimaryButton adds a blurple button
func (b *ComponentBuilder) PrimaryButton(label, action, target string, args ...string) *ComponentBuilder {
	return b.Button(label, discordgo.PrimaryButton, action, target, args...)
}

// DangerButton adds a red button
func (b *ComponentBuilder) DangerButton(label, action, target string, args ...string) *ComponentBuilder {
	return b.Button(label, discordgo.DangerButton, action, target, args...)
}

// SelectMenu adds a single choice select menu on its own row.
// Options past Discord's limit of 25 are dropped.
func (b *ComponentBuilder) SelectMenu(placeholder, action string, options []SelectOption) *ComponentBuilder {
	if len(options) > maxSelectOptions {
		options = options[:maxSelectOptions]
	}

	discordOptions := make([]discordgo.SelectMenuOption, len(options))
	for i, opt := range options {
		discordOptions[i] = discordgo.SelectMenuOption{
			Label:       opt.Label,
			Value:       opt.Value,
			Description: opt.Description,
			Default:     opt.Default,
		}
	}

	b.NewRow()
	b.addComponent(discordgo.SelectMenu{
		CustomID:    b.customIDBuilder.Select(action, nil),
		Placeholder: placeholder,
		Options:     discordOptions,
	})
	return b.NewRow()
}

// NewRow starts a new action row
func (b *ComponentBuilder) NewRow() *ComponentBuilder {
	if len(b.currentRow) > 0 {
		b.rows = append(b.rows, discordgo.ActionsRow{
			Components: b.currentRow,
		})
		b.currentRow = make([]discordgo.MessageComponent, 0, 5)
	}
	return b
}

// Build returns the built components
func (b *ComponentBuilder) Build() []discordgo.MessageComponent {
	b.NewRow()
	return b.rows
}

// addComponent adds a component to the current row
func (b *ComponentBuilder) addComponent(component discordgo.MessageComponent) {
	if len(b.currentRow) >= 5 {
		b.NewRow()
	}

	b.currentRow = append(b.currentRow, component)
}

// SelectOption represents an option in a select menu
type SelectOption struct {
	Label       string
	Value       string
	Description string
	Default     bool
}
