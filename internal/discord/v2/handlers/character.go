package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/builders"
	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
	dnderr "github.com/KirkDiggler/dnd-alias-bot/internal/errors"
	"github.com/KirkDiggler/dnd-alias-bot/internal/repositories/characters"
	"github.com/KirkDiggler/dnd-alias-bot/internal/services/counter"
	"github.com/bwmarrin/discordgo"
)

const (
	characterDomain = "character"

	// actionDeathSave is the component action of the death save buttons
	actionDeathSave = "deathsave"

	deathSaveSuccess = "success"
	deathSaveFail    = "fail"
	deathSaveReset   = "reset"
)

var deathSaveButtons = core.NewCustomIDMatcher(characterDomain, actionDeathSave)

// CharacterHandler serves the /character command
type CharacterHandler struct {
	characters characters.Repository
	counters   counter.Service
	customIDs  *core.CustomIDBuilder
}

// CharacterHandlerConfig holds the dependencies of a CharacterHandler
type CharacterHandlerConfig struct {
	Characters characters.Repository
	Counters   counter.Service
	CustomIDs  *core.CustomIDBuilder
}

// NewCharacterHandler creates a CharacterHandler
func NewCharacterHandler(cfg *CharacterHandlerConfig) (*CharacterHandler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Characters == nil {
		return nil, errors.New("character repository is required")
	}
	if cfg.Counters == nil {
		return nil, errors.New("counter service is required")
	}
	if cfg.CustomIDs == nil {
		cfg.CustomIDs = core.NewCustomIDBuilder(characterDomain)
	}

	return &CharacterHandler{
		characters: cfg.Characters,
		counters:   cfg.Counters,
		customIDs:  cfg.CustomIDs,
	}, nil
}

// Show renders the active character. The "global" option skips the server's
// active character.
func (h *CharacterHandler) Show(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	char, err := ctx.GetCharacter(ctx.GetBoolParam("global"))
	if err != nil {
		return nil, err
	}

	embed := builders.NewCharacterEmbed(char)
	names, rendered := h.renderCounters(char)
	embed.AddCounters(names, rendered).
		AddCoins(char.Coinpurse, char.Options.CompactCoins)

	showSaves, err := h.showDeathSaves(ctx)
	if err != nil {
		return nil, err
	}
	if showSaves {
		embed.AddDeathSaves(char.DeathSaves)
	}

	return &core.HandlerResult{
		Response: core.NewEmbedResponse(embed.Build()),
	}, nil
}

// List renders the author's characters with a menu to switch the active one
func (h *CharacterHandler) List(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	chars, err := h.characters.GetByOwner(ctx.Context, ctx.UserID)
	if err != nil {
		return nil, err
	}
	if len(chars) == 0 {
		return &core.HandlerResult{
			Response: core.NewEphemeralResponse("You have no characters."),
		}, nil
	}

	active, err := ctx.GetCharacter(false)
	if err != nil && !dnderr.IsEntityNotFound(err, dnderr.EntityCharacter) {
		return nil, err
	}

	items := make([]string, 0, len(chars))
	options := make([]builders.SelectOption, 0, len(chars))
	for _, char := range chars {
		isActive := active != nil && active.ID == char.ID
		line := char.Name
		if char.Race != "" {
			line += " (" + char.Race + ")"
		}
		if isActive {
			line = "**" + line + "** (active)"
		}
		items = append(items, line)
		options = append(options, builders.SelectOption{
			Label:   char.Name,
			Value:   char.ID,
			Default: isActive,
		})
	}

	embed := builders.NewListEmbed("Your Characters").SetItems(items)
	components := builders.NewComponentBuilder(h.customIDs).
		SelectMenu("Switch active character", "activate", options).
		Build()

	return &core.HandlerResult{
		Response: core.NewEmbedResponse(embed.Build()).
			WithComponents(components...).
			AsEphemeral(),
	}, nil
}

// Activate switches the active character from the list menu. In a server the
// choice only applies to that server.
func (h *CharacterHandler) Activate(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	values := ctx.GetSelectedValues()
	if len(values) == 0 {
		return nil, core.NewValidationError("No character selected.")
	}
	characterID := values[0]

	var err error
	if ctx.GuildID != "" {
		err = h.characters.SetServerActive(ctx.Context, ctx.UserID, characterID, ctx.GuildID)
	} else {
		err = h.characters.SetActive(ctx.Context, ctx.UserID, characterID, "")
	}
	if err != nil {
		if dnderr.IsNotFound(err) {
			return nil, core.NewUserError("That character no longer exists.", core.ErrorCodeNotFound)
		}
		return nil, err
	}

	char, err := h.characters.Get(ctx.Context, characterID)
	if err != nil {
		return nil, err
	}
	ctx.NLP.Character = char

	return &core.HandlerResult{
		Response: core.NewEphemeralResponse(fmt.Sprintf("Active character changed to %s.", char.Name)).AsUpdate(),
	}, nil
}

// Counters lists every custom counter of the active character
func (h *CharacterHandler) Counters(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	char, err := ctx.GetCharacter(false)
	if err != nil {
		return nil, err
	}
	if len(char.Consumables) == 0 {
		return &core.HandlerResult{
			Response: core.NewEphemeralResponse(fmt.Sprintf("%s has no custom counters.", char.Name)),
		}, nil
	}

	names, rendered := h.renderCounters(char)
	embed := builders.NewCharacterEmbed(char).AddCounters(names, rendered)
	return &core.HandlerResult{
		Response: core.NewEmbedResponse(embed.Build()),
	}, nil
}

// Counter shows one counter in full
func (h *CharacterHandler) Counter(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	char, err := ctx.GetCharacter(false)
	if err != nil {
		return nil, err
	}

	cc, err := char.Counter(ctx.GetStringParam("name"))
	if err != nil {
		return nil, err
	}
	limits, err := h.counters.Limits(char, cc)
	if err != nil {
		return nil, err
	}

	title := cc.Name
	if cc.Title != "" {
		title = cc.Title
	}
	embed := builders.NewEmbed().
		Title(title).
		Description(cc.FullRender(limits)).
		Color(builders.ColorPrimary).
		Footer(char.Name)

	return &core.HandlerResult{
		Response: core.NewEmbedResponse(embed.Build()),
	}, nil
}

// Coins shows the coinpurse, applying the "change" option first when given
func (h *CharacterHandler) Coins(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	char, err := ctx.GetCharacter(false)
	if err != nil {
		return nil, err
	}
	if char.Coinpurse == nil {
		char.Coinpurse = &entities.Coinpurse{}
	}

	change := ctx.GetStringParam("change")
	if change == "" {
		return &core.HandlerResult{
			Response: core.NewEmbedResponse(coinEmbed(char, "").Build()),
		}, nil
	}

	args, err := entities.ParseCoinArgs(change)
	if err != nil {
		return nil, err
	}
	if err := char.Coinpurse.Update(args.Coins); err != nil {
		return nil, err
	}
	if err := h.characters.Update(ctx.Context, char); err != nil {
		return nil, err
	}

	return &core.HandlerResult{
		Response: core.NewEmbedResponse(coinEmbed(char, describeCoins(args.Coins)).Build()),
	}, nil
}

// DeathSaves shows the death save tally with buttons to record the next
// roll. The "action" option records one directly.
func (h *CharacterHandler) DeathSaves(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	char, err := ctx.GetCharacter(false)
	if err != nil {
		return nil, err
	}

	if err := h.recordDeathSave(ctx, char, ctx.GetStringParam("action")); err != nil {
		return nil, err
	}

	return &core.HandlerResult{
		Response: h.deathSavesResponse(char),
	}, nil
}

// DeathSaveButton records the roll of a button under a death saves message.
// The buttons only act on the character they were rendered for.
func (h *CharacterHandler) DeathSaveButton(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	button, ok := deathSaveButtons.Extract(ctx.GetCustomID())
	if !ok {
		return nil, core.NewValidationError("Unknown death save button.")
	}

	char, err := ctx.GetCharacter(false)
	if err != nil {
		return nil, err
	}
	if len(button.Args) > 0 && button.Args[0] != char.ID {
		return nil, core.NewForbiddenError("Those buttons belong to another character.")
	}

	if err := h.recordDeathSave(ctx, char, button.Target); err != nil {
		return nil, err
	}

	return &core.HandlerResult{
		Response: h.deathSavesResponse(char).AsUpdate(),
	}, nil
}

func (h *CharacterHandler) recordDeathSave(ctx *core.InteractionContext, char *entities.Character, action string) error {
	if char.DeathSaves == nil {
		char.DeathSaves = &entities.DeathSaves{}
	}

	switch action {
	case "":
		return nil
	case deathSaveSuccess:
		char.DeathSaves.Succeed(1)
	case deathSaveFail:
		char.DeathSaves.Fail(1)
	case deathSaveReset:
		char.DeathSaves.Reset()
	default:
		return core.NewValidationError("Action must be success, fail or reset.")
	}

	return h.characters.Update(ctx.Context, char)
}

func (h *CharacterHandler) deathSavesResponse(char *entities.Character) *core.Response {
	var status string
	switch {
	case char.DeathSaves.IsDead():
		status = fmt.Sprintf("%s is DEAD!", char.Name)
	case char.DeathSaves.IsStable():
		status = fmt.Sprintf("%s is STABLE!", char.Name)
	}

	embed := builders.NewEmbed().
		Title(fmt.Sprintf("%s's Death Saves", char.Name)).
		Description(strings.TrimSpace(char.DeathSaves.String() + "\n" + status)).
		Color(builders.ColorWarning)

	components := builders.NewComponentBuilder(h.customIDs).
		Button("Success", discordgo.SuccessButton, actionDeathSave, deathSaveSuccess, char.ID).
		DangerButton("Fail", actionDeathSave, deathSaveFail, char.ID).
		PrimaryButton("Reset", actionDeathSave, deathSaveReset, char.ID).
		Build()

	return core.NewEmbedResponse(embed.Build()).WithComponents(components...)
}

// renderCounters renders each counter in sheet order. A counter whose limits
// no longer evaluate is shown with its raw value.
func (h *CharacterHandler) renderCounters(char *entities.Character) ([]string, map[string]string) {
	names := make([]string, 0, len(char.Consumables))
	rendered := make(map[string]string, len(char.Consumables))
	for _, cc := range char.Consumables {
		names = append(names, cc.Name)
		text, err := h.counters.Render(char, cc)
		if err != nil {
			log.Printf("[Character] Could not render counter %s of %s: %v", cc.Name, char.ID, err)
			text = fmt.Sprintf("%d (invalid limits)", cc.Value)
		}
		rendered[cc.Name] = text
	}
	return names, rendered
}

// showDeathSaves follows the server setting; outside a server they are always shown
func (h *CharacterHandler) showDeathSaves(ctx *core.InteractionContext) (bool, error) {
	settings, err := ctx.GetServerSettings()
	if err != nil {
		return false, err
	}
	return settings == nil || settings.ShowDeathSaves, nil
}

func coinEmbed(char *entities.Character, change string) *builders.EmbedBuilder {
	value := char.Coinpurse.String()
	if char.Options.CompactCoins {
		value, _ = char.Coinpurse.StyledString("compact")
	}

	embed := builders.NewEmbed().
		Title(fmt.Sprintf("%s's Coinpurse", char.Name)).
		Description(value).
		Color(builders.ColorPrimary)
	if change != "" {
		embed.Footer("Changed: " + change)
	}
	return embed
}

// describeCoins renders a signed change such as "+1 gp -2 sp"
func describeCoins(delta entities.Coins) string {
	var parts []string
	for _, coin := range entities.CoinTypes {
		if n := delta.Get(coin); n != 0 {
			parts = append(parts, fmt.Sprintf("%s %s", entities.FormatDelta(n), coin))
		}
	}
	return strings.Join(parts, " ")
}
