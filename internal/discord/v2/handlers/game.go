package handlers

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/KirkDiggler/dnd-alias-bot/internal/dice"
	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/builders"
	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
	dnderr "github.com/KirkDiggler/dnd-alias-bot/internal/errors"
	"github.com/KirkDiggler/dnd-alias-bot/internal/repositories/explorations"
	"github.com/KirkDiggler/dnd-alias-bot/internal/repositories/settings"
)

// maxSkipRounds keeps a single skip under a game year
const maxSkipRounds = 5_256_000

// GameHandler serves the /game command
type GameHandler struct {
	explorations explorations.Repository
	settings     settings.Repository
	roller       dice.Roller
}

// GameHandlerConfig holds the dependencies of a GameHandler
type GameHandlerConfig struct {
	Explorations explorations.Repository
	Settings     settings.Repository
	Roller       dice.Roller
}

// NewGameHandler creates a GameHandler
func NewGameHandler(cfg *GameHandlerConfig) (*GameHandler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Explorations == nil {
		return nil, errors.New("exploration repository is required")
	}
	if cfg.Settings == nil {
		return nil, errors.New("settings repository is required")
	}
	if cfg.Roller == nil {
		cfg.Roller = dice.NewRandomRoller()
	}
	return &GameHandler{
		explorations: cfg.Explorations,
		settings:     cfg.Settings,
		roller:       cfg.Roller,
	}, nil
}

// Combat shows the channel's initiative order. Hit points of private
// combatants are only shown to the DM and to whoever controls them.
func (h *GameHandler) Combat(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	combat, err := ctx.GetCombat()
	if err != nil {
		return nil, err
	}

	current := combat.Current()
	lines := make([]string, 0, len(combat.Combatants))
	for _, cb := range combat.Ordered() {
		marker := "  "
		if cb == current {
			marker = "# "
		}
		line := fmt.Sprintf("%s%d: %s", marker, cb.Initiative, cb.Name)
		if !cb.IsPrivate || cb.ControllerID == ctx.UserID || combat.DMID == ctx.UserID {
			line += fmt.Sprintf(" <%d/%d HP>", cb.HP, cb.MaxHP)
		}
		lines = append(lines, line)
	}

	title := fmt.Sprintf("Current initiative: Round %d", combat.Round)
	if combat.Name != "" {
		title = combat.Name + " - " + title
	}
	embed := builders.NewEmbed().
		Title(title).
		Description("```md\n" + strings.Join(lines, "\n") + "\n```").
		Color(builders.ColorError)

	if mine := combat.ControlledBy(ctx.UserID); len(mine) > 0 {
		names := make([]string, 0, len(mine))
		for _, cb := range mine {
			names = append(names, cb.Name)
		}
		embed.Footer("You control: " + strings.Join(names, ", "))
	}

	return &core.HandlerResult{
		Response: core.NewEmbedResponse(embed.Build()).AsEphemeral(),
	}, nil
}

// Exploration summarises the channel's exploration
func (h *GameHandler) Exploration(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	exploration, err := ctx.GetExploration()
	if err != nil {
		return nil, err
	}
	return &core.HandlerResult{
		Response: core.NewEmbedResponse(explorationEmbed(exploration).Build()),
	}, nil
}

// Encounter rolls on the author's random encounter table. The "roll" option
// picks a row instead of rolling, and "global" uses the globally active table.
func (h *GameHandler) Encounter(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	sheet, err := ctx.GetEncounter(ctx.GetBoolParam("global"))
	if err != nil {
		return nil, err
	}
	ctx.TriggerTyping()

	number := ctx.GetIntParam("roll")
	var tableRoll *dice.RollResult
	if number == 0 {
		tableRoll, err = dice.RollString(h.roller, sheet.DiceExpression)
		if err != nil {
			return nil, dnderr.Wrapf(err, "invalid encounter dice %q", sheet.DiceExpression)
		}
		number = tableRoll.Total
	}

	encounter, err := sheet.Pick(number, h.roller)
	if err != nil {
		return nil, err
	}

	description := describeEncounter(encounter)
	if tableRoll != nil {
		description = fmt.Sprintf("%s: %s\n%s", sheet.DiceExpression, tableRoll.String(), description)
	}
	embed := builders.NewEmbed().
		Title("Random Encounter").
		Description(description).
		Color(builders.ColorWarning).
		Footer(sheet.Name)

	return &core.HandlerResult{
		Response: core.NewEmbedResponse(embed.Build()),
	}, nil
}

// Skip advances the exploration by the "rounds" option, rolling encounter
// checks on the author's table when one is active
func (h *GameHandler) Skip(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	rounds := ctx.GetIntParam("rounds")
	if rounds < 1 || rounds > maxSkipRounds {
		return nil, core.NewValidationError(fmt.Sprintf("Rounds must be between 1 and %d.", maxSkipRounds))
	}

	exploration, err := ctx.GetExploration()
	if err != nil {
		return nil, err
	}

	sheet, err := ctx.GetEncounter(false)
	if err != nil && !dnderr.IsEntityNotFound(err, dnderr.EntityEncounter) {
		return nil, err
	}
	ctx.TriggerTyping()

	result, err := exploration.SkipRounds(rounds, sheet, h.roller)
	if err != nil {
		return nil, err
	}
	if err := h.explorations.Update(ctx.Context, exploration); err != nil {
		return nil, err
	}

	lines := []string{fmt.Sprintf("Skipped %d rounds %s.", result.Rounds, entities.DurationString(result.Rounds))}
	for _, enc := range result.Encounters {
		lines = append(lines, describeEncounter(enc))
	}
	if sheet != nil && len(result.Encounters) == 0 && exploration.EncounterTimer != 0 {
		lines = append(lines, "No encounters.")
	}

	embed := explorationEmbed(exploration).Field("Skip", strings.Join(lines, "\n"), false)
	return &core.HandlerResult{
		Response: core.NewEmbedResponse(embed.Build()),
	}, nil
}

// Settings shows the server settings, applying any options given first
func (h *GameHandler) Settings(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	if ctx.GuildID == "" {
		return nil, core.NewValidationError("Server settings can only be changed in a server.")
	}

	current, err := ctx.GetServerSettings()
	if err != nil {
		return nil, err
	}
	if current == nil {
		current = entities.DefaultServerSettings(ctx.GuildID)
	}

	changed := false
	if role := ctx.GetStringParam("dm_role"); role != "" {
		if i := slices.Index(current.DMRoles, role); i >= 0 {
			current.DMRoles = slices.Delete(current.DMRoles, i, i+1)
		} else {
			current.DMRoles = append(current.DMRoles, role)
		}
		changed = true
	}
	for option, field := range map[string]*bool{
		"show_death_saves":   &current.ShowDeathSaves,
		"lookup_dm_required": &current.LookupDMRequired,
		"lookup_pm_dm":       &current.LookupPMDM,
		"lookup_pm_result":   &current.LookupPMResult,
	} {
		if value, ok := ctx.GetParam(option).(bool); ok {
			*field = value
			changed = true
		}
	}

	if changed {
		if err := h.settings.Save(ctx.Context, current); err != nil {
			return nil, err
		}
	}

	return &core.HandlerResult{
		Response: core.NewEmbedResponse(settingsEmbed(current).Build()).AsEphemeral(),
	}, nil
}

func explorationEmbed(exploration *entities.Exploration) *builders.EmbedBuilder {
	title := "Exploration"
	if exploration.Name != "" {
		title = exploration.Name
	}

	names := make([]string, 0, len(exploration.Explorers))
	for _, explorer := range exploration.Explorers {
		names = append(names, explorer.Name)
	}

	embed := builders.NewEmbed().
		Title(title).
		Description(fmt.Sprintf("Round %d %s", exploration.Round, entities.DurationString(exploration.Round))).
		Color(builders.ColorInfo)
	if len(names) > 0 {
		embed.Field("Explorers", strings.Join(names, "\n"), false)
	}
	if exploration.EncounterThreshold > 0 {
		embed.Field("Encounters", fmt.Sprintf("%d%% every %d rounds, next in %d",
			exploration.Chance, exploration.EncounterThreshold, exploration.EncounterTimer), true)
	}
	return embed
}

func settingsEmbed(s *entities.ServerSettings) *builders.EmbedBuilder {
	roles := "Any role named DM, GM, Dungeon Master or Game Master"
	if len(s.DMRoles) > 0 {
		mentions := make([]string, 0, len(s.DMRoles))
		for _, id := range s.DMRoles {
			mentions = append(mentions, "<@&"+id+">")
		}
		roles = strings.Join(mentions, ", ")
	}

	return builders.NewEmbed().
		Title("Server Settings").
		Color(builders.ColorPrimary).
		Field("DM Roles", roles, false).
		Field("Show death saves", onOff(s.ShowDeathSaves), true).
		Field("Monster lookups need DM", onOff(s.LookupDMRequired), true).
		Field("PM DM lookups", onOff(s.LookupPMDM), true).
		Field("PM lookup results", onOff(s.LookupPMResult), true)
}

func describeEncounter(enc *entities.RolledEncounter) string {
	if enc.Count != nil {
		return fmt.Sprintf("**%d**: %d %s", enc.Number, *enc.Count, enc.Name)
	}
	return fmt.Sprintf("**%d**: %s", enc.Number, enc.Name)
}

func onOff(b bool) string {
	if b {
		return "On"
	}
	return "Off"
}
