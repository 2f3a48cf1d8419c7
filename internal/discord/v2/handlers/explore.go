package handlers

import (
	"fmt"

	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/builders"
	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
)

// Rounds per minute and per hour of game time
const (
	roundsPerMinute = 10
	roundsPerHour   = 600
)

// ExploreBegin starts an exploration in the channel, run by the author
func (h *GameHandler) ExploreBegin(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	exploration := entities.NewExploration(ctx.ChannelID, ctx.UserID, ctx.GetStringParam("name"))
	if err := h.explorations.Create(ctx.Context, exploration); err != nil {
		return nil, err
	}

	embed := explorationEmbed(exploration).
		Footer("Add your active character with /game explore join")
	return &core.HandlerResult{
		Response: core.NewEmbedResponse(embed.Build()),
	}, nil
}

// ExploreJoin adds the author's active character to the channel's exploration.
// The "group" option places it in a named group.
func (h *GameHandler) ExploreJoin(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	char, err := ctx.GetCharacter(false)
	if err != nil {
		return nil, err
	}
	exploration, err := ctx.GetExploration()
	if err != nil {
		return nil, err
	}

	group := ctx.GetStringParam("group")
	if err := exploration.AddExplorer(&entities.Explorer{
		ID:           char.ID,
		Name:         char.Name,
		ControllerID: ctx.UserID,
		Group:        group,
	}); err != nil {
		return nil, err
	}
	if err := h.explorations.Update(ctx.Context, exploration); err != nil {
		return nil, err
	}

	footer := "Added to exploration!"
	if group != "" {
		footer = fmt.Sprintf("Joined group %s!", group)
	}
	embed := builders.NewCharacterEmbed(char).Footer(footer)
	return &core.HandlerResult{
		Response: core.NewEmbedResponse(embed.Build()),
	}, nil
}

// ExploreEncounterTimer sets the time between encounter checks from the
// "time" option in minutes, or in hours when "hours" is set. Zero turns checks off.
func (h *GameHandler) ExploreEncounterTimer(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	amount := ctx.GetIntParam("time")
	perUnit := roundsPerMinute
	if ctx.GetBoolParam("hours") {
		perUnit = roundsPerHour
	}
	if amount < 0 || amount > maxSkipRounds/perUnit {
		return nil, core.NewValidationError(fmt.Sprintf("The timer must be between 0 and %d.", maxSkipRounds/perUnit))
	}

	exploration, err := ctx.GetExploration()
	if err != nil {
		return nil, err
	}
	exploration.SetEncounterTimer(amount * perUnit)
	if err := h.explorations.Update(ctx.Context, exploration); err != nil {
		return nil, err
	}

	return &core.HandlerResult{
		Response: core.NewEmbedResponse(explorationEmbed(exploration).Build()),
	}, nil
}

// ExploreChance sets the percent chance that an encounter check finds something
func (h *GameHandler) ExploreChance(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	exploration, err := ctx.GetExploration()
	if err != nil {
		return nil, err
	}
	exploration.SetChance(ctx.GetIntParam("percent"))
	if err := h.explorations.Update(ctx.Context, exploration); err != nil {
		return nil, err
	}

	return &core.HandlerResult{
		Response: core.NewEmbedResponse(explorationEmbed(exploration).Build()),
	}, nil
}

// ExploreEnd stops the channel's exploration and reports how long it ran
func (h *GameHandler) ExploreEnd(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	exploration, err := ctx.GetExploration()
	if err != nil {
		return nil, err
	}
	if err := h.explorations.Delete(ctx.Context, exploration.ChannelID); err != nil {
		return nil, err
	}

	embed := explorationEmbed(exploration).
		Footer(fmt.Sprintf("Exploration ended after %d rounds %s", exploration.Round, entities.DurationString(exploration.Round)))
	return &core.HandlerResult{
		Response: core.NewEmbedResponse(embed.Build()),
	}, nil
}
