package handlers

import (
	"errors"
	"fmt"

	"github.com/KirkDiggler/dnd-alias-bot/internal/aliasing/api"
	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/builders"
	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
	"github.com/KirkDiggler/dnd-alias-bot/internal/repositories/characters"
	"github.com/KirkDiggler/dnd-alias-bot/internal/services/counter"
)

// CounterHandler serves the /cc command. Every change goes through the same
// character API aliases use, then is committed once.
type CounterHandler struct {
	characters characters.Repository
	counters   counter.Service
}

// CounterHandlerConfig holds the dependencies of a CounterHandler
type CounterHandlerConfig struct {
	Characters characters.Repository
	Counters   counter.Service
}

// NewCounterHandler creates a CounterHandler
func NewCounterHandler(cfg *CounterHandlerConfig) (*CounterHandler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Characters == nil {
		return nil, errors.New("character repository is required")
	}
	if cfg.Counters == nil {
		return nil, errors.New("counter service is required")
	}
	return &CounterHandler{
		characters: cfg.Characters,
		counters:   cfg.Counters,
	}, nil
}

// Create adds a counter, replacing one of the same name
func (h *CounterHandler) Create(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	return h.apply(ctx, func(char *api.AliasCharacter, name string) (string, error) {
		cc, err := char.CreateCC(&counter.CreateInput{
			Name:        name,
			Min:         ctx.GetStringParam("min"),
			Max:         ctx.GetStringParam("max"),
			ResetOn:     ctx.GetStringParam("reset"),
			DisplayType: ctx.GetStringParam("display"),
			Title:       ctx.GetStringParam("title"),
			Desc:        ctx.GetStringParam("desc"),
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Created counter **%s**: %s", name, cc.String()), nil
	})
}

// Set sets a counter to the "value" option
func (h *CounterHandler) Set(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	return h.apply(ctx, func(char *api.AliasCharacter, name string) (string, error) {
		if _, err := char.SetCC(name, ctx.GetIntParam("value"), ctx.GetBoolParam("strict")); err != nil {
			return "", err
		}
		return h.summary(char, name, "")
	})
}

// Mod adds the "amount" option to a counter
func (h *CounterHandler) Mod(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	amount := ctx.GetIntParam("amount")
	return h.apply(ctx, func(char *api.AliasCharacter, name string) (string, error) {
		if _, err := char.ModCC(name, amount, ctx.GetBoolParam("strict")); err != nil {
			return "", err
		}
		return h.summary(char, name, entities.FormatDelta(amount))
	})
}

// Reset resets a counter to its reset value
func (h *CounterHandler) Reset(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	return h.apply(ctx, func(char *api.AliasCharacter, name string) (string, error) {
		cc, err := char.CC(name)
		if err != nil {
			return "", err
		}
		result, err := cc.Reset()
		if err != nil {
			return "", err
		}
		return h.summary(char, name, result.Delta)
	})
}

// Delete removes a counter
func (h *CounterHandler) Delete(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	return h.apply(ctx, func(char *api.AliasCharacter, name string) (string, error) {
		if err := char.DeleteCC(name); err != nil {
			return "", err
		}
		return fmt.Sprintf("Deleted counter **%s**.", name), nil
	})
}

// apply runs change against the active character and commits it
func (h *CounterHandler) apply(ctx *core.InteractionContext, change func(*api.AliasCharacter, string) (string, error)) (*core.HandlerResult, error) {
	name := ctx.GetStringParam("name")
	if name == "" {
		return nil, core.NewValidationError("Counter name is required.")
	}

	char, err := ctx.GetCharacter(false)
	if err != nil {
		return nil, err
	}

	alias := api.NewAliasCharacter(&api.AliasCharacterConfig{
		Character: char,
		Counters:  h.counters,
		Committer: h.characters,
	})
	message, err := change(alias, name)
	if err != nil {
		return nil, err
	}
	if err := alias.Commit(ctx.Context); err != nil {
		return nil, err
	}

	embed := builders.NewEmbed().
		Title(char.Name).
		Description(message).
		Color(builders.ColorSuccess)
	return &core.HandlerResult{
		Response: core.NewEmbedResponse(embed.Build()),
	}, nil
}

// summary renders "**name**: 3/5 (-2)", leaving the delta off when empty
func (h *CounterHandler) summary(char *api.AliasCharacter, name, delta string) (string, error) {
	rendered, err := char.CCStr(name)
	if err != nil {
		return "", err
	}
	if delta != "" {
		return fmt.Sprintf("**%s**: %s (%s)", name, rendered, delta), nil
	}
	return fmt.Sprintf("**%s**: %s", name, rendered), nil
}
