package core

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupedCommand(group, sub string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:      discordgo.InteractionApplicationCommand,
			ChannelID: "chan-1",
			User:      &discordgo.User{ID: "user-1"},
			Data: discordgo.ApplicationCommandInteractionData{
				Name: "game",
				Options: []*discordgo.ApplicationCommandInteractionDataOption{{
					Type: discordgo.ApplicationCommandOptionSubCommandGroup,
					Name: group,
					Options: []*discordgo.ApplicationCommandInteractionDataOption{{
						Type:    discordgo.ApplicationCommandOptionSubCommand,
						Name:    sub,
						Options: options,
					}},
				}},
			},
		},
	}
}

func TestInteractionContext_ParsesSubcommandGroups(t *testing.T) {
	ic := NewInteractionContext(context.Background(), nil, groupedCommand("explore", "chance",
		&discordgo.ApplicationCommandInteractionDataOption{
			Type:  discordgo.ApplicationCommandOptionInteger,
			Name:  "percent",
			Value: float64(40),
		}))

	assert.Equal(t, "game", ic.GetCommandName())
	assert.Equal(t, "explore", ic.GetSubcommandGroup())
	assert.Equal(t, "chance", ic.GetSubcommand())
	assert.Equal(t, 40, ic.GetIntParam("percent"))
}

func TestRouter_SubcommandGroup(t *testing.T) {
	pipeline := NewPipeline()
	router := NewRouter("game", pipeline)

	var handled []string
	record := func(name string) func(*InteractionContext) (*HandlerResult, error) {
		return func(*InteractionContext) (*HandlerResult, error) {
			handled = append(handled, name)
			return &HandlerResult{Response: NewResponse(name)}, nil
		}
	}
	router.SubcommandFunc("game", "exploration", record("show"))
	router.SubcommandGroupFunc("game", "explore", "begin", record("begin"))
	router.SubcommandGroupFunc("game", "explore", "end", record("end"))
	router.Register()

	for _, tc := range []struct {
		ctx  *InteractionContext
		want string
	}{
		{NewTestInteractionContext().AsCommand("game", "explore", "begin").InteractionContext, "begin"},
		{NewInteractionContext(context.Background(), nil, groupedCommand("explore", "end")), "end"},
		{NewTestInteractionContext().AsCommand("game", "exploration").InteractionContext, "show"},
	} {
		responder := NewMockResponder()
		require.NoError(t, pipeline.Dispatch(tc.ctx, responder))
		assert.Equal(t, tc.want, responder.LastResponse().Content)
	}
	assert.Equal(t, []string{"begin", "end", "show"}, handled)

	// A group subcommand with no handler is not claimed by the plain subcommand route
	responder := NewMockResponder()
	require.NoError(t, pipeline.Dispatch(NewTestInteractionContext().AsCommand("game", "explore", "join").InteractionContext, responder))
	assert.Equal(t, "I don't know how to handle that command.", responder.LastResponse().Content)
}
