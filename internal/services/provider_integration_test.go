//go:build integration

package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/dnd-alias-bot/internal/services"
	"github.com/KirkDiggler/dnd-alias-bot/internal/testutils"
)

// Resolves every slot of an interaction against stores backed by a real Redis
func TestProviderResolversIntegration(t *testing.T) {
	ctx := context.Background()
	client := testutils.StartRedisContainer(t)
	provider := services.NewProvider(&services.ProviderConfig{RedisClient: client})

	const (
		userID    = "test-user-123"
		guildID   = "test-guild-123"
		channelID = "test-channel-123"
	)

	require.NoError(t, provider.Characters.Create(ctx, testutils.CreateTestCharacter("char-1", userID, "Hero")))
	require.NoError(t, provider.Characters.SetActive(ctx, userID, "char-1", ""))
	require.NoError(t, provider.Combats.Create(ctx, testutils.CreateTestCombat(channelID, userID)))
	require.NoError(t, provider.Explorations.Create(ctx, testutils.CreateTestExploration(channelID, userID)))
	require.NoError(t, provider.Encounters.Create(ctx, testutils.CreateTestEncounterSheet("sheet-1", userID)))
	require.NoError(t, provider.Encounters.SetActive(ctx, userID, "sheet-1"))

	interaction := core.NewTestInteractionContext().
		AsCommand("game", "exploration").
		WithResolvers(&core.Resolvers{
			Characters:   provider.Characters,
			Combats:      provider.Combats,
			Explorations: provider.Explorations,
			Encounters:   provider.Encounters,
			Settings:     provider.Settings,
		})

	char, err := interaction.GetCharacter(false)
	require.NoError(t, err)
	assert.Equal(t, "Hero", char.Name)
	assert.Same(t, char, interaction.NLP.Character)

	combat, err := interaction.GetCombat()
	require.NoError(t, err)
	assert.Len(t, combat.Combatants, 2)

	exploration, err := interaction.GetExploration()
	require.NoError(t, err)
	assert.Equal(t, 6, exploration.EncounterThreshold)

	sheet, err := interaction.GetEncounter(false)
	require.NoError(t, err)
	assert.Equal(t, "Forest", sheet.Name)

	settings, err := interaction.GetServerSettings()
	require.NoError(t, err)
	assert.Equal(t, guildID, settings.GuildID)

	// Cached slots survive the record changing underneath
	require.NoError(t, provider.Combats.Delete(ctx, channelID))
	cached, err := interaction.GetCombat()
	require.NoError(t, err)
	assert.Same(t, combat, cached)
}
