//go:build integration

package characters_test

import (
	"context"
	"testing"

	dnderr "github.com/KirkDiggler/dnd-alias-bot/internal/errors"
	"github.com/KirkDiggler/dnd-alias-bot/internal/repositories/characters"
	"github.com/KirkDiggler/dnd-alias-bot/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRepositoryIntegration(t *testing.T) {
	ctx := context.Background()
	client := testutils.StartRedisContainer(t)
	repo := characters.NewRedisRepository(&characters.RedisRepoConfig{Client: client})

	hero := testutils.CreateTestCharacter("char-1", "user-1", "Hero")
	sidekick := testutils.CreateTestCharacter("char-2", "user-1", "Sidekick")
	require.NoError(t, repo.Create(ctx, hero))
	require.NoError(t, repo.Create(ctx, sidekick))

	_, err := repo.GetActive(ctx, "user-1", "guild-1")
	assert.True(t, dnderr.IsEntityNotFound(err, dnderr.EntityCharacter))

	require.NoError(t, repo.SetActive(ctx, "user-1", "char-1", ""))
	require.NoError(t, repo.SetServerActive(ctx, "user-1", "char-2", "guild-1"))

	active, err := repo.GetActive(ctx, "user-1", "guild-1")
	require.NoError(t, err)
	assert.Equal(t, "Sidekick", active.Name)

	active, err = repo.GetActive(ctx, "user-1", "guild-2")
	require.NoError(t, err)
	assert.Equal(t, "Hero", active.Name)

	active.Cvars["spell"] = "fireball"
	require.NoError(t, repo.Update(ctx, active))

	reloaded, err := repo.Get(ctx, "char-1")
	require.NoError(t, err)
	assert.Equal(t, "fireball", reloaded.Cvars["spell"])
	assert.True(t, reloaded.Active)

	all, err := repo.GetByOwner(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, repo.Delete(ctx, "char-2"))
	active, err = repo.GetActive(ctx, "user-1", "guild-1")
	require.NoError(t, err)
	assert.Equal(t, "Hero", active.Name)
}
