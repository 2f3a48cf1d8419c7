package combats

import (
	"context"
	"testing"

	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
	dnderr "github.com/KirkDiggler/dnd-alias-bot/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	_, err := repo.GetByChannel(ctx, "chan-1")
	assert.True(t, dnderr.IsEntityNotFound(err, dnderr.EntityCombat))

	require.NoError(t, repo.Create(ctx, &entities.Combat{ChannelID: "chan-1", DMID: "dm-1"}))
	assert.True(t, dnderr.IsAlreadyExists(repo.Create(ctx, &entities.Combat{ChannelID: "chan-1"})))

	combat, err := repo.GetByChannel(ctx, "chan-1")
	require.NoError(t, err)
	assert.False(t, combat.CreatedAt.IsZero())

	combat.Round = 4
	require.NoError(t, repo.Update(ctx, combat))
	combat, err = repo.GetByChannel(ctx, "chan-1")
	require.NoError(t, err)
	assert.Equal(t, 4, combat.Round)

	require.NoError(t, repo.Delete(ctx, "chan-1"))
	assert.True(t, dnderr.IsEntityNotFound(repo.Update(ctx, combat), dnderr.EntityCombat))
}
