package entities_test

import (
	"testing"

	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
	dnderr "github.com/KirkDiggler/dnd-alias-bot/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCharacter() *entities.Character {
	return &entities.Character{
		ID:      "char-1",
		OwnerID: "user-1",
		Name:    "Tordek",
		Stats:   map[string]int{"level": 5, "wisdomMod": 3},
		Cvars:   map[string]string{"kiBonus": "2", "title": "the Stout", "ratio": "1.5"},
	}
}

func TestCharacter_IsActiveIn(t *testing.T) {
	char := newTestCharacter()
	char.Active = true

	assert.True(t, char.IsActiveIn(""))
	assert.False(t, char.IsActiveIn("guild-1"))

	char.SetServerActive("guild-1")
	char.SetServerActive("guild-1")
	assert.True(t, char.IsActiveIn("guild-1"))
	assert.Len(t, char.ActiveGuilds, 1)

	assert.True(t, char.UnsetServerActive("guild-1"))
	assert.False(t, char.UnsetServerActive("guild-1"))
}

func TestCharacter_Counters(t *testing.T) {
	char := newTestCharacter()

	_, err := char.Counter("Ki")
	assert.True(t, dnderr.IsEntityNotFound(err, dnderr.EntityCounter))

	char.AddCounter(&entities.CustomCounter{Name: "Ki", Value: 1})
	char.AddCounter(&entities.CustomCounter{Name: "Ki", Value: 4})
	require.Len(t, char.Consumables, 1)

	cc, err := char.Counter("Ki")
	require.NoError(t, err)
	assert.Equal(t, 4, cc.Value)
	assert.False(t, char.HasCounter("ki"), "names are case sensitive")

	require.NoError(t, char.RemoveCounter("Ki"))
	assert.Error(t, char.RemoveCounter("Ki"))
}

func TestCharacter_Cvars(t *testing.T) {
	char := newTestCharacter()

	require.NoError(t, char.SetCvar("mySpell", "fireball"))
	assert.Equal(t, "fireball", char.Cvars["mySpell"])

	assert.True(t, dnderr.IsInvalidArgument(char.SetCvar("bad name", "x")))
	assert.True(t, dnderr.IsInvalidArgument(char.SetCvar("level", "20")))

	assert.True(t, char.DeleteCvar("mySpell"))
	assert.False(t, char.DeleteCvar("mySpell"))

	empty := &entities.Character{}
	require.NoError(t, empty.SetCvar("x", "1"))
}

func TestCharacter_EvalEnv(t *testing.T) {
	char := newTestCharacter()
	env := char.EvalEnv()

	assert.Equal(t, 5, env["level"])
	assert.Equal(t, 2, env["kiBonus"])
	assert.Equal(t, 1.5, env["ratio"])
	assert.Equal(t, "the Stout", env["title"])
}
