package testutils

import (
	"time"

	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
)

// FixedTime is the timestamp fixtures use so serialized records are stable
var FixedTime = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

// CreateTestCharacter creates a level 5 character with a couple of counters
func CreateTestCharacter(id, ownerID, name string) *entities.Character {
	return &entities.Character{
		ID:        id,
		OwnerID:   ownerID,
		Upstream:  "beyond-" + id,
		SheetType: entities.SheetTypeBeyond,
		Name:      name,
		Race:      "Human",
		Stats: map[string]int{
			"level":             5,
			"proficiencyBonus":  3,
			"charismaMod":       2,
			"constitutionScore": 14,
		},
		Consumables: []*entities.CustomCounter{
			{Name: "Bardic Inspiration", Value: 2, Min: "0", Max: "charismaMod", ResetOn: entities.ResetLong},
			{Name: "Luck", Value: 3, Min: "0", Max: "3", ResetOn: entities.ResetLong, DisplayType: entities.DisplayBubble},
		},
		Cvars:      map[string]string{},
		DeathSaves: &entities.DeathSaves{},
		Coinpurse:  &entities.Coinpurse{Coins: entities.Coins{GP: 15, SP: 4}},
		CreatedAt:  FixedTime,
		UpdatedAt:  FixedTime,
	}
}

// CreateTestCombat creates a running combat with one player and one monster
func CreateTestCombat(channelID, dmID string) *entities.Combat {
	return &entities.Combat{
		ChannelID: channelID,
		DMID:      dmID,
		Round:     1,
		Combatants: []*entities.Combatant{
			{ID: "cmb-1", Name: "Goblin", ControllerID: dmID, Initiative: 12, HP: 7, MaxHP: 7, IsPrivate: true},
			{ID: "cmb-2", Name: "Hero", ControllerID: "player-1", CharacterID: "char-1", Initiative: 15, HP: 30, MaxHP: 30},
		},
		CreatedAt: FixedTime,
	}
}

// CreateTestExploration creates an exploration that checks for encounters every 6 rounds
func CreateTestExploration(channelID, dmID string) *entities.Exploration {
	exp := &entities.Exploration{
		ChannelID: channelID,
		DMID:      dmID,
		Explorers: []*entities.Explorer{
			{ID: "exp-1", Name: "Hero", ControllerID: "player-1"},
		},
	}
	exp.SetChance(25)
	exp.SetEncounterTimer(6)
	return exp
}

// CreateTestEncounterSheet creates a d4 encounter table
func CreateTestEncounterSheet(id, ownerID string) *entities.EncounterSheet {
	return &entities.EncounterSheet{
		ID:             id,
		OwnerID:        ownerID,
		Upstream:       "sheet-" + id,
		Name:           "Forest",
		DiceExpression: "1d4",
		Encounters: []entities.RandomEncounter{
			{Name: "Wolves", NumAppearing: "1d4"},
			{Name: "Bandits", NumAppearing: "2d4"},
			{Name: "A lost merchant"},
			{Name: "Owlbear", NumAppearing: "1"},
		},
	}
}
