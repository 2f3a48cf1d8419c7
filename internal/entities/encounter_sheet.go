package entities

import (
	"slices"

	"github.com/KirkDiggler/dnd-alias-bot/internal/dice"
	dnderr "github.com/KirkDiggler/dnd-alias-bot/internal/errors"
)

// RandomEncounter is one row of a random encounter table
type RandomEncounter struct {
	Name string `json:"name"`
	// NumAppearing is a dice string, empty when the row has no count
	NumAppearing string `json:"num_appearing,omitempty"`
}

// RolledEncounter is a table row picked by a roll
type RolledEncounter struct {
	Name   string
	Number int
	// Count is nil when the row has no NumAppearing
	Count *int
}

// EncounterSheet is an imported random encounter table owned by a user
type EncounterSheet struct {
	ID             string            `json:"id"`
	OwnerID        string            `json:"owner_id"`
	Upstream       string            `json:"upstream"`
	Name           string            `json:"name"`
	Active         bool              `json:"active"`
	ActiveGuilds   []string          `json:"active_guilds"`
	DiceExpression string            `json:"dice_expression"`
	Encounters     []RandomEncounter `json:"encounters"`
}

// IsActiveIn reports whether the sheet is active for the guild, or globally when guildID is empty
func (s *EncounterSheet) IsActiveIn(guildID string) bool {
	if guildID == "" {
		return s.Active
	}
	return slices.Contains(s.ActiveGuilds, guildID)
}

// SetServerActive marks the sheet active in the guild
func (s *EncounterSheet) SetServerActive(guildID string) {
	if !slices.Contains(s.ActiveGuilds, guildID) {
		s.ActiveGuilds = append(s.ActiveGuilds, guildID)
	}
}

// UnsetServerActive removes the guild from the active list
func (s *EncounterSheet) UnsetServerActive(guildID string) bool {
	i := slices.Index(s.ActiveGuilds, guildID)
	if i < 0 {
		return false
	}
	s.ActiveGuilds = slices.Delete(s.ActiveGuilds, i, i+1)
	return true
}

// Pick returns the row for a 1-indexed table roll, rolling how many appear
func (s *EncounterSheet) Pick(number int, roller dice.Roller) (*RolledEncounter, error) {
	if len(s.Encounters) == 0 {
		return nil, dnderr.NoEncounter()
	}
	if number < 1 || number > len(s.Encounters) {
		return nil, dnderr.InvalidArgumentf("Encounter roll %d is outside the table (1-%d).", number, len(s.Encounters))
	}

	row := s.Encounters[number-1]
	out := &RolledEncounter{Name: row.Name, Number: number}
	if row.NumAppearing != "" {
		res, err := dice.RollString(roller, row.NumAppearing)
		if err != nil {
			return nil, dnderr.Wrapf(err, "invalid number appearing for %s", row.Name)
		}
		out.Count = &res.Total
	}
	return out, nil
}

// RollEncounters makes the given number of checks, each succeeding when a d100 is under chance
func (s *EncounterSheet) RollEncounters(checks, chance int, roller dice.Roller) ([]*RolledEncounter, error) {
	var out []*RolledEncounter
	for i := 0; i < checks; i++ {
		check, err := roller.Roll(1, 100, 0)
		if err != nil {
			return nil, err
		}
		if check.Total >= chance {
			continue
		}

		table, err := dice.RollString(roller, s.DiceExpression)
		if err != nil {
			return nil, dnderr.Wrapf(err, "invalid encounter dice %q", s.DiceExpression)
		}
		enc, err := s.Pick(table.Total, roller)
		if err != nil {
			return nil, err
		}
		out = append(out, enc)
	}
	return out, nil
}
