package entities

import (
	"cmp"
	"slices"
	"time"
)

// Combatant is one participant in a channel's initiative order
type Combatant struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ControllerID string `json:"controller_id"`
	CharacterID  string `json:"character_id,omitempty"`
	Initiative   int    `json:"initiative"`
	HP           int    `json:"hp"`
	MaxHP        int    `json:"max_hp"`
	IsPrivate    bool   `json:"is_private,omitempty"`
}

// Combat is the initiative tracker running in a channel
type Combat struct {
	ChannelID  string       `json:"channel_id"`
	DMID       string       `json:"dm_id"`
	Name       string       `json:"name,omitempty"`
	Round      int          `json:"round"`
	TurnIndex  int          `json:"turn_index"`
	Combatants []*Combatant `json:"combatants"`
	CreatedAt  time.Time    `json:"created_at"`
}

// Ordered returns combatants sorted by initiative, highest first, ties by name
func (c *Combat) Ordered() []*Combatant {
	out := slices.Clone(c.Combatants)
	slices.SortStableFunc(out, func(a, b *Combatant) int {
		if n := cmp.Compare(b.Initiative, a.Initiative); n != 0 {
			return n
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// Current returns the combatant whose turn it is, or nil before the first turn
func (c *Combat) Current() *Combatant {
	ordered := c.Ordered()
	if c.Round == 0 || c.TurnIndex < 0 || c.TurnIndex >= len(ordered) {
		return nil
	}
	return ordered[c.TurnIndex]
}

// ControlledBy returns the combatants the user controls
func (c *Combat) ControlledBy(userID string) []*Combatant {
	var out []*Combatant
	for _, cb := range c.Combatants {
		if cb.ControllerID == userID {
			out = append(out, cb)
		}
	}
	return out
}
