package entities

import (
	"regexp"
	"slices"
	"strconv"
	"time"

	dnderr "github.com/KirkDiggler/dnd-alias-bot/internal/errors"
)

// SheetType identifies where a character sheet was imported from
type SheetType string

const (
	SheetTypeBeyond    SheetType = "beyond"
	SheetTypeGoogle    SheetType = "google"
	SheetTypeDicecloud SheetType = "dicecloud"
)

// CharacterOptions are per-character display settings
type CharacterOptions struct {
	CompactCoins bool `json:"compact_coins"`
}

// Character is an imported character sheet owned by a Discord user
type Character struct {
	ID           string            `json:"id"`
	OwnerID      string            `json:"owner_id"`
	Upstream     string            `json:"upstream"`
	SheetType    SheetType         `json:"sheet_type"`
	Name         string            `json:"name"`
	Race         string            `json:"race"`
	Background   string            `json:"background"`
	Active       bool              `json:"active"`
	ActiveGuilds []string          `json:"active_guilds"`
	Stats        map[string]int    `json:"stats"`
	Consumables  []*CustomCounter  `json:"consumables"`
	Cvars        map[string]string `json:"cvars"`
	DeathSaves   *DeathSaves       `json:"death_saves"`
	Actions      []*Action         `json:"actions"`
	Coinpurse    *Coinpurse        `json:"coinpurse"`
	Options      CharacterOptions  `json:"options"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsActiveIn reports whether the character is the active one for the guild.
// An empty guild checks the global active flag.
func (c *Character) IsActiveIn(guildID string) bool {
	if guildID == "" {
		return c.Active
	}
	return slices.Contains(c.ActiveGuilds, guildID)
}

// SetServerActive marks the character active in the guild
func (c *Character) SetServerActive(guildID string) {
	if !slices.Contains(c.ActiveGuilds, guildID) {
		c.ActiveGuilds = append(c.ActiveGuilds, guildID)
	}
}

// UnsetServerActive removes the guild from the active list
func (c *Character) UnsetServerActive(guildID string) bool {
	i := slices.Index(c.ActiveGuilds, guildID)
	if i < 0 {
		return false
	}
	c.ActiveGuilds = slices.Delete(c.ActiveGuilds, i, i+1)
	return true
}

// Counter returns the custom counter with the exact name
func (c *Character) Counter(name string) (*CustomCounter, error) {
	for _, cc := range c.Consumables {
		if cc.Name == name {
			return cc, nil
		}
	}
	return nil, dnderr.NoCounter(name)
}

// HasCounter reports whether a counter with the name exists
func (c *Character) HasCounter(name string) bool {
	_, err := c.Counter(name)
	return err == nil
}

// AddCounter appends a counter, replacing any counter with the same name
func (c *Character) AddCounter(cc *CustomCounter) {
	_ = c.RemoveCounter(cc.Name)
	c.Consumables = append(c.Consumables, cc)
}

// RemoveCounter deletes the counter with the name
func (c *Character) RemoveCounter(name string) error {
	for i, cc := range c.Consumables {
		if cc.Name == name {
			c.Consumables = slices.Delete(c.Consumables, i, i+1)
			return nil
		}
	}
	return dnderr.NoCounter(name)
}

// SetCvar sets a character variable. Names must be valid identifiers.
func (c *Character) SetCvar(name, value string) error {
	if !identifierPattern.MatchString(name) {
		return dnderr.InvalidArgumentf("Cvar name %q contains invalid characters.", name)
	}
	if _, isStat := c.Stats[name]; isStat {
		return dnderr.InvalidArgumentf("Cvar %q is already a builtin character variable.", name)
	}
	if c.Cvars == nil {
		c.Cvars = make(map[string]string)
	}
	c.Cvars[name] = value
	return nil
}

// DeleteCvar removes a cvar and reports whether it existed
func (c *Character) DeleteCvar(name string) bool {
	if _, ok := c.Cvars[name]; !ok {
		return false
	}
	delete(c.Cvars, name)
	return true
}

// EvalEnv returns the variables visible to counter expressions.
// Numeric cvars are converted to numbers; stats take precedence.
func (c *Character) EvalEnv() map[string]any {
	env := make(map[string]any, len(c.Cvars)+len(c.Stats))
	for k, v := range c.Cvars {
		if n, err := strconv.Atoi(v); err == nil {
			env[k] = n
			continue
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			env[k] = f
			continue
		}
		env[k] = v
	}
	for k, v := range c.Stats {
		env[k] = v
	}
	return env
}
