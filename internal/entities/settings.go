package entities

import (
	"slices"
	"strings"
)

// defaultDMRoleNames are matched case-insensitively when a guild has no DM roles configured
var defaultDMRoleNames = []string{"dm", "gm", "dungeon master", "game master"}

// ServerSettings are per-guild options
type ServerSettings struct {
	GuildID string `json:"guild_id"`
	// DMRoles are role IDs treated as DMs; empty means match by role name
	DMRoles          []string `json:"dm_roles,omitempty"`
	LookupDMRequired bool     `json:"lookup_dm_required"`
	LookupPMDM       bool     `json:"lookup_pm_dm"`
	LookupPMResult   bool     `json:"lookup_pm_result"`
	ShowDeathSaves   bool     `json:"show_death_saves"`
}

// DefaultServerSettings are the settings of a guild that never saved any
func DefaultServerSettings(guildID string) *ServerSettings {
	return &ServerSettings{
		GuildID:          guildID,
		LookupDMRequired: true,
		ShowDeathSaves:   true,
	}
}

// IsDM reports whether a member with the given roles counts as a DM.
// roleName resolves a role ID for the name fallback and may be nil.
func (s *ServerSettings) IsDM(roleIDs []string, roleName func(id string) string) bool {
	if len(s.DMRoles) > 0 {
		for _, id := range roleIDs {
			if slices.Contains(s.DMRoles, id) {
				return true
			}
		}
		return false
	}

	if roleName == nil {
		return false
	}
	for _, id := range roleIDs {
		if slices.Contains(defaultDMRoleNames, strings.ToLower(roleName(id))) {
			return true
		}
	}
	return false
}
