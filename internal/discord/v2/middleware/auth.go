package middleware

import (
	"slices"

	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/core"
)

// AuthConfig configures authorization behavior
type AuthConfig struct {
	// RequireGuildMember requires the interaction to come from a server
	RequireGuildMember bool

	// RequiredRoles lists role IDs user must have (any of)
	RequiredRoles []string

	// UserBlacklist blocks specific users
	UserBlacklist []string

	// CustomChecker allows custom authorization logic
	CustomChecker AuthChecker
}

// AuthChecker is a custom authorization function
type AuthChecker func(ctx *core.InteractionContext) (bool, string)

// RoleNamer resolves a role ID of a guild to its name, "" if unknown
type RoleNamer func(ctx *core.InteractionContext, roleID string) string

// AuthorizationMiddleware checks if user is authorized
func AuthorizationMiddleware(config *AuthConfig) core.Middleware {
	return func(next core.Handler) core.Handler {
		return core.HandlerFunc(func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
			if slices.Contains(config.UserBlacklist, ctx.UserID) {
				return unauthorizedResponse("You are not authorized to use this command."), nil
			}

			if config.RequireGuildMember && ctx.GuildID == "" {
				return unauthorizedResponse("This command can only be used in a server."), nil
			}

			if len(config.RequiredRoles) > 0 && !hasRequiredRole(ctx, config.RequiredRoles) {
				return unauthorizedResponse("You don't have the required role to use this command."), nil
			}

			if config.CustomChecker != nil {
				if allowed, reason := config.CustomChecker(ctx); !allowed {
					return unauthorizedResponse(reason), nil
				}
			}

			return next.Handle(ctx)
		})
	}
}

// DMCheck allows members the server settings treat as DMs.
// Outside a server every user runs their own game and is allowed.
func DMCheck(roleName RoleNamer) AuthChecker {
	return func(ctx *core.InteractionContext) (bool, string) {
		settings, err := ctx.GetServerSettings()
		if err != nil {
			return false, "Could not load this server's settings."
		}
		if settings == nil {
			return true, ""
		}

		var roles []string
		if ctx.Member != nil {
			roles = ctx.Member.Roles
		}

		var lookup func(string) string
		if roleName != nil {
			lookup = func(id string) string { return roleName(ctx, id) }
		}
		if settings.IsDM(roles, lookup) {
			return true, ""
		}
		return false, "Only a DM can do that."
	}
}

// DMRequiredMiddleware restricts the handler to DMs of the server
func DMRequiredMiddleware(roleName RoleNamer) core.Middleware {
	return AuthorizationMiddleware(&AuthConfig{
		CustomChecker: DMCheck(roleName),
	})
}

// StateRoleNamer reads role names from the session's state cache
func StateRoleNamer(ctx *core.InteractionContext, roleID string) string {
	if ctx.Session == nil || ctx.Session.State == nil {
		return ""
	}
	role, err := ctx.Session.State.Role(ctx.GuildID, roleID)
	if err != nil {
		return ""
	}
	return role.Name
}

// hasRequiredRole checks if member has any of the required roles
func hasRequiredRole(ctx *core.InteractionContext, requiredRoles []string) bool {
	if ctx.Member == nil {
		return false
	}

	for _, memberRole := range ctx.Member.Roles {
		if slices.Contains(requiredRoles, memberRole) {
			return true
		}
	}

	return false
}

// unauthorizedResponse creates an unauthorized error response
func unauthorizedResponse(message string) *core.HandlerResult {
	return &core.HandlerResult{
		Response: core.NewEphemeralResponse("❌ " + message),
	}
}
