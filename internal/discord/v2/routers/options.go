package routers

import (
	"time"

	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/middleware"
)

// Options tune the middleware every router applies. A nil *Options means
// no rate limit and role names read from the session state.
type Options struct {
	// RateLimits enables the per-user limit when set
	RateLimits    middleware.RateLimitStore
	RateLimit     int
	RateLimitSpan time.Duration

	// RoleNamer resolves role names for the DM check
	RoleNamer middleware.RoleNamer
}

func (o *Options) rateLimit() []core.Middleware {
	if o == nil || o.RateLimits == nil || o.RateLimit <= 0 || o.RateLimitSpan <= 0 {
		return nil
	}
	return []core.Middleware{middleware.UserRateLimitMiddleware(o.RateLimit, o.RateLimitSpan, o.RateLimits)}
}

func (o *Options) roleNamer() middleware.RoleNamer {
	if o == nil || o.RoleNamer == nil {
		return middleware.StateRoleNamer
	}
	return o.RoleNamer
}
