package core

import (
	"fmt"
	"strings"
)

// Router manages handlers for a specific domain
type Router struct {
	// Domain name (e.g., "character", "combat")
	domain string

	// Handlers organized by pattern
	handlers map[string]Handler

	// Middleware specific to this router
	middleware []Middleware

	// CustomID builder for this domain
	customIDBuilder *CustomIDBuilder

	// Parent pipeline to register with
	pipeline *Pipeline
}

// NewRouter creates a new domain router
func NewRouter(domain string, pipeline *Pipeline) *Router {
	return &Router{
		domain:          domain,
		handlers:        make(map[string]Handler),
		middleware:      make([]Middleware, 0),
		customIDBuilder: NewCustomIDBuilder(domain),
		pipeline:        pipeline,
	}
}

// Use adds middleware to this router
func (r *Router) Use(middleware ...Middleware) *Router {
	r.middleware = append(r.middleware, middleware...)
	return r
}

// Handle registers a handler for a specific action pattern
func (r *Router) Handle(pattern string, handler Handler) *Router {
	// Apply router middleware to handler
	wrapped := handler
	for i := len(r.middleware) - 1; i >= 0; i-- {
		wrapped = r.middleware[i](wrapped)
	}

	r.handlers[pattern] = wrapped
	return r
}

// Subcommand registers a subcommand handler
func (r *Router) Subcommand(parent, sub string, handler Handler) *Router {
	pattern := fmt.Sprintf("cmd:%s:%s", parent, sub)
	return r.Handle(pattern, handler)
}

// SubcommandFunc registers a subcommand handler function
func (r *Router) SubcommandFunc(parent, sub string, fn func(*InteractionContext) (*HandlerResult, error)) *Router {
	return r.Subcommand(parent, sub, HandlerFunc(fn))
}

// SubcommandGroup registers a handler for a subcommand inside a group
func (r *Router) SubcommandGroup(parent, group, sub string, handler Handler) *Router {
	pattern := fmt.Sprintf("cmd:%s:%s:%s", parent, group, sub)
	return r.Handle(pattern, handler)
}

// SubcommandGroupFunc registers a grouped subcommand handler function
func (r *Router) SubcommandGroupFunc(parent, group, sub string, fn func(*InteractionContext) (*HandlerResult, error)) *Router {
	return r.SubcommandGroup(parent, group, sub, HandlerFunc(fn))
}

// Component registers a component interaction handler
func (r *Router) Component(action string, handler Handler) *Router {
	pattern := fmt.Sprintf("component:%s", action)
	return r.Handle(pattern, handler)
}

// ComponentFunc registers a component interaction handler function
func (r *Router) ComponentFunc(action string, fn func(*InteractionContext) (*HandlerResult, error)) *Router {
	return r.Component(action, HandlerFunc(fn))
}

// Build creates a single handler from all registered routes
func (r *Router) Build() Handler {
	return &routerHandler{
		domain:   r.domain,
		handlers: r.handlers,
	}
}

// Register registers this router with the pipeline
func (r *Router) Register() {
	if r.pipeline != nil {
		r.pipeline.Register(r.Build())
	}
}

// GetCustomIDBuilder returns the CustomID builder for this router
func (r *Router) GetCustomIDBuilder() *CustomIDBuilder {
	return r.customIDBuilder
}

// routerHandler implements Handler for a router
type routerHandler struct {
	domain   string
	handlers map[string]Handler
}

// CanHandle checks if this router can handle the interaction
func (h *routerHandler) CanHandle(ctx *InteractionContext) bool {
	pattern := h.extractPattern(ctx)
	if pattern == "" {
		return false
	}

	// Check exact match
	if _, ok := h.handlers[pattern]; ok {
		return true
	}

	// Check wildcard patterns
	parts := strings.Split(pattern, ":")
	for i := len(parts); i > 0; i-- {
		wildcardPattern := strings.Join(parts[:i], ":") + ":*"
		if _, ok := h.handlers[wildcardPattern]; ok {
			return true
		}
	}

	return false
}

// Handle processes the interaction
func (h *routerHandler) Handle(ctx *InteractionContext) (*HandlerResult, error) {
	pattern := h.extractPattern(ctx)
	if pattern == "" {
		return nil, NewNotFoundError("handler")
	}

	// Try exact match first
	if handler, ok := h.handlers[pattern]; ok {
		return handler.Handle(ctx)
	}

	// Try wildcard patterns
	parts := strings.Split(pattern, ":")
	for i := len(parts); i > 0; i-- {
		wildcardPattern := strings.Join(parts[:i], ":") + ":*"
		if handler, ok := h.handlers[wildcardPattern]; ok {
			return handler.Handle(ctx)
		}
	}

	return nil, NewNotFoundError("handler")
}

// extractPattern extracts the routing pattern from the interaction
func (h *routerHandler) extractPattern(ctx *InteractionContext) string {
	if ctx.IsCommand() {
		// Check if it's our domain command
		if ctx.GetCommandName() != h.domain {
			return ""
		}

		// Build pattern from subcommand
		sub := ctx.GetSubcommand()
		if group := ctx.GetSubcommandGroup(); group != "" && sub != "" {
			return fmt.Sprintf("cmd:%s:%s:%s", h.domain, group, sub)
		}
		if sub != "" {
			return fmt.Sprintf("cmd:%s:%s", h.domain, sub)
		}
		return fmt.Sprintf("cmd:%s", h.domain)
	}

	if ctx.IsComponent() {
		// Parse custom ID
		customID, err := ParseCustomID(ctx.GetCustomID())
		if err != nil || customID.Domain != h.domain {
			return ""
		}
		return fmt.Sprintf("component:%s", customID.Action)
	}

	return ""
}
