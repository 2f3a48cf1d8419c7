package settings

//go:generate mockgen -destination=mock/mock.go -package=mocksettings -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
)

// Repository stores per-guild server settings
type Repository interface {
	// GetByGuild returns the guild's settings, or the defaults when it never saved any
	GetByGuild(ctx context.Context, guildID string) (*entities.ServerSettings, error)

	// Save stores the guild's settings
	Save(ctx context.Context, settings *entities.ServerSettings) error
}
