package explorations

//go:generate mockgen -destination=mock/mock.go -package=mockexplorations -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
)

// Repository stores the exploration running in each channel
type Repository interface {
	// Create starts tracking an exploration. A channel holds at most one.
	Create(ctx context.Context, exploration *entities.Exploration) error

	// GetByChannel returns the channel's exploration or dnderr.ExplorationNotFound
	GetByChannel(ctx context.Context, channelID string) (*entities.Exploration, error)

	// Update saves an existing exploration
	Update(ctx context.Context, exploration *entities.Exploration) error

	// Delete ends the channel's exploration
	Delete(ctx context.Context, channelID string) error
}
