package combats

//go:generate mockgen -destination=mock/mock.go -package=mockcombats -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
)

// Repository stores the combat running in each channel
type Repository interface {
	// Create starts tracking a combat. A channel holds at most one.
	Create(ctx context.Context, combat *entities.Combat) error

	// GetByChannel returns the channel's combat or dnderr.CombatNotFound
	GetByChannel(ctx context.Context, channelID string) (*entities.Combat, error)

	// Update saves an existing combat
	Update(ctx context.Context, combat *entities.Combat) error

	// Delete ends the channel's combat
	Delete(ctx context.Context, channelID string) error
}
