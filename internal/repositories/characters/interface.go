package characters

//go:generate mockgen -destination=mock/mock.go -package=mockcharacters -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
)

// Repository defines the interface for character persistence
type Repository interface {
	// Create stores a new character
	Create(ctx context.Context, character *entities.Character) error

	// Get retrieves a character by ID
	Get(ctx context.Context, id string) (*entities.Character, error)

	// GetByOwner retrieves all characters for a specific owner
	GetByOwner(ctx context.Context, ownerID string) ([]*entities.Character, error)

	// GetActive returns the owner's character active in the guild, falling back
	// to the globally active one. An empty guildID skips the guild lookup.
	// Returns dnderr.NoCharacter when neither exists.
	GetActive(ctx context.Context, ownerID, guildID string) (*entities.Character, error)

	// SetActive makes the character globally active and clears any
	// server-active character of the owner in guildID (if given)
	SetActive(ctx context.Context, ownerID, characterID, guildID string) error

	// SetServerActive makes the character the owner's active one in the guild
	SetServerActive(ctx context.Context, ownerID, characterID, guildID string) error

	// Update updates an existing character
	Update(ctx context.Context, character *entities.Character) error

	// Delete removes a character
	Delete(ctx context.Context, id string) error
}
