package settings

import (
	"context"
	"slices"
	"sync"

	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
	dnderr "github.com/KirkDiggler/dnd-alias-bot/internal/errors"
)

type inMemoryRepo struct {
	mu       sync.RWMutex
	settings map[string]entities.ServerSettings
}

// NewInMemoryRepository creates a new in-memory settings repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepo{settings: make(map[string]entities.ServerSettings)}
}

func (r *inMemoryRepo) GetByGuild(_ context.Context, guildID string) (*entities.ServerSettings, error) {
	if guildID == "" {
		return nil, dnderr.InvalidArgument("guild ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.settings[guildID]
	if !ok {
		return entities.DefaultServerSettings(guildID), nil
	}
	stored.DMRoles = slices.Clone(stored.DMRoles)
	return &stored, nil
}

func (r *inMemoryRepo) Save(_ context.Context, settings *entities.ServerSettings) error {
	if settings == nil || settings.GuildID == "" {
		return dnderr.InvalidArgument("guild ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *settings
	stored.DMRoles = slices.Clone(settings.DMRoles)
	r.settings[settings.GuildID] = stored
	return nil
}
