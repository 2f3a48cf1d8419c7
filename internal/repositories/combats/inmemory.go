package combats

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/KirkDiggler/dnd-alias-bot/internal/clock"
	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
	dnderr "github.com/KirkDiggler/dnd-alias-bot/internal/errors"
)

type inMemoryRepo struct {
	mu           sync.RWMutex
	combats      map[string][]byte // channelID -> JSON
	timeProvider clock.TimeProvider
}

// NewInMemoryRepository creates a new in-memory combat repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepo{
		combats:      make(map[string][]byte),
		timeProvider: &clock.RealTimeProvider{},
	}
}

func (r *inMemoryRepo) Create(_ context.Context, combat *entities.Combat) error {
	if err := validate(combat); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.combats[combat.ChannelID]; exists {
		return dnderr.AlreadyExistsf("This channel is already in combat.").
			WithMeta(dnderr.MetaEntity, dnderr.EntityCombat)
	}

	combat.CreatedAt = r.timeProvider.Now().UTC()
	data, err := json.Marshal(combat)
	if err != nil {
		return dnderr.Wrap(err, "failed to marshal combat")
	}
	r.combats[combat.ChannelID] = data
	return nil
}

func (r *inMemoryRepo) GetByChannel(_ context.Context, channelID string) (*entities.Combat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.combats[channelID]
	if !ok {
		return nil, dnderr.CombatNotFound()
	}

	var combat entities.Combat
	if err := json.Unmarshal(data, &combat); err != nil {
		return nil, dnderr.Wrap(err, "failed to unmarshal combat")
	}
	return &combat, nil
}

func (r *inMemoryRepo) Update(_ context.Context, combat *entities.Combat) error {
	if err := validate(combat); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.combats[combat.ChannelID]; !exists {
		return dnderr.CombatNotFound()
	}
	data, err := json.Marshal(combat)
	if err != nil {
		return dnderr.Wrap(err, "failed to marshal combat")
	}
	r.combats[combat.ChannelID] = data
	return nil
}

func (r *inMemoryRepo) Delete(_ context.Context, channelID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.combats[channelID]; !exists {
		return dnderr.CombatNotFound()
	}
	delete(r.combats, channelID)
	return nil
}
