package explorations

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
	explorations map[string][]byte // channelID -> JSON
	timeProvider clock.TimeProvider
}

// NewInMemoryRepository creates a new in-memory exploration repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepo{
		explorations: make(map[string][]byte),
		timeProvider: &clock.RealTimeProvider{},
	}
}

func (r *inMemoryRepo) Create(_ context.Context, exploration *entities.Exploration) error {
	if err := validate(exploration); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.explorations[exploration.ChannelID]; exists {
		return dnderr.AlreadyExistsf("This channel is already exploring.").
			WithMeta(dnderr.MetaEntity, dnderr.EntityExploration)
	}

	exploration.CreatedAt = r.timeProvider.Now().UTC()
	data, err := json.Marshal(exploration)
	if err != nil {
		return dnderr.Wrap(err, "failed to marshal exploration")
	}
	r.explorations[exploration.ChannelID] = data
	return nil
}

func (r *inMemoryRepo) GetByChannel(_ context.Context, channelID string) (*entities.Exploration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.explorations[channelID]
	if !ok {
		return nil, dnderr.ExplorationNotFound()
	}

	var exploration entities.Exploration
	if err := json.Unmarshal(data, &exploration); err != nil {
		return nil, dnderr.Wrap(err, "failed to unmarshal exploration")
	}
	return &exploration, nil
}

func (r *inMemoryRepo) Update(_ context.Context, exploration *entities.Exploration) error {
	if err := validate(exploration); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.explorations[exploration.ChannelID]; !exists {
		return dnderr.ExplorationNotFound()
	}
	data, err := json.Marshal(exploration)
	if err != nil {
		return dnderr.Wrap(err, "failed to marshal exploration")
	}
	r.explorations[exploration.ChannelID] = data
	return nil
}

func (r *inMemoryRepo) Delete(_ context.Context, channelID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.explorations[channelID]; !exists {
		return dnderr.ExplorationNotFound()
	}
	delete(r.explorations, channelID)
	return nil
}
