package characters

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/KirkDiggler/dnd-alias-bot/internal/clock"
	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
	dnderr "github.com/KirkDiggler/dnd-alias-bot/internal/errors"
	"github.com/KirkDiggler/dnd-alias-bot/internal/repositories"
)

// inMemoryRepo is used by tests and local runs without Redis.
// Stored characters are deep copied so callers never share state with the store.
type inMemoryRepo struct {
	mu           sync.RWMutex
	characters   map[string]*entities.Character
	active       map[string]string            // ownerID -> characterID
	guildActive  map[string]map[string]string // ownerID -> guildID -> characterID
	timeProvider clock.TimeProvider
}

// NewInMemoryRepository creates a new in-memory character repository
func NewInMemoryRepository() Repository {
	return NewInMemoryRepositoryWithClock(&clock.RealTimeProvider{})
}

// NewInMemoryRepositoryWithClock creates an in-memory repository using the given clock
func NewInMemoryRepositoryWithClock(tp clock.TimeProvider) Repository {
	return &inMemoryRepo{
		characters:   make(map[string]*entities.Character),
		active:       make(map[string]string),
		guildActive:  make(map[string]map[string]string),
		timeProvider: tp,
	}
}

func (r *inMemoryRepo) Create(_ context.Context, char *entities.Character) error {
	if err := validate(char); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.characters[char.ID]; exists {
		return repositories.NewRecordExistsError(recordName, char.ID)
	}

	now := r.timeProvider.Now().UTC()
	char.CreatedAt = now
	char.UpdatedAt = now

	stored, err := cloneCharacter(char)
	if err != nil {
		return err
	}
	r.characters[char.ID] = stored
	return nil
}

func (r *inMemoryRepo) Get(_ context.Context, id string) (*entities.Character, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("character ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.getLocked(id)
}

func (r *inMemoryRepo) getLocked(id string) (*entities.Character, error) {
	char, ok := r.characters[id]
	if !ok {
		return nil, repositories.NewRecordNotFoundError(recordName, id)
	}
	return cloneCharacter(char)
}

func (r *inMemoryRepo) GetByOwner(_ context.Context, ownerID string) ([]*entities.Character, error) {
	if ownerID == "" {
		return nil, dnderr.InvalidArgument("owner ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entities.Character
	for _, char := range r.characters {
		if char.OwnerID != ownerID {
			continue
		}
		c, err := cloneCharacter(char)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *inMemoryRepo) GetActive(_ context.Context, ownerID, guildID string) (*entities.Character, error) {
	if ownerID == "" {
		return nil, dnderr.InvalidArgument("owner ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if guildID != "" {
		if id, ok := r.guildActive[ownerID][guildID]; ok {
			if _, exists := r.characters[id]; exists {
				return r.getLocked(id)
			}
		}
	}

	id, ok := r.active[ownerID]
	if !ok {
		return nil, dnderr.NoCharacter()
	}
	if _, exists := r.characters[id]; !exists {
		return nil, dnderr.NoCharacter()
	}
	return r.getLocked(id)
}

func (r *inMemoryRepo) SetActive(_ context.Context, ownerID, characterID, guildID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkOwnedLocked(ownerID, characterID); err != nil {
		return err
	}

	for _, char := range r.characters {
		if char.OwnerID != ownerID {
			continue
		}
		char.Active = char.ID == characterID
		if guildID != "" {
			char.UnsetServerActive(guildID)
		}
	}
	r.active[ownerID] = characterID
	if guildID != "" {
		delete(r.guildActive[ownerID], guildID)
	}
	return nil
}

func (r *inMemoryRepo) SetServerActive(_ context.Context, ownerID, characterID, guildID string) error {
	if guildID == "" {
		return dnderr.InvalidArgument("guild ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkOwnedLocked(ownerID, characterID); err != nil {
		return err
	}

	for _, char := range r.characters {
		if char.OwnerID != ownerID {
			continue
		}
		if char.ID == characterID {
			char.SetServerActive(guildID)
		} else {
			char.UnsetServerActive(guildID)
		}
	}
	if r.guildActive[ownerID] == nil {
		r.guildActive[ownerID] = make(map[string]string)
	}
	r.guildActive[ownerID][guildID] = characterID
	return nil
}

func (r *inMemoryRepo) checkOwnedLocked(ownerID, characterID string) error {
	if ownerID == "" {
		return dnderr.InvalidArgument("owner ID is required")
	}
	if characterID == "" {
		return dnderr.InvalidArgument("character ID is required")
	}
	char, ok := r.characters[characterID]
	if !ok || char.OwnerID != ownerID {
		return repositories.NewRecordNotFoundError(recordName, characterID)
	}
	return nil
}

func (r *inMemoryRepo) Update(_ context.Context, char *entities.Character) error {
	if err := validate(char); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.characters[char.ID]
	if !ok {
		return repositories.NewRecordNotFoundError(recordName, char.ID)
	}
	if existing.OwnerID != char.OwnerID {
		return dnderr.InvalidArgument("character owner cannot change")
	}

	char.CreatedAt = existing.CreatedAt
	char.UpdatedAt = r.timeProvider.Now().UTC()

	stored, err := cloneCharacter(char)
	if err != nil {
		return err
	}
	r.characters[char.ID] = stored
	return nil
}

func (r *inMemoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	char, ok := r.characters[id]
	if !ok {
		return repositories.NewRecordNotFoundError(recordName, id)
	}
	delete(r.characters, id)

	if r.active[char.OwnerID] == id {
		delete(r.active, char.OwnerID)
	}
	for guildID, activeID := range r.guildActive[char.OwnerID] {
		if activeID == id {
			delete(r.guildActive[char.OwnerID], guildID)
		}
	}
	return nil
}

func cloneCharacter(char *entities.Character) (*entities.Character, error) {
	data, err := json.Marshal(char)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to copy character")
	}
	var out entities.Character
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, dnderr.Wrap(err, "failed to copy character")
	}
	return &out, nil
}
