package characters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/KirkDiggler/dnd-alias-bot/internal/clock"
	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
	dnderr "github.com/KirkDiggler/dnd-alias-bot/internal/errors"
	"github.com/KirkDiggler/dnd-alias-bot/internal/repositories"
	"github.com/redis/go-redis/v9"
)

const recordName = "character"

// redisRepo implements the Repository interface using Redis
type redisRepo struct {
	client       redis.UniversalClient
	timeProvider clock.TimeProvider
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client       redis.UniversalClient
	TimeProvider clock.TimeProvider
}

// NewRedisRepository creates a new Redis-backed character repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}
	if cfg.TimeProvider == nil {
		cfg.TimeProvider = &clock.RealTimeProvider{}
	}

	return &redisRepo{
		client:       cfg.Client,
		timeProvider: cfg.TimeProvider,
	}
}

func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("character:%s", id)
}

func (r *redisRepo) ownerCharactersKey(ownerID string) string {
	return fmt.Sprintf("owner:%s:characters", ownerID)
}

func (r *redisRepo) activeKey(ownerID string) string {
	return fmt.Sprintf("owner:%s:active_character", ownerID)
}

func (r *redisRepo) guildActiveKey(ownerID, guildID string) string {
	return fmt.Sprintf("owner:%s:guild:%s:active_character", ownerID, guildID)
}

// Create stores a new character
func (r *redisRepo) Create(ctx context.Context, char *entities.Character) error {
	if err := validate(char); err != nil {
		return err
	}

	exists, err := r.client.Exists(ctx, r.key(char.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check character existence: %w", err)
	}
	if exists > 0 {
		return repositories.NewRecordExistsError(recordName, char.ID)
	}

	now := r.timeProvider.Now().UTC()
	char.CreatedAt = now
	char.UpdatedAt = now

	jsonData, err := json.Marshal(char)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key(char.ID), string(jsonData), 0)
	pipe.SAdd(ctx, r.ownerCharactersKey(char.OwnerID), char.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create character: %w", err)
	}

	return nil
}

// Get retrieves a character by ID
func (r *redisRepo) Get(ctx context.Context, id string) (*entities.Character, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("character ID is required")
	}

	jsonData, err := r.client.Get(ctx, r.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, repositories.NewRecordNotFoundError(recordName, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}

	var char entities.Character
	if err := json.Unmarshal([]byte(jsonData), &char); err != nil {
		return nil, fmt.Errorf("failed to unmarshal character: %w", err)
	}

	return &char, nil
}

// GetByOwner retrieves all characters for a specific owner.
// IDs left in the owner index without a record are skipped.
func (r *redisRepo) GetByOwner(ctx context.Context, ownerID string) ([]*entities.Character, error) {
	if ownerID == "" {
		return nil, dnderr.InvalidArgument("owner ID is required")
	}

	ids, err := r.client.SMembers(ctx, r.ownerCharactersKey(ownerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list character IDs: %w", err)
	}

	if len(ids) == 0 {
		return []*entities.Character{}, nil
	}
	sort.Strings(ids)

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.key(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get characters: %w", err)
	}

	out := make([]*entities.Character, 0, len(values))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		var char entities.Character
		if err := json.Unmarshal([]byte(raw), &char); err != nil {
			return nil, fmt.Errorf("failed to unmarshal character %s: %w", ids[i], err)
		}
		out = append(out, &char)
	}
	return out, nil
}

// GetActive returns the guild active character, then the global one
func (r *redisRepo) GetActive(ctx context.Context, ownerID, guildID string) (*entities.Character, error) {
	if ownerID == "" {
		return nil, dnderr.InvalidArgument("owner ID is required")
	}

	if guildID != "" {
		char, err := r.getPointer(ctx, r.guildActiveKey(ownerID, guildID))
		if err != nil {
			return nil, err
		}
		if char != nil {
			return char, nil
		}
	}

	char, err := r.getPointer(ctx, r.activeKey(ownerID))
	if err != nil {
		return nil, err
	}
	if char == nil {
		return nil, dnderr.NoCharacter()
	}
	return char, nil
}

// getPointer follows an active pointer key. A missing key or a dangling ID yields nil.
func (r *redisRepo) getPointer(ctx context.Context, key string) (*entities.Character, error) {
	id, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active character: %w", err)
	}

	char, err := r.Get(ctx, id)
	if dnderr.IsNotFound(err) {
		return nil, nil
	}
	return char, err
}

// SetActive makes the character globally active
func (r *redisRepo) SetActive(ctx context.Context, ownerID, characterID, guildID string) error {
	chars, err := r.ownedWithTarget(ctx, ownerID, characterID)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	for _, char := range chars {
		changed := guildID != "" && char.UnsetServerActive(guildID)
		isTarget := char.ID == characterID
		if char.Active != isTarget {
			char.Active = isTarget
			changed = true
		}
		if changed {
			if err := r.queueSave(ctx, pipe, char); err != nil {
				return err
			}
		}
	}
	pipe.Set(ctx, r.activeKey(ownerID), characterID, 0)
	if guildID != "" {
		pipe.Del(ctx, r.guildActiveKey(ownerID, guildID))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set active character: %w", err)
	}
	return nil
}

// SetServerActive makes the character active in one guild
func (r *redisRepo) SetServerActive(ctx context.Context, ownerID, characterID, guildID string) error {
	if guildID == "" {
		return dnderr.InvalidArgument("guild ID is required")
	}

	chars, err := r.ownedWithTarget(ctx, ownerID, characterID)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	for _, char := range chars {
		var changed bool
		if char.ID == characterID {
			changed = !char.IsActiveIn(guildID)
			char.SetServerActive(guildID)
		} else {
			changed = char.UnsetServerActive(guildID)
		}
		if changed {
			if err := r.queueSave(ctx, pipe, char); err != nil {
				return err
			}
		}
	}
	pipe.Set(ctx, r.guildActiveKey(ownerID, guildID), characterID, 0)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set server active character: %w", err)
	}
	return nil
}

// ownedWithTarget loads all of the owner's characters and checks the target is among them
func (r *redisRepo) ownedWithTarget(ctx context.Context, ownerID, characterID string) ([]*entities.Character, error) {
	if characterID == "" {
		return nil, dnderr.InvalidArgument("character ID is required")
	}

	chars, err := r.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for _, char := range chars {
		if char.ID == characterID {
			return chars, nil
		}
	}
	return nil, repositories.NewRecordNotFoundError(recordName, characterID)
}

func (r *redisRepo) queueSave(ctx context.Context, pipe redis.Pipeliner, char *entities.Character) error {
	jsonData, err := json.Marshal(char)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}
	pipe.Set(ctx, r.key(char.ID), string(jsonData), 0)
	return nil
}

// Update updates an existing character, preserving its creation time
func (r *redisRepo) Update(ctx context.Context, char *entities.Character) error {
	if err := validate(char); err != nil {
		return err
	}

	existing, err := r.Get(ctx, char.ID)
	if err != nil {
		return err
	}
	if existing.OwnerID != char.OwnerID {
		return dnderr.InvalidArgument("character owner cannot change")
	}

	char.CreatedAt = existing.CreatedAt
	char.UpdatedAt = r.timeProvider.Now().UTC()

	jsonData, err := json.Marshal(char)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	if err := r.client.Set(ctx, r.key(char.ID), string(jsonData), 0).Err(); err != nil {
		return fmt.Errorf("failed to update character: %w", err)
	}
	return nil
}

// Delete removes a character and any active pointers to it
func (r *redisRepo) Delete(ctx context.Context, id string) error {
	char, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.key(id))
	pipe.SRem(ctx, r.ownerCharactersKey(char.OwnerID), id)
	if char.Active {
		pipe.Del(ctx, r.activeKey(char.OwnerID))
	}
	for _, guildID := range char.ActiveGuilds {
		pipe.Del(ctx, r.guildActiveKey(char.OwnerID, guildID))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}
	return nil
}

func validate(char *entities.Character) error {
	if char == nil {
		return dnderr.InvalidArgument("character cannot be nil")
	}
	if char.ID == "" {
		return dnderr.InvalidArgument("character ID is required")
	}
	if char.OwnerID == "" {
		return dnderr.InvalidArgument("character owner ID is required")
	}
	return nil
}
