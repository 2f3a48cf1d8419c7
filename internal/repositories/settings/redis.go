package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
	dnderr "github.com/KirkDiggler/dnd-alias-bot/internal/errors"
	"github.com/redis/go-redis/v9"
)

type redisRepo struct {
	client redis.UniversalClient
}

// NewRedisRepository creates a Redis-backed settings repository
func NewRedisRepository(client redis.UniversalClient) Repository {
	if client == nil {
		panic("Redis client cannot be nil")
	}
	return &redisRepo{client: client}
}

func (r *redisRepo) key(guildID string) string {
	return fmt.Sprintf("guild:%s:settings", guildID)
}

func (r *redisRepo) GetByGuild(ctx context.Context, guildID string) (*entities.ServerSettings, error) {
	if guildID == "" {
		return nil, dnderr.InvalidArgument("guild ID is required")
	}

	jsonData, err := r.client.Get(ctx, r.key(guildID)).Result()
	if errors.Is(err, redis.Nil) {
		return entities.DefaultServerSettings(guildID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get server settings: %w", err)
	}

	settings := entities.DefaultServerSettings(guildID)
	if err := json.Unmarshal([]byte(jsonData), settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal server settings: %w", err)
	}
	return settings, nil
}

func (r *redisRepo) Save(ctx context.Context, settings *entities.ServerSettings) error {
	if settings == nil || settings.GuildID == "" {
		return dnderr.InvalidArgument("guild ID is required")
	}

	jsonData, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal server settings: %w", err)
	}
	if err := r.client.Set(ctx, r.key(settings.GuildID), string(jsonData), 0).Err(); err != nil {
		return fmt.Errorf("failed to save server settings: %w", err)
	}
	return nil
}
