package explorations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/dnd-alias-bot/internal/clock"
	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
	dnderr "github.com/KirkDiggler/dnd-alias-bot/internal/errors"
	"github.com/redis/go-redis/v9"
)

type redisRepo struct {
	client       redis.UniversalClient
	timeProvider clock.TimeProvider
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client       redis.UniversalClient
	TimeProvider clock.TimeProvider
}

// NewRedisRepository creates a new Redis-backed exploration repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil || cfg.Client == nil {
		panic("Redis client cannot be nil")
	}
	if cfg.TimeProvider == nil {
		cfg.TimeProvider = &clock.RealTimeProvider{}
	}
	return &redisRepo{client: cfg.Client, timeProvider: cfg.TimeProvider}
}

func (r *redisRepo) key(channelID string) string {
	return fmt.Sprintf("exploration:%s", channelID)
}

func (r *redisRepo) Create(ctx context.Context, exploration *entities.Exploration) error {
	if err := validate(exploration); err != nil {
		return err
	}

	exploration.CreatedAt = r.timeProvider.Now().UTC()
	jsonData, err := json.Marshal(exploration)
	if err != nil {
		return fmt.Errorf("failed to marshal exploration: %w", err)
	}

	created, err := r.client.SetNX(ctx, r.key(exploration.ChannelID), string(jsonData), 0).Result()
	if err != nil {
		return fmt.Errorf("failed to create exploration: %w", err)
	}
	if !created {
		return dnderr.AlreadyExistsf("This channel is already exploring.").
			WithMeta(dnderr.MetaEntity, dnderr.EntityExploration)
	}
	return nil
}

func (r *redisRepo) GetByChannel(ctx context.Context, channelID string) (*entities.Exploration, error) {
	if channelID == "" {
		return nil, dnderr.ExplorationNotFound()
	}

	jsonData, err := r.client.Get(ctx, r.key(channelID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, dnderr.ExplorationNotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get exploration: %w", err)
	}

	var exploration entities.Exploration
	if err := json.Unmarshal([]byte(jsonData), &exploration); err != nil {
		return nil, fmt.Errorf("failed to unmarshal exploration: %w", err)
	}
	return &exploration, nil
}

func (r *redisRepo) Update(ctx context.Context, exploration *entities.Exploration) error {
	if err := validate(exploration); err != nil {
		return err
	}

	jsonData, err := json.Marshal(exploration)
	if err != nil {
		return fmt.Errorf("failed to marshal exploration: %w", err)
	}

	// XX so an ended exploration is not resurrected
	updated, err := r.client.SetXX(ctx, r.key(exploration.ChannelID), string(jsonData), 0).Result()
	if err != nil {
		return fmt.Errorf("failed to update exploration: %w", err)
	}
	if !updated {
		return dnderr.ExplorationNotFound()
	}
	return nil
}

func (r *redisRepo) Delete(ctx context.Context, channelID string) error {
	deleted, err := r.client.Del(ctx, r.key(channelID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete exploration: %w", err)
	}
	if deleted == 0 {
		return dnderr.ExplorationNotFound()
	}
	return nil
}

func validate(exploration *entities.Exploration) error {
	if exploration == nil {
		return dnderr.InvalidArgument("exploration cannot be nil")
	}
	if exploration.ChannelID == "" {
		return dnderr.InvalidArgument("exploration channel ID is required")
	}
	return nil
}
