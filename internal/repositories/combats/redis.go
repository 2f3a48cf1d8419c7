package combats

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

// NewRedisRepository creates a new Redis-backed combat repository
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
	return fmt.Sprintf("combat:%s", channelID)
}

func (r *redisRepo) Create(ctx context.Context, combat *entities.Combat) error {
	if err := validate(combat); err != nil {
		return err
	}

	combat.CreatedAt = r.timeProvider.Now().UTC()
	jsonData, err := json.Marshal(combat)
	if err != nil {
		return fmt.Errorf("failed to marshal combat: %w", err)
	}

	created, err := r.client.SetNX(ctx, r.key(combat.ChannelID), string(jsonData), 0).Result()
	if err != nil {
		return fmt.Errorf("failed to create combat: %w", err)
	}
	if !created {
		return dnderr.AlreadyExistsf("This channel is already in combat.").
			WithMeta(dnderr.MetaEntity, dnderr.EntityCombat)
	}
	return nil
}

func (r *redisRepo) GetByChannel(ctx context.Context, channelID string) (*entities.Combat, error) {
	if channelID == "" {
		return nil, dnderr.CombatNotFound()
	}

	jsonData, err := r.client.Get(ctx, r.key(channelID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, dnderr.CombatNotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get combat: %w", err)
	}

	var combat entities.Combat
	if err := json.Unmarshal([]byte(jsonData), &combat); err != nil {
		return nil, fmt.Errorf("failed to unmarshal combat: %w", err)
	}
	return &combat, nil
}

func (r *redisRepo) Update(ctx context.Context, combat *entities.Combat) error {
	if err := validate(combat); err != nil {
		return err
	}

	jsonData, err := json.Marshal(combat)
	if err != nil {
		return fmt.Errorf("failed to marshal combat: %w", err)
	}

	// XX so an ended combat is not resurrected
	updated, err := r.client.SetXX(ctx, r.key(combat.ChannelID), string(jsonData), 0).Result()
	if err != nil {
		return fmt.Errorf("failed to update combat: %w", err)
	}
	if !updated {
		return dnderr.CombatNotFound()
	}
	return nil
}

func (r *redisRepo) Delete(ctx context.Context, channelID string) error {
	deleted, err := r.client.Del(ctx, r.key(channelID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete combat: %w", err)
	}
	if deleted == 0 {
		return dnderr.CombatNotFound()
	}
	return nil
}

func validate(combat *entities.Combat) error {
	if combat == nil {
		return dnderr.InvalidArgument("combat cannot be nil")
	}
	if combat.ChannelID == "" {
		return dnderr.InvalidArgument("combat channel ID is required")
	}
	return nil
}
