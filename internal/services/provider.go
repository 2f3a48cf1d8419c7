package services

import (
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dnd-alias-bot/internal/aliasing/evaluator"
	"github.com/KirkDiggler/dnd-alias-bot/internal/clock"
	"github.com/KirkDiggler/dnd-alias-bot/internal/dice"
	"github.com/KirkDiggler/dnd-alias-bot/internal/repositories/characters"
	"github.com/KirkDiggler/dnd-alias-bot/internal/repositories/combats"
	"github.com/KirkDiggler/dnd-alias-bot/internal/repositories/encounters"
	"github.com/KirkDiggler/dnd-alias-bot/internal/repositories/explorations"
	"github.com/KirkDiggler/dnd-alias-bot/internal/repositories/settings"
	"github.com/KirkDiggler/dnd-alias-bot/internal/services/counter"
)

// Provider holds the stores and services shared by every interaction
type Provider struct {
	Characters   characters.Repository
	Combats      combats.Repository
	Explorations explorations.Repository
	Encounters   encounters.Repository
	Settings     settings.Repository

	Counters counter.Service
	Roller   dice.Roller
	Clock    clock.TimeProvider
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	// RedisClient backs every store; without one they are kept in memory
	RedisClient redis.UniversalClient

	Clock     clock.TimeProvider
	Roller    dice.Roller
	Evaluator evaluator.Evaluator
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	if cfg == nil {
		cfg = &ProviderConfig{}
	}

	tp := cfg.Clock
	if tp == nil {
		tp = &clock.RealTimeProvider{}
	}
	roller := cfg.Roller
	if roller == nil {
		roller = dice.NewRandomRoller()
	}

	p := &Provider{
		Counters: counter.NewService(&counter.ServiceConfig{
			Evaluator: cfg.Evaluator,
			Roller:    roller,
		}),
		Roller: roller,
		Clock:  tp,
	}

	if cfg.RedisClient != nil {
		p.Characters = characters.NewRedisRepository(&characters.RedisRepoConfig{
			Client:       cfg.RedisClient,
			TimeProvider: tp,
		})
		p.Combats = combats.NewRedisRepository(&combats.RedisRepoConfig{
			Client:       cfg.RedisClient,
			TimeProvider: tp,
		})
		p.Explorations = explorations.NewRedisRepository(&explorations.RedisRepoConfig{
			Client:       cfg.RedisClient,
			TimeProvider: tp,
		})
		p.Encounters = encounters.NewRedisRepository(cfg.RedisClient)
		p.Settings = settings.NewRedisRepository(cfg.RedisClient)
		return p
	}

	p.Characters = characters.NewInMemoryRepositoryWithClock(tp)
	p.Combats = combats.NewInMemoryRepository()
	p.Explorations = explorations.NewInMemoryRepository()
	p.Encounters = encounters.NewInMemoryRepository()
	p.Settings = settings.NewInMemoryRepository()
	return p
}
