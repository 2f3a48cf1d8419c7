package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/dnd-alias-bot/internal/clock"
	"github.com/KirkDiggler/dnd-alias-bot/internal/config"
	v2 "github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2"
	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/middleware"
	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/routers"
	"github.com/KirkDiggler/dnd-alias-bot/internal/services"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Application ID: %s", cfg.Discord.AppID)
	if cfg.Discord.GuildID != "" {
		log.Printf("Guild ID: %s", cfg.Discord.GuildID)
	}

	timeProvider := &clock.RealTimeProvider{}

	redisClient := connectRedis(&cfg.Redis)

	provider := services.NewProvider(&services.ProviderConfig{
		RedisClient: redisClient,
		Clock:       timeProvider,
	})

	// Rate limits are shared between instances when Redis is available
	var rateLimits middleware.RateLimitStore
	var memoryLimits *middleware.MemoryRateLimitStore
	if redisClient != nil {
		rateLimits = middleware.NewRedisRateLimitStore(redisClient)
	} else {
		memoryLimits = middleware.NewMemoryRateLimitStore(timeProvider)
		rateLimits = memoryLimits
	}

	pipeline, err := v2.NewPipeline(&v2.Config{
		Provider:       provider,
		TypingCooldown: cfg.Context.TypingCooldown,
		Routers: &routers.Options{
			RateLimits:    rateLimits,
			RateLimit:     cfg.RateLimit.Requests,
			RateLimitSpan: time.Duration(cfg.RateLimit.Window) * time.Second,
		},
	})
	if err != nil {
		log.Fatalf("Failed to build interaction pipeline: %v", err)
	}

	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		log.Fatalf("Failed to create Discord session: %v", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds
	dg.AddHandler(v2.InteractionHandler(pipeline))

	if err := dg.Open(); err != nil {
		log.Fatalf("Failed to open Discord connection: %v", err)
	}

	// Use empty string for global commands, or set a specific guild ID for testing
	if err := v2.RegisterCommands(dg, cfg.Discord.AppID, cfg.Discord.GuildID); err != nil {
		log.Printf("Failed to register commands: %v", err)
	} else if cfg.Discord.GuildID == "" {
		log.Println("Registered global commands (may take up to 1 hour to propagate)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	fmt.Println("Bot is now running. Press CTRL-C to exit.")
	<-ctx.Done()
	fmt.Println("Shutting down...")

	if err := shutdown(dg, redisClient, memoryLimits); err != nil {
		log.Printf("Shutdown finished with errors: %v", err)
	}
}

// connectRedis returns a client for the configured Redis, or nil when it
// cannot be reached and the bot should run on in-memory storage
func connectRedis(cfg *config.RedisConfig) redis.UniversalClient {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			log.Printf("Failed to parse Redis URL: %v", err)
			log.Println("Falling back to in-memory repositories")
			return nil
		}
		opts = parsed
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Failed to connect to Redis at %s: %v", opts.Addr, err)
		log.Println("Falling back to in-memory repositories")
		_ = client.Close()
		return nil
	}

	log.Printf("Using Redis at %s for persistence", opts.Addr)
	return client
}

// shutdown closes the Discord gateway and the stores concurrently
func shutdown(dg *discordgo.Session, redisClient redis.UniversalClient, memoryLimits *middleware.MemoryRateLimitStore) error {
	var g errgroup.Group

	g.Go(func() error {
		if err := dg.Close(); err != nil {
			return fmt.Errorf("failed to close Discord connection: %w", err)
		}
		return nil
	})

	if redisClient != nil {
		g.Go(func() error {
			if err := redisClient.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
				return fmt.Errorf("failed to close Redis connection: %w", err)
			}
			log.Println("Closed Redis connection")
			return nil
		})
	}

	if memoryLimits != nil {
		g.Go(func() error {
			memoryLimits.Close()
			return nil
		})
	}

	return g.Wait()
}
