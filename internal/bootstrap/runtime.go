// Package bootstrap prepares the runtime dependencies shared by the server and tools.
package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"momentzero/internal/cache"
	"momentzero/internal/config"
	"momentzero/internal/database"
	"momentzero/internal/repository"
	"momentzero/internal/seed"
	"momentzero/internal/service"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedShowcase creates the fixed demo moments when they are missing.
	SeedShowcase bool
	// WarmIndex loads stored usernames into the Redis index.
	WarmIndex bool
}

// InitRuntime connects to the database and Redis, then runs the optional start-up work.
// A nil Redis client is returned when Redis is unreachable.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if opts.SeedShowcase {
		created, err := seed.NewSeeder(db, seed.Options{}).Showcase(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to seed showcase moments: %w", err)
		}
		if created > 0 {
			log.Printf("Seeded %d showcase moments", created)
		}
	}

	if opts.WarmIndex && r != nil {
		svc := service.NewMomentService(repository.NewMomentRepository(db), cache.NewUsernameIndex(r), nil)
		if err := svc.WarmUsernameIndex(ctx); err != nil {
			// The index is only a fast path; the database still decides.
			log.Printf("Username index warm-up failed: %v", err)
		}
	}

	return db, r, nil
}
