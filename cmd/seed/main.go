// Command seed fills the database with demo moments.
package main

import (
	"context"
	"flag"
	"log"

	"momentzero/internal/cache"
	"momentzero/internal/config"
	"momentzero/internal/database"
	"momentzero/internal/seed"
)

func main() {
	numMoments := flag.Int("moments", 50, "Number of generated moments to create")
	publicRatio := flag.Float64("public", 0.8, "Share of generated moments that are public")
	randSeed := flag.Int64("seed", 0, "Random seed for repeatable data (0 = random)")
	shouldClean := flag.Bool("clean", false, "Delete every account before seeding")
	flag.Parse()

	log.Println("🌱 Moment Zero Seeder")
	log.Printf("Target: %d moments, public=%.2f, clean=%v", *numMoments, *publicRatio, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	cache.InitRedis(cfg.RedisURL)
	if rdb := cache.GetClient(); rdb != nil {
		defer rdb.Close()
	}

	s := seed.NewSeeder(db, seed.Options{PublicRatio: *publicRatio, Seed: *randSeed}).
		WithIndex(cache.NewUsernameIndex(cache.GetClient()))

	if *shouldClean {
		if err := s.ClearAll(ctx); err != nil {
			log.Fatalf("❌ Cleanup failed: %v", err)
		}
	}

	showcase, err := s.Showcase(ctx)
	if err != nil {
		log.Fatalf("❌ Showcase seeding failed: %v", err)
	}

	created, err := s.Moments(ctx, *numMoments)
	if err != nil {
		log.Fatalf("❌ Moment seeding failed after %d: %v", created, err)
	}

	log.Printf("✨ Done: %d showcase and %d generated moments", showcase, created)
}
