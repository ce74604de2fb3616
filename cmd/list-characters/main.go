package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/sevenknights-calc/internal/clients/gamedata"
	"github.com/KirkDiggler/sevenknights-calc/internal/config"
	"github.com/KirkDiggler/sevenknights-calc/internal/domain/calculator"
	"github.com/KirkDiggler/sevenknights-calc/internal/repositories/userconfigs"
	"github.com/KirkDiggler/sevenknights-calc/internal/services"
)

func main() {
	showProfiles := flag.Bool("profiles", false, "also list stored user stat profiles from Redis")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	gameData, err := gamedata.New(&gamedata.Config{DataDir: cfg.Data.Dir})
	if err != nil {
		log.Fatalf("Failed to create game data client: %v", err)
	}

	ctx := context.Background()
	provider := services.NewProvider(&services.ProviderConfig{GameData: gameData})

	summaries, err := provider.DamageService.ListCharacters(ctx)
	if err != nil {
		log.Fatalf("Failed to list characters: %v", err)
	}

	fmt.Printf("Found %d characters in %s:\n", len(summaries), cfg.Data.Dir)
	for _, c := range summaries {
		marker := ""
		if c.Special {
			marker = " [special]"
		}
		fmt.Printf("  %-12s %-20s %s %s%s\n", c.ID, c.Name, c.Rarity, c.Class, marker)
	}

	fmt.Printf("\nRegistered special handlers: %s\n", strings.Join(calculator.DefaultRegistry.Keys(), ", "))

	if !*showProfiles {
		return
	}

	redisURL := cfg.Redis.URL
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)
	defer client.Close()

	// Test connection
	if _, pingErr := client.Ping(ctx).Result(); pingErr != nil {
		log.Printf("Failed to connect to Redis: %v", pingErr)
		os.Exit(1)
	}

	repo := userconfigs.NewRedis(&userconfigs.RedisRepoConfig{Client: client})
	profiles, err := repo.List(ctx)
	if err != nil {
		log.Printf("Failed to list profiles: %v", err)
		os.Exit(1)
	}

	fmt.Printf("\nFound %d profiles:\n", len(profiles))
	for _, p := range profiles {
		fmt.Printf("  %s: %s (%d stats, updated %s)\n", p.ID, p.Name, len(p.Stats), p.UpdatedAt.Format("2006-01-02 15:04"))
	}
}
