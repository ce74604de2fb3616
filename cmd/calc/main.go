package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/sevenknights-calc/internal/clients/gamedata"
	"github.com/KirkDiggler/sevenknights-calc/internal/config"
	"github.com/KirkDiggler/sevenknights-calc/internal/export"
	"github.com/KirkDiggler/sevenknights-calc/internal/repositories/userconfigs"
	"github.com/KirkDiggler/sevenknights-calc/internal/services"
	"github.com/KirkDiggler/sevenknights-calc/internal/services/damage"
)

// statFlags collects repeated -set KEY=VALUE flags
type statFlags map[string]string

func (s statFlags) String() string {
	parts := make([]string, 0, len(s))
	for k, v := range s {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

func (s statFlags) Set(value string) error {
	key, val, ok := strings.Cut(value, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return fmt.Errorf("expected KEY=VALUE, got %q", value)
	}
	s[strings.TrimSpace(key)] = strings.TrimSpace(val)
	return nil
}

func main() {
	characterID := flag.String("character", "", "character id (file name under characters/)")
	skillKey := flag.String("skill", "", "skill key, defaults to the first skill")
	preset := flag.String("preset", "", "monster preset name")
	profileID := flag.String("profile", "", "stored user stat profile id")
	batchPath := flag.String("batch", "", "YAML batch file")
	xlsxName := flag.String("xlsx", "", "write results to an xlsx file with this name")
	saveProfile := flag.String("save-profile", "", "store the given stats (or config.json) as a named profile and exit")
	inline := statFlags{}
	flag.Var(inline, "set", "user stat KEY=VALUE laid over the profile or config.json (repeatable)")
	flag.Parse()

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
	log.Printf("Data directory: %s", cfg.Data.Dir)

	gameData, err := gamedata.New(&gamedata.Config{DataDir: cfg.Data.Dir})
	if err != nil {
		log.Fatalf("Failed to create game data client: %v", err)
	}

	providerConfig := &services.ProviderConfig{
		GameData: gameData,
		Workers:  cfg.Batch.Workers,
	}

	// Keep Redis client for cleanup
	var redisClient *redis.Client

	if cfg.Redis.Enabled() {
		log.Printf("Connecting to Redis at: %s", cfg.Redis.URL)

		opts, parseErr := redis.ParseURL(cfg.Redis.URL)
		if parseErr != nil {
			log.Printf("Failed to parse Redis URL: %v", parseErr)
			log.Println("Falling back to in-memory profiles")
		} else {
			redisClient = redis.NewClient(opts)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			pingErr := redisClient.Ping(ctx).Err()
			cancel()

			if pingErr != nil {
				log.Printf("Failed to connect to Redis: %v", pingErr)
				log.Println("Falling back to in-memory profiles")
				_ = redisClient.Close()
				redisClient = nil
			} else {
				log.Println("Successfully connected to Redis")
				providerConfig.ProfileRepository = userconfigs.NewRedis(&userconfigs.RedisRepoConfig{
					Client: redisClient,
				})
			}
		}
	} else {
		log.Println("No REDIS_URL found, using in-memory profiles")
	}

	defer func() {
		if redisClient != nil {
			if closeErr := redisClient.Close(); closeErr != nil {
				log.Printf("Error closing Redis connection: %v", closeErr)
			} else {
				log.Println("Redis connection closed")
			}
		}
	}()

	provider := services.NewProvider(providerConfig)
	ctx := context.Background()

	if code := run(ctx, provider, gameData, cfg, &runOptions{
		characterID: *characterID,
		skillKey:    *skillKey,
		preset:      *preset,
		profileID:   *profileID,
		batchPath:   *batchPath,
		xlsxName:    *xlsxName,
		saveProfile: *saveProfile,
		inline:      inline,
		persistent:  providerConfig.ProfileRepository != nil,
	}); code != 0 {
		// os.Exit skips deferred calls
		if redisClient != nil {
			_ = redisClient.Close()
		}
		os.Exit(code)
	}
}

type runOptions struct {
	characterID string
	skillKey    string
	preset      string
	profileID   string
	batchPath   string
	xlsxName    string
	saveProfile string
	inline      statFlags
	// persistent is true when profiles outlive the process
	persistent bool
}

func run(ctx context.Context, provider *services.Provider, gameData gamedata.Client, cfg *config.Config, opts *runOptions) int {
	inline, err := parseStats(opts.inline)
	if err != nil {
		log.Printf("Invalid -set value: %v", err)
		return 2
	}

	if opts.saveProfile != "" {
		if !opts.persistent {
			log.Printf("Cannot save profile %q: profiles are only persisted in Redis, set REDIS_URL", opts.saveProfile)
			return 1
		}
		fileConfig, loadErr := gameData.LoadUserConfig()
		if loadErr != nil {
			log.Printf("Failed to load user config: %v", loadErr)
			return 1
		}
		profileStats := fileConfig.Overlay(inline)
		profile := &userconfigs.Profile{
			Name:  opts.saveProfile,
			Stats: profileStats,
		}
		if createErr := provider.ProfileRepository.Create(ctx, profile); createErr != nil {
			log.Printf("Failed to save profile: %v", createErr)
			return 1
		}
		fmt.Printf("Saved profile %q with id %s (%d stats)\n", profile.Name, profile.ID, len(profile.Stats))
		return 0
	}

	var (
		reqs      []*damage.Request
		batchName string
	)
	switch {
	case opts.batchPath != "":
		bf, batchReqs, loadErr := loadBatch(opts.batchPath)
		if loadErr != nil {
			log.Printf("Failed to load batch: %v", loadErr)
			return 1
		}
		reqs = batchReqs
		batchName = bf.Name
		log.Printf("Loaded %d requests from %s", len(reqs), opts.batchPath)
	case opts.characterID != "":
		reqs = []*damage.Request{{
			Label:         opts.characterID,
			CharacterID:   opts.characterID,
			SkillKey:      opts.skillKey,
			ProfileID:     opts.profileID,
			Overrides:     inline,
			MonsterPreset: opts.preset,
		}}
		batchName = opts.characterID
	default:
		flag.Usage()
		return 2
	}

	results, err := provider.DamageService.CalculateBatch(ctx, reqs)
	if err != nil {
		log.Printf("Calculation failed: %v", err)
		return 1
	}

	for _, r := range results {
		printResult(r)
	}

	if opts.xlsxName != "" {
		name := opts.xlsxName
		if name == "-" {
			name = batchName
		}
		path, exportErr := export.ExportXLSX(cfg.Export.Dir, name, results)
		if exportErr != nil {
			log.Printf("Failed to export results: %v", exportErr)
			return 1
		}
		log.Printf("Wrote %s", path)
	}
	return 0
}

func printResult(r *damage.Result) {
	name := r.CharacterName
	if name == "" {
		name = r.CharacterID
	}
	fmt.Printf("%s: %s\n", r.Label, name)
	if r.MonsterPreset != "" {
		fmt.Printf("  Monster: %s\n", r.MonsterPreset)
	}
	fmt.Printf("  Weapon Set: %s\n", r.WeaponSet)
	if r.Special {
		fmt.Println("  Special handler: yes")
	}
	fmt.Printf("  %s (%s): %d x %d = %d\n", r.Skill.Name, r.Skill.Key, r.Skill.PerHit, r.Skill.Hits, r.Skill.Total)
	if b := r.Breakdown; b != nil {
		fmt.Printf("  Total ATK %s | Final DMG HP %s | Raw %s | Eff DEF %s\n",
			b.TotalATK.String(), b.FinalDmgHP.String(), b.RawDmg.String(), b.EffectiveDEF.String())
	}
	if len(r.Skills) > 1 {
		for _, s := range r.Skills {
			fmt.Printf("    - %s (%s): %d x %d = %d\n", s.Name, s.Key, s.PerHit, s.Hits, s.Total)
		}
	}
}
