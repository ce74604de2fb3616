// Package damage runs calculations end to end: load the character and the
// user stats, apply the weapon set, merge and dispatch.
package damage

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/sevenknights-calc/internal/clients/gamedata"
	"github.com/KirkDiggler/sevenknights-calc/internal/domain/calculator"
	"github.com/KirkDiggler/sevenknights-calc/internal/domain/character"
	"github.com/KirkDiggler/sevenknights-calc/internal/domain/stats"
	calcerr "github.com/KirkDiggler/sevenknights-calc/internal/errors"
	"github.com/KirkDiggler/sevenknights-calc/internal/repositories/userconfigs"
)

const defaultWorkers = 4

// Service calculates damage for stored characters
type Service interface {
	// Calculate runs one request
	Calculate(ctx context.Context, req *Request) (*Result, error)

	// CalculateBatch runs requests in parallel. Results keep request order and
	// the first failure cancels the rest.
	CalculateBatch(ctx context.Context, reqs []*Request) ([]*Result, error)

	// ListCharacters lists character files and marks special characters
	ListCharacters(ctx context.Context) ([]*CharacterSummary, error)
}

// Request selects a character and where its user stats come from. Inline
// Stats are a complete sheet and win over ProfileID, which wins over
// config.json. Overrides are then laid over whichever source was chosen.
type Request struct {
	Label         string
	CharacterID   string
	SkillKey      string
	ProfileID     string
	Stats         stats.Mapping
	Overrides     stats.Mapping
	MonsterPreset string
}

// Result is the outcome of one request
type Result struct {
	Label         string
	CharacterID   string
	CharacterName string
	WeaponSet     string
	MonsterPreset string
	Skill         calculator.SkillResult
	Skills        []calculator.SkillResult
	Special       bool
	Breakdown     *calculator.Breakdown
}

// CharacterSummary describes a character file
type CharacterSummary struct {
	ID      string
	Name    string
	Rarity  character.Rarity
	Class   character.Class
	Special bool
}

type characterEntry struct {
	meta      *character.Meta
	intrinsic stats.Mapping
}

type service struct {
	gameData   gamedata.Client
	profiles   userconfigs.Repository
	calculator *calculator.Calculator
	workers    int

	mu         sync.RWMutex
	characters map[string]*characterEntry
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	GameData   gamedata.Client        // Required
	Profiles   userconfigs.Repository // Optional, needed for ProfileID requests
	Calculator *calculator.Calculator // Optional, defaults to the default registry
	Workers    int                    // Optional, batch parallelism
}

// NewService creates a new damage service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("ServiceConfig cannot be nil")
	}
	if cfg.GameData == nil {
		panic("game data client is required")
	}

	calc := cfg.Calculator
	if calc == nil {
		calc = calculator.NewCalculator(nil)
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = defaultWorkers
	}

	return &service{
		gameData:   cfg.GameData,
		profiles:   cfg.Profiles,
		calculator: calc,
		workers:    workers,
		characters: make(map[string]*characterEntry),
	}
}

func (s *service) Calculate(ctx context.Context, req *Request) (*Result, error) {
	if req == nil {
		return nil, calcerr.InvalidArgument("request cannot be nil")
	}
	if req.CharacterID == "" {
		return nil, calcerr.InvalidArgument("character is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entry, err := s.loadCharacter(req.CharacterID)
	if err != nil {
		return nil, err
	}
	meta := entry.meta

	user, err := s.userStats(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(req.Overrides) > 0 {
		user = user.Overlay(req.Overrides)
	}

	if req.MonsterPreset != "" {
		preset, err := s.gameData.LoadMonsterPreset(req.MonsterPreset)
		if err != nil {
			return nil, err
		}
		user = user.Overlay(preset)
	}

	weaponSet, err := stats.WeaponSetID(user)
	if err != nil {
		return nil, err
	}
	user, err = stats.ApplyWeaponSet(user)
	if err != nil {
		return nil, err
	}

	merged := stats.Merge(entry.intrinsic, user)

	eval, err := s.calculator.Evaluate(meta.ID, meta, merged, req.SkillKey)
	if err != nil {
		return nil, calcerr.Wrapf(err, "failed to calculate %s", meta.ID).
			WithMeta("character", meta.ID)
	}
	skills, err := s.calculator.ComputeAll(meta.ID, meta, merged)
	if err != nil {
		return nil, calcerr.Wrapf(err, "failed to calculate skills of %s", meta.ID).
			WithMeta("character", meta.ID)
	}

	log.Printf("Calculated %s/%s: %d per hit, %d total (special=%t)",
		meta.ID, eval.Skill.Key, eval.Skill.PerHit, eval.Skill.Total, eval.Special)

	return &Result{
		Label:         req.Label,
		CharacterID:   meta.ID,
		CharacterName: meta.Name,
		WeaponSet:     stats.WeaponSetName(weaponSet),
		MonsterPreset: req.MonsterPreset,
		Skill:         eval.Skill,
		Skills:        skills,
		Special:       eval.Special,
		Breakdown:     eval.Breakdown,
	}, nil
}

func (s *service) CalculateBatch(ctx context.Context, reqs []*Request) ([]*Result, error) {
	results := make([]*Result, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, req := range reqs {
		g.Go(func() error {
			res, err := s.Calculate(ctx, req)
			if err != nil {
				return calcerr.Wrapf(err, "request %d", i).WithMeta("request", i)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Printf("Calculated batch of %d requests with %d workers", len(reqs), s.workers)
	return results, nil
}

func (s *service) ListCharacters(ctx context.Context) ([]*CharacterSummary, error) {
	ids, err := s.gameData.ListCharacters()
	if err != nil {
		return nil, err
	}

	registry := s.calculator.Registry()
	summaries := make([]*CharacterSummary, 0, len(ids))
	for _, id := range ids {
		entry, err := s.loadCharacter(id)
		if err != nil {
			log.Printf("Skipping character %s: %v", id, err)
			continue
		}
		_, special := registry.Lookup(id)
		summaries = append(summaries, &CharacterSummary{
			ID:      entry.meta.ID,
			Name:    entry.meta.Name,
			Rarity:  entry.meta.Rarity,
			Class:   entry.meta.Class,
			Special: special,
		})
	}

	return summaries, nil
}

// loadCharacter caches parsed character files; they do not change while the
// process runs
func (s *service) loadCharacter(id string) (*characterEntry, error) {
	s.mu.RLock()
	entry, ok := s.characters[id]
	s.mu.RUnlock()
	if ok {
		return entry, nil
	}

	meta, intrinsic, err := s.gameData.LoadCharacter(id)
	if err != nil {
		return nil, err
	}
	entry = &characterEntry{meta: meta, intrinsic: intrinsic}

	s.mu.Lock()
	s.characters[id] = entry
	s.mu.Unlock()

	return entry, nil
}

func (s *service) userStats(ctx context.Context, req *Request) (stats.Mapping, error) {
	switch {
	case req.Stats != nil:
		return req.Stats, nil
	case req.ProfileID != "":
		if s.profiles == nil {
			return nil, calcerr.InvalidArgumentf("profile %s requested but no profile store is configured", req.ProfileID)
		}
		profile, err := s.profiles.Get(ctx, req.ProfileID)
		if err != nil {
			return nil, err
		}
		return profile.Stats, nil
	default:
		return s.gameData.LoadUserConfig()
	}
}
