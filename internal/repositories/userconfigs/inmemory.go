package userconfigs

import (
	"context"
	"sync"

	calcerr "github.com/KirkDiggler/sevenknights-calc/internal/errors"
	"github.com/KirkDiggler/sevenknights-calc/internal/uuid"
)

// InMemoryRepository keeps profiles in process memory.
// Used when no redis is configured and in tests.
type InMemoryRepository struct {
	mu            sync.RWMutex
	profiles      map[string]*Profile
	timeProvider  TimeProvider
	uuidGenerator uuid.Generator
}

// InMemoryRepoConfig holds the optional collaborators of the in-memory repository
type InMemoryRepoConfig struct {
	TimeProvider  TimeProvider
	UUIDGenerator uuid.Generator
}

// NewInMemoryRepository creates an empty repository. cfg may be nil.
func NewInMemoryRepository(cfg *InMemoryRepoConfig) Repository {
	r := &InMemoryRepository{
		profiles:      make(map[string]*Profile),
		timeProvider:  &RealTimeProvider{},
		uuidGenerator: uuid.NewGoogleUUIDGenerator(),
	}
	if cfg != nil {
		if cfg.TimeProvider != nil {
			r.timeProvider = cfg.TimeProvider
		}
		if cfg.UUIDGenerator != nil {
			r.uuidGenerator = cfg.UUIDGenerator
		}
	}
	return r
}

func (r *InMemoryRepository) Create(ctx context.Context, profile *Profile) error {
	if profile == nil {
		return calcerr.InvalidArgument("profile cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if profile.ID == "" {
		profile.ID = r.uuidGenerator.New()
	}
	if _, exists := r.profiles[profile.ID]; exists {
		return calcerr.AlreadyExistsf("profile with ID '%s' already exists", profile.ID).
			WithMeta("profile_id", profile.ID)
	}

	now := r.timeProvider.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	// Store a copy to avoid external modifications
	r.profiles[profile.ID] = profile.clone()
	return nil
}

func (r *InMemoryRepository) Get(ctx context.Context, id string) (*Profile, error) {
	if id == "" {
		return nil, calcerr.InvalidArgument("profile ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, exists := r.profiles[id]
	if !exists {
		return nil, calcerr.NotFoundf("profile with ID '%s' not found", id).
			WithMeta("profile_id", id)
	}
	return profile.clone(), nil
}

func (r *InMemoryRepository) Update(ctx context.Context, profile *Profile) error {
	if profile == nil {
		return calcerr.InvalidArgument("profile cannot be nil")
	}
	if profile.ID == "" {
		return calcerr.InvalidArgument("profile ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.profiles[profile.ID]
	if !exists {
		return calcerr.NotFoundf("profile with ID '%s' not found", profile.ID).
			WithMeta("profile_id", profile.ID)
	}

	profile.CreatedAt = existing.CreatedAt
	profile.UpdatedAt = r.timeProvider.Now()
	r.profiles[profile.ID] = profile.clone()
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return calcerr.InvalidArgument("profile ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.profiles[id]; !exists {
		return calcerr.NotFoundf("profile with ID '%s' not found", id).
			WithMeta("profile_id", id)
	}
	delete(r.profiles, id)
	return nil
}

func (r *InMemoryRepository) List(ctx context.Context) ([]*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profiles := make([]*Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		profiles = append(profiles, p.clone())
	}
	sortProfiles(profiles)
	return profiles, nil
}
