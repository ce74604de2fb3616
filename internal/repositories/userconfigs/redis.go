package userconfigs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/sevenknights-calc/internal/domain/stats"
	calcerr "github.com/KirkDiggler/sevenknights-calc/internal/errors"
	"github.com/KirkDiggler/sevenknights-calc/internal/uuid"
)

const indexKey = "userconfigs"

// Data is the stored form of a profile. Stats are decimal strings so values
// survive the round trip exactly.
type Data struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Stats     map[string]string `json:"stats"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

type redisRepo struct {
	client        *redis.Client
	timeProvider  TimeProvider
	uuidGenerator uuid.Generator
}

// RedisRepoConfig holds the redis repository's collaborators
type RedisRepoConfig struct {
	Client        *redis.Client
	TimeProvider  TimeProvider
	UUIDGenerator uuid.Generator
}

// NewRedis creates a redis backed repository
func NewRedis(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("redis client cannot be nil")
	}

	timeProvider := cfg.TimeProvider
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	uuidGenerator := cfg.UUIDGenerator
	if uuidGenerator == nil {
		uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}

	return &redisRepo{
		client:        cfg.Client,
		timeProvider:  timeProvider,
		uuidGenerator: uuidGenerator,
	}
}

func key(id string) string {
	return fmt.Sprintf("userconfig:%s", id)
}

func (r *redisRepo) Create(ctx context.Context, profile *Profile) error {
	if profile == nil {
		return calcerr.InvalidArgument("profile cannot be nil")
	}
	if profile.ID == "" {
		profile.ID = r.uuidGenerator.New()
	}

	exists, err := r.client.Exists(ctx, key(profile.ID)).Result()
	if err != nil {
		return calcerr.Wrap(err, "failed to check profile existence")
	}
	if exists > 0 {
		return calcerr.AlreadyExistsf("profile with ID '%s' already exists", profile.ID).
			WithMeta("profile_id", profile.ID)
	}

	now := r.timeProvider.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	jsonData, err := json.Marshal(toData(profile))
	if err != nil {
		return calcerr.WrapWithCode(err, calcerr.CodeInternal, "failed to marshal profile")
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, key(profile.ID), string(jsonData), 0)
	pipe.SAdd(ctx, indexKey, profile.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return calcerr.Wrap(err, "failed to store profile")
	}

	return nil
}

func (r *redisRepo) Get(ctx context.Context, id string) (*Profile, error) {
	if id == "" {
		return nil, calcerr.InvalidArgument("profile ID is required")
	}

	jsonData, err := r.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, calcerr.NotFoundf("profile with ID '%s' not found", id).
				WithMeta("profile_id", id)
		}
		return nil, calcerr.Wrap(err, "failed to get profile")
	}

	var data Data
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, calcerr.WrapWithCode(err, calcerr.CodeInternal, "failed to unmarshal profile")
	}

	return fromData(&data)
}

func (r *redisRepo) Update(ctx context.Context, profile *Profile) error {
	if profile == nil {
		return calcerr.InvalidArgument("profile cannot be nil")
	}

	existing, err := r.Get(ctx, profile.ID)
	if err != nil {
		return err
	}

	profile.CreatedAt = existing.CreatedAt
	profile.UpdatedAt = r.timeProvider.Now()

	jsonData, err := json.Marshal(toData(profile))
	if err != nil {
		return calcerr.WrapWithCode(err, calcerr.CodeInternal, "failed to marshal profile")
	}

	if err := r.client.Set(ctx, key(profile.ID), string(jsonData), 0).Err(); err != nil {
		return calcerr.Wrap(err, "failed to update profile")
	}

	return nil
}

func (r *redisRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return calcerr.InvalidArgument("profile ID is required")
	}

	pipe := r.client.Pipeline()
	del := pipe.Del(ctx, key(id))
	pipe.SRem(ctx, indexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return calcerr.Wrap(err, "failed to delete profile")
	}

	if del.Val() == 0 {
		return calcerr.NotFoundf("profile with ID '%s' not found", id).
			WithMeta("profile_id", id)
	}

	return nil
}

func (r *redisRepo) List(ctx context.Context) ([]*Profile, error) {
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, calcerr.Wrap(err, "failed to list profile IDs")
	}

	profiles := make([]*Profile, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			profile, err := r.Get(ctx, id)
			if err != nil {
				return calcerr.Wrapf(err, "failed to get profile %s", id)
			}
			profiles[i] = profile
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortProfiles(profiles)
	return profiles, nil
}

func toData(profile *Profile) *Data {
	return &Data{
		ID:        profile.ID,
		Name:      profile.Name,
		Stats:     profile.Stats.Strings(),
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}
}

func fromData(data *Data) (*Profile, error) {
	m, err := stats.FromStrings(data.Stats)
	if err != nil {
		return nil, calcerr.Wrapf(err, "profile %s has invalid stats", data.ID)
	}

	return &Profile{
		ID:        data.ID,
		Name:      data.Name,
		Stats:     m,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}, nil
}
