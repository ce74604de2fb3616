package userconfigs

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/sevenknights-calc/internal/domain/stats"
	calcerr "github.com/KirkDiggler/sevenknights-calc/internal/errors"
	"github.com/KirkDiggler/sevenknights-calc/internal/repositories/userconfigs/mocks"
	mockuuid "github.com/KirkDiggler/sevenknights-calc/internal/uuid/mocks"
)

type RedisRepoTestSuite struct {
	suite.Suite
	client        *redis.Client
	mock          redismock.ClientMock
	repo          Repository
	mockCtrl      *gomock.Controller
	timeProvider  *mocks.MockTimeProvider
	uuidGenerator *mockuuid.MockGenerator
	now           time.Time
}

func (s *RedisRepoTestSuite) SetupTest() {
	s.client, s.mock = redismock.NewClientMock()
	s.mockCtrl = gomock.NewController(s.T())
	s.timeProvider = mocks.NewMockTimeProvider(s.mockCtrl)
	s.uuidGenerator = mockuuid.NewMockGenerator(s.mockCtrl)
	s.repo = NewRedis(&RedisRepoConfig{
		Client:        s.client,
		TimeProvider:  s.timeProvider,
		UUIDGenerator: s.uuidGenerator,
	})
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *RedisRepoTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepoTestSuite))
}

func (s *RedisRepoTestSuite) testProfile(id string) *Profile {
	return &Profile{
		ID:   id,
		Name: "castle run",
		Stats: stats.Mapping{
			"ATK_CHAR":   decimal.RequireFromString("4488.5"),
			"CRIT_DMG":   decimal.RequireFromString("288"),
			"Weapon_Set": decimal.RequireFromString("1"),
		},
	}
}

func (s *RedisRepoTestSuite) marshal(p *Profile) string {
	data, err := json.Marshal(toData(p))
	s.Require().NoError(err)
	return string(data)
}

func (s *RedisRepoTestSuite) TestCreate() {
	ctx := context.Background()
	profile := s.testProfile("")

	s.uuidGenerator.EXPECT().New().Return("profile-1")
	s.timeProvider.EXPECT().Now().Return(s.now)

	expected := s.testProfile("profile-1")
	expected.CreatedAt = s.now
	expected.UpdatedAt = s.now

	s.mock.ExpectExists("userconfig:profile-1").SetVal(0)
	s.mock.ExpectSet("userconfig:profile-1", s.marshal(expected), 0).SetVal("OK")
	s.mock.ExpectSAdd("userconfigs", "profile-1").SetVal(1)

	err := s.repo.Create(ctx, profile)
	s.Require().NoError(err)
	s.Equal("profile-1", profile.ID)
	s.Equal(s.now, profile.CreatedAt)
}

func (s *RedisRepoTestSuite) TestCreateAlreadyExists() {
	ctx := context.Background()

	s.mock.ExpectExists("userconfig:profile-1").SetVal(1)

	err := s.repo.Create(ctx, s.testProfile("profile-1"))
	s.True(calcerr.IsAlreadyExists(err))
	s.Equal("profile-1", calcerr.GetMeta(err)["profile_id"])
}

func (s *RedisRepoTestSuite) TestCreateErrors() {
	ctx := context.Background()

	err := s.repo.Create(ctx, nil)
	s.True(calcerr.IsInvalidArgument(err))

	s.mock.ExpectExists("userconfig:profile-1").SetErr(errors.New("redis error"))
	err = s.repo.Create(ctx, s.testProfile("profile-1"))
	s.Error(err)
}

func (s *RedisRepoTestSuite) TestGet() {
	ctx := context.Background()
	stored := s.testProfile("profile-1")
	stored.CreatedAt = s.now
	stored.UpdatedAt = s.now

	s.mock.ExpectGet("userconfig:profile-1").SetVal(s.marshal(stored))

	profile, err := s.repo.Get(ctx, "profile-1")
	s.Require().NoError(err)
	s.Equal("castle run", profile.Name)
	s.Equal(stored.Stats.Strings(), profile.Stats.Strings())
	s.True(stored.CreatedAt.Equal(profile.CreatedAt))
}

func (s *RedisRepoTestSuite) TestGetErrors() {
	ctx := context.Background()

	s.mock.ExpectGet("userconfig:missing").RedisNil()
	_, err := s.repo.Get(ctx, "missing")
	s.True(calcerr.IsNotFound(err))

	s.mock.ExpectGet("userconfig:profile-1").SetErr(errors.New("redis error"))
	_, err = s.repo.Get(ctx, "profile-1")
	s.Error(err)
	s.False(calcerr.IsNotFound(err))

	s.mock.ExpectGet("userconfig:bad").SetVal(`{"id":"bad","stats":{"ATK_CHAR":"abc"}}`)
	_, err = s.repo.Get(ctx, "bad")
	s.True(calcerr.IsInvalidNumber(err))

	_, err = s.repo.Get(ctx, "")
	s.True(calcerr.IsInvalidArgument(err))
}

func (s *RedisRepoTestSuite) TestUpdate() {
	ctx := context.Background()
	created := s.now.Add(-time.Hour)

	stored := s.testProfile("profile-1")
	stored.CreatedAt = created
	stored.UpdatedAt = created

	update := s.testProfile("profile-1")
	update.Name = "hydra run"
	update.Stats = update.Stats.With("Weapon_Set", decimal.RequireFromString("3"))

	expected := s.testProfile("profile-1")
	expected.Name = "hydra run"
	expected.Stats = update.Stats
	expected.CreatedAt = created
	expected.UpdatedAt = s.now

	s.timeProvider.EXPECT().Now().Return(s.now)
	s.mock.ExpectGet("userconfig:profile-1").SetVal(s.marshal(stored))
	s.mock.ExpectSet("userconfig:profile-1", s.marshal(expected), 0).SetVal("OK")

	err := s.repo.Update(ctx, update)
	s.Require().NoError(err)
	s.True(created.Equal(update.CreatedAt))
	s.Equal(s.now, update.UpdatedAt)
}

func (s *RedisRepoTestSuite) TestUpdateMissing() {
	s.mock.ExpectGet("userconfig:profile-1").RedisNil()

	err := s.repo.Update(context.Background(), s.testProfile("profile-1"))
	s.True(calcerr.IsNotFound(err))

	err = s.repo.Update(context.Background(), nil)
	s.True(calcerr.IsInvalidArgument(err))
}

func (s *RedisRepoTestSuite) TestDelete() {
	ctx := context.Background()

	s.mock.ExpectDel("userconfig:profile-1").SetVal(1)
	s.mock.ExpectSRem("userconfigs", "profile-1").SetVal(1)
	s.NoError(s.repo.Delete(ctx, "profile-1"))

	s.mock.ExpectDel("userconfig:profile-2").SetVal(0)
	s.mock.ExpectSRem("userconfigs", "profile-2").SetVal(0)
	s.True(calcerr.IsNotFound(s.repo.Delete(ctx, "profile-2")))

	s.True(calcerr.IsInvalidArgument(s.repo.Delete(ctx, "")))
}

func (s *RedisRepoTestSuite) TestList() {
	ctx := context.Background()

	first := s.testProfile("profile-1")
	first.Name = "b"
	second := s.testProfile("profile-2")
	second.Name = "a"

	s.mock.MatchExpectationsInOrder(false)
	s.mock.ExpectSMembers("userconfigs").SetVal([]string{"profile-1", "profile-2"})
	s.mock.ExpectGet("userconfig:profile-1").SetVal(s.marshal(first))
	s.mock.ExpectGet("userconfig:profile-2").SetVal(s.marshal(second))

	profiles, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(profiles, 2)
	s.Equal("profile-2", profiles[0].ID)
	s.Equal("profile-1", profiles[1].ID)
}

func (s *RedisRepoTestSuite) TestListErrors() {
	ctx := context.Background()

	s.mock.ExpectSMembers("userconfigs").SetErr(errors.New("redis error"))
	_, err := s.repo.List(ctx)
	s.Error(err)

	s.mock.ExpectSMembers("userconfigs").SetVal([]string{"gone"})
	s.mock.ExpectGet("userconfig:gone").RedisNil()
	_, err = s.repo.List(ctx)
	s.True(calcerr.IsNotFound(err))
}

func TestNewRedisRequiresClient(t *testing.T) {
	assert.Panics(t, func() { NewRedis(nil) })
	assert.Panics(t, func() { NewRedis(&RedisRepoConfig{}) })
}
