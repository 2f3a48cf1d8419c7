package characters

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/dnd-alias-bot/internal/clock/mocks"
	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
	dnderr "github.com/KirkDiggler/dnd-alias-bot/internal/errors"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RedisRepoTestSuite struct {
	suite.Suite
	mockClient   *redis.Client
	mock         redismock.ClientMock
	mockCtrl     *gomock.Controller
	timeProvider *mocks.MockTimeProvider
	repo         Repository
	ctx          context.Context
	now          time.Time
}

func (s *RedisRepoTestSuite) SetupTest() {
	s.mockClient, s.mock = redismock.NewClientMock()
	s.mockCtrl = gomock.NewController(s.T())
	s.timeProvider = mocks.NewMockTimeProvider(s.mockCtrl)
	s.repo = NewRedisRepository(&RedisRepoConfig{
		Client:       s.mockClient,
		TimeProvider: s.timeProvider,
	})
	s.ctx = context.Background()
	s.now = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
}

func (s *RedisRepoTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepoTestSuite))
}

func (s *RedisRepoTestSuite) character(id string) *entities.Character {
	return &entities.Character{
		ID:        id,
		OwnerID:   "user-1",
		Name:      "Char " + id,
		SheetType: entities.SheetTypeBeyond,
		Stats:     map[string]int{"level": 3},
		CreatedAt: s.now,
		UpdatedAt: s.now,
	}
}

func (s *RedisRepoTestSuite) encode(char *entities.Character) string {
	data, err := json.Marshal(char)
	s.Require().NoError(err)
	return string(data)
}

// roundTrip returns the character as the repository will see it after a load
func (s *RedisRepoTestSuite) roundTrip(char *entities.Character) *entities.Character {
	var out entities.Character
	s.Require().NoError(json.Unmarshal([]byte(s.encode(char)), &out))
	return &out
}

func (s *RedisRepoTestSuite) TestCreate() {
	s.timeProvider.EXPECT().Now().Return(s.now)

	char := s.character("c1")
	char.CreatedAt = time.Time{}
	char.UpdatedAt = time.Time{}

	s.mock.ExpectExists("character:c1").SetVal(0)
	s.mock.ExpectTxPipeline()
	s.mock.ExpectSet("character:c1", s.encode(s.character("c1")), 0).SetVal("OK")
	s.mock.ExpectSAdd("owner:user-1:characters", "c1").SetVal(1)
	s.mock.ExpectTxPipelineExec()

	s.Require().NoError(s.repo.Create(s.ctx, char))
	s.Equal(s.now, char.CreatedAt)
	s.Equal(s.now, char.UpdatedAt)
}

func (s *RedisRepoTestSuite) TestCreateExisting() {
	s.mock.ExpectExists("character:c1").SetVal(1)

	err := s.repo.Create(s.ctx, s.character("c1"))
	s.True(dnderr.IsAlreadyExists(err))
}

func (s *RedisRepoTestSuite) TestCreateValidation() {
	s.True(dnderr.IsInvalidArgument(s.repo.Create(s.ctx, nil)))
	s.True(dnderr.IsInvalidArgument(s.repo.Create(s.ctx, &entities.Character{ID: "c1"})))
	s.True(dnderr.IsInvalidArgument(s.repo.Create(s.ctx, &entities.Character{OwnerID: "user-1"})))
}

func (s *RedisRepoTestSuite) TestGet() {
	s.mock.ExpectGet("character:c1").SetVal(s.encode(s.character("c1")))

	char, err := s.repo.Get(s.ctx, "c1")
	s.Require().NoError(err)
	s.Equal("Char c1", char.Name)
	s.Equal(3, char.Stats["level"])

	s.mock.ExpectGet("character:missing").RedisNil()
	_, err = s.repo.Get(s.ctx, "missing")
	s.True(dnderr.IsNotFound(err))

	s.mock.ExpectGet("character:c1").SetErr(errors.New("redis error"))
	_, err = s.repo.Get(s.ctx, "c1")
	s.Error(err)
	s.False(dnderr.IsNotFound(err))

	_, err = s.repo.Get(s.ctx, "")
	s.True(dnderr.IsInvalidArgument(err))
}

func (s *RedisRepoTestSuite) TestGetByOwner() {
	s.mock.ExpectSMembers("owner:user-1:characters").SetVal([]string{"c2", "c1", "gone"})
	s.mock.ExpectMGet("character:c1", "character:c2", "character:gone").SetVal([]interface{}{
		s.encode(s.character("c1")),
		s.encode(s.character("c2")),
		nil,
	})

	chars, err := s.repo.GetByOwner(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Require().Len(chars, 2)
	s.Equal("c1", chars[0].ID)
	s.Equal("c2", chars[1].ID)
}

func (s *RedisRepoTestSuite) TestGetByOwnerEmpty() {
	s.mock.ExpectSMembers("owner:user-2:characters").SetVal([]string{})

	chars, err := s.repo.GetByOwner(s.ctx, "user-2")
	s.Require().NoError(err)
	s.Empty(chars)
}

func (s *RedisRepoTestSuite) TestGetActivePrefersGuild() {
	s.mock.ExpectGet("owner:user-1:guild:g1:active_character").SetVal("c2")
	s.mock.ExpectGet("character:c2").SetVal(s.encode(s.character("c2")))

	char, err := s.repo.GetActive(s.ctx, "user-1", "g1")
	s.Require().NoError(err)
	s.Equal("c2", char.ID)
}

func (s *RedisRepoTestSuite) TestGetActiveFallsBackToGlobal() {
	s.mock.ExpectGet("owner:user-1:guild:g1:active_character").RedisNil()
	s.mock.ExpectGet("owner:user-1:active_character").SetVal("c1")
	s.mock.ExpectGet("character:c1").SetVal(s.encode(s.character("c1")))

	char, err := s.repo.GetActive(s.ctx, "user-1", "g1")
	s.Require().NoError(err)
	s.Equal("c1", char.ID)
}

func (s *RedisRepoTestSuite) TestGetActiveStaleGuildPointer() {
	s.mock.ExpectGet("owner:user-1:guild:g1:active_character").SetVal("gone")
	s.mock.ExpectGet("character:gone").RedisNil()
	s.mock.ExpectGet("owner:user-1:active_character").SetVal("c1")
	s.mock.ExpectGet("character:c1").SetVal(s.encode(s.character("c1")))

	char, err := s.repo.GetActive(s.ctx, "user-1", "g1")
	s.Require().NoError(err)
	s.Equal("c1", char.ID)
}

func (s *RedisRepoTestSuite) TestGetActiveNoGuild() {
	s.mock.ExpectGet("owner:user-1:active_character").SetVal("c1")
	s.mock.ExpectGet("character:c1").SetVal(s.encode(s.character("c1")))

	char, err := s.repo.GetActive(s.ctx, "user-1", "")
	s.Require().NoError(err)
	s.Equal("c1", char.ID)
}

func (s *RedisRepoTestSuite) TestGetActiveNone() {
	s.mock.ExpectGet("owner:user-1:guild:g1:active_character").RedisNil()
	s.mock.ExpectGet("owner:user-1:active_character").RedisNil()

	_, err := s.repo.GetActive(s.ctx, "user-1", "g1")
	s.True(dnderr.IsEntityNotFound(err, dnderr.EntityCharacter))
	s.Equal("You have no character active.", dnderr.UserMessage(err))
}

func (s *RedisRepoTestSuite) TestGetActiveRedisError() {
	s.mock.ExpectGet("owner:user-1:active_character").SetErr(errors.New("redis error"))

	_, err := s.repo.GetActive(s.ctx, "user-1", "")
	s.Error(err)
	s.False(dnderr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestSetActive() {
	c1 := s.character("c1")
	c2 := s.character("c2")
	c2.Active = true
	c2.ActiveGuilds = []string{"g1"}

	s.mock.ExpectSMembers("owner:user-1:characters").SetVal([]string{"c1", "c2"})
	s.mock.ExpectMGet("character:c1", "character:c2").SetVal([]interface{}{s.encode(c1), s.encode(c2)})

	wantC1 := s.roundTrip(c1)
	wantC1.Active = true
	wantC2 := s.roundTrip(c2)
	wantC2.Active = false
	wantC2.UnsetServerActive("g1")

	s.mock.ExpectTxPipeline()
	s.mock.ExpectSet("character:c1", s.encode(wantC1), 0).SetVal("OK")
	s.mock.ExpectSet("character:c2", s.encode(wantC2), 0).SetVal("OK")
	s.mock.ExpectSet("owner:user-1:active_character", "c1", 0).SetVal("OK")
	s.mock.ExpectDel("owner:user-1:guild:g1:active_character").SetVal(1)
	s.mock.ExpectTxPipelineExec()

	s.Require().NoError(s.repo.SetActive(s.ctx, "user-1", "c1", "g1"))
}

func (s *RedisRepoTestSuite) TestSetActiveNotOwned() {
	s.mock.ExpectSMembers("owner:user-1:characters").SetVal([]string{"c1"})
	s.mock.ExpectMGet("character:c1").SetVal([]interface{}{s.encode(s.character("c1"))})

	err := s.repo.SetActive(s.ctx, "user-1", "someone-elses", "")
	s.True(dnderr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestSetServerActive() {
	c1 := s.character("c1")
	c1.Active = true
	c2 := s.character("c2")
	c2.ActiveGuilds = []string{"g1", "g2"}

	s.mock.ExpectSMembers("owner:user-1:characters").SetVal([]string{"c2", "c1"})
	s.mock.ExpectMGet("character:c1", "character:c2").SetVal([]interface{}{s.encode(c1), s.encode(c2)})

	wantC1 := s.roundTrip(c1)
	wantC1.SetServerActive("g1")
	wantC2 := s.roundTrip(c2)
	wantC2.UnsetServerActive("g1")

	s.mock.ExpectTxPipeline()
	s.mock.ExpectSet("character:c1", s.encode(wantC1), 0).SetVal("OK")
	s.mock.ExpectSet("character:c2", s.encode(wantC2), 0).SetVal("OK")
	s.mock.ExpectSet("owner:user-1:guild:g1:active_character", "c1", 0).SetVal("OK")
	s.mock.ExpectTxPipelineExec()

	s.Require().NoError(s.repo.SetServerActive(s.ctx, "user-1", "c1", "g1"))
}

func (s *RedisRepoTestSuite) TestSetServerActiveRequiresGuild() {
	err := s.repo.SetServerActive(s.ctx, "user-1", "c1", "")
	s.True(dnderr.IsInvalidArgument(err))
}

func (s *RedisRepoTestSuite) TestUpdate() {
	later := s.now.Add(time.Hour)
	s.timeProvider.EXPECT().Now().Return(later)

	s.mock.ExpectGet("character:c1").SetVal(s.encode(s.character("c1")))

	updated := s.character("c1")
	updated.Name = "Renamed"
	updated.CreatedAt = time.Time{}

	want := s.character("c1")
	want.Name = "Renamed"
	want.UpdatedAt = later
	s.mock.ExpectSet("character:c1", s.encode(want), 0).SetVal("OK")

	s.Require().NoError(s.repo.Update(s.ctx, updated))
	s.Equal(s.now, updated.CreatedAt)
	s.Equal(later, updated.UpdatedAt)
}

func (s *RedisRepoTestSuite) TestUpdateOwnerChange() {
	s.mock.ExpectGet("character:c1").SetVal(s.encode(s.character("c1")))

	moved := s.character("c1")
	moved.OwnerID = "user-2"
	s.True(dnderr.IsInvalidArgument(s.repo.Update(s.ctx, moved)))
}

func (s *RedisRepoTestSuite) TestUpdateMissing() {
	s.mock.ExpectGet("character:c1").RedisNil()

	s.True(dnderr.IsNotFound(s.repo.Update(s.ctx, s.character("c1"))))
}

func (s *RedisRepoTestSuite) TestDelete() {
	char := s.character("c1")
	char.Active = true
	char.ActiveGuilds = []string{"g1"}

	s.mock.ExpectGet("character:c1").SetVal(s.encode(char))
	s.mock.ExpectTxPipeline()
	s.mock.ExpectDel("character:c1").SetVal(1)
	s.mock.ExpectSRem("owner:user-1:characters", "c1").SetVal(1)
	s.mock.ExpectDel("owner:user-1:active_character").SetVal(1)
	s.mock.ExpectDel("owner:user-1:guild:g1:active_character").SetVal(1)
	s.mock.ExpectTxPipelineExec()

	s.Require().NoError(s.repo.Delete(s.ctx, "c1"))
}
