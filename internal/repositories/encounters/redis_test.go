package encounters

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
	dnderr "github.com/KirkDiggler/dnd-alias-bot/internal/errors"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mock redismock.ClientMock
	repo Repository
	ctx  context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, mock := redismock.NewClientMock()
	s.mock = mock
	s.repo = NewRedisRepository(client)
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) encode(sheet *entities.EncounterSheet) string {
	data, err := json.Marshal(sheet)
	s.Require().NoError(err)
	return string(data)
}

func (s *RedisRepositoryTestSuite) expectOwned(sheets ...*entities.EncounterSheet) {
	ids := make([]string, len(sheets))
	keys := make([]string, len(sheets))
	values := make([]interface{}, len(sheets))
	for i, sheet := range sheets {
		ids[i] = sheet.ID
		keys[i] = "encounter_sheet:" + sheet.ID
		values[i] = s.encode(sheet)
	}
	s.mock.ExpectSMembers("owner:user-1:encounter_sheets").SetVal(ids)
	if len(ids) > 0 {
		s.mock.ExpectMGet(keys...).SetVal(values)
	}
}

func (s *RedisRepositoryTestSuite) TestCreate() {
	sheet := &entities.EncounterSheet{ID: "forest", OwnerID: "user-1", Name: "Forest"}

	s.mock.ExpectSetNX("encounter_sheet:forest", s.encode(sheet), 0).SetVal(true)
	s.mock.ExpectSAdd("owner:user-1:encounter_sheets", "forest").SetVal(1)
	s.Require().NoError(s.repo.Create(s.ctx, sheet))

	s.mock.ExpectSetNX("encounter_sheet:forest", s.encode(sheet), 0).SetVal(false)
	s.True(dnderr.IsAlreadyExists(s.repo.Create(s.ctx, sheet)))
}

func (s *RedisRepositoryTestSuite) TestGetActiveGuildFirst() {
	s.expectOwned(
		&entities.EncounterSheet{ID: "a", OwnerID: "user-1", Name: "Global", Active: true},
		&entities.EncounterSheet{ID: "b", OwnerID: "user-1", Name: "Guild", ActiveGuilds: []string{"guild-1"}},
	)

	sheet, err := s.repo.GetActive(s.ctx, "user-1", "guild-1")
	s.Require().NoError(err)
	s.Equal("Guild", sheet.Name)
}

func (s *RedisRepositoryTestSuite) TestGetActiveGlobalFallback() {
	s.expectOwned(
		&entities.EncounterSheet{ID: "a", OwnerID: "user-1", Name: "Global", Active: true},
		&entities.EncounterSheet{ID: "b", OwnerID: "user-1", Name: "Guild", ActiveGuilds: []string{"guild-1"}},
	)

	sheet, err := s.repo.GetActive(s.ctx, "user-1", "guild-2")
	s.Require().NoError(err)
	s.Equal("Global", sheet.Name)
}

func (s *RedisRepositoryTestSuite) TestGetActiveNone() {
	s.expectOwned()

	_, err := s.repo.GetActive(s.ctx, "user-1", "guild-1")
	s.True(dnderr.IsEntityNotFound(err, dnderr.EntityEncounter))
}

func (s *RedisRepositoryTestSuite) TestSetActiveWritesChangedSheets() {
	s.expectOwned(
		&entities.EncounterSheet{ID: "a", OwnerID: "user-1", Name: "Old", Active: true},
		&entities.EncounterSheet{ID: "b", OwnerID: "user-1", Name: "New"},
		&entities.EncounterSheet{ID: "c", OwnerID: "user-1", Name: "Idle"},
	)

	s.mock.ExpectTxPipeline()
	s.mock.ExpectSet("encounter_sheet:a", s.encode(&entities.EncounterSheet{ID: "a", OwnerID: "user-1", Name: "Old"}), 0).SetVal("OK")
	s.mock.ExpectSet("encounter_sheet:b", s.encode(&entities.EncounterSheet{ID: "b", OwnerID: "user-1", Name: "New", Active: true}), 0).SetVal("OK")
	s.mock.ExpectTxPipelineExec()

	s.Require().NoError(s.repo.SetActive(s.ctx, "user-1", "b"))
}

func (s *RedisRepositoryTestSuite) TestSetActiveUnchanged() {
	s.expectOwned(&entities.EncounterSheet{ID: "a", OwnerID: "user-1", Active: true})

	s.Require().NoError(s.repo.SetActive(s.ctx, "user-1", "a"))
}

func (s *RedisRepositoryTestSuite) TestSetServerActiveNotOwned() {
	s.expectOwned(&entities.EncounterSheet{ID: "a", OwnerID: "user-1"})

	err := s.repo.SetServerActive(s.ctx, "user-1", "z", "guild-1")
	s.True(dnderr.IsNotFound(err))
}
