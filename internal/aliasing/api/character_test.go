package api_test

import (
	"context"
	"errors"
	"testing"

	"github.com/KirkDiggler/dnd-alias-bot/internal/aliasing/api"
	mockapi "github.com/KirkDiggler/dnd-alias-bot/internal/aliasing/api/mock"
	mockdice "github.com/KirkDiggler/dnd-alias-bot/internal/dice/mock"
	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
	dnderr "github.com/KirkDiggler/dnd-alias-bot/internal/errors"
	"github.com/KirkDiggler/dnd-alias-bot/internal/services/counter"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AliasCharacterTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	names     *mockapi.MockNames
	committer *mockapi.MockCommitter
	roller    *mockdice.ManualMockRoller
	char      *entities.Character
	alias     *api.AliasCharacter
}

func (s *AliasCharacterTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.names = mockapi.NewMockNames(s.ctrl)
	s.committer = mockapi.NewMockCommitter(s.ctrl)
	s.roller = mockdice.NewManualMockRoller()
	s.char = &entities.Character{
		ID:         "char-1",
		OwnerID:    "user-1",
		Upstream:   "beyond-123",
		SheetType:  entities.SheetTypeBeyond,
		Name:       "Kestrel",
		Race:       "Half-Elf",
		Background: "Sage",
		Stats:      map[string]int{"level": 6},
		Cvars:      map[string]string{"color": "blue"},
		Consumables: []*entities.CustomCounter{
			{Name: "Ki", Min: "0", Max: "level", Value: 4},
		},
		Actions: []*entities.Action{
			{Name: "Stunning Strike", Activation: entities.ActivationNoAction, Description: "Spend 1 ki."},
			{Name: "Lore"},
		},
		Coinpurse: &entities.Coinpurse{Coins: entities.Coins{GP: 10}},
	}
	s.alias = api.NewAliasCharacter(&api.AliasCharacterConfig{
		Character: s.char,
		Counters:  counter.NewService(&counter.ServiceConfig{Roller: s.roller}),
		Names:     s.names,
		Committer: s.committer,
	})
}

func (s *AliasCharacterTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAliasCharacterSuite(t *testing.T) {
	suite.Run(t, new(AliasCharacterTestSuite))
}

func (s *AliasCharacterTestSuite) TestCounters() {
	value, err := s.alias.GetCC("Ki")
	s.Require().NoError(err)
	s.Equal(4, value)

	maxValue, err := s.alias.GetCCMax("Ki")
	s.Require().NoError(err)
	s.Equal(6, maxValue)

	minValue, err := s.alias.GetCCMin("Ki")
	s.Require().NoError(err)
	s.Equal(0, minValue)

	got, err := s.alias.ModCC("Ki", -5, false)
	s.Require().NoError(err)
	s.Equal(0, got)

	_, err = s.alias.SetCC("Ki", 7, true)
	s.True(dnderr.IsOutOfBounds(err))

	str, err := s.alias.CCStr("Ki")
	s.Require().NoError(err)
	s.Equal("0/6", str)

	_, err = s.alias.GetCC("Rage")
	s.True(dnderr.IsEntityNotFound(err, dnderr.EntityCounter))
}

func (s *AliasCharacterTestSuite) TestCounterDefaults() {
	_, err := s.alias.CreateCC(&counter.CreateInput{Name: "Tally"})
	s.Require().NoError(err)

	maxValue, err := s.alias.GetCCMax("Tally")
	s.Require().NoError(err)
	s.Equal(2147483647, maxValue)

	minValue, err := s.alias.GetCCMin("Tally")
	s.Require().NoError(err)
	s.Equal(-2147483648, minValue)
}

func (s *AliasCharacterTestSuite) TestCreateCC() {
	created, err := s.alias.CreateCCNX(&counter.CreateInput{Name: "Ki", Max: "2"})
	s.Require().NoError(err)
	s.Nil(created, "existing counter is left alone")
	s.Equal("level", s.char.Consumables[0].Max)

	replaced, err := s.alias.CreateCC(&counter.CreateInput{Name: "Ki", Max: "2"})
	s.Require().NoError(err)
	s.Equal(2, replaced.Value())
	s.Len(s.char.Consumables, 1)

	s.True(s.alias.CCExists("Ki"))
	s.Require().NoError(s.alias.DeleteCC("Ki"))
	s.False(s.alias.CCExists("Ki"))
	s.Error(s.alias.DeleteCC("Ki"))
}

func (s *AliasCharacterTestSuite) TestCounterWrapper() {
	cc, err := s.alias.CC("Ki")
	s.Require().NoError(err)

	full, err := cc.FullString(true)
	s.Require().NoError(err)
	s.Equal("**Ki**\n4/6", full)
	s.Equal("4/6", cc.String())

	res, err := cc.Reset()
	s.Require().NoError(err)
	s.Equal(6, res.New)
	s.Equal("+2", res.Delta)

	s.Len(s.alias.Consumables(), 1)
}

func (s *AliasCharacterTestSuite) TestCvars() {
	s.names.EXPECT().Set("spell", "fireball")
	s.Require().NoError(s.alias.SetCvar("spell", "fireball"))

	// already set, no rebind
	s.Require().NoError(s.alias.SetCvarNX("color", "red"))
	s.Equal("blue", s.char.Cvars["color"])

	s.Error(s.alias.SetCvar("two words", "x"))

	s.names.EXPECT().Delete("spell")
	old, ok := s.alias.DeleteCvar("spell")
	s.True(ok)
	s.Equal("fireball", old)

	_, ok = s.alias.DeleteCvar("spell")
	s.False(ok)

	cvars := s.alias.Cvars()
	cvars["color"] = "green"
	s.Equal("blue", s.char.Cvars["color"], "Cvars returns a copy")
}

func (s *AliasCharacterTestSuite) TestSheetFields() {
	s.Equal("Kestrel", s.alias.Name())
	s.Equal("user-1", s.alias.Owner())
	s.Equal("beyond-123", s.alias.Upstream())
	s.Equal("beyond", s.alias.SheetType())
	s.Equal("Half-Elf", s.alias.Race())
	s.Equal("Sage", s.alias.Background())
	s.Equal(map[string]any{"compact_coins": false}, s.alias.CSettings())

	actions := s.alias.Actions()
	s.Require().Len(actions, 2)
	s.Equal("NO_ACTION", actions[0].ActivationTypeName())
	s.Equal(2, *actions[0].ActivationType())
	s.Nil(actions[1].ActivationType())

	saves := s.alias.DeathSaves()
	saves.Fail(1)
	s.Equal(1, s.char.DeathSaves.Fails)
}

func (s *AliasCharacterTestSuite) TestCoinpurse() {
	purse := s.alias.Coinpurse()

	gp, err := purse.Get("GP")
	s.Require().NoError(err)
	s.Equal(10, gp)

	s.Require().NoError(purse.ModifyCoins(entities.Coins{GP: -2, SP: 5}))
	s.Equal(map[string]int{"pp": 0, "gp": 8, "ep": 0, "sp": 5, "cp": 0}, purse.GetCoins())

	compact, err := purse.CoinStr("compact")
	s.Require().NoError(err)
	s.Equal("8.50 gp", compact)

	s.char.Options.CompactCoins = true
	s.Equal("8.50 gp", s.alias.Coinpurse().String())

	parsed, err := api.ParseCoins("+1gp -2sp")
	s.Require().NoError(err)
	s.Equal(1, parsed["gp"])
	s.Equal(-2, parsed["sp"])
}

func (s *AliasCharacterTestSuite) TestCommit() {
	ctx := context.Background()

	s.committer.EXPECT().Update(ctx, s.char).Return(nil)
	s.Require().NoError(s.alias.Commit(ctx))

	s.committer.EXPECT().Update(ctx, s.char).Return(errors.New("redis down"))
	err := s.alias.Commit(ctx)
	s.Require().Error(err)
	s.Contains(err.Error(), "redis down")
}
