package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/dnd-alias-bot/internal/clock/mocks"
	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/core"
	mockcore "github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/core/mock"
	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
	dnderr "github.com/KirkDiggler/dnd-alias-bot/internal/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ActiveEntitiesTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	characters   *mockcore.MockCharacterSource
	combats      *mockcore.MockCombatSource
	explorations *mockcore.MockExplorationSource
	encounters   *mockcore.MockEncounterSource
	settings     *mockcore.MockSettingsSource
	typing       *mockcore.MockTypingNotifier
	clock        *mocks.MockTimeProvider
	resolvers    *core.Resolvers
	ctx          *core.TestInteractionContext
	t0           time.Time
}

func (s *ActiveEntitiesTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.characters = mockcore.NewMockCharacterSource(s.ctrl)
	s.combats = mockcore.NewMockCombatSource(s.ctrl)
	s.explorations = mockcore.NewMockExplorationSource(s.ctrl)
	s.encounters = mockcore.NewMockEncounterSource(s.ctrl)
	s.settings = mockcore.NewMockSettingsSource(s.ctrl)
	s.typing = mockcore.NewMockTypingNotifier(s.ctrl)
	s.clock = mocks.NewMockTimeProvider(s.ctrl)
	s.t0 = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	s.resolvers = &core.Resolvers{
		Characters:   s.characters,
		Combats:      s.combats,
		Explorations: s.explorations,
		Encounters:   s.encounters,
		Settings:     s.settings,
		Typing:       s.typing,
		Clock:        s.clock,
	}
	s.ctx = core.NewTestInteractionContext().
		WithUserID("42").
		WithGuildID("7").
		WithChannelID("chan-1").
		WithResolvers(s.resolvers)
}

func (s *ActiveEntitiesTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestActiveEntitiesSuite(t *testing.T) {
	suite.Run(t, new(ActiveEntitiesTestSuite))
}

func (s *ActiveEntitiesTestSuite) TestGetCharacterLoadsOnce() {
	charA := &entities.Character{ID: "a", Name: "CharA"}
	s.characters.EXPECT().GetActive(gomock.Any(), "42", "7").Return(charA, nil).Times(1)

	first, err := s.ctx.GetCharacter(false)
	s.Require().NoError(err)
	second, err := s.ctx.GetCharacter(false)
	s.Require().NoError(err)

	s.Same(charA, first)
	s.Same(first, second)
}

func (s *ActiveEntitiesTestSuite) TestGetCharacterIgnoreGuildSkipsCache() {
	charA := &entities.Character{ID: "a", Name: "CharA"}
	charB := &entities.Character{ID: "b", Name: "CharB"}

	gomock.InOrder(
		s.characters.EXPECT().GetActive(gomock.Any(), "42", "7").Return(charA, nil),
		s.characters.EXPECT().GetActive(gomock.Any(), "42", "").Return(charB, nil),
		s.characters.EXPECT().GetActive(gomock.Any(), "42", "").Return(charB, nil),
	)

	got, err := s.ctx.GetCharacter(false)
	s.Require().NoError(err)
	s.Same(charA, got)

	got, err = s.ctx.GetCharacter(true)
	s.Require().NoError(err)
	s.Same(charB, got)

	// the bypass never touches the cached guild value
	got, err = s.ctx.GetCharacter(false)
	s.Require().NoError(err)
	s.Same(charA, got)

	// and it is never cached itself
	got, err = s.ctx.GetCharacter(true)
	s.Require().NoError(err)
	s.Same(charB, got)
}

func (s *ActiveEntitiesTestSuite) TestGetCharacterBypassFirstDoesNotPopulate() {
	charA := &entities.Character{ID: "a"}
	charB := &entities.Character{ID: "b"}

	gomock.InOrder(
		s.characters.EXPECT().GetActive(gomock.Any(), "42", "").Return(charB, nil),
		s.characters.EXPECT().GetActive(gomock.Any(), "42", "7").Return(charA, nil),
	)

	got, err := s.ctx.GetCharacter(true)
	s.Require().NoError(err)
	s.Same(charB, got)

	got, err = s.ctx.GetCharacter(false)
	s.Require().NoError(err)
	s.Same(charA, got)
}

func (s *ActiveEntitiesTestSuite) TestGetCharacterUpdatesNLP() {
	charA := &entities.Character{ID: "a"}
	charB := &entities.Character{ID: "b"}
	s.characters.EXPECT().GetActive(gomock.Any(), "42", "7").Return(charA, nil)
	s.characters.EXPECT().GetActive(gomock.Any(), "42", "").Return(charB, nil)

	_, err := s.ctx.GetCharacter(false)
	s.Require().NoError(err)
	s.Same(charA, s.ctx.NLP.Character)

	_, err = s.ctx.GetCharacter(true)
	s.Require().NoError(err)
	s.Same(charB, s.ctx.NLP.Character)

	// cache hits leave the last resolved character in place
	_, err = s.ctx.GetCharacter(false)
	s.Require().NoError(err)
	s.Same(charB, s.ctx.NLP.Character)
}

func (s *ActiveEntitiesTestSuite) TestGetCharacterNotFoundPropagatesUncached() {
	s.characters.EXPECT().GetActive(gomock.Any(), "42", "7").Return(nil, dnderr.NoCharacter()).Times(2)

	_, err := s.ctx.GetCharacter(false)
	s.True(dnderr.IsEntityNotFound(err, dnderr.EntityCharacter))
	s.Nil(s.ctx.NLP.Character)

	_, err = s.ctx.GetCharacter(false)
	s.True(dnderr.IsEntityNotFound(err, dnderr.EntityCharacter))
}

func (s *ActiveEntitiesTestSuite) TestGetCharacterPassesRequestContext() {
	type key struct{}
	s.ctx.InteractionContext.WithValue(key{}, "marker")

	s.characters.EXPECT().GetActive(gomock.Any(), "42", "7").DoAndReturn(
		func(ctx context.Context, ownerID, guildID string) (*entities.Character, error) {
			s.Equal("marker", ctx.Value(key{}))
			return &entities.Character{ID: "a"}, nil
		})

	_, err := s.ctx.GetCharacter(false)
	s.Require().NoError(err)
}

func (s *ActiveEntitiesTestSuite) TestGetCombat() {
	combat := &entities.Combat{ChannelID: "chan-1"}
	s.combats.EXPECT().GetByChannel(gomock.Any(), "chan-1").Return(combat, nil).Times(1)

	first, err := s.ctx.GetCombat()
	s.Require().NoError(err)
	second, err := s.ctx.GetCombat()
	s.Require().NoError(err)
	s.Same(combat, first)
	s.Same(first, second)
}

func (s *ActiveEntitiesTestSuite) TestGetCombatNotFound() {
	s.combats.EXPECT().GetByChannel(gomock.Any(), "chan-1").Return(nil, dnderr.CombatNotFound())

	combat, err := s.ctx.GetCombat()
	s.Nil(combat)
	s.True(dnderr.IsEntityNotFound(err, dnderr.EntityCombat))
	s.Equal("This channel is not in combat.", dnderr.UserMessage(err))
}

func (s *ActiveEntitiesTestSuite) TestGetExploration() {
	exploration := &entities.Exploration{ChannelID: "chan-1"}
	s.explorations.EXPECT().GetByChannel(gomock.Any(), "chan-1").Return(exploration, nil).Times(1)

	first, err := s.ctx.GetExploration()
	s.Require().NoError(err)
	second, err := s.ctx.GetExploration()
	s.Require().NoError(err)
	s.Same(exploration, second)
	s.Same(first, second)
}

func (s *ActiveEntitiesTestSuite) TestGetExplorationNotFound() {
	s.explorations.EXPECT().GetByChannel(gomock.Any(), "chan-1").Return(nil, dnderr.ExplorationNotFound())

	_, err := s.ctx.GetExploration()
	s.True(dnderr.IsEntityNotFound(err, dnderr.EntityExploration))
}

func (s *ActiveEntitiesTestSuite) TestGetEncounter() {
	guildSheet := &entities.EncounterSheet{ID: "guild"}
	globalSheet := &entities.EncounterSheet{ID: "global"}

	s.encounters.EXPECT().GetActive(gomock.Any(), "42", "7").Return(guildSheet, nil).Times(1)
	s.encounters.EXPECT().GetActive(gomock.Any(), "42", "").Return(globalSheet, nil).Times(2)

	got, err := s.ctx.GetEncounter(false)
	s.Require().NoError(err)
	s.Same(guildSheet, got)

	got, err = s.ctx.GetEncounter(true)
	s.Require().NoError(err)
	s.Same(globalSheet, got)

	got, err = s.ctx.GetEncounter(true)
	s.Require().NoError(err)
	s.Same(globalSheet, got)

	got, err = s.ctx.GetEncounter(false)
	s.Require().NoError(err)
	s.Same(guildSheet, got)
}

func (s *ActiveEntitiesTestSuite) TestGetEncounterNotFound() {
	s.encounters.EXPECT().GetActive(gomock.Any(), "42", "7").Return(nil, dnderr.NoEncounter())

	_, err := s.ctx.GetEncounter(false)
	s.True(dnderr.IsEntityNotFound(err, dnderr.EntityEncounter))
}

func (s *ActiveEntitiesTestSuite) TestGetServerSettings() {
	settings := entities.DefaultServerSettings("7")
	s.settings.EXPECT().GetByGuild(gomock.Any(), "7").Return(settings, nil).Times(1)

	first, err := s.ctx.GetServerSettings()
	s.Require().NoError(err)
	second, err := s.ctx.GetServerSettings()
	s.Require().NoError(err)
	s.Same(settings, first)
	s.Same(first, second)
}

func (s *ActiveEntitiesTestSuite) TestGetServerSettingsInDM() {
	s.ctx.InDM()

	// no store call expected
	first, err := s.ctx.GetServerSettings()
	s.NoError(err)
	s.Nil(first)

	second, err := s.ctx.GetServerSettings()
	s.NoError(err)
	s.Nil(second)
}

func (s *ActiveEntitiesTestSuite) TestGetServerSettingsNilResultIsCached() {
	s.settings.EXPECT().GetByGuild(gomock.Any(), "7").Return(nil, nil).Times(1)

	for range 2 {
		got, err := s.ctx.GetServerSettings()
		s.NoError(err)
		s.Nil(got)
	}
}

func (s *ActiveEntitiesTestSuite) TestGetServerSettingsErrorIsNotCached() {
	settings := entities.DefaultServerSettings("7")
	gomock.InOrder(
		s.settings.EXPECT().GetByGuild(gomock.Any(), "7").Return(nil, errors.New("redis down")),
		s.settings.EXPECT().GetByGuild(gomock.Any(), "7").Return(settings, nil),
	)

	_, err := s.ctx.GetServerSettings()
	s.Error(err)

	got, err := s.ctx.GetServerSettings()
	s.Require().NoError(err)
	s.Same(settings, got)
}

func (s *ActiveEntitiesTestSuite) TestUnconfiguredLookups() {
	ctx := core.NewTestInteractionContext()

	_, err := ctx.GetCharacter(false)
	s.Equal(dnderr.CodeInternal, dnderr.GetCode(err))
	_, err = ctx.GetCombat()
	s.Equal(dnderr.CodeInternal, dnderr.GetCode(err))
	_, err = ctx.GetExploration()
	s.Equal(dnderr.CodeInternal, dnderr.GetCode(err))
	_, err = ctx.GetEncounter(true)
	s.Equal(dnderr.CodeInternal, dnderr.GetCode(err))
	_, err = ctx.GetServerSettings()
	s.Equal(dnderr.CodeInternal, dnderr.GetCode(err))
}

func (s *ActiveEntitiesTestSuite) TestSeparateInteractionsDoNotShare() {
	charA := &entities.Character{ID: "a"}
	s.characters.EXPECT().GetActive(gomock.Any(), "42", "7").Return(charA, nil).Times(2)

	other := core.NewTestInteractionContext().
		WithUserID("42").
		WithGuildID("7").
		WithResolvers(s.resolvers)

	_, err := s.ctx.GetCharacter(false)
	s.Require().NoError(err)
	_, err = other.GetCharacter(false)
	s.Require().NoError(err)
}

func (s *ActiveEntitiesTestSuite) TestTriggerTypingWithinCooldown() {
	gomock.InOrder(
		s.clock.EXPECT().Now().Return(s.t0),
		s.clock.EXPECT().Now().Return(s.t0.Add(5*time.Second)),
	)
	s.typing.EXPECT().ChannelTyping("chan-1").Return(nil).Times(1)

	s.ctx.TriggerTyping()
	s.ctx.TriggerTyping()
}

func (s *ActiveEntitiesTestSuite) TestTriggerTypingAfterCooldown() {
	gomock.InOrder(
		s.clock.EXPECT().Now().Return(s.t0),
		s.clock.EXPECT().Now().Return(s.t0.Add(11*time.Second)),
	)
	s.typing.EXPECT().ChannelTyping("chan-1").Return(nil).Times(2)

	s.ctx.TriggerTyping()
	s.ctx.TriggerTyping()
}

func (s *ActiveEntitiesTestSuite) TestTriggerTypingCustomCooldown() {
	s.resolvers.TypingCooldown = 3 * time.Second
	gomock.InOrder(
		s.clock.EXPECT().Now().Return(s.t0),
		s.clock.EXPECT().Now().Return(s.t0.Add(2*time.Second)),
		s.clock.EXPECT().Now().Return(s.t0.Add(3*time.Second)),
	)
	s.typing.EXPECT().ChannelTyping("chan-1").Return(nil).Times(2)

	s.ctx.TriggerTyping()
	s.ctx.TriggerTyping()
	s.ctx.TriggerTyping()
}

func (s *ActiveEntitiesTestSuite) TestTriggerTypingFailureIsSwallowed() {
	gomock.InOrder(
		s.clock.EXPECT().Now().Return(s.t0),
		s.clock.EXPECT().Now().Return(s.t0.Add(time.Second)),
		s.clock.EXPECT().Now().Return(s.t0.Add(2*time.Second)),
	)
	gomock.InOrder(
		s.typing.EXPECT().ChannelTyping("chan-1").Return(errors.New("HTTP 403 Forbidden")),
		s.typing.EXPECT().ChannelTyping("chan-1").Return(nil),
	)

	s.NotPanics(func() {
		s.ctx.TriggerTyping()
	})
	// a failed signal does not start the cooldown
	s.ctx.TriggerTyping()
	s.ctx.TriggerTyping()
}
