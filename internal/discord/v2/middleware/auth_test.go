package middleware_test

import (
	"errors"
	"testing"

	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/core"
	mockcore "github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/core/mock"
	"github.com/KirkDiggler/dnd-alias-bot/internal/discord/v2/middleware"
	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DMAuthTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	settings *mockcore.MockSettingsSource
	reached  bool
	handler  core.Handler
}

func (s *DMAuthTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.settings = mockcore.NewMockSettingsSource(s.ctrl)
	s.reached = false
	s.handler = core.HandlerFunc(func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
		s.reached = true
		return &core.HandlerResult{Response: core.NewResponse("ok")}, nil
	})
}

func (s *DMAuthTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *DMAuthTestSuite) guildContext(roles ...string) *core.TestInteractionContext {
	return core.NewTestInteractionContext().
		WithGuildID("guild-1").
		AsCommand("game", "settings").
		WithRoles(roles).
		WithResolvers(&core.Resolvers{Settings: s.settings})
}

func roleNames(names map[string]string) middleware.RoleNamer {
	return func(ctx *core.InteractionContext, roleID string) string {
		return names[roleID]
	}
}

func (s *DMAuthTestSuite) TestConfiguredRoleAllowed() {
	settings := entities.DefaultServerSettings("guild-1")
	settings.DMRoles = []string{"role-dm"}
	s.settings.EXPECT().GetByGuild(gomock.Any(), "guild-1").Return(settings, nil)

	result, err := middleware.DMRequiredMiddleware(nil)(s.handler).Handle(s.guildContext("role-player", "role-dm").InteractionContext)
	s.Require().NoError(err)
	s.True(s.reached)
	s.Equal("ok", result.Response.Content)
}

func (s *DMAuthTestSuite) TestConfiguredRoleMissing() {
	settings := entities.DefaultServerSettings("guild-1")
	settings.DMRoles = []string{"role-dm"}
	s.settings.EXPECT().GetByGuild(gomock.Any(), "guild-1").Return(settings, nil)

	// a role named DM does not count once roles are configured
	names := roleNames(map[string]string{"role-other": "DM"})
	result, err := middleware.DMRequiredMiddleware(names)(s.handler).Handle(s.guildContext("role-other").InteractionContext)
	s.Require().NoError(err)
	s.False(s.reached)
	s.Equal("❌ Only a DM can do that.", result.Response.Content)
	s.True(result.Response.Ephemeral)
}

func (s *DMAuthTestSuite) TestRoleNameFallback() {
	s.settings.EXPECT().GetByGuild(gomock.Any(), "guild-1").Return(entities.DefaultServerSettings("guild-1"), nil)

	names := roleNames(map[string]string{"role-1": "Dungeon Master"})
	_, err := middleware.DMRequiredMiddleware(names)(s.handler).Handle(s.guildContext("role-1").InteractionContext)
	s.Require().NoError(err)
	s.True(s.reached)
}

func (s *DMAuthTestSuite) TestDirectMessageAllowed() {
	ctx := core.NewTestInteractionContext().
		InDM().
		AsCommand("game", "encounter").
		WithResolvers(&core.Resolvers{Settings: s.settings})

	_, err := middleware.DMRequiredMiddleware(nil)(s.handler).Handle(ctx.InteractionContext)
	s.Require().NoError(err)
	s.True(s.reached)
}

func (s *DMAuthTestSuite) TestSettingsLoadedOncePerInteraction() {
	settings := entities.DefaultServerSettings("guild-1")
	settings.DMRoles = []string{"role-dm"}
	s.settings.EXPECT().GetByGuild(gomock.Any(), "guild-1").Return(settings, nil).Times(1)

	handler := core.HandlerFunc(func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
		got, err := ctx.GetServerSettings()
		s.Require().NoError(err)
		s.Same(settings, got)
		return nil, nil
	})

	_, err := middleware.DMRequiredMiddleware(nil)(handler).Handle(s.guildContext("role-dm").InteractionContext)
	s.Require().NoError(err)
}

func (s *DMAuthTestSuite) TestSettingsFailure() {
	s.settings.EXPECT().GetByGuild(gomock.Any(), "guild-1").Return(nil, errors.New("connection refused"))

	result, err := middleware.DMRequiredMiddleware(nil)(s.handler).Handle(s.guildContext("role-dm").InteractionContext)
	s.Require().NoError(err)
	s.False(s.reached)
	s.Equal("❌ Could not load this server's settings.", result.Response.Content)
}

func (s *DMAuthTestSuite) TestBlacklist() {
	config := &middleware.AuthConfig{UserBlacklist: []string{"test-user-123"}}
	ctx := core.NewTestInteractionContext().AsCommand("character", "show")

	result, err := middleware.AuthorizationMiddleware(config)(s.handler).Handle(ctx.InteractionContext)
	s.Require().NoError(err)
	s.False(s.reached)
	s.Equal("❌ You are not authorized to use this command.", result.Response.Content)
}

func TestDMAuthSuite(t *testing.T) {
	suite.Run(t, new(DMAuthTestSuite))
}
