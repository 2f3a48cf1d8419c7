package counter_test

import (
	"testing"

	mockdice "github.com/KirkDiggler/dnd-alias-bot/internal/dice/mock"
	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
	dnderr "github.com/KirkDiggler/dnd-alias-bot/internal/errors"
	"github.com/KirkDiggler/dnd-alias-bot/internal/services/counter"
	"github.com/stretchr/testify/suite"
)

type CounterServiceTestSuite struct {
	suite.Suite
	roller *mockdice.ManualMockRoller
	svc    counter.Service
	char   *entities.Character
}

func (s *CounterServiceTestSuite) SetupTest() {
	s.roller = mockdice.NewManualMockRoller()
	s.svc = counter.NewService(&counter.ServiceConfig{Roller: s.roller})
	s.char = &entities.Character{
		ID:    "char-1",
		Name:  "Kestrel",
		Stats: map[string]int{"level": 6, "charismaMod": 4},
		Cvars: map[string]string{"bonusKi": "1"},
	}
}

func TestCounterServiceSuite(t *testing.T) {
	suite.Run(t, new(CounterServiceTestSuite))
}

func (s *CounterServiceTestSuite) TestLimits() {
	cc := &entities.CustomCounter{Name: "Ki", Min: "0", Max: "level + bonusKi"}

	limits, err := s.svc.Limits(s.char, cc)
	s.Require().NoError(err)
	s.Equal(entities.CounterLimits{Min: 0, Max: 7, HasMin: true, HasMax: true}, limits)

	unbounded, err := s.svc.Limits(s.char, &entities.CustomCounter{Name: "Gold"})
	s.Require().NoError(err)
	s.Equal(entities.DefaultCounterLimits(), unbounded)

	_, err = s.svc.Limits(s.char, &entities.CustomCounter{Name: "Bad", Min: "5", Max: "1"})
	s.True(dnderr.IsInvalidArgument(err))

	_, err = s.svc.Limits(s.char, &entities.CustomCounter{Name: "Bad", Max: "nope +"})
	s.True(dnderr.IsInvalidArgument(err))
}

func (s *CounterServiceTestSuite) TestSetAndMod() {
	cc := &entities.CustomCounter{Name: "Ki", Min: "0", Max: "level", Value: 3}

	got, err := s.svc.Mod(s.char, cc, -1, false)
	s.Require().NoError(err)
	s.Equal(2, got)

	got, err = s.svc.Set(s.char, cc, 99, false)
	s.Require().NoError(err)
	s.Equal(6, got)

	_, err = s.svc.Mod(s.char, cc, 1, true)
	s.True(dnderr.IsOutOfBounds(err))
	s.Equal(6, cc.Value)
}

func (s *CounterServiceTestSuite) TestReset() {
	s.Run("reset_to wins", func() {
		cc := &entities.CustomCounter{Name: "Inspiration", Max: "charismaMod", ResetTo: "2", ResetBy: "1d4", Value: 0}
		res, err := s.svc.Reset(s.char, cc)
		s.Require().NoError(err)
		s.Equal(&entities.CounterResetResult{New: 2, Old: 0, Target: 2, Delta: "+2"}, res)
	})

	s.Run("reset_by rolls", func() {
		s.roller.SetRolls([]int{3})
		cc := &entities.CustomCounter{Name: "Luck", Max: "10", ResetBy: "1d4", Value: 5}
		res, err := s.svc.Reset(s.char, cc)
		s.Require().NoError(err)
		s.Equal(8, res.New)
		s.Equal(8, res.Target)
		s.Equal("+3", res.Delta)
	})

	s.Run("reset_by clips at max", func() {
		s.roller.SetRolls([]int{4})
		cc := &entities.CustomCounter{Name: "Luck", Max: "10", ResetBy: "1d4", Value: 9}
		res, err := s.svc.Reset(s.char, cc)
		s.Require().NoError(err)
		s.Equal(10, res.New)
		s.Equal(13, res.Target)
	})

	s.Run("falls back to max", func() {
		cc := &entities.CustomCounter{Name: "Ki", Max: "level", Value: 1}
		res, err := s.svc.Reset(s.char, cc)
		s.Require().NoError(err)
		s.Equal(6, res.New)
		s.Equal("+5", res.Delta)
	})

	s.Run("no reset value", func() {
		cc := &entities.CustomCounter{Name: "Gold", Value: 1}
		_, err := s.svc.Reset(s.char, cc)
		s.True(dnderr.IsInvalidArgument(err))
	})
}

func (s *CounterServiceTestSuite) TestCreate() {
	cc, err := s.svc.Create(s.char, &counter.CreateInput{
		Name:        "Bardic Inspiration",
		Min:         "0",
		Max:         "charismaMod",
		ResetOn:     "long",
		DisplayType: "bubble",
	})
	s.Require().NoError(err)
	s.Equal(4, cc.Value)
	s.Equal(entities.ResetLong, cc.ResetOn)

	rendered, err := s.svc.Render(s.char, cc)
	s.Require().NoError(err)
	s.Equal("◉◉◉◉", rendered)

	open, err := s.svc.Create(s.char, &counter.CreateInput{Name: "Tally"})
	s.Require().NoError(err)
	s.Equal(0, open.Value)
}

func (s *CounterServiceTestSuite) TestCreate_Invalid() {
	cases := map[string]*counter.CreateInput{
		"no name":          {},
		"bad reset":        {Name: "X", ResetOn: "weekly"},
		"bad display":      {Name: "X", DisplayType: "stars"},
		"bad reset_by":     {Name: "X", ResetBy: "lots"},
		"bubble unbounded": {Name: "X", DisplayType: "bubble", Max: "3"},
		"too many bubbles": {Name: "X", DisplayType: "bubble", Min: "0", Max: "1000000000"},
		"huge reset_by":    {Name: "X", ResetBy: "2000000000d6"},
	}

	for name, input := range cases {
		s.Run(name, func() {
			_, err := s.svc.Create(s.char, input)
			s.True(dnderr.IsInvalidArgument(err), "got %v", err)
		})
	}
}
