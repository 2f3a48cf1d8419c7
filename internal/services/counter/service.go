package counter

//go:generate mockgen -destination=mock/mock_service.go -package=mockcounter -source=service.go

import (
	"github.com/KirkDiggler/dnd-alias-bot/internal/aliasing/evaluator"
	"github.com/KirkDiggler/dnd-alias-bot/internal/dice"
	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
	dnderr "github.com/KirkDiggler/dnd-alias-bot/internal/errors"
)

// Service applies counter operations that need a character's variables or dice
type Service interface {
	// Limits evaluates the counter's min and max
	Limits(char *entities.Character, cc *entities.CustomCounter) (entities.CounterLimits, error)

	// Set sets the counter, clipping or failing when strict
	Set(char *entities.Character, cc *entities.CustomCounter, value int, strict bool) (int, error)

	// Mod adds delta to the counter
	Mod(char *entities.Character, cc *entities.CustomCounter, delta int, strict bool) (int, error)

	// Reset resets to reset_to, else by reset_by, else to max
	Reset(char *entities.Character, cc *entities.CustomCounter) (*entities.CounterResetResult, error)

	// Create validates and builds a new counter starting at its reset value
	Create(char *entities.Character, input *CreateInput) (*entities.CustomCounter, error)

	// Render returns the counter's short display string
	Render(char *entities.Character, cc *entities.CustomCounter) (string, error)
}

// CreateInput holds the user supplied fields of a new counter
type CreateInput struct {
	Name        string
	Min         string
	Max         string
	ResetOn     string
	DisplayType string
	ResetTo     string
	ResetBy     string
	Title       string
	Desc        string
}

type service struct {
	evaluator evaluator.Evaluator
	roller    dice.Roller
}

// ServiceConfig holds the dependencies of the counter service
type ServiceConfig struct {
	Evaluator evaluator.Evaluator
	Roller    dice.Roller
}

// NewService creates a counter service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		cfg = &ServiceConfig{}
	}

	svc := &service{
		evaluator: cfg.Evaluator,
		roller:    cfg.Roller,
	}
	if svc.evaluator == nil {
		svc.evaluator = evaluator.New()
	}
	if svc.roller == nil {
		svc.roller = dice.NewRandomRoller()
	}
	return svc
}

func (s *service) Limits(char *entities.Character, cc *entities.CustomCounter) (entities.CounterLimits, error) {
	limits := entities.DefaultCounterLimits()
	env := char.EvalEnv()

	if cc.Min != "" {
		v, err := s.evaluator.EvalInt(cc.Min, env)
		if err != nil {
			return limits, dnderr.Wrapf(err, "invalid minimum for %s", cc.Name)
		}
		limits.Min, limits.HasMin = v, true
	}
	if cc.Max != "" {
		v, err := s.evaluator.EvalInt(cc.Max, env)
		if err != nil {
			return limits, dnderr.Wrapf(err, "invalid maximum for %s", cc.Name)
		}
		limits.Max, limits.HasMax = v, true
	}
	if limits.Min > limits.Max {
		return limits, dnderr.InvalidArgumentf("%s has a minimum above its maximum.", cc.Name)
	}
	return limits, nil
}

func (s *service) Set(char *entities.Character, cc *entities.CustomCounter, value int, strict bool) (int, error) {
	limits, err := s.Limits(char, cc)
	if err != nil {
		return cc.Value, err
	}
	return cc.Set(value, limits, strict)
}

func (s *service) Mod(char *entities.Character, cc *entities.CustomCounter, delta int, strict bool) (int, error) {
	return s.Set(char, cc, cc.Value+delta, strict)
}

func (s *service) Reset(char *entities.Character, cc *entities.CustomCounter) (*entities.CounterResetResult, error) {
	limits, err := s.Limits(char, cc)
	if err != nil {
		return nil, err
	}

	old := cc.Value
	var target int
	var delta string

	switch {
	case cc.ResetTo != "":
		target, err = s.evaluator.EvalInt(cc.ResetTo, char.EvalEnv())
		if err != nil {
			return nil, dnderr.Wrapf(err, "invalid reset value for %s", cc.Name)
		}
	case cc.ResetBy != "":
		roll, rollErr := dice.RollString(s.roller, cc.ResetBy)
		if rollErr != nil {
			return nil, dnderr.InvalidArgumentf("Invalid reset_by %q for %s.", cc.ResetBy, cc.Name)
		}
		target = old + roll.Total
		delta = entities.FormatDelta(roll.Total)
	case limits.HasMax:
		target = limits.Max
	default:
		return nil, dnderr.InvalidArgumentf("%s has no reset value.", cc.Name)
	}

	newValue, err := cc.Set(target, limits, false)
	if err != nil {
		return nil, err
	}
	if delta == "" {
		delta = entities.FormatDelta(newValue - old)
	}

	return &entities.CounterResetResult{
		New:    newValue,
		Old:    old,
		Target: target,
		Delta:  delta,
	}, nil
}

func (s *service) Create(char *entities.Character, input *CreateInput) (*entities.CustomCounter, error) {
	if input == nil || input.Name == "" {
		return nil, dnderr.InvalidArgument("Counter name is required.")
	}

	resetOn, err := entities.ParseResetType(input.ResetOn)
	if err != nil {
		return nil, err
	}

	display := entities.DisplayType(input.DisplayType)
	if display != entities.DisplayDefault && display != entities.DisplayBubble {
		return nil, dnderr.InvalidArgumentf("Invalid display type %q, must be bubble or empty.", input.DisplayType)
	}
	if input.ResetBy != "" {
		if _, err := dice.ParseExpression(input.ResetBy); err != nil {
			return nil, dnderr.InvalidArgumentf("Invalid reset_by %q, must be a dice string.", input.ResetBy)
		}
	}

	cc := &entities.CustomCounter{
		Name:        input.Name,
		Title:       input.Title,
		Desc:        input.Desc,
		Min:         input.Min,
		Max:         input.Max,
		ResetOn:     resetOn,
		DisplayType: display,
		ResetTo:     input.ResetTo,
		ResetBy:     input.ResetBy,
	}

	limits, err := s.Limits(char, cc)
	if err != nil {
		return nil, err
	}
	if display == entities.DisplayBubble && !(limits.HasMax && limits.HasMin) {
		return nil, dnderr.InvalidArgument("Bubble counters need both a minimum and a maximum.")
	}
	if display == entities.DisplayBubble && limits.Max > entities.MaxBubbles {
		return nil, dnderr.InvalidArgumentf("Bubble counters can have at most %d bubbles.", entities.MaxBubbles)
	}

	// starts at reset_to, else max, else clipped zero
	start := 0
	switch {
	case cc.ResetTo != "":
		start, err = s.evaluator.EvalInt(cc.ResetTo, char.EvalEnv())
		if err != nil {
			return nil, dnderr.Wrapf(err, "invalid reset value for %s", cc.Name)
		}
	case limits.HasMax:
		start = limits.Max
	}
	if _, err := cc.Set(start, limits, false); err != nil {
		return nil, err
	}

	return cc, nil
}

func (s *service) Render(char *entities.Character, cc *entities.CustomCounter) (string, error) {
	limits, err := s.Limits(char, cc)
	if err != nil {
		return "", err
	}
	return cc.Render(limits), nil
}
