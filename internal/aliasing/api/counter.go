package api

import (
	"fmt"

	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
	"github.com/KirkDiggler/dnd-alias-bot/internal/services/counter"
)

// AliasCustomCounter is the script-facing view of one counter
type AliasCustomCounter struct {
	counter   *entities.CustomCounter
	character *entities.Character
	service   counter.Service
}

func (c *AliasCustomCounter) Name() string { return c.counter.Name }
func (c *AliasCustomCounter) Title() string { return c.counter.Title }
func (c *AliasCustomCounter) Desc() string { return c.counter.Desc }
func (c *AliasCustomCounter) Value() int { return c.counter.Value }
func (c *AliasCustomCounter) ResetOn() string { return string(c.counter.ResetOn) }
func (c *AliasCustomCounter) DisplayType() string { return string(c.counter.DisplayType) }
func (c *AliasCustomCounter) ResetTo() string { return c.counter.ResetTo }
func (c *AliasCustomCounter) ResetBy() string { return c.counter.ResetBy }

// Max returns the evaluated maximum
func (c *AliasCustomCounter) Max() (int, error) {
	limits, err := c.service.Limits(c.character, c.counter)
	if err != nil {
		return 0, err
	}
	return limits.Max, nil
}

// Min returns the evaluated minimum
func (c *AliasCustomCounter) Min() (int, error) {
	limits, err := c.service.Limits(c.character, c.counter)
	if err != nil {
		return 0, err
	}
	return limits.Min, nil
}

// Set sets the value, erroring out of bounds when strict
func (c *AliasCustomCounter) Set(value int, strict bool) (int, error) {
	return c.service.Set(c.character, c.counter, value, strict)
}

// Reset resets the counter to its reset value
func (c *AliasCustomCounter) Reset() (*entities.CounterResetResult, error) {
	return c.service.Reset(c.character, c.counter)
}

// FullString renders the value, reset line and description
func (c *AliasCustomCounter) FullString(includeName bool) (string, error) {
	limits, err := c.service.Limits(c.character, c.counter)
	if err != nil {
		return "", err
	}
	out := c.counter.FullRender(limits)
	if includeName {
		out = fmt.Sprintf("**%s**\n%s", c.counter.Name, out)
	}
	return out, nil
}

func (c *AliasCustomCounter) String() string {
	s, err := c.service.Render(c.character, c.counter)
	if err != nil {
		return fmt.Sprintf("%d", c.counter.Value)
	}
	return s
}
