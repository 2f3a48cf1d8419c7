package entities

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	dnderr "github.com/KirkDiggler/dnd-alias-bot/internal/errors"
)

// ResetType is when a custom counter resets
type ResetType string

const (
	ResetShort ResetType = "short"
	ResetLong  ResetType = "long"
	ResetHP    ResetType = "hp"
	ResetNone  ResetType = "none"
)

// DisplayName is the label shown on counter embeds
func (r ResetType) DisplayName() string {
	switch r {
	case ResetShort:
		return "Short Rest"
	case ResetLong:
		return "Long Rest"
	case ResetHP:
		return "Gaining HP"
	case ResetNone:
		return "None"
	default:
		return "`/cc reset`"
	}
}

// ParseResetType validates user input for a reset type
func ParseResetType(s string) (ResetType, error) {
	switch r := ResetType(strings.ToLower(s)); r {
	case "", ResetShort, ResetLong, ResetHP, ResetNone:
		return r, nil
	default:
		return "", dnderr.InvalidArgumentf("Invalid reset %q, must be one of short, long, hp, none.", s)
	}
}

// DisplayType is how a counter renders
type DisplayType string

const (
	DisplayDefault DisplayType = ""
	DisplayBubble  DisplayType = "bubble"
)

const (
	bubbleFull  = "◉"
	bubbleEmpty = "〇"
)

// MaxBubbles is the largest maximum drawn as bubbles; larger counters render as value/max
const MaxBubbles = 100

// CustomCounter is a named, bounded integer tracked on a character.
// Min, Max and ResetTo are expressions over the character's variables.
// ResetBy is a dice string.
type CustomCounter struct {
	Name        string      `json:"name"`
	Title       string      `json:"title,omitempty"`
	Desc        string      `json:"desc,omitempty"`
	Value       int         `json:"value"`
	Min         string      `json:"min,omitempty"`
	Max         string      `json:"max,omitempty"`
	ResetOn     ResetType   `json:"reset_on,omitempty"`
	DisplayType DisplayType `json:"display_type,omitempty"`
	ResetTo     string      `json:"reset_to,omitempty"`
	ResetBy     string      `json:"reset_by,omitempty"`
}

// CounterLimits are the evaluated bounds of a counter
type CounterLimits struct {
	Min    int
	Max    int
	HasMin bool
	HasMax bool
}

// DefaultCounterLimits are the bounds of a counter with no min or max
func DefaultCounterLimits() CounterLimits {
	return CounterLimits{Min: math.MinInt32, Max: math.MaxInt32}
}

// CounterResetResult describes a reset
type CounterResetResult struct {
	New    int
	Old    int
	Target int
	Delta  string
}

// Set changes the value. Out of range values are clipped, or rejected when strict.
func (cc *CustomCounter) Set(value int, limits CounterLimits, strict bool) (int, error) {
	if value < limits.Min || value > limits.Max {
		if strict {
			return cc.Value, dnderr.OutOfBoundsf("%s must be between %d and %d, got %d.", cc.Name, limits.Min, limits.Max, value)
		}
		value = max(limits.Min, min(limits.Max, value))
	}
	cc.Value = value
	return cc.Value, nil
}

// Render returns the value as bubbles or value/max
func (cc *CustomCounter) Render(limits CounterLimits) string {
	if cc.DisplayType == DisplayBubble && limits.HasMax && limits.Max <= MaxBubbles {
		filled := min(max(0, cc.Value), MaxBubbles)
		empty := max(0, limits.Max-filled)
		return strings.Repeat(bubbleFull, filled) + strings.Repeat(bubbleEmpty, empty)
	}
	if limits.HasMax {
		return fmt.Sprintf("%d/%d", cc.Value, limits.Max)
	}
	return strconv.Itoa(cc.Value)
}

// FullRender adds the reset line and description
func (cc *CustomCounter) FullRender(limits CounterLimits) string {
	var b strings.Builder
	b.WriteString(cc.Render(limits))
	if cc.ResetOn != "" && cc.ResetOn != ResetNone {
		fmt.Fprintf(&b, "\n**Resets On**: %s", cc.ResetOn.DisplayName())
	}
	if cc.Desc != "" {
		fmt.Fprintf(&b, "\n%s", cc.Desc)
	}
	return b.String()
}

// FormatDelta renders a signed difference the way reset results show it
func FormatDelta(delta int) string {
	if delta >= 0 {
		return fmt.Sprintf("+%d", delta)
	}
	return strconv.Itoa(delta)
}
