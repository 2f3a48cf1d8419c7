package entities

import "fmt"

// ActivationType is the action economy cost of an action
type ActivationType int

const (
	ActivationAction   ActivationType = 1
	ActivationNoAction ActivationType = 2
	ActivationBonus    ActivationType = 3
	ActivationReaction ActivationType = 4
	ActivationMinute   ActivationType = 6
	ActivationHour     ActivationType = 7
	ActivationSpecial  ActivationType = 8
)

// Name returns the upper snake case name, or "" for unknown types
func (a ActivationType) Name() string {
	switch a {
	case ActivationAction:
		return "ACTION"
	case ActivationNoAction:
		return "NO_ACTION"
	case ActivationBonus:
		return "BONUS_ACTION"
	case ActivationReaction:
		return "REACTION"
	case ActivationMinute:
		return "MINUTE"
	case ActivationHour:
		return "HOUR"
	case ActivationSpecial:
		return "SPECIAL"
	default:
		return ""
	}
}

// Action is an action listed on a character sheet
type Action struct {
	Name        string         `json:"name"`
	Activation  ActivationType `json:"activation_type,omitempty"`
	Snippet     string         `json:"snippet,omitempty"`
	Description string         `json:"description,omitempty"`
}

// BuildString renders the action, preferring the snippet when asked
func (a *Action) BuildString(snippet bool) string {
	text := a.Description
	if snippet && a.Snippet != "" {
		text = a.Snippet
	}
	if text == "" {
		return fmt.Sprintf("**%s**", a.Name)
	}
	return fmt.Sprintf("**%s**: %s", a.Name, text)
}

func (a *Action) String() string {
	return a.BuildString(false)
}
