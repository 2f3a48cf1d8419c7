package entities

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/KirkDiggler/dnd-alias-bot/internal/dice"
	dnderr "github.com/KirkDiggler/dnd-alias-bot/internal/errors"
)

// Explorer is a participant in an exploration
type Explorer struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ControllerID string `json:"controller_id"`
	Group        string `json:"group,omitempty"`
}

// Exploration tracks time passing in a channel and rolls random encounters
type Exploration struct {
	ChannelID string      `json:"channel_id"`
	SummaryID string      `json:"summary_id,omitempty"`
	DMID      string      `json:"dm_id"`
	Name      string      `json:"name,omitempty"`
	Round     int         `json:"round"`
	Explorers []*Explorer `json:"explorers"`
	// EncounterTimer counts down rounds until the next encounter check
	EncounterTimer     int `json:"enc_timer"`
	EncounterThreshold int `json:"enc_threshold"`
	// Chance is the percent chance of an encounter at each check
	Chance    int       `json:"chance"`
	CreatedAt time.Time `json:"created_at"`
}

// SkipResult is what happened while rounds were skipped
type SkipResult struct {
	Rounds     int
	Encounters []*RolledEncounter
}

// DefaultEncounterChance is the chance of a new exploration
const DefaultEncounterChance = 100

// NewExploration starts an exploration in a channel run by dmID
func NewExploration(channelID, dmID, name string) *Exploration {
	return &Exploration{
		ChannelID: channelID,
		DMID:      dmID,
		Name:      name,
		Explorers: []*Explorer{},
		Chance:    DefaultEncounterChance,
	}
}

// Explorer returns the participant with the given name, ignoring case
func (e *Exploration) Explorer(name string) *Explorer {
	for _, explorer := range e.Explorers {
		if strings.EqualFold(explorer.Name, name) {
			return explorer
		}
	}
	return nil
}

// AddExplorer adds a participant. Names are unique within an exploration.
func (e *Exploration) AddExplorer(explorer *Explorer) error {
	if e.Explorer(explorer.Name) != nil {
		return dnderr.AlreadyExistsf("%s is already exploring.", explorer.Name)
	}
	e.Explorers = append(e.Explorers, explorer)
	return nil
}

// SetChance clamps the encounter chance to 1..100
func (e *Exploration) SetChance(percent int) {
	e.Chance = max(1, min(100, percent))
}

// SetEncounterTimer sets the rounds between encounter checks
func (e *Exploration) SetEncounterTimer(rounds int) {
	e.EncounterThreshold = rounds
	e.EncounterTimer = rounds
}

// SkipRounds advances the round count. When a sheet is given and the timer
// is running, one encounter check is rolled per elapsed threshold.
func (e *Exploration) SkipRounds(rounds int, sheet *EncounterSheet, roller dice.Roller) (*SkipResult, error) {
	result := &SkipResult{Rounds: rounds}

	if e.EncounterTimer != 0 && sheet != nil {
		checks := rounds / e.EncounterTimer
		rest := rounds % e.EncounterTimer
		if checks == 0 {
			e.EncounterTimer -= rounds
		} else {
			e.EncounterTimer = e.EncounterThreshold - rest
			encounters, err := sheet.RollEncounters(checks, e.Chance, roller)
			if err != nil {
				return nil, err
			}
			result.Encounters = encounters
		}
	}

	e.Round += rounds
	return result, nil
}

// DurationString renders elapsed rounds (six seconds each) in the largest sensible unit
func DurationString(rounds int) string {
	var divisor int
	var unit string
	switch {
	case rounds > 5_256_000:
		divisor, unit = 5_256_000, "year"
	case rounds > 438_000:
		divisor, unit = 438_000, "month"
	case rounds > 100_800:
		divisor, unit = 100_800, "week"
	case rounds > 14_400:
		divisor, unit = 14_400, "day"
	case rounds > 600:
		divisor, unit = 600, "hour"
	case rounds > 10:
		divisor, unit = 10, "minute"
	default:
		return fmt.Sprintf("[%d seconds]", rounds*6)
	}

	rounded := math.Round(float64(rounds)/float64(divisor)*10) / 10
	return fmt.Sprintf("[%.1f %ss]", rounded, unit)
}
