package entities

import (
	"fmt"
	"strings"
)

const maxDeathSaves = 3

// DeathSaves tracks death saving throws
type DeathSaves struct {
	Successes int `json:"successes"`
	Fails     int `json:"fails"`
}

// Succeed adds successes, capped at three
func (d *DeathSaves) Succeed(n int) {
	d.Successes = min(maxDeathSaves, d.Successes+n)
}

// Fail adds failures, capped at three
func (d *DeathSaves) Fail(n int) {
	d.Fails = min(maxDeathSaves, d.Fails+n)
}

func (d *DeathSaves) IsStable() bool { return d.Successes == maxDeathSaves }
func (d *DeathSaves) IsDead() bool   { return d.Fails == maxDeathSaves }

// Reset clears both tracks
func (d *DeathSaves) Reset() {
	d.Successes = 0
	d.Fails = 0
}

func (d *DeathSaves) String() string {
	successes := strings.Repeat(bubbleFull, d.Successes) + strings.Repeat(bubbleEmpty, maxDeathSaves-d.Successes)
	fails := strings.Repeat(bubbleEmpty, maxDeathSaves-d.Fails) + strings.Repeat(bubbleFull, d.Fails)
	return fmt.Sprintf("F %s | %s S", fails, successes)
}
