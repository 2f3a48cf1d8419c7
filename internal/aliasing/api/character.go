// Package api exposes a character to alias scripts. Every mutation works on
// the wrapped sheet in memory; Commit persists it.
package api

//go:generate mockgen -destination=mock/mock.go -package=mockapi -source=character.go

import (
	"context"
	"maps"

	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
	dnderr "github.com/KirkDiggler/dnd-alias-bot/internal/errors"
	"github.com/KirkDiggler/dnd-alias-bot/internal/services/counter"
)

// Names is the running script's variable scope. Cvars set from a script are
// bound there as well so later statements can read them.
type Names interface {
	Set(name string, value any)
	Delete(name string)
}

// Committer persists a character
type Committer interface {
	Update(ctx context.Context, character *entities.Character) error
}

// AliasCharacter is the script-facing view of the active character
type AliasCharacter struct {
	character *entities.Character
	counters  counter.Service
	names     Names
	committer Committer
}

// AliasCharacterConfig holds the dependencies of an AliasCharacter
type AliasCharacterConfig struct {
	Character *entities.Character
	Counters  counter.Service
	// Names is optional; without it cvars only land on the sheet
	Names     Names
	Committer Committer
}

// NewAliasCharacter wraps a character for scripts
func NewAliasCharacter(cfg *AliasCharacterConfig) *AliasCharacter {
	if cfg == nil || cfg.Character == nil {
		panic("character is required")
	}
	if cfg.Counters == nil {
		cfg.Counters = counter.NewService(nil)
	}
	return &AliasCharacter{
		character: cfg.Character,
		counters:  cfg.Counters,
		names:     cfg.Names,
		committer: cfg.Committer,
	}
}

func (a *AliasCharacter) Name() string { return a.character.Name }

// --- custom counters ---

// Consumables returns every custom counter on the sheet
func (a *AliasCharacter) Consumables() []*AliasCustomCounter {
	out := make([]*AliasCustomCounter, 0, len(a.character.Consumables))
	for _, cc := range a.character.Consumables {
		out = append(out, a.wrapCounter(cc))
	}
	return out
}

// CC returns the named counter
func (a *AliasCharacter) CC(name string) (*AliasCustomCounter, error) {
	cc, err := a.character.Counter(name)
	if err != nil {
		return nil, err
	}
	return a.wrapCounter(cc), nil
}

// GetCC returns the value of the named counter
func (a *AliasCharacter) GetCC(name string) (int, error) {
	cc, err := a.character.Counter(name)
	if err != nil {
		return 0, err
	}
	return cc.Value, nil
}

// GetCCMax returns the counter's maximum, or 2^31-1 when it has none
func (a *AliasCharacter) GetCCMax(name string) (int, error) {
	cc, err := a.CC(name)
	if err != nil {
		return 0, err
	}
	return cc.Max()
}

// GetCCMin returns the counter's minimum, or -2^31 when it has none
func (a *AliasCharacter) GetCCMin(name string) (int, error) {
	cc, err := a.CC(name)
	if err != nil {
		return 0, err
	}
	return cc.Min()
}

// SetCC sets the counter. Out of range values are clipped unless strict.
func (a *AliasCharacter) SetCC(name string, value int, strict bool) (int, error) {
	cc, err := a.character.Counter(name)
	if err != nil {
		return 0, err
	}
	return a.counters.Set(a.character, cc, value, strict)
}

// ModCC adds delta to the counter
func (a *AliasCharacter) ModCC(name string, delta int, strict bool) (int, error) {
	cc, err := a.character.Counter(name)
	if err != nil {
		return 0, err
	}
	return a.counters.Mod(a.character, cc, delta, strict)
}

// DeleteCC removes the counter
func (a *AliasCharacter) DeleteCC(name string) error {
	return a.character.RemoveCounter(name)
}

// CreateCCNX creates the counter only if none with the name exists.
// It returns nil when the counter already existed.
func (a *AliasCharacter) CreateCCNX(input *counter.CreateInput) (*AliasCustomCounter, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("Counter name is required.")
	}
	if a.character.HasCounter(input.Name) {
		return nil, nil
	}

	cc, err := a.counters.Create(a.character, input)
	if err != nil {
		return nil, err
	}
	a.character.AddCounter(cc)
	return a.wrapCounter(cc), nil
}

// CreateCC creates the counter, replacing any with the same name
func (a *AliasCharacter) CreateCC(input *counter.CreateInput) (*AliasCustomCounter, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("Counter name is required.")
	}

	cc, err := a.counters.Create(a.character, input)
	if err != nil {
		return nil, err
	}
	a.character.AddCounter(cc)
	return a.wrapCounter(cc), nil
}

// CCExists reports whether the counter exists
func (a *AliasCharacter) CCExists(name string) bool {
	return a.character.HasCounter(name)
}

// CCStr renders the counter, e.g. "11/17" or "◉◉◉〇〇"
func (a *AliasCharacter) CCStr(name string) (string, error) {
	cc, err := a.character.Counter(name)
	if err != nil {
		return "", err
	}
	return a.counters.Render(a.character, cc)
}

func (a *AliasCharacter) wrapCounter(cc *entities.CustomCounter) *AliasCustomCounter {
	return &AliasCustomCounter{counter: cc, character: a.character, service: a.counters}
}

// --- cvars ---

// Cvars returns a copy of the character variables
func (a *AliasCharacter) Cvars() map[string]string {
	return maps.Clone(a.character.Cvars)
}

// SetCvar sets a cvar on the sheet and binds it in the running script
func (a *AliasCharacter) SetCvar(name, value string) error {
	if err := a.character.SetCvar(name, value); err != nil {
		return err
	}
	if a.names != nil {
		a.names.Set(name, value)
	}
	return nil
}

// SetCvarNX sets the cvar only if it is not already set
func (a *AliasCharacter) SetCvarNX(name, value string) error {
	if _, ok := a.character.Cvars[name]; ok {
		return nil
	}
	return a.SetCvar(name, value)
}

// DeleteCvar removes a cvar, returning its old value
func (a *AliasCharacter) DeleteCvar(name string) (string, bool) {
	old, ok := a.character.Cvars[name]
	if !ok {
		return "", false
	}
	a.character.DeleteCvar(name)
	if a.names != nil {
		a.names.Delete(name)
	}
	return old, true
}

// --- sheet ---

func (a *AliasCharacter) DeathSaves() *AliasDeathSaves {
	if a.character.DeathSaves == nil {
		a.character.DeathSaves = &entities.DeathSaves{}
	}
	return &AliasDeathSaves{saves: a.character.DeathSaves}
}

func (a *AliasCharacter) Actions() []*AliasAction {
	out := make([]*AliasAction, 0, len(a.character.Actions))
	for _, action := range a.character.Actions {
		out = append(out, &AliasAction{action: action})
	}
	return out
}

func (a *AliasCharacter) Owner() string { return a.character.OwnerID }
func (a *AliasCharacter) Upstream() string { return a.character.Upstream }
func (a *AliasCharacter) SheetType() string { return string(a.character.SheetType) }
func (a *AliasCharacter) Race() string { return a.character.Race }
func (a *AliasCharacter) Background() string { return a.character.Background }

// CSettings returns the character's options
func (a *AliasCharacter) CSettings() map[string]any {
	return map[string]any{
		"compact_coins": a.character.Options.CompactCoins,
	}
}

func (a *AliasCharacter) Coinpurse() *AliasCoinpurse {
	if a.character.Coinpurse == nil {
		a.character.Coinpurse = &entities.Coinpurse{}
	}
	return &AliasCoinpurse{purse: a.character.Coinpurse, options: a.character.Options}
}

// Commit persists every change made through this wrapper
func (a *AliasCharacter) Commit(ctx context.Context) error {
	if a.committer == nil {
		return dnderr.Internalf("character %s cannot be saved from here", a.character.Name)
	}
	if err := a.committer.Update(ctx, a.character); err != nil {
		return dnderr.Wrapf(err, "failed to save %s", a.character.Name)
	}
	return nil
}

// AliasDeathSaves exposes death saves
type AliasDeathSaves struct {
	saves *entities.DeathSaves
}

func (d *AliasDeathSaves) Successes() int { return d.saves.Successes }
func (d *AliasDeathSaves) Fails() int { return d.saves.Fails }
func (d *AliasDeathSaves) Succeed(n int) { d.saves.Succeed(n) }
func (d *AliasDeathSaves) Fail(n int) { d.saves.Fail(n) }
func (d *AliasDeathSaves) IsStable() bool { return d.saves.IsStable() }
func (d *AliasDeathSaves) IsDead() bool { return d.saves.IsDead() }
func (d *AliasDeathSaves) Reset() { d.saves.Reset() }
func (d *AliasDeathSaves) String() string { return d.saves.String() }

// AliasAction exposes one sheet action
type AliasAction struct {
	action *entities.Action
}

func (a *AliasAction) Name() string { return a.action.Name }
func (a *AliasAction) Description() string { return a.action.Description }
func (a *AliasAction) Snippet() string { return a.action.Snippet }
func (a *AliasAction) String() string { return a.action.String() }

// ActivationType returns the activation type, or nil when the action has none
func (a *AliasAction) ActivationType() *int {
	if a.action.Activation == 0 {
		return nil
	}
	v := int(a.action.Activation)
	return &v
}

// ActivationTypeName returns e.g. BONUS_ACTION, or "" when unknown
func (a *AliasAction) ActivationTypeName() string {
	return a.action.Activation.Name()
}
