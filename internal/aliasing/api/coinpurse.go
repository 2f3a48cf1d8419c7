package api

import (
	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
)

// AliasCoinpurse is the script-facing view of a character's coins
type AliasCoinpurse struct {
	purse   *entities.Coinpurse
	options entities.CharacterOptions
}

// Get returns the amount of one coin type
func (p *AliasCoinpurse) Get(coin string) (int, error) {
	c, err := entities.ParseCoin(coin)
	if err != nil {
		return 0, err
	}
	return p.purse.Get(c), nil
}

// CoinStr renders one coin type, or "compact" for the total in gold
func (p *AliasCoinpurse) CoinStr(style string) (string, error) {
	return p.purse.StyledString(style)
}

// ModifyCoins adds the given amounts
func (p *AliasCoinpurse) ModifyCoins(delta entities.Coins) error {
	return p.purse.Update(delta)
}

// SetCoins replaces the amounts
func (p *AliasCoinpurse) SetCoins(coins entities.Coins) error {
	return p.purse.Set(coins)
}

// GetCoins returns the amounts keyed by coin type
func (p *AliasCoinpurse) GetCoins() map[string]int {
	out := make(map[string]int, len(entities.CoinTypes))
	for coin, n := range p.purse.ToMap() {
		out[string(coin)] = n
	}
	return out
}

func (p *AliasCoinpurse) String() string {
	if p.options.CompactCoins {
		s, _ := p.purse.StyledString("compact")
		return s
	}
	return p.purse.String()
}

// ParseCoins parses "1.5" as gold or "+1gp -2sp" tokens into amounts per coin type
func ParseCoins(args string) (map[string]int, error) {
	parsed, err := entities.ParseCoinArgs(args)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(entities.CoinTypes))
	for coin, n := range parsed.ToMap() {
		out[string(coin)] = n
	}
	return out, nil
}
