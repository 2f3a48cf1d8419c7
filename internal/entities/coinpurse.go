package entities

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	dnderr "github.com/KirkDiggler/dnd-alias-bot/internal/errors"
)

// Coin is a currency denomination
type Coin string

const (
	CoinPP Coin = "pp"
	CoinGP Coin = "gp"
	CoinEP Coin = "ep"
	CoinSP Coin = "sp"
	CoinCP Coin = "cp"
)

// MaxCoins bounds any single denomination in a purse or a change
const MaxCoins = 1_000_000_000_000

// CoinTypes lists denominations from most to least valuable
var CoinTypes = []Coin{CoinPP, CoinGP, CoinEP, CoinSP, CoinCP}

// value of each coin in copper
var copperValue = map[Coin]int{
	CoinPP: 1000,
	CoinGP: 100,
	CoinEP: 50,
	CoinSP: 10,
	CoinCP: 1,
}

// ParseCoin validates a denomination name
func ParseCoin(s string) (Coin, error) {
	c := Coin(strings.ToLower(s))
	if _, ok := copperValue[c]; !ok {
		return "", dnderr.InvalidArgumentf("%s is not a valid coin.", s)
	}
	return c, nil
}

// Coins is an amount of each denomination
type Coins struct {
	PP int `json:"pp"`
	GP int `json:"gp"`
	EP int `json:"ep"`
	SP int `json:"sp"`
	CP int `json:"cp"`
}

// Get returns the amount of one denomination
func (c Coins) Get(coin Coin) int {
	switch coin {
	case CoinPP:
		return c.PP
	case CoinGP:
		return c.GP
	case CoinEP:
		return c.EP
	case CoinSP:
		return c.SP
	case CoinCP:
		return c.CP
	}
	return 0
}

// ToMap returns the amounts keyed by denomination
func (c Coins) ToMap() map[Coin]int {
	return map[Coin]int{
		CoinPP: c.PP,
		CoinGP: c.GP,
		CoinEP: c.EP,
		CoinSP: c.SP,
		CoinCP: c.CP,
	}
}

// Coinpurse is a character's money
type Coinpurse struct {
	Coins
}

// Update adds the deltas. A change that would leave any denomination negative
// or above MaxCoins is rejected.
func (p *Coinpurse) Update(delta Coins) error {
	if err := delta.checkBounds(); err != nil {
		return err
	}
	next := Coins{
		PP: p.PP + delta.PP,
		GP: p.GP + delta.GP,
		EP: p.EP + delta.EP,
		SP: p.SP + delta.SP,
		CP: p.CP + delta.CP,
	}
	for _, coin := range CoinTypes {
		if next.Get(coin) < 0 {
			return dnderr.InvalidArgumentf("You don't have enough %s.", coin)
		}
		if next.Get(coin) > MaxCoins {
			return dnderr.InvalidArgumentf("You cannot carry that much %s.", coin)
		}
	}
	p.Coins = next
	return nil
}

// Set replaces the amounts
func (p *Coinpurse) Set(coins Coins) error {
	for _, coin := range CoinTypes {
		if coins.Get(coin) < 0 {
			return dnderr.InvalidArgumentf("You cannot have negative %s.", coin)
		}
		if coins.Get(coin) > MaxCoins {
			return dnderr.InvalidArgumentf("You cannot carry that much %s.", coin)
		}
	}
	p.Coins = coins
	return nil
}

// Total returns the purse value in gold
func (p *Coinpurse) Total() float64 {
	copper := 0
	for _, coin := range CoinTypes {
		copper += p.Get(coin) * copperValue[coin]
	}
	return float64(copper) / 100
}

// StyledString renders the purse as "compact" total gold or a single denomination
func (p *Coinpurse) StyledString(style string) (string, error) {
	if strings.ToLower(style) == "compact" {
		return fmt.Sprintf("%s gp", strconv.FormatFloat(p.Total(), 'f', 2, 64)), nil
	}
	coin, err := ParseCoin(style)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d %s", p.Get(coin), coin), nil
}

func (p *Coinpurse) String() string {
	lines := make([]string, 0, len(CoinTypes)+1)
	for _, coin := range CoinTypes {
		lines = append(lines, fmt.Sprintf("%d %s", p.Get(coin), coin))
	}
	lines = append(lines, fmt.Sprintf("Total Value: %s gp", strconv.FormatFloat(p.Total(), 'f', 2, 64)))
	return strings.Join(lines, "\n")
}

// CoinsArgs is the result of parsing user coin input
type CoinsArgs struct {
	Coins
	// Explicit is false when the input was a bare number of gold
	Explicit bool
}

var coinTokenPattern = regexp.MustCompile(`^([+-]?\d+)\s*(pp|gp|ep|sp|cp)$`)

// ParseCoinArgs parses either a decimal amount of gold ("1.25") or
// denomination tokens ("+1gp -2sp 3cp").
func ParseCoinArgs(args string) (*CoinsArgs, error) {
	args = strings.TrimSpace(args)
	if args == "" {
		return nil, dnderr.InvalidArgument("No coins given.")
	}

	if f, err := strconv.ParseFloat(args, 64); err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > MaxCoins {
			return nil, dnderr.InvalidArgumentf("Invalid amount of gold %q.", args)
		}
		return parseGoldAmount(f), nil
	}

	out := &CoinsArgs{Explicit: true}
	for _, token := range strings.Fields(strings.ToLower(args)) {
		m := coinTokenPattern.FindStringSubmatch(token)
		if m == nil {
			return nil, dnderr.InvalidArgumentf("Invalid coin argument %q, use a number of gold or e.g. +1gp -2sp.", token)
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n > MaxCoins || n < -MaxCoins {
			return nil, dnderr.InvalidArgumentf("Invalid coin amount %q.", m[1])
		}
		switch Coin(m[2]) {
		case CoinPP:
			out.PP += n
		case CoinGP:
			out.GP += n
		case CoinEP:
			out.EP += n
		case CoinSP:
			out.SP += n
		case CoinCP:
			out.CP += n
		}
	}
	if err := out.checkBounds(); err != nil {
		return nil, err
	}
	return out, nil
}

// checkBounds rejects any denomination whose magnitude exceeds MaxCoins
func (c Coins) checkBounds() error {
	for _, coin := range CoinTypes {
		if n := c.Get(coin); n > MaxCoins || n < -MaxCoins {
			return dnderr.InvalidArgumentf("That is too much %s.", coin)
		}
	}
	return nil
}

func parseGoldAmount(f float64) *CoinsArgs {
	copper := int(math.Round(math.Abs(f) * 100))
	sign := 1
	if f < 0 {
		sign = -1
	}
	return &CoinsArgs{
		Coins: Coins{
			GP: sign * (copper / 100),
			SP: sign * (copper % 100 / 10),
			CP: sign * (copper % 10),
		},
	}
}
