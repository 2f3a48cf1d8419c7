package dice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// RollResult holds the outcome of rolling some dice plus a flat bonus
type RollResult struct {
	Total    int
	RawTotal int
	Rolls    []int
	Bonus    int
	Count    int
	Sides    int
}

// Bounds on a single roll
const (
	MaxDice  = 1000
	MaxSides = 1000
)

// ErrInvalidExpression is returned for dice strings that are not XdY[+-Z] or a plain integer
var ErrInvalidExpression = errors.New("invalid dice string")

// Expression is a parsed dice string such as 1d6+2
type Expression struct {
	Count int
	Sides int
	Bonus int
}

// ParseExpression parses XdY, XdY+Z, XdY-Z, dY and plain integers.
// A plain integer parses as zero dice with the value as bonus.
func ParseExpression(raw string) (*Expression, error) {
	s := strings.ToLower(strings.ReplaceAll(raw, " ", ""))
	if s == "" {
		return nil, ErrInvalidExpression
	}

	if n, err := strconv.Atoi(s); err == nil {
		return &Expression{Bonus: n}, nil
	}

	dicePart, bonus := s, 0
	if i := strings.LastIndexAny(s, "+-"); i > 0 {
		b, err := strconv.Atoi(s[i:])
		if err != nil {
			return nil, ErrInvalidExpression
		}
		dicePart, bonus = s[:i], b
	}

	parts := strings.Split(dicePart, "d")
	if len(parts) != 2 {
		return nil, ErrInvalidExpression
	}

	count := 1
	if parts[0] != "" {
		c, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, ErrInvalidExpression
		}
		count = c
	}

	sides, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, ErrInvalidExpression
	}
	if count < 1 || sides < 1 || count > MaxDice || sides > MaxSides {
		return nil, ErrInvalidExpression
	}

	return &Expression{Count: count, Sides: sides, Bonus: bonus}, nil
}

// String renders the expression back in XdY+Z form
func (e *Expression) String() string {
	if e.Count == 0 {
		return strconv.Itoa(e.Bonus)
	}
	switch {
	case e.Bonus > 0:
		return fmt.Sprintf("%dd%d+%d", e.Count, e.Sides, e.Bonus)
	case e.Bonus < 0:
		return fmt.Sprintf("%dd%d%d", e.Count, e.Sides, e.Bonus)
	default:
		return fmt.Sprintf("%dd%d", e.Count, e.Sides)
	}
}

// RollString parses a dice string and rolls it with the given roller
func RollString(r Roller, raw string) (*RollResult, error) {
	expr, err := ParseExpression(raw)
	if err != nil {
		return nil, err
	}
	if expr.Count == 0 {
		return &RollResult{Total: expr.Bonus, Bonus: expr.Bonus}, nil
	}
	return r.Roll(expr.Count, expr.Sides, expr.Bonus)
}

func (r *RollResult) String() string {
	compact := strings.ReplaceAll(fmt.Sprintf("%v", r.Rolls), " ", "")
	return fmt.Sprintf("**%d** : %s", r.Total, compact)
}
