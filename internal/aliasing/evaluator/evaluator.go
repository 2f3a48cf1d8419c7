// Package evaluator resolves the small math expressions stored on custom
// counters (min, max, reset_to) against a character's variables.
package evaluator

//go:generate mockgen -destination=mock/mock.go -package=mockevaluator -source=evaluator.go

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	dnderr "github.com/KirkDiggler/dnd-alias-bot/internal/errors"
	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// Evaluator evaluates an expression to an integer
type Evaluator interface {
	EvalInt(expression string, env map[string]any) (int, error)
}

type exprEvaluator struct {
	mu       sync.RWMutex
	programs map[string]*exprvm.Program
}

// New creates an Evaluator backed by expr-lang/expr. Compiled programs are cached by source.
func New() Evaluator {
	return &exprEvaluator{
		programs: make(map[string]*exprvm.Program),
	}
}

// EvalInt evaluates expression. Cvar braces such as {level} are accepted and
// fractional results are truncated toward zero.
func (e *exprEvaluator) EvalInt(expression string, env map[string]any) (int, error) {
	source := normalize(expression)
	if source == "" {
		return 0, dnderr.InvalidArgument("expression must not be empty")
	}

	if n, err := strconv.Atoi(source); err == nil {
		return n, nil
	}

	program, err := e.loadOrCompile(source)
	if err != nil {
		return 0, err
	}

	result, err := exprlang.Run(program, env)
	if err != nil {
		return 0, dnderr.InvalidArgumentf("could not evaluate %q: %v", expression, err)
	}

	return toInt(expression, result)
}

func (e *exprEvaluator) loadOrCompile(source string) (*exprvm.Program, error) {
	e.mu.RLock()
	program, ok := e.programs[source]
	e.mu.RUnlock()
	if ok {
		return program, nil
	}

	program, err := exprlang.Compile(source,
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, dnderr.InvalidArgumentf("invalid expression %q: %v", source, err)
	}

	e.mu.Lock()
	e.programs[source] = program
	e.mu.Unlock()
	return program, nil
}

func normalize(expression string) string {
	s := strings.TrimSpace(expression)
	s = strings.ReplaceAll(s, "{", "(")
	s = strings.ReplaceAll(s, "}", ")")
	return s
}

func toInt(expression string, v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, dnderr.InvalidArgumentf("%q did not evaluate to a number", expression)
		}
		return int(n), nil
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i, nil
		}
	}
	return 0, dnderr.InvalidArgumentf("%q evaluated to %s, not a number", expression, describe(v))
}

func describe(v any) string {
	if v == nil {
		return "nothing"
	}
	return fmt.Sprintf("%T", v)
}
