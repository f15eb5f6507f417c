package predicate

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vulcand/predicate"

	"github.com/roach88/brutalist/internal/mutation"
)

// ParseExpr compiles an expression into a predicate.
func ParseExpr(expr string) (mutation.Predicate, error) {
	parser, err := predicate.NewParser(predicate.Def{
		Functions: exprFunctions(),
		Operators: predicate.Operators{
			AND: andOperator,
			OR:  orOperator,
			NOT: notOperator,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create parser: %w", err)
	}

	parsed, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid predicate expression %q: %w", expr, err)
	}

	fn, ok := parsed.(mutation.Predicate)
	if !ok {
		return nil, fmt.Errorf("predicate must evaluate to boolean, got %T", parsed)
	}
	return fn, nil
}

func exprFunctions() map[string]any {
	return map[string]any{
		"HasKey":        hasKey,
		"ValueIs":       valueIs,
		"IsBoolean":     isBoolean,
		"IsTrue":        isTrue,
		"IsNumeric":     isNumeric,
		"NumberAtLeast": numberAtLeast,
		"NumberAtMost":  numberAtMost,
		"KeyCount":      keyCount,
	}
}

func hasKey(key string) mutation.Predicate {
	return func(s mutation.Snapshot) bool {
		_, ok := s[key]
		return ok
	}
}

func valueIs(key, value string) mutation.Predicate {
	return func(s mutation.Snapshot) bool {
		v, ok := s[key]
		return ok && v == value
	}
}

func isBoolean(key string) mutation.Predicate {
	return func(s mutation.Snapshot) bool {
		v := s[key]
		return v == "true" || v == "false"
	}
}

func isTrue(key string) mutation.Predicate {
	return valueIs(key, "true")
}

func isNumeric(key string) mutation.Predicate {
	return func(s mutation.Snapshot) bool {
		_, ok := number(s, key)
		return ok
	}
}

func numberAtLeast(key string, bound int) mutation.Predicate {
	return func(s mutation.Snapshot) bool {
		n, ok := number(s, key)
		return ok && n >= float64(bound)
	}
}

func numberAtMost(key string, bound int) mutation.Predicate {
	return func(s mutation.Snapshot) bool {
		n, ok := number(s, key)
		return ok && n <= float64(bound)
	}
}

func keyCount(n int) mutation.Predicate {
	return func(s mutation.Snapshot) bool {
		return len(s) == n
	}
}

func number(s mutation.Snapshot, key string) (float64, bool) {
	raw, ok := s[key]
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func andOperator(a, b mutation.Predicate) mutation.Predicate {
	return func(s mutation.Snapshot) bool {
		return a(s) && b(s)
	}
}

func orOperator(a, b mutation.Predicate) mutation.Predicate {
	return func(s mutation.Snapshot) bool {
		return a(s) || b(s)
	}
}

func notOperator(a mutation.Predicate) mutation.Predicate {
	return func(s mutation.Snapshot) bool {
		return !a(s)
	}
}
