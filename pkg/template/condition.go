package template

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Operator is the comparison applied by a Condition.
type Operator string

const (
	// OpEquals holds when the field strictly equals Value.
	OpEquals Operator = "equals"
	// OpIncludes holds when the field is an array containing Value.
	OpIncludes Operator = "includes"
	// OpGreaterThan holds when the field is a number greater than Value.
	// A Value that is neither a number nor a numeric string never holds.
	OpGreaterThan Operator = "gt"
	// OpExists holds when the field is present and not null. Value is ignored.
	OpExists Operator = "exists"
	// OpExpr holds when Value, an expr-lang expression evaluated with the
	// context as its environment, returns true. Field is ignored.
	OpExpr Operator = "expr"
)

// Condition guards a Section.
type Condition struct {
	Field    string   `json:"field,omitempty" yaml:"field,omitempty"`
	Operator Operator `json:"operator" yaml:"operator"`
	Value    any      `json:"value,omitempty" yaml:"value,omitempty"`
}

// Evaluate reports whether the condition holds for ctx.
// Expression conditions are compiled on every call; registered
// templates use a precompiled guard instead.
func (c *Condition) Evaluate(ctx Context) bool {
	g, err := compileGuard(c)
	if err != nil {
		return false
	}
	return g.eval(ctx)
}

// guard is a validated Condition ready for evaluation.
type guard struct {
	cond    *Condition
	program *vm.Program

	// limit is the numeric comparand of gt; limitOK is false when the
	// comparand is not a number, and the guard then never holds.
	limit   float64
	limitOK bool
}

// compileGuard checks the operator and compiles expression operators.
// A guard with an empty Field compiles but never holds.
// A nil condition yields a nil guard, which always holds.
func compileGuard(c *Condition) (*guard, error) {
	if c == nil {
		return nil, nil
	}

	switch c.Operator {
	case OpEquals, OpIncludes, OpExists:
		return &guard{cond: c}, nil

	case OpGreaterThan:
		limit, ok := comparandNumber(c.Value)
		return &guard{cond: c, limit: limit, limitOK: ok}, nil

	case OpExpr:
		source, ok := c.Value.(string)
		if !ok || strings.TrimSpace(source) == "" {
			return nil, fmt.Errorf("operator %q requires an expression string", c.Operator)
		}
		program, err := expr.Compile(source, expr.AllowUndefinedVariables())
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", source, err)
		}
		return &guard{cond: c, program: program}, nil

	default:
		return nil, fmt.Errorf("unknown operator %q", c.Operator)
	}
}

func (g *guard) eval(ctx Context) bool {
	if g == nil {
		return true
	}

	if g.program != nil {
		// Runtime failures count as "does not hold"; missing data is not an error.
		out, err := expr.Run(g.program, map[string]any(ctx))
		if err != nil {
			return false
		}
		b, ok := out.(bool)
		return ok && b
	}

	val, ok := Resolve(ctx, g.cond.Field)

	switch g.cond.Operator {
	case OpEquals:
		return ok && strictEqual(val, g.cond.Value)
	case OpIncludes:
		if !ok {
			return false
		}
		items, isList := asList(val)
		if !isList {
			return false
		}
		for _, item := range items {
			if strictEqual(item, g.cond.Value) {
				return true
			}
		}
		return false
	case OpGreaterThan:
		if !ok {
			return false
		}
		n, isNum := toNumber(val)
		if !isNum {
			return false
		}
		return g.limitOK && n > g.limit
	case OpExists:
		return ok && val != nil
	}
	return false
}

// comparandNumber accepts numbers and numeric strings.
func comparandNumber(v any) (float64, bool) {
	if f, ok := toNumber(v); ok {
		return f, true
	}
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return f, err == nil
	}
	return 0, false
}
