package rules

import (
	"fmt"
	"math"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// Rule is one named completion check. Expr must evaluate to a boolean.
type Rule struct {
	Field string
	Expr  string
}

// Completion is the read-only completion state of a working copy.
type Completion struct {
	Fields     map[string]bool `json:"fields"`
	Percentage int             `json:"percentage"`
}

type compiledRule struct {
	field      string
	expression string
	program    *exprvm.Program
}

// Checklist evaluates a fixed list of rules against a working copy.
type Checklist struct {
	rules []compiledRule
}

// NewChecklist compiles rules. Field names must be unique.
func NewChecklist(rules []Rule) (*Checklist, error) {
	c := &Checklist{rules: make([]compiledRule, 0, len(rules))}
	seen := make(map[string]struct{}, len(rules))
	for _, r := range rules {
		if r.Field == "" {
			return nil, fmt.Errorf("rules: rule without field")
		}
		if _, ok := seen[r.Field]; ok {
			return nil, fmt.Errorf("rules: duplicate field %q", r.Field)
		}
		seen[r.Field] = struct{}{}

		program, err := compile(r.Expr)
		if err != nil {
			return nil, fmt.Errorf("rules: field %q: %w", r.Field, err)
		}
		c.rules = append(c.rules, compiledRule{field: r.Field, expression: r.Expr, program: program})
	}
	return c, nil
}

// MustChecklist is NewChecklist for rule lists fixed at compile time.
func MustChecklist(rules ...Rule) *Checklist {
	c, err := NewChecklist(rules)
	if err != nil {
		panic(err)
	}
	return c
}

// Evaluate runs every rule with items bound to the "items" variable.
// An empty checklist is complete.
func (c *Checklist) Evaluate(items any) (Completion, error) {
	out := Completion{Fields: make(map[string]bool, len(c.rules)), Percentage: 100}
	if len(c.rules) == 0 {
		return out, nil
	}

	env := Env(items)
	valid := 0
	for _, r := range c.rules {
		ok, err := runBool(r.program, r.expression, env)
		if err != nil {
			return Completion{}, fmt.Errorf("rules: field %q: %w", r.field, err)
		}
		out.Fields[r.field] = ok
		if ok {
			valid++
		}
	}
	out.Percentage = int(math.Round(float64(valid) * 100 / float64(len(c.rules))))
	return out, nil
}

// Predicate is a single boolean expression over a working copy.
type Predicate struct {
	expression string
	program    *exprvm.Program
}

// NewPredicate compiles expression. An empty expression always holds.
func NewPredicate(expression string) (*Predicate, error) {
	if expression == "" {
		expression = "true"
	}
	program, err := compile(expression)
	if err != nil {
		return nil, fmt.Errorf("rules: %w", err)
	}
	return &Predicate{expression: expression, program: program}, nil
}

// String returns the source expression.
func (p *Predicate) String() string { return p.expression }

// Eval runs the predicate with items bound to the "items" variable.
func (p *Predicate) Eval(items any) (bool, error) {
	return runBool(p.program, p.expression, Env(items))
}

// Env is the environment rule expressions run against.
func Env(items any) map[string]any {
	return map[string]any{"items": items}
}

func compile(expression string) (*exprvm.Program, error) {
	if expression == "" {
		return nil, fmt.Errorf("expression must not be empty")
	}
	return exprlang.Compile(expression,
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	)
}

func runBool(program *exprvm.Program, expression string, env map[string]any) (bool, error) {
	result, err := exprlang.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("evaluate %q: %w", expression, err)
	}
	ok, isBool := result.(bool)
	if !isBool {
		return false, fmt.Errorf("evaluate %q: result %T is not a boolean", expression, result)
	}
	return ok, nil
}
