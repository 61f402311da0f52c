package rules

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/nstehr/quartermaster/weights"
)

// Engine runs a compiled rule sequence against one request's Params.
// Compiled programs are read-only, so an Engine may serve concurrent
// requests as long as each brings its own Scorer.
type Engine struct {
	rules []*Rule
}

// NewEngine compiles all rule conditions into expr bytecode and sorts by priority.
func NewEngine(rules []*Rule) (*Engine, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return &Engine{rules: compiled}, nil
}

// Rules returns the compiled rules in evaluation order.
func (e *Engine) Rules() []*Rule { return e.rules }

// Apply evaluates every rule in order and returns the names of those that fired.
func (e *Engine) Apply(p Params, s *weights.Scorer) []string {
	var fired []string
	for _, r := range e.rules {
		result, err := vm.Run(r.program, p)
		if err != nil {
			slog.Warn("rule condition error", "rule", r.Name, "error", err)
			continue
		}
		match, ok := result.(bool)
		if !ok || !match {
			continue
		}
		slog.Debug("rule fired", "rule", r.Name, "priority", r.Priority)
		r.Action(p, s)
		fired = append(fired, r.Name)
	}
	return fired
}

func compileRules(rules []*Rule) ([]*Rule, error) {
	for _, r := range rules {
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(Params{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}
