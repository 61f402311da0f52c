package rules

import (
	"github.com/expr-lang/expr/vm"

	"github.com/nstehr/quartermaster/weights"
)

// ActionFunc issues weight votes when a rule's condition is true.
type ActionFunc func(p Params, s *weights.Scorer)

// Rule is the atomic unit of planner behavior: a condition → vote pair.
// Every rule whose condition holds fires; there is no exclusivity.
type Rule struct {
	Name         string      // human-readable identifier
	Priority     int         // higher = evaluated first
	ConditionSrc string      // expr source
	program      *vm.Program // compiled bytecode
	Action       ActionFunc
}
