package services

import (
	"github.com/diewo77/offer-engine/internal/expr"
	"github.com/diewo77/offer-engine/internal/models"
)

// ComputeFormula evaluates a formula config against a resolved environment:
// env[BaseFieldID] * (MultiplyBy or 1). The result is not clamped; callers
// that need non-negative quantities enforce that at the rule boundary.
func ComputeFormula(cfg models.FormulaConfig, env expr.Environment) (float64, error) {
	base, ok := env[cfg.BaseFieldID]
	if !ok {
		return 0, &expr.UnboundVariableError{Name: cfg.BaseFieldID}
	}
	if base.Kind != expr.KindNumber {
		return 0, &expr.TypeMismatchError{Op: "*", Left: base.Kind, Right: expr.KindNumber}
	}
	return base.Num * cfg.Multiplier(), nil
}
