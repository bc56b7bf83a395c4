package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/diewo77/offer-engine/internal/expr"
	"github.com/diewo77/offer-engine/internal/models"
)

// RequirementResolver binds a project's captured requirement values to the
// matching template rows and produces the typed environment expressions are
// evaluated against.
type RequirementResolver struct {
	Templates TemplateCatalog
}

func NewRequirementResolver(tc TemplateCatalog) *RequirementResolver {
	return &RequirementResolver{Templates: tc}
}

// Resolve builds the environment for one (category, variant) pair.
//
// Rows without a formula resolve first: the captured requirement value wins,
// then the row default; a row with neither is simply omitted, so later
// expressions referencing it fail with an unbound-variable diagnostic.
// Formula rows resolve strictly afterwards, in group-declared order, which is
// also the only dependency order allowed (self and forward references come
// out unbound). Row-level failures become diagnostics and never abort the
// pass; only a missing template group is an error.
func (r *RequirementResolver) Resolve(ctx context.Context, project *models.Project, categorySlug, variantSlug string) (expr.Environment, []Diagnostic, error) {
	group, err := r.Templates.GetTemplateGroup(ctx, categorySlug, variantSlug)
	if err != nil {
		return nil, nil, err
	}

	env := expr.Environment{}
	var diags []Diagnostic

	rowDiag := func(row *models.RequirementTemplateRow, kind DiagnosticKind, msg string) {
		diags = append(diags, Diagnostic{
			CategorySlug: categorySlug,
			VariantSlug:  variantSlug,
			Kind:         kind,
			Field:        row.FieldID,
			Message:      msg,
		})
	}

	// pass 1: captured answers and defaults
	for i := range group.Rows {
		row := &group.Rows[i]
		if r.formulaFor(project, row) != nil {
			continue
		}
		raw, ok := r.rawValue(project, row)
		if !ok {
			continue
		}
		v, err := coerceValue(row.FieldType, raw)
		if err != nil {
			rowDiag(row, DiagnosticTypeMismatch, err.Error())
			continue
		}
		env[row.FieldID] = v
	}

	// pass 2: derived rows, declared order
	for i := range group.Rows {
		row := &group.Rows[i]
		cfg := r.formulaFor(project, row)
		if cfg == nil {
			continue
		}
		n, err := ComputeFormula(*cfg, env)
		if err != nil {
			rowDiag(row, diagnosticKindForError(err), err.Error())
			continue
		}
		env[row.FieldID] = expr.Number(n)
	}

	return env, diags, nil
}

// formulaFor returns the effective formula for a row: the project
// requirement's override when present, otherwise the row's own config.
func (r *RequirementResolver) formulaFor(project *models.Project, row *models.RequirementTemplateRow) *models.FormulaConfig {
	if req := project.RequirementByRow(row.ID); req != nil && req.Formula != nil && req.Formula.BaseFieldID != "" {
		return req.Formula
	}
	if row.HasFormula() {
		return row.Formula
	}
	return nil
}

// rawValue returns the captured answer for the row, falling back to the row
// default. Blank captures count as absent.
func (r *RequirementResolver) rawValue(project *models.Project, row *models.RequirementTemplateRow) (string, bool) {
	if req := project.RequirementByRow(row.ID); req != nil && strings.TrimSpace(req.Value) != "" {
		return req.Value, true
	}
	if row.DefaultValue != nil && *row.DefaultValue != "" {
		return *row.DefaultValue, true
	}
	return "", false
}

// coerceValue converts a stringified answer into its typed value; coercion is
// explicit per field type, never a runtime cast.
func coerceValue(ft models.FieldType, raw string) (expr.Value, error) {
	switch ft {
	case models.FieldTypeNumber:
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return expr.Value{}, &expr.TypeMismatchError{Op: "number(" + raw + ")", Left: expr.KindString, Right: expr.KindNumber}
		}
		return expr.Number(n), nil
	case models.FieldTypeBoolean:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return expr.Value{}, &expr.TypeMismatchError{Op: "boolean(" + raw + ")", Left: expr.KindString, Right: expr.KindBool}
		}
		return expr.Bool(b), nil
	default: // text, select
		return expr.String(raw), nil
	}
}
