// Package validation checks externally-authored configuration before it
// reaches the engine: basic field validators plus the template and rule
// invariants (select options, unique field ids, formula back-references,
// parseable expressions).
package validation

import (
	"fmt"
	"strings"

	"github.com/diewo77/offer-engine/internal/expr"
	"github.com/diewo77/offer-engine/internal/models"
)

// Violations maps a field path to a short machine-readable reason.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

func (v Violations) Error() string {
	parts := make([]string, 0, len(v))
	for field, reason := range v {
		parts = append(parts, field+": "+reason)
	}
	return "invalid configuration: " + strings.Join(parts, "; ")
}

// Basic validators

func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func RangeFloat(field string, val, minVal, maxVal float64, v Violations) {
	if val < minVal || val > maxVal {
		v[field] = "out_of_range"
	}
}

// TemplateGroup checks a requirement template group's invariants:
// field ids unique within the group, select rows carry non-empty options with
// a consistent default, and formula rows reference a numeric field declared
// strictly earlier (self and forward references are configuration errors).
func TemplateGroup(g *models.RequirementTemplateGroup) Violations {
	v := Violations{}
	Required("categorySlug", g.CategorySlug, v)
	Required("variantSlug", g.VariantSlug, v)

	seen := map[string]bool{}
	numericBefore := map[string]bool{}
	for i := range g.Rows {
		row := &g.Rows[i]
		key := fmt.Sprintf("rows[%d]", i)

		Required(key+".fieldId", row.FieldID, v)
		if seen[row.FieldID] {
			v[key+".fieldId"] = "duplicate"
		}
		seen[row.FieldID] = true

		if !row.FieldType.Valid() {
			v[key+".fieldType"] = "unknown"
		}
		if row.FieldType == models.FieldTypeSelect {
			if len(row.Options) == 0 {
				v[key+".options"] = "required"
			} else if row.DefaultValue != nil && !row.Options.Contains(*row.DefaultValue) {
				v[key+".defaultValue"] = "not_in_options"
			}
		}

		if row.Formula != nil {
			checkFormula(key+".formula", row.FieldID, row.Formula, numericBefore, v)
		}

		// a numeric answer or a derived value may serve as a later base field
		if row.FieldType == models.FieldTypeNumber || row.HasFormula() {
			numericBefore[row.FieldID] = true
		}
	}
	return v
}

func checkFormula(key, ownFieldID string, cfg *models.FormulaConfig, numericBefore map[string]bool, v Violations) {
	if cfg.BaseFieldID == "" {
		v[key+".baseFieldId"] = "required"
		return
	}
	if cfg.BaseFieldID == ownFieldID {
		v[key+".baseFieldId"] = "self_reference"
		return
	}
	if !numericBefore[cfg.BaseFieldID] {
		v[key+".baseFieldId"] = "forward_or_non_numeric_reference"
	}
}

// GenerationRule checks one offer generation rule: a present, parseable
// quantity expression, a parseable condition when set, a known selection mode
// and a target category.
func GenerationRule(r *models.OfferGenerationRule) Violations {
	v := Violations{}
	Required("label", r.Label, v)
	Required("targetProductCategorySlug", r.TargetProductCategorySlug, v)
	Required("quantityExpression", r.QuantityExpression, v)
	if r.QuantityExpression != "" {
		if _, err := expr.Parse(r.QuantityExpression); err != nil {
			v["quantityExpression"] = "malformed"
		}
	}
	if r.ConditionExpression != "" {
		if _, err := expr.Parse(r.ConditionExpression); err != nil {
			v["conditionExpression"] = "malformed"
		}
	}
	if r.SelectionMode != "" && !r.SelectionMode.Valid() {
		v["productSelectionMode"] = "unknown"
	}
	return v
}
