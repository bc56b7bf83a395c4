package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/diewo77/offer-engine/internal/expr"
	"github.com/diewo77/offer-engine/internal/models"
)

// maxCatalogLookups bounds the concurrent price-list queries per Generate call.
const maxCatalogLookups = 8

// OfferDraftGenerator orchestrates the rule evaluation pipeline: resolve the
// environment per active (category, variant) pair, gate and quantify each
// matching rule, resolve products, and emit ordered draft line items plus
// diagnostics. One rule's failure never blocks the others.
type OfferDraftGenerator struct {
	Selections SelectionSource
	Rules      RuleSource
	Resolver   *RequirementResolver
	Products   *ProductResolver
}

func NewOfferDraftGenerator(sel SelectionSource, rules RuleSource, resolver *RequirementResolver, products *ProductResolver) *OfferDraftGenerator {
	return &OfferDraftGenerator{Selections: sel, Rules: rules, Resolver: resolver, Products: products}
}

type pendingItem struct {
	item DraftLineItem
	mode models.SelectionMode
}

// Generate computes the draft for one project snapshot. Output is
// deterministic for identical input: line items are ordered by
// (categorySlug, variantSlug, rule declaration order) regardless of selection
// iteration order or catalog lookup timing, and nothing here reads the clock
// or random state. A non-nil error is returned only for infrastructure
// failures (selection lookup, cancelled context); everything rule-local is a
// diagnostic.
func (g *OfferDraftGenerator) Generate(ctx context.Context, project *models.Project) (*OfferDraft, error) {
	selections, err := g.Selections.GetActiveSelections(ctx, project)
	if err != nil {
		return nil, err
	}
	ordered := make([]Selection, len(selections))
	copy(ordered, selections)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].CategorySlug != ordered[j].CategorySlug {
			return ordered[i].CategorySlug < ordered[j].CategorySlug
		}
		return ordered[i].VariantSlug < ordered[j].VariantSlug
	})

	draft := &OfferDraft{LineItems: []DraftLineItem{}, Diagnostics: []Diagnostic{}}
	var pending []pendingItem

	for _, sel := range ordered {
		env, diags, err := g.Resolver.Resolve(ctx, project, sel.CategorySlug, sel.VariantSlug)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				draft.Diagnostics = append(draft.Diagnostics, Diagnostic{
					CategorySlug: sel.CategorySlug,
					VariantSlug:  sel.VariantSlug,
					Kind:         DiagnosticNotFound,
					Message:      err.Error(),
				})
				continue
			}
			return nil, err
		}
		draft.Diagnostics = append(draft.Diagnostics, diags...)

		rules, err := g.Rules.GetGenerationRules(ctx, sel.CategorySlug, sel.VariantSlug)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				draft.Diagnostics = append(draft.Diagnostics, Diagnostic{
					CategorySlug: sel.CategorySlug,
					VariantSlug:  sel.VariantSlug,
					Kind:         DiagnosticNotFound,
					Message:      err.Error(),
				})
				continue
			}
			return nil, err
		}

		for i := range rules {
			item, diag := evaluateRule(&rules[i], sel, env)
			if diag != nil {
				draft.Diagnostics = append(draft.Diagnostics, *diag)
				continue
			}
			pending = append(pending, pendingItem{item: *item, mode: rules[i].SelectionMode})
		}
	}

	// Product lookups for independent rules carry no ordering dependency, so
	// they fan out; results land in index slots and the declared order is
	// restored below.
	resolutions := make([]ProductResolution, len(pending))
	failures := make([]error, len(pending))
	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(maxCatalogLookups)
	for i := range pending {
		i := i
		grp.Go(func() error {
			res, err := g.Products.Resolve(gctx, pending[i].item.ProductCategorySlug, pending[i].mode)
			if err != nil {
				if errors.Is(err, ErrNoCandidateProduct) {
					failures[i] = err // rule-local
					return nil
				}
				return err
			}
			resolutions[i] = res
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	for i := range pending {
		item := pending[i].item
		if failures[i] != nil {
			rid := item.RuleID
			draft.Diagnostics = append(draft.Diagnostics, Diagnostic{
				RuleID:       &rid,
				CategorySlug: item.CategorySlug,
				VariantSlug:  item.VariantSlug,
				Kind:         DiagnosticNoCandidateProduct,
				Field:        item.ProductCategorySlug,
				Message:      failures[i].Error(),
			})
			continue
		}
		res := resolutions[i]
		if res.ManualSelectionRequired {
			item.NeedsManualSelection = true
			item.Explanation += "; product left to manual selection"
		} else {
			item.ResolvedProductID = &res.Product.ID
			item.ProductCode = res.Product.Code
			item.ProductName = res.Product.Name
			item.UnitPrice = res.Product.UnitPrice
			item.VATRate = res.Product.VATRate
			item.Explanation += fmt.Sprintf("; auto-selected %s (%s)", res.Product.Name, res.Product.Code)
		}
		draft.LineItems = append(draft.LineItems, item)
	}

	net, tax, gross := ComputeTotals(draft.LineItems)
	draft.Totals = DraftTotals{Net: net, Tax: tax, Gross: gross}
	return draft, nil
}

// evaluateRule gates and quantifies one rule. It returns either a line item
// awaiting product resolution or the diagnostic explaining its absence.
func evaluateRule(rule *models.OfferGenerationRule, sel Selection, env expr.Environment) (*DraftLineItem, *Diagnostic) {
	ruleDiag := func(kind DiagnosticKind, field, msg string) *Diagnostic {
		rid := rule.ID
		return &Diagnostic{
			RuleID:       &rid,
			CategorySlug: sel.CategorySlug,
			VariantSlug:  sel.VariantSlug,
			Kind:         kind,
			Field:        field,
			Message:      msg,
		}
	}

	// absent condition means the rule is always active
	if rule.ConditionExpression != "" {
		v, err := expr.Evaluate(rule.ConditionExpression, env)
		if err != nil {
			return nil, ruleDiag(diagnosticKindForError(err), "condition", err.Error())
		}
		if v.Kind != expr.KindBool {
			return nil, ruleDiag(DiagnosticTypeMismatch, "condition", fmt.Sprintf("condition evaluated to %s, want boolean", v.Kind))
		}
		if !v.Bool {
			return nil, ruleDiag(DiagnosticSkipped, "condition", "condition not met")
		}
	}

	qv, err := expr.Evaluate(rule.QuantityExpression, env)
	if err != nil {
		return nil, ruleDiag(diagnosticKindForError(err), "quantity", err.Error())
	}
	if qv.Kind != expr.KindNumber {
		return nil, ruleDiag(DiagnosticInvalidQuantity, "quantity", fmt.Sprintf("quantity evaluated to %s, want number", qv.Kind))
	}
	if qv.Num < 0 || math.IsNaN(qv.Num) || math.IsInf(qv.Num, 0) {
		return nil, ruleDiag(DiagnosticInvalidQuantity, "quantity", fmt.Sprintf("quantity %g out of range", qv.Num))
	}

	return &DraftLineItem{
		RuleID:              rule.ID,
		CategorySlug:        sel.CategorySlug,
		VariantSlug:         sel.VariantSlug,
		ProductCategorySlug: rule.TargetProductCategorySlug,
		Quantity:            qv.Num,
		Explanation:         fmt.Sprintf("%s: %s = %g", rule.Label, rule.QuantityExpression, qv.Num),
	}, nil
}
