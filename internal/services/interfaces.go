package services

import (
	"context"

	"github.com/diewo77/offer-engine/internal/models"
)

// External collaborators consumed by the engine. Implementations live in
// internal/catalog (gorm-backed); tests substitute in-memory fakes.

// Selection is one (category, variant) pair a project has opted into.
type Selection struct {
	CategorySlug string
	VariantSlug  string
}

// TemplateCatalog looks up requirement templates. GetTemplateGroup returns an
// error wrapping ErrNotFound when no group exists for the pair.
type TemplateCatalog interface {
	GetTemplateGroup(ctx context.Context, categorySlug, variantSlug string) (*models.RequirementTemplateGroup, error)
}

// RuleSource returns the generation rules for a pair in declaration order.
// An empty slice means no rules, which is not an error.
type RuleSource interface {
	GetGenerationRules(ctx context.Context, categorySlug, variantSlug string) ([]models.OfferGenerationRule, error)
}

// PriceList is the external product catalog. FindProductsByCategory returns
// products in the catalog's stable ordering (insertion order).
type PriceList interface {
	FindProductsByCategory(ctx context.Context, categorySlug string) ([]models.Product, error)
}

// SelectionSource supplies the active (category, variant) set for a project.
type SelectionSource interface {
	GetActiveSelections(ctx context.Context, project *models.Project) ([]Selection, error)
}
