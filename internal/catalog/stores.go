// Package catalog provides the gorm-backed implementations of the engine's
// external collaborators: template lookup, generation rules, the price list
// and the project's active selections. All of them are read-only views over
// externally-owned configuration.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/diewo77/offer-engine/internal/models"
	"github.com/diewo77/offer-engine/internal/services"
)

// TemplateStore looks up requirement template groups by (category, variant).
type TemplateStore struct {
	DB *gorm.DB
}

func NewTemplateStore(db *gorm.DB) *TemplateStore { return &TemplateStore{DB: db} }

func (s *TemplateStore) GetTemplateGroup(ctx context.Context, categorySlug, variantSlug string) (*models.RequirementTemplateGroup, error) {
	var group models.RequirementTemplateGroup
	err := s.DB.WithContext(ctx).
		Preload("Rows", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc, id asc")
		}).
		Where("category_slug = ? AND variant_slug = ?", categorySlug, variantSlug).
		First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("template group %s/%s: %w", categorySlug, variantSlug, services.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// ListVariants returns a category's variants for requirement capture UIs.
func (s *TemplateStore) ListVariants(ctx context.Context, categorySlug string) ([]models.RequirementTemplateVariant, error) {
	var variants []models.RequirementTemplateVariant
	err := s.DB.WithContext(ctx).
		Where("category_slug = ?", categorySlug).
		Order("id asc").
		Find(&variants).Error
	return variants, err
}

// RuleStore supplies generation rules in declaration (position) order.
type RuleStore struct {
	DB *gorm.DB
}

func NewRuleStore(db *gorm.DB) *RuleStore { return &RuleStore{DB: db} }

func (s *RuleStore) GetGenerationRules(ctx context.Context, categorySlug, variantSlug string) ([]models.OfferGenerationRule, error) {
	var rules []models.OfferGenerationRule
	err := s.DB.WithContext(ctx).
		Where("category_slug = ? AND variant_slug = ?", categorySlug, variantSlug).
		Order("position asc, id asc").
		Find(&rules).Error
	return rules, err
}

// PriceListStore reads the product catalog. Ordering by id ascending is the
// catalog's stable insertion order, which auto-first selection depends on.
type PriceListStore struct {
	DB *gorm.DB
}

func NewPriceListStore(db *gorm.DB) *PriceListStore { return &PriceListStore{DB: db} }

func (s *PriceListStore) FindProductsByCategory(ctx context.Context, categorySlug string) ([]models.Product, error) {
	var products []models.Product
	err := s.DB.WithContext(ctx).
		Where("category_slug = ?", categorySlug).
		Order("id asc").
		Find(&products).Error
	return products, err
}

// SelectionStore derives the active (category, variant) set for a project.
type SelectionStore struct {
	DB *gorm.DB
}

func NewSelectionStore(db *gorm.DB) *SelectionStore { return &SelectionStore{DB: db} }

func (s *SelectionStore) GetActiveSelections(ctx context.Context, project *models.Project) ([]services.Selection, error) {
	rows := project.Selections
	if len(rows) == 0 {
		if err := s.DB.WithContext(ctx).
			Where("project_id = ?", project.ID).
			Order("id asc").
			Find(&rows).Error; err != nil {
			return nil, err
		}
	}
	selections := make([]services.Selection, 0, len(rows))
	for _, r := range rows {
		selections = append(selections, services.Selection{
			CategorySlug: r.CategorySlug,
			VariantSlug:  r.VariantSlug,
		})
	}
	return selections, nil
}
