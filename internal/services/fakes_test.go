package services

import (
	"context"
	"fmt"

	"github.com/diewo77/offer-engine/internal/models"
)

// In-memory collaborator fakes; the gorm-backed implementations live in
// internal/catalog and are covered there.

type fakeTemplates map[string]*models.RequirementTemplateGroup

func (f fakeTemplates) GetTemplateGroup(_ context.Context, categorySlug, variantSlug string) (*models.RequirementTemplateGroup, error) {
	g, ok := f[categorySlug+"/"+variantSlug]
	if !ok {
		return nil, fmt.Errorf("template group %s/%s: %w", categorySlug, variantSlug, ErrNotFound)
	}
	return g, nil
}

type fakeRules map[string][]models.OfferGenerationRule

func (f fakeRules) GetGenerationRules(_ context.Context, categorySlug, variantSlug string) ([]models.OfferGenerationRule, error) {
	return f[categorySlug+"/"+variantSlug], nil
}

type fakePriceList map[string][]models.Product

func (f fakePriceList) FindProductsByCategory(ctx context.Context, categorySlug string) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f[categorySlug], nil
}

type fakeSelections []Selection

func (f fakeSelections) GetActiveSelections(context.Context, *models.Project) ([]Selection, error) {
	return f, nil
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }
func uintPtr(u uint) *uint      { return &u }

func numberRow(id uint, pos int, fieldID, label string) models.RequirementTemplateRow {
	return models.RequirementTemplateRow{
		ID: id, Position: pos, FieldID: fieldID, Label: label,
		FieldType: models.FieldTypeNumber,
	}
}

func boolRow(id uint, pos int, fieldID, label string, def *string) models.RequirementTemplateRow {
	return models.RequirementTemplateRow{
		ID: id, Position: pos, FieldID: fieldID, Label: label,
		FieldType: models.FieldTypeBoolean, DefaultValue: def,
	}
}

func formulaRow(id uint, pos int, fieldID, label, baseFieldID string, multiplyBy *float64) models.RequirementTemplateRow {
	return models.RequirementTemplateRow{
		ID: id, Position: pos, FieldID: fieldID, Label: label,
		FieldType: models.FieldTypeNumber,
		Formula:   &models.FormulaConfig{BaseFieldID: baseFieldID, MultiplyBy: multiplyBy},
	}
}

func capture(projectID, rowID uint, value string) models.ProjectRequirement {
	return models.ProjectRequirement{
		ProjectID:     projectID,
		TemplateRowID: uintPtr(rowID),
		Value:         value,
	}
}
