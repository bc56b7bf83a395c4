package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/diewo77/offer-engine/internal/models"
	"github.com/diewo77/offer-engine/internal/validation"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

// SeedDemo loads a small alarm-installation catalog (templates, rules,
// products and one sample project) for local exploration. It is idempotent
// per category slug and refuses configuration that fails validation.
func SeedDemo(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.RequirementTemplateGroup{}).
		Where("category_slug = ?", "alarm").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	variants := []models.RequirementTemplateVariant{
		{CategorySlug: "alarm", Slug: "standard", Label: "Installation standard"},
		{CategorySlug: "alarm", Slug: "custom", Label: "Installation sur mesure"},
	}

	group := models.RequirementTemplateGroup{
		CategorySlug: "alarm", VariantSlug: "standard", Name: "Besoins alarme",
		Rows: []models.RequirementTemplateRow{
			{Position: 0, FieldID: "area", Label: "Surface (m2)",
				FieldType: models.FieldTypeNumber},
			{Position: 1, FieldID: "floors", Label: "Niveaux",
				FieldType: models.FieldTypeNumber, DefaultValue: strPtr("1")},
			{Position: 2, FieldID: "hasAlarm", Label: "Alarme existante",
				FieldType: models.FieldTypeBoolean, DefaultValue: strPtr("false")},
			{Position: 3, FieldID: "entry", Label: "Type d'accès",
				FieldType: models.FieldTypeSelect,
				Options:   models.StringList{"porte", "porte+garage"},
				DefaultValue: strPtr("porte")},
			{Position: 4, FieldID: "cableLength", Label: "Longueur de câble (m)",
				FieldType: models.FieldTypeNumber,
				Formula:   &models.FormulaConfig{BaseFieldID: "area", MultiplyBy: f64Ptr(1.5)}},
		},
	}
	if v := validation.TemplateGroup(&group); !v.Empty() {
		return fmt.Errorf("seed template group: %w", v)
	}

	rules := []models.OfferGenerationRule{
		{CategorySlug: "alarm", VariantSlug: "standard", Position: 0,
			Label: "Détecteurs de mouvement", TargetProductCategorySlug: "sensor",
			QuantityExpression: "area / 25 < 1 ? 1 : area / 25",
			SelectionMode:      models.SelectionModeAutoFirst},
		{CategorySlug: "alarm", VariantSlug: "standard", Position: 1,
			Label: "Sirène", TargetProductCategorySlug: "siren",
			ConditionExpression: "hasAlarm == false",
			QuantityExpression:  "floors",
			SelectionMode:       models.SelectionModeAutoFirst},
		{CategorySlug: "alarm", VariantSlug: "standard", Position: 2,
			Label: "Câblage", TargetProductCategorySlug: "cable",
			QuantityExpression: "cableLength",
			SelectionMode:      models.SelectionModeAutoFirst},
		{CategorySlug: "alarm", VariantSlug: "standard", Position: 3,
			Label: "Centrale", TargetProductCategorySlug: "panel",
			QuantityExpression: "1",
			SelectionMode:      models.SelectionModeManual},
	}
	for i := range rules {
		if v := validation.GenerationRule(&rules[i]); !v.Empty() {
			return fmt.Errorf("seed rule %q: %w", rules[i].Label, v)
		}
	}

	categories := []models.ProductCategory{
		{Slug: "sensor", Name: "Détecteurs"},
		{Slug: "siren", Name: "Sirènes"},
		{Slug: "cable", Name: "Câblage"},
		{Slug: "panel", Name: "Centrales"},
	}
	products := []models.Product{
		{CategorySlug: "sensor", Code: "SEN-STD", Name: "Détecteur IR standard", UnitPrice: 35, VATRate: 0.2},
		{CategorySlug: "sensor", Code: "SEN-PET", Name: "Détecteur IR animaux", UnitPrice: 49, VATRate: 0.2},
		{CategorySlug: "siren", Code: "SIR-INT", Name: "Sirène intérieure", UnitPrice: 59, VATRate: 0.2},
		{CategorySlug: "cable", Code: "CAB-6", Name: "Câble 6/10 (m)", UnitPrice: 0.8, VATRate: 0.2},
		{CategorySlug: "panel", Code: "PAN-4Z", Name: "Centrale 4 zones", UnitPrice: 189, VATRate: 0.2},
		{CategorySlug: "panel", Code: "PAN-8Z", Name: "Centrale 8 zones", UnitPrice: 249, VATRate: 0.2},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, batch := range []interface{}{&variants, &group, &rules, &categories, &products} {
			if err := tx.Create(batch).Error; err != nil {
				return err
			}
		}
		project := models.Project{
			Name: "Maison témoin",
			Selections: []models.ProjectSelection{
				{CategorySlug: "alarm", VariantSlug: "standard"},
			},
		}
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		area := group.Rows[0].ID
		req := models.ProjectRequirement{
			ProjectID: project.ID, TemplateRowID: &area,
			Label: "Surface (m2)", CategorySlug: "alarm", Value: "120",
		}
		return tx.Create(&req).Error
	})
}
