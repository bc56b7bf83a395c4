package validation

import (
	"testing"

	"github.com/diewo77/offer-engine/internal/models"
)

func strPtr(s string) *string { return &s }

func TestBasicValidators(t *testing.T) {
	v := Violations{}
	Required("name", "  ", v)
	PositiveFloat("price", 0, v)
	RangeFloat("rate", 1.5, 0, 1, v)
	if v["name"] != "required" || v["price"] != "must_be_positive" || v["rate"] != "out_of_range" {
		t.Fatalf("unexpected violations: %v", v)
	}
	if (Violations{}).Empty() != true || v.Empty() {
		t.Fatalf("Empty() wrong")
	}
}

func TestTemplateGroupValid(t *testing.T) {
	g := &models.RequirementTemplateGroup{
		CategorySlug: "alarm", VariantSlug: "standard",
		Rows: []models.RequirementTemplateRow{
			{FieldID: "area", Label: "Surface", FieldType: models.FieldTypeNumber},
			{FieldID: "kind", Label: "Kind", FieldType: models.FieldTypeSelect,
				Options: models.StringList{"standard", "custom"}, DefaultValue: strPtr("standard")},
			{FieldID: "cable", Label: "Cable", FieldType: models.FieldTypeNumber,
				Formula: &models.FormulaConfig{BaseFieldID: "area"}},
			{FieldID: "reserve", Label: "Reserve", FieldType: models.FieldTypeNumber,
				Formula: &models.FormulaConfig{BaseFieldID: "cable"}},
		},
	}
	if v := TemplateGroup(g); !v.Empty() {
		t.Fatalf("expected valid group, got %v", v)
	}
}

func TestTemplateGroupViolations(t *testing.T) {
	g := &models.RequirementTemplateGroup{
		CategorySlug: "alarm", VariantSlug: "standard",
		Rows: []models.RequirementTemplateRow{
			{FieldID: "area", Label: "Surface", FieldType: models.FieldTypeNumber},
			{FieldID: "area", Label: "Duplicate", FieldType: models.FieldTypeNumber},
			{FieldID: "kind", Label: "Kind", FieldType: models.FieldTypeSelect,
				DefaultValue: strPtr("standard")},
			{FieldID: "color", Label: "Color", FieldType: models.FieldTypeSelect,
				Options: models.StringList{"white"}, DefaultValue: strPtr("black")},
			{FieldID: "weird", Label: "Weird", FieldType: "date"},
			{FieldID: "self", Label: "Self", FieldType: models.FieldTypeNumber,
				Formula: &models.FormulaConfig{BaseFieldID: "self"}},
			{FieldID: "fwd", Label: "Forward", FieldType: models.FieldTypeNumber,
				Formula: &models.FormulaConfig{BaseFieldID: "afterwards"}},
			{FieldID: "afterwards", Label: "Afterwards", FieldType: models.FieldTypeNumber},
		},
	}
	v := TemplateGroup(g)
	want := map[string]string{
		"rows[1].fieldId":             "duplicate",
		"rows[2].options":             "required",
		"rows[3].defaultValue":        "not_in_options",
		"rows[4].fieldType":           "unknown",
		"rows[5].formula.baseFieldId": "self_reference",
		"rows[6].formula.baseFieldId": "forward_or_non_numeric_reference",
	}
	for field, reason := range want {
		if v[field] != reason {
			t.Fatalf("expected %s=%s, got %v", field, reason, v)
		}
	}
}

func TestGenerationRule(t *testing.T) {
	ok := &models.OfferGenerationRule{
		Label: "Sensors", TargetProductCategorySlug: "sensor",
		ConditionExpression: "hasAlarm == false",
		QuantityExpression:  "area / 10",
		SelectionMode:       models.SelectionModeAutoFirst,
	}
	if v := GenerationRule(ok); !v.Empty() {
		t.Fatalf("expected valid rule, got %v", v)
	}

	bad := &models.OfferGenerationRule{
		ConditionExpression: "area >",
		QuantityExpression:  "",
		SelectionMode:       "roulette",
	}
	v := GenerationRule(bad)
	if v["quantityExpression"] != "required" {
		t.Fatalf("missing quantity expression not flagged: %v", v)
	}
	if v["conditionExpression"] != "malformed" {
		t.Fatalf("malformed condition not flagged: %v", v)
	}
	if v["productSelectionMode"] != "unknown" {
		t.Fatalf("unknown mode not flagged: %v", v)
	}

	bad2 := &models.OfferGenerationRule{
		Label: "X", TargetProductCategorySlug: "sensor",
		QuantityExpression: "1 +",
	}
	if v := GenerationRule(bad2); v["quantityExpression"] != "malformed" {
		t.Fatalf("malformed quantity not flagged: %v", v)
	}
}
