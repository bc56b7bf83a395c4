package models

import "time"

// SelectionMode decides how a rule's target product is picked.
type SelectionMode string

const (
	// SelectionModeAutoFirst picks the first catalog product of the target
	// category (catalog insertion order).
	SelectionModeAutoFirst SelectionMode = "auto-first"
	// SelectionModeManual always leaves the line item unresolved for a human.
	SelectionModeManual SelectionMode = "manual"
)

// Valid reports whether m is a known selection mode.
func (m SelectionMode) Valid() bool {
	return m == SelectionModeAutoFirst || m == SelectionModeManual
}

// OfferGenerationRule maps a requirement context to a candidate offer line:
// when its condition holds, the quantity expression is evaluated against the
// resolved environment and a product is taken from the target category.
// Rules are shared read-only configuration like templates.
type OfferGenerationRule struct {
	ID           uint   `gorm:"primaryKey"`
	CategorySlug string `gorm:"size:64;not null;index:idx_rule_pair,priority:1"`
	VariantSlug  string `gorm:"size:64;not null;index:idx_rule_pair,priority:2"`
	// Position fixes declaration order; draft line items are emitted in
	// (category, variant, position) order.
	Position                  int    `gorm:"not null;default:0"`
	Label                     string `gorm:"not null"`
	TargetProductCategorySlug string `gorm:"size:64;not null"`
	// ConditionExpression gates the rule; empty means always active.
	ConditionExpression string
	// QuantityExpression is required and must evaluate to a non-negative
	// number.
	QuantityExpression string        `gorm:"not null"`
	SelectionMode      SelectionMode `gorm:"size:16;not null;default:'auto-first'"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
