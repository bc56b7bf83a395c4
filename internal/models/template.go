package models

import "time"

// Requirement template models. Templates are shared configuration owned by the
// back office: the engine looks them up by (category, variant) slug pair and
// never mutates them.

// FieldType enumerates the input kinds a template row can capture.
type FieldType string

const (
	FieldTypeNumber  FieldType = "number"
	FieldTypeText    FieldType = "text"
	FieldTypeSelect  FieldType = "select"
	FieldTypeBoolean FieldType = "boolean"
)

// Valid reports whether ft is one of the known field types.
func (ft FieldType) Valid() bool {
	switch ft {
	case FieldTypeNumber, FieldTypeText, FieldTypeSelect, FieldTypeBoolean:
		return true
	}
	return false
}

// RequirementTemplateVariant partitions a category's templates
// (ex: "standard" vs "custom" installation).
type RequirementTemplateVariant struct {
	ID           uint   `gorm:"primaryKey"`
	CategorySlug string `gorm:"size:64;not null;index:idx_variant_pair,unique,priority:1"`
	Slug         string `gorm:"size:64;not null;index:idx_variant_pair,unique,priority:2"`
	Label        string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RequirementTemplateGroup is a named, ordered sequence of rows scoped to one
// (category, variant) pair.
type RequirementTemplateGroup struct {
	ID           uint                     `gorm:"primaryKey"`
	CategorySlug string                   `gorm:"size:64;not null;index:idx_group_pair,unique,priority:1"`
	VariantSlug  string                   `gorm:"size:64;not null;index:idx_group_pair,unique,priority:2"`
	Name         string                   `gorm:"not null"`
	Position     int                      `gorm:"not null;default:0"`
	Rows         []RequirementTemplateRow `gorm:"foreignKey:GroupID"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RequirementTemplateRow defines one input field. FieldID is the stable slug
// rows are addressed by inside expressions; Position fixes evaluation order
// within the group.
type RequirementTemplateRow struct {
	ID      uint `gorm:"primaryKey"`
	GroupID uint `gorm:"not null;index"`
	// Position drives declaration order; formula rows may only reference
	// fields declared at a lower position.
	Position  int        `gorm:"not null;default:0"`
	FieldID   string     `gorm:"size:64;not null"`
	Label     string     `gorm:"not null"`
	FieldType FieldType  `gorm:"size:16;not null"`
	Options   StringList `gorm:"type:json"` // select choices; empty otherwise
	// DefaultValue is used when the project captured no answer for this row.
	DefaultValue *string
	// ProductCategorySlug marks a product-need row: its answer targets this
	// price-list category.
	ProductCategorySlug *string `gorm:"size:64"`
	// Formula derives the row's effective value instead of free input.
	Formula   *FormulaConfig `gorm:"type:json"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasFormula reports whether the row's value is derived rather than captured.
func (r *RequirementTemplateRow) HasFormula() bool {
	return r.Formula != nil && r.Formula.BaseFieldID != ""
}
