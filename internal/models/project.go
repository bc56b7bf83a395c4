package models

import "time"

// Project owns its captured requirements exclusively; its selections decide
// which templates and generation rules are in play.
type Project struct {
	ID           uint                 `gorm:"primaryKey"`
	Name         string               `gorm:"not null"`
	Requirements []ProjectRequirement `gorm:"foreignKey:ProjectID"`
	Selections   []ProjectSelection   `gorm:"foreignKey:ProjectID"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProjectRequirement is the project's captured answer to one template row.
// Created when a project adopts a category/variant template, mutated on user
// edit or formula recompute, removed when the pair is detached.
type ProjectRequirement struct {
	ID        uint `gorm:"primaryKey"`
	ProjectID uint `gorm:"not null;index"`
	// TemplateRowID links back to the originating template row; nil for
	// ad-hoc entries that no template produced.
	TemplateRowID *uint  `gorm:"index"`
	Label         string `gorm:"not null"`
	CategorySlug  string `gorm:"size:64;not null"`
	// Value is the answer stringified per the row's field type.
	Value string
	// Formula, when set, overrides the template row's formula config.
	Formula             *FormulaConfig `gorm:"type:json"`
	ProductCategorySlug *string        `gorm:"size:64"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ProjectSelection records that the project opted into one (category, variant)
// pair; the set of selections is the generator's work list.
type ProjectSelection struct {
	ID           uint   `gorm:"primaryKey"`
	ProjectID    uint   `gorm:"not null;index:idx_selection,unique,priority:1"`
	CategorySlug string `gorm:"size:64;not null;index:idx_selection,unique,priority:2"`
	VariantSlug  string `gorm:"size:64;not null;index:idx_selection,unique,priority:3"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RequirementByRow returns the captured requirement for a template row, or nil.
func (p *Project) RequirementByRow(rowID uint) *ProjectRequirement {
	for i := range p.Requirements {
		if p.Requirements[i].TemplateRowID != nil && *p.Requirements[i].TemplateRowID == rowID {
			return &p.Requirements[i]
		}
	}
	return nil
}
