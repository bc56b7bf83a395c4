package models

import (
	"time"

	"gorm.io/gorm"
)

// Price-list catalog models. The catalog is externally managed; the engine
// only reads it, and relies on insertion order (id asc) being stable.

// ProductCategory is a lookup table naming the slugs products are tagged with.
type ProductCategory struct {
	ID        uint   `gorm:"primaryKey"`
	Slug      string `gorm:"size:64;not null;unique"`
	Name      string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Product is one priced price-list entry.
type Product struct {
	ID           uint   `gorm:"primaryKey"`
	CategorySlug string `gorm:"size:64;not null;index"`
	// Code is a human-readable unique identifier.
	Code      string  `gorm:"size:40;not null;unique"`
	Name      string  `gorm:"not null"`
	UnitPrice float64 `gorm:"not null"`
	VATRate   float64 `gorm:"not null"` // e.g. 0.20 for 20%
	Currency  string  `gorm:"not null;default:'EUR'"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
