package db

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/offer-engine/internal/models"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func TestSeedDemo(t *testing.T) {
	conn := setupTestDB(t, t.Name())
	if err := SeedDemo(conn); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var rules int64
	if err := conn.Model(&models.OfferGenerationRule{}).Count(&rules).Error; err != nil {
		t.Fatalf("count rules: %v", err)
	}
	if rules != 4 {
		t.Fatalf("expected 4 rules, got %d", rules)
	}

	var group models.RequirementTemplateGroup
	if err := conn.Preload("Rows").Where("category_slug = ?", "alarm").First(&group).Error; err != nil {
		t.Fatalf("load group: %v", err)
	}
	if len(group.Rows) != 5 {
		t.Fatalf("expected 5 template rows, got %d", len(group.Rows))
	}

	// seeding twice must not duplicate the catalog
	if err := SeedDemo(conn); err != nil {
		t.Fatalf("re-seed: %v", err)
	}
	var groups int64
	if err := conn.Model(&models.RequirementTemplateGroup{}).Count(&groups).Error; err != nil {
		t.Fatalf("count groups: %v", err)
	}
	if groups != 1 {
		t.Fatalf("seed is not idempotent: %d groups", groups)
	}
}
