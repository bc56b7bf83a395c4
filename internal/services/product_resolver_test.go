package services

import (
	"context"
	"errors"
	"testing"

	"github.com/diewo77/offer-engine/internal/models"
)

func TestResolveAutoFirstPicksCatalogHead(t *testing.T) {
	catalog := fakePriceList{"sensor": {
		{ID: 1, Code: "A", Name: "Sensor A", UnitPrice: 30},
		{ID: 2, Code: "B", Name: "Sensor B", UnitPrice: 20},
	}}
	r := NewProductResolver(catalog)

	for i := 0; i < 3; i++ {
		res, err := r.Resolve(context.Background(), "sensor", models.SelectionModeAutoFirst)
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if res.Product == nil || res.Product.Code != "A" {
			t.Fatalf("auto-first must always pick the catalog head, got %+v", res)
		}
	}
}

func TestResolveAutoFirstEmptyCategory(t *testing.T) {
	r := NewProductResolver(fakePriceList{})
	_, err := r.Resolve(context.Background(), "sensor", models.SelectionModeAutoFirst)
	if !errors.Is(err, ErrNoCandidateProduct) {
		t.Fatalf("expected ErrNoCandidateProduct, got %v", err)
	}
	var nce *NoCandidateProductError
	if !errors.As(err, &nce) || nce.CategorySlug != "sensor" {
		t.Fatalf("expected category in error, got %v", err)
	}
}

func TestResolveManualNeverFails(t *testing.T) {
	// even an empty catalog is fine in manual mode
	r := NewProductResolver(fakePriceList{})
	res, err := r.Resolve(context.Background(), "sensor", models.SelectionModeManual)
	if err != nil {
		t.Fatalf("manual mode must not fail: %v", err)
	}
	if !res.ManualSelectionRequired || res.Product != nil {
		t.Fatalf("expected manual-selection placeholder, got %+v", res)
	}
}

func TestResolveUnknownMode(t *testing.T) {
	r := NewProductResolver(fakePriceList{})
	if _, err := r.Resolve(context.Background(), "sensor", "roulette"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
