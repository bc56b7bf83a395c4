package services

import (
	"context"
	"fmt"

	"github.com/diewo77/offer-engine/internal/models"
)

// ProductResolution is the outcome of resolving an abstract product need.
// Exactly one of Product and ManualSelectionRequired is set.
type ProductResolution struct {
	Product                 *models.Product
	ManualSelectionRequired bool
}

// ProductResolver turns a target product category into a concrete priced
// product via the external price-list catalog.
type ProductResolver struct {
	Catalog PriceList
}

func NewProductResolver(pl PriceList) *ProductResolver {
	return &ProductResolver{Catalog: pl}
}

// Resolve picks a product for the category according to the selection mode.
// Manual mode always succeeds with an unresolved placeholder, even on an
// empty catalog. Auto-first takes the head of the catalog's stable ordering
// and fails with ErrNoCandidateProduct when the category is empty.
func (r *ProductResolver) Resolve(ctx context.Context, productCategorySlug string, mode models.SelectionMode) (ProductResolution, error) {
	switch mode {
	case models.SelectionModeManual:
		return ProductResolution{ManualSelectionRequired: true}, nil
	case models.SelectionModeAutoFirst, "":
		// empty mode falls back to the schema default
	default:
		return ProductResolution{}, fmt.Errorf("unknown selection mode %q", mode)
	}
	products, err := r.Catalog.FindProductsByCategory(ctx, productCategorySlug)
	if err != nil {
		return ProductResolution{}, err
	}
	if len(products) == 0 {
		return ProductResolution{}, &NoCandidateProductError{CategorySlug: productCategorySlug}
	}
	p := products[0]
	return ProductResolution{Product: &p}, nil
}
