package handlers

import (
	"net/http"
	"strings"

	"github.com/diewo77/offer-engine/internal/catalog"
	"github.com/diewo77/offer-engine/internal/httpx"
	"github.com/diewo77/offer-engine/internal/services"
)

// CatalogHandler serves read-only views of the externally-owned configuration
// (price list, template variants). Authoring stays in the back office.
type CatalogHandler struct {
	Products  services.PriceList
	Templates *catalog.TemplateStore
}

func NewCatalogHandler(products services.PriceList, templates *catalog.TemplateStore) *CatalogHandler {
	return &CatalogHandler{Products: products, Templates: templates}
}

// PriceList: GET /price-list?category=slug
func (h *CatalogHandler) PriceList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_category", nil)
		return
	}
	products, err := h.Products.FindProductsByCategory(r.Context(), category)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_products", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": products, "total": len(products)})
}

// Variants: GET /template-variants?category=slug
func (h *CatalogHandler) Variants(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_category", nil)
		return
	}
	variants, err := h.Templates.ListVariants(r.Context(), category)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_variants", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": variants, "total": len(variants)})
}
