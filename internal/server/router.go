package server

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/offer-engine/internal/catalog"
	"github.com/diewo77/offer-engine/internal/handlers"
	"github.com/diewo77/offer-engine/internal/httpx"
	"github.com/diewo77/offer-engine/internal/services"
)

// New constructs the root http.Handler with the engine wired to its
// gorm-backed collaborators.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	templates := catalog.NewTemplateStore(db)
	rules := catalog.NewRuleStore(db)
	priceList := catalog.NewPriceListStore(db)
	selections := catalog.NewSelectionStore(db)
	generator := services.NewOfferDraftGenerator(
		selections,
		rules,
		services.NewRequirementResolver(templates),
		services.NewProductResolver(priceList),
	)

	// --- Health endpoints ---
	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		// Perform a lightweight DB check (SELECT 1) – ignore detailed errors in body
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	oh := handlers.NewOfferHandler(db, generator)
	mux.HandleFunc("/projects/", oh.Generate)

	ch := handlers.NewCatalogHandler(priceList, templates)
	mux.HandleFunc("/price-list", ch.PriceList)
	mux.HandleFunc("/template-variants", ch.Variants)

	return mux
}
