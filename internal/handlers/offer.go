package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"gorm.io/gorm"

	"github.com/diewo77/offer-engine/internal/httpx"
	"github.com/diewo77/offer-engine/internal/i18n"
	"github.com/diewo77/offer-engine/internal/models"
	"github.com/diewo77/offer-engine/internal/services"
)

var offerDraftPath = regexp.MustCompile(`^/projects/(\d+)/offer-draft$`)

// OfferHandler exposes draft generation over HTTP. The draft is returned to
// the caller, never persisted here.
type OfferHandler struct {
	DB  *gorm.DB
	Gen *services.OfferDraftGenerator
}

func NewOfferHandler(db *gorm.DB, gen *services.OfferDraftGenerator) *OfferHandler {
	return &OfferHandler{DB: db, Gen: gen}
}

// diagnosticView pairs the stable diagnostic code with its localized text.
type diagnosticView struct {
	services.Diagnostic
	Text string `json:"text"`
}

type draftResponse struct {
	LineItems   []services.DraftLineItem `json:"lineItems"`
	Diagnostics []diagnosticView         `json:"diagnostics"`
	Totals      services.DraftTotals     `json:"totals"`
}

// Generate: POST /projects/{id}/offer-draft
func (h *OfferHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	m := offerDraftPath.FindStringSubmatch(r.URL.Path)
	if m == nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	id, err := strconv.ParseUint(m[1], 10, 32)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_project_id", nil)
		return
	}

	var project models.Project
	if err := h.DB.WithContext(r.Context()).
		Preload("Requirements").
		Preload("Selections").
		First(&project, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "project_not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_project", nil)
		return
	}

	draft, err := h.Gen.Generate(r.Context(), &project)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "generation_failed", nil)
		return
	}

	lang := i18n.DetectLanguage(r.Header.Get("Accept-Language"))
	resp := draftResponse{
		LineItems:   draft.LineItems,
		Diagnostics: make([]diagnosticView, 0, len(draft.Diagnostics)),
		Totals:      draft.Totals,
	}
	for _, d := range draft.Diagnostics {
		resp.Diagnostics = append(resp.Diagnostics, diagnosticView{
			Diagnostic: d,
			Text:       i18n.T(lang, string(d.Kind)),
		})
	}
	httpx.JSON(w, http.StatusOK, resp)
}
