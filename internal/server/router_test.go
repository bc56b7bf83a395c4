package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/offer-engine/internal/db"
	"github.com/diewo77/offer-engine/internal/models"
)

func setupTestServer(t *testing.T, name string) (*gorm.DB, http.Handler) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.SeedDemo(conn); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return conn, New(conn)
}

type draftResponseBody struct {
	LineItems []struct {
		RuleID               uint    `json:"ruleId"`
		ProductCategorySlug  string  `json:"productCategorySlug"`
		ProductCode          string  `json:"productCode"`
		Quantity             float64 `json:"quantity"`
		NeedsManualSelection bool    `json:"needsManualSelection"`
		Explanation          string  `json:"explanation"`
	} `json:"lineItems"`
	Diagnostics []struct {
		Kind string `json:"kind"`
		Text string `json:"text"`
	} `json:"diagnostics"`
	Totals struct {
		Net   float64 `json:"net"`
		Tax   float64 `json:"tax"`
		Gross float64 `json:"gross"`
	} `json:"totals"`
}

func demoProjectID(t *testing.T, conn *gorm.DB) uint {
	t.Helper()
	var project models.Project
	if err := conn.Where("name = ?", "Maison témoin").First(&project).Error; err != nil {
		t.Fatalf("load demo project: %v", err)
	}
	return project.ID
}

func TestHealthEndpoints(t *testing.T) {
	_, h := setupTestServer(t, t.Name())
	for _, path := range []string{"/health", "/healthz"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d", path, rec.Code)
		}
	}
}

func TestOfferDraftEndToEnd(t *testing.T) {
	conn, h := setupTestServer(t, t.Name())
	url := fmt.Sprintf("/projects/%d/offer-draft", demoProjectID(t, conn))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, url, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var resp draftResponseBody
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", resp.Diagnostics)
	}
	// demo catalog emits sensors, siren, cable and the manual panel, in rule order
	if len(resp.LineItems) != 4 {
		t.Fatalf("expected 4 line items, got %d", len(resp.LineItems))
	}
	if resp.LineItems[0].ProductCategorySlug != "sensor" || resp.LineItems[0].Quantity != 4.8 {
		t.Fatalf("sensor item wrong: %+v", resp.LineItems[0])
	}
	if resp.LineItems[0].ProductCode != "SEN-STD" {
		t.Fatalf("auto-first must pick the first sensor: %+v", resp.LineItems[0])
	}
	last := resp.LineItems[3]
	if last.ProductCategorySlug != "panel" || !last.NeedsManualSelection {
		t.Fatalf("panel item must await manual selection: %+v", last)
	}
	if resp.Totals.Gross <= resp.Totals.Net || resp.Totals.Net <= 0 {
		t.Fatalf("totals implausible: %+v", resp.Totals)
	}

	// generation is idempotent at the wire level
	rec2 := httptest.NewRecorder()
	h.ServeHTTP(rec2, httptest.NewRequest(http.MethodPost, url, nil))
	if !bytes.Equal(rec.Body.Bytes(), rec2.Body.Bytes()) {
		t.Fatalf("responses differ between identical calls")
	}
}

func TestOfferDraftLocalizedDiagnostics(t *testing.T) {
	conn, h := setupTestServer(t, t.Name())
	projectID := demoProjectID(t, conn)
	// opt the project into a variant that has no template group
	sel := models.ProjectSelection{ProjectID: projectID, CategorySlug: "alarm", VariantSlug: "custom"}
	if err := conn.Create(&sel).Error; err != nil {
		t.Fatalf("add selection: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/projects/%d/offer-draft", projectID), nil)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp draftResponseBody
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Diagnostics) != 1 || resp.Diagnostics[0].Kind != "not_found" {
		t.Fatalf("expected one not_found diagnostic, got %+v", resp.Diagnostics)
	}
	if resp.Diagnostics[0].Text != "Template or rules missing for this selection" {
		t.Fatalf("diagnostic not localized to en: %q", resp.Diagnostics[0].Text)
	}
	// the valid pair still produced its items
	if len(resp.LineItems) != 4 {
		t.Fatalf("expected 4 line items despite broken pair, got %d", len(resp.LineItems))
	}
}

func TestOfferDraftErrors(t *testing.T) {
	_, h := setupTestServer(t, t.Name())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/projects/9999/offer-draft", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown project: status %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/projects/1/offer-draft", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET: status %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/projects/abc/offer-draft", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("non-numeric id: status %d", rec.Code)
	}
}

func TestPriceListEndpoint(t *testing.T) {
	_, h := setupTestServer(t, t.Name())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/price-list?category=panel", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var resp struct {
		Items []models.Product `json:"items"`
		Total int              `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 2 || resp.Items[0].Code != "PAN-4Z" {
		t.Fatalf("expected both panels in insertion order, got %+v", resp)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/price-list", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing category: status %d", rec.Code)
	}
}

func TestTemplateVariantsEndpoint(t *testing.T) {
	_, h := setupTestServer(t, t.Name())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/template-variants?category=alarm", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var resp struct {
		Items []models.RequirementTemplateVariant `json:"items"`
		Total int                                 `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 2 || resp.Items[0].Slug != "standard" {
		t.Fatalf("variants wrong: %+v", resp)
	}
}
