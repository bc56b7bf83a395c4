package services

import (
	"errors"

	"github.com/diewo77/offer-engine/internal/expr"
)

// Derived draft types. Nothing here is persisted by the engine; the caller
// renders the line items plus the diagnostics panel and owns any storage.

// DiagnosticKind is a stable machine-readable code; the HTTP layer localizes
// it for display.
type DiagnosticKind string

const (
	DiagnosticSkipped             DiagnosticKind = "skipped"
	DiagnosticUnboundVariable     DiagnosticKind = "unbound_variable"
	DiagnosticTypeMismatch        DiagnosticKind = "type_mismatch"
	DiagnosticNotANumber          DiagnosticKind = "not_a_number"
	DiagnosticInvalidQuantity     DiagnosticKind = "invalid_quantity"
	DiagnosticNoCandidateProduct  DiagnosticKind = "no_candidate_product"
	DiagnosticMalformedExpression DiagnosticKind = "malformed_expression"
	DiagnosticNotFound            DiagnosticKind = "not_found"
)

// Diagnostic records why a rule or pair produced no (or a degraded) line item.
// Failures are always local: one diagnostic never aborts the run.
type Diagnostic struct {
	RuleID       *uint          `json:"ruleId,omitempty"`
	CategorySlug string         `json:"categorySlug"`
	VariantSlug  string         `json:"variantSlug"`
	Kind         DiagnosticKind `json:"kind"`
	Field        string         `json:"field,omitempty"`
	Message      string         `json:"message"`
}

// DraftLineItem is one computed, not-yet-persisted offer row.
type DraftLineItem struct {
	RuleID              uint    `json:"ruleId"`
	CategorySlug        string  `json:"categorySlug"`
	VariantSlug         string  `json:"variantSlug"`
	ProductCategorySlug string  `json:"productCategorySlug"`
	Quantity            float64 `json:"quantity"`
	// ResolvedProductID is nil when NeedsManualSelection is set.
	ResolvedProductID    *uint   `json:"resolvedProductId,omitempty"`
	ProductCode          string  `json:"productCode,omitempty"`
	ProductName          string  `json:"productName,omitempty"`
	UnitPrice            float64 `json:"unitPrice,omitempty"`
	VATRate              float64 `json:"vatRate,omitempty"`
	NeedsManualSelection bool    `json:"needsManualSelection,omitempty"`
	Explanation          string  `json:"explanation"`
}

// DraftTotals aggregates resolved line items; manual-selection items
// contribute nothing until a product is assigned.
type DraftTotals struct {
	Net   float64 `json:"net"`
	Tax   float64 `json:"tax"`
	Gross float64 `json:"gross"`
}

// OfferDraft is the generator's full result.
type OfferDraft struct {
	LineItems   []DraftLineItem `json:"lineItems"`
	Diagnostics []Diagnostic    `json:"diagnostics"`
	Totals      DraftTotals     `json:"totals"`
}

// diagnosticKindForError maps an evaluation error onto its diagnostic code.
func diagnosticKindForError(err error) DiagnosticKind {
	switch {
	case errors.Is(err, expr.ErrMalformedExpression):
		return DiagnosticMalformedExpression
	case errors.Is(err, expr.ErrUnboundVariable):
		return DiagnosticUnboundVariable
	case errors.Is(err, expr.ErrTypeMismatch):
		return DiagnosticTypeMismatch
	case errors.Is(err, expr.ErrNotANumber):
		return DiagnosticNotANumber
	case errors.Is(err, ErrNoCandidateProduct):
		return DiagnosticNoCandidateProduct
	case errors.Is(err, ErrNotFound):
		return DiagnosticNotFound
	}
	return DiagnosticInvalidQuantity
}
