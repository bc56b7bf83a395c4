package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by catalog lookups when no template group,
	// rule set or record matches the requested slugs.
	ErrNotFound = errors.New("not found")

	// ErrNoCandidateProduct is returned by auto-first product resolution
	// when the target category has no catalog entry.
	ErrNoCandidateProduct = errors.New("no candidate product")
)

// NoCandidateProductError carries the category that came up empty.
type NoCandidateProductError struct {
	CategorySlug string
}

func (e *NoCandidateProductError) Error() string {
	return fmt.Sprintf("no candidate product in category %q", e.CategorySlug)
}

func (e *NoCandidateProductError) Unwrap() error { return ErrNoCandidateProduct }
