package api

import (
	"github.com/permitio/docgate/docs"
	"github.com/permitio/docgate/document"
)

// ListCategoriesResponse wraps the categories visible to the subject.
type ListCategoriesResponse struct {
	Categories []*docs.CategoryView `json:"categories"`
}

// ListDocumentsResponse wraps the documents in a category.
type ListDocumentsResponse struct {
	Documents []*document.Document `json:"documents"`
}

// CheckResponse is the result of a single authorization check.
type CheckResponse struct {
	Action   string `json:"action"`
	Resource string `json:"resource"`
	Allowed  bool   `json:"allowed"`
}

// BulkCheckResponse holds per-check results in request order.
type BulkCheckResponse struct {
	Results []CheckResponse `json:"results"`
}

// MemberResponse confirms a role grant.
type MemberResponse struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}
