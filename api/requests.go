package api

// ──────────────────────────────────────────────────
// Category requests
// ──────────────────────────────────────────────────

// ListCategoriesRequest has no parameters; the subject comes from the
// user-id header.
type ListCategoriesRequest struct{}

// ListDocumentsRequest is the path parameter for listing documents.
type ListDocumentsRequest struct {
	CategoryID string `path:"categoryId" description:"Category ID"`
}

// CreateDocumentRequest is the body for creating a document.
type CreateDocumentRequest struct {
	Name    string `json:"name" description:"Document name"`
	Content string `json:"content,omitempty" description:"Document content"`
}

// AddMemberRequest is the body for granting a role on a category.
type AddMemberRequest struct {
	UserID string `json:"userId" description:"User to grant the role to"`
	Role   string `json:"role" description:"Role name (case-insensitive first letter)"`
}

// ──────────────────────────────────────────────────
// Document requests
// ──────────────────────────────────────────────────

// GetDocumentRequest is the path parameter for fetching a document.
type GetDocumentRequest struct {
	DocumentID string `path:"documentId" description:"Document ID"`
}

// UpdateDocumentRequest is the body for a partial document update.
// Omitted fields keep their stored values.
type UpdateDocumentRequest struct {
	Name    *string `json:"name,omitempty" description:"New document name"`
	Content *string `json:"content,omitempty" description:"New document content"`
}

// ──────────────────────────────────────────────────
// Authorization requests
// ──────────────────────────────────────────────────

// CheckRequest is the body for a single authorization check.
type CheckRequest struct {
	Action   string `json:"action" description:"Action name"`
	Resource string `json:"resource" description:"Resource name as Type:id"`
}

// BulkCheckRequest contains multiple checks for one subject.
type BulkCheckRequest struct {
	Checks []CheckRequest `json:"checks" description:"List of authorization checks"`
}
