package document

import "context"

// Store defines persistence operations for documents.
type Store interface {
	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, documentID string) (*Document, error)

	// ListDocumentsByCategory returns all documents in a category.
	ListDocumentsByCategory(ctx context.Context, categoryID string) ([]*Document, error)

	// CountDocumentsByCategory returns the number of documents in a category.
	CountDocumentsByCategory(ctx context.Context, categoryID string) (int, error)

	// CreateDocument persists a new document.
	CreateDocument(ctx context.Context, d *Document) error

	// UpdateDocument merges the update into the stored document and returns
	// the result.
	UpdateDocument(ctx context.Context, documentID string, u *Update) (*Document, error)
}
