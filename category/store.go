package category

import "context"

// Store defines persistence operations for categories.
type Store interface {
	// GetCategory retrieves a category by ID.
	GetCategory(ctx context.Context, categoryID string) (*Category, error)

	// ListCategories returns all categories.
	ListCategories(ctx context.Context) ([]*Category, error)
}
