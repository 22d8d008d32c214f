// Package store defines the aggregate persistence interface. Each subsystem
// (category, document, decision) defines its own store interface; the
// composite Store composes them all. The memory backend implements the whole
// interface and is the only backend for categories and documents, which are
// mock data by design. The SQLite, Postgres, and Mongo backends persist the
// decision audit log only.
package store

import (
	"context"

	"github.com/permitio/docgate/category"
	"github.com/permitio/docgate/decision"
	"github.com/permitio/docgate/document"
)

// Store is the aggregate persistence interface.
type Store interface {
	category.Store
	document.Store
	decision.Store

	// Migrate runs all schema migrations.
	Migrate(ctx context.Context) error

	// Ping checks backend connectivity.
	Ping(ctx context.Context) error

	// Close closes the store.
	Close() error
}
