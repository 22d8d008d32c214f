package decision

import (
	"context"
	"time"

	"github.com/permitio/docgate/id"
)

// Store defines persistence operations for the decision audit log.
type Store interface {
	// RecordDecision persists a new decision entry.
	RecordDecision(ctx context.Context, e *Entry) error

	// GetDecision retrieves a decision entry by ID.
	GetDecision(ctx context.Context, decisionID id.DecisionID) (*Entry, error)

	// ListDecisions returns decision entries matching the filter, newest
	// first.
	ListDecisions(ctx context.Context, filter *QueryFilter) ([]*Entry, error)

	// CountDecisions returns the number of entries matching the filter.
	CountDecisions(ctx context.Context, filter *QueryFilter) (int64, error)

	// PurgeDecisions removes entries older than the given time.
	PurgeDecisions(ctx context.Context, before time.Time) (int64, error)
}
