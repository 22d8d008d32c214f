// Package mongo persists the decision audit log in MongoDB via the grove
// mongodriver.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongod "go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	"github.com/permitio/docgate/decision"
	"github.com/permitio/docgate/id"
)

const colDecisions = "docgate_decisions"

// Compile-time interface check.
var _ decision.Store = (*Store)(nil)

// Store is a MongoDB implementation of the decision log store.
type Store struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB decision store backed by grove.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// Migrate creates indexes for the decision collection.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := []mongod.IndexModel{
		{Keys: bson.D{{Key: "subject_kind", Value: 1}, {Key: "subject_id", Value: 1}}},
		{Keys: bson.D{{Key: "resource_type", Value: 1}, {Key: "resource_id", Value: 1}}},
		{Keys: bson.D{{Key: "decision", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	_, err := s.mdb.Collection(colDecisions).Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("docgate/mongo: migrate %s indexes: %w", colDecisions, err)
	}
	return nil
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) RecordDecision(ctx context.Context, e *decision.Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	m := decisionToModel(e)
	if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
		return fmt.Errorf("docgate: record decision: %w", err)
	}
	return nil
}

func (s *Store) GetDecision(ctx context.Context, decisionID id.DecisionID) (*decision.Entry, error) {
	var m decisionModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": decisionID.String()}).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, mongod.ErrNoDocuments) {
			return nil, fmt.Errorf("decision %s: not found", decisionID)
		}
		return nil, fmt.Errorf("docgate: get decision: %w", err)
	}
	return decisionFromModel(&m), nil
}

func (s *Store) ListDecisions(ctx context.Context, filter *decision.QueryFilter) ([]*decision.Entry, error) {
	var models []decisionModel
	q := s.mdb.NewFind(&models).
		Filter(decisionFilter(filter)).
		Sort(bson.D{{Key: "created_at", Value: -1}})
	if filter != nil {
		if filter.Limit > 0 {
			q = q.Limit(int64(filter.Limit))
		}
		if filter.Offset > 0 {
			q = q.Skip(int64(filter.Offset))
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("docgate: list decisions: %w", err)
	}
	result := make([]*decision.Entry, len(models))
	for i := range models {
		result[i] = decisionFromModel(&models[i])
	}
	return result, nil
}

func (s *Store) CountDecisions(ctx context.Context, filter *decision.QueryFilter) (int64, error) {
	count, err := s.mdb.NewFind((*decisionModel)(nil)).
		Filter(decisionFilter(filter)).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("docgate: count decisions: %w", err)
	}
	return count, nil
}

func (s *Store) PurgeDecisions(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.mdb.NewDelete((*decisionModel)(nil)).
		Many().
		Filter(bson.M{"created_at": bson.M{"$lt": before}}).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("docgate: purge decisions: %w", err)
	}
	return res.DeletedCount(), nil
}

func decisionFilter(filter *decision.QueryFilter) bson.M {
	f := bson.M{}
	if filter == nil {
		return f
	}
	if filter.SubjectKind != "" {
		f["subject_kind"] = filter.SubjectKind
	}
	if filter.SubjectID != "" {
		f["subject_id"] = filter.SubjectID
	}
	if filter.Action != "" {
		f["action"] = filter.Action
	}
	if filter.ResourceType != "" {
		f["resource_type"] = filter.ResourceType
	}
	if filter.ResourceID != "" {
		f["resource_id"] = filter.ResourceID
	}
	if filter.Decision != "" {
		f["decision"] = filter.Decision
	}
	if filter.After != nil || filter.Before != nil {
		dateFilter := bson.M{}
		if filter.After != nil {
			dateFilter["$gte"] = *filter.After
		}
		if filter.Before != nil {
			dateFilter["$lte"] = *filter.Before
		}
		f["created_at"] = dateFilter
	}
	return f
}
