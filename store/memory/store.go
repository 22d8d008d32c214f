// Package memory provides an in-memory implementation of the docgate
// composite store. Categories and documents are mock data: the process
// starts from a fixed seed and a restart resets everything.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/permitio/docgate"
	"github.com/permitio/docgate/category"
	"github.com/permitio/docgate/decision"
	"github.com/permitio/docgate/document"
	"github.com/permitio/docgate/id"
	"github.com/permitio/docgate/store"
)

// Compile-time interface checks.
var (
	_ category.Store = (*Store)(nil)
	_ document.Store = (*Store)(nil)
	_ decision.Store = (*Store)(nil)
	_ store.Store    = (*Store)(nil)
)

// Store is a thread-safe in-memory store for all docgate entities.
type Store struct {
	mu sync.RWMutex

	categories map[string]*category.Category
	documents  map[string]*document.Document
	decisions  map[string]*decision.Entry
}

// New creates a new empty in-memory store.
func New() *Store {
	return &Store{
		categories: make(map[string]*category.Category),
		documents:  make(map[string]*document.Document),
		decisions:  make(map[string]*decision.Entry),
	}
}

// NewSeeded creates an in-memory store populated with the demo data set:
// finance and hr categories, two finance documents, and one hr document.
func NewSeeded() *Store {
	s := New()
	s.categories["finance"] = &category.Category{ID: "finance", Name: "Finance Documents"}
	s.categories["hr"] = &category.Category{ID: "hr", Name: "HR Documents"}
	s.documents["budget_report"] = &document.Document{
		ID:         "budget_report",
		Name:       "Budget Report 2024",
		CategoryID: "finance",
		Content:    "Budget details here...",
	}
	s.documents["marketing_expense"] = &document.Document{
		ID:         "marketing_expense",
		Name:       "Marketing Expenses Q1",
		CategoryID: "finance",
		Content:    "Marketing expense details...",
	}
	s.documents["salary_report"] = &document.Document{
		ID:         "salary_report",
		Name:       "Employee Salaries",
		CategoryID: "hr",
		Content:    "Salary information...",
	}
	return s
}

// Migrate is a no-op for the memory store.
func (s *Store) Migrate(_ context.Context) error { return nil }

// Ping is a no-op for the memory store.
func (s *Store) Ping(_ context.Context) error { return nil }

// Close is a no-op for the memory store.
func (s *Store) Close() error { return nil }

// ──────────────────────────────────────────────────
// Category store
// ──────────────────────────────────────────────────

func (s *Store) GetCategory(_ context.Context, categoryID string) (*category.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[categoryID]
	if !ok {
		return nil, fmt.Errorf("category %q: %w", categoryID, docgate.ErrCategoryNotFound)
	}
	return copyCategory(c), nil
}

func (s *Store) ListCategories(_ context.Context) ([]*category.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*category.Category, 0, len(s.categories))
	for _, c := range s.categories {
		result = append(result, copyCategory(c))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ──────────────────────────────────────────────────
// Document store
// ──────────────────────────────────────────────────

func (s *Store) GetDocument(_ context.Context, documentID string) (*document.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.documents[documentID]
	if !ok {
		return nil, fmt.Errorf("document %q: %w", documentID, docgate.ErrDocumentNotFound)
	}
	return copyDocument(d), nil
}

func (s *Store) ListDocumentsByCategory(_ context.Context, categoryID string) ([]*document.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*document.Document, 0)
	for _, d := range s.documents {
		if d.CategoryID == categoryID {
			result = append(result, copyDocument(d))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) CountDocumentsByCategory(_ context.Context, categoryID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, d := range s.documents {
		if d.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (s *Store) CreateDocument(_ context.Context, d *document.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[d.CategoryID]; !ok {
		return fmt.Errorf("category %q: %w", d.CategoryID, docgate.ErrCategoryNotFound)
	}
	s.documents[d.ID] = copyDocument(d)
	return nil
}

func (s *Store) UpdateDocument(_ context.Context, documentID string, u *document.Update) (*document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.documents[documentID]
	if !ok {
		return nil, fmt.Errorf("document %q: %w", documentID, docgate.ErrDocumentNotFound)
	}
	updated := copyDocument(d)
	u.Apply(updated)
	s.documents[documentID] = updated
	return copyDocument(updated), nil
}

// ──────────────────────────────────────────────────
// Decision store
// ──────────────────────────────────────────────────

func (s *Store) RecordDecision(_ context.Context, e *decision.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	s.decisions[e.ID.String()] = copyDecision(e)
	return nil
}

func (s *Store) GetDecision(_ context.Context, decisionID id.DecisionID) (*decision.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.decisions[decisionID.String()]
	if !ok {
		return nil, fmt.Errorf("decision %s: not found", decisionID)
	}
	return copyDecision(e), nil
}

func (s *Store) ListDecisions(_ context.Context, filter *decision.QueryFilter) ([]*decision.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*decision.Entry, 0, len(s.decisions))
	for _, e := range s.decisions {
		if !matchDecision(e, filter) {
			continue
		}
		result = append(result, copyDecision(e))
	}
	// Newest first; IDs break ties for stable ordering.
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID.String() > result[j].ID.String()
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return applyPagination(result, filter), nil
}

func (s *Store) CountDecisions(ctx context.Context, filter *decision.QueryFilter) (int64, error) {
	var unpaged *decision.QueryFilter
	if filter != nil {
		f := *filter
		f.Limit = 0
		f.Offset = 0
		unpaged = &f
	}
	list, err := s.ListDecisions(ctx, unpaged)
	if err != nil {
		return 0, err
	}
	return int64(len(list)), nil
}

func (s *Store) PurgeDecisions(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var purged int64
	for k, e := range s.decisions {
		if e.CreatedAt.Before(before) {
			delete(s.decisions, k)
			purged++
		}
	}
	return purged, nil
}

func matchDecision(e *decision.Entry, filter *decision.QueryFilter) bool {
	if filter == nil {
		return true
	}
	if filter.SubjectKind != "" && e.SubjectKind != filter.SubjectKind {
		return false
	}
	if filter.SubjectID != "" && e.SubjectID != filter.SubjectID {
		return false
	}
	if filter.Action != "" && e.Action != filter.Action {
		return false
	}
	if filter.ResourceType != "" && e.ResourceType != filter.ResourceType {
		return false
	}
	if filter.ResourceID != "" && e.ResourceID != filter.ResourceID {
		return false
	}
	if filter.Decision != "" && e.Decision != filter.Decision {
		return false
	}
	if filter.After != nil && e.CreatedAt.Before(*filter.After) {
		return false
	}
	if filter.Before != nil && e.CreatedAt.After(*filter.Before) {
		return false
	}
	return true
}

func applyPagination(entries []*decision.Entry, filter *decision.QueryFilter) []*decision.Entry {
	if filter == nil {
		return entries
	}
	offset := filter.Offset
	if offset > len(entries) {
		return nil
	}
	entries = entries[offset:]
	if filter.Limit > 0 && filter.Limit < len(entries) {
		entries = entries[:filter.Limit]
	}
	return entries
}

// Copy helpers keep callers from mutating shared state.

func copyCategory(c *category.Category) *category.Category {
	cp := *c
	return &cp
}

func copyDocument(d *document.Document) *document.Document {
	cp := *d
	return &cp
}

func copyDecision(e *decision.Entry) *decision.Entry {
	cp := *e
	return &cp
}
