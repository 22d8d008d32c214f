// Package docs implements the document management operations behind the
// REST surface. Every operation resolves the target first, so a missing
// resource is reported before any authorization outcome, and enforces
// through the guard before touching state.
package docs

import (
	"context"
	"log/slog"

	"github.com/permitio/docgate"
	"github.com/permitio/docgate/decision"
	"github.com/permitio/docgate/document"
	"github.com/permitio/docgate/id"
	"github.com/permitio/docgate/store"
)

// CategoryView is a category the subject may see, with its document count.
type CategoryView struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	DocumentCount int    `json:"documentCount"`
}

// CheckItem is one action/resource pair in a bulk authorization query.
type CheckItem struct {
	Action   docgate.Action
	Resource docgate.Resource
}

// Service wires the store and the guard together.
type Service struct {
	guard  *docgate.Guard
	store  store.Store
	logger *slog.Logger
}

// ServiceOption configures the service.
type ServiceOption func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) { s.logger = logger }
}

// NewService creates a new document service.
func NewService(guard *docgate.Guard, st store.Store, opts ...ServiceOption) *Service {
	s := &Service{
		guard:  guard,
		store:  st,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListCategories returns the categories the subject may list documents in.
// Categories the subject cannot access are omitted rather than erroring, so
// a subject with no roles gets an empty list. A PDP failure aborts the
// whole listing; a partial answer would misrepresent what the subject may
// see.
func (s *Service) ListCategories(ctx context.Context, subject docgate.Subject) ([]*CategoryView, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*CategoryView, 0, len(categories))
	for _, c := range categories {
		allowed, err := s.guard.CanI(ctx, subject, docgate.ActionListDocuments, c.Resource())
		if err != nil {
			return nil, err
		}
		if !allowed {
			continue
		}
		count, err := s.store.CountDocumentsByCategory(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, &CategoryView{
			ID:            c.ID,
			Name:          c.Name,
			DocumentCount: count,
		})
	}
	return views, nil
}

// ListDocuments returns the documents in a category. The category is
// resolved before the permission check, so an unknown category is a
// not-found error even for subjects with no access at all.
func (s *Service) ListDocuments(ctx context.Context, subject docgate.Subject, categoryID string) ([]*document.Document, error) {
	c, err := s.store.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Enforce(ctx, &docgate.CheckRequest{
		Subject:  subject,
		Action:   docgate.ActionListDocuments,
		Resource: c.Resource(),
	}); err != nil {
		return nil, err
	}
	return s.store.ListDocumentsByCategory(ctx, categoryID)
}

// GetDocument returns a single document. Access is governed by the
// document's category: reading a document requires list-documents on it.
func (s *Service) GetDocument(ctx context.Context, subject docgate.Subject, documentID string) (*document.Document, error) {
	d, err := s.store.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Enforce(ctx, &docgate.CheckRequest{
		Subject:  subject,
		Action:   docgate.ActionListDocuments,
		Resource: d.Resource(),
	}); err != nil {
		return nil, err
	}
	return d, nil
}

// CreateDocument adds a document to a category. Requires create-document
// on the category.
func (s *Service) CreateDocument(ctx context.Context, subject docgate.Subject, categoryID, name, content string) (*document.Document, error) {
	c, err := s.store.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Enforce(ctx, &docgate.CheckRequest{
		Subject:  subject,
		Action:   docgate.ActionCreateDocument,
		Resource: c.Resource(),
	}); err != nil {
		return nil, err
	}

	d := &document.Document{
		ID:         id.NewDocumentID().String(),
		Name:       name,
		CategoryID: categoryID,
		Content:    content,
	}
	if err := s.store.CreateDocument(ctx, d); err != nil {
		return nil, err
	}

	s.logger.Info("document created",
		slog.String("document", d.ID),
		slog.String("category", categoryID),
		slog.String("user", subject.ID),
	)
	return d, nil
}

// UpdateDocument applies a partial update to a document. Editing shares
// the create-document permission on the category; the store is only
// touched after the check passes.
func (s *Service) UpdateDocument(ctx context.Context, subject docgate.Subject, documentID string, u *document.Update) (*document.Document, error) {
	d, err := s.store.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Enforce(ctx, &docgate.CheckRequest{
		Subject:  subject,
		Action:   docgate.ActionEditDocument,
		Resource: d.Resource(),
	}); err != nil {
		return nil, err
	}
	return s.store.UpdateDocument(ctx, documentID, u)
}

// AddMember grants a user a role on a category and returns the role name
// as sent to the policy service. Managing members requires create-document
// on the category. The role is normalized here so callers can report the
// granted name without recomputing it.
func (s *Service) AddMember(ctx context.Context, subject docgate.Subject, categoryID, userID, role string) (string, error) {
	c, err := s.store.GetCategory(ctx, categoryID)
	if err != nil {
		return "", err
	}
	if err := s.guard.Enforce(ctx, &docgate.CheckRequest{
		Subject:  subject,
		Action:   docgate.ActionCreateDocument,
		Resource: c.Resource(),
	}); err != nil {
		return "", err
	}

	normalized, err := docgate.NormalizeRole(role, s.guard.Config().Roles)
	if err != nil {
		return "", err
	}
	if err := s.guard.AssignRole(ctx, &docgate.RoleAssignment{
		UserID:   userID,
		Role:     normalized,
		Resource: c.Resource(),
	}); err != nil {
		return "", err
	}
	return normalized, nil
}

// ListDecisions returns a category's recorded authorization decisions,
// newest first. The log reveals who was denied what, so reading it requires
// list-documents on the category. The category is resolved before the
// permission check, like every other category-addressed operation, and the
// filter is pinned to that category regardless of what the caller set.
func (s *Service) ListDecisions(ctx context.Context, subject docgate.Subject, categoryID string, filter *decision.QueryFilter) ([]*decision.Entry, error) {
	c, err := s.store.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Enforce(ctx, &docgate.CheckRequest{
		Subject:  subject,
		Action:   docgate.ActionListDocuments,
		Resource: c.Resource(),
	}); err != nil {
		return nil, err
	}

	if filter == nil {
		filter = &decision.QueryFilter{}
	}
	scoped := *filter
	scoped.ResourceType = docgate.ResourceCategory
	scoped.ResourceID = c.ID
	return s.store.ListDecisions(ctx, &scoped)
}

// Check answers a single authorization query for the subject.
func (s *Service) Check(ctx context.Context, subject docgate.Subject, action docgate.Action, resource docgate.Resource) (bool, error) {
	return s.guard.CanI(ctx, subject, action, resource)
}

// BulkCheck answers a batch of authorization queries. Results line up
// with the input items by index. Any PDP failure fails the whole batch;
// callers treat an unanswered batch as all-denied.
func (s *Service) BulkCheck(ctx context.Context, subject docgate.Subject, items []CheckItem) ([]bool, error) {
	results := make([]bool, len(items))
	for i, item := range items {
		allowed, err := s.guard.CanI(ctx, subject, item.Action, item.Resource)
		if err != nil {
			return nil, err
		}
		results[i] = allowed
	}
	return results, nil
}

// Guard exposes the underlying guard for transport-level middleware.
func (s *Service) Guard() *docgate.Guard { return s.guard }

// Store exposes the underlying store.
func (s *Service) Store() store.Store { return s.store }
