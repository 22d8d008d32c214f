package docs

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/permitio/docgate"
	"github.com/permitio/docgate/decision"
	"github.com/permitio/docgate/document"
	"github.com/permitio/docgate/id"
	"github.com/permitio/docgate/pdp"
	"github.com/permitio/docgate/store/memory"
)

func newTestService(t *testing.T) (*Service, *pdp.Memory, *memory.Store) {
	t.Helper()
	m := pdp.NewMemory()
	m.DefineRole("Viewer", docgate.ActionListDocuments)
	m.DefineRole("Editor", docgate.ActionListDocuments, docgate.ActionCreateDocument)
	m.DefineRole("Admin", docgate.ActionListDocuments, docgate.ActionCreateDocument)

	guard, err := docgate.NewGuard(docgate.WithClient(m))
	if err != nil {
		t.Fatal(err)
	}
	st := memory.NewSeeded()
	return NewService(guard, st), m, st
}

func TestListCategoriesNoRoles(t *testing.T) {
	svc, _, _ := newTestService(t)

	views, err := svc.ListCategories(context.Background(), docgate.NewSubject("nobody"))
	if err != nil {
		t.Fatal(err)
	}
	if len(views) != 0 {
		t.Fatalf("subject with no roles must see no categories, got %d", len(views))
	}
}

func TestListCategoriesFilteredByAccess(t *testing.T) {
	svc, m, _ := newTestService(t)
	m.Grant("alice", "Viewer", docgate.CategoryResource("finance"))

	views, err := svc.ListCategories(context.Background(), docgate.NewSubject("alice"))
	if err != nil {
		t.Fatal(err)
	}
	if len(views) != 1 {
		t.Fatalf("expected only finance, got %d categories", len(views))
	}
	if views[0].ID != "finance" || views[0].Name != "Finance Documents" {
		t.Fatalf("unexpected category: %+v", views[0])
	}
	if views[0].DocumentCount != 2 {
		t.Fatalf("expected 2 finance documents, got %d", views[0].DocumentCount)
	}
}

func TestListDocumentsUnknownCategory(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.ListDocuments(context.Background(), docgate.Anonymous, "legal")
	if !errors.Is(err, docgate.ErrCategoryNotFound) {
		t.Fatalf("unknown category must be not-found before any permission outcome, got %v", err)
	}
}

func TestListDocumentsDenied(t *testing.T) {
	svc, m, _ := newTestService(t)
	m.Grant("alice", "Viewer", docgate.CategoryResource("finance"))

	_, err := svc.ListDocuments(context.Background(), docgate.NewSubject("alice"), "hr")
	if !errors.Is(err, docgate.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied for hr, got %v", err)
	}
}

func TestListDocumentsAllowed(t *testing.T) {
	svc, m, _ := newTestService(t)
	m.Grant("alice", "Viewer", docgate.CategoryResource("finance"))

	docsList, err := svc.ListDocuments(context.Background(), docgate.NewSubject("alice"), "finance")
	if err != nil {
		t.Fatal(err)
	}
	if len(docsList) != 2 {
		t.Fatalf("expected 2 finance documents, got %d", len(docsList))
	}
}

func TestGetDocumentNotFoundBeforePermission(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.GetDocument(context.Background(), docgate.Anonymous, "missing")
	if !errors.Is(err, docgate.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestGetDocumentGovernedByCategory(t *testing.T) {
	ctx := context.Background()
	svc, m, _ := newTestService(t)
	m.Grant("alice", "Viewer", docgate.CategoryResource("finance"))

	d, err := svc.GetDocument(ctx, docgate.NewSubject("alice"), "budget_report")
	if err != nil {
		t.Fatal(err)
	}
	if d.Name != "Budget Report 2024" {
		t.Fatalf("unexpected document: %+v", d)
	}

	_, err = svc.GetDocument(ctx, docgate.NewSubject("alice"), "salary_report")
	if !errors.Is(err, docgate.ErrAccessDenied) {
		t.Fatalf("hr document must be denied for finance viewer, got %v", err)
	}
}

func TestCreateDocument(t *testing.T) {
	ctx := context.Background()
	svc, m, st := newTestService(t)
	m.Grant("bob", "Editor", docgate.CategoryResource("finance"))

	d, err := svc.CreateDocument(ctx, docgate.NewSubject("bob"), "finance", "Forecast", "Numbers...")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(d.ID, "doc") {
		t.Fatalf("expected generated document ID, got %q", d.ID)
	}

	count, err := st.CountDocumentsByCategory(ctx, "finance")
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Fatalf("expected 3 finance documents after create, got %d", count)
	}
}

func TestCreateDocumentDeniedWithoutSideEffect(t *testing.T) {
	ctx := context.Background()
	svc, m, st := newTestService(t)
	m.Grant("alice", "Viewer", docgate.CategoryResource("finance"))

	_, err := svc.CreateDocument(ctx, docgate.NewSubject("alice"), "finance", "Sneaky", "...")
	if !errors.Is(err, docgate.ErrAccessDenied) {
		t.Fatalf("viewer must not create documents, got %v", err)
	}

	count, err := st.CountDocumentsByCategory(ctx, "finance")
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Fatalf("denied create must not change the store, got %d documents", count)
	}
}

func TestUpdateDocumentPartialMerge(t *testing.T) {
	ctx := context.Background()
	svc, m, _ := newTestService(t)
	m.Grant("bob", "Editor", docgate.CategoryResource("finance"))

	name := "Budget Report 2025"
	d, err := svc.UpdateDocument(ctx, docgate.NewSubject("bob"), "budget_report", &document.Update{Name: &name})
	if err != nil {
		t.Fatal(err)
	}
	if d.Name != name {
		t.Fatalf("expected updated name, got %q", d.Name)
	}
	if d.Content != "Budget details here..." {
		t.Fatalf("name-only update must keep content, got %q", d.Content)
	}
}

func TestUpdateDocumentDeniedLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	svc, m, st := newTestService(t)
	m.Grant("alice", "Viewer", docgate.CategoryResource("finance"))

	name := "Tampered"
	_, err := svc.UpdateDocument(ctx, docgate.NewSubject("alice"), "budget_report", &document.Update{Name: &name})
	if !errors.Is(err, docgate.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}

	d, err := st.GetDocument(ctx, "budget_report")
	if err != nil {
		t.Fatal(err)
	}
	if d.Name != "Budget Report 2024" {
		t.Fatalf("denied update must not change the store, got %q", d.Name)
	}
}

func TestAddMemberNormalizesRole(t *testing.T) {
	ctx := context.Background()
	svc, m, _ := newTestService(t)
	m.Grant("bob", "Editor", docgate.CategoryResource("finance"))

	role, err := svc.AddMember(ctx, docgate.NewSubject("bob"), "finance", "carol", "editor")
	if err != nil {
		t.Fatal(err)
	}
	if role != "Editor" {
		t.Fatalf("expected the granted role back, got %q", role)
	}

	assigns := m.Assignments()
	if len(assigns) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(assigns))
	}
	if assigns[0].Role != "Editor" {
		t.Fatalf("role must be normalized to Editor, got %q", assigns[0].Role)
	}
	if assigns[0].Resource.String() != "Category:finance" {
		t.Fatalf("assignment must target Category:finance, got %q", assigns[0].Resource.String())
	}
}

func TestAddMemberUnknownRoleFailsFast(t *testing.T) {
	ctx := context.Background()
	svc, m, _ := newTestService(t)
	m.Grant("bob", "Editor", docgate.CategoryResource("finance"))

	_, err := svc.AddMember(ctx, docgate.NewSubject("bob"), "finance", "carol", "superuser")
	if !errors.Is(err, docgate.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
	if len(m.Assignments()) != 0 {
		t.Fatal("unknown role must not reach the policy service")
	}
}

func TestAddMemberDenied(t *testing.T) {
	ctx := context.Background()
	svc, m, _ := newTestService(t)
	m.Grant("alice", "Viewer", docgate.CategoryResource("finance"))

	_, err := svc.AddMember(ctx, docgate.NewSubject("alice"), "finance", "carol", "Viewer")
	if !errors.Is(err, docgate.ErrAccessDenied) {
		t.Fatalf("viewer must not manage members, got %v", err)
	}
	if len(m.Assignments()) != 0 {
		t.Fatal("denied member-add must not assign a role")
	}
}

func TestPolicyFailureIsHardError(t *testing.T) {
	ctx := context.Background()
	svc, m, _ := newTestService(t)
	m.Grant("alice", "Viewer", docgate.CategoryResource("finance"))
	m.FailWith(errors.New("pdp down"))

	_, err := svc.ListDocuments(ctx, docgate.NewSubject("alice"), "finance")
	if !errors.Is(err, docgate.ErrPolicyUnavailable) {
		t.Fatalf("PDP failure must surface as ErrPolicyUnavailable, got %v", err)
	}

	_, err = svc.ListCategories(ctx, docgate.NewSubject("alice"))
	if !errors.Is(err, docgate.ErrPolicyUnavailable) {
		t.Fatalf("category listing must not silently skip on PDP failure, got %v", err)
	}
}

func TestBulkCheckPreservesOrder(t *testing.T) {
	ctx := context.Background()
	svc, m, _ := newTestService(t)
	m.Grant("alice", "Viewer", docgate.CategoryResource("finance"))

	items := []CheckItem{
		{Action: docgate.ActionListDocuments, Resource: docgate.CategoryResource("finance")},
		{Action: docgate.ActionCreateDocument, Resource: docgate.CategoryResource("finance")},
		{Action: docgate.ActionListDocuments, Resource: docgate.CategoryResource("hr")},
		{Action: docgate.ActionCreateDocument, Resource: docgate.CategoryResource("hr")},
	}
	results, err := svc.BulkCheck(ctx, docgate.NewSubject("alice"), items)
	if err != nil {
		t.Fatal(err)
	}
	want := []bool{true, false, false, false}
	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(results))
	}
	for i := range want {
		if results[i] != want[i] {
			t.Fatalf("result %d: got %v, want %v", i, results[i], want[i])
		}
	}
}

func TestAnonymousSubjectDenied(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.ListDocuments(context.Background(), docgate.Anonymous, "finance")
	if !errors.Is(err, docgate.ErrAccessDenied) {
		t.Fatalf("anonymous must be denied, got %v", err)
	}
}

func TestListDecisionsUnknownCategory(t *testing.T) {
	ctx := context.Background()
	svc, m, _ := newTestService(t)
	m.Grant("alice", "Viewer", docgate.CategoryResource("finance"))

	_, err := svc.ListDecisions(ctx, docgate.NewSubject("alice"), "legal", nil)
	if !errors.Is(err, docgate.ErrCategoryNotFound) {
		t.Fatalf("unknown category must be not-found, got %v", err)
	}
	if m.CheckCalls() != 0 {
		t.Fatal("existence is resolved before any policy call")
	}
}

func TestListDecisionsDenied(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, err := svc.ListDecisions(ctx, docgate.NewSubject("nobody"), "finance", nil)
	if !errors.Is(err, docgate.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}

func TestListDecisionsScopedToCategory(t *testing.T) {
	ctx := context.Background()
	svc, m, st := newTestService(t)
	m.Grant("alice", "Viewer", docgate.CategoryResource("finance"))

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	seed := []*decision.Entry{
		{ID: id.NewDecisionID(), SubjectID: "alice", Action: "list-documents", ResourceType: "Category", ResourceID: "finance", Decision: "allow", Allowed: true, CreatedAt: base},
		{ID: id.NewDecisionID(), SubjectID: "bob", Action: "create-document", ResourceType: "Category", ResourceID: "hr", Decision: "deny", CreatedAt: base.Add(time.Minute)},
	}
	for _, e := range seed {
		if err := st.RecordDecision(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	// The filter asks for hr; the service pins it to the requested category.
	entries, err := svc.ListDecisions(ctx, docgate.NewSubject("alice"), "finance",
		&decision.QueryFilter{ResourceID: "hr"})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 finance entry, got %d", len(entries))
	}
	if entries[0].ResourceID != "finance" {
		t.Fatalf("entry must belong to finance, got %q", entries[0].ResourceID)
	}
}
