package docgate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/permitio/docgate"
	"github.com/permitio/docgate/decision"
	"github.com/permitio/docgate/pdp"
	"github.com/permitio/docgate/store/memory"
)

func newGuard(t *testing.T, opts ...docgate.Option) (*docgate.Guard, *pdp.Memory) {
	t.Helper()
	m := pdp.NewMemory()
	m.DefineRole("Viewer", docgate.ActionListDocuments)
	m.DefineRole("Editor", docgate.ActionListDocuments, docgate.ActionCreateDocument)

	guard, err := docgate.NewGuard(append([]docgate.Option{docgate.WithClient(m)}, opts...)...)
	if err != nil {
		t.Fatal(err)
	}
	return guard, m
}

func TestNewGuardRequiresClient(t *testing.T) {
	_, err := docgate.NewGuard()
	if err == nil {
		t.Fatal("expected error without a policy client")
	}
}

func TestCheckAllowAndDeny(t *testing.T) {
	ctx := context.Background()
	guard, m := newGuard(t)
	m.Grant("alice", "Viewer", docgate.CategoryResource("finance"))

	result, err := guard.Check(ctx, &docgate.CheckRequest{
		Subject:  docgate.NewSubject("alice"),
		Action:   docgate.ActionListDocuments,
		Resource: docgate.CategoryResource("finance"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !result.Allowed || result.Decision != docgate.DecisionAllow {
		t.Fatalf("expected allow, got %+v", result)
	}

	result, err = guard.Check(ctx, &docgate.CheckRequest{
		Subject:  docgate.NewSubject("alice"),
		Action:   docgate.ActionCreateDocument,
		Resource: docgate.CategoryResource("finance"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Allowed || result.Decision != docgate.DecisionDeny {
		t.Fatalf("expected deny, got %+v", result)
	}
	if result.Reason == "" {
		t.Fatal("deny must carry a reason")
	}
}

func TestCheckPolicyFailureIsHardError(t *testing.T) {
	ctx := context.Background()
	guard, m := newGuard(t)
	m.FailWith(errors.New("connection refused"))

	_, err := guard.Check(ctx, &docgate.CheckRequest{
		Subject:  docgate.NewSubject("alice"),
		Action:   docgate.ActionListDocuments,
		Resource: docgate.CategoryResource("finance"),
	})
	if !errors.Is(err, docgate.ErrPolicyUnavailable) {
		t.Fatalf("expected ErrPolicyUnavailable, got %v", err)
	}
}

func TestEnforce(t *testing.T) {
	ctx := context.Background()
	guard, m := newGuard(t)
	m.Grant("alice", "Viewer", docgate.CategoryResource("finance"))

	err := guard.Enforce(ctx, &docgate.CheckRequest{
		Subject:  docgate.NewSubject("alice"),
		Action:   docgate.ActionListDocuments,
		Resource: docgate.CategoryResource("finance"),
	})
	if err != nil {
		t.Fatal(err)
	}

	err = guard.Enforce(ctx, &docgate.CheckRequest{
		Subject:  docgate.NewSubject("alice"),
		Action:   docgate.ActionListDocuments,
		Resource: docgate.CategoryResource("hr"),
	})
	if !errors.Is(err, docgate.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}

func TestAssignRoleNormalizes(t *testing.T) {
	ctx := context.Background()
	guard, m := newGuard(t)

	err := guard.AssignRole(ctx, &docgate.RoleAssignment{
		UserID:   "bob",
		Role:     "viewer",
		Resource: docgate.CategoryResource("finance"),
	})
	if err != nil {
		t.Fatal(err)
	}

	assigns := m.Assignments()
	if len(assigns) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(assigns))
	}
	if assigns[0].Role != "Viewer" {
		t.Fatalf("expected normalized role Viewer, got %q", assigns[0].Role)
	}
	if assigns[0].Tenant != "default" {
		t.Fatalf("expected default tenant, got %q", assigns[0].Tenant)
	}
}

func TestAssignRoleUnknownRoleFailsFast(t *testing.T) {
	ctx := context.Background()
	guard, m := newGuard(t)

	err := guard.AssignRole(ctx, &docgate.RoleAssignment{
		UserID:   "bob",
		Role:     "superuser",
		Resource: docgate.CategoryResource("finance"),
	})
	if !errors.Is(err, docgate.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
	if len(m.Assignments()) != 0 {
		t.Fatal("unknown role must not reach the policy client")
	}
}

func TestRecorderHookLogsDecisions(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	m := pdp.NewMemory()
	m.DefineRole("Viewer", docgate.ActionListDocuments)
	m.Grant("alice", "Viewer", docgate.CategoryResource("finance"))

	guard, err := docgate.NewGuard(
		docgate.WithClient(m),
		docgate.WithHook(decision.NewRecorder(st, nil)),
	)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := guard.Check(ctx, &docgate.CheckRequest{
		Subject:  docgate.NewSubject("alice"),
		Action:   docgate.ActionListDocuments,
		Resource: docgate.CategoryResource("finance"),
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := guard.Check(ctx, &docgate.CheckRequest{
		Subject:  docgate.NewSubject("alice"),
		Action:   docgate.ActionCreateDocument,
		Resource: docgate.CategoryResource("finance"),
	}); err != nil {
		t.Fatal(err)
	}

	entries, err := st.ListDecisions(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 recorded decisions, got %d", len(entries))
	}

	count, err := st.CountDecisions(ctx, &decision.QueryFilter{Decision: string(docgate.DecisionDeny)})
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("expected 1 deny entry, got %d", count)
	}
}

func TestSubjectFromContextDefaultsToAnonymous(t *testing.T) {
	s := docgate.SubjectFromContext(context.Background())
	if s.Kind != docgate.SubjectAnonymous {
		t.Fatalf("expected anonymous subject, got %+v", s)
	}

	ctx := docgate.WithSubject(context.Background(), docgate.NewSubject("alice"))
	s = docgate.SubjectFromContext(ctx)
	if s.Kind != docgate.SubjectUser || s.ID != "alice" {
		t.Fatalf("unexpected subject: %+v", s)
	}
}

func TestNewSubjectEmptyIsAnonymous(t *testing.T) {
	s := docgate.NewSubject("")
	if s.Kind != docgate.SubjectAnonymous {
		t.Fatalf("empty user ID must be anonymous, got %+v", s)
	}
}

func TestResourceString(t *testing.T) {
	r := docgate.CategoryResource("finance")
	if r.String() != "Category:finance" {
		t.Fatalf("expected Category:finance, got %q", r.String())
	}
}

func TestParseResource(t *testing.T) {
	r, err := docgate.ParseResource("Category:finance")
	if err != nil {
		t.Fatal(err)
	}
	if r.Type != "Category" || r.ID != "finance" {
		t.Fatalf("unexpected resource: %+v", r)
	}

	// Only the first colon separates type and id.
	r, err = docgate.ParseResource("Category:a:b")
	if err != nil {
		t.Fatal(err)
	}
	if r.ID != "a:b" {
		t.Fatalf("expected id a:b, got %q", r.ID)
	}

	for _, bad := range []string{"", "Category", ":finance", "Category:"} {
		if _, err := docgate.ParseResource(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
