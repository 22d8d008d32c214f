package pdp

import (
	"context"
	"errors"
	"testing"

	"github.com/permitio/docgate"
)

func TestMemoryCheckRequiresAssignment(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.DefineRole("Viewer", docgate.ActionListDocuments)

	req := &docgate.CheckRequest{
		Subject:  docgate.NewSubject("u1"),
		Action:   docgate.ActionListDocuments,
		Resource: docgate.CategoryResource("finance"),
	}

	allowed, err := m.Check(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	if allowed {
		t.Fatal("expected deny for subject with no roles")
	}

	m.Grant("u1", "Viewer", docgate.CategoryResource("finance"))

	allowed, err = m.Check(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	if !allowed {
		t.Fatal("expected allow after grant")
	}
}

func TestMemoryCheckScopedToResource(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.DefineRole("Viewer", docgate.ActionListDocuments)
	m.Grant("u1", "Viewer", docgate.CategoryResource("finance"))

	allowed, err := m.Check(ctx, &docgate.CheckRequest{
		Subject:  docgate.NewSubject("u1"),
		Action:   docgate.ActionListDocuments,
		Resource: docgate.CategoryResource("hr"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if allowed {
		t.Fatal("grant on finance must not allow hr")
	}
}

func TestMemoryCheckActionScoped(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.DefineRole("Viewer", docgate.ActionListDocuments)
	m.Grant("u1", "Viewer", docgate.CategoryResource("finance"))

	allowed, err := m.Check(ctx, &docgate.CheckRequest{
		Subject:  docgate.NewSubject("u1"),
		Action:   docgate.ActionCreateDocument,
		Resource: docgate.CategoryResource("finance"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if allowed {
		t.Fatal("Viewer must not grant create-document")
	}
}

func TestMemoryAssignRoleRejectsUndefined(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.DefineRole("Editor", docgate.ActionListDocuments, docgate.ActionCreateDocument)

	err := m.AssignRole(ctx, &docgate.RoleAssignment{
		UserID:   "u2",
		Role:     "Superuser",
		Tenant:   "default",
		Resource: docgate.CategoryResource("finance"),
	})
	if !errors.Is(err, docgate.ErrAssignmentRejected) {
		t.Fatalf("expected ErrAssignmentRejected, got %v", err)
	}
	if len(m.Assignments()) != 0 {
		t.Fatal("rejected assignment must not be recorded")
	}
}

func TestMemoryAssignRoleGrantsAccess(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.DefineRole("Editor", docgate.ActionListDocuments, docgate.ActionCreateDocument)

	if err := m.AssignRole(ctx, &docgate.RoleAssignment{
		UserID:   "u2",
		Role:     "Editor",
		Tenant:   "default",
		Resource: docgate.CategoryResource("finance"),
	}); err != nil {
		t.Fatal(err)
	}

	allowed, err := m.Check(ctx, &docgate.CheckRequest{
		Subject:  docgate.NewSubject("u2"),
		Action:   docgate.ActionCreateDocument,
		Resource: docgate.CategoryResource("finance"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !allowed {
		t.Fatal("expected allow after assignment")
	}
}

func TestMemoryFailWith(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	boom := errors.New("pdp down")
	m.FailWith(boom)

	_, err := m.Check(ctx, &docgate.CheckRequest{
		Subject:  docgate.NewSubject("u1"),
		Action:   docgate.ActionListDocuments,
		Resource: docgate.CategoryResource("finance"),
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}

	m.FailWith(nil)
	if _, err := m.Check(ctx, &docgate.CheckRequest{
		Subject:  docgate.NewSubject("u1"),
		Action:   docgate.ActionListDocuments,
		Resource: docgate.CategoryResource("finance"),
	}); err != nil {
		t.Fatalf("expected recovery after FailWith(nil), got %v", err)
	}
}
