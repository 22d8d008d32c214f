package pdp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/permitio/docgate"
)

func TestHTTPCheck(t *testing.T) {
	var gotAuth string
	var gotBody allowedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/allowed" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(allowedResponse{Allow: true})
	}))
	defer srv.Close()

	client := NewHTTP(srv.URL, WithToken("secret"))
	allowed, err := client.Check(context.Background(), &docgate.CheckRequest{
		Subject:  docgate.NewSubject("u1"),
		Action:   docgate.ActionListDocuments,
		Resource: docgate.CategoryResource("finance"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !allowed {
		t.Fatal("expected allow")
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("expected bearer token, got %q", gotAuth)
	}
	if gotBody.User != "u1" || gotBody.Action != "list-documents" {
		t.Fatalf("unexpected body: %+v", gotBody)
	}
	if gotBody.Resource.Type != "Category" || gotBody.Resource.Key != "finance" {
		t.Fatalf("unexpected resource: %+v", gotBody.Resource)
	}
}

func TestHTTPCheckDeny(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(allowedResponse{Allow: false})
	}))
	defer srv.Close()

	client := NewHTTP(srv.URL)
	allowed, err := client.Check(context.Background(), &docgate.CheckRequest{
		Subject:  docgate.NewSubject("u1"),
		Action:   docgate.ActionListDocuments,
		Resource: docgate.CategoryResource("hr"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if allowed {
		t.Fatal("expected deny")
	}
}

func TestHTTPCheckServerErrorIsHardError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"pdp exploded"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewHTTP(srv.URL)
	_, err := client.Check(context.Background(), &docgate.CheckRequest{
		Subject:  docgate.NewSubject("u1"),
		Action:   docgate.ActionListDocuments,
		Resource: docgate.CategoryResource("finance"),
	})
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if !strings.Contains(err.Error(), "pdp exploded") {
		t.Fatalf("expected remote message in error, got %v", err)
	}
}

func TestHTTPCheckUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // refuse connections

	client := NewHTTP(srv.URL)
	_, err := client.Check(context.Background(), &docgate.CheckRequest{
		Subject:  docgate.NewSubject("u1"),
		Action:   docgate.ActionListDocuments,
		Resource: docgate.CategoryResource("finance"),
	})
	if err == nil {
		t.Fatal("expected error for unreachable PDP")
	}
}

func TestHTTPAssignRole(t *testing.T) {
	var gotBody assignRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/role_assignments" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewHTTP(srv.URL)
	err := client.AssignRole(context.Background(), &docgate.RoleAssignment{
		UserID:   "u2",
		Role:     "Editor",
		Tenant:   "default",
		Resource: docgate.CategoryResource("finance"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if gotBody.Role != "Editor" || gotBody.ResourceInstance != "Category:finance" {
		t.Fatalf("unexpected body: %+v", gotBody)
	}
}

func TestHTTPAssignRoleRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "role 'Superuser' not found"})
	}))
	defer srv.Close()

	client := NewHTTP(srv.URL)
	err := client.AssignRole(context.Background(), &docgate.RoleAssignment{
		UserID:   "u2",
		Role:     "Superuser",
		Tenant:   "default",
		Resource: docgate.CategoryResource("finance"),
	})
	if !errors.Is(err, docgate.ErrAssignmentRejected) {
		t.Fatalf("expected ErrAssignmentRejected, got %v", err)
	}
	if !strings.Contains(err.Error(), "Superuser") {
		t.Fatalf("expected remote message, got %v", err)
	}
}
