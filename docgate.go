// Package docgate implements the permission gating for a document-management
// backend that delegates every authorization decision to a remote
// policy-decision point (PDP).
//
// The package itself holds no policy. A Guard forwards each
// check(subject, action, resource) to a PolicyClient and interprets the
// boolean; the surrounding application decides what to do with a denial.
//
//	guard, err := docgate.NewGuard(
//	    docgate.WithClient(pdpClient),
//	)
//	err = guard.Enforce(ctx, &docgate.CheckRequest{
//	    Subject:  docgate.Subject{Kind: docgate.SubjectUser, ID: "user_123"},
//	    Action:   docgate.ActionListDocuments,
//	    Resource: docgate.CategoryResource("finance"),
//	})
package docgate

import (
	"context"
	"fmt"
	"strings"
)

// SubjectKind identifies the type of actor making an authorization request.
type SubjectKind string

const (
	// SubjectUser represents an authenticated human user.
	SubjectUser SubjectKind = "user"

	// SubjectAnonymous represents a request without an identifying header.
	// Anonymous requests are still sent to the PDP, which decides.
	SubjectAnonymous SubjectKind = "anonymous"
)

// Subject represents an actor in an authorization check. The ID is opaque;
// its lifecycle belongs to the authentication system.
type Subject struct {
	Kind SubjectKind `json:"kind"`
	ID   string      `json:"id"`
}

// Anonymous is the subject used when no identifying header is present.
var Anonymous = Subject{Kind: SubjectAnonymous, ID: "anonymous"}

// NewSubject returns a user subject for the given ID, or Anonymous when the
// ID is empty.
func NewSubject(userID string) Subject {
	if userID == "" {
		return Anonymous
	}
	return Subject{Kind: SubjectUser, ID: userID}
}

// Action is an authorization verb. The set is closed: both server and client
// must use the exact same string constants, since the PDP matches actions
// verbatim.
type Action string

const (
	// ActionListDocuments guards reading a category and its documents.
	ActionListDocuments Action = "list-documents"

	// ActionCreateDocument guards creating documents in a category. The
	// deployed policy configuration uses the same capability for editing
	// documents and managing category members.
	ActionCreateDocument Action = "create-document"

	// ActionEditDocument names the edit intent at call sites. It resolves to
	// the create-document capability in the policy configuration.
	ActionEditDocument = ActionCreateDocument
)

// ResourceCategory is the resource type of a category instance. It is the
// only type ever sent to the PDP: document checks collapse to the owning
// category.
const ResourceCategory = "Category"

// Resource identifies the target of an authorization check.
type Resource struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// String returns the canonical "Type:id" form used as the resource argument
// on every PDP call. The PDP matches this string exactly; server and client
// must produce it identically.
func (r Resource) String() string {
	return r.Type + ":" + r.ID
}

// CategoryResource returns the Resource for a category instance.
func CategoryResource(categoryID string) Resource {
	return Resource{Type: ResourceCategory, ID: categoryID}
}

// ParseResource parses the canonical "Type:id" form. Only the first colon
// separates type and id, so IDs may themselves contain colons.
func ParseResource(name string) (Resource, error) {
	typ, rest, ok := strings.Cut(name, ":")
	if !ok || typ == "" || rest == "" {
		return Resource{}, fmt.Errorf("docgate: invalid resource %q, expected Type:id", name)
	}
	return Resource{Type: typ, ID: rest}, nil
}

// CheckRequest is the input to an authorization check.
type CheckRequest struct {
	Subject  Subject  `json:"subject"`
	Action   Action   `json:"action"`
	Resource Resource `json:"resource"`
}

// CheckResult is the outcome of an authorization check.
type CheckResult struct {
	Allowed    bool     `json:"allowed"`
	Decision   Decision `json:"decision"`
	Reason     string   `json:"reason,omitempty"`
	EvalTimeNs int64    `json:"eval_time_ns"`
}

// Decision is the authorization outcome.
type Decision string

const (
	// DecisionAllow means the PDP permitted the request.
	DecisionAllow Decision = "allow"

	// DecisionDeny means the PDP denied the request.
	DecisionDeny Decision = "deny"
)

// RoleAssignment grants a subject a role scoped to one resource instance
// within one tenant. The assignment itself lives in the remote policy
// service; this type only carries the command.
type RoleAssignment struct {
	UserID   string   `json:"user"`
	Role     string   `json:"role"`
	Tenant   string   `json:"tenant"`
	Resource Resource `json:"resource_instance"`
}

// PolicyClient wraps calls to the remote policy-decision point.
type PolicyClient interface {
	// Check reports whether the subject may perform the action on the
	// resource. A transport or decode failure is returned as an error and
	// never interpreted as an implicit allow or deny.
	Check(ctx context.Context, req *CheckRequest) (bool, error)

	// AssignRole grants the subject a role on a resource instance. The role
	// name must already exist in the remote policy configuration. AssignRole
	// performs no authorization of its own; gating the call is the caller's
	// responsibility.
	AssignRole(ctx context.Context, a *RoleAssignment) error
}
