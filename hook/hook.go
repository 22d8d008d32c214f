// Package hook defines lifecycle hooks for the docgate Guard.
// Hooks are notified of gate events (check performed, role assigned) and can
// react: audit logging, metrics, tracing.
//
// Each lifecycle event is a separate interface so hooks opt in only to the
// events they care about.
package hook

import "context"

// Hook is the base interface all hooks must implement.
type Hook interface {
	// Name returns a unique human-readable name for the hook.
	Name() string
}

// BeforeCheck is called before a check is sent to the PDP.
// The req parameter is *docgate.CheckRequest (passed as any to avoid an
// import cycle).
type BeforeCheck interface {
	OnBeforeCheck(ctx context.Context, req any) error
}

// AfterCheck is called after a check completes with a decision.
// The req parameter is *docgate.CheckRequest; result is *docgate.CheckResult.
type AfterCheck interface {
	OnAfterCheck(ctx context.Context, req, result any) error
}

// RoleAssigned is called after a role assignment is accepted by the remote
// policy service. The a parameter is *docgate.RoleAssignment.
type RoleAssigned interface {
	OnRoleAssigned(ctx context.Context, a any) error
}

// Shutdown is called when the Guard stops.
type Shutdown interface {
	OnShutdown(ctx context.Context) error
}
