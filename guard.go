package docgate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/permitio/docgate/hook"
)

// Guard is the server-side authorization gate. It is the single source of
// truth for permission decisions: every protected operation goes through it,
// and each call is a fresh PDP round trip. Nothing is memoized, so a revoked
// role takes effect on the next request.
type Guard struct {
	client PolicyClient
	hooks  *hook.Registry
	logger *slog.Logger
	config Config
}

// NewGuard creates a new Guard with the given options.
func NewGuard(opts ...Option) (*Guard, error) {
	g := &Guard{
		logger: slog.Default(),
		config: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.client == nil {
		return nil, errors.New("docgate: policy client is required")
	}
	return g, nil
}

// Client returns the underlying policy client.
func (g *Guard) Client() PolicyClient { return g.client }

// Hooks returns the hook registry (may be nil).
func (g *Guard) Hooks() *hook.Registry { return g.hooks }

// Config returns the guard configuration.
func (g *Guard) Config() Config { return g.config }

// Stop notifies shutdown hooks.
func (g *Guard) Stop(ctx context.Context) error {
	if g.hooks != nil {
		g.hooks.EmitShutdown(ctx)
	}
	return nil
}

// Check asks the PDP whether the subject may perform the action on the
// resource. A PDP failure or timeout is a hard error wrapping
// ErrPolicyUnavailable, never an implicit decision.
func (g *Guard) Check(ctx context.Context, req *CheckRequest) (*CheckResult, error) {
	start := time.Now()

	if g.hooks != nil {
		g.hooks.EmitBeforeCheck(ctx, req)
	}

	cctx := ctx
	if d := g.config.checkTimeout(); d > 0 {
		var cancel context.CancelFunc
		cctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	allowed, err := g.client.Check(cctx, req)
	if err != nil {
		g.logger.Error("policy check failed",
			slog.String("subject", req.Subject.ID),
			slog.String("action", string(req.Action)),
			slog.String("resource", req.Resource.String()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: %v", ErrPolicyUnavailable, err)
	}

	result := &CheckResult{
		Allowed:    allowed,
		Decision:   DecisionDeny,
		EvalTimeNs: time.Since(start).Nanoseconds(),
	}
	if allowed {
		result.Decision = DecisionAllow
	} else {
		result.Reason = "denied by policy"
	}

	if g.hooks != nil {
		g.hooks.EmitAfterCheck(ctx, req, result)
	}

	return result, nil
}

// Enforce returns ErrAccessDenied if the check is denied. A denied check
// must never be followed by a side effect; callers enforce before mutating.
func (g *Guard) Enforce(ctx context.Context, req *CheckRequest) error {
	result, err := g.Check(ctx, req)
	if err != nil {
		return err
	}
	if !result.Allowed {
		return fmt.Errorf("%w: %s on %s", ErrAccessDenied, req.Action, req.Resource)
	}
	return nil
}

// CanI is a shorthand for a simple authorization check.
func (g *Guard) CanI(ctx context.Context, subject Subject, action Action, resource Resource) (bool, error) {
	result, err := g.Check(ctx, &CheckRequest{
		Subject:  subject,
		Action:   action,
		Resource: resource,
	})
	if err != nil {
		return false, err
	}
	return result.Allowed, nil
}

// AssignRole grants a subject a role on a resource instance through the
// remote policy service. The role name is normalized against the configured
// role set before the call; an unknown name fails fast with ErrUnknownRole.
// AssignRole performs no authorization itself.
func (g *Guard) AssignRole(ctx context.Context, a *RoleAssignment) error {
	role, err := NormalizeRole(a.Role, g.config.Roles)
	if err != nil {
		return err
	}

	cmd := *a
	cmd.Role = role
	if cmd.Tenant == "" {
		cmd.Tenant = g.config.tenant()
	}

	cctx := ctx
	if d := g.config.checkTimeout(); d > 0 {
		var cancel context.CancelFunc
		cctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	if err := g.client.AssignRole(cctx, &cmd); err != nil {
		g.logger.Error("role assignment failed",
			slog.String("user", cmd.UserID),
			slog.String("role", cmd.Role),
			slog.String("resource", cmd.Resource.String()),
			slog.String("error", err.Error()),
		)
		return err
	}

	g.logger.Info("role assigned",
		slog.String("user", cmd.UserID),
		slog.String("role", cmd.Role),
		slog.String("resource", cmd.Resource.String()),
	)

	if g.hooks != nil {
		g.hooks.EmitRoleAssigned(ctx, &cmd)
	}

	return nil
}
