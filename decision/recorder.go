package decision

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/permitio/docgate"
	"github.com/permitio/docgate/hook"
	"github.com/permitio/docgate/id"
)

// Compile-time hook checks.
var (
	_ hook.Hook       = (*Recorder)(nil)
	_ hook.AfterCheck = (*Recorder)(nil)
)

// Recorder is an AfterCheck hook that writes every Guard decision into a
// decision Store. Register it with docgate.WithHook.
type Recorder struct {
	store  Store
	logger *slog.Logger
}

// NewRecorder creates a decision recorder backed by the given store.
func NewRecorder(store Store, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{store: store, logger: logger}
}

// Name implements hook.Hook.
func (r *Recorder) Name() string { return "decision-recorder" }

// OnAfterCheck records the decision. Recording failures are returned to the
// registry, which logs and drops them; auditing never blocks the gate.
func (r *Recorder) OnAfterCheck(ctx context.Context, req, result any) error {
	cr, ok := req.(*docgate.CheckRequest)
	if !ok {
		return fmt.Errorf("decision: unexpected request type %T", req)
	}
	res, ok := result.(*docgate.CheckResult)
	if !ok {
		return fmt.Errorf("decision: unexpected result type %T", result)
	}

	e := &Entry{
		ID:           id.NewDecisionID(),
		SubjectKind:  string(cr.Subject.Kind),
		SubjectID:    cr.Subject.ID,
		Action:       string(cr.Action),
		ResourceType: cr.Resource.Type,
		ResourceID:   cr.Resource.ID,
		Allowed:      res.Allowed,
		Decision:     string(res.Decision),
		Reason:       res.Reason,
		EvalTimeNs:   res.EvalTimeNs,
	}

	if err := r.store.RecordDecision(ctx, e); err != nil {
		return fmt.Errorf("decision: record: %w", err)
	}
	return nil
}
