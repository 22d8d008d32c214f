package sqlite

import (
	"time"

	"github.com/xraph/grove"

	"github.com/permitio/docgate/decision"
	"github.com/permitio/docgate/id"
)

type decisionModel struct {
	grove.BaseModel `grove:"table:docgate_decisions"`
	ID              string    `grove:"id,pk"`
	SubjectKind     string    `grove:"subject_kind,notnull"`
	SubjectID       string    `grove:"subject_id,notnull"`
	Action          string    `grove:"action,notnull"`
	ResourceType    string    `grove:"resource_type,notnull"`
	ResourceID      string    `grove:"resource_id,notnull"`
	Allowed         bool      `grove:"allowed,notnull"`
	Decision        string    `grove:"decision,notnull"`
	Reason          string    `grove:"reason"`
	EvalTimeNs      int64     `grove:"eval_time_ns,notnull"`
	CreatedAt       time.Time `grove:"created_at,notnull"`
}

func decisionToModel(e *decision.Entry) *decisionModel {
	return &decisionModel{
		ID:           e.ID.String(),
		SubjectKind:  e.SubjectKind,
		SubjectID:    e.SubjectID,
		Action:       e.Action,
		ResourceType: e.ResourceType,
		ResourceID:   e.ResourceID,
		Allowed:      e.Allowed,
		Decision:     e.Decision,
		Reason:       e.Reason,
		EvalTimeNs:   e.EvalTimeNs,
		CreatedAt:    e.CreatedAt,
	}
}

func decisionFromModel(m *decisionModel) *decision.Entry {
	did, _ := id.ParseDecisionID(m.ID) //nolint:errcheck // stored IDs are always valid
	return &decision.Entry{
		ID:           did,
		SubjectKind:  m.SubjectKind,
		SubjectID:    m.SubjectID,
		Action:       m.Action,
		ResourceType: m.ResourceType,
		ResourceID:   m.ResourceID,
		Allowed:      m.Allowed,
		Decision:     m.Decision,
		Reason:       m.Reason,
		EvalTimeNs:   m.EvalTimeNs,
		CreatedAt:    m.CreatedAt,
	}
}
