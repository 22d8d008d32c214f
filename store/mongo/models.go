package mongo

import (
	"time"

	"github.com/xraph/grove"

	"github.com/permitio/docgate/decision"
	"github.com/permitio/docgate/id"
)

type decisionModel struct {
	grove.BaseModel `grove:"table:docgate_decisions"`
	ID              string    `grove:"id,pk"          bson:"_id"`
	SubjectKind     string    `grove:"subject_kind"   bson:"subject_kind"`
	SubjectID       string    `grove:"subject_id"     bson:"subject_id"`
	Action          string    `grove:"action"         bson:"action"`
	ResourceType    string    `grove:"resource_type"  bson:"resource_type"`
	ResourceID      string    `grove:"resource_id"    bson:"resource_id"`
	Allowed         bool      `grove:"allowed"        bson:"allowed"`
	Decision        string    `grove:"decision"       bson:"decision"`
	Reason          string    `grove:"reason"         bson:"reason,omitempty"`
	EvalTimeNs      int64     `grove:"eval_time_ns"   bson:"eval_time_ns"`
	CreatedAt       time.Time `grove:"created_at"     bson:"created_at"`
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
