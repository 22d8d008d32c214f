// Package decision defines the authorization decision audit log.
package decision

import (
	"time"

	"github.com/permitio/docgate/id"
)

// Entry is a single recorded authorization decision.
type Entry struct {
	ID           id.DecisionID `json:"id" db:"id"`
	SubjectKind  string        `json:"subject_kind" db:"subject_kind"`
	SubjectID    string        `json:"subject_id" db:"subject_id"`
	Action       string        `json:"action" db:"action"`
	ResourceType string        `json:"resource_type" db:"resource_type"`
	ResourceID   string        `json:"resource_id" db:"resource_id"`
	Allowed      bool          `json:"allowed" db:"allowed"`
	Decision     string        `json:"decision" db:"decision"`
	Reason       string        `json:"reason,omitempty" db:"reason"`
	EvalTimeNs   int64         `json:"eval_time_ns" db:"eval_time_ns"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
}

// QueryFilter contains filters for querying decision entries.
type QueryFilter struct {
	SubjectKind  string     `json:"subject_kind,omitempty"`
	SubjectID    string     `json:"subject_id,omitempty"`
	Action       string     `json:"action,omitempty"`
	ResourceType string     `json:"resource_type,omitempty"`
	ResourceID   string     `json:"resource_id,omitempty"`
	Decision     string     `json:"decision,omitempty"`
	After        *time.Time `json:"after,omitempty"`
	Before       *time.Time `json:"before,omitempty"`
	Limit        int        `json:"limit,omitempty"`
	Offset       int        `json:"offset,omitempty"`
}
