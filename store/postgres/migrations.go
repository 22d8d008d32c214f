package postgres

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the decision log (PostgreSQL).
var Migrations = migrate.NewGroup("docgate")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_decisions",
			Version: "20240101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS docgate_decisions (
    id              TEXT PRIMARY KEY,
    subject_kind    TEXT NOT NULL,
    subject_id      TEXT NOT NULL,
    action          TEXT NOT NULL,
    resource_type   TEXT NOT NULL,
    resource_id     TEXT NOT NULL,
    allowed         BOOLEAN NOT NULL DEFAULT FALSE,
    decision        TEXT NOT NULL,
    reason          TEXT NOT NULL DEFAULT '',
    eval_time_ns    BIGINT NOT NULL DEFAULT 0,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_docgate_decisions_subject ON docgate_decisions (subject_kind, subject_id);
CREATE INDEX IF NOT EXISTS idx_docgate_decisions_resource ON docgate_decisions (resource_type, resource_id);
CREATE INDEX IF NOT EXISTS idx_docgate_decisions_decision ON docgate_decisions (decision);
CREATE INDEX IF NOT EXISTS idx_docgate_decisions_created ON docgate_decisions (created_at);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS docgate_decisions`)
				return err
			},
		},
	)
}
