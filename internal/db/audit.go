package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

type InsertAuthzAuditParams struct {
	ID            pgtype.UUID
	RequesterID   pgtype.UUID
	RequesterRole string
	TargetID      pgtype.UUID
	TargetRole    string
	Action        string
	Decision      string
	Reason        string
	DecidedAt     pgtype.Timestamptz
}

func (q *Queries) InsertAuthzAudit(ctx context.Context, arg InsertAuthzAuditParams) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO authz_audit (id, requester_id, requester_role, target_id, target_role,
			action, decision, reason, decided_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, arg.ID, arg.RequesterID, arg.RequesterRole, arg.TargetID, arg.TargetRole,
		arg.Action, arg.Decision, arg.Reason, arg.DecidedAt)
	return err
}
