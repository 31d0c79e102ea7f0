package authz

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"vigil/monitoring/internal/db"
)

// AuditEntry captures one authorization decision. The trail is a first-class
// output: denials are recorded the same as grants.
type AuditEntry struct {
	RequesterID   uuid.UUID
	RequesterRole string
	TargetID      uuid.UUID
	TargetRole    string
	Action        string
	Decision      string
	Reason        string
	DecidedAt     time.Time
}

type AuditSink interface {
	Record(ctx context.Context, entry AuditEntry) error
}

type StoreSink struct {
	store *db.Store
}

func NewStoreSink(store *db.Store) *StoreSink {
	return &StoreSink{store: store}
}

func (s *StoreSink) Record(ctx context.Context, entry AuditEntry) error {
	return s.store.Queries.InsertAuthzAudit(ctx, db.InsertAuthzAuditParams{
		ID:            pgtype.UUID{Bytes: uuid.New(), Valid: true},
		RequesterID:   pgtype.UUID{Bytes: entry.RequesterID, Valid: true},
		RequesterRole: entry.RequesterRole,
		TargetID:      pgtype.UUID{Bytes: entry.TargetID, Valid: true},
		TargetRole:    entry.TargetRole,
		Action:        entry.Action,
		Decision:      entry.Decision,
		Reason:        entry.Reason,
		DecidedAt:     pgtype.Timestamptz{Time: entry.DecidedAt, Valid: true},
	})
}
