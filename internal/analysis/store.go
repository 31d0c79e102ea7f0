package analysis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"vigil/monitoring/internal/db"
)

// PgStore adapts the pgx store to the pipeline's Store surface.
type PgStore struct {
	store *db.Store
}

func NewPgStore(store *db.Store) *PgStore {
	return &PgStore{store: store}
}

func (s *PgStore) GetCapture(ctx context.Context, id uuid.UUID) (CaptureRef, error) {
	row, err := s.store.Queries.GetRawCapture(ctx, pgtype.UUID{Bytes: id, Valid: true})
	if err != nil {
		return CaptureRef{}, err
	}
	return CaptureRef{
		ID:       uuid.UUID(row.ID.Bytes),
		UserID:   uuid.UUID(row.UserID.Bytes),
		ImageRef: row.ImageRef,
	}, nil
}

func (s *PgStore) MarkAnalyzed(ctx context.Context, id uuid.UUID, result Result, at time.Time) error {
	return s.store.Queries.MarkCaptureAnalyzed(ctx, db.MarkCaptureAnalyzedParams{
		ID:           pgtype.UUID{Bytes: id, Valid: true},
		Summary:      pgtype.Text{String: result.Summary, Valid: true},
		Productivity: pgtype.Text{String: result.Productivity, Valid: true},
		Applications: result.Applications,
		ContentTypes: result.ContentTypes,
		AnalyzedAt:   pgtype.Timestamptz{Time: at, Valid: true},
	})
}

func (s *PgStore) MarkFailed(ctx context.Context, id uuid.UUID, note string, at time.Time) error {
	return s.store.Queries.MarkCaptureFailed(ctx, db.MarkCaptureFailedParams{
		ID:         pgtype.UUID{Bytes: id, Valid: true},
		ErrorNote:  pgtype.Text{String: note, Valid: true},
		AnalyzedAt: pgtype.Timestamptz{Time: at, Valid: true},
	})
}

func (s *PgStore) MarkRequestOutcome(ctx context.Context, requestID uuid.UUID, analyzed bool, at time.Time) error {
	status := db.RequestStatusFailed
	if analyzed {
		status = db.RequestStatusAnalyzed
	}
	return s.store.Queries.UpdateMonitoringRequest(ctx, db.UpdateMonitoringRequestParams{
		ID:        pgtype.UUID{Bytes: requestID, Valid: true},
		Status:    status,
		UpdatedAt: pgtype.Timestamptz{Time: at, Valid: true},
	})
}
