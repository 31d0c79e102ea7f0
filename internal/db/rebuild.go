package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"vigil/monitoring/internal/sessions"
)

// The recompiler drives rebuilds through sessions.Store; this file adapts the
// pgx store to that surface.

func (s *Store) ListMonitoredUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := s.Queries.ListMonitoredUserIDs(ctx)
	if err != nil {
		return nil, err
	}
	userIDs := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		userIDs = append(userIDs, uuid.UUID(row.Bytes))
	}
	return userIDs, nil
}

func (s *Store) InTx(ctx context.Context, fn func(sessions.Tx) error) error {
	return s.WithTx(ctx, func(q *Queries) error {
		return fn(&rebuildTx{queries: q})
	})
}

type rebuildTx struct {
	queries *Queries
}

func (t *rebuildTx) ListCaptureDays(ctx context.Context, userID uuid.UUID, start, end *time.Time) ([]sessions.DayCaptures, error) {
	rows, err := t.queries.ListCapturesForRecompile(ctx, ListCapturesForRecompileParams{
		UserID: pgUUID(userID),
		Start:  pgDatePtr(start),
		End:    pgDatePtr(end),
	})
	if err != nil {
		return nil, err
	}
	checkouts, err := t.queries.ListCheckoutsInScope(ctx, ListCheckoutsInScopeParams{
		UserID: pgUUID(userID),
		Start:  pgDatePtr(start),
		End:    pgDatePtr(end),
	})
	if err != nil {
		return nil, err
	}
	checkoutByDay := make(map[time.Time]time.Time, len(checkouts))
	for _, checkout := range checkouts {
		checkoutByDay[checkout.Day.Time.UTC()] = checkout.CheckoutAt.Time
	}

	// Rows arrive ordered by (day, captured_at, id); group them per day.
	var days []sessions.DayCaptures
	for _, row := range rows {
		day := row.Day.Time.UTC()
		capture := sessions.Capture{
			ID:           uuid.UUID(row.ID.Bytes),
			CapturedAt:   row.CapturedAt.Time,
			Status:       string(row.Status),
			Productivity: row.Productivity.String,
		}
		if len(days) == 0 || !days[len(days)-1].Day.Equal(day) {
			entry := sessions.DayCaptures{Day: day}
			if checkoutAt, ok := checkoutByDay[day]; ok {
				at := checkoutAt
				entry.CheckoutAt = &at
			}
			days = append(days, entry)
		}
		days[len(days)-1].Captures = append(days[len(days)-1].Captures, capture)
	}
	return days, nil
}

func (t *rebuildTx) DeleteSessions(ctx context.Context, userID uuid.UUID, start, end *time.Time) (int64, error) {
	return t.queries.DeleteSessionsInScope(ctx, DeleteSessionsInScopeParams{
		UserID: pgUUID(userID),
		Start:  pgDatePtr(start),
		End:    pgDatePtr(end),
	})
}

func (t *rebuildTx) InsertSessions(ctx context.Context, rebuilt []sessions.Session) (int64, error) {
	now := pgtype.Timestamptz{Time: time.Now().UTC(), Valid: true}
	for _, session := range rebuilt {
		refs := make([]pgtype.UUID, len(session.CaptureRefs))
		for i, ref := range session.CaptureRefs {
			refs[i] = pgUUID(ref)
		}
		err := t.queries.InsertSession(ctx, InsertSessionParams{
			ID:                pgUUID(session.ID),
			UserID:            pgUUID(session.UserID),
			Day:               pgtype.Date{Time: session.Day, Valid: true},
			SessionNumber:     int32(session.SessionNumber),
			CaptureRefs:       refs,
			StartTime:         pgtype.Timestamptz{Time: session.StartTime, Valid: true},
			EndTime:           pgtype.Timestamptz{Time: session.EndTime, Valid: true},
			ScreenshotCount:   int32(session.ScreenshotCount),
			IsLastOfDay:       session.IsLastOfDay,
			CheckoutTriggered: session.CheckoutTriggered,
			IsAnalyzed:        session.IsAnalyzed,
			Score:             pgFloat8Ptr(session.Score),
			Summary:           pgtype.Text{String: session.Summary, Valid: session.Summary != ""},
			CreatedAt:         now,
		})
		if err != nil {
			return 0, err
		}
	}
	return int64(len(rebuilt)), nil
}

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func pgDatePtr(t *time.Time) pgtype.Date {
	if t == nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: t.UTC(), Valid: true}
}

func pgFloat8Ptr(value *float64) pgtype.Float8 {
	if value == nil {
		return pgtype.Float8{}
	}
	return pgtype.Float8{Float64: *value, Valid: true}
}
