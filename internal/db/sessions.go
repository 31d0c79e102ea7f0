package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

type DeleteSessionsInScopeParams struct {
	UserID pgtype.UUID
	Start  pgtype.Date
	End    pgtype.Date
}

func (q *Queries) DeleteSessionsInScope(ctx context.Context, arg DeleteSessionsInScopeParams) (int64, error) {
	tag, err := q.db.Exec(ctx, `
		DELETE FROM sessions
		WHERE user_id = $1
		  AND ($2::date IS NULL OR day >= $2)
		  AND ($3::date IS NULL OR day <= $3)
	`, arg.UserID, arg.Start, arg.End)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type InsertSessionParams struct {
	ID                pgtype.UUID
	UserID            pgtype.UUID
	Day               pgtype.Date
	SessionNumber     int32
	CaptureRefs       []pgtype.UUID
	StartTime         pgtype.Timestamptz
	EndTime           pgtype.Timestamptz
	ScreenshotCount   int32
	IsLastOfDay       bool
	CheckoutTriggered bool
	IsAnalyzed        bool
	Score             pgtype.Float8
	Summary           pgtype.Text
	CreatedAt         pgtype.Timestamptz
}

func (q *Queries) InsertSession(ctx context.Context, arg InsertSessionParams) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO sessions (id, user_id, day, session_number, capture_refs, start_time, end_time,
			screenshot_count, is_last_of_day, checkout_triggered, is_analyzed, score, summary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, arg.ID, arg.UserID, arg.Day, arg.SessionNumber, arg.CaptureRefs, arg.StartTime, arg.EndTime,
		arg.ScreenshotCount, arg.IsLastOfDay, arg.CheckoutTriggered, arg.IsAnalyzed, arg.Score, arg.Summary, arg.CreatedAt)
	return err
}

type ListSessionsByUserDayParams struct {
	UserID pgtype.UUID
	Day    pgtype.Date
}

func (q *Queries) ListSessionsByUserDay(ctx context.Context, arg ListSessionsByUserDayParams) ([]Session, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, user_id, day, session_number, capture_refs, start_time, end_time,
			screenshot_count, is_last_of_day, checkout_triggered, is_analyzed, score, summary, created_at
		FROM sessions
		WHERE user_id = $1 AND day = $2
		ORDER BY session_number
	`, arg.UserID, arg.Day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var session Session
		if err := rows.Scan(
			&session.ID,
			&session.UserID,
			&session.Day,
			&session.SessionNumber,
			&session.CaptureRefs,
			&session.StartTime,
			&session.EndTime,
			&session.ScreenshotCount,
			&session.IsLastOfDay,
			&session.CheckoutTriggered,
			&session.IsAnalyzed,
			&session.Score,
			&session.Summary,
			&session.CreatedAt,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}
