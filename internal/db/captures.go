package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const rawCaptureColumns = `id, user_id, captured_at, source, image_ref, size_bytes, status,
summary, productivity, applications, content_types, error_note, analyzed_at, created_at`

type CreateRawCaptureParams struct {
	ID         pgtype.UUID
	UserID     pgtype.UUID
	CapturedAt pgtype.Timestamptz
	Source     CaptureSource
	ImageRef   string
	SizeBytes  int64
	CreatedAt  pgtype.Timestamptz
}

func (q *Queries) CreateRawCapture(ctx context.Context, arg CreateRawCaptureParams) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO raw_captures (id, user_id, captured_at, source, image_ref, size_bytes, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending', $7)
	`, arg.ID, arg.UserID, arg.CapturedAt, arg.Source, arg.ImageRef, arg.SizeBytes, arg.CreatedAt)
	return err
}

func (q *Queries) GetRawCapture(ctx context.Context, id pgtype.UUID) (RawCapture, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+rawCaptureColumns+`
		FROM raw_captures
		WHERE id = $1
	`, id)
	return scanRawCapture(row)
}

type MarkCaptureAnalyzedParams struct {
	ID           pgtype.UUID
	Summary      pgtype.Text
	Productivity pgtype.Text
	Applications []string
	ContentTypes []string
	AnalyzedAt   pgtype.Timestamptz
}

func (q *Queries) MarkCaptureAnalyzed(ctx context.Context, arg MarkCaptureAnalyzedParams) error {
	_, err := q.db.Exec(ctx, `
		UPDATE raw_captures
		SET status = 'analyzed', summary = $2, productivity = $3, applications = $4,
		    content_types = $5, error_note = NULL, analyzed_at = $6
		WHERE id = $1
	`, arg.ID, arg.Summary, arg.Productivity, arg.Applications, arg.ContentTypes, arg.AnalyzedAt)
	return err
}

type MarkCaptureFailedParams struct {
	ID         pgtype.UUID
	ErrorNote  pgtype.Text
	AnalyzedAt pgtype.Timestamptz
}

func (q *Queries) MarkCaptureFailed(ctx context.Context, arg MarkCaptureFailedParams) error {
	_, err := q.db.Exec(ctx, `
		UPDATE raw_captures
		SET status = 'failed', error_note = $2, analyzed_at = $3
		WHERE id = $1
	`, arg.ID, arg.ErrorNote, arg.AnalyzedAt)
	return err
}

type ListCapturesByUserDayParams struct {
	UserID pgtype.UUID
	Day    pgtype.Date
}

func (q *Queries) ListCapturesByUserDay(ctx context.Context, arg ListCapturesByUserDayParams) ([]RawCapture, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+rawCaptureColumns+`
		FROM raw_captures
		WHERE user_id = $1 AND (captured_at AT TIME ZONE 'UTC')::date = $2
		ORDER BY captured_at, id
	`, arg.UserID, arg.Day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var captures []RawCapture
	for rows.Next() {
		capture, err := scanRawCapture(rows)
		if err != nil {
			return nil, err
		}
		captures = append(captures, capture)
	}
	return captures, rows.Err()
}

type RecompileCaptureRow struct {
	ID           pgtype.UUID
	Day          pgtype.Date
	CapturedAt   pgtype.Timestamptz
	Status       CaptureStatus
	Productivity pgtype.Text
}

type ListCapturesForRecompileParams struct {
	UserID pgtype.UUID
	Start  pgtype.Date
	End    pgtype.Date
}

func (q *Queries) ListCapturesForRecompile(ctx context.Context, arg ListCapturesForRecompileParams) ([]RecompileCaptureRow, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, (captured_at AT TIME ZONE 'UTC')::date AS day, captured_at, status, productivity
		FROM raw_captures
		WHERE user_id = $1
		  AND ($2::date IS NULL OR (captured_at AT TIME ZONE 'UTC')::date >= $2)
		  AND ($3::date IS NULL OR (captured_at AT TIME ZONE 'UTC')::date <= $3)
		ORDER BY day, captured_at, id
	`, arg.UserID, arg.Start, arg.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var captures []RecompileCaptureRow
	for rows.Next() {
		var row RecompileCaptureRow
		if err := rows.Scan(&row.ID, &row.Day, &row.CapturedAt, &row.Status, &row.Productivity); err != nil {
			return nil, err
		}
		captures = append(captures, row)
	}
	return captures, rows.Err()
}

func (q *Queries) ListMonitoredUserIDs(ctx context.Context) ([]pgtype.UUID, error) {
	rows, err := q.db.Query(ctx, `
		SELECT DISTINCT user_id FROM raw_captures ORDER BY user_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var userIDs []pgtype.UUID
	for rows.Next() {
		var userID pgtype.UUID
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, userID)
	}
	return userIDs, rows.Err()
}

func scanRawCapture(row pgx.Row) (RawCapture, error) {
	var capture RawCapture
	err := row.Scan(
		&capture.ID,
		&capture.UserID,
		&capture.CapturedAt,
		&capture.Source,
		&capture.ImageRef,
		&capture.SizeBytes,
		&capture.Status,
		&capture.Summary,
		&capture.Productivity,
		&capture.Applications,
		&capture.ContentTypes,
		&capture.ErrorNote,
		&capture.AnalyzedAt,
		&capture.CreatedAt,
	)
	return capture, err
}
