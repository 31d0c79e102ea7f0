package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const monitoringRequestColumns = `id, requested_by, requested_by_role, target_user, reason,
consent_given, status, capture_id, created_at, updated_at`

type CreateMonitoringRequestParams struct {
	ID              pgtype.UUID
	RequestedBy     pgtype.UUID
	RequestedByRole string
	TargetUser      pgtype.UUID
	Reason          pgtype.Text
	ConsentGiven    bool
	CreatedAt       pgtype.Timestamptz
}

func (q *Queries) CreateMonitoringRequest(ctx context.Context, arg CreateMonitoringRequestParams) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO monitoring_requests (id, requested_by, requested_by_role, target_user, reason,
			consent_given, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending', $7, $7)
	`, arg.ID, arg.RequestedBy, arg.RequestedByRole, arg.TargetUser, arg.Reason, arg.ConsentGiven, arg.CreatedAt)
	return err
}

func (q *Queries) GetMonitoringRequest(ctx context.Context, id pgtype.UUID) (MonitoringRequest, error) {
	var request MonitoringRequest
	row := q.db.QueryRow(ctx, `
		SELECT `+monitoringRequestColumns+`
		FROM monitoring_requests
		WHERE id = $1
	`, id)
	err := row.Scan(
		&request.ID,
		&request.RequestedBy,
		&request.RequestedByRole,
		&request.TargetUser,
		&request.Reason,
		&request.ConsentGiven,
		&request.Status,
		&request.CaptureID,
		&request.CreatedAt,
		&request.UpdatedAt,
	)
	return request, err
}

type MarkRequestCapturedParams struct {
	ID        pgtype.UUID
	CaptureID pgtype.UUID
	UpdatedAt pgtype.Timestamptz
}

// MarkRequestCaptured records the target's upload. Uploading is the consent
// signal in this flow. Only a pending request can be claimed; the returned
// count is zero when a concurrent upload already took it.
func (q *Queries) MarkRequestCaptured(ctx context.Context, arg MarkRequestCapturedParams) (int64, error) {
	tag, err := q.db.Exec(ctx, `
		UPDATE monitoring_requests
		SET status = 'captured', capture_id = $2, consent_given = true, updated_at = $3
		WHERE id = $1 AND status = 'pending'
	`, arg.ID, arg.CaptureID, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type UpdateMonitoringRequestParams struct {
	ID        pgtype.UUID
	Status    RequestStatus
	CaptureID pgtype.UUID
	UpdatedAt pgtype.Timestamptz
}

func (q *Queries) UpdateMonitoringRequest(ctx context.Context, arg UpdateMonitoringRequestParams) error {
	_, err := q.db.Exec(ctx, `
		UPDATE monitoring_requests
		SET status = $2, capture_id = COALESCE($3, capture_id), updated_at = $4
		WHERE id = $1
	`, arg.ID, arg.Status, arg.CaptureID, arg.UpdatedAt)
	return err
}

type TimeoutPendingRequestsParams struct {
	Before    pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type TimedOutRequestRow struct {
	ID          pgtype.UUID
	RequestedBy pgtype.UUID
}

// TimeoutPendingRequests flips stale pending requests to the terminal timeout
// state and returns them so callers can notify the requesters.
func (q *Queries) TimeoutPendingRequests(ctx context.Context, arg TimeoutPendingRequestsParams) ([]TimedOutRequestRow, error) {
	rows, err := q.db.Query(ctx, `
		UPDATE monitoring_requests
		SET status = 'timeout', updated_at = $2
		WHERE status = 'pending' AND created_at < $1
		RETURNING id, requested_by
	`, arg.Before, arg.UpdatedAt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var timedOut []TimedOutRequestRow
	for rows.Next() {
		var row TimedOutRequestRow
		if err := rows.Scan(&row.ID, &row.RequestedBy); err != nil {
			return nil, err
		}
		timedOut = append(timedOut, row)
	}
	return timedOut, rows.Err()
}
