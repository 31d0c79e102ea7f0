package jobs

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"vigil/monitoring/internal/config"
	"vigil/monitoring/internal/db"
	"vigil/monitoring/internal/realtime"
)

// StartRequestTimeoutJob sweeps pending monitoring requests whose target
// never uploaded a capture and flips them to the terminal timeout state. The
// target may simply be offline; without this sweep a request would stay
// pending forever.
func StartRequestTimeoutJob(ctx context.Context, cfg config.Config, store *db.Store, publisher realtime.Publisher) {
	if !cfg.TimeoutJobEnabled {
		return
	}
	interval := cfg.TimeoutJobEvery
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ttl := cfg.RequestPendingTTL
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				now := time.Now().UTC()
				timedOut, err := store.Queries.TimeoutPendingRequests(ctx, db.TimeoutPendingRequestsParams{
					Before:    pgtype.Timestamptz{Time: now.Add(-ttl), Valid: true},
					UpdatedAt: pgtype.Timestamptz{Time: now, Valid: true},
				})
				if err != nil {
					log.Printf("request timeout job error: %v", err)
					continue
				}
				for _, row := range timedOut {
					requestID := uuid.UUID(row.ID.Bytes)
					requester := uuid.UUID(row.RequestedBy.Bytes)
					err := publisher.Publish(ctx, requester, realtime.EventRequestTimeout, map[string]any{
						"requestId": requestID,
						"status":    string(db.RequestStatusTimeout),
					})
					if err != nil {
						log.Printf("request timeout publish error: %v", err)
					}
				}
				if len(timedOut) > 0 {
					log.Printf("request timeout job expired %d requests", len(timedOut))
				}
			}
		}
	}()
}
