package sessions

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Session is one persisted derived session row.
type Session struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Day               time.Time
	SessionNumber     int
	CaptureRefs       []uuid.UUID
	StartTime         time.Time
	EndTime           time.Time
	ScreenshotCount   int
	IsLastOfDay       bool
	CheckoutTriggered bool
	IsAnalyzed        bool
	Score             *float64
	Summary           string
}

// DayCaptures is one day's slice of the raw capture log for a user, with the
// day's checkout sentinel when one was recorded.
type DayCaptures struct {
	Day        time.Time
	Captures   []Capture
	CheckoutAt *time.Time
}

// Tx is the transactional surface the recompiler drives. All calls run
// inside one transaction so a failed rebuild leaves no half-deleted state.
type Tx interface {
	ListCaptureDays(ctx context.Context, userID uuid.UUID, start, end *time.Time) ([]DayCaptures, error)
	DeleteSessions(ctx context.Context, userID uuid.UUID, start, end *time.Time) (int64, error)
	InsertSessions(ctx context.Context, sessions []Session) (int64, error)
}

// Store is the persistence handle for recompiles.
type Store interface {
	ListMonitoredUserIDs(ctx context.Context) ([]uuid.UUID, error)
	InTx(ctx context.Context, fn func(Tx) error) error
}

type Result struct {
	DeletedCount int64 `json:"deletedCount"`
	CreatedCount int64 `json:"createdCount"`
}

type UserError struct {
	UserID uuid.UUID `json:"userId"`
	Error  string    `json:"error"`
}

type BatchResult struct {
	Users        int         `json:"users"`
	DeletedCount int64       `json:"deletedCount"`
	CreatedCount int64       `json:"createdCount"`
	Errors       []UserError `json:"errors"`
}

type Recompiler struct {
	store      Store
	windowSize int
	workers    int

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewRecompiler(store Store, windowSize, workers int) *Recompiler {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	if workers <= 0 {
		workers = 1
	}
	return &Recompiler{
		store:      store,
		windowSize: windowSize,
		workers:    workers,
		locks:      make(map[uuid.UUID]*sync.Mutex),
	}
}

// RecompileUser rebuilds every session for one user, optionally bounded to
// [start, end]. Delete and insert share a transaction, and recompiles for the
// same user are serialized: two overlapping delete-then-insert runs could
// double-insert or drop captures.
func (r *Recompiler) RecompileUser(ctx context.Context, userID uuid.UUID, start, end *time.Time) (Result, error) {
	lock := r.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	var result Result
	err := r.store.InTx(ctx, func(tx Tx) error {
		deleted, err := tx.DeleteSessions(ctx, userID, start, end)
		if err != nil {
			return fmt.Errorf("delete sessions: %w", err)
		}
		days, err := tx.ListCaptureDays(ctx, userID, start, end)
		if err != nil {
			return fmt.Errorf("list captures: %w", err)
		}
		var rebuilt []Session
		for _, day := range days {
			for _, window := range Segment(day.Captures, day.CheckoutAt, r.windowSize) {
				rebuilt = append(rebuilt, Session{
					ID:                uuid.New(),
					UserID:            userID,
					Day:               day.Day,
					SessionNumber:     window.SessionNumber,
					CaptureRefs:       window.CaptureIDs,
					StartTime:         window.StartTime,
					EndTime:           window.EndTime,
					ScreenshotCount:   window.ScreenshotCount,
					IsLastOfDay:       window.IsLastOfDay,
					CheckoutTriggered: window.CheckoutTriggered,
					IsAnalyzed:        window.IsAnalyzed,
					Score:             window.Score,
					Summary:           window.Summary,
				})
			}
		}
		created := int64(0)
		if len(rebuilt) > 0 {
			created, err = tx.InsertSessions(ctx, rebuilt)
			if err != nil {
				return fmt.Errorf("insert sessions: %w", err)
			}
		}
		result = Result{DeletedCount: deleted, CreatedCount: created}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return result, nil
}

// RecompileAll fans RecompileUser out over every monitored user. One user's
// failure is collected, not fatal: the remaining users still rebuild.
func (r *Recompiler) RecompileAll(ctx context.Context, start, end *time.Time) (BatchResult, error) {
	userIDs, err := r.store.ListMonitoredUserIDs(ctx)
	if err != nil {
		return BatchResult{}, err
	}

	var (
		mu    sync.Mutex
		batch = BatchResult{Users: len(userIDs), Errors: []UserError{}}
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.workers)
	for _, userID := range userIDs {
		userID := userID
		group.Go(func() error {
			result, err := r.RecompileUser(groupCtx, userID, start, end)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("recompile user %s failed: %v", userID, err)
				batch.Errors = append(batch.Errors, UserError{UserID: userID, Error: err.Error()})
				return nil
			}
			batch.DeletedCount += result.DeletedCount
			batch.CreatedCount += result.CreatedCount
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return BatchResult{}, err
	}
	return batch, nil
}

func (r *Recompiler) userLock(userID uuid.UUID) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[userID] = lock
	}
	return lock
}
