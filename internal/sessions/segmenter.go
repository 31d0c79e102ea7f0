package sessions

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Capture is the slice of a raw capture the segmenter needs: identity,
// ordering and the analysis rollup inputs.
type Capture struct {
	ID           uuid.UUID
	CapturedAt   time.Time
	Status       string
	Productivity string
}

// Window is one derived session for a (user, day) before persistence.
type Window struct {
	SessionNumber     int
	CaptureIDs        []uuid.UUID
	StartTime         time.Time
	EndTime           time.Time
	ScreenshotCount   int
	IsLastOfDay       bool
	CheckoutTriggered bool
	IsAnalyzed        bool
	Score             *float64
	Summary           string
}

// Segment partitions one day's captures into windows of at most windowSize.
// A window is sealed early when the next capture falls after the checkout
// sentinel; that window carries both checkoutTriggered and isLastOfDay, and
// captures past the sentinel open a fresh window group for the same day.
// Without a checkout the final window is the last of the day. The input
// order does not matter: captures are sorted by (capturedAt, id) so the
// partition is deterministic.
func Segment(captures []Capture, checkoutAt *time.Time, windowSize int) []Window {
	if len(captures) == 0 {
		return nil
	}
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}

	ordered := make([]Capture, len(captures))
	copy(ordered, captures)
	sort.Slice(ordered, func(i, j int) bool {
		if !ordered[i].CapturedAt.Equal(ordered[j].CapturedAt) {
			return ordered[i].CapturedAt.Before(ordered[j].CapturedAt)
		}
		return ordered[i].ID.String() < ordered[j].ID.String()
	})

	var windows []Window
	var current []Capture
	checkoutPending := checkoutAt != nil

	seal := func(checkoutTriggered bool) {
		if len(current) == 0 {
			return
		}
		windows = append(windows, buildWindow(len(windows)+1, current, checkoutTriggered))
		current = nil
	}

	for _, capture := range ordered {
		if checkoutPending && capture.CapturedAt.After(*checkoutAt) {
			if len(current) > 0 {
				seal(true)
			} else if len(windows) > 0 {
				// Sentinel crossed on a window-size boundary: the window
				// just sealed by the count was the one active at checkout.
				windows[len(windows)-1].CheckoutTriggered = true
			}
			checkoutPending = false
		}
		current = append(current, capture)
		if len(current) == windowSize {
			seal(false)
		}
	}
	seal(false)
	if checkoutPending {
		// Checkout landed after the last capture: the window active at
		// checkout is the final one.
		windows[len(windows)-1].CheckoutTriggered = true
	}

	// The checkout-sealed window is the day's last session even when later
	// captures formed more windows; otherwise the final window is.
	lastIdx := len(windows) - 1
	for i, window := range windows {
		if window.CheckoutTriggered {
			lastIdx = i
			break
		}
	}
	windows[lastIdx].IsLastOfDay = true

	return windows
}

// DefaultWindowSize is the session bound applied when none is configured.
const DefaultWindowSize = 30

func buildWindow(number int, captures []Capture, checkoutTriggered bool) Window {
	ids := make([]uuid.UUID, len(captures))
	analyzed := 0
	var scoreSum float64
	for i, capture := range captures {
		ids[i] = capture.ID
		if capture.Status == CaptureStatusAnalyzed {
			analyzed++
			scoreSum += ProductivityScore(capture.Productivity)
		}
	}
	window := Window{
		SessionNumber:     number,
		CaptureIDs:        ids,
		StartTime:         captures[0].CapturedAt,
		EndTime:           captures[len(captures)-1].CapturedAt,
		ScreenshotCount:   len(captures),
		CheckoutTriggered: checkoutTriggered,
		IsAnalyzed:        analyzed == len(captures),
	}
	if analyzed > 0 {
		score := scoreSum / float64(analyzed)
		window.Score = &score
		window.Summary = scoreSummary(score)
	}
	return window
}

const (
	CaptureStatusPending  = "pending"
	CaptureStatusAnalyzed = "analyzed"
	CaptureStatusFailed   = "failed"

	ProductivityProductive   = "productive"
	ProductivityNeutral      = "neutral"
	ProductivityUnproductive = "unproductive"
)

// ProductivityScore maps a capture classification to its numeric weight.
func ProductivityScore(label string) float64 {
	switch label {
	case ProductivityProductive:
		return 100
	case ProductivityNeutral:
		return 50
	default:
		return 0
	}
}

func scoreSummary(score float64) string {
	switch {
	case score >= 75:
		return "mostly productive"
	case score >= 40:
		return "mixed activity"
	default:
		return "mostly unproductive"
	}
}
