package sessions

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func makeCaptures(t *testing.T, start time.Time, count int, step time.Duration) []Capture {
	t.Helper()
	captures := make([]Capture, count)
	for i := 0; i < count; i++ {
		captures[i] = Capture{
			ID:         uuid.New(),
			CapturedAt: start.Add(time.Duration(i) * step),
			Status:     CaptureStatusAnalyzed,
		}
	}
	return captures
}

func TestSegmentWindowing(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	captures := makeCaptures(t, start, 65, time.Minute)

	windows := Segment(captures, nil, 30)
	if len(windows) != 3 {
		t.Fatalf("expected 3 windows, got %d", len(windows))
	}
	for i, want := range []int{30, 30, 5} {
		if windows[i].ScreenshotCount != want {
			t.Fatalf("window %d: expected %d captures, got %d", i+1, want, windows[i].ScreenshotCount)
		}
		if windows[i].SessionNumber != i+1 {
			t.Fatalf("window %d: expected session number %d, got %d", i, i+1, windows[i].SessionNumber)
		}
	}
	if windows[0].IsLastOfDay || windows[1].IsLastOfDay {
		t.Fatalf("only the final window may be last of day")
	}
	if !windows[2].IsLastOfDay {
		t.Fatalf("expected final window to be last of day")
	}
	for _, window := range windows {
		if window.CheckoutTriggered {
			t.Fatalf("no checkout occurred, no window may be checkout-triggered")
		}
	}
}

func TestSegmentCheckoutSealing(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	before := makeCaptures(t, start, 10, time.Minute)
	checkout := start.Add(15 * time.Minute)
	after := makeCaptures(t, start.Add(30*time.Minute), 5, time.Minute)

	windows := Segment(append(before, after...), &checkout, 30)
	if len(windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(windows))
	}
	first, second := windows[0], windows[1]
	if first.ScreenshotCount != 10 {
		t.Fatalf("expected 10 captures before checkout, got %d", first.ScreenshotCount)
	}
	if !first.CheckoutTriggered {
		t.Fatalf("expected first window to be checkout-triggered")
	}
	if !first.IsLastOfDay {
		t.Fatalf("expected checkout window to be last of day")
	}
	if second.ScreenshotCount != 5 {
		t.Fatalf("expected 5 captures after checkout, got %d", second.ScreenshotCount)
	}
	if second.IsLastOfDay || second.CheckoutTriggered {
		t.Fatalf("post-checkout window must be a plain session")
	}
	if second.SessionNumber != 2 {
		t.Fatalf("expected session number 2 after checkout, got %d", second.SessionNumber)
	}
}

func TestSegmentCheckoutAfterLastCapture(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	captures := makeCaptures(t, start, 7, time.Minute)
	checkout := start.Add(time.Hour)

	windows := Segment(captures, &checkout, 30)
	if len(windows) != 1 {
		t.Fatalf("expected 1 window, got %d", len(windows))
	}
	if !windows[0].CheckoutTriggered || !windows[0].IsLastOfDay {
		t.Fatalf("window active at checkout must be sealed as the last of day")
	}
}

func TestSegmentCheckoutOnWindowBoundary(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	before := makeCaptures(t, start, 30, time.Minute)
	checkout := start.Add(30 * time.Minute)
	after := makeCaptures(t, start.Add(time.Hour), 5, time.Minute)

	windows := Segment(append(before, after...), &checkout, 30)
	if len(windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(windows))
	}
	first, second := windows[0], windows[1]
	if first.ScreenshotCount != 30 {
		t.Fatalf("expected a full first window, got %d captures", first.ScreenshotCount)
	}
	if !first.CheckoutTriggered || !first.IsLastOfDay {
		t.Fatalf("window sealed at the size bound was active at checkout and must carry the flags")
	}
	if second.CheckoutTriggered || second.IsLastOfDay {
		t.Fatalf("post-checkout window must be a plain session")
	}
}

func TestSegmentCheckoutBeforeFirstCapture(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	captures := makeCaptures(t, start, 4, time.Minute)
	checkout := start.Add(-time.Hour)

	windows := Segment(captures, &checkout, 30)
	if len(windows) != 1 {
		t.Fatalf("expected 1 window, got %d", len(windows))
	}
	if windows[0].CheckoutTriggered {
		t.Fatalf("checkout before any capture seals nothing")
	}
	if !windows[0].IsLastOfDay {
		t.Fatalf("expected final window to be last of day")
	}
}

func TestSegmentEmptyInput(t *testing.T) {
	if windows := Segment(nil, nil, 30); windows != nil {
		t.Fatalf("expected no windows for empty input, got %d", len(windows))
	}
}

func TestSegmentDeterministicTieBreak(t *testing.T) {
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	a := Capture{ID: uuid.MustParse("00000000-0000-0000-0000-00000000000a"), CapturedAt: at}
	b := Capture{ID: uuid.MustParse("00000000-0000-0000-0000-00000000000b"), CapturedAt: at}

	first := Segment([]Capture{b, a}, nil, 30)
	second := Segment([]Capture{a, b}, nil, 30)
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected a single window per run")
	}
	for i := range first[0].CaptureIDs {
		if first[0].CaptureIDs[i] != second[0].CaptureIDs[i] {
			t.Fatalf("expected identical ordering regardless of input order")
		}
	}
	if first[0].CaptureIDs[0] != a.ID {
		t.Fatalf("expected lower id first on equal timestamps")
	}
}

func TestSegmentCoverage(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	captures := makeCaptures(t, start, 73, time.Minute)
	checkout := start.Add(41 * time.Minute)

	windows := Segment(captures, &checkout, 30)
	seen := make(map[uuid.UUID]bool)
	lastOfDay := 0
	for _, window := range windows {
		if window.ScreenshotCount != len(window.CaptureIDs) {
			t.Fatalf("screenshot count mismatch")
		}
		for _, id := range window.CaptureIDs {
			if seen[id] {
				t.Fatalf("capture %s assigned twice", id)
			}
			seen[id] = true
		}
		if window.IsLastOfDay {
			lastOfDay++
		}
	}
	if len(seen) != len(captures) {
		t.Fatalf("expected all %d captures covered, got %d", len(captures), len(seen))
	}
	if lastOfDay != 1 {
		t.Fatalf("expected exactly one last-of-day window, got %d", lastOfDay)
	}
}

func TestSegmentAnalysisRollup(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	captures := []Capture{
		{ID: uuid.New(), CapturedAt: start, Status: CaptureStatusAnalyzed, Productivity: ProductivityProductive},
		{ID: uuid.New(), CapturedAt: start.Add(time.Minute), Status: CaptureStatusAnalyzed, Productivity: ProductivityUnproductive},
		{ID: uuid.New(), CapturedAt: start.Add(2 * time.Minute), Status: CaptureStatusFailed},
	}

	windows := Segment(captures, nil, 30)
	if len(windows) != 1 {
		t.Fatalf("expected 1 window, got %d", len(windows))
	}
	window := windows[0]
	if window.IsAnalyzed {
		t.Fatalf("window with a failed capture is not fully analyzed")
	}
	if window.Score == nil || *window.Score != 50 {
		t.Fatalf("expected score 50 over the two analyzed captures, got %v", window.Score)
	}
	if window.Summary != "mixed activity" {
		t.Fatalf("expected mixed activity summary, got %q", window.Summary)
	}
}
