package analysis

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"vigil/monitoring/internal/blob"
	"vigil/monitoring/internal/metrics"
	"vigil/monitoring/internal/realtime"
	"vigil/monitoring/internal/sessions"
)

// CaptureRef is what the pipeline needs to know about a stored capture.
type CaptureRef struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	ImageRef string
}

// RequestRef ties an analysis run back to the monitoring request that caused
// it, so the requester can be notified on its channel.
type RequestRef struct {
	ID          uuid.UUID
	RequestedBy uuid.UUID
}

// Store is the persistence surface the pipeline mutates. Only the analysis
// columns and status of a capture are ever touched; the raw record itself is
// immutable evidence.
type Store interface {
	GetCapture(ctx context.Context, id uuid.UUID) (CaptureRef, error)
	MarkAnalyzed(ctx context.Context, id uuid.UUID, result Result, at time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, note string, at time.Time) error
	MarkRequestOutcome(ctx context.Context, requestID uuid.UUID, analyzed bool, at time.Time) error
}

type Pipeline struct {
	store     Store
	blobs     blob.Store
	vision    VisionClient
	publisher realtime.Publisher
	prompt    Prompt
	timeout   time.Duration
}

func NewPipeline(store Store, blobs blob.Store, vision VisionClient, publisher realtime.Publisher, prompt Prompt, timeout time.Duration) *Pipeline {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &Pipeline{
		store:     store,
		blobs:     blobs,
		vision:    vision,
		publisher: publisher,
		prompt:    prompt,
		timeout:   timeout,
	}
}

// ProcessAsync runs Process detached from the request that created the
// capture. Ingestion never waits on, and never fails because of, analysis.
func (p *Pipeline) ProcessAsync(captureID uuid.UUID, request *RequestRef) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()
		if err := p.Process(ctx, captureID, request); err != nil {
			log.Printf("analysis: capture %s: %v", captureID, err)
		}
	}()
}

// Process analyzes one capture. Analysis failures are terminal but soft: the
// capture is kept with status=failed and an error note, and the returned
// error only reports persistence problems.
func (p *Pipeline) Process(ctx context.Context, captureID uuid.UUID, request *RequestRef) error {
	capture, err := p.store.GetCapture(ctx, captureID)
	if err != nil {
		return err
	}

	result, analyzeErr := p.analyze(ctx, capture)
	now := time.Now().UTC()
	if analyzeErr != nil {
		metrics.AnalysisFailures.Inc()
		if err := p.store.MarkFailed(ctx, captureID, analyzeErr.Error(), now); err != nil {
			return err
		}
		return p.finishRequest(ctx, request, false, Result{}, now)
	}

	if err := p.store.MarkAnalyzed(ctx, captureID, result, now); err != nil {
		return err
	}
	return p.finishRequest(ctx, request, true, result, now)
}

func (p *Pipeline) analyze(ctx context.Context, capture CaptureRef) (Result, error) {
	image, err := p.blobs.Get(capture.ImageRef)
	if err != nil {
		return Result{}, err
	}
	return p.vision.Analyze(ctx, image, p.prompt)
}

type captureAnalyzedPayload struct {
	RequestID         uuid.UUID `json:"requestId"`
	Status            string    `json:"status"`
	ProductivityScore float64   `json:"productivityScore"`
}

func (p *Pipeline) finishRequest(ctx context.Context, request *RequestRef, analyzed bool, result Result, at time.Time) error {
	if request == nil {
		return nil
	}
	if err := p.store.MarkRequestOutcome(ctx, request.ID, analyzed, at); err != nil {
		return err
	}
	status := "failed"
	var score float64
	if analyzed {
		status = "analyzed"
		score = sessions.ProductivityScore(result.Productivity)
	}
	err := p.publisher.Publish(ctx, request.RequestedBy, realtime.EventCaptureAnalyzed, captureAnalyzedPayload{
		RequestID:         request.ID,
		Status:            status,
		ProductivityScore: score,
	})
	if err != nil {
		log.Printf("analysis: publish to %s failed: %v", request.RequestedBy, err)
	}
	return nil
}
